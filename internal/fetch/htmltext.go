package fetch

import (
	"html"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// Whole elements that never carry posting content.
	chromeBlockRe = regexp.MustCompile(`(?is)<(script|style|nav|header|footer|noscript)\b[^>]*>.*?</\s*(?:script|style|nav|header|footer|noscript)\s*>`)
	// Tags whose close marks a visual line break.
	lineBreakRe = regexp.MustCompile(`(?i)<br\s*/?>|</(p|div|li|tr|h[1-6]|section|article)\s*>`)
	htmlTagRe   = regexp.MustCompile(`<[^>]*>`)
)

// ExtractText converts an HTML page to newline-delimited plain text: chrome
// elements removed, block-level boundaries preserved as line breaks, all
// remaining tags stripped, entities unescaped, and each line trimmed with
// inner whitespace collapsed. Blank lines are dropped.
func ExtractText(content string) string {
	stripped := chromeBlockRe.ReplaceAllString(content, "\n")
	stripped = lineBreakRe.ReplaceAllString(stripped, "\n")
	stripped = htmlTagRe.ReplaceAllString(stripped, " ")
	stripped = html.UnescapeString(stripped)

	var lines []string
	for _, line := range strings.Split(stripped, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// parseRetryAfter parses the Retry-After header value into a duration.
// Supports seconds format (e.g. "120"). Returns zero if absent or unparseable.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	seconds, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
