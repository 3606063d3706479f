package segment

import (
	"fmt"
	"regexp"
	"strings"
)

// Patterns holds the four heuristic pattern groups used when carving a page
// into candidate job sections. Only Titles and Openings start a new section;
// Requirements and Locations are matching aids (e.g. for debug annotation)
// and must never act as split triggers, or every "Requirements:" sub-heading
// would tear a posting in half.
type Patterns struct {
	Titles       []string // known job-title phrases
	Openings     []string // generic role-opening words
	Requirements []string // requirement/responsibility headings
	Locations    []string // location terms
}

// DefaultPatterns returns the built-in pattern groups. Each entry is a
// regular expression matched case-insensitively anywhere in a line.
func DefaultPatterns() Patterns {
	return Patterns{
		Titles: []string{
			`project manager`, `software developer`, `web developer`,
			`data analyst`, `ui/ux designer`, `quality assurance`,
			`devops engineer`, `marketing manager`, `sales manager`,
		},
		Openings: []string{
			`position`, `role`, `job`, `opening`, `career`, `hiring`,
		},
		Requirements: []string{
			`requirements?`, `responsibilities`, `qualifications`, `experience`,
		},
		Locations: []string{
			`karachi`, `lahore`, `islamabad`, `remote`, `on-site`,
		},
	}
}

// Segmenter splits raw page text into candidate job sections using
// line-level pattern triggers. It holds only compiled patterns and is safe
// for concurrent use.
type Segmenter struct {
	triggers     []*regexp.Regexp // Titles + Openings, in that order
	requirements []*regexp.Regexp
	locations    []*regexp.Regexp
}

// New compiles the pattern groups into a Segmenter. Patterns are compiled
// case-insensitive; an invalid pattern fails the whole constructor.
func New(p Patterns) (*Segmenter, error) {
	triggers, err := compileGroup(append(append([]string{}, p.Titles...), p.Openings...))
	if err != nil {
		return nil, fmt.Errorf("compile trigger patterns: %w", err)
	}
	requirements, err := compileGroup(p.Requirements)
	if err != nil {
		return nil, fmt.Errorf("compile requirement patterns: %w", err)
	}
	locations, err := compileGroup(p.Locations)
	if err != nil {
		return nil, fmt.Errorf("compile location patterns: %w", err)
	}
	return &Segmenter{
		triggers:     triggers,
		requirements: requirements,
		locations:    locations,
	}, nil
}

func compileGroup(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(`(?i)` + p)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", p, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

// Segment splits text into sections. A trimmed non-blank line that matches a
// trigger pattern starts a new section; everything else accumulates into the
// current one. Blank lines are dropped. Output order follows input order,
// and sections are the accumulated lines rejoined with newlines.
func (s *Segmenter) Segment(text string) []string {
	var sections []string
	var current []string

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// A leading trigger with nothing accumulated has nothing to flush;
		// it simply opens the first section.
		if s.isSectionStart(line) && len(current) > 0 {
			sections = append(sections, strings.Join(current, "\n"))
			current = []string{line}
		} else {
			current = append(current, line)
		}
	}

	if len(current) > 0 {
		sections = append(sections, strings.Join(current, "\n"))
	}

	return sections
}

func (s *Segmenter) isSectionStart(line string) bool {
	for _, re := range s.triggers {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// MatchRequirement reports whether line looks like a requirement or
// responsibility heading. Annotation only, never a split trigger.
func (s *Segmenter) MatchRequirement(line string) bool {
	for _, re := range s.requirements {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// MatchLocation reports whether line mentions a known work location.
// Annotation only, never a split trigger.
func (s *Segmenter) MatchLocation(line string) bool {
	for _, re := range s.locations {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}
