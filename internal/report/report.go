package report

import (
	"fmt"
	"io"
	"strings"

	"jobsift/internal/model"
)

// Write renders the final postings in the fixed human-readable format: a
// banner, one numbered entry per posting with its three fields, and a total.
func Write(w io.Writer, postings []model.Posting) {
	rule := strings.Repeat("=", 80)
	fmt.Fprintf(w, "\n%s\nFINAL EXTRACTED JOB POSTINGS\n%s\n", rule, rule)

	if len(postings) == 0 {
		fmt.Fprintln(w, "No valid job postings found after filtering.")
		return
	}

	for i, p := range postings {
		fmt.Fprintf(w, "\nJob %d:\n", i+1)
		fmt.Fprintf(w, "title: %s\n", p.Title)
		fmt.Fprintf(w, "location: %s\n", p.Location)
		fmt.Fprintf(w, "description: %s\n", p.Description)
		fmt.Fprintln(w, strings.Repeat("-", 80))
	}

	fmt.Fprintf(w, "\nTotal unique jobs found: %d\n", len(postings))
}
