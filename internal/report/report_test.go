package report

import (
	"strings"
	"testing"

	"jobsift/internal/model"
)

func TestWrite_RendersNumberedEntries(t *testing.T) {
	postings := []model.Posting{
		{Title: "Project Manager", Location: "Lahore", Description: "Plans and delivers projects."},
		{Title: "Developer", Location: "None", Description: "Writes and ships code."},
	}

	var sb strings.Builder
	Write(&sb, postings)
	out := sb.String()

	if !strings.Contains(out, "FINAL EXTRACTED JOB POSTINGS") {
		t.Errorf("missing banner:\n%s", out)
	}
	if !strings.Contains(out, "Job 1:\ntitle: Project Manager\nlocation: Lahore\ndescription: Plans and delivers projects.") {
		t.Errorf("first entry malformed:\n%s", out)
	}
	if !strings.Contains(out, "Job 2:\ntitle: Developer\nlocation: None\n") {
		t.Errorf("second entry malformed:\n%s", out)
	}
	if !strings.Contains(out, "Total unique jobs found: 2") {
		t.Errorf("missing total:\n%s", out)
	}
}

func TestWrite_EmptyPostings(t *testing.T) {
	var sb strings.Builder
	Write(&sb, nil)
	out := sb.String()

	if !strings.Contains(out, "No valid job postings found after filtering.") {
		t.Errorf("missing empty-result message:\n%s", out)
	}
	if strings.Contains(out, "Total unique jobs found") {
		t.Errorf("total should not be printed for empty results:\n%s", out)
	}
}
