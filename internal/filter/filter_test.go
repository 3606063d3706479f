package filter

import (
	"strings"
	"testing"

	"jobsift/internal/model"
)

func posting(title, description string) model.Posting {
	return model.Posting{Title: title, Location: "None", Description: description}
}

func TestPostingFilter_Match(t *testing.T) {
	longDesc := strings.Repeat("x", 60)

	tests := []struct {
		name      string
		posting   model.Posting
		wantMatch bool
	}{
		{
			name:      "role keyword and long description",
			posting:   posting("Software Engineer", longDesc),
			wantMatch: true,
		},
		{
			name:      "no role keyword",
			posting:   posting("Office Cleaner", longDesc),
			wantMatch: false,
		},
		{
			name:      "case insensitive keyword",
			posting:   posting("SENIOR DEVELOPER", longDesc),
			wantMatch: true,
		},
		{
			name:      "description exactly at cutoff excluded",
			posting:   posting("Software Engineer", strings.Repeat("x", 50)),
			wantMatch: false,
		},
		{
			name:      "description one past cutoff included",
			posting:   posting("Software Engineer", strings.Repeat("x", 51)),
			wantMatch: true,
		},
		{
			name:      "keyword inside longer title",
			posting:   posting("Regional Sales Manager (EMEA)", longDesc),
			wantMatch: true,
		},
		{
			name:      "empty description",
			posting:   posting("Software Engineer", ""),
			wantMatch: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(nil, 0)
			got := f.Match(tt.posting)
			if got != tt.wantMatch {
				t.Errorf("Match() = %v, want %v", got, tt.wantMatch)
			}
		})
	}
}

func TestApply_PreservesOrder(t *testing.T) {
	longDesc := strings.Repeat("x", 60)
	f := New(nil, 0)

	in := []model.Posting{
		posting("Project Manager", longDesc),
		posting("Office Cleaner", longDesc),
		posting("Data Analyst", longDesc),
	}
	got := f.Apply(in)
	if len(got) != 2 {
		t.Fatalf("got %d postings, want 2", len(got))
	}
	if got[0].Title != "Project Manager" || got[1].Title != "Data Analyst" {
		t.Errorf("order not preserved: %+v", got)
	}
}

func TestApply_Idempotent(t *testing.T) {
	longDesc := strings.Repeat("x", 60)
	f := New(nil, 0)

	in := []model.Posting{
		posting("Project Manager", longDesc),
		posting("Office Cleaner", longDesc),
		posting("QA Specialist", longDesc),
	}
	once := f.Apply(in)
	twice := f.Apply(once)
	if len(once) != len(twice) {
		t.Fatalf("filter not idempotent: %d then %d", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("posting %d changed on second pass: %+v vs %+v", i, once[i], twice[i])
		}
	}
}

func TestApply_DoesNotMutateSurvivors(t *testing.T) {
	longDesc := strings.Repeat("x", 60)
	f := New(nil, 0)

	in := []model.Posting{posting("Software Engineer", longDesc)}
	got := f.Apply(in)
	if got[0] != in[0] {
		t.Errorf("surviving posting mutated: %+v vs %+v", got[0], in[0])
	}
}

func TestNew_CustomKeywordsAndCutoff(t *testing.T) {
	f := New([]string{"wizard"}, 5)
	if !f.Match(posting("Code Wizard", "abcdef")) {
		t.Error("expected custom keyword to match")
	}
	if f.Match(posting("Software Engineer", "abcdef")) {
		t.Error("default keywords should not apply when custom ones are set")
	}
	if f.Match(posting("Code Wizard", "abcde")) {
		t.Error("five-char description should not pass a cutoff of 5")
	}
}
