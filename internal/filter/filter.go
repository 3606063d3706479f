package filter

import (
	"strings"

	"jobsift/internal/model"
)

// DefaultRoleKeywords is the built-in set of terms a real job title is
// expected to contain.
func DefaultRoleKeywords() []string {
	return []string{
		"manager", "developer", "engineer", "analyst", "designer",
		"coordinator", "specialist", "lead", "senior", "junior", "intern",
	}
}

// DefaultMinDescriptionChars is the cutoff below which a description is
// considered too thin to be a real posting.
const DefaultMinDescriptionChars = 50

// PostingFilter keeps postings whose title contains a role keyword
// (case-insensitive) and whose description is long enough to carry real
// information. Filtering is idempotent and never mutates survivors.
type PostingFilter struct {
	roleKeywords        []string
	minDescriptionChars int
}

// New returns a PostingFilter. An empty keyword list falls back to
// DefaultRoleKeywords; a non-positive length cutoff falls back to
// DefaultMinDescriptionChars.
func New(roleKeywords []string, minDescriptionChars int) *PostingFilter {
	if len(roleKeywords) == 0 {
		roleKeywords = DefaultRoleKeywords()
	}
	if minDescriptionChars <= 0 {
		minDescriptionChars = DefaultMinDescriptionChars
	}
	return &PostingFilter{
		roleKeywords:        roleKeywords,
		minDescriptionChars: minDescriptionChars,
	}
}

// Match returns true if the posting's title contains any role keyword and
// its description length strictly exceeds the cutoff.
func (f *PostingFilter) Match(p model.Posting) bool {
	titleLower := strings.ToLower(p.Title)

	matched := false
	for _, kw := range f.roleKeywords {
		if strings.Contains(titleLower, strings.ToLower(kw)) {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}

	return len([]rune(p.Description)) > f.minDescriptionChars
}

// Apply returns the postings that pass Match, preserving order.
func (f *PostingFilter) Apply(postings []model.Posting) []model.Posting {
	var kept []model.Posting
	for _, p := range postings {
		if f.Match(p) {
			kept = append(kept, p)
		}
	}
	return kept
}
