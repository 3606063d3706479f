package consolidate

import (
	"regexp"
	"strings"

	"jobsift/internal/match"
	"jobsift/internal/model"
)

// DefaultDenylist marks non-hiring noise (service offerings, tool names)
// that extractors routinely mislabel as job content. Matched as a
// case-insensitive substring against every fragment.
func DefaultDenylist() []string {
	return []string{
		"business continuity", "managed hosting", "content marketing",
		"brand identity", "web design", "canva", "figma", "blender",
	}
}

// DefaultMinSentenceChars is the noise threshold for description sentences:
// fragments at or below this length are discarded during dedup.
const DefaultMinSentenceChars = 10

var (
	sentenceSplitRe = regexp.MustCompile(`[.!?]+`)
	nonWordRe       = regexp.MustCompile(`\W+`)
)

// Consolidator groups a flat fragment sequence into per-job postings,
// merging locations and descriptions and deduplicating description
// sentences. It is pure: no I/O, no shared state, safe to call concurrently
// on independent inputs.
type Consolidator struct {
	denylist         []string // stored lowercased
	minSentenceChars int
	fuzzyThreshold   float64 // 0 = exact-key grouping only
}

// Option configures a Consolidator.
type Option func(*Consolidator)

// WithMinSentenceChars overrides the sentence noise threshold.
func WithMinSentenceChars(n int) Option {
	return func(c *Consolidator) { c.minSentenceChars = n }
}

// WithFuzzyMerge enables near-duplicate title merging: a new title whose
// similarity ratio to an existing group's key meets threshold joins that
// group instead of creating a new one. Off by default — the default pipeline
// groups by exact normalized-key equality only, so similar-but-unequal
// titles ("Sr. Developer" vs "Senior Developer") stay separate groups.
// A threshold around 0.85 works well in practice.
func WithFuzzyMerge(threshold float64) Option {
	return func(c *Consolidator) { c.fuzzyThreshold = threshold }
}

// New builds a Consolidator with the given denylist. An empty denylist
// falls back to DefaultDenylist.
func New(denylist []string, opts ...Option) *Consolidator {
	if len(denylist) == 0 {
		denylist = DefaultDenylist()
	}
	lowered := make([]string, len(denylist))
	for i, term := range denylist {
		lowered[i] = strings.ToLower(term)
	}
	c := &Consolidator{
		denylist:         lowered,
		minSentenceChars: DefaultMinSentenceChars,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// jobGroup is the transient aggregation of all fragments sharing one
// normalized title key. Groups are created once and only ever appended to.
type jobGroup struct {
	title        string   // original casing of the first-seen title
	locations    []string // deduplicated, first-appearance order
	descriptions []string // append-only; deduplicated at sentence level later
}

// Consolidate groups fragments into postings. Fragments are consumed in
// order: each location/description attaches to the group most recently
// created by a title fragment. Orphans (no group yet) and unknown-class
// fragments are dropped silently; a fragment with no text is an extractor
// contract violation and returns *model.InvalidFragmentError.
func (c *Consolidator) Consolidate(fragments []model.Fragment) ([]model.Posting, error) {
	var groups []*jobGroup
	byKey := make(map[string]*jobGroup)

	// Explicit cursor for "the most recent group". Updated only when a title
	// fragment creates a new group; a repeated title is a no-op and leaves
	// the cursor where it was.
	var current *jobGroup

	for _, f := range fragments {
		if strings.TrimSpace(f.Text) == "" {
			return nil, &model.InvalidFragmentError{Field: "text"}
		}

		text := strings.TrimSpace(f.Text)
		if c.denied(text) {
			continue
		}

		switch f.Class {
		case model.ClassTitle:
			key := normalizeKey(text)
			if _, ok := byKey[key]; ok {
				continue // first-seen casing wins
			}
			if g := c.fuzzyLookup(groups, key); g != nil {
				byKey[key] = g
				continue
			}
			g := &jobGroup{title: text}
			byKey[key] = g
			groups = append(groups, g)
			current = g

		case model.ClassLocation:
			if current == nil {
				continue
			}
			if !contains(current.locations, text) {
				current.locations = append(current.locations, text)
			}

		case model.ClassDescription:
			if current == nil {
				continue
			}
			current.descriptions = append(current.descriptions, text)

		default:
			// Forward-compatible: unknown classes are ignored.
		}
	}

	postings := make([]model.Posting, 0, len(groups))
	for _, g := range groups {
		postings = append(postings, c.consolidateGroup(g))
	}
	return postings, nil
}

// consolidateGroup collapses one group into a Posting: first location wins
// (or "None"), and descriptions merge with sentence-level dedup spanning
// every description fragment in the group.
func (c *Consolidator) consolidateGroup(g *jobGroup) model.Posting {
	location := "None"
	if len(g.locations) > 0 {
		location = g.locations[0]
	}

	seen := make(map[string]struct{})
	var kept []string
	for _, desc := range g.descriptions {
		for _, sentence := range sentenceSplitRe.Split(desc, -1) {
			sentence = strings.TrimSpace(sentence)
			if len([]rune(sentence)) <= c.minSentenceChars {
				continue
			}
			key := nonWordRe.ReplaceAllString(strings.ToLower(sentence), "")
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			kept = append(kept, sentence)
		}
	}

	description := strings.Join(kept, ". ")
	if description != "" && !strings.HasSuffix(description, ".") {
		description += "."
	}

	return model.Posting{
		Title:       g.title,
		Location:    location,
		Description: description,
	}
}

// fuzzyLookup finds an existing group whose normalized title is similar
// enough to key. Returns nil when fuzzy merging is disabled or nothing
// clears the threshold; ties go to the earliest (first-created) group.
func (c *Consolidator) fuzzyLookup(groups []*jobGroup, key string) *jobGroup {
	if c.fuzzyThreshold <= 0 {
		return nil
	}
	for _, g := range groups {
		if match.Ratio(normalizeKey(g.title), key) >= c.fuzzyThreshold {
			return g
		}
	}
	return nil
}

func (c *Consolidator) denied(text string) bool {
	lowered := strings.ToLower(text)
	for _, term := range c.denylist {
		if strings.Contains(lowered, term) {
			return true
		}
	}
	return false
}

func normalizeKey(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
