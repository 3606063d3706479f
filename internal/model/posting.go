package model

import (
	"context"
	"strings"
	"time"
)

// FragmentClass is the label an extractor puts on a text fragment.
// The set is closed: anything the extractor returns outside the three
// known labels maps to ClassUnknown and is ignored downstream.
type FragmentClass int

const (
	ClassUnknown FragmentClass = iota
	ClassTitle
	ClassLocation
	ClassDescription
)

// ParseFragmentClass maps an extractor's class string to a FragmentClass.
// Unrecognized values parse to ClassUnknown rather than failing, so new
// labels from the extractor are a forward-compatible no-op.
func ParseFragmentClass(s string) FragmentClass {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "title":
		return ClassTitle
	case "location":
		return ClassLocation
	case "description":
		return ClassDescription
	default:
		return ClassUnknown
	}
}

func (c FragmentClass) String() string {
	switch c {
	case ClassTitle:
		return "title"
	case ClassLocation:
		return "location"
	case ClassDescription:
		return "description"
	default:
		return "unknown"
	}
}

// Fragment is one labeled text unit returned by an extractor.
type Fragment struct {
	Class FragmentClass
	Text  string
}

// NewFragment builds a Fragment from the extractor's raw class and text
// strings. A missing class or text is a contract violation by the extractor
// and returns *InvalidFragmentError; an unrecognized (but present) class is
// fine and yields a ClassUnknown fragment.
func NewFragment(class, text string) (Fragment, error) {
	if strings.TrimSpace(class) == "" {
		return Fragment{}, &InvalidFragmentError{Field: "class"}
	}
	if strings.TrimSpace(text) == "" {
		return Fragment{}, &InvalidFragmentError{Field: "text"}
	}
	return Fragment{Class: ParseFragmentClass(class), Text: text}, nil
}

// Posting is a final, deduplicated job record. All three fields are always
// set; Location is the literal "None" when the source never named one.
type Posting struct {
	Title       string
	Location    string
	Description string
}

// Fingerprint returns the normalized title key used for grouping and for
// cross-run dedup in the store: lowercased, whitespace-trimmed.
func (p Posting) Fingerprint() string {
	return strings.ToLower(strings.TrimSpace(p.Title))
}

// PageFetcher retrieves a page and returns its cleaned, newline-delimited
// plain text (no markup, no navigation chrome).
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) (string, error)
}

// Extractor turns candidate job sections into a flat sequence of labeled
// fragments. Implementations are expected to be non-deterministic (LLMs);
// everything downstream of this boundary is deterministic.
type Extractor interface {
	Extract(ctx context.Context, sections []string) ([]Fragment, error)
}

// PostingStore persists postings across runs for newness detection.
type PostingStore interface {
	HasSeen(fingerprint string) (bool, error)
	SavePosting(p Posting) error
	ListPostings() ([]Posting, error)
	Cleanup(olderThan time.Duration) error
	IsEmpty() (bool, error)
}

// Notifier announces newly seen postings.
type Notifier interface {
	Notify(postings []Posting) error
}
