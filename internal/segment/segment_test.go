package segment

import (
	"strings"
	"testing"
)

func newTestSegmenter(t *testing.T) *Segmenter {
	t.Helper()
	s, err := New(DefaultPatterns())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestSegment_SplitsOnTriggers(t *testing.T) {
	s := newTestSegmenter(t)
	text := "Welcome to Acme\n" +
		"Project Manager\n" +
		"3 years experience needed\n" +
		"Software Developer\n" +
		"Go and SQL\n"

	sections := s.Segment(text)
	if len(sections) != 3 {
		t.Fatalf("got %d sections, want 3: %q", len(sections), sections)
	}
	if sections[0] != "Welcome to Acme" {
		t.Errorf("sections[0] = %q", sections[0])
	}
	if sections[1] != "Project Manager\n3 years experience needed" {
		t.Errorf("sections[1] = %q", sections[1])
	}
	if sections[2] != "Software Developer\nGo and SQL" {
		t.Errorf("sections[2] = %q", sections[2])
	}
}

func TestSegment_LeadingTriggerDoesNotFlushEmptyAccumulator(t *testing.T) {
	s := newTestSegmenter(t)
	sections := s.Segment("Project Manager\ndetails here")
	if len(sections) != 1 {
		t.Fatalf("got %d sections, want 1: %q", len(sections), sections)
	}
	if sections[0] != "Project Manager\ndetails here" {
		t.Errorf("sections[0] = %q", sections[0])
	}
}

func TestSegment_BlankAndWhitespaceLinesDropped(t *testing.T) {
	s := newTestSegmenter(t)
	sections := s.Segment("  \n\nhello\n   \nworld\n")
	if len(sections) != 1 {
		t.Fatalf("got %d sections, want 1", len(sections))
	}
	if sections[0] != "hello\nworld" {
		t.Errorf("sections[0] = %q", sections[0])
	}
}

func TestSegment_EmptyInput(t *testing.T) {
	s := newTestSegmenter(t)
	if got := s.Segment(""); len(got) != 0 {
		t.Errorf("Segment(\"\") = %q, want empty", got)
	}
}

func TestSegment_CaseInsensitiveTriggers(t *testing.T) {
	s := newTestSegmenter(t)
	sections := s.Segment("intro line\nDEVOPS ENGINEER wanted\nmore text")
	if len(sections) != 2 {
		t.Fatalf("got %d sections, want 2: %q", len(sections), sections)
	}
}

func TestSegment_ReservedGroupsAreNotTriggers(t *testing.T) {
	s := newTestSegmenter(t)
	// Requirement and location lines belong to the current section; only
	// title/opening lines may start a new one.
	text := "Project Manager\n" +
		"Requirements: a degree\n" +
		"Responsibilities: manage\n" +
		"Lahore office\n"

	sections := s.Segment(text)
	if len(sections) != 1 {
		t.Fatalf("got %d sections, want 1: %q", len(sections), sections)
	}

	if !s.MatchRequirement("Requirements: a degree") {
		t.Error("expected MatchRequirement to match a requirements line")
	}
	if !s.MatchLocation("Lahore office") {
		t.Error("expected MatchLocation to match a location line")
	}
	if s.MatchLocation("nothing relevant") {
		t.Error("MatchLocation matched an unrelated line")
	}
}

func TestSegment_Deterministic(t *testing.T) {
	s := newTestSegmenter(t)
	text := "intro\nProject Manager\ndetails\njob opening\nmore"

	first := s.Segment(text)
	second := s.Segment(text)
	if strings.Join(first, "|") != strings.Join(second, "|") {
		t.Errorf("Segment not deterministic: %q vs %q", first, second)
	}
}

func TestSegment_CountMonotonicUnderAppendedTriggers(t *testing.T) {
	s := newTestSegmenter(t)
	text := "intro\nProject Manager\ndetails"

	base := len(s.Segment(text))
	for i := 0; i < 3; i++ {
		text += "\nnew job opening\nextras"
		count := len(s.Segment(text))
		if count < base {
			t.Fatalf("section count decreased from %d to %d after appending a trigger", base, count)
		}
		base = count
	}
}

func TestNew_InvalidPattern(t *testing.T) {
	_, err := New(Patterns{Titles: []string{"("}})
	if err == nil {
		t.Fatal("expected error for invalid pattern")
	}
}

func TestSegment_OrderingMatchesInput(t *testing.T) {
	s := newTestSegmenter(t)
	text := "first intro\nData Analyst\nsecond body\nSales Manager\nthird body"

	sections := s.Segment(text)
	want := []string{"first intro", "Data Analyst\nsecond body", "Sales Manager\nthird body"}
	if len(sections) != len(want) {
		t.Fatalf("got %d sections, want %d", len(sections), len(want))
	}
	for i := range want {
		if sections[i] != want[i] {
			t.Errorf("sections[%d] = %q, want %q", i, sections[i], want[i])
		}
	}
}
