package model

import (
	"errors"
	"testing"
)

func TestParseFragmentClass(t *testing.T) {
	tests := []struct {
		in   string
		want FragmentClass
	}{
		{"title", ClassTitle},
		{"location", ClassLocation},
		{"description", ClassDescription},
		{"Title", ClassTitle},
		{"  LOCATION  ", ClassLocation},
		{"salary", ClassUnknown},
		{"", ClassUnknown},
	}
	for _, tt := range tests {
		if got := ParseFragmentClass(tt.in); got != tt.want {
			t.Errorf("ParseFragmentClass(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFragmentClassString_RoundTrips(t *testing.T) {
	for _, c := range []FragmentClass{ClassTitle, ClassLocation, ClassDescription} {
		if got := ParseFragmentClass(c.String()); got != c {
			t.Errorf("ParseFragmentClass(%q) = %v, want %v", c.String(), got, c)
		}
	}
	if ClassUnknown.String() != "unknown" {
		t.Errorf("ClassUnknown.String() = %q", ClassUnknown.String())
	}
}

func TestNewFragment(t *testing.T) {
	f, err := NewFragment("title", "Project Manager")
	if err != nil {
		t.Fatalf("NewFragment: %v", err)
	}
	if f.Class != ClassTitle || f.Text != "Project Manager" {
		t.Errorf("fragment = %+v", f)
	}

	// Unrecognized labels are kept as ClassUnknown, not rejected.
	f, err = NewFragment("salary", "competitive")
	if err != nil {
		t.Fatalf("NewFragment: %v", err)
	}
	if f.Class != ClassUnknown {
		t.Errorf("Class = %v, want unknown", f.Class)
	}
}

func TestNewFragment_MissingFields(t *testing.T) {
	tests := []struct {
		name      string
		class     string
		text      string
		wantField string
	}{
		{name: "empty class", class: "", text: "Project Manager", wantField: "class"},
		{name: "blank class", class: "   ", text: "Project Manager", wantField: "class"},
		{name: "empty text", class: "title", text: "", wantField: "text"},
		{name: "blank text", class: "title", text: "  \t ", wantField: "text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFragment(tt.class, tt.text)
			var invalid *InvalidFragmentError
			if !errors.As(err, &invalid) {
				t.Fatalf("error = %v, want *InvalidFragmentError", err)
			}
			if invalid.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", invalid.Field, tt.wantField)
			}
		})
	}
}

func TestFingerprint(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Project Manager", "project manager"},
		{"  Developer  ", "developer"},
		{"SALES EXECUTIVE", "sales executive"},
	}
	for _, tt := range tests {
		p := Posting{Title: tt.title}
		if got := p.Fingerprint(); got != tt.want {
			t.Errorf("Fingerprint(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}
