package extract

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"

	"jobsift/internal/model"
)

//go:embed prompts/extraction.md
var extractionPromptRaw string

// extractionTemplate is the parsed prompt template for fragment extraction.
// Parsed once at package init; reused on every Extract call.
var extractionTemplate = template.Must(template.New("extraction").Parse(extractionPromptRaw))

// ExampleDoc is one few-shot worked example rendered into the prompt: a
// snippet of page text and the fragments a correct extraction yields.
type ExampleDoc struct {
	Text      string
	Fragments []model.Fragment
}

// DefaultExamples returns the built-in worked example: a duplicated job
// title whose details must merge into one posting.
func DefaultExamples() []ExampleDoc {
	return []ExampleDoc{
		{
			Text: "Project Manager\n" +
				"Karachi, Pakistan\n" +
				"Minimum 3 years experience required.\n" +
				"\n" +
				"Project Manager\n" +
				"Requirements: Bachelor's degree, Agile experience\n" +
				"Responsibilities: Manage projects, coordinate with clients\n" +
				"Apply by Aug 31, 2025",
			Fragments: []model.Fragment{
				{Class: model.ClassTitle, Text: "Project Manager"},
				{Class: model.ClassLocation, Text: "Karachi, Pakistan"},
				{Class: model.ClassDescription, Text: "Minimum 3 years experience required. " +
					"Requirements: Bachelor's degree, Agile experience. " +
					"Responsibilities: Manage projects, coordinate with clients. " +
					"Apply by Aug 31, 2025."},
			},
		},
	}
}

// renderPrompt fills the extraction template with the combined section text
// and the few-shot examples.
func renderPrompt(text string, examples []ExampleDoc) (string, error) {
	var buf bytes.Buffer
	err := extractionTemplate.Execute(&buf, struct {
		Text     string
		Examples []ExampleDoc
	}{
		Text:     text,
		Examples: examples,
	})
	if err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return buf.String(), nil
}
