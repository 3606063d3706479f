package extract

import (
	"context"

	"jobsift/internal/model"
)

// NopExtractor is a no-op extractor used when the extraction model is
// disabled. It returns no fragments and makes no network calls.
type NopExtractor struct{}

// NewNopExtractor returns a NopExtractor.
func NewNopExtractor() *NopExtractor {
	return &NopExtractor{}
}

// Extract returns no fragments.
func (n *NopExtractor) Extract(_ context.Context, _ []string) ([]model.Fragment, error) {
	return nil, nil
}
