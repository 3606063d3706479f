package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"jobsift/internal/consolidate"
	"jobsift/internal/filter"
	"jobsift/internal/model"
	"jobsift/internal/segment"
)

// SourcePipeline owns the full extraction pipeline for a single career page:
// fetch → segment → extract → consolidate → filter → dedup → notify → save.
type SourcePipeline struct {
	Name string
	URL  string

	fetcher      model.PageFetcher
	segmenter    *segment.Segmenter
	extractor    model.Extractor
	consolidator *consolidate.Consolidator
	filter       *filter.PostingFilter
	store        model.PostingStore
	notifier     model.Notifier
	logger       *slog.Logger
}

// New creates a pipeline wired with all its dependencies.
func New(
	name, url string,
	fetcher model.PageFetcher,
	segmenter *segment.Segmenter,
	extractor model.Extractor,
	consolidator *consolidate.Consolidator,
	postingFilter *filter.PostingFilter,
	store model.PostingStore,
	notifier model.Notifier,
	logger *slog.Logger,
) *SourcePipeline {
	return &SourcePipeline{
		Name:         name,
		URL:          url,
		fetcher:      fetcher,
		segmenter:    segmenter,
		extractor:    extractor,
		consolidator: consolidator,
		filter:       postingFilter,
		store:        store,
		notifier:     notifier,
		logger:       logger,
	}
}

// Run executes one full pass over the source and returns the postings that
// survive filtering. An empty page or an extractor that finds nothing is
// "nothing to consolidate", not an error.
func (p *SourcePipeline) Run(ctx context.Context) ([]model.Posting, error) {
	text, err := p.fetcher.FetchPage(ctx, p.URL)
	if err != nil {
		return nil, fmt.Errorf("processing %s: fetching page: %w", p.Name, err)
	}

	sections := p.segmenter.Segment(text)
	if len(sections) == 0 {
		p.logger.Info("no job sections found", "source", p.Name)
		return nil, nil
	}
	p.annotateSections(sections)

	fragments, err := p.extractor.Extract(ctx, sections)
	if err != nil {
		return nil, fmt.Errorf("processing %s: extracting fragments: %w", p.Name, err)
	}
	if len(fragments) == 0 {
		p.logger.Info("no extractions found", "source", p.Name)
		return nil, nil
	}

	postings, err := p.consolidator.Consolidate(fragments)
	if err != nil {
		return nil, fmt.Errorf("processing %s: consolidating: %w", p.Name, err)
	}

	kept := p.filter.Apply(postings)

	var newPostings []model.Posting
	for _, posting := range kept {
		seen, err := p.store.HasSeen(posting.Fingerprint())
		if err != nil {
			return nil, fmt.Errorf("processing %s: checking seen status: %w", p.Name, err)
		}
		if !seen {
			newPostings = append(newPostings, posting)
		}
	}

	if len(newPostings) > 0 {
		if err := p.notifier.Notify(newPostings); err != nil {
			return nil, fmt.Errorf("processing %s: notifying: %w", p.Name, err)
		}
	}

	for _, posting := range kept {
		if err := p.store.SavePosting(posting); err != nil {
			return nil, fmt.Errorf("processing %s: saving posting: %w", p.Name, err)
		}
	}

	p.logger.Info("processed source",
		"source", p.Name,
		"sections", len(sections),
		"fragments", len(fragments),
		"consolidated", len(postings),
		"kept", len(kept),
		"new", len(newPostings),
	)

	return kept, nil
}

// annotateSections logs per-section debug stats using the reserved matcher
// groups. These matchers never influence segmentation itself.
func (p *SourcePipeline) annotateSections(sections []string) {
	if !p.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	for i, section := range sections {
		requirementLines, locationLines := 0, 0
		for _, line := range strings.Split(section, "\n") {
			if p.segmenter.MatchRequirement(line) {
				requirementLines++
			}
			if p.segmenter.MatchLocation(line) {
				locationLines++
			}
		}
		p.logger.Debug("section",
			"source", p.Name,
			"index", i,
			"chars", len(section),
			"requirement_lines", requirementLines,
			"location_lines", locationLines,
		)
	}
}
