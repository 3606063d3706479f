package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"jobsift/internal/config"
	"jobsift/internal/consolidate"
	"jobsift/internal/extract"
	"jobsift/internal/fetch"
	"jobsift/internal/filter"
	"jobsift/internal/model"
	"jobsift/internal/notifier"
	"jobsift/internal/pipeline"
	"jobsift/internal/segment"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "jobsift",
	Short: "Job-posting extraction and dedup for messy career pages",
	Long:  "Jobsift fetches career pages, segments them into candidate postings, runs an extraction model, and consolidates the result into clean, deduplicated job postings.",
	// Default to `run` so that `jobsift` with no args processes all sources.
	RunE: runRun,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: JOBSIFT_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > JOBSIFT_CONFIG env var > "./config.yaml"
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if env := os.Getenv("JOBSIFT_CONFIG"); env != "" {
			path = env
		} else {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

func setupNotifier(cfg *config.Config, httpClient *http.Client, logger *slog.Logger) model.Notifier {
	switch cfg.Notification.Type {
	case "slack":
		logger.Info("using slack notifier")
		return notifier.NewSlackNotifier(cfg.Notification.WebhookURL, httpClient, logger)
	default:
		return notifier.NewLogNotifier(logger)
	}
}

func setupExtractor(cfg *config.Config, logger *slog.Logger) model.Extractor {
	if !cfg.Extractor.Enabled {
		logger.Info("extractor disabled, using nop extractor")
		return extract.NewNopExtractor()
	}
	httpClient := &http.Client{Timeout: cfg.Extractor.Timeout}
	return extract.NewOpenAIExtractor(cfg.Extractor.BaseURL, cfg.Extractor.APIKey, cfg.Extractor.Model, httpClient, nil)
}

// buildPipelines constructs one pipeline per enabled source, sharing the
// segmenter, consolidator, filter, store, and notifier.
func buildPipelines(cfg *config.Config, postingStore model.PostingStore, n model.Notifier, logger *slog.Logger) ([]*pipeline.SourcePipeline, error) {
	segmenter, err := segment.New(cfg.Segmenter)
	if err != nil {
		return nil, fmt.Errorf("build segmenter: %w", err)
	}

	var opts []consolidate.Option
	opts = append(opts, consolidate.WithMinSentenceChars(cfg.Consolidate.MinSentenceChars))
	if cfg.Consolidate.FuzzyThreshold > 0 {
		logger.Info("fuzzy title merging enabled", "threshold", cfg.Consolidate.FuzzyThreshold)
		opts = append(opts, consolidate.WithFuzzyMerge(cfg.Consolidate.FuzzyThreshold))
	}
	consolidator := consolidate.New(cfg.Consolidate.Denylist, opts...)

	postingFilter := filter.New(cfg.Filter.RoleKeywords, cfg.Filter.MinDescriptionChars)

	httpClient := &http.Client{Timeout: cfg.Fetch.Timeout}
	var fetcher model.PageFetcher = fetch.NewHTTPPageFetcher(httpClient)
	fetcher = fetch.NewRetryFetcher(fetcher, cfg.Fetch.MaxRetries, cfg.Fetch.RetryBaseDelay, logger)

	extractor := setupExtractor(cfg, logger)

	var pipelines []*pipeline.SourcePipeline
	for _, source := range cfg.Sources {
		if !source.Enabled {
			continue
		}
		p := pipeline.New(source.Name, source.URL, fetcher, segmenter, extractor, consolidator, postingFilter, postingStore, n, logger)
		pipelines = append(pipelines, p)
		logger.Info("registered source", "name", source.Name, "url", source.URL)
	}
	return pipelines, nil
}
