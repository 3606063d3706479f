package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"jobsift/internal/browse"
	"jobsift/internal/config"
	"jobsift/internal/model"
	"jobsift/internal/store"
)

var browseFetch bool

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse stored postings interactively",
	Long:  "Opens a TUI over the postings recorded in the store. With --fetch, first picks a source, runs the extraction pipeline on it, and browses the result.",
	RunE:  runBrowse,
}

func init() {
	browseCmd.Flags().BoolVar(&browseFetch, "fetch", false, "run the pipeline on a chosen source before browsing")
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	sqlStore, err := store.NewSQLiteStore(cfg.Store.Path)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer sqlStore.Close()

	var postings []model.Posting
	if browseFetch {
		postings, err = fetchForBrowse(cfg, sqlStore, logger)
		if err != nil {
			logger.Error("fetch failed", "error", err)
			os.Exit(1)
		}
		if postings == nil {
			return nil // user quit the picker
		}
	} else {
		postings, err = sqlStore.ListPostings()
		if err != nil {
			logger.Error("failed to list postings", "error", err)
			os.Exit(1)
		}
	}

	return browse.Run(postings)
}

// fetchForBrowse runs the pipeline on one interactively chosen source, with
// a spinner while it works. Returns nil postings if the user quit the picker.
func fetchForBrowse(cfg *config.Config, postingStore model.PostingStore, logger *slog.Logger) ([]model.Posting, error) {
	var enabled []config.SourceConfig
	for _, s := range cfg.Sources {
		if s.Enabled {
			enabled = append(enabled, s)
		}
	}
	if len(enabled) == 0 {
		return nil, fmt.Errorf("no sources enabled")
	}

	choice := 0
	if len(enabled) > 1 {
		idx, err := browse.RunSourcePicker(enabled)
		if err != nil {
			return nil, err
		}
		if idx < 0 {
			return nil, nil
		}
		choice = idx
	}
	source := enabled[choice]

	pipelines, err := buildPipelines(cfg, postingStore, quietNotifier{}, logger)
	if err != nil {
		return nil, err
	}
	for _, p := range pipelines {
		if p.Name == source.Name {
			return browse.RunLoader(source.Name, p.Run)
		}
	}
	return nil, fmt.Errorf("source %q not registered", source.Name)
}

// quietNotifier suppresses notifications while the TUI owns the terminal.
type quietNotifier struct{}

func (quietNotifier) Notify([]model.Posting) error { return nil }
