package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"jobsift/internal/model"
	"jobsift/internal/notifier"
	"jobsift/internal/report"
	"jobsift/internal/store"
)

var (
	dryRun    bool
	testSlack bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Process all enabled sources and print extracted postings",
	Long:  "Fetches each enabled source, extracts and consolidates postings, prints the final report, and records new postings in the store.",
	RunE:  runRun,
}

func init() {
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "do not persist postings, print the report and exit")
	runCmd.Flags().BoolVar(&testSlack, "test-slack", false, "send a test message to Slack and exit")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("config loaded",
		"sources", len(cfg.Sources),
		"role_keywords", cfg.Filter.RoleKeywords,
		"extractor_enabled", cfg.Extractor.Enabled,
	)

	httpClient := &http.Client{Timeout: 30 * time.Second}
	n := setupNotifier(cfg, httpClient, logger)

	if testSlack {
		if cfg.Notification.Type != "slack" {
			logger.Error("--test-slack requires notification.type to be \"slack\" in config")
			os.Exit(1)
		}
		if err := notifier.SendTestMessage(n); err != nil {
			logger.Error("test slack message failed", "error", err)
			os.Exit(1)
		}
		logger.Info("test slack message sent successfully")
		return nil
	}

	// In dry-run mode, use a NopStore so nothing is persisted.
	var postingStore model.PostingStore
	if dryRun {
		logger.Info("dry-run mode enabled, postings will not be persisted")
		postingStore = store.NewNopStore()
	} else {
		sqlStore, err := store.NewSQLiteStore(cfg.Store.Path)
		if err != nil {
			logger.Error("failed to open store", "error", err)
			os.Exit(1)
		}
		defer sqlStore.Close()

		if cfg.Store.Retention > 0 {
			if err := sqlStore.Cleanup(cfg.Store.Retention); err != nil {
				logger.Warn("store cleanup failed", "error", err)
			}
		}
		postingStore = sqlStore
	}

	pipelines, err := buildPipelines(cfg, postingStore, n, logger)
	if err != nil {
		logger.Error("failed to build pipelines", "error", err)
		os.Exit(1)
	}
	if len(pipelines) == 0 {
		logger.Error("no sources to process")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var all []model.Posting
	for _, p := range pipelines {
		postings, err := p.Run(ctx)
		if err != nil {
			logger.Error("source failed", "source", p.Name, "error", err)
			continue
		}
		all = append(all, postings...)
	}

	report.Write(os.Stdout, all)
	return nil
}
