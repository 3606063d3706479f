package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"jobsift/internal/consolidate"
	"jobsift/internal/filter"
	"jobsift/internal/segment"
)

// Config is the root configuration for jobsift.
type Config struct {
	Sources      []SourceConfig
	Fetch        FetchConfig
	Segmenter    segment.Patterns
	Consolidate  ConsolidateConfig
	Filter       FilterConfig
	Extractor    ExtractorConfig
	Notification NotificationConfig
	Store        StoreConfig
}

// SourceConfig describes a single career page to process.
type SourceConfig struct {
	Name    string `yaml:"name"`
	URL     string `yaml:"url"`
	Enabled bool   `yaml:"enabled"`
}

// FetchConfig controls the HTTP page fetcher.
type FetchConfig struct {
	Timeout        time.Duration
	MaxRetries     int
	RetryBaseDelay time.Duration
}

// ConsolidateConfig holds grouping and dedup heuristics.
type ConsolidateConfig struct {
	Denylist         []string
	MinSentenceChars int
	FuzzyThreshold   float64 // 0 disables fuzzy title merging
}

// FilterConfig holds the final posting filter settings.
type FilterConfig struct {
	RoleKeywords        []string
	MinDescriptionChars int
}

// ExtractorConfig controls the OpenAI extraction layer.
type ExtractorConfig struct {
	Enabled bool
	BaseURL string        // defaults to https://api.openai.com/v1
	Model   string        // OpenAI model identifier, e.g. "gpt-4o"
	APIKey  string        // expanded from env var by Load
	Timeout time.Duration // per-request timeout
}

// NotificationConfig controls which notifier is used and its settings.
type NotificationConfig struct {
	Type       string `yaml:"type"`        // "log" or "slack"
	WebhookURL string `yaml:"webhook_url"` // required if type is "slack"
}

// StoreConfig controls the posting store.
type StoreConfig struct {
	Path      string
	Retention time.Duration // postings older than this are pruned; 0 keeps forever
}

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

// rawConfig is used for YAML unmarshaling (snake_case fields and durations as strings).
type rawConfig struct {
	Sources      []SourceConfig       `yaml:"sources"`
	Fetch        rawFetchConfig       `yaml:"fetch"`
	Segmenter    rawSegmenterConfig   `yaml:"segmenter"`
	Consolidate  rawConsolidateConfig `yaml:"consolidate"`
	Filter       rawFilterConfig      `yaml:"filter"`
	Extractor    rawExtractorConfig   `yaml:"extractor"`
	Notification NotificationConfig   `yaml:"notification"`
	Store        rawStoreConfig       `yaml:"store"`
}

type rawFetchConfig struct {
	Timeout        string `yaml:"timeout"`
	MaxRetries     *int   `yaml:"max_retries"`
	RetryBaseDelay string `yaml:"retry_base_delay"`
}

type rawSegmenterConfig struct {
	TitlePatterns       []string `yaml:"title_patterns"`
	OpeningPatterns     []string `yaml:"opening_patterns"`
	RequirementPatterns []string `yaml:"requirement_patterns"`
	LocationPatterns    []string `yaml:"location_patterns"`
}

type rawConsolidateConfig struct {
	Denylist         []string `yaml:"denylist"`
	MinSentenceChars *int     `yaml:"min_sentence_chars"`
	FuzzyThreshold   float64  `yaml:"fuzzy_threshold"`
}

type rawFilterConfig struct {
	RoleKeywords        []string `yaml:"role_keywords"`
	MinDescriptionChars *int     `yaml:"min_description_chars"`
}

type rawExtractorConfig struct {
	Enabled bool   `yaml:"enabled"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
	APIKey  string `yaml:"api_key"`
	Timeout string `yaml:"timeout"`
}

type rawStoreConfig struct {
	Path      string `yaml:"path"`
	Retention string `yaml:"retention"`
}

// Load reads and parses the YAML config file at path, applies defaults,
// validates it, and returns Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	fetchTimeout := 30 * time.Second
	if raw.Fetch.Timeout != "" {
		fetchTimeout, err = time.ParseDuration(raw.Fetch.Timeout)
		if err != nil {
			return nil, fmt.Errorf("parse fetch.timeout %q: %w", raw.Fetch.Timeout, err)
		}
	}

	maxRetries := 2
	if raw.Fetch.MaxRetries != nil {
		maxRetries = *raw.Fetch.MaxRetries
	}

	retryBaseDelay := 5 * time.Second
	if raw.Fetch.RetryBaseDelay != "" {
		retryBaseDelay, err = time.ParseDuration(raw.Fetch.RetryBaseDelay)
		if err != nil {
			return nil, fmt.Errorf("parse fetch.retry_base_delay %q: %w", raw.Fetch.RetryBaseDelay, err)
		}
	}

	patterns := segment.DefaultPatterns()
	if len(raw.Segmenter.TitlePatterns) > 0 {
		patterns.Titles = raw.Segmenter.TitlePatterns
	}
	if len(raw.Segmenter.OpeningPatterns) > 0 {
		patterns.Openings = raw.Segmenter.OpeningPatterns
	}
	if len(raw.Segmenter.RequirementPatterns) > 0 {
		patterns.Requirements = raw.Segmenter.RequirementPatterns
	}
	if len(raw.Segmenter.LocationPatterns) > 0 {
		patterns.Locations = raw.Segmenter.LocationPatterns
	}

	denylist := raw.Consolidate.Denylist
	if len(denylist) == 0 {
		denylist = consolidate.DefaultDenylist()
	}

	minSentenceChars := consolidate.DefaultMinSentenceChars
	if raw.Consolidate.MinSentenceChars != nil {
		minSentenceChars = *raw.Consolidate.MinSentenceChars
	}

	roleKeywords := raw.Filter.RoleKeywords
	if len(roleKeywords) == 0 {
		roleKeywords = filter.DefaultRoleKeywords()
	}

	minDescriptionChars := filter.DefaultMinDescriptionChars
	if raw.Filter.MinDescriptionChars != nil {
		minDescriptionChars = *raw.Filter.MinDescriptionChars
	}

	extractorTimeout := 60 * time.Second
	if raw.Extractor.Timeout != "" {
		extractorTimeout, err = time.ParseDuration(raw.Extractor.Timeout)
		if err != nil {
			return nil, fmt.Errorf("parse extractor.timeout %q: %w", raw.Extractor.Timeout, err)
		}
	}

	extractorBaseURL := raw.Extractor.BaseURL
	if extractorBaseURL == "" {
		extractorBaseURL = defaultOpenAIBaseURL
	}

	storePath := raw.Store.Path
	if storePath == "" {
		storePath = "jobsift.db"
	}

	var retention time.Duration
	if raw.Store.Retention != "" {
		retention, err = time.ParseDuration(raw.Store.Retention)
		if err != nil {
			return nil, fmt.Errorf("parse store.retention %q: %w", raw.Store.Retention, err)
		}
	}

	cfg := &Config{
		Sources: raw.Sources,
		Fetch: FetchConfig{
			Timeout:        fetchTimeout,
			MaxRetries:     maxRetries,
			RetryBaseDelay: retryBaseDelay,
		},
		Segmenter: patterns,
		Consolidate: ConsolidateConfig{
			Denylist:         denylist,
			MinSentenceChars: minSentenceChars,
			FuzzyThreshold:   raw.Consolidate.FuzzyThreshold,
		},
		Filter: FilterConfig{
			RoleKeywords:        roleKeywords,
			MinDescriptionChars: minDescriptionChars,
		},
		Extractor: ExtractorConfig{
			Enabled: raw.Extractor.Enabled,
			BaseURL: extractorBaseURL,
			Model:   raw.Extractor.Model,
			APIKey:  raw.Extractor.APIKey,
			Timeout: extractorTimeout,
		},
		Notification: raw.Notification,
		Store: StoreConfig{
			Path:      storePath,
			Retention: retention,
		},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	enabled := 0
	for _, s := range cfg.Sources {
		if s.Enabled {
			if s.URL == "" {
				return fmt.Errorf("source %q is enabled but has no url", s.Name)
			}
			enabled++
		}
	}
	if enabled == 0 {
		return fmt.Errorf("at least one source must be enabled")
	}

	if cfg.Fetch.Timeout <= 0 {
		return fmt.Errorf("fetch.timeout must be positive, got %v", cfg.Fetch.Timeout)
	}
	if cfg.Fetch.MaxRetries < 0 {
		return fmt.Errorf("fetch.max_retries must not be negative, got %d", cfg.Fetch.MaxRetries)
	}

	if cfg.Consolidate.MinSentenceChars < 0 {
		return fmt.Errorf("consolidate.min_sentence_chars must not be negative, got %d", cfg.Consolidate.MinSentenceChars)
	}
	if cfg.Consolidate.FuzzyThreshold < 0 || cfg.Consolidate.FuzzyThreshold >= 1 {
		return fmt.Errorf("consolidate.fuzzy_threshold must be in [0, 1), got %v", cfg.Consolidate.FuzzyThreshold)
	}

	if cfg.Filter.MinDescriptionChars < 0 {
		return fmt.Errorf("filter.min_description_chars must not be negative, got %d", cfg.Filter.MinDescriptionChars)
	}

	if cfg.Notification.Type == "slack" {
		if cfg.Notification.WebhookURL == "" {
			return fmt.Errorf("notification.webhook_url is required when type is \"slack\"")
		}
		const slackPrefix = "https://hooks.slack.com/"
		if len(cfg.Notification.WebhookURL) < len(slackPrefix) ||
			cfg.Notification.WebhookURL[:len(slackPrefix)] != slackPrefix {
			return fmt.Errorf("notification.webhook_url must start with %s", slackPrefix)
		}
	}

	if cfg.Extractor.Enabled {
		if cfg.Extractor.APIKey == "" {
			return fmt.Errorf("extractor.api_key is required when extractor.enabled is true")
		}
		if cfg.Extractor.Model == "" {
			return fmt.Errorf("extractor.model is required when extractor.enabled is true")
		}
	}

	return nil
}
