package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const validConfig = `
sources:
  - name: acme
    url: https://acme.test/careers
    enabled: true
  - name: disabled-co
    url: https://disabled.test/jobs
    enabled: false

fetch:
  timeout: 10s
  max_retries: 3
  retry_base_delay: 2s

consolidate:
  fuzzy_threshold: 0.85

filter:
  min_description_chars: 80

extractor:
  enabled: true
  model: gpt-4o
  api_key: test-key
  timeout: 45s

notification:
  type: log

store:
  path: /tmp/jobsift-test.db
  retention: 720h
`

func TestLoad_ValidConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(cfg.Sources) != 2 {
		t.Errorf("got %d sources, want 2", len(cfg.Sources))
	}
	if cfg.Sources[0].Name != "acme" || !cfg.Sources[0].Enabled {
		t.Errorf("first source = %+v", cfg.Sources[0])
	}
	if cfg.Fetch.Timeout != 10*time.Second {
		t.Errorf("Fetch.Timeout = %v", cfg.Fetch.Timeout)
	}
	if cfg.Fetch.MaxRetries != 3 {
		t.Errorf("Fetch.MaxRetries = %d", cfg.Fetch.MaxRetries)
	}
	if cfg.Consolidate.FuzzyThreshold != 0.85 {
		t.Errorf("Consolidate.FuzzyThreshold = %v", cfg.Consolidate.FuzzyThreshold)
	}
	if cfg.Filter.MinDescriptionChars != 80 {
		t.Errorf("Filter.MinDescriptionChars = %d", cfg.Filter.MinDescriptionChars)
	}
	if cfg.Extractor.Model != "gpt-4o" || cfg.Extractor.Timeout != 45*time.Second {
		t.Errorf("Extractor = %+v", cfg.Extractor)
	}
	if cfg.Store.Retention != 720*time.Hour {
		t.Errorf("Store.Retention = %v", cfg.Store.Retention)
	}
}

func TestLoad_AppliesDefaults(t *testing.T) {
	minimal := `
sources:
  - name: acme
    url: https://acme.test/careers
    enabled: true
`
	cfg, err := Load(writeConfig(t, minimal))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Fetch.Timeout != 30*time.Second {
		t.Errorf("default Fetch.Timeout = %v, want 30s", cfg.Fetch.Timeout)
	}
	if cfg.Fetch.MaxRetries != 2 {
		t.Errorf("default Fetch.MaxRetries = %d, want 2", cfg.Fetch.MaxRetries)
	}
	if len(cfg.Segmenter.Titles) == 0 || len(cfg.Segmenter.Openings) == 0 {
		t.Error("segmenter patterns not defaulted")
	}
	if len(cfg.Consolidate.Denylist) == 0 {
		t.Error("denylist not defaulted")
	}
	if cfg.Consolidate.MinSentenceChars != 10 {
		t.Errorf("default MinSentenceChars = %d, want 10", cfg.Consolidate.MinSentenceChars)
	}
	if cfg.Consolidate.FuzzyThreshold != 0 {
		t.Errorf("FuzzyThreshold = %v, want 0 (disabled)", cfg.Consolidate.FuzzyThreshold)
	}
	if len(cfg.Filter.RoleKeywords) == 0 {
		t.Error("role keywords not defaulted")
	}
	if cfg.Filter.MinDescriptionChars != 50 {
		t.Errorf("default MinDescriptionChars = %d, want 50", cfg.Filter.MinDescriptionChars)
	}
	if cfg.Extractor.BaseURL != defaultOpenAIBaseURL {
		t.Errorf("default BaseURL = %q", cfg.Extractor.BaseURL)
	}
	if cfg.Store.Path != "jobsift.db" {
		t.Errorf("default Store.Path = %q", cfg.Store.Path)
	}
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	t.Setenv("JOBSIFT_TEST_API_KEY", "secret-from-env")
	content := `
sources:
  - name: acme
    url: https://acme.test/careers
    enabled: true
extractor:
  enabled: true
  model: gpt-4o
  api_key: ${JOBSIFT_TEST_API_KEY}
`
	cfg, err := Load(writeConfig(t, content))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Extractor.APIKey != "secret-from-env" {
		t.Errorf("APIKey = %q, want value from environment", cfg.Extractor.APIKey)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "no enabled sources",
			content: "sources:\n  - name: acme\n    url: https://acme.test\n    enabled: false\n",
			wantErr: "at least one source",
		},
		{
			name:    "enabled source without url",
			content: "sources:\n  - name: acme\n    enabled: true\n",
			wantErr: "has no url",
		},
		{
			name: "fuzzy threshold out of range",
			content: `
sources:
  - name: acme
    url: https://acme.test
    enabled: true
consolidate:
  fuzzy_threshold: 1.0
`,
			wantErr: "fuzzy_threshold",
		},
		{
			name: "slack without webhook",
			content: `
sources:
  - name: acme
    url: https://acme.test
    enabled: true
notification:
  type: slack
`,
			wantErr: "webhook_url is required",
		},
		{
			name: "slack with non-slack webhook",
			content: `
sources:
  - name: acme
    url: https://acme.test
    enabled: true
notification:
  type: slack
  webhook_url: https://example.com/hook
`,
			wantErr: "must start with",
		},
		{
			name: "extractor enabled without api key",
			content: `
sources:
  - name: acme
    url: https://acme.test
    enabled: true
extractor:
  enabled: true
  model: gpt-4o
`,
			wantErr: "api_key is required",
		},
		{
			name: "extractor enabled without model",
			content: `
sources:
  - name: acme
    url: https://acme.test
    enabled: true
extractor:
  enabled: true
  api_key: key
`,
			wantErr: "model is required",
		},
		{
			name: "bad fetch timeout",
			content: `
sources:
  - name: acme
    url: https://acme.test
    enabled: true
fetch:
  timeout: banana
`,
			wantErr: "fetch.timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_CustomPatternsOverrideDefaults(t *testing.T) {
	content := `
sources:
  - name: acme
    url: https://acme.test
    enabled: true
segmenter:
  title_patterns:
    - "staff engineer"
consolidate:
  denylist:
    - "internal tooling"
filter:
  role_keywords:
    - "engineer"
`
	cfg, err := Load(writeConfig(t, content))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Segmenter.Titles) != 1 || cfg.Segmenter.Titles[0] != "staff engineer" {
		t.Errorf("Segmenter.Titles = %v", cfg.Segmenter.Titles)
	}
	if len(cfg.Consolidate.Denylist) != 1 || cfg.Consolidate.Denylist[0] != "internal tooling" {
		t.Errorf("Consolidate.Denylist = %v", cfg.Consolidate.Denylist)
	}
	if len(cfg.Filter.RoleKeywords) != 1 || cfg.Filter.RoleKeywords[0] != "engineer" {
		t.Errorf("Filter.RoleKeywords = %v", cfg.Filter.RoleKeywords)
	}
}
