package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"matchframe/internal/config"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, _, exists, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Fatal("expected missing config file to report exists=false")
	}
	if cfg.Studio.BaseURL == "" {
		t.Fatal("expected default studio base URL")
	}
	if cfg.Render.DefaultTemplate != "classic" {
		t.Fatalf("unexpected default template %q", cfg.Render.DefaultTemplate)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := strings.Join([]string{
		"[studio]",
		`base_url = "https://studio.example.com/"`,
		"request_timeout = 5",
		"",
		"[render]",
		`default_template = "  neon "`,
		"boost_odds = true",
		"",
		"[logging]",
		`format = "JSON"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists || resolved == "" {
		t.Fatalf("expected config to resolve, got exists=%v path=%q", exists, resolved)
	}
	if cfg.Studio.BaseURL != "https://studio.example.com" {
		t.Fatalf("base URL not trimmed: %q", cfg.Studio.BaseURL)
	}
	if cfg.Render.DefaultTemplate != "neon" {
		t.Fatalf("template not trimmed: %q", cfg.Render.DefaultTemplate)
	}
	if !cfg.Render.BoostOdds {
		t.Fatal("boost_odds not parsed")
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("logging format not normalized: %q", cfg.Logging.Format)
	}
}

func TestLoadRejectsBadBaseURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[studio]\nbase_url = \"not a url\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for malformed base URL")
	}
}

func TestStudioAPIKeyEnvFallback(t *testing.T) {
	t.Setenv("MATCHFRAME_STUDIO_API_KEY", "from-env")
	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Studio.APIKey != "from-env" {
		t.Fatalf("expected env fallback, got %q", cfg.Studio.APIKey)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[studio]") {
		t.Fatal("sample config missing studio section")
	}
}
