package testsupport

import (
	"path/filepath"
	"testing"

	"matchframe/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.LockFile = filepath.Join(base, "matchframe.lock")
	cfg.Paths.APIBind = "127.0.0.1:0"
	cfg.Logging.Dir = cfg.Paths.LogDir
	cfg.Notifications.NtfyTopic = ""

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithStudioURL points the studio client at the provided base URL, usually a
// stub server.
func WithStudioURL(url string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Studio.BaseURL = url
	}
}

// WithTemplate overrides the default render template.
func WithTemplate(name string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Render.DefaultTemplate = name
	}
}
