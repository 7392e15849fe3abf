package testsupport

import (
	"path/filepath"
	"testing"

	"lectern/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.APIBind = "127.0.0.1:0"
	cfg.Paths.APIToken = "test-token"

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithWorkflowURL points the workflow client at a test server.
func WithWorkflowURL(url string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Workflow.URL = url
	}
}

// WithGoobi enables Goobi notification against a test server.
func WithGoobi(url string, maxAttempts int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Goobi.Enabled = true
		cfg.Goobi.URL = url
		cfg.Goobi.MaxAttempts = maxAttempts
		cfg.Goobi.RetryDelaySeconds = 0
	}
}
