package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks configuration values for internal consistency.
func (c *Config) Validate() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}

	if err := validateURL("purl.base_url", c.Purl.BaseURL, true); err != nil {
		return err
	}
	if c.Goobi.Enabled {
		if err := validateURL("goobi.url", c.Goobi.URL, true); err != nil {
			return err
		}
	}
	if err := validateURL("workflow.url", c.Workflow.URL, false); err != nil {
		return err
	}
	return nil
}

func validateURL(field, value string, required bool) error {
	value = strings.TrimSpace(value)
	if value == "" {
		if required {
			return fmt.Errorf("%s: value is required", field)
		}
		return nil
	}
	parsed, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s: unsupported scheme %q", field, parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%s: missing host", field)
	}
	return nil
}
