package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizePurl()
	c.normalizeGoobi()
	c.normalizeWorkflow()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	if c.Paths.APIBind == "" {
		c.Paths.APIBind = defaultAPIBind
	}
	c.Paths.APIToken = strings.TrimSpace(c.Paths.APIToken)
	return nil
}

func (c *Config) normalizePurl() {
	c.Purl.BaseURL = strings.TrimRight(strings.TrimSpace(c.Purl.BaseURL), "/")
	if c.Purl.BaseURL == "" {
		c.Purl.BaseURL = defaultPurlBaseURL
	}
}

func (c *Config) normalizeGoobi() {
	c.Goobi.URL = strings.TrimSpace(c.Goobi.URL)
	if c.Goobi.MaxAttempts <= 0 {
		c.Goobi.MaxAttempts = defaultGoobiMaxAttempts
	}
	if c.Goobi.RetryDelaySeconds <= 0 {
		c.Goobi.RetryDelaySeconds = defaultGoobiRetryDelay
	}
	if c.Goobi.RequestTimeout <= 0 {
		c.Goobi.RequestTimeout = defaultGoobiTimeout
	}
}

func (c *Config) normalizeWorkflow() {
	c.Workflow.URL = strings.TrimRight(strings.TrimSpace(c.Workflow.URL), "/")
	if c.Workflow.RequestTimeout <= 0 {
		c.Workflow.RequestTimeout = defaultWorkflowTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
