package main

import (
	"context"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"lectern/internal/client"
	"lectern/internal/config"
)

type commandContext struct {
	configFlag *string
	serverFlag *string
	tokenFlag  *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, serverFlag, tokenFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		serverFlag: serverFlag,
		tokenFlag:  tokenFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) serverURL() string {
	if c.serverFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.serverFlag)
}

func (c *commandContext) apiToken(cfg *config.Config) string {
	if c.tokenFlag != nil && strings.TrimSpace(*c.tokenFlag) != "" {
		return strings.TrimSpace(*c.tokenFlag)
	}
	if cfg != nil {
		return cfg.Paths.APIToken
	}
	return ""
}

// withRepository runs fn against either a remote server or the local
// database, depending on whether --server was provided.
func (c *commandContext) withRepository(cmd *cobra.Command, fn func(context.Context, repository) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}

	var repo repository
	if url := c.serverURL(); url != "" {
		repo = &remoteRepository{client: client.New(url, c.apiToken(cfg))}
	} else {
		local, err := openLocalRepository(cfg)
		if err != nil {
			return err
		}
		repo = local
	}
	defer repo.Close()

	return fn(cmd.Context(), repo)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
