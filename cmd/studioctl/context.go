package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"studioctl/internal/config"
	"studioctl/internal/history"
	"studioctl/internal/logging"
	"studioctl/internal/sessionctl"
)

type commandContext struct {
	configFlag *string
	pidFlag    *int
	jsonFlag   *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string, pidFlag *int, jsonFlag *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		pidFlag:    pidFlag,
		jsonFlag:   jsonFlag,
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

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) jsonOutput() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

func (c *commandContext) pid() int {
	if c.pidFlag == nil {
		return 0
	}
	return *c.pidFlag
}

func (c *commandContext) runtime() (*sessionctl.Runtime, func(), error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, nil, err
	}

	rt := sessionctl.NewRuntime(cfg, logger)
	cleanup := func() {}
	if cfg.History.Enabled {
		store, err := history.Open(cfg)
		if err != nil {
			// History is bookkeeping; a broken store must not block control.
			logger.Warn("open history store", logging.Args(logging.Error(err))...)
		} else {
			rt.History = store
			cleanup = func() { store.Close() }
		}
	}
	return rt, cleanup, nil
}

// withStudio attaches to a running studio instance and runs fn inside the
// session scope. Attach commands never shut the studio down.
func (c *commandContext) withStudio(cmd *cobra.Command, fn sessionctl.Scope) error {
	rt, cleanup, err := c.runtime()
	if err != nil {
		return err
	}
	defer cleanup()

	opts := sessionctl.DefaultAttachOptions(rt.Config)
	opts.PID = c.pid()
	return rt.ConnectToExisting(cmd.Context(), opts, fn)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
