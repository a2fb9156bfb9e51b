package config

import (
	"errors"
	"fmt"
	"os"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateStudio(); err != nil {
		return err
	}
	if err := c.validateTimeouts(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.LogDir == "" {
		return errors.New("paths.log_dir must be set")
	}
	if c.Paths.StateDir == "" {
		return errors.New("paths.state_dir must be set")
	}
	return nil
}

func (c *Config) validateStudio() error {
	if c.Studio.Executable == "" {
		return nil
	}
	info, err := os.Stat(c.Studio.Executable)
	if err != nil {
		return fmt.Errorf("studio.executable %q: %w", c.Studio.Executable, err)
	}
	if info.IsDir() {
		return fmt.Errorf("studio.executable %q is a directory", c.Studio.Executable)
	}
	return nil
}

func (c *Config) validateTimeouts() error {
	if c.Timeouts.LaunchSeconds <= 0 {
		return errors.New("timeouts.launch_seconds must be positive")
	}
	if c.Timeouts.AttachSeconds <= 0 {
		return errors.New("timeouts.attach_seconds must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level %q is not recognized", c.Logging.Level)
	}
	return nil
}
