package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeStudio()
	c.normalizeRender()
	c.normalizeNotifications()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LockFile) == "" {
		c.Paths.LockFile = defaultLockFile
	}
	if c.Paths.LockFile, err = expandPath(c.Paths.LockFile); err != nil {
		return fmt.Errorf("paths.lock_file: %w", err)
	}
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	if c.Paths.APIBind == "" {
		c.Paths.APIBind = defaultAPIBind
	}
	c.Paths.APIToken = strings.TrimSpace(c.Paths.APIToken)
	return nil
}

func (c *Config) normalizeStudio() {
	c.Studio.BaseURL = strings.TrimRight(strings.TrimSpace(c.Studio.BaseURL), "/")
	if c.Studio.BaseURL == "" {
		c.Studio.BaseURL = defaultStudioBaseURL
	}
	if c.Studio.APIKey == "" {
		if value, ok := os.LookupEnv("MATCHFRAME_STUDIO_API_KEY"); ok {
			c.Studio.APIKey = strings.TrimSpace(value)
		}
	}
	if c.Studio.RequestTimeout <= 0 {
		c.Studio.RequestTimeout = defaultStudioRequestTimeout
	}
	if c.Studio.RenderTimeout <= 0 {
		c.Studio.RenderTimeout = defaultStudioRenderTimeout
	}
	if c.Studio.RequestsPerMinute <= 0 {
		c.Studio.RequestsPerMinute = defaultStudioRequestsPerMinute
	}
}

func (c *Config) normalizeRender() {
	c.Render.DefaultTemplate = strings.TrimSpace(c.Render.DefaultTemplate)
	if c.Render.DefaultTemplate == "" {
		c.Render.DefaultTemplate = defaultTemplate
	}
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyRequestTimeout
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
	if strings.TrimSpace(c.Logging.Dir) == "" {
		c.Logging.Dir = c.Paths.LogDir
	}
}
