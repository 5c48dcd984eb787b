package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"matchframe/internal/batch"
	"matchframe/internal/config"
	"matchframe/internal/eventlog"
	"matchframe/internal/logging"
	"matchframe/internal/notifications"
	"matchframe/internal/services/studio"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(c.configPath())
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

// engine bundles the collaborators one-shot commands drive in-process.
type engine struct {
	cfg      *config.Config
	client   *studio.Client
	events   *eventlog.Log
	notifier notifications.Service
	orch     *batch.Orchestrator
}

func (c *commandContext) buildEngine() (*engine, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	client := studio.NewClient(cfg)
	events := eventlog.New()
	notifier := notifications.NewService(cfg)
	return &engine{
		cfg:      cfg,
		client:   client,
		events:   events,
		notifier: notifier,
		orch:     batch.New(cfg, client, events, notifier, logging.NewNop()),
	}, nil
}

// rewireLogger rebuilds the orchestrator around a real logger; the shared
// event log and client survive the swap.
func (e *engine) rewireLogger(logger *slog.Logger) {
	e.orch = batch.New(e.cfg, e.client, e.events, e.notifier, logger)
}

// apiGet queries a running `matchframe serve` instance. One-shot commands use
// it for state that lives in the serving process, like the event log.
func (c *commandContext) apiGet(path string, out any) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	bind := strings.TrimSpace(cfg.Paths.APIBind)
	if bind == "" {
		return fmt.Errorf("api_bind is not configured")
	}

	req, err := http.NewRequest(http.MethodGet, "http://"+bind+path, nil)
	if err != nil {
		return err
	}
	if token := strings.TrimSpace(cfg.Paths.APIToken); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("connect to matchframe server at %s: %w (start it with `matchframe serve`)", bind, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
