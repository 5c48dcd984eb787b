package studio

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"matchframe/internal/config"
	"matchframe/internal/match"
	"matchframe/internal/services"
)

const (
	userAgent = "Matchframe-Go/0.1.0"

	optimizePath = "/api/v1/optimize"
	renderPath   = "/api/v1/render"
	assetsPath   = "/api/v1/assets"
	fixturesPath = "/api/v1/fixtures"
)

// API describes the studio backend operations the orchestrator depends on.
type API interface {
	SubmitBatch(ctx context.Context, intents []match.Intent, flags Flags) ([]match.Record, error)
	RenderMatch(ctx context.Context, rec match.Record, templateID string) (RenderResult, error)
	ListAssets(ctx context.Context) ([]string, error)
	DeleteAsset(ctx context.Context, filename string) error
	ListFixtures(ctx context.Context) ([]match.Fixture, error)
}

// Client talks to the studio render backend over HTTP. The backend drives a
// single stateful render session, so all calls share one rate limiter and
// callers must not overlap render requests.
type Client struct {
	baseURL      string
	apiKey       string
	client       *http.Client
	renderClient *http.Client
	limiter      *rate.Limiter
}

// NewClient constructs a studio client from configuration.
func NewClient(cfg *config.Config) *Client {
	requestTimeout := time.Duration(cfg.Studio.RequestTimeout) * time.Second
	renderTimeout := time.Duration(cfg.Studio.RenderTimeout) * time.Second
	rpm := cfg.Studio.RequestsPerMinute
	return &Client{
		baseURL:      strings.TrimRight(cfg.Studio.BaseURL, "/"),
		apiKey:       cfg.Studio.APIKey,
		client:       &http.Client{Timeout: requestTimeout},
		renderClient: &http.Client{Timeout: renderTimeout},
		limiter:      rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), rpm),
	}
}

// SubmitBatch sends all parsed intents to the optimization backend in one
// request and returns the optimized records in submission order.
func (c *Client) SubmitBatch(ctx context.Context, intents []match.Intent, flags Flags) ([]match.Record, error) {
	payload := submitRequest{
		Matches:             intents,
		BoostOdds:           flags.BoostOdds,
		SubtractDayForNight: flags.SubtractDayForNight,
	}
	var resp submitResponse
	if err := c.do(ctx, c.client, http.MethodPost, optimizePath, payload, &resp); err != nil {
		return nil, wrapDo("submit batch", err)
	}
	if resp.Status != statusSuccess {
		return nil, services.Wrap(services.ErrBackend, "studio", "submit batch", backendMessage(resp.Message), nil)
	}
	return resp.Results, nil
}

// RenderMatch runs one render job against the stateful render session. The
// returned result carries the backend's message and output filename even when
// the error is non-nil.
func (c *Client) RenderMatch(ctx context.Context, rec match.Record, templateID string) (RenderResult, error) {
	payload := renderRequest{Match: rec, TemplateID: templateID}
	var resp RenderResult
	if err := c.do(ctx, c.renderClient, http.MethodPost, renderPath, payload, &resp); err != nil {
		return RenderResult{}, wrapDo("render", err)
	}
	if !resp.Succeeded() {
		return resp, services.Wrap(services.ErrBackend, "studio", "render", backendMessage(resp.Message), nil)
	}
	return resp, nil
}

// ListAssets fetches the current remote asset listing.
func (c *Client) ListAssets(ctx context.Context) ([]string, error) {
	var resp assetsResponse
	if err := c.do(ctx, c.client, http.MethodGet, assetsPath, nil, &resp); err != nil {
		return nil, wrapDo("list assets", err)
	}
	if resp.Status != statusSuccess {
		return nil, services.Wrap(services.ErrBackend, "studio", "list assets", backendMessage(resp.Message), nil)
	}
	return resp.Files, nil
}

// DeleteAsset removes one rendered artifact from the remote store.
func (c *Client) DeleteAsset(ctx context.Context, filename string) error {
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return services.Wrap(services.ErrValidation, "studio", "delete asset", "filename must not be empty", nil)
	}
	path := assetsPath + "/" + url.PathEscape(filename)
	var resp deleteResponse
	if err := c.do(ctx, c.client, http.MethodDelete, path, nil, &resp); err != nil {
		return wrapDo("delete asset", err)
	}
	if resp.Status != statusSuccess {
		return services.Wrap(services.ErrBackend, "studio", "delete asset", backendMessage(resp.Message), nil)
	}
	return nil
}

// ListFixtures fetches candidate matchups known to the backend.
func (c *Client) ListFixtures(ctx context.Context) ([]match.Fixture, error) {
	var resp fixturesResponse
	if err := c.do(ctx, c.client, http.MethodGet, fixturesPath, nil, &resp); err != nil {
		return nil, wrapDo("list fixtures", err)
	}
	if resp.Status != statusSuccess {
		return nil, services.Wrap(services.ErrBackend, "studio", "list fixtures", backendMessage(resp.Message), nil)
	}
	return resp.Fixtures, nil
}

func (c *Client) do(ctx context.Context, client *http.Client, method, path string, payload, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &httpStatusError{code: resp.StatusCode, body: truncate(string(data), 200)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// httpStatusError marks a response the backend produced itself, as opposed to
// a failed network exchange.
type httpStatusError struct {
	code int
	body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.code, e.body)
}

// wrapDo classifies a request failure: responses the backend produced are
// tagged ErrBackend, anything else is a transport failure.
func wrapDo(operation string, err error) error {
	var statusErr *httpStatusError
	if errors.As(err, &statusErr) {
		return services.Wrap(services.ErrBackend, "studio", operation, statusErr.Error(), nil)
	}
	return services.Wrap(services.ErrTransport, "studio", operation, "request failed", err)
}

func backendMessage(message string) string {
	message = strings.TrimSpace(message)
	if message == "" {
		return "backend reported failure"
	}
	return message
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
