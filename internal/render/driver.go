package render

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"matchframe/internal/assets"
	"matchframe/internal/eventlog"
	"matchframe/internal/logging"
	"matchframe/internal/match"
	"matchframe/internal/notifications"
	"matchframe/internal/services"
	"matchframe/internal/services/studio"
)

// Driver executes single render jobs against the studio backend. It owns the
// per-job side effects: event log entries, the celebration notification, and
// the output filename the caller uses to refresh the asset listing.
type Driver struct {
	studio   studio.API
	events   *eventlog.Log
	notifier notifications.Service
	logger   *slog.Logger
}

// NewDriver constructs a render driver.
func NewDriver(api studio.API, events *eventlog.Log, notifier notifications.Service, logger *slog.Logger) *Driver {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Driver{
		studio:   api,
		events:   events,
		notifier: notifier,
		logger:   logging.NewComponentLogger(logger, "render"),
	}
}

// Render runs one job for the given record. On success it returns the output
// filename, preferring the backend's reported name over the local derivation.
// Failures are logged to the event log and returned; they never panic, so the
// orchestrator can continue with the next match.
func (d *Driver) Render(ctx context.Context, rec match.Record, templateID string) (string, error) {
	matchup := rec.Matchup()
	logger := logging.WithContext(ctx, d.logger)
	logger.Info("render started",
		logging.String("matchup", matchup),
		logging.String("template", templateID),
	)

	result, err := d.studio.RenderMatch(ctx, rec, templateID)
	if err != nil {
		d.events.Error(failureMessage(matchup, result, err))
		logger.Error("render failed",
			logging.String("matchup", matchup),
			logging.Error(err),
			logging.String(logging.FieldEventType, "render_failed"),
		)
		return "", err
	}

	filename := strings.TrimSpace(result.Filename)
	if filename == "" {
		filename = assets.RecordFilename(rec)
	}

	d.events.Success(fmt.Sprintf("Rendered %s (%s)", matchup, filename))
	logger.Info("render completed",
		logging.String("matchup", matchup),
		logging.String("filename", filename),
	)
	if notifyErr := d.notifier.NotifyRenderCompleted(ctx, matchup, filename); notifyErr != nil {
		logger.Warn("render celebration notification failed", logging.Error(notifyErr))
	}
	return filename, nil
}

// failureMessage distinguishes a lost backend connection from a job the
// backend refused, so operators can tell the two apart in the event log.
func failureMessage(matchup string, result studio.RenderResult, err error) string {
	if services.IsTransport(err) {
		return fmt.Sprintf("Render failed for %s: connection to render backend lost", matchup)
	}
	message := strings.TrimSpace(result.Message)
	if message == "" {
		message = "backend reported failure"
	}
	return fmt.Sprintf("Render failed for %s: %s", matchup, message)
}
