package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"matchframe/internal/assets"
	"matchframe/internal/config"
	"matchframe/internal/eventlog"
	"matchframe/internal/fixture"
	"matchframe/internal/logging"
	"matchframe/internal/match"
	"matchframe/internal/notifications"
	"matchframe/internal/render"
	"matchframe/internal/services"
	"matchframe/internal/services/studio"
)

// ErrBusy is returned when a run is requested while another is in flight.
// The engine drives a single stateful backend session, so runs never overlap.
var ErrBusy = errors.New("batch already running")

// Orchestrator owns the batch lifecycle: parse, submit, then render each
// optimized match strictly in order. One orchestrator serves the CLI and the
// HTTP API at the same time; all mutations happen under its lock.
type Orchestrator struct {
	cfg      *config.Config
	studio   studio.API
	driver   *render.Driver
	events   *eventlog.Log
	notifier notifications.Service
	logger   *slog.Logger

	mu          sync.Mutex
	busy        bool
	state       RunState
	batchID     string
	records     []match.Record
	statuses    []Status
	rendered    int
	failed      int
	listing     assets.Listing
	startedAt   time.Time
	subscribers []func(Snapshot)
}

// New constructs an orchestrator wired to the given collaborators.
func New(cfg *config.Config, api studio.API, events *eventlog.Log, notifier notifications.Service, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Orchestrator{
		cfg:      cfg,
		studio:   api,
		driver:   render.NewDriver(api, events, notifier, logger),
		events:   events,
		notifier: notifier,
		logger:   logging.NewComponentLogger(logger, "batch"),
		state:    StateIdle,
	}
}

// RunBatch executes one full batch run from raw operator text. It returns
// ErrBusy when a run is already in flight. Per-match render failures do not
// abort the run; only a failed submission or context cancellation does.
func (o *Orchestrator) RunBatch(ctx context.Context, rawText, templateID string) ([]match.Record, error) {
	if err := o.begin(); err != nil {
		return nil, err
	}
	defer o.finish()
	return o.run(ctx, rawText, templateID)
}

// Start claims the busy flag synchronously, then executes the run on a
// background goroutine. The optional done callback receives the run's error.
// Callers learn immediately whether the run was accepted or rejected as busy.
func (o *Orchestrator) Start(ctx context.Context, rawText, templateID string, done func(error)) error {
	if err := o.begin(); err != nil {
		return err
	}
	go func() {
		defer o.finish()
		_, err := o.run(ctx, rawText, templateID)
		if done != nil {
			done(err)
		}
	}()
	return nil
}

func (o *Orchestrator) run(ctx context.Context, rawText, templateID string) ([]match.Record, error) {
	batchID := uuid.NewString()
	ctx = services.WithBatchID(ctx, batchID)
	logger := o.logger.With(logging.String(logging.FieldBatchID, batchID))
	start := time.Now()

	o.transition(StateParsing, func() {
		o.batchID = batchID
		o.records = nil
		o.statuses = nil
		o.rendered = 0
		o.failed = 0
		o.startedAt = start
	})

	intents, stats := fixture.Parse(rawText)
	o.events.Info(fmt.Sprintf("Parsed %d of %d lines", stats.Parsed, stats.Lines))
	logger.Info("batch input parsed",
		logging.Int("lines", stats.Lines),
		logging.Int("parsed", stats.Parsed),
		logging.Int("skipped", stats.Skipped),
	)
	if len(intents) == 0 {
		o.events.Info("No valid matches found in input")
		o.transition(StateCompleted, nil)
		return nil, nil
	}

	if strings.TrimSpace(templateID) == "" {
		templateID = o.cfg.Render.DefaultTemplate
	}

	o.transition(StateSubmitting, nil)
	records, err := o.studio.SubmitBatch(ctx, intents, studio.Flags{
		BoostOdds:           o.cfg.Render.BoostOdds,
		SubtractDayForNight: o.cfg.Render.SubtractDayForNight,
	})
	if err != nil {
		o.events.Error("Batch submission failed: " + submitFailureDetail(err))
		logger.Error("batch submission failed", logging.Error(err))
		o.transition(StateFailed, nil)
		if notifyErr := o.notifier.NotifyError(ctx, err, "batch submission"); notifyErr != nil {
			logger.Warn("error notification failed", logging.Error(notifyErr))
		}
		return nil, err
	}

	o.transition(StateRendering, func() {
		o.records = append([]match.Record(nil), records...)
		o.statuses = make([]Status, len(records))
		for i := range o.statuses {
			o.statuses[i] = StatusIdle
		}
	})
	o.events.Info(fmt.Sprintf("Submitted batch of %d matches", len(records)))
	if notifyErr := o.notifier.NotifyBatchStarted(ctx, len(records)); notifyErr != nil {
		logger.Warn("batch start notification failed", logging.Error(notifyErr))
	}

	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			o.events.Error("Batch cancelled before all matches rendered")
			logger.Warn("batch cancelled", logging.Int(logging.FieldMatchIndex, i))
			o.transition(StateFailed, nil)
			return records, err
		}
		o.renderIndex(ctx, logger, i, rec, templateID)
	}

	rendered, failed := o.counts()
	o.events.Info(fmt.Sprintf("Batch complete: %d rendered, %d failed", rendered, failed))
	logger.Info("batch completed",
		logging.Int("rendered", rendered),
		logging.Int("failed", failed),
		logging.Duration("elapsed", time.Since(start)),
	)
	if notifyErr := o.notifier.NotifyBatchCompleted(ctx, rendered, failed, time.Since(start)); notifyErr != nil {
		logger.Warn("batch completion notification failed", logging.Error(notifyErr))
	}
	o.transition(StateCompleted, nil)
	return records, nil
}

// renderIndex drives one match through the render driver and records its
// terminal status. Failures are isolated to the index.
func (o *Orchestrator) renderIndex(ctx context.Context, logger *slog.Logger, index int, rec match.Record, templateID string) {
	ctx = services.WithMatchIndex(ctx, index)
	ctx = services.WithOperation(ctx, "render")
	o.setStatus(index, StatusRendering)

	if _, err := o.driver.Render(ctx, rec, templateID); err != nil {
		o.setStatus(index, StatusFailed)
		if notifyErr := o.notifier.NotifyError(ctx, err, rec.Matchup()); notifyErr != nil {
			logger.Warn("error notification failed", logging.Error(notifyErr))
		}
		return
	}

	o.setStatus(index, StatusRendered)
	if err := o.RefreshAssets(ctx); err != nil {
		logger.Warn("asset listing refresh failed", logging.Error(err))
	}
}

func (o *Orchestrator) begin() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.busy {
		return ErrBusy
	}
	o.busy = true
	return nil
}

func (o *Orchestrator) finish() {
	o.mu.Lock()
	o.busy = false
	o.mu.Unlock()
	o.publish()
}

func submitFailureDetail(err error) string {
	if services.IsTransport(err) {
		return "connection to render backend lost"
	}
	return err.Error()
}
