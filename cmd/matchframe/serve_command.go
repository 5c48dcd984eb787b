package main

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"matchframe/internal/api"
	"matchframe/internal/logging"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := ctx.buildEngine()
			if err != nil {
				return err
			}
			logger, err := logging.NewFromConfig(eng.cfg)
			if err != nil {
				return fmt.Errorf("initialize logging: %w", err)
			}

			lock := flock.New(eng.cfg.Paths.LockFile)
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire lock: %w", err)
			}
			if !locked {
				return errors.New("another matchframe serve instance is already running")
			}
			defer func() {
				if err := lock.Unlock(); err != nil {
					logger.Warn("failed to release serve lock", logging.Error(err))
				}
			}()

			// The engine built by buildEngine carries a nop logger for quiet
			// one-shot commands; rebuild the orchestrator with the real one.
			eng.rewireLogger(logger)

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			server := api.NewServer(eng.cfg, eng.orch, eng.events, eng.client, logger)
			if err := server.Start(runCtx); err != nil {
				return err
			}
			defer server.Stop()

			if err := eng.orch.RefreshAssets(runCtx); err != nil {
				logger.Warn("initial asset listing failed", logging.Error(err))
				eng.events.Error("Could not reach render backend for asset listing")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Serving dashboard API on %s\n", server.Addr())
			<-runCtx.Done()
			return nil
		},
	}
}
