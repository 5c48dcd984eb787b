package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"matchframe/internal/api"
)

func newLogCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "log",
		Short: "Show the serving engine's recent events",
		RunE: func(cmd *cobra.Command, args []string) error {
			var log api.LogResponse
			if err := ctx.apiGet("/api/log", &log); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(log.Events) == 0 {
				fmt.Fprintln(out, "No events recorded")
				return nil
			}
			printEvents(out, log.Events, shouldColorize(out))
			return nil
		},
	}
}
