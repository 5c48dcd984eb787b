package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"matchframe/internal/api"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the serving engine's batch status",
		RunE: func(cmd *cobra.Command, args []string) error {
			var status api.StatusResponse
			if err := ctx.apiGet("/api/status", &status); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			fmt.Fprintf(out, "State: %s", status.State)
			if status.Busy {
				fmt.Fprint(out, " (busy)")
			}
			fmt.Fprintln(out)

			if len(status.Matches) == 0 {
				fmt.Fprintln(out, "No batch loaded")
				return nil
			}
			rows := make([][]string, 0, len(status.Matches))
			for _, m := range status.Matches {
				rows = append(rows, []string{
					strconv.Itoa(m.Index + 1),
					m.Matchup,
					colorizeStatus(m.Status, colorize),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Matchup", "Status"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft},
			))
			fmt.Fprintf(out, "%d rendered, %d failed\n", status.Rendered, status.Failed)
			return nil
		},
	}
}
