package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var templateID string

	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Run a batch from a fixture text file (or stdin)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readBatchInput(cmd, args)
			if err != nil {
				return err
			}

			eng, err := ctx.buildEngine()
			if err != nil {
				return err
			}

			records, runErr := eng.orch.RunBatch(cmd.Context(), text, templateID)
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			printEvents(out, eng.events.Snapshot(), colorize)
			if runErr != nil {
				return runErr
			}
			if len(records) == 0 {
				return nil
			}

			snapshot := eng.orch.Snapshot()
			rows := make([][]string, 0, len(records))
			for i, rec := range records {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					rec.Matchup(),
					colorizeStatus(snapshot.Statuses[i], colorize),
				})
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Matchup", "Status"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft},
			))
			fmt.Fprintf(out, "\n%d rendered, %d failed\n", snapshot.Rendered, snapshot.Failed)
			return nil
		},
	}

	cmd.Flags().StringVarP(&templateID, "template", "t", "", "Render template (defaults to the configured one)")
	return cmd
}

func readBatchInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read fixture file: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("no fixture text provided; pass a file or pipe lines on stdin")
	}
	return string(data), nil
}
