package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"matchframe/internal/fixture"
)

func newFixturesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "fixtures",
		Short: "List backend fixtures as batch-ready text lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := ctx.buildEngine()
			if err != nil {
				return err
			}
			fixtures, err := eng.client.ListFixtures(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(fixtures) == 0 {
				fmt.Fprintln(out, "No fixtures available")
				return nil
			}
			// The output round-trips through `matchframe run`.
			fmt.Fprintln(out, fixture.FormatFixtures(fixtures))
			return nil
		},
	}
}
