package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"subweave/internal/config"
	"subweave/internal/preflight"
	"subweave/internal/queue"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check environment readiness and queue state",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *queue.Store) error {
				results := preflight.RunAll(cmd.Context(), cfg)

				rows := make([][]string, 0, len(results))
				for _, result := range results {
					state := "OK"
					if !result.Passed {
						state = "FAIL"
					}
					rows = append(rows, []string{result.Name, state, result.Detail})
				}

				out := cmd.OutOrStdout()
				rendered := renderTable(out,
					[]string{"Check", "State", "Detail"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft},
				)
				fmt.Fprintln(out, rendered)

				summary, err := store.Health(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Queue: %d total, %d pending, %d processing, %d completed, %d failed, %d review\n",
					summary.Total, summary.Pending, summary.Processing, summary.Completed, summary.Failed, summary.Review)

				if failed := preflight.Failed(results); len(failed) > 0 {
					return fmt.Errorf("%d preflight check(s) failed", len(failed))
				}
				return nil
			})
		},
	}
}
