package main

import (
	"context"
	"fmt"

	"github.com/pszt/botbench/internal/models"
	"github.com/pszt/botbench/internal/orchestration"
	"github.com/spf13/cobra"
)

func newListCommand() *cobra.Command {
	var missing bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored match summaries",
		Long: `List the match summaries in the result store. With --missing, list the
scheduled matches that have no summary yet instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := loadProject()
			if err != nil {
				return err
			}

			ctx := context.Background()
			results, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer results.Close() //nolint:errcheck

			if missing {
				if err := cfg.Validate(); err != nil {
					return err
				}
				var n int
				for _, k := range orchestration.Schedule(cfg.Universe()) {
					ok, err := results.Has(ctx, k)
					if err != nil {
						return err
					}
					if !ok {
						fmt.Fprintln(out, k.Name()) //nolint:errcheck
						n++
					}
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "%d match(es) missing\n", n) //nolint:errcheck
				return nil
			}

			keys, err := results.List(ctx)
			if err != nil {
				return err
			}
			for _, k := range keys {
				s, err := results.Get(ctx, k)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-40s %-10s %12s %12s\n", k.Name(), s.Outcome, //nolint:errcheck
					models.FormatMicros(s.WhiteAvgMoveTime), models.FormatMicros(s.BlackAvgMoveTime))
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%d summary(ies)\n", len(keys)) //nolint:errcheck
			return nil
		},
	}

	cmd.Flags().BoolVar(&missing, "missing", false, "List scheduled matches without a stored summary")

	return cmd
}
