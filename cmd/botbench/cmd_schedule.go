package main

import (
	"fmt"
	"path/filepath"

	"github.com/pszt/botbench/internal/execution"
	"github.com/pszt/botbench/internal/orchestration"
	"github.com/spf13/cobra"
)

func newScheduleCommand() *cobra.Command {
	var (
		filters  []string
		commands bool
	)

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print the matches a run would play",
		Long: `Print the matches "botbench run" would play, in order, without playing
them. With --commands, print the checkers program invocation for each match.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := loadProject()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			keys, err := orchestration.FilterMatches(orchestration.Schedule(cfg.Universe()), filters)
			if err != nil {
				return err
			}

			var runner *execution.ProcessRunner
			if commands {
				runner, err = execution.NewProcessRunner(cfg.RunnerArgs())
				if err != nil {
					return err
				}
			}

			for _, k := range keys {
				if runner == nil {
					fmt.Fprintln(out, k.Name()) //nolint:errcheck
					continue
				}
				fmt.Fprintln(out, runner.CommandLine(k, filepath.Join(cfg.Paths.Logs, k.FileName()))) //nolint:errcheck
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%d match(es)\n", len(keys)) //nolint:errcheck
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&filters, "filter", nil, "Only list matches whose name matches this glob (can be repeated)")
	cmd.Flags().BoolVar(&commands, "commands", false, "Print the checkers program command line for each match")

	return cmd
}
