package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

// projectDir is where the .botbench.yaml lookup starts.
var projectDir string

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "botbench",
		Short: "Botbench - benchmark checkers bots against each other",
		Long: `Botbench plays matches between checkers bots of different heuristics and
search depths, summarizes every game log and turns the summaries into
win/loss tables and move-time curves.

Settings are read from .botbench.yaml, searched from the project directory
upwards. Run "botbench init" to create one.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVarP(&projectDir, "project-dir", "C", ".", "Directory to start the .botbench.yaml search from")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newRunCommand())
	cmd.AddCommand(newSummarizeCommand())
	cmd.AddCommand(newReportCommand())
	cmd.AddCommand(newScheduleCommand())
	cmd.AddCommand(newListCommand())
	cmd.AddCommand(newArchiveCommand())
	cmd.AddCommand(newInitCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
