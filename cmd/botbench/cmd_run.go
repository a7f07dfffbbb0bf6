package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/pszt/botbench/internal/archive"
	"github.com/pszt/botbench/internal/execution"
	"github.com/pszt/botbench/internal/models"
	"github.com/pszt/botbench/internal/orchestration"
	"github.com/pszt/botbench/internal/projectconfig"
	"github.com/pszt/botbench/internal/reporting"
	"github.com/spf13/cobra"
)

type runOptions struct {
	heuristics  []string
	depths      string
	engine      string
	executable  string
	timeout     int
	workers     int
	filters     []string
	keepLogs    bool
	resume      bool
	archiveDir  string
	verbose     bool
	outputPath  string
	junitPath   string
	report      bool
	formats     []string
	reportTitle string
}

func newRunCommand() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Play the benchmark schedule and store match summaries",
		Long: `Play every scheduled match with the checkers program, summarize each game
log and store the summary in the configured result store.

For each depth, every ordered pair of distinct heuristics plays one match,
so each pair meets twice per depth with colors swapped. A match that fails
is reported and does not stop the others; re-run it later with --filter or
--resume.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommandE(cmd, &opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.heuristics, "heuristics", nil, "Heuristics to benchmark (overrides config)")
	cmd.Flags().StringVar(&opts.depths, "depths", "", `Depths to benchmark, e.g. "1-8" or "1,3,5" (overrides config)`)
	cmd.Flags().StringVar(&opts.engine, "engine", "", "Game engine: process or mock (overrides config)")
	cmd.Flags().StringVar(&opts.executable, "executable", "", "Checkers program command line (overrides config)")
	cmd.Flags().IntVar(&opts.timeout, "timeout", 0, "Per-match timeout in seconds (overrides config)")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "Number of matches played at once (overrides config)")
	cmd.Flags().StringArrayVar(&opts.filters, "filter", nil, "Only play matches whose name matches this glob (can be repeated)")
	cmd.Flags().BoolVar(&opts.keepLogs, "keep-logs", false, "Keep the raw game logs after the run")
	cmd.Flags().BoolVar(&opts.resume, "resume", false, "Skip matches whose summary is already stored")
	cmd.Flags().StringVar(&opts.archiveDir, "archive", "", "Compress raw game logs into this directory (overrides config)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Print every match as it starts")
	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "", "Write the run outcome as JSON to this file")
	cmd.Flags().StringVar(&opts.junitPath, "junit", "", "Write the run outcome as JUnit XML to this file")
	cmd.Flags().BoolVar(&opts.report, "report", false, "Write reports after the run")
	cmd.Flags().StringSliceVar(&opts.formats, "format", nil, "Extra report formats with --report: table, markdown, html")
	cmd.Flags().StringVar(&opts.reportTitle, "title", defaultReportTitle, "Title of markdown and HTML reports")

	return cmd
}

// applyRunOverrides lets command-line flags override the project config.
func applyRunOverrides(cmd *cobra.Command, cfg *projectconfig.ProjectConfig, opts *runOptions) error {
	if len(opts.heuristics) > 0 {
		cfg.Heuristics = opts.heuristics
	}
	if opts.depths != "" {
		d, err := projectconfig.ParseDepths(opts.depths)
		if err != nil {
			return fmt.Errorf("invalid --depths: %w", err)
		}
		cfg.Depths = d
	}
	if opts.engine != "" {
		cfg.Engine = opts.engine
	}
	if opts.executable != "" {
		cfg.Executable = opts.executable
	}
	if opts.timeout > 0 {
		cfg.Timeout = opts.timeout
	}
	if opts.workers > 0 {
		cfg.Workers = opts.workers
	}
	if cmd.Flags().Changed("keep-logs") {
		cfg.KeepLogs = &opts.keepLogs
	}
	if opts.archiveDir != "" {
		cfg.Paths.Archive = opts.archiveDir
	}
	return cfg.Validate()
}

func runCommandE(cmd *cobra.Command, opts *runOptions) error {
	out := cmd.OutOrStdout()

	cfg, err := loadProject()
	if err != nil {
		return err
	}
	if err := applyRunOverrides(cmd, cfg, opts); err != nil {
		return err
	}

	runner, err := execution.New(cfg.Engine, cfg.RunnerArgs())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer results.Close() //nolint:errcheck

	runnerOpts := []orchestration.RunnerOption{
		orchestration.WithFilters(opts.filters...),
		orchestration.WithWorkers(cfg.Workers),
		orchestration.WithKeepLogs(cfg.KeepLogs != nil && *cfg.KeepLogs),
		orchestration.WithResume(opts.resume),
		orchestration.WithHooks(cfg.Hooks),
	}
	if cfg.Paths.Archive != "" {
		runnerOpts = append(runnerOpts, orchestration.WithArchive(archive.New(cfg.Paths.Archive)))
	}
	br := orchestration.NewBenchmarkRunner(runner, results, cfg.Paths.Logs, runnerOpts...)
	br.OnProgress(progressListener(out, opts.verbose))

	u := cfg.Universe()
	fmt.Fprintf(out, "Heuristics: %s\n", strings.Join(u.Heuristics, ", ")) //nolint:errcheck
	fmt.Fprintf(out, "Depths:     %s\n", cfg.Depths)                      //nolint:errcheck
	fmt.Fprintf(out, "Engine:     %s\n", cfg.Engine)                      //nolint:errcheck
	fmt.Fprintf(out, "Store:      %s\n", cfg.Store.Backend)               //nolint:errcheck
	if cfg.Workers > 1 {
		fmt.Fprintf(out, "Parallel:   %d workers\n", cfg.Workers) //nolint:errcheck
	}
	fmt.Fprintln(out) //nolint:errcheck

	outcome, runErr := br.Run(ctx, orchestration.Schedule(u))
	if outcome == nil {
		return fmt.Errorf("benchmark failed: %w", runErr)
	}

	printRunSummary(out, outcome)

	if opts.outputPath != "" {
		if err := saveOutcome(outcome, opts.outputPath); err != nil {
			return fmt.Errorf("failed to save output: %w", err)
		}
		fmt.Fprintf(out, "Results saved to: %s\n", opts.outputPath) //nolint:errcheck
	}
	if opts.junitPath != "" {
		if err := reporting.WriteJUnitXML("botbench", outcome, opts.junitPath); err != nil {
			return err
		}
		fmt.Fprintf(out, "JUnit report saved to: %s\n", opts.junitPath) //nolint:errcheck
	}

	if runErr != nil {
		return fmt.Errorf("benchmark failed: %w", runErr)
	}

	var reportErr error
	if opts.report {
		fmt.Fprintln(out) //nolint:errcheck
		reportErr = writeReports(ctx, cmd, cfg, results, reportOptions{formats: opts.formats, title: opts.reportTitle})
	}

	if _, failed, _ := outcome.Counts(); failed > 0 {
		return &PartialFailureError{Message: fmt.Sprintf("benchmark completed with %d failed match(es)", failed), Err: reportErr}
	}
	return reportErr
}

func progressListener(w io.Writer, verbose bool) orchestration.ProgressListener {
	return func(event orchestration.ProgressEvent) {
		switch event.EventType {
		case orchestration.EventRunStart:
			fmt.Fprintf(w, "Playing %d match(es)...\n\n", event.TotalMatches) //nolint:errcheck
		case orchestration.EventMatchStart:
			if verbose {
				fmt.Fprintf(w, "  [%d/%d] %s...\n", event.MatchNum, event.TotalMatches, event.Match) //nolint:errcheck
			}
		case orchestration.EventMatchComplete:
			icon := "✓"
			switch event.Status {
			case models.MatchFailed:
				icon = "✗"
			case models.MatchSkipped:
				icon = "•"
			}
			duration := time.Duration(event.DurationMs) * time.Millisecond
			fmt.Fprintf(w, "%s [%d/%d] %s %s (%v)\n", icon, event.MatchNum, event.TotalMatches, event.Match, event.Status, duration) //nolint:errcheck
			if event.Error != "" && verbose {
				fmt.Fprintf(w, "      %s\n", event.Error) //nolint:errcheck
			}
		case orchestration.EventRunComplete:
			duration := time.Duration(event.DurationMs) * time.Millisecond
			fmt.Fprintf(w, "\nRun completed in %v\n\n", duration) //nolint:errcheck
		}
	}
}

func printRunSummary(w io.Writer, outcome *models.RunOutcome) {
	summarized, failed, skipped := outcome.Counts()

	fmt.Fprintf(w, "%s\n RUN RESULTS\n%s\n\n", strings.Repeat("=", 51), strings.Repeat("=", 51)) //nolint:errcheck
	fmt.Fprintf(w, "Matches:     %d\n", len(outcome.Matches))                                      //nolint:errcheck
	fmt.Fprintf(w, "Summarized:  %d\n", summarized)                                                //nolint:errcheck
	fmt.Fprintf(w, "Skipped:     %d\n", skipped)                                                   //nolint:errcheck
	fmt.Fprintf(w, "Failed:      %d\n", failed)                                                    //nolint:errcheck
	fmt.Fprintln(w)                                                                                //nolint:errcheck

	if failed == 0 {
		return
	}
	fmt.Fprintln(w, "Failed Matches:") //nolint:errcheck
	for _, m := range outcome.Matches {
		if m.Status == models.MatchFailed {
			fmt.Fprintf(w, "  - %s: %s\n", m.Key, m.Error) //nolint:errcheck
		}
	}
	fmt.Fprintln(w) //nolint:errcheck
}

func saveOutcome(outcome *models.RunOutcome, path string) error {
	data, err := json.MarshalIndent(outcome, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling outcome: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
