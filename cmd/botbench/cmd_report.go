package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pszt/botbench/internal/aggregate"
	"github.com/pszt/botbench/internal/projectconfig"
	"github.com/pszt/botbench/internal/reporting"
	"github.com/pszt/botbench/internal/spinner"
	"github.com/pszt/botbench/internal/store"
	"github.com/spf13/cobra"
)

const defaultReportTitle = "Checkers bot benchmark"

// Report formats written in addition to the CSV reports.
const (
	formatTable    = "table"
	formatMarkdown = "markdown"
	formatHTML     = "html"
)

type reportOptions struct {
	formats []string
	title   string
	outDir  string
}

func newReportCommand() *cobra.Command {
	var opts reportOptions

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Aggregate stored match summaries into reports",
		Long: `Aggregate the stored match summaries into one win/loss CSV per heuristic
pair ("<h1>-vs-<h2>.csv") and one move-time CSV per heuristic
("<h>-time.csv").

A report with a missing match summary is not written; the error names the
match to re-run. All other reports are still written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadProject()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx := context.Background()
			results, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer results.Close() //nolint:errcheck

			return writeReports(ctx, cmd, cfg, results, opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.formats, "format", nil, "Extra formats: table, markdown, html")
	cmd.Flags().StringVar(&opts.title, "title", defaultReportTitle, "Title of markdown and HTML reports")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "", "Reports directory (overrides config)")

	return cmd
}

func writeReports(ctx context.Context, cmd *cobra.Command, cfg *projectconfig.ProjectConfig, results store.ResultStore, opts reportOptions) error {
	out := cmd.OutOrStdout()

	for _, f := range opts.formats {
		switch f {
		case formatTable, formatMarkdown, formatHTML:
		default:
			return fmt.Errorf("unknown report format: %s (supported: %s, %s, %s)", f, formatTable, formatMarkdown, formatHTML)
		}
	}

	dir := cfg.Paths.Reports
	if opts.outDir != "" {
		dir = opts.outDir
	}

	u := cfg.Universe()
	stop := spinner.StartIfTerminal(cmd.ErrOrStderr(), "Aggregating match summaries...")
	matchups, matchupErr := aggregate.Matchups(ctx, results, u)
	timings, timingErr := aggregate.Timings(ctx, results, u)
	stop()

	paths, err := reporting.WriteCSVReports(dir, matchups, timings)
	if err != nil {
		return err
	}
	stale, err := reporting.RemoveStaleReports(dir, u, matchups, timings)
	if err != nil {
		return err
	}

	for _, f := range opts.formats {
		switch f {
		case formatTable:
			reporting.PrintTables(out, matchups, timings)
		case formatMarkdown:
			p := filepath.Join(dir, "report.md")
			if err := os.WriteFile(p, []byte(reporting.FormatMarkdown(opts.title, matchups, timings)), 0o644); err != nil {
				return fmt.Errorf("writing markdown report: %w", err)
			}
			paths = append(paths, p)
		case formatHTML:
			page, err := reporting.RenderHTML(opts.title, matchups, timings)
			if err != nil {
				return err
			}
			p := filepath.Join(dir, "report.html")
			if err := os.WriteFile(p, page, 0o644); err != nil {
				return fmt.Errorf("writing HTML report: %w", err)
			}
			paths = append(paths, p)
		}
	}

	fmt.Fprintf(out, "Wrote %d report(s) to %s\n", len(paths), dir) //nolint:errcheck
	for _, p := range paths {
		fmt.Fprintf(out, "  %s\n", filepath.Base(p)) //nolint:errcheck
	}
	for _, p := range stale {
		fmt.Fprintf(out, "Removed out-of-date %s\n", filepath.Base(p)) //nolint:errcheck
	}

	if err := errors.Join(matchupErr, timingErr); err != nil {
		return &PartialFailureError{Message: "some reports could not be written", Err: err}
	}
	return nil
}
