package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pszt/botbench/internal/archive"
	"github.com/pszt/botbench/internal/models"
	"github.com/pszt/botbench/internal/summarize"
	"github.com/spf13/cobra"
)

func newSummarizeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summarize <log> [<log>...]",
		Short: "Summarize game logs that are already on disk",
		Long: `Summarize raw game logs and store the summaries, without playing any match.

The match is identified by the log filename, e.g.
"basic-3-vs-a_basic-3.txt". Archived logs ("*.txt.zst") are decompressed on
the fly. A log that cannot be parsed is reported and the remaining logs are
still summarized.`,
		Args: cobra.MinimumNArgs(1),
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

			s := summarize.New(results)
			var errs []error
			for _, path := range args {
				summary, err := summarizeLog(ctx, s, path)
				if err != nil {
					slog.Debug("summarize failed", "path", path, "err", err)
					fmt.Fprintf(out, "✗ %s\n", path) //nolint:errcheck
					errs = append(errs, err)
					continue
				}
				fmt.Fprintf(out, "✓ %s: %s (white %s µs, black %s µs)\n", path, summary.Outcome, //nolint:errcheck
					models.FormatMicros(summary.WhiteAvgMoveTime), models.FormatMicros(summary.BlackAvgMoveTime))
			}

			if len(errs) > 0 {
				return &PartialFailureError{
					Message: fmt.Sprintf("%d of %d log(s) could not be summarized", len(errs), len(args)),
					Err:     errors.Join(errs...),
				}
			}
			return nil
		},
	}

	return cmd
}

func summarizeLog(ctx context.Context, s *summarize.Summarizer, path string) (*models.MatchSummary, error) {
	key, err := models.ParseMatchKey(archive.LogName(path))
	if err != nil {
		return nil, err
	}
	data, err := archive.ReadLog(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return s.SummarizeBytes(ctx, key, path, data)
}
