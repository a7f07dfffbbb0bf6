// Package aggregate reduces stored match summaries into matchup and timing
// reports. Both passes are read-only over the store and require every cell of
// the universe to be present: a missing summary aborts the affected report
// rather than leaving a silent gap in its table.
package aggregate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pszt/botbench/internal/models"
	"github.com/pszt/botbench/internal/store"
)

// fetch reads the summary for key, turning a miss into a MissingResultError
// attributed to report.
func fetch(ctx context.Context, s store.ResultStore, key models.MatchKey, report string) (*models.MatchSummary, error) {
	summary, err := s.Get(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &models.MissingResultError{Key: key, Report: report}
		}
		return nil, fmt.Errorf("%s: %w", report, err)
	}
	return summary, nil
}

// Matchup tallies the wins of first and second at each depth, over the match
// with first as white and the match with second as white. White_won credits
// the white player of that match and black_won the black player; any other
// outcome credits no one.
func Matchup(ctx context.Context, s store.ResultStore, first, second string, depths []int) (*models.MatchupReport, error) {
	report := &models.MatchupReport{First: first, Second: second}
	name := first + " vs " + second

	for _, d := range depths {
		row := models.MatchupRow{Depth: d}
		for _, key := range []models.MatchKey{
			models.NewMatchKey(first, second, d),
			models.NewMatchKey(second, first, d),
		} {
			summary, err := fetch(ctx, s, key, name)
			if err != nil {
				return nil, err
			}
			side, ok := summary.Outcome.Winner()
			if !ok {
				slog.Debug("No win credited", "match", key.Name(), "outcome", summary.Outcome)
				continue
			}
			if key.Player(side).Heuristic == first {
				row.FirstWins++
			} else {
				row.SecondWins++
			}
		}
		report.Rows = append(report.Rows, row)
	}

	return report, nil
}

// Matchups builds a report for every unordered heuristic pair of u. Reports
// that cannot be completed are left out and their errors joined.
func Matchups(ctx context.Context, s store.ResultStore, u models.Universe) ([]*models.MatchupReport, error) {
	depths := u.SortedDepths()

	var reports []*models.MatchupReport
	var errs []error
	for _, pair := range u.Pairs() {
		r, err := Matchup(ctx, s, pair[0], pair[1], depths)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		reports = append(reports, r)
	}
	return reports, errors.Join(errs...)
}

// Timing computes the average move time of heuristic at each depth: the mean
// of its per-match averages over every opponent and both colors. Per-match
// averages are not reweighted by move count.
func Timing(ctx context.Context, s store.ResultStore, heuristic string, u models.Universe) (*models.TimingReport, error) {
	report := &models.TimingReport{Heuristic: heuristic}
	name := heuristic + " timing"

	for _, d := range u.SortedDepths() {
		var sum float64
		var n int
		for _, opponent := range u.Heuristics {
			if opponent == heuristic {
				continue
			}
			asWhite := models.NewMatchKey(heuristic, opponent, d)
			summary, err := fetch(ctx, s, asWhite, name)
			if err != nil {
				return nil, err
			}
			sum += summary.WhiteAvgMoveTime
			n++

			asBlack := models.NewMatchKey(opponent, heuristic, d)
			summary, err = fetch(ctx, s, asBlack, name)
			if err != nil {
				return nil, err
			}
			sum += summary.BlackAvgMoveTime
			n++
		}
		if n == 0 {
			return nil, fmt.Errorf("%s: no opponents at depth %d", name, d)
		}
		report.Rows = append(report.Rows, models.TimingRow{Depth: d, AvgMoveTime: sum / float64(n), Samples: n})
	}

	return report, nil
}

// Timings builds a timing report for every heuristic of u, in configuration
// order. Reports that cannot be completed are left out and their errors joined.
func Timings(ctx context.Context, s store.ResultStore, u models.Universe) ([]*models.TimingReport, error) {
	var reports []*models.TimingReport
	var errs []error
	for _, h := range u.Heuristics {
		r, err := Timing(ctx, s, h, u)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		reports = append(reports, r)
	}
	return reports, errors.Join(errs...)
}
