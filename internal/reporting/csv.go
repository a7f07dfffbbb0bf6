package reporting

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pszt/botbench/internal/models"
)

// MatchupFileName returns the report filename for a matchup, e.g.
// "basic-vs-a_basic.csv".
func MatchupFileName(r *models.MatchupReport) string {
	return r.Name() + ".csv"
}

// TimingFileName returns the report filename for a heuristic's timing curve.
func TimingFileName(r *models.TimingReport) string {
	return r.Heuristic + "-time.csv"
}

// WriteMatchupCSV writes the header "depth,<first> won, <second> won" and one
// "depth,first_wins,second_wins" row per depth.
func WriteMatchupCSV(w io.Writer, r *models.MatchupReport) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "depth,%s won, %s won\n", r.First, r.Second) //nolint:errcheck
	for _, row := range r.Rows {
		fmt.Fprintf(bw, "%d,%d,%d\n", row.Depth, row.FirstWins, row.SecondWins) //nolint:errcheck
	}
	return bw.Flush()
}

// WriteTimingCSV writes the header "depth,time" and one "depth,time" row per
// depth, with the average truncated toward zero to whole microseconds.
func WriteTimingCSV(w io.Writer, r *models.TimingReport) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "depth,time") //nolint:errcheck
	for _, row := range r.Rows {
		fmt.Fprintf(bw, "%d,%d\n", row.Depth, int64(row.AvgMoveTime)) //nolint:errcheck
	}
	return bw.Flush()
}

// WriteCSVReports writes every report into dir and returns the written paths.
func WriteCSVReports(dir string, matchups []*models.MatchupReport, timings []*models.TimingReport) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating reports directory: %w", err)
	}

	var paths []string
	for _, r := range matchups {
		path := filepath.Join(dir, MatchupFileName(r))
		if err := writeFile(path, func(w io.Writer) error { return WriteMatchupCSV(w, r) }); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	for _, r := range timings {
		path := filepath.Join(dir, TimingFileName(r))
		if err := writeFile(path, func(w io.Writer) error { return WriteTimingCSV(w, r) }); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close() //nolint:errcheck
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// RemoveStaleReports deletes the CSV report of every pair and heuristic of u
// that has no report in matchups or timings, so a report that failed this
// time does not leave last run's file looking current. It returns the
// removed paths.
func RemoveStaleReports(dir string, u models.Universe, matchups []*models.MatchupReport, timings []*models.TimingReport) ([]string, error) {
	keep := make(map[string]bool, len(matchups)+len(timings))
	for _, r := range matchups {
		keep[MatchupFileName(r)] = true
	}
	for _, r := range timings {
		keep[TimingFileName(r)] = true
	}

	var names []string
	for _, pair := range u.Pairs() {
		names = append(names, MatchupFileName(&models.MatchupReport{First: pair[0], Second: pair[1]}))
	}
	for _, h := range u.Heuristics {
		names = append(names, TimingFileName(&models.TimingReport{Heuristic: h}))
	}

	var removed []string
	for _, name := range names {
		if keep[name] {
			continue
		}
		path := filepath.Join(dir, name)
		err := os.Remove(path)
		switch {
		case err == nil:
			removed = append(removed, path)
		case !errors.Is(err, os.ErrNotExist):
			return removed, fmt.Errorf("removing stale report: %w", err)
		}
	}
	return removed, nil
}
