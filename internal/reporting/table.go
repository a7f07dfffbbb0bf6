package reporting

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/pszt/botbench/internal/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer groups digits in large microsecond figures.
var printer = message.NewPrinter(language.English)

var rule = strings.Repeat("─", 64)

// PrintTables renders matchup and timing reports as aligned console tables.
func PrintTables(w io.Writer, matchups []*models.MatchupReport, timings []*models.TimingReport) {
	if len(matchups) > 0 {
		fmt.Fprintf(w, "MATCHUPS\n%s\n", rule) //nolint:errcheck
		for _, r := range matchups {
			printMatchup(w, r)
		}
	}
	if len(timings) > 0 {
		fmt.Fprintf(w, "AVERAGE MOVE TIME (µs)\n%s\n", rule) //nolint:errcheck
		printTimings(w, timings)
	}
}

func printMatchup(w io.Writer, r *models.MatchupReport) {
	first := r.First + " won"
	second := r.Second + " won"
	colW := max(runewidth.StringWidth(first), runewidth.StringWidth(second), 5)

	fmt.Fprintf(w, "%s  %s  %s\n", padLeft("depth", 5), padLeft(first, colW), padLeft(second, colW)) //nolint:errcheck
	for _, row := range r.Rows {
		fmt.Fprintf(w, "%s  %s  %s\n", //nolint:errcheck
			padLeft(fmt.Sprint(row.Depth), 5),
			padLeft(fmt.Sprint(row.FirstWins), colW),
			padLeft(fmt.Sprint(row.SecondWins), colW))
	}

	st := ComputePairStats(r)
	fmt.Fprintf(w, "score %.3f [%.3f, %.3f]  elo %s  los %.1f%%\n\n", //nolint:errcheck
		st.Score, st.ScoreCI.Lower, st.ScoreCI.Upper, FormatElo(st.EloDiff), st.LOS*100)
}

func printTimings(w io.Writer, timings []*models.TimingReport) {
	depths := timingDepths(timings)

	nameW := len("heuristic")
	for _, r := range timings {
		nameW = max(nameW, runewidth.StringWidth(r.Heuristic))
	}

	cells := make([][]string, len(timings))
	colW := make([]int, len(depths))
	for i, d := range depths {
		colW[i] = len(fmt.Sprintf("d%d", d))
	}
	for ri, r := range timings {
		cells[ri] = make([]string, len(depths))
		for i, d := range depths {
			cell := "-"
			for _, row := range r.Rows {
				if row.Depth == d {
					cell = printer.Sprintf("%d", int64(row.AvgMoveTime))
				}
			}
			cells[ri][i] = cell
			colW[i] = max(colW[i], runewidth.StringWidth(cell))
		}
	}

	var header strings.Builder
	header.WriteString(padRight("heuristic", nameW))
	for i, d := range depths {
		header.WriteString("  " + padLeft(fmt.Sprintf("d%d", d), colW[i]))
	}
	fmt.Fprintln(w, header.String()) //nolint:errcheck

	for ri, r := range timings {
		var line strings.Builder
		line.WriteString(padRight(r.Heuristic, nameW))
		for i := range depths {
			line.WriteString("  " + padLeft(cells[ri][i], colW[i]))
		}
		fmt.Fprintln(w, line.String()) //nolint:errcheck
	}
}

// timingDepths returns the union of depths across reports, in order.
func timingDepths(timings []*models.TimingReport) []int {
	seen := map[int]bool{}
	var depths []int
	for _, r := range timings {
		for _, row := range r.Rows {
			if !seen[row.Depth] {
				seen[row.Depth] = true
				depths = append(depths, row.Depth)
			}
		}
	}
	slices.Sort(depths)
	return depths
}

// FormatElo renders an Elo difference with sign, or ±inf for a clean sweep.
func FormatElo(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "+inf"
	case math.IsInf(v, -1):
		return "-inf"
	default:
		return fmt.Sprintf("%+.1f", v)
	}
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

func padLeft(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return strings.Repeat(" ", width-sw) + s
}
