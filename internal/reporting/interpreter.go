package reporting

import (
	"fmt"
	"strings"

	"github.com/pszt/botbench/internal/models"
	"github.com/pszt/botbench/internal/statistics"
)

// InterpretScore returns a plain-language label for a matchup score (0–1)
// from the first heuristic's point of view.
func InterpretScore(score float64) string {
	pct := score * 100
	switch {
	case pct >= 90:
		return "dominates"
	case pct >= 60:
		return "is stronger than"
	case pct > 40:
		return "is on par with"
	case pct > 10:
		return "is weaker than"
	default:
		return "is dominated by"
	}
}

// InterpretLOS explains how much the likelihood of superiority can be trusted.
func InterpretLOS(los float64) string {
	switch {
	case los >= 0.95 || los <= 0.05:
		return "the difference is significant"
	case los >= 0.8 || los <= 0.2:
		return "the difference is likely but not conclusive"
	default:
		return "more games are needed to tell them apart"
	}
}

// InterpretPair produces a one-line reading of a matchup.
func InterpretPair(st PairStats) string {
	line := fmt.Sprintf("%s %s %s: %d-%d-%d (score %.0f%%, Elo %s); %s.",
		st.First, InterpretScore(st.Score), st.Second,
		st.Wins, st.Losses, st.Draws, st.Score*100, FormatElo(st.EloDiff), InterpretLOS(st.LOS))
	if st.ScoreCI.NumBootstraps > 0 && !statistics.Excludes(st.ScoreCI, statistics.ScoreDraw) {
		line += fmt.Sprintf(" The %.0f%% score interval %.2f-%.2f still includes an even match.",
			st.ScoreCI.ConfidenceLevel*100, st.ScoreCI.Lower, st.ScoreCI.Upper)
	}
	return line
}

// InterpretGrowth describes how a heuristic's move time grows with depth.
func InterpretGrowth(r *models.TimingReport) string {
	if len(r.Rows) < 2 {
		return fmt.Sprintf("%s: not enough depths to estimate growth", r.Heuristic)
	}

	var factors []string
	var n int
	for i := 1; i < len(r.Rows); i++ {
		prev, cur := r.Rows[i-1], r.Rows[i]
		if prev.AvgMoveTime <= 0 {
			continue
		}
		f := cur.AvgMoveTime / prev.AvgMoveTime
		factors = append(factors, fmt.Sprintf("%.1fx", f))
		n++
	}
	if n == 0 {
		return fmt.Sprintf("%s: move times too small to estimate growth", r.Heuristic)
	}

	first, last := r.Rows[0], r.Rows[len(r.Rows)-1]
	return fmt.Sprintf("%s: %d µs at depth %d to %d µs at depth %d (per-depth growth %s)",
		r.Heuristic, int64(first.AvgMoveTime), first.Depth, int64(last.AvgMoveTime), last.Depth, strings.Join(factors, ", "))
}
