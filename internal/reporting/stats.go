package reporting

import (
	"math"

	"github.com/pszt/botbench/internal/models"
	"github.com/pszt/botbench/internal/statistics"
)

// scoreConfidence is the level of the score interval in PairStats.
const scoreConfidence = 0.95

// PairStats summarizes a matchup from the first heuristic's point of view.
type PairStats struct {
	First  string `json:"first"`
	Second string `json:"second"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
	Draws  int    `json:"draws"`
	// Score is (wins + draws/2) / games.
	Score float64 `json:"score"`
	// EloDiff is the rating difference implied by Score. It is infinite
	// when one side won every game.
	EloDiff float64 `json:"elo_diff"`
	// LOS is the likelihood that first is the stronger player.
	LOS float64 `json:"los"`
	// ScoreCI is a bootstrap interval for Score over the individual games.
	ScoreCI statistics.ConfidenceInterval `json:"score_ci"`
}

// ComputePairStats reduces a matchup report over all depths. Games that
// credited no one count as draws.
func ComputePairStats(r *models.MatchupReport) PairStats {
	wins, losses, games := r.Totals()
	draws := games - wins - losses
	st := computeStat(wins, losses, draws)
	st.First = r.First
	st.Second = r.Second
	return st
}

// https://www.chessprogramming.org/Match_Statistics
func computeStat(wins, losses, draws int) PairStats {
	st := PairStats{Wins: wins, Losses: losses, Draws: draws, LOS: 0.5}
	games := wins + losses + draws
	if games == 0 {
		return st
	}

	st.Score = (float64(wins) + 0.5*float64(draws)) / float64(games)
	switch st.Score {
	case 0:
		st.EloDiff = math.Inf(-1)
	case 1:
		st.EloDiff = math.Inf(1)
	default:
		st.EloDiff = -math.Log(1/st.Score-1) * 400 / math.Ln10
	}

	if decided := wins + losses; decided > 0 {
		st.LOS = 0.5 + 0.5*math.Erf(float64(wins-losses)/math.Sqrt(2*float64(decided)))
	}
	st.ScoreCI = statistics.BootstrapCI(statistics.GameScores(wins, losses, draws), scoreConfidence)
	return st
}
