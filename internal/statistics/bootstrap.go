// Package statistics estimates how much a matchup score can be trusted.
package statistics

import (
	"math"
	"math/rand/v2"
	"slices"
)

// Per-game scores from the first player's point of view.
const (
	ScoreWin  = 1.0
	ScoreDraw = 0.5
	ScoreLoss = 0.0
)

// ConfidenceInterval holds a bootstrap confidence interval for a mean score.
type ConfidenceInterval struct {
	Lower           float64 `json:"lower"`
	Upper           float64 `json:"upper"`
	Mean            float64 `json:"mean"`
	ConfidenceLevel float64 `json:"confidence_level"`
	NumBootstraps   int     `json:"num_bootstraps"`
}

// DefaultBootstrapIterations is the number of bootstrap resamples.
const DefaultBootstrapIterations = 10000

// DefaultSeed makes report intervals reproducible from run to run.
const DefaultSeed = 0x62656e6368

// GameScores expands a win/loss/draw tally into one score per game.
func GameScores(wins, losses, draws int) []float64 {
	scores := make([]float64, 0, wins+losses+draws)
	for range wins {
		scores = append(scores, ScoreWin)
	}
	for range draws {
		scores = append(scores, ScoreDraw)
	}
	for range losses {
		scores = append(scores, ScoreLoss)
	}
	return scores
}

// BootstrapCI computes a percentile bootstrap interval over scores with the
// default seed. confidenceLevel should be in (0, 1), e.g. 0.95. Fewer than 2
// scores yield a degenerate interval at the mean.
func BootstrapCI(scores []float64, confidenceLevel float64) ConfidenceInterval {
	return BootstrapCIWithSeed(scores, confidenceLevel, DefaultSeed)
}

// BootstrapCIWithSeed is like BootstrapCI with an explicit seed.
func BootstrapCIWithSeed(scores []float64, confidenceLevel float64, seed uint64) ConfidenceInterval {
	n := len(scores)
	m := mean(scores)
	if n < 2 {
		return ConfidenceInterval{Lower: m, Upper: m, Mean: m, ConfidenceLevel: confidenceLevel}
	}

	rng := rand.New(rand.NewPCG(seed, uint64(n)))
	iters := DefaultBootstrapIterations

	bootMeans := make([]float64, iters)
	sample := make([]float64, n)
	for i := range iters {
		for j := range n {
			sample[j] = scores[rng.IntN(n)]
		}
		bootMeans[i] = mean(sample)
	}
	slices.Sort(bootMeans)

	alpha := 1.0 - confidenceLevel
	loIdx := int(math.Floor(alpha / 2.0 * float64(iters)))
	hiIdx := min(int(math.Floor((1.0-alpha/2.0)*float64(iters))), iters-1)

	return ConfidenceInterval{
		Lower:           bootMeans[loIdx],
		Upper:           bootMeans[hiIdx],
		Mean:            m,
		ConfidenceLevel: confidenceLevel,
		NumBootstraps:   iters,
	}
}

// Excludes reports whether v lies outside the interval. A score interval
// that excludes ScoreDraw separates the two players at its confidence level.
func Excludes(ci ConfidenceInterval, v float64) bool {
	return ci.Lower > v || ci.Upper < v
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
