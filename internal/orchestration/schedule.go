package orchestration

import "github.com/pszt/botbench/internal/models"

// Schedule enumerates the matches of a universe: for each depth in increasing
// order, every ordered pair of distinct heuristics in configuration order,
// the first playing white.
func Schedule(u models.Universe) []models.MatchKey {
	var keys []models.MatchKey
	for _, d := range u.SortedDepths() {
		for _, white := range u.Heuristics {
			for _, black := range u.Heuristics {
				if white == black {
					continue
				}
				keys = append(keys, models.NewMatchKey(white, black, d))
			}
		}
	}
	return keys
}
