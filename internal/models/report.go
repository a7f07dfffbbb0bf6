package models

// MatchupRow holds the wins each heuristic earned at one depth across both
// color assignments.
type MatchupRow struct {
	Depth      int `json:"depth"`
	FirstWins  int `json:"first_wins"`
	SecondWins int `json:"second_wins"`
}

// MatchupReport tallies wins for an unordered heuristic pair, ordered by depth.
type MatchupReport struct {
	First  string       `json:"first"`
	Second string       `json:"second"`
	Rows   []MatchupRow `json:"rows"`
}

// Name returns the report name, e.g. "basic-vs-a_basic".
func (r *MatchupReport) Name() string {
	return r.First + "-vs-" + r.Second
}

// Totals sums wins over every depth. Games is the number of matches played,
// two per depth.
func (r *MatchupReport) Totals() (firstWins, secondWins, games int) {
	for _, row := range r.Rows {
		firstWins += row.FirstWins
		secondWins += row.SecondWins
	}
	return firstWins, secondWins, 2 * len(r.Rows)
}

// TimingRow is the average move time of a heuristic at one depth.
type TimingRow struct {
	Depth int `json:"depth"`
	// AvgMoveTime is a mean of per-match averages, in microseconds.
	AvgMoveTime float64 `json:"avg_move_time_us"`
	// Samples is how many per-match averages went into AvgMoveTime.
	Samples int `json:"samples"`
}

// TimingReport is the depth/latency curve of one heuristic.
type TimingReport struct {
	Heuristic string      `json:"heuristic"`
	Rows      []TimingRow `json:"rows"`
}
