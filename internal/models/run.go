package models

import "time"

// MatchStatus is the state a scheduled match ended in.
type MatchStatus string

const (
	MatchSummarized MatchStatus = "summarized"
	MatchFailed     MatchStatus = "failed"
	// MatchSkipped marks a match whose summary already existed.
	MatchSkipped MatchStatus = "skipped"
)

// MatchResult records what happened to one scheduled match.
type MatchResult struct {
	Key        MatchKey      `json:"match"`
	Status     MatchStatus   `json:"status"`
	Summary    *MatchSummary `json:"-"`
	Error      string        `json:"error,omitempty"`
	LogPath    string        `json:"log_path,omitempty"`
	Archive    string        `json:"archive,omitempty"`
	DurationMs int64         `json:"duration_ms"`
}

// RunOutcome is the result of playing a schedule.
type RunOutcome struct {
	StartedAt  time.Time     `json:"started_at"`
	DurationMs int64         `json:"duration_ms"`
	Matches    []MatchResult `json:"matches"`
}

// Counts tallies matches by status.
func (o *RunOutcome) Counts() (summarized, failed, skipped int) {
	for _, m := range o.Matches {
		switch m.Status {
		case MatchSummarized:
			summarized++
		case MatchFailed:
			failed++
		case MatchSkipped:
			skipped++
		}
	}
	return summarized, failed, skipped
}
