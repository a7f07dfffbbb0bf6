// Package summarize reduces parsed game logs to match summaries.
package summarize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pszt/botbench/internal/gamelog"
	"github.com/pszt/botbench/internal/models"
	"github.com/pszt/botbench/internal/store"
)

// Summarize computes the per-side average move times of a game. Each average
// is a plain arithmetic mean over that side's moves. A side without moves
// makes the game unsummarizable and yields a *models.NoMovesError.
func Summarize(log *models.GameLog) (*models.MatchSummary, error) {
	whiteAvg, err := average(log, models.SideWhite)
	if err != nil {
		return nil, err
	}
	blackAvg, err := average(log, models.SideBlack)
	if err != nil {
		return nil, err
	}

	return &models.MatchSummary{
		WhiteParams:      log.WhiteParams,
		BlackParams:      log.BlackParams,
		WhiteAvgMoveTime: whiteAvg,
		BlackAvgMoveTime: blackAvg,
		Outcome:          log.Outcome,
	}, nil
}

func average(log *models.GameLog, side models.Side) (float64, error) {
	total, count := log.MoveTimes(side)
	if count == 0 {
		return 0, &models.NoMovesError{Path: log.Path, Side: side}
	}
	return float64(total) / float64(count), nil
}

// Summarizer parses raw logs and persists their summaries.
type Summarizer struct {
	store store.ResultStore
}

// New creates a Summarizer writing to s.
func New(s store.ResultStore) *Summarizer {
	return &Summarizer{store: s}
}

// SummarizeFile parses the log at logPath, summarizes it and stores the
// summary under key. When parsing or summarizing fails, any summary
// previously stored under key is removed so reports see the match as missing.
func (s *Summarizer) SummarizeFile(ctx context.Context, key models.MatchKey, logPath string) (*models.MatchSummary, error) {
	log, err := gamelog.ParseFile(logPath)
	if err != nil {
		return nil, s.discard(ctx, key, err)
	}
	return s.SummarizeLog(ctx, key, log)
}

// SummarizeBytes is like SummarizeFile for log data already in memory, such
// as a decompressed archive. path is only used in errors.
func (s *Summarizer) SummarizeBytes(ctx context.Context, key models.MatchKey, path string, data []byte) (*models.MatchSummary, error) {
	log, err := gamelog.ParseBytes(path, data)
	if err != nil {
		return nil, s.discard(ctx, key, err)
	}
	return s.SummarizeLog(ctx, key, log)
}

// SummarizeLog summarizes an already parsed log and stores the result.
func (s *Summarizer) SummarizeLog(ctx context.Context, key models.MatchKey, log *models.GameLog) (*models.MatchSummary, error) {
	summary, err := Summarize(log)
	if err != nil {
		return nil, s.discard(ctx, key, err)
	}
	if err := s.store.Put(ctx, key, summary); err != nil {
		return nil, fmt.Errorf("storing summary for %s: %w", key.Name(), err)
	}

	slog.Debug("Match summarized",
		"match", key.Name(),
		"outcome", summary.Outcome,
		"white_avg_us", summary.WhiteAvgMoveTime,
		"black_avg_us", summary.BlackAvgMoveTime)
	return summary, nil
}

// discard removes the stale summary for key and returns cause.
func (s *Summarizer) discard(ctx context.Context, key models.MatchKey, cause error) error {
	if err := s.store.Delete(ctx, key); err != nil {
		return errors.Join(cause, fmt.Errorf("removing stale summary for %s: %w", key.Name(), err))
	}
	return cause
}
