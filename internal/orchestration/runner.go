package orchestration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pszt/botbench/internal/archive"
	"github.com/pszt/botbench/internal/execution"
	"github.com/pszt/botbench/internal/hooks"
	"github.com/pszt/botbench/internal/models"
	"github.com/pszt/botbench/internal/store"
	"github.com/pszt/botbench/internal/summarize"
	"golang.org/x/sync/errgroup"
)

// BenchmarkRunner plays scheduled matches, summarizes their logs and stores
// the summaries.
type BenchmarkRunner struct {
	runner     execution.GameRunner
	results    store.ResultStore
	summarizer *summarize.Summarizer
	logsDir    string

	filters  []string
	workers  int
	keepLogs bool
	resume   bool
	archiver *archive.Archiver

	hooks      hooks.HooksConfig
	hookRunner *hooks.Runner

	// Progress tracking
	progressMu sync.Mutex
	listeners  []ProgressListener
}

// ProgressListener receives progress updates
type ProgressListener func(event ProgressEvent)

// EventType represents the type of progress event
type EventType string

// EventType constants
const (
	EventRunStart      EventType = "run_start"
	EventRunComplete   EventType = "run_complete"
	EventMatchStart    EventType = "match_start"
	EventMatchComplete EventType = "match_complete"
)

// ProgressEvent represents a progress update
type ProgressEvent struct {
	EventType    EventType
	Match        models.MatchKey
	MatchNum     int
	TotalMatches int
	Status       models.MatchStatus
	DurationMs   int64
	Error        string
}

// RunnerOption configures a BenchmarkRunner.
type RunnerOption func(*BenchmarkRunner)

// WithFilters restricts the run to matches whose name matches a glob pattern.
func WithFilters(patterns ...string) RunnerOption {
	return func(r *BenchmarkRunner) {
		r.filters = patterns
	}
}

// WithWorkers sets how many matches are played at once.
func WithWorkers(n int) RunnerOption {
	return func(r *BenchmarkRunner) {
		r.workers = n
	}
}

// WithKeepLogs leaves the logs directory in place after the run.
func WithKeepLogs(keep bool) RunnerOption {
	return func(r *BenchmarkRunner) {
		r.keepLogs = keep
	}
}

// WithResume skips matches whose summary is already stored.
func WithResume(resume bool) RunnerOption {
	return func(r *BenchmarkRunner) {
		r.resume = resume
	}
}

// WithArchive compresses every raw log into the archiver's directory before
// the logs directory is removed.
func WithArchive(a *archive.Archiver) RunnerOption {
	return func(r *BenchmarkRunner) {
		r.archiver = a
	}
}

// WithHooks sets the lifecycle hooks.
func WithHooks(cfg hooks.HooksConfig) RunnerOption {
	return func(r *BenchmarkRunner) {
		r.hooks = cfg
	}
}

// NewBenchmarkRunner creates a runner that plays matches with runner, writes
// raw logs under logsDir and stores summaries in results.
func NewBenchmarkRunner(runner execution.GameRunner, results store.ResultStore, logsDir string, opts ...RunnerOption) *BenchmarkRunner {
	r := &BenchmarkRunner{
		runner:     runner,
		results:    results,
		summarizer: summarize.New(results),
		logsDir:    logsDir,
		workers:    1,
		hookRunner: &hooks.Runner{},
		listeners:  []ProgressListener{},
	}
	for _, o := range opts {
		o(r)
	}
	if r.workers <= 0 {
		r.workers = 1
	}
	return r
}

// OnProgress registers a progress listener
func (r *BenchmarkRunner) OnProgress(listener ProgressListener) {
	r.progressMu.Lock()
	defer r.progressMu.Unlock()
	r.listeners = append(r.listeners, listener)
}

func (r *BenchmarkRunner) notifyProgress(event ProgressEvent) {
	r.progressMu.Lock()
	defer r.progressMu.Unlock()

	for _, listener := range r.listeners {
		listener(event)
	}
}

// Run plays keys and returns what happened to each match, in schedule order.
// A failed match is recorded in the outcome and does not stop the others; the
// error is only set when the run as a whole could not proceed.
func (r *BenchmarkRunner) Run(ctx context.Context, keys []models.MatchKey) (*models.RunOutcome, error) {
	startTime := time.Now()

	keys, err := FilterMatches(keys, r.filters)
	if err != nil {
		return nil, err
	}

	if err := r.hookRunner.Execute(ctx, hooks.BeforeRun, r.hooks.BeforeRun); err != nil {
		return nil, fmt.Errorf("before_run hook failed: %w", err)
	}
	defer func() {
		if err := r.hookRunner.Execute(ctx, hooks.AfterRun, r.hooks.AfterRun); err != nil {
			slog.Warn("after_run hook error", "err", err)
		}
	}()

	if err := os.MkdirAll(r.logsDir, 0755); err != nil {
		return nil, fmt.Errorf("creating logs directory: %w", err)
	}

	r.notifyProgress(ProgressEvent{EventType: EventRunStart, TotalMatches: len(keys)})

	results := make([]models.MatchResult, len(keys))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, key := range keys {
		g.Go(func() error {
			results[i] = r.runMatch(gctx, key, i+1, len(keys))
			return nil
		})
	}
	_ = g.Wait()

	outcome := &models.RunOutcome{
		StartedAt:  startTime,
		DurationMs: time.Since(startTime).Milliseconds(),
		Matches:    results,
	}

	if !r.keepLogs {
		if err := os.RemoveAll(r.logsDir); err != nil {
			slog.Warn("failed to remove logs directory", "path", r.logsDir, "err", err)
		}
	}

	r.notifyProgress(ProgressEvent{
		EventType:    EventRunComplete,
		TotalMatches: len(keys),
		DurationMs:   outcome.DurationMs,
	})

	if err := ctx.Err(); err != nil {
		return outcome, fmt.Errorf("run interrupted: %w", err)
	}
	return outcome, nil
}

func (r *BenchmarkRunner) runMatch(ctx context.Context, key models.MatchKey, num, total int) models.MatchResult {
	start := time.Now()
	res := models.MatchResult{Key: key}

	r.notifyProgress(ProgressEvent{
		EventType:    EventMatchStart,
		Match:        key,
		MatchNum:     num,
		TotalMatches: total,
	})

	err := r.playMatch(ctx, &res)
	switch {
	case errors.Is(err, errAlreadyStored):
		res.Status = models.MatchSkipped
	case err != nil:
		res.Status = models.MatchFailed
		res.Error = err.Error()
		slog.Error("match failed", "match", key.Name(), "err", err)
	default:
		res.Status = models.MatchSummarized
	}
	res.DurationMs = time.Since(start).Milliseconds()

	if res.Status == models.MatchSummarized && len(r.hooks.AfterMatch) > 0 {
		env := []string{"BOTBENCH_MATCH=" + key.Name(), "BOTBENCH_LOG=" + res.LogPath}
		if err := r.hookRunner.Execute(ctx, hooks.AfterMatch, r.hooks.AfterMatch, env...); err != nil {
			slog.Warn("after_match hook error", "match", key.Name(), "err", err)
		}
	}

	r.notifyProgress(ProgressEvent{
		EventType:    EventMatchComplete,
		Match:        key,
		MatchNum:     num,
		TotalMatches: total,
		Status:       res.Status,
		DurationMs:   res.DurationMs,
		Error:        res.Error,
	})
	return res
}

var errAlreadyStored = errors.New("summary already stored")

func (r *BenchmarkRunner) playMatch(ctx context.Context, res *models.MatchResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if r.resume {
		ok, err := r.results.Has(ctx, res.Key)
		if err != nil {
			return fmt.Errorf("checking stored summary: %w", err)
		}
		if ok {
			return errAlreadyStored
		}
	}

	// A replayed match must not leave its previous summary behind if it
	// fails this time.
	if err := r.results.Delete(ctx, res.Key); err != nil {
		return fmt.Errorf("removing stored summary: %w", err)
	}

	res.LogPath = filepath.Join(r.logsDir, res.Key.FileName())
	if err := r.runner.Play(ctx, res.Key, res.LogPath); err != nil {
		return err
	}

	summary, err := r.summarizer.SummarizeFile(ctx, res.Key, res.LogPath)
	if err != nil {
		return err
	}
	res.Summary = summary

	if r.archiver != nil {
		path, err := r.archiver.Store(res.LogPath)
		if err != nil {
			slog.Warn("failed to archive log", "match", res.Key.Name(), "path", res.LogPath, "err", err)
		} else {
			res.Archive = path
		}
	}
	return nil
}
