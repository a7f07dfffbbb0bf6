package wizard

import (
	"testing"

	"github.com/pszt/botbench/internal/projectconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultAnswers(t *testing.T) {
	a := DefaultAnswers(projectconfig.New())

	assert.Equal(t, "basic, a_basic, board_aware", a.Heuristics)
	assert.Equal(t, "1-8", a.Depths)
	assert.Equal(t, "1", a.Workers)
	assert.Equal(t, "process", a.Engine)
	assert.Equal(t, "file", a.StoreBackend)
}

func TestAnswersApply(t *testing.T) {
	base := projectconfig.New()
	a := Answers{
		Heuristics:   " basic ,board_aware,, ",
		Depths:       "2-4",
		Engine:       "mock",
		Executable:   "  ./build/checkers ",
		Workers:      "3",
		StoreBackend: "sqlite",
		StoreDSN:     "results.db",
	}

	cfg, err := a.Apply(base)
	require.NoError(t, err)

	assert.Equal(t, []string{"basic", "board_aware"}, cfg.Heuristics)
	assert.Equal(t, projectconfig.Depths{2, 3, 4}, cfg.Depths)
	assert.Equal(t, "mock", cfg.Engine)
	assert.Equal(t, "./build/checkers", cfg.Executable)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, "sqlite", cfg.Store.Backend)
	assert.Equal(t, "results.db", cfg.Store.DSN)

	// base is untouched
	assert.Equal(t, projectconfig.DefaultHeuristics, base.Heuristics)
	assert.Equal(t, 1, base.Workers)
}

func TestAnswersApply_Invalid(t *testing.T) {
	valid := DefaultAnswers(projectconfig.New())

	tests := []struct {
		name   string
		mutate func(*Answers)
		errStr string
	}{
		{"one heuristic", func(a *Answers) { a.Heuristics = "basic" }, "at least two"},
		{"duplicate heuristic", func(a *Answers) { a.Heuristics = "basic, basic" }, "duplicate"},
		{"heuristic with space", func(a *Answers) { a.Heuristics = "basic, a basic" }, "spaces"},
		{"bad depths", func(a *Answers) { a.Depths = "eight" }, "not an integer"},
		{"zero workers", func(a *Answers) { a.Workers = "0" }, "workers"},
		{"unknown backend", func(a *Answers) { a.StoreBackend = "redis" }, "unknown store backend"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := valid
			tc.mutate(&a)
			_, err := a.Apply(projectconfig.New())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errStr)
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	assert.Nil(t, splitAndTrim(""))
	assert.Equal(t, []string{"a", "b"}, splitAndTrim(" a , ,b,"))
}
