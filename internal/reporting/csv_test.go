package reporting

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pszt/botbench/internal/aggregate"
	"github.com/pszt/botbench/internal/models"
	"github.com/pszt/botbench/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteMatchupCSV(t *testing.T) {
	r := &models.MatchupReport{
		First:  "basic",
		Second: "a_basic",
		Rows: []models.MatchupRow{
			{Depth: 1, FirstWins: 1, SecondWins: 0},
			{Depth: 3, FirstWins: 2, SecondWins: 0},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteMatchupCSV(&buf, r))
	assert.Equal(t, "depth,basic won, a_basic won\n1,1,0\n3,2,0\n", buf.String())
	assert.Equal(t, "basic-vs-a_basic.csv", MatchupFileName(r))
}

func TestWriteTimingCSV_Truncates(t *testing.T) {
	r := &models.TimingReport{
		Heuristic: "board_aware",
		Rows: []models.TimingRow{
			{Depth: 1, AvgMoveTime: 99.99},
			{Depth: 2, AvgMoveTime: 1234.5},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTimingCSV(&buf, r))
	assert.Equal(t, "depth,time\n1,99\n2,1234\n", buf.String())
	assert.Equal(t, "board_aware-time.csv", TimingFileName(r))
}

func seedStore(t *testing.T, s store.ResultStore, u models.Universe) {
	t.Helper()
	ctx := context.Background()
	i := 0
	for _, d := range u.Depths {
		for _, w := range u.Heuristics {
			for _, b := range u.Heuristics {
				if w == b {
					continue
				}
				outcomes := []models.Outcome{models.OutcomeWhiteWon, models.OutcomeBlackWon, models.OutcomeTie}
				require.NoError(t, s.Put(ctx, models.NewMatchKey(w, b, d), &models.MatchSummary{
					WhiteParams:      w,
					BlackParams:      b,
					WhiteAvgMoveTime: float64(d*100 + i),
					BlackAvgMoveTime: float64(d*100) + 0.5,
					Outcome:          outcomes[i%len(outcomes)],
				}))
				i++
			}
		}
	}
}

func TestWriteCSVReports_Idempotent(t *testing.T) {
	ctx := context.Background()
	u := models.Universe{Heuristics: []string{"basic", "a_basic", "board_aware"}, Depths: []int{1, 2, 3}}
	results := store.NewFileStore(filepath.Join(t.TempDir(), "results"))
	seedStore(t, results, u)

	render := func(dir string) map[string][]byte {
		matchups, err := aggregate.Matchups(ctx, results, u)
		require.NoError(t, err)
		timings, err := aggregate.Timings(ctx, results, u)
		require.NoError(t, err)

		paths, err := WriteCSVReports(dir, matchups, timings)
		require.NoError(t, err)
		require.Len(t, paths, 6)

		out := map[string][]byte{}
		for _, p := range paths {
			data, err := os.ReadFile(p)
			require.NoError(t, err)
			out[filepath.Base(p)] = data
		}
		return out
	}

	first := render(filepath.Join(t.TempDir(), "a"))
	second := render(filepath.Join(t.TempDir(), "b"))
	assert.Equal(t, first, second)
	assert.Contains(t, first, "basic-vs-a_basic.csv")
	assert.Contains(t, first, "a_basic-time.csv")
}

func TestRemoveStaleReports(t *testing.T) {
	ctx := context.Background()
	u := models.Universe{Heuristics: []string{"basic", "a_basic", "board_aware"}, Depths: []int{1, 2, 3}}
	results := store.NewMemoryStore()
	seedStore(t, results, u)
	dir := t.TempDir()

	matchups, err := aggregate.Matchups(ctx, results, u)
	require.NoError(t, err)
	timings, err := aggregate.Timings(ctx, results, u)
	require.NoError(t, err)
	_, err = WriteCSVReports(dir, matchups, timings)
	require.NoError(t, err)

	require.NoError(t, results.Delete(ctx, models.NewMatchKey("basic", "a_basic", 2)))
	matchups, err = aggregate.Matchups(ctx, results, u)
	require.ErrorIs(t, err, models.ErrMissingResult)
	timings, err = aggregate.Timings(ctx, results, u)
	require.ErrorIs(t, err, models.ErrMissingResult)
	_, err = WriteCSVReports(dir, matchups, timings)
	require.NoError(t, err)

	removed, err := RemoveStaleReports(dir, u, matchups, timings)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "basic-vs-a_basic.csv"),
		filepath.Join(dir, "basic-time.csv"),
		filepath.Join(dir, "a_basic-time.csv"),
	}, removed)
	assert.FileExists(t, filepath.Join(dir, "basic-vs-board_aware.csv"))
	assert.FileExists(t, filepath.Join(dir, "board_aware-time.csv"))

	// Nothing left to remove on a second pass.
	removed, err = RemoveStaleReports(dir, u, matchups, timings)
	require.NoError(t, err)
	assert.Empty(t, removed)
}
