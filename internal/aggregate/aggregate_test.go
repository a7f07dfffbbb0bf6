package aggregate

import (
	"context"
	"errors"
	"testing"

	"github.com/pszt/botbench/internal/models"
	"github.com/pszt/botbench/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func put(t *testing.T, s store.ResultStore, white, black string, depth int, outcome models.Outcome, whiteAvg, blackAvg float64) {
	t.Helper()
	require.NoError(t, s.Put(context.Background(), models.NewMatchKey(white, black, depth), &models.MatchSummary{
		WhiteParams:      white,
		BlackParams:      black,
		WhiteAvgMoveTime: whiteAvg,
		BlackAvgMoveTime: blackAvg,
		Outcome:          outcome,
	}))
}

// fill stores a summary for every cell of u with the given outcome.
func fill(t *testing.T, s store.ResultStore, u models.Universe, outcome models.Outcome) {
	t.Helper()
	for _, d := range u.Depths {
		for _, w := range u.Heuristics {
			for _, b := range u.Heuristics {
				if w != b {
					put(t, s, w, b, d, outcome, 10, 20)
				}
			}
		}
	}
}

func TestMatchup_BothCreditFirst(t *testing.T) {
	s := store.NewMemoryStore()
	put(t, s, "basic", "a_basic", 3, models.OutcomeWhiteWon, 1, 1)
	put(t, s, "a_basic", "basic", 3, models.OutcomeBlackWon, 1, 1)

	r, err := Matchup(context.Background(), s, "basic", "a_basic", []int{3})
	require.NoError(t, err)
	assert.Equal(t, []models.MatchupRow{{Depth: 3, FirstWins: 2, SecondWins: 0}}, r.Rows)
}

func TestMatchup_DrawsAndUnknownTokensCreditNoOne(t *testing.T) {
	s := store.NewMemoryStore()
	put(t, s, "basic", "a_basic", 1, models.OutcomeTie, 1, 1)
	put(t, s, "a_basic", "basic", 1, models.OutcomeWhiteWon, 1, 1)
	put(t, s, "basic", "a_basic", 2, "", 1, 1)
	put(t, s, "a_basic", "basic", 2, "aborted", 1, 1)

	r, err := Matchup(context.Background(), s, "basic", "a_basic", []int{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []models.MatchupRow{
		{Depth: 1, FirstWins: 0, SecondWins: 1},
		{Depth: 2, FirstWins: 0, SecondWins: 0},
	}, r.Rows)
}

func TestMatchup_WinsNeverExceedTwo(t *testing.T) {
	outcomes := []models.Outcome{models.OutcomeWhiteWon, models.OutcomeBlackWon, models.OutcomeTie, "junk"}
	for _, o1 := range outcomes {
		for _, o2 := range outcomes {
			s := store.NewMemoryStore()
			put(t, s, "x", "y", 1, o1, 1, 1)
			put(t, s, "y", "x", 1, o2, 1, 1)

			r, err := Matchup(context.Background(), s, "x", "y", []int{1})
			require.NoError(t, err)
			row := r.Rows[0]
			total := row.FirstWins + row.SecondWins
			assert.LessOrEqual(t, total, 2)
			assert.Equal(t, total == 2, o1.Decisive() && o2.Decisive(), "outcomes %q/%q", o1, o2)
		}
	}
}

func TestMatchup_MissingResult(t *testing.T) {
	s := store.NewMemoryStore()
	put(t, s, "basic", "a_basic", 1, models.OutcomeWhiteWon, 1, 1)
	put(t, s, "a_basic", "basic", 1, models.OutcomeWhiteWon, 1, 1)
	put(t, s, "basic", "a_basic", 2, models.OutcomeWhiteWon, 1, 1)

	_, err := Matchup(context.Background(), s, "basic", "a_basic", []int{1, 2})
	require.ErrorIs(t, err, models.ErrMissingResult)

	var mre *models.MissingResultError
	require.True(t, errors.As(err, &mre))
	assert.Equal(t, models.NewMatchKey("a_basic", "basic", 2), mre.Key)
}

func TestMatchups_OrderAndPartialFailure(t *testing.T) {
	u := models.Universe{Heuristics: []string{"basic", "a_basic", "board_aware"}, Depths: []int{2, 1}}
	s := store.NewMemoryStore()
	fill(t, s, u, models.OutcomeWhiteWon)

	reports, err := Matchups(context.Background(), s, u)
	require.NoError(t, err)
	require.Len(t, reports, 3)
	assert.Equal(t, "basic-vs-a_basic", reports[0].Name())
	assert.Equal(t, "basic-vs-board_aware", reports[1].Name())
	assert.Equal(t, "a_basic-vs-board_aware", reports[2].Name())
	for _, r := range reports {
		assert.Equal(t, []models.MatchupRow{
			{Depth: 1, FirstWins: 1, SecondWins: 1},
			{Depth: 2, FirstWins: 1, SecondWins: 1},
		}, r.Rows)
	}

	// Drop one cell: only the reports that need it fail.
	partial := store.NewMemoryStore()
	for _, k := range mustList(t, s) {
		if k == models.NewMatchKey("board_aware", "a_basic", 2) {
			continue
		}
		v, err := s.Get(context.Background(), k)
		require.NoError(t, err)
		require.NoError(t, partial.Put(context.Background(), k, v))
	}

	reports, err = Matchups(context.Background(), partial, u)
	require.ErrorIs(t, err, models.ErrMissingResult)
	assert.ErrorContains(t, err, "board_aware-2-vs-a_basic-2.txt")
	require.Len(t, reports, 2)
	assert.Equal(t, "basic-vs-a_basic", reports[0].Name())
	assert.Equal(t, "basic-vs-board_aware", reports[1].Name())
}

func mustList(t *testing.T, s store.ResultStore) []models.MatchKey {
	t.Helper()
	keys, err := s.List(context.Background())
	require.NoError(t, err)
	return keys
}

func TestTiming_AverageOfAverages(t *testing.T) {
	u := models.Universe{Heuristics: []string{"basic", "a_basic", "board_aware"}, Depths: []int{1}}
	s := store.NewMemoryStore()
	// basic's own averages: 100 (white vs a_basic), 200 (black vs a_basic),
	// 300 (white vs board_aware), 401 (black vs board_aware).
	put(t, s, "basic", "a_basic", 1, models.OutcomeTie, 100, 9999)
	put(t, s, "a_basic", "basic", 1, models.OutcomeTie, 9999, 200)
	put(t, s, "basic", "board_aware", 1, models.OutcomeTie, 300, 9999)
	put(t, s, "board_aware", "basic", 1, models.OutcomeTie, 9999, 401)

	r, err := Timing(context.Background(), s, "basic", u)
	require.NoError(t, err)
	require.Len(t, r.Rows, 1)
	assert.Equal(t, 1, r.Rows[0].Depth)
	assert.Equal(t, 4, r.Rows[0].Samples)
	assert.InDelta(t, 250.25, r.Rows[0].AvgMoveTime, 1e-9)
}

func TestTiming_MissingResult(t *testing.T) {
	u := models.Universe{Heuristics: []string{"basic", "a_basic"}, Depths: []int{1, 2}}
	s := store.NewMemoryStore()
	put(t, s, "basic", "a_basic", 1, models.OutcomeTie, 1, 1)
	put(t, s, "a_basic", "basic", 1, models.OutcomeTie, 1, 1)
	put(t, s, "basic", "a_basic", 2, models.OutcomeTie, 1, 1)

	_, err := Timing(context.Background(), s, "basic", u)
	var mre *models.MissingResultError
	require.True(t, errors.As(err, &mre))
	assert.Equal(t, models.NewMatchKey("a_basic", "basic", 2), mre.Key)
	assert.Equal(t, "basic timing", mre.Report)
}

func TestTimings_AllHeuristics(t *testing.T) {
	u := models.Universe{Heuristics: []string{"basic", "a_basic"}, Depths: []int{3, 1, 2}}
	s := store.NewMemoryStore()
	fill(t, s, u, models.OutcomeTie)

	reports, err := Timings(context.Background(), s, u)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "basic", reports[0].Heuristic)
	assert.Equal(t, "a_basic", reports[1].Heuristic)
	for _, r := range reports {
		require.Len(t, r.Rows, 3)
		for i, row := range r.Rows {
			assert.Equal(t, i+1, row.Depth)
			assert.Equal(t, 15.0, row.AvgMoveTime)
		}
	}
}
