package reporting

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pszt/botbench/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRun() *models.RunOutcome {
	return &models.RunOutcome{
		StartedAt:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		DurationMs: 4500,
		Matches: []models.MatchResult{
			{
				Key:        models.NewMatchKey("basic", "a_basic", 1),
				Status:     models.MatchSummarized,
				DurationMs: 1500,
				Summary:    &models.MatchSummary{WhiteAvgMoveTime: 10, BlackAvgMoveTime: 12.5, Outcome: models.OutcomeWhiteWon},
			},
			{
				Key:     models.NewMatchKey("a_basic", "basic", 1),
				Status:  models.MatchFailed,
				Error:   "no moves recorded for black",
				LogPath: "match_results/a_basic-1-vs-basic-1.txt",
			},
			{Key: models.NewMatchKey("basic", "a_basic", 2), Status: models.MatchSkipped},
		},
	}
}

func TestConvertToJUnit(t *testing.T) {
	suites := ConvertToJUnit("botbench", sampleRun())

	assert.Equal(t, 3, suites.Tests)
	assert.Equal(t, 1, suites.Errors)
	require.Len(t, suites.TestSuites, 1)

	suite := suites.TestSuites[0]
	assert.Equal(t, 1, suite.Skipped)
	assert.Equal(t, "2026-03-01T12:00:00Z", suite.Timestamp)
	require.Len(t, suite.TestCases, 3)

	assert.Equal(t, "basic-1-vs-a_basic-1", suite.TestCases[0].Name)
	assert.Equal(t, "depth-1", suite.TestCases[0].Classname)
	assert.Equal(t, 1.5, suite.TestCases[0].Time)
	assert.Equal(t, "outcome=white_won white_avg_us=10.0 black_avg_us=12.5", suite.TestCases[0].SystemOut)

	require.NotNil(t, suite.TestCases[1].Error)
	assert.Equal(t, "no moves recorded for black", suite.TestCases[1].Error.Message)
	require.NotNil(t, suite.TestCases[2].Skipped)
}

func TestWriteJUnitXML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junit.xml")
	require.NoError(t, WriteJUnitXML("botbench", sampleRun(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), xml.Header)

	var parsed JUnitTestSuites
	require.NoError(t, xml.Unmarshal(data, &parsed))
	assert.Equal(t, 3, parsed.Tests)
}
