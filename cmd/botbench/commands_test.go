package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pszt/botbench/internal/archive"
	"github.com/pszt/botbench/internal/execution"
	"github.com/pszt/botbench/internal/models"
	"github.com/pszt/botbench/internal/projectconfig"
)

const mockProject = `heuristics: [basic, a_basic]
depths: 1-2
engine: mock
paths:
  logs: logs/
  results: results/
  reports: reports/
store:
  backend: file
`

func writeProject(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, projectconfig.FileName), []byte(content), 0o644))
	return dir
}

// runBotbench executes the root command against dir and returns stdout.
func runBotbench(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"-C", dir}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestRunCommand_MockEngineWritesReports(t *testing.T) {
	dir := writeProject(t, mockProject)

	out, err := runBotbench(t, dir, "run", "--report", "--format", "table,markdown,html", "-o", filepath.Join(dir, "outcome.json"))
	require.NoError(t, err)

	assert.Contains(t, out, "Playing 4 match(es)")
	assert.Contains(t, out, "Summarized:  4")
	assert.Contains(t, out, "MATCHUPS")

	for _, name := range []string{"basic-vs-a_basic.csv", "basic-time.csv", "a_basic-time.csv", "report.md", "report.html"} {
		assert.FileExists(t, filepath.Join(dir, "reports", name))
	}
	assert.FileExists(t, filepath.Join(dir, "results", "basic-2-vs-a_basic-2.txt"))
	assert.FileExists(t, filepath.Join(dir, "outcome.json"))
	assert.NoDirExists(t, filepath.Join(dir, "logs"), "raw logs are removed unless kept")

	data, err := os.ReadFile(filepath.Join(dir, "reports", "basic-vs-a_basic.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "depth,basic won, a_basic won", lines[0])
}

func TestRunCommand_ResumeSkipsStoredMatches(t *testing.T) {
	dir := writeProject(t, mockProject)

	_, err := runBotbench(t, dir, "run", "--filter", "*-1-vs-*")
	require.NoError(t, err)

	out, err := runBotbench(t, dir, "run", "--resume")
	require.NoError(t, err)
	assert.Contains(t, out, "Summarized:  2")
	assert.Contains(t, out, "Skipped:     2")
}

func TestRunCommand_InvalidOverride(t *testing.T) {
	dir := writeProject(t, mockProject)

	_, err := runBotbench(t, dir, "run", "--depths", "3-1")
	require.Error(t, err)
	assert.Equal(t, ExitError, exitCode(err))

	_, err = runBotbench(t, dir, "run", "--engine", "telepathy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown engine")
}

func TestReportCommand_MissingSummaryIsPartialFailure(t *testing.T) {
	dir := writeProject(t, mockProject)

	_, err := runBotbench(t, dir, "run", "--filter", "*-1-vs-*")
	require.NoError(t, err)

	out, err := runBotbench(t, dir, "report")
	require.Error(t, err)
	assert.Equal(t, ExitPartialFailure, exitCode(err))

	var missing *models.MissingResultError
	assert.True(t, errors.As(err, &missing))
	assert.Contains(t, out, "Wrote 0 report(s)")
	assert.NoFileExists(t, filepath.Join(dir, "reports", "basic-vs-a_basic.csv"))
}

func TestReportCommand_RemovesOutdatedReport(t *testing.T) {
	dir := writeProject(t, mockProject)

	_, err := runBotbench(t, dir, "run", "--report")
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(dir, "reports", "basic-vs-a_basic.csv"))

	require.NoError(t, os.Remove(filepath.Join(dir, "results", "a_basic-2-vs-basic-2.txt")))

	out, err := runBotbench(t, dir, "report")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrMissingResult)
	assert.Contains(t, out, "Removed out-of-date basic-vs-a_basic.csv")
	assert.NoFileExists(t, filepath.Join(dir, "reports", "basic-vs-a_basic.csv"))
	assert.NoFileExists(t, filepath.Join(dir, "reports", "basic-time.csv"))
}

func TestReportCommand_UnknownFormat(t *testing.T) {
	dir := writeProject(t, mockProject)

	_, err := runBotbench(t, dir, "report", "--format", "pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown report format: pdf")
}

func TestScheduleCommand(t *testing.T) {
	dir := writeProject(t, mockProject)

	out, err := runBotbench(t, dir, "schedule")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"basic-1-vs-a_basic-1",
		"a_basic-1-vs-basic-1",
		"basic-2-vs-a_basic-2",
		"a_basic-2-vs-basic-2",
	}, strings.Fields(out))

	out, err = runBotbench(t, dir, "schedule", "--commands", "--filter", "basic-2-*")
	require.NoError(t, err)
	assert.Contains(t, out, "--wheuristic basic --wdepth 2 --bheuristic a_basic --bdepth 2")
	assert.Contains(t, out, filepath.Join(dir, "logs", "basic-2-vs-a_basic-2.txt"))
}

func TestSummarizeCommand(t *testing.T) {
	dir := writeProject(t, mockProject)

	scripted := execution.NewScriptedRunner()
	scripted.Outcomes = map[string]models.Outcome{"basic-1-vs-a_basic-1": models.OutcomeWhiteWon}
	key := models.NewMatchKey("basic", "a_basic", 1)
	logPath := filepath.Join(dir, "incoming", key.FileName())
	require.NoError(t, os.MkdirAll(filepath.Dir(logPath), 0o755))
	require.NoError(t, os.WriteFile(logPath, scripted.Script(key), 0o644))

	archived, err := archive.New(filepath.Join(dir, "archive")).Store(logPath)
	require.NoError(t, err)
	require.NoError(t, os.Remove(logPath))

	bad := filepath.Join(dir, "incoming", "a_basic-1-vs-basic-1.txt")
	require.NoError(t, os.WriteFile(bad, []byte("p1\np2\nwhite soon\nwhite_won\n"), 0o644))

	out, err := runBotbench(t, dir, "summarize", archived, bad)
	require.Error(t, err)
	assert.Equal(t, ExitPartialFailure, exitCode(err))
	assert.ErrorIs(t, err, models.ErrMalformedLog)
	assert.Contains(t, out, "✓ "+archived+": white_won")
	assert.Contains(t, out, "✗ "+bad)

	out, err = runBotbench(t, dir, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "basic-1-vs-a_basic-1")

	out, err = runBotbench(t, dir, "list", "--missing")
	require.NoError(t, err)
	assert.NotContains(t, out, "basic-1-vs-a_basic-1\n")
	assert.Contains(t, out, "a_basic-1-vs-basic-1")
}

func TestArchiveExtractCommand(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "basic-1-vs-a_basic-1.txt")
	content := "p1\np2\nwhite 10\nblack 20\nblack_won\n"
	require.NoError(t, os.WriteFile(logPath, []byte(content), 0o644))

	out, err := runBotbench(t, dir, "archive", "store", "--dir", filepath.Join(dir, "arch"), logPath)
	require.NoError(t, err)
	archived := strings.TrimSpace(out)
	assert.True(t, archive.IsArchive(archived))

	out, err = runBotbench(t, dir, "archive", "extract", archived)
	require.NoError(t, err)
	assert.Equal(t, content, out)

	dst := filepath.Join(dir, "restored.txt")
	_, err = runBotbench(t, dir, "archive", "extract", archived, "-o", dst)
	require.NoError(t, err)
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "bench")

	out, err := runBotbench(t, dir, "init", target)
	require.NoError(t, err)
	assert.Contains(t, out, "Created")
	assert.FileExists(t, filepath.Join(target, projectconfig.FileName))

	cfg, err := projectconfig.Load(target)
	require.NoError(t, err)
	assert.Equal(t, projectconfig.DefaultHeuristics, cfg.Heuristics)
	assert.Equal(t, "1-8", cfg.Depths.String())

	_, err = runBotbench(t, dir, "init", target)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = runBotbench(t, dir, "init", target, "--force")
	require.NoError(t, err)
}
