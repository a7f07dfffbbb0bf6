package validation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfigYAML = `heuristics: [basic, a_basic, board_aware]
depths: 1-8
engine: process
executable: ./bin/pszt_warcaby
timeout: 600
workers: 2
paths:
  logs: match_results/
  results: results/
store:
  backend: sqlite
  dsn: results.db
hooks:
  before_run:
    - command: make
      error_on_fail: true
`

func TestValidateConfigBytes_Valid(t *testing.T) {
	require.Empty(t, ValidateConfigBytes([]byte(validConfigYAML)))
}

func TestValidateConfigBytes_DepthForms(t *testing.T) {
	for _, depths := range []string{"3", "1-8", `"2 - 4"`, "[1, 2, 5]", "{min: 2, max: 6}"} {
		t.Run(depths, func(t *testing.T) {
			errs := ValidateConfigBytes([]byte("depths: " + depths + "\n"))
			assert.Empty(t, errs)
		})
	}
}

func TestValidateConfigBytes_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		loc  string
	}{
		{name: "one heuristic", yaml: "heuristics: [basic]\n", loc: "/heuristics"},
		{name: "duplicate heuristics", yaml: "heuristics: [basic, basic]\n", loc: "/heuristics"},
		{name: "zero depth", yaml: "depths: [0, 1]\n", loc: "/depths"},
		{name: "bad depth range", yaml: "depths: one-to-eight\n", loc: "/depths"},
		{name: "unknown engine", yaml: "engine: telepathy\n", loc: "/engine"},
		{name: "unknown backend", yaml: "store:\n  backend: redis\n", loc: "/store/backend"},
		{name: "unknown key", yaml: "colour: blue\n", loc: "/"},
		{name: "hook without command", yaml: "hooks:\n  after_run:\n    - error_on_fail: true\n", loc: "/hooks/after_run/0"},
		{name: "zero workers", yaml: "workers: 0\n", loc: "/workers"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			errs := ValidateConfigBytes([]byte(tc.yaml))
			require.NotEmpty(t, errs)

			found := false
			for _, e := range errs {
				if strings.HasPrefix(e, tc.loc) {
					found = true
				}
			}
			assert.True(t, found, "expected an error at %s, got %v", tc.loc, errs)
		})
	}
}

func TestValidateConfigBytes_BadYAML(t *testing.T) {
	errs := ValidateConfigBytes([]byte("heuristics: [basic\n"))
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "YAML parse error")
}

func TestValidateConfigBytes_Empty(t *testing.T) {
	assert.Empty(t, ValidateConfigBytes(nil))
}

func TestValidateConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".botbench.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validConfigYAML), 0644))

	errs, err := ValidateConfigFile(path)
	require.NoError(t, err)
	assert.Empty(t, errs)

	_, err = ValidateConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
