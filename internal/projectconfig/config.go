// Package projectconfig provides the ProjectConfig struct and loader for
// .botbench.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/pszt/botbench/internal/execution"
	"github.com/pszt/botbench/internal/hooks"
	"github.com/pszt/botbench/internal/models"
	"github.com/pszt/botbench/internal/store"
	"github.com/pszt/botbench/internal/validation"
	"gopkg.in/yaml.v3"
)

// FileName is the project config file looked up by Load.
const FileName = ".botbench.yaml"

// Default values for project configuration. New() references them and no
// other code should duplicate them.
const (
	DefaultMinDepth = 1
	DefaultMaxDepth = 8

	DefaultEngine  = execution.EngineProcess
	DefaultTimeout = 600
	DefaultWorkers = 1

	DefaultLogsDir    = "match_results/"
	DefaultResultsDir = "results/"
	DefaultReportsDir = "reports/"

	DefaultStoreBackend = store.BackendFile
)

// DefaultHeuristics are the heuristics the checkers program ships with.
var DefaultHeuristics = []string{"basic", "a_basic", "board_aware"}

// Environment variables that override the config file.
const (
	EnvExecutable      = "BOTBENCH_EXECUTABLE"
	EnvStoreBackend    = "BOTBENCH_STORE_BACKEND"
	EnvStoreDSN        = "BOTBENCH_STORE_DSN"
	EnvStoreContainer  = "BOTBENCH_STORE_CONTAINER"
	EnvStoreAccountURL = "BOTBENCH_STORE_ACCOUNT_URL"
)

// PathsConfig holds working directories.
type PathsConfig struct {
	Logs    string `yaml:"logs,omitempty" mapstructure:"logs"`
	Results string `yaml:"results,omitempty" mapstructure:"results"`
	Reports string `yaml:"reports,omitempty" mapstructure:"reports"`
	// Archive enables zstd archiving of raw logs when set.
	Archive string `yaml:"archive,omitempty" mapstructure:"archive"`
}

// StoreConfig selects where match summaries are kept.
type StoreConfig struct {
	Backend    string `yaml:"backend,omitempty" mapstructure:"backend"`
	DSN        string `yaml:"dsn,omitempty" mapstructure:"dsn"`
	Container  string `yaml:"container,omitempty" mapstructure:"container"`
	AccountURL string `yaml:"account_url,omitempty" mapstructure:"account_url"`
	Prefix     string `yaml:"prefix,omitempty" mapstructure:"prefix"`
}

// ProjectConfig is the top-level configuration loaded from .botbench.yaml.
type ProjectConfig struct {
	Heuristics []string          `yaml:"heuristics,omitempty" mapstructure:"heuristics"`
	Depths     Depths            `yaml:"depths,omitempty" mapstructure:"depths"`
	Engine     string            `yaml:"engine,omitempty" mapstructure:"engine"`
	Executable string            `yaml:"executable,omitempty" mapstructure:"executable"`
	ExtraArgs  []string          `yaml:"extra_args,omitempty" mapstructure:"extra_args"`
	Timeout    int               `yaml:"timeout,omitempty" mapstructure:"timeout"`
	Workers    int               `yaml:"workers,omitempty" mapstructure:"workers"`
	KeepLogs   *bool             `yaml:"keep_logs,omitempty" mapstructure:"keep_logs"`
	Paths      PathsConfig       `yaml:"paths,omitempty" mapstructure:"paths"`
	Store      StoreConfig       `yaml:"store,omitempty" mapstructure:"store"`
	Hooks      hooks.HooksConfig `yaml:"hooks,omitempty" mapstructure:"hooks"`

	// Source is the file the config was loaded from, empty for defaults.
	Source string `yaml:"-" mapstructure:"-"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Heuristics: slices.Clone(DefaultHeuristics),
		Depths:     DepthRange(DefaultMinDepth, DefaultMaxDepth),
		Engine:     DefaultEngine,
		Executable: execution.DefaultExecutable(),
		Timeout:    DefaultTimeout,
		Workers:    DefaultWorkers,
		KeepLogs:   boolPtr(false),
		Paths: PathsConfig{
			Logs:    DefaultLogsDir,
			Results: DefaultResultsDir,
			Reports: DefaultReportsDir,
		},
		Store: StoreConfig{
			Backend: DefaultStoreBackend,
		},
	}
}

// Load finds .botbench.yaml by walking up from startDir (max 10 levels),
// validates it against the config schema, decodes it and fills in missing
// fields with defaults. Environment variables, including those in a .env
// file next to the config, override file values. If no config file is found,
// returns defaults (plus environment overrides) with a nil error.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	path, data, err := findConfigFile(startDir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		path = ""
	case err != nil:
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	default:
		fileCfg, err := parse(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		mergeConfig(cfg, fileCfg)
		cfg.Source = path
	}

	envDir := startDir
	if path != "" {
		envDir = filepath.Dir(path)
	}
	env, err := readEnv(filepath.Join(envDir, ".env"))
	if err != nil {
		return nil, err
	}
	applyEnv(cfg, env)

	return cfg, nil
}

// parse validates and decodes one config document.
func parse(data []byte) (*ProjectConfig, error) {
	if errs := validation.ValidateConfigBytes(data); len(errs) > 0 {
		return nil, fmt.Errorf("invalid config:\n  %s", strings.Join(errs, "\n  "))
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	var fileCfg ProjectConfig
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  depthsHook(),
		ErrorUnused: true,
		Result:      &fileCfg,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, err
	}
	return &fileCfg, nil
}

// findConfigFile walks up from dir looking for .botbench.yaml (max 10 levels).
// Returns os.ErrNotExist if no config file is found. Propagates real I/O
// errors (e.g. permission denied) instead of silently swallowing them.
func findConfigFile(dir string) (string, []byte, error) {
	// Convert to absolute path so filepath.Dir(".") walks correctly.
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, FileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return p, data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return "", nil, os.ErrNotExist
}

// readEnv merges a .env file (if present) with the process environment,
// which takes precedence.
func readEnv(dotenvPath string) (map[string]string, error) {
	env, err := godotenv.Read(dotenvPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", dotenvPath, err)
		}
		env = map[string]string{}
	}
	for _, key := range []string{EnvExecutable, EnvStoreBackend, EnvStoreDSN, EnvStoreContainer, EnvStoreAccountURL} {
		if v, ok := os.LookupEnv(key); ok {
			env[key] = v
		}
	}
	return env, nil
}

func applyEnv(cfg *ProjectConfig, env map[string]string) {
	set := func(dst *string, key string) {
		if v := env[key]; v != "" {
			*dst = v
		}
	}
	set(&cfg.Executable, EnvExecutable)
	set(&cfg.Store.Backend, EnvStoreBackend)
	set(&cfg.Store.DSN, EnvStoreDSN)
	set(&cfg.Store.Container, EnvStoreContainer)
	set(&cfg.Store.AccountURL, EnvStoreAccountURL)
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	if len(src.Heuristics) > 0 {
		dst.Heuristics = src.Heuristics
	}
	if len(src.Depths) > 0 {
		dst.Depths = src.Depths
	}
	if src.Engine != "" {
		dst.Engine = src.Engine
	}
	if src.Executable != "" {
		dst.Executable = src.Executable
	}
	if len(src.ExtraArgs) > 0 {
		dst.ExtraArgs = src.ExtraArgs
	}
	if src.Timeout != 0 {
		dst.Timeout = src.Timeout
	}
	if src.Workers != 0 {
		dst.Workers = src.Workers
	}
	if src.KeepLogs != nil {
		dst.KeepLogs = src.KeepLogs
	}

	// Paths
	if src.Paths.Logs != "" {
		dst.Paths.Logs = src.Paths.Logs
	}
	if src.Paths.Results != "" {
		dst.Paths.Results = src.Paths.Results
	}
	if src.Paths.Reports != "" {
		dst.Paths.Reports = src.Paths.Reports
	}
	if src.Paths.Archive != "" {
		dst.Paths.Archive = src.Paths.Archive
	}

	// Store
	if src.Store.Backend != "" {
		dst.Store.Backend = src.Store.Backend
	}
	if src.Store.DSN != "" {
		dst.Store.DSN = src.Store.DSN
	}
	if src.Store.Container != "" {
		dst.Store.Container = src.Store.Container
	}
	if src.Store.AccountURL != "" {
		dst.Store.AccountURL = src.Store.AccountURL
	}
	if src.Store.Prefix != "" {
		dst.Store.Prefix = src.Store.Prefix
	}

	// Hooks
	if len(src.Hooks.BeforeRun) > 0 {
		dst.Hooks.BeforeRun = src.Hooks.BeforeRun
	}
	if len(src.Hooks.AfterRun) > 0 {
		dst.Hooks.AfterRun = src.Hooks.AfterRun
	}
	if len(src.Hooks.AfterMatch) > 0 {
		dst.Hooks.AfterMatch = src.Hooks.AfterMatch
	}
}

// Validate checks settings that only make sense once every source is merged.
func (c *ProjectConfig) Validate() error {
	if err := c.Universe().Validate(); err != nil {
		return err
	}
	if !slices.Contains(store.Backends, c.Store.Backend) {
		return fmt.Errorf("unknown store backend %q (supported: %s)", c.Store.Backend, strings.Join(store.Backends, ", "))
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	return nil
}

// Universe returns the heuristics and depths to benchmark.
func (c *ProjectConfig) Universe() models.Universe {
	return models.Universe{
		Heuristics: slices.Clone(c.Heuristics),
		Depths:     slices.Clone([]int(c.Depths)),
	}
}

// StoreOptions returns the result store selection.
func (c *ProjectConfig) StoreOptions() store.Options {
	return store.Options{
		Backend:    c.Store.Backend,
		Dir:        c.Paths.Results,
		DSN:        c.Store.DSN,
		Container:  c.Store.Container,
		AccountURL: c.Store.AccountURL,
		Prefix:     c.Store.Prefix,
	}
}

// RunnerArgs returns the settings for the external game runner. The program
// runs in the directory holding the config file, so a relative executable
// such as ./bin/pszt_warcaby is found next to the project.
func (c *ProjectConfig) RunnerArgs() execution.ProcessRunnerArgs {
	args := execution.ProcessRunnerArgs{
		Executable: c.Executable,
		ExtraArgs:  slices.Clone(c.ExtraArgs),
		Timeout:    time.Duration(c.Timeout) * time.Second,
	}
	if c.Source != "" {
		args.Dir = filepath.Dir(c.Source)
	}
	return args
}

// Save writes the config as YAML to path.
func (c *ProjectConfig) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func boolPtr(b bool) *bool { return &b }
