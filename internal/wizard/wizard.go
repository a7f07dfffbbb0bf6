// Package wizard collects a project configuration interactively.
package wizard

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/pszt/botbench/internal/execution"
	"github.com/pszt/botbench/internal/projectconfig"
	"github.com/pszt/botbench/internal/store"
	"golang.org/x/term"
)

// Answers holds the raw form values.
type Answers struct {
	Heuristics   string
	Depths       string
	Engine       string
	Executable   string
	Workers      string
	StoreBackend string
	StoreDSN     string
}

// DefaultAnswers pre-fills the form from cfg.
func DefaultAnswers(cfg *projectconfig.ProjectConfig) Answers {
	return Answers{
		Heuristics:   strings.Join(cfg.Heuristics, ", "),
		Depths:       cfg.Depths.String(),
		Engine:       cfg.Engine,
		Executable:   cfg.Executable,
		Workers:      strconv.Itoa(cfg.Workers),
		StoreBackend: cfg.Store.Backend,
		StoreDSN:     cfg.Store.DSN,
	}
}

// RunInitWizard runs an interactive huh form seeded with defaults and
// returns the resulting configuration.
func RunInitWizard(in io.Reader, out io.Writer, defaults *projectconfig.ProjectConfig) (*projectconfig.ProjectConfig, error) {
	a := DefaultAnswers(defaults)

	backendOptions := make([]huh.Option[string], 0, len(store.Backends))
	for _, b := range store.Backends {
		backendOptions = append(backendOptions, huh.NewOption(b, b))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Heuristics").
				Description("Comma-separated heuristic names known to the checkers program").
				Value(&a.Heuristics).
				Validate(validateHeuristics),
			huh.NewInput().
				Title("Depths").
				Description(`A range like "1-8" or a list like "1,2,4"`).
				Value(&a.Depths).
				Validate(validateDepths),
			huh.NewInput().
				Title("Workers").
				Description("Matches played at once").
				Value(&a.Workers).
				Validate(validateWorkers),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Engine").
				Options(
					huh.NewOption("checkers program", execution.EngineProcess),
					huh.NewOption("scripted games (dry run)", execution.EngineMock),
				).
				Value(&a.Engine),
			huh.NewInput().
				Title("Executable").
				Description("Command line of the checkers program").
				Value(&a.Executable),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Result store").
				Options(backendOptions...).
				Value(&a.StoreBackend),
			huh.NewInput().
				Title("Store DSN").
				Description("sqlite path, postgres URL or blob connection string; empty for the file store").
				Value(&a.StoreDSN),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	return a.Apply(defaults)
}

// Apply returns a copy of base with the answers filled in.
func (a Answers) Apply(base *projectconfig.ProjectConfig) (*projectconfig.ProjectConfig, error) {
	if err := validateHeuristics(a.Heuristics); err != nil {
		return nil, err
	}
	depths, err := projectconfig.ParseDepths(a.Depths)
	if err != nil {
		return nil, err
	}
	workers, err := strconv.Atoi(strings.TrimSpace(a.Workers))
	if err != nil || workers < 1 {
		return nil, fmt.Errorf("workers must be a positive integer, got %q", a.Workers)
	}

	cfg := *base
	cfg.Heuristics = splitAndTrim(a.Heuristics)
	cfg.Depths = depths
	cfg.Workers = workers
	if a.Engine != "" {
		cfg.Engine = a.Engine
	}
	if s := strings.TrimSpace(a.Executable); s != "" {
		cfg.Executable = s
	}
	if a.StoreBackend != "" {
		cfg.Store.Backend = a.StoreBackend
	}
	cfg.Store.DSN = strings.TrimSpace(a.StoreDSN)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validateHeuristics(s string) error {
	names := splitAndTrim(s)
	if len(names) < 2 {
		return fmt.Errorf("at least two heuristics are required")
	}
	seen := map[string]bool{}
	for _, n := range names {
		if strings.ContainsAny(n, " /\\") {
			return fmt.Errorf("heuristic %q must not contain spaces or slashes", n)
		}
		if seen[n] {
			return fmt.Errorf("duplicate heuristic %q", n)
		}
		seen[n] = true
	}
	return nil
}

func validateDepths(s string) error {
	_, err := projectconfig.ParseDepths(s)
	return err
}

func validateWorkers(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return fmt.Errorf("workers must be a positive integer")
	}
	return nil
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
