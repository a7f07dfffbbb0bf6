// Package hooks runs user-configured shell commands around a benchmark run,
// e.g. building the checkers program first or uploading logs after each match.
package hooks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"slices"
	"strings"
)

// Lifecycle points.
const (
	BeforeRun  = "before_run"
	AfterRun   = "after_run"
	AfterMatch = "after_match"
)

// HookConfig defines a single hook command.
type HookConfig struct {
	Command          string `yaml:"command" json:"command" mapstructure:"command"`
	WorkingDirectory string `yaml:"working_directory,omitempty" json:"working_directory,omitempty" mapstructure:"working_directory"`
	ExitCodes        []int  `yaml:"exit_codes,omitempty" json:"exit_codes,omitempty" mapstructure:"exit_codes"`
	ErrorOnFail      bool   `yaml:"error_on_fail,omitempty" json:"error_on_fail,omitempty" mapstructure:"error_on_fail"`
}

// HooksConfig holds all lifecycle hooks.
type HooksConfig struct {
	BeforeRun  []HookConfig `yaml:"before_run,omitempty" json:"before_run,omitempty" mapstructure:"before_run"`
	AfterRun   []HookConfig `yaml:"after_run,omitempty" json:"after_run,omitempty" mapstructure:"after_run"`
	AfterMatch []HookConfig `yaml:"after_match,omitempty" json:"after_match,omitempty" mapstructure:"after_match"`
}

// Runner executes hook commands at lifecycle points.
type Runner struct {
	Logger *slog.Logger
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

// Execute runs all hooks for a lifecycle point in order. env entries
// ("KEY=value") are added to each command's environment.
func (r *Runner) Execute(ctx context.Context, point string, hooks []HookConfig, env ...string) error {
	for i, h := range hooks {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("hook %s: context canceled: %w", point, err)
		}

		if err := r.runHook(ctx, point, i, h, env); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runHook(ctx context.Context, point string, index int, h HookConfig, env []string) error {
	if strings.TrimSpace(h.Command) == "" {
		return fmt.Errorf("hook %s[%d]: empty command", point, index)
	}

	parts := strings.Fields(h.Command)
	//nolint:gosec // hook commands come from the project config, not untrusted input
	cmd := exec.CommandContext(ctx, parts[0], parts[1:]...)
	cmd.Env = append(cmd.Environ(), env...)

	if h.WorkingDirectory != "" {
		cmd.Dir = h.WorkingDirectory
	}

	output, err := cmd.CombinedOutput()
	if len(output) > 0 {
		r.logger().Debug("hook output", "hook", point, "index", index, "output", strings.TrimSpace(string(output)))
	}

	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			// command not found and similar
			if h.ErrorOnFail {
				return fmt.Errorf("hook %s[%d]: %w", point, index, err)
			}
			r.logger().Warn("hook failed, continuing", "hook", point, "index", index, "err", err)
			return nil
		}
		exitCode = exitErr.ExitCode()
	}

	if isAcceptableExit(exitCode, h.ExitCodes) {
		return nil
	}
	if h.ErrorOnFail {
		return fmt.Errorf("hook %s[%d]: command exited with code %d", point, index, exitCode)
	}
	r.logger().Warn("hook exited with unexpected code, continuing", "hook", point, "index", index, "code", exitCode)
	return nil
}

// isAcceptableExit checks whether exitCode is in the allowed list.
// An empty allowedCodes list defaults to allowing only exit code 0.
func isAcceptableExit(exitCode int, allowedCodes []int) bool {
	if len(allowedCodes) == 0 {
		return exitCode == 0
	}
	return slices.Contains(allowedCodes, exitCode)
}
