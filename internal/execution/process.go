package execution

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/pszt/botbench/internal/models"
)

// defaultTimeout bounds a single match when none is configured.
const defaultTimeout = 10 * time.Minute

// maxStderr is how much of the runner's stderr is kept for error messages.
const maxStderr = 2048

// DefaultExecutable returns the checkers program command line for the
// current platform.
func DefaultExecutable() string {
	if runtime.GOOS == "windows" {
		return "powershell.exe ./bin/pszt_warcaby.exe"
	}
	return "./bin/pszt_warcaby"
}

// ProcessRunnerArgs holds the arguments for creating a process runner.
type ProcessRunnerArgs struct {
	// Executable is the command line of the checkers program. It may hold
	// several space-separated words, e.g. a shell wrapper and the program.
	Executable string
	// ExtraArgs are appended after the match flags, so they can override them.
	ExtraArgs []string
	// Timeout bounds each match. Defaults to 10 minutes.
	Timeout time.Duration
	// Dir is the working directory of the program and the base of a relative
	// executable. Empty means the current one.
	Dir string
}

// ProcessRunner plays matches by running the external checkers program with
// both sides under bot control and the GUI disabled.
type ProcessRunner struct {
	command   []string
	extraArgs []string
	timeout   time.Duration
	dir       string
}

// NewProcessRunner creates a [ProcessRunner].
func NewProcessRunner(args ProcessRunnerArgs) (*ProcessRunner, error) {
	command := strings.Fields(args.Executable)
	if len(command) == 0 {
		return nil, errors.New("process runner needs an executable")
	}

	timeout := args.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &ProcessRunner{
		command:   command,
		extraArgs: args.ExtraArgs,
		timeout:   timeout,
		dir:       args.Dir,
	}, nil
}

// Args returns the program arguments for one match, excluding the executable.
func (r *ProcessRunner) Args(key models.MatchKey, logPath string) []string {
	args := []string{
		"--wbot", "true",
		"--bbot", "true",
		"--gui", "false",
		"--log", logPath,
		"--wheuristic", key.White.Heuristic,
		"--wdepth", strconv.Itoa(key.White.Depth),
		"--bheuristic", key.Black.Heuristic,
		"--bdepth", strconv.Itoa(key.Black.Depth),
	}
	return append(args, r.extraArgs...)
}

// CommandLine renders the full invocation for display.
func (r *ProcessRunner) CommandLine(key models.MatchKey, logPath string) string {
	parts := append([]string{}, r.command...)
	return strings.Join(append(parts, r.Args(key, logPath)...), " ")
}

// Play runs the program for key and checks that it left a log at logPath.
func (r *ProcessRunner) Play(ctx context.Context, key models.MatchKey, logPath string) error {
	// The program resolves --log against its own working directory.
	if r.dir != "" && !filepath.IsAbs(logPath) {
		abs, err := filepath.Abs(logPath)
		if err != nil {
			return fmt.Errorf("resolving log path: %w", err)
		}
		logPath = abs
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	args := append(append([]string{}, r.command[1:]...), r.Args(key, logPath)...)
	cmd := exec.CommandContext(timeoutCtx, r.command[0], args...)
	cmd.Dir = r.dir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(timeoutCtx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("match %s timed out after %s", key, r.timeout)
		}
		msg := strings.TrimSpace(stderr.String())
		if len(msg) > maxStderr {
			msg = "..." + msg[len(msg)-maxStderr:]
		}
		if msg != "" {
			return fmt.Errorf("match %s: %w; stderr: %s", key, err, msg)
		}
		return fmt.Errorf("match %s: %w", key, err)
	}

	if _, err := os.Stat(logPath); err != nil {
		return fmt.Errorf("match %s produced no log at %s: %w", key, logPath, err)
	}
	return nil
}
