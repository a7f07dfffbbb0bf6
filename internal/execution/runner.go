package execution

//go:generate go tool mockgen -source=runner.go -destination=runner_mock.go -package=execution

import (
	"context"
	"fmt"

	"github.com/pszt/botbench/internal/models"
)

// Engine names accepted by New.
const (
	EngineProcess = "process"
	EngineMock    = "mock"
)

// GameRunner plays one match and leaves its raw log at logPath.
type GameRunner interface {
	Play(ctx context.Context, key models.MatchKey, logPath string) error
}

// New builds the runner for engine. args is only consulted by the process engine.
func New(engine string, args ProcessRunnerArgs) (GameRunner, error) {
	switch engine {
	case "", EngineProcess:
		return NewProcessRunner(args)
	case EngineMock:
		return NewScriptedRunner(), nil
	default:
		return nil, fmt.Errorf("unknown engine %q (want %s or %s)", engine, EngineProcess, EngineMock)
	}
}
