package execution

import (
	"bytes"
	"context"
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sync"

	"github.com/pszt/botbench/internal/models"
)

// defaultPlies is how many moves each side makes in a scripted game.
const defaultPlies = 20

// ScriptedRunner writes deterministic synthetic logs instead of running the
// checkers program. The same key always yields the same log.
type ScriptedRunner struct {
	// Plies is the number of moves per side. Zero means 20.
	Plies int
	// Outcomes overrides the outcome token by match name.
	Outcomes map[string]models.Outcome
	// Errors makes Play fail for the named matches without writing a log.
	Errors map[string]error

	mu     sync.Mutex
	played []models.MatchKey
}

// NewScriptedRunner creates a [ScriptedRunner] with default settings.
func NewScriptedRunner() *ScriptedRunner {
	return &ScriptedRunner{}
}

// Played returns the keys played so far, in call order.
func (r *ScriptedRunner) Played() []models.MatchKey {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.MatchKey(nil), r.played...)
}

func (r *ScriptedRunner) Play(ctx context.Context, key models.MatchKey, logPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	r.played = append(r.played, key)
	r.mu.Unlock()

	if err, ok := r.Errors[key.Name()]; ok {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}
	if err := os.WriteFile(logPath, r.Script(key), 0644); err != nil {
		return fmt.Errorf("writing scripted log: %w", err)
	}
	return nil
}

// Script returns the synthetic log for key.
func (r *ScriptedRunner) Script(key models.MatchKey) []byte {
	plies := r.Plies
	if plies <= 0 {
		plies = defaultPlies
	}

	h := fnv.New64a()
	h.Write([]byte(key.Name())) //nolint:errcheck
	rng := rand.New(rand.NewPCG(h.Sum64(), uint64(key.White.Depth)))

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "white heuristic=%s depth=%d\n", key.White.Heuristic, key.White.Depth)
	fmt.Fprintf(&buf, "black heuristic=%s depth=%d\n", key.Black.Heuristic, key.Black.Depth)
	for range plies {
		fmt.Fprintf(&buf, "white %d\n", moveTime(rng, key.White))
		fmt.Fprintf(&buf, "black %d\n", moveTime(rng, key.Black))
	}

	outcome, ok := r.Outcomes[key.Name()]
	if !ok {
		outcome = []models.Outcome{models.OutcomeWhiteWon, models.OutcomeBlackWon, models.OutcomeTie}[rng.IntN(3)]
	}
	buf.WriteString(string(outcome) + "\n")
	return buf.Bytes()
}

// moveTime grows roughly fourfold per depth level, scaled by the heuristic.
func moveTime(rng *rand.Rand, p models.Player) int64 {
	base := float64(10 * (len(p.Heuristic) + 1))
	for range p.Depth - 1 {
		base *= 4
	}
	return int64(base * (0.5 + rng.Float64()))
}
