package models

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// MatchFileExt is appended to a match name to form raw log and summary filenames.
const MatchFileExt = ".txt"

// Player identifies an automated player by heuristic and search depth.
type Player struct {
	Heuristic string `json:"heuristic" yaml:"heuristic"`
	Depth     int    `json:"depth" yaml:"depth"`
}

func (p Player) String() string {
	return fmt.Sprintf("%s-%d", p.Heuristic, p.Depth)
}

// MatchKey identifies one match by the players assigned to each color.
type MatchKey struct {
	White Player `json:"white"`
	Black Player `json:"black"`
}

// NewMatchKey returns the key for white playing black with both sides at depth.
func NewMatchKey(white, black string, depth int) MatchKey {
	return MatchKey{
		White: Player{Heuristic: white, Depth: depth},
		Black: Player{Heuristic: black, Depth: depth},
	}
}

// Name returns the canonical match name, e.g. "basic-3-vs-a_basic-3".
func (k MatchKey) Name() string {
	return k.White.String() + "-vs-" + k.Black.String()
}

// FileName returns the artifact filename for the match.
func (k MatchKey) FileName() string {
	return k.Name() + MatchFileExt
}

func (k MatchKey) String() string {
	return k.Name()
}

// Player returns the player assigned to side.
func (k MatchKey) Player(side Side) Player {
	if side == SideWhite {
		return k.White
	}
	return k.Black
}

// Swapped returns the key with colors exchanged.
func (k MatchKey) Swapped() MatchKey {
	return MatchKey{White: k.Black, Black: k.White}
}

var matchNamePattern = regexp.MustCompile(`^(.+)-(\d+)-vs-(.+)-(\d+)$`)

// ParseMatchKey recovers a MatchKey from a match name or artifact filename.
func ParseMatchKey(name string) (MatchKey, error) {
	base := strings.TrimSuffix(name, MatchFileExt)
	m := matchNamePattern.FindStringSubmatch(base)
	if m == nil {
		return MatchKey{}, fmt.Errorf("%q is not a match name (want <heuristic>-<depth>-vs-<heuristic>-<depth>)", name)
	}
	wd, err := strconv.Atoi(m[2])
	if err != nil {
		return MatchKey{}, fmt.Errorf("parsing white depth in %q: %w", name, err)
	}
	bd, err := strconv.Atoi(m[4])
	if err != nil {
		return MatchKey{}, fmt.Errorf("parsing black depth in %q: %w", name, err)
	}
	return MatchKey{
		White: Player{Heuristic: m[1], Depth: wd},
		Black: Player{Heuristic: m[3], Depth: bd},
	}, nil
}

// Universe is the set of heuristics and depths a benchmark covers. Every
// (ordered heuristic pair, depth) cell is expected to have a match summary.
type Universe struct {
	Heuristics []string
	Depths     []int
}

// Validate checks that the universe can produce at least one match.
func (u Universe) Validate() error {
	if len(u.Heuristics) < 2 {
		return fmt.Errorf("at least two heuristics are required, got %d", len(u.Heuristics))
	}
	seen := make(map[string]bool, len(u.Heuristics))
	for _, h := range u.Heuristics {
		if strings.TrimSpace(h) == "" {
			return fmt.Errorf("heuristic names must not be empty")
		}
		if seen[h] {
			return fmt.Errorf("duplicate heuristic %q", h)
		}
		seen[h] = true
	}
	if len(u.Depths) == 0 {
		return fmt.Errorf("at least one depth is required")
	}
	for _, d := range u.Depths {
		if d < 1 {
			return fmt.Errorf("depth must be positive, got %d", d)
		}
	}
	return nil
}

// SortedDepths returns the depths in increasing order without duplicates.
func (u Universe) SortedDepths() []int {
	depths := slices.Clone(u.Depths)
	slices.Sort(depths)
	return slices.Compact(depths)
}

// Pairs returns every unordered heuristic pair, in configuration order.
func (u Universe) Pairs() [][2]string {
	var pairs [][2]string
	for i := 0; i < len(u.Heuristics); i++ {
		for j := i + 1; j < len(u.Heuristics); j++ {
			pairs = append(pairs, [2]string{u.Heuristics[i], u.Heuristics[j]})
		}
	}
	return pairs
}
