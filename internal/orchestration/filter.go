package orchestration

import (
	"fmt"
	"path/filepath"

	"github.com/pszt/botbench/internal/models"
)

// FilterMatches returns the subset of keys whose match name matches at least
// one of the given glob patterns. An empty patterns slice returns all keys
// unchanged.
func FilterMatches(keys []models.MatchKey, patterns []string) ([]models.MatchKey, error) {
	if len(patterns) == 0 {
		return keys, nil
	}

	var matched []models.MatchKey
	for _, k := range keys {
		ok, err := matchesAny(k, patterns)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, k)
		}
	}
	return matched, nil
}

// matchesAny reports whether a key's name matches any pattern.
func matchesAny(k models.MatchKey, patterns []string) (bool, error) {
	for _, p := range patterns {
		ok, err := filepath.Match(p, k.Name())
		if err != nil {
			return false, fmt.Errorf("invalid match filter pattern %q: %w", p, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
