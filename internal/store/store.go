// Package store persists match summaries keyed by match.
package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/pszt/botbench/internal/models"
)

// ErrNotFound is returned when no summary is stored under a key.
var ErrNotFound = errors.New("match summary not found")

// Backend names accepted by Open.
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendAzBlob   = "azblob"
)

// Backends lists every supported backend name.
var Backends = []string{BackendFile, BackendMemory, BackendSQLite, BackendPostgres, BackendAzBlob}

// ResultStore provides access to match summaries.
type ResultStore interface {
	// Get returns the summary stored under key, or ErrNotFound.
	Get(ctx context.Context, key models.MatchKey) (*models.MatchSummary, error)
	// Put stores summary under key, replacing any previous value.
	Put(ctx context.Context, key models.MatchKey, summary *models.MatchSummary) error
	// Has reports whether a summary is stored under key.
	Has(ctx context.Context, key models.MatchKey) (bool, error)
	// Delete removes the summary stored under key. Deleting a missing key
	// is not an error.
	Delete(ctx context.Context, key models.MatchKey) error
	// List returns every stored key, sorted by match name.
	List(ctx context.Context) ([]models.MatchKey, error)
	// Close releases backend resources.
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Backend string
	// Dir is the results directory for the file backend.
	Dir string
	// DSN is the sqlite path or postgres connection string, or the
	// storage account connection string for azblob.
	DSN string
	// Container and AccountURL configure azblob. AccountURL is used with
	// the default Azure credential chain when DSN is empty.
	Container  string
	AccountURL string
	// Prefix is prepended to blob names.
	Prefix string
}

// Open returns the backend selected by opts.
func Open(ctx context.Context, opts Options) (ResultStore, error) {
	switch opts.Backend {
	case BackendFile, "":
		if opts.Dir == "" {
			return nil, fmt.Errorf("file store: results directory is required")
		}
		return NewFileStore(opts.Dir), nil
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendSQLite:
		return OpenSQLite(ctx, opts.DSN)
	case BackendPostgres:
		return OpenPostgres(ctx, opts.DSN)
	case BackendAzBlob:
		return OpenBlobStore(opts)
	default:
		return nil, fmt.Errorf("unknown store backend %q (supported: %s)", opts.Backend, strings.Join(Backends, ", "))
	}
}

func sortKeys(keys []models.MatchKey) []models.MatchKey {
	slices.SortFunc(keys, func(a, b models.MatchKey) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return keys
}

func decodeSummary(key models.MatchKey, data []byte) (*models.MatchSummary, error) {
	var s models.MatchSummary
	if err := s.UnmarshalText(data); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", key.FileName(), err)
	}
	return &s, nil
}
