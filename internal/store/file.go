package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pszt/botbench/internal/models"
)

// FileStore keeps one five-line summary file per match in a directory, named
// after the match so other tools can find results without an index.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates a FileStore rooted at dir. The directory is created on
// first write.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Dir returns the directory the store reads and writes.
func (fs *FileStore) Dir() string { return fs.dir }

// Path returns the file path a key is stored at.
func (fs *FileStore) Path(key models.MatchKey) string {
	return filepath.Join(fs.dir, key.FileName())
}

func (fs *FileStore) Get(_ context.Context, key models.MatchKey) (*models.MatchSummary, error) {
	data, err := os.ReadFile(fs.Path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading result file: %w", err)
	}
	return decodeSummary(key, data)
}

func (fs *FileStore) Put(_ context.Context, key models.MatchKey, summary *models.MatchSummary) error {
	data, err := summary.MarshalText()
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key.FileName(), err)
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := os.MkdirAll(fs.dir, 0755); err != nil {
		return fmt.Errorf("creating results directory: %w", err)
	}

	// Write then rename so readers never observe a partial summary.
	tmp, err := os.CreateTemp(fs.dir, ".tmp-"+key.Name()+"-*")
	if err != nil {
		return fmt.Errorf("creating temp result file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()           //nolint:errcheck
		os.Remove(tmp.Name()) //nolint:errcheck
		return fmt.Errorf("writing result file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name()) //nolint:errcheck
		return fmt.Errorf("closing result file: %w", err)
	}
	if err := os.Rename(tmp.Name(), fs.Path(key)); err != nil {
		os.Remove(tmp.Name()) //nolint:errcheck
		return fmt.Errorf("writing result file: %w", err)
	}
	return nil
}

func (fs *FileStore) Has(_ context.Context, key models.MatchKey) (bool, error) {
	_, err := os.Stat(fs.Path(key))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func (fs *FileStore) Delete(_ context.Context, key models.MatchKey) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := os.Remove(fs.Path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing result file: %w", err)
	}
	return nil
}

// List returns keys for every file in the directory named like a match.
// Other files are skipped.
func (fs *FileStore) List(_ context.Context) ([]models.MatchKey, error) {
	entries, err := os.ReadDir(fs.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading results directory: %w", err)
	}

	var keys []models.MatchKey
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), models.MatchFileExt) {
			continue
		}
		key, err := models.ParseMatchKey(e.Name())
		if err != nil {
			slog.Debug("Skipping non-result file", "path", filepath.Join(fs.dir, e.Name()))
			continue
		}
		keys = append(keys, key)
	}
	return sortKeys(keys), nil
}

func (fs *FileStore) Close() error { return nil }
