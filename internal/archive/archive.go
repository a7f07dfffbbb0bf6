// Package archive keeps raw game logs as zstd-compressed files so a run's
// logs directory can be removed without losing the evidence behind a summary.
package archive

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// Ext is appended to the log filename of an archived log.
const Ext = ".zst"

// Archiver compresses logs into a single directory.
type Archiver struct {
	dir   string
	level zstd.EncoderLevel
}

// Option configures an Archiver.
type Option func(*Archiver)

// WithLevel sets the zstd encoder level.
func WithLevel(level zstd.EncoderLevel) Option {
	return func(a *Archiver) { a.level = level }
}

// New creates an Archiver writing into dir.
func New(dir string, opts ...Option) *Archiver {
	a := &Archiver{dir: dir, level: zstd.SpeedBetterCompression}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Dir returns the archive directory.
func (a *Archiver) Dir() string { return a.dir }

// Store compresses the log at logPath into the archive directory and returns
// the archive path. An existing archive of the same name is replaced.
func (a *Archiver) Store(logPath string) (string, error) {
	if err := os.MkdirAll(a.dir, 0755); err != nil {
		return "", fmt.Errorf("creating archive directory: %w", err)
	}
	dst := filepath.Join(a.dir, filepath.Base(logPath)+Ext)
	if err := compressFile(logPath, dst, a.level); err != nil {
		return "", err
	}
	return dst, nil
}

func compressFile(src, dst string, level zstd.EncoderLevel) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer in.Close() //nolint:errcheck

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".archive-*")
	if err != nil {
		return fmt.Errorf("creating archive: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	enc, err := zstd.NewWriter(tmp, zstd.WithEncoderLevel(level))
	if err != nil {
		tmp.Close() //nolint:errcheck
		return fmt.Errorf("creating zstd encoder: %w", err)
	}
	if _, err := io.Copy(enc, in); err != nil {
		enc.Close() //nolint:errcheck
		tmp.Close() //nolint:errcheck
		return fmt.Errorf("compressing %s: %w", src, err)
	}
	if err := enc.Close(); err != nil {
		tmp.Close() //nolint:errcheck
		return fmt.Errorf("compressing %s: %w", src, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing archive: %w", err)
	}
	return os.Rename(tmp.Name(), dst)
}

// Extract decompresses the archive at path into w.
func Extract(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close() //nolint:errcheck

	dec, err := zstd.NewReader(f)
	if err != nil {
		return fmt.Errorf("creating zstd decoder: %w", err)
	}
	defer dec.Close()

	if _, err := io.Copy(w, dec); err != nil {
		return fmt.Errorf("decompressing %s: %w", path, err)
	}
	return nil
}

// IsArchive reports whether path names an archived log.
func IsArchive(path string) bool {
	return strings.HasSuffix(path, Ext)
}

// LogName strips the archive extension, recovering the original log filename.
func LogName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), Ext)
}

// ReadLog returns the contents of a log, decompressing it when path is an
// archive.
func ReadLog(path string) ([]byte, error) {
	if !IsArchive(path) {
		return os.ReadFile(path)
	}
	var buf bytes.Buffer
	if err := Extract(&buf, path); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
