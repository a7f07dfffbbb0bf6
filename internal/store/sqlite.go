package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pszt/botbench/internal/models"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS match_results (
	name            TEXT PRIMARY KEY,
	white_heuristic TEXT NOT NULL,
	white_depth     INTEGER NOT NULL,
	black_heuristic TEXT NOT NULL,
	black_depth     INTEGER NOT NULL,
	summary         TEXT NOT NULL
)`

// SQLStore keeps summaries in a sqlite database. The encoded five-line
// summary is stored alongside the key columns so exports stay byte-identical
// to the file backend.
type SQLStore struct {
	db *sql.DB
}

// OpenSQLite opens (and if needed creates) the sqlite database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLStore, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite store: database path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	// sqlite allows a single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close() //nolint:errcheck
		return nil, fmt.Errorf("creating sqlite schema: %w", err)
	}
	return &SQLStore{db: db}, nil
}

func (s *SQLStore) Get(ctx context.Context, key models.MatchKey) (*models.MatchSummary, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT summary FROM match_results WHERE name = ?`, key.Name()).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", key.Name(), err)
	}
	return decodeSummary(key, []byte(body))
}

func (s *SQLStore) Put(ctx context.Context, key models.MatchKey, summary *models.MatchSummary) error {
	data, err := summary.MarshalText()
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key.Name(), err)
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO match_results (name, white_heuristic, white_depth, black_heuristic, black_depth, summary)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(name) DO UPDATE SET summary = excluded.summary`,
		key.Name(), key.White.Heuristic, key.White.Depth, key.Black.Heuristic, key.Black.Depth, string(data))
	if err != nil {
		return fmt.Errorf("storing %s: %w", key.Name(), err)
	}
	return nil
}

func (s *SQLStore) Has(ctx context.Context, key models.MatchKey) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM match_results WHERE name = ?`, key.Name()).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("querying %s: %w", key.Name(), err)
	}
	return n > 0, nil
}

func (s *SQLStore) Delete(ctx context.Context, key models.MatchKey) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM match_results WHERE name = ?`, key.Name()); err != nil {
		return fmt.Errorf("deleting %s: %w", key.Name(), err)
	}
	return nil
}

func (s *SQLStore) List(ctx context.Context) ([]models.MatchKey, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT white_heuristic, white_depth, black_heuristic, black_depth FROM match_results`)
	if err != nil {
		return nil, fmt.Errorf("listing match results: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var keys []models.MatchKey
	for rows.Next() {
		var k models.MatchKey
		if err := rows.Scan(&k.White.Heuristic, &k.White.Depth, &k.Black.Heuristic, &k.Black.Depth); err != nil {
			return nil, fmt.Errorf("scanning match result: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing match results: %w", err)
	}
	return sortKeys(keys), nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
