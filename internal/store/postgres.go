package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pszt/botbench/internal/models"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS match_results (
	name            TEXT PRIMARY KEY,
	white_heuristic TEXT NOT NULL,
	white_depth     INTEGER NOT NULL,
	black_heuristic TEXT NOT NULL,
	black_depth     INTEGER NOT NULL,
	summary         TEXT NOT NULL
)`

// PostgresStore keeps summaries in a shared Postgres table so several hosts
// can play parts of one schedule.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects to dsn and ensures the results table exists.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres store: connection string is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("creating postgres schema: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Get(ctx context.Context, key models.MatchKey) (*models.MatchSummary, error) {
	var body string
	err := s.pool.QueryRow(ctx, `SELECT summary FROM match_results WHERE name = $1`, key.Name()).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", key.Name(), err)
	}
	return decodeSummary(key, []byte(body))
}

func (s *PostgresStore) Put(ctx context.Context, key models.MatchKey, summary *models.MatchSummary) error {
	data, err := summary.MarshalText()
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key.Name(), err)
	}
	_, err = s.pool.Exec(ctx, `
INSERT INTO match_results (name, white_heuristic, white_depth, black_heuristic, black_depth, summary)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (name) DO UPDATE SET summary = EXCLUDED.summary`,
		key.Name(), key.White.Heuristic, key.White.Depth, key.Black.Heuristic, key.Black.Depth, string(data))
	if err != nil {
		return fmt.Errorf("storing %s: %w", key.Name(), err)
	}
	return nil
}

func (s *PostgresStore) Has(ctx context.Context, key models.MatchKey) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM match_results WHERE name = $1)`, key.Name()).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("querying %s: %w", key.Name(), err)
	}
	return exists, nil
}

func (s *PostgresStore) Delete(ctx context.Context, key models.MatchKey) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM match_results WHERE name = $1`, key.Name()); err != nil {
		return fmt.Errorf("deleting %s: %w", key.Name(), err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]models.MatchKey, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT white_heuristic, white_depth, black_heuristic, black_depth FROM match_results`)
	if err != nil {
		return nil, fmt.Errorf("listing match results: %w", err)
	}
	keys, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.MatchKey, error) {
		var k models.MatchKey
		err := row.Scan(&k.White.Heuristic, &k.White.Depth, &k.Black.Heuristic, &k.Black.Depth)
		return k, err
	})
	if err != nil {
		return nil, fmt.Errorf("listing match results: %w", err)
	}
	return sortKeys(keys), nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
