package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/pszt/botbench/internal/projectconfig"
	"github.com/pszt/botbench/internal/store"
)

// loadProject loads the project config and anchors its relative paths at
// the directory holding the config file.
func loadProject() (*projectconfig.ProjectConfig, error) {
	cfg, err := projectconfig.Load(projectDir)
	if err != nil {
		return nil, err
	}

	base := projectDir
	if cfg.Source != "" {
		base = filepath.Dir(cfg.Source)
		slog.Debug("Loaded project config", "path", cfg.Source)
	}

	cfg.Paths.Logs = resolvePath(base, cfg.Paths.Logs)
	cfg.Paths.Results = resolvePath(base, cfg.Paths.Results)
	cfg.Paths.Reports = resolvePath(base, cfg.Paths.Reports)
	cfg.Paths.Archive = resolvePath(base, cfg.Paths.Archive)
	if cfg.Store.Backend == store.BackendSQLite {
		cfg.Store.DSN = resolvePath(base, cfg.Store.DSN)
	}
	return cfg, nil
}

func resolvePath(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

func openStore(ctx context.Context, cfg *projectconfig.ProjectConfig) (store.ResultStore, error) {
	s, err := store.Open(ctx, cfg.StoreOptions())
	if err != nil {
		return nil, fmt.Errorf("opening %s result store: %w", cfg.Store.Backend, err)
	}
	return s, nil
}
