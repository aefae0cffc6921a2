// Package bootstrap assembles the store and renderer shared by the API server
// and the adrender CLI.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mossjr/tab-image-gen-poc/internal/adapter/repo"
	"github.com/mossjr/tab-image-gen-poc/internal/compositor"
	"github.com/mossjr/tab-image-gen-poc/internal/configstore"
	"github.com/mossjr/tab-image-gen-poc/internal/domain"
	"github.com/mossjr/tab-image-gen-poc/internal/infra"
)

// OpenRepository returns the record backend selected by cfg.StoreBackend and
// a func releasing its resources.
func OpenRepository(ctx context.Context, cfg *infra.Config, logger zerolog.Logger) (domain.RecordRepository, func(), error) {
	switch cfg.StoreBackend {
	case infra.StoreMemory:
		logger.Warn().Msg("using in-memory store; records are lost on restart")
		return repo.NewMemoryRecordRepository(), func() {}, nil

	case infra.StorePostgres:
		if err := infra.RunMigrations(cfg.DatabaseURL, logger); err != nil {
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		pool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		runner := infra.NewSQLRunner(pool, logger)
		return repo.NewRecordRepository(runner), pool.Close, nil

	case infra.StoreSQLite:
		r, err := repo.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info().Str("path", cfg.SQLitePath).Msg("sqlite store opened")
		return r, func() { _ = r.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}

// OpenStore wraps the configured backend in a configstore.Store.
func OpenStore(ctx context.Context, cfg *infra.Config, logger zerolog.Logger) (*configstore.Store, func(), error) {
	r, closeFn, err := OpenRepository(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return configstore.New(r, logger), closeFn, nil
}

// NewCompositor builds the renderer for the configured canvas and font dir.
func NewCompositor(cfg *infra.Config, logger zerolog.Logger) *compositor.Compositor {
	fonts := compositor.NewFontManager(cfg.FontDir, logger)
	return compositor.New(fonts, cfg.CanvasWidth, cfg.CanvasHeight, logger)
}
