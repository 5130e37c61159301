package store

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"names_demo/internal/config"
	"names_demo/internal/domain"
	"names_demo/internal/metrics"
	"names_demo/internal/store/sqlstore"
)

const startupTimeout = 30 * time.Second

func NewStore(cfg *config.Config, m *metrics.Metrics, logger *zap.Logger) (*sqlstore.Store, error) {
	dialect, err := sqlstore.DialectFor(cfg.StoreDriver)
	if err != nil {
		logger.Error("store driver rejected", zap.String("driver", cfg.StoreDriver), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", domain.ErrStartup, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()
	return sqlstore.New(ctx, sqlstore.Options{
		Dialect:     dialect,
		DSN:         cfg.StoreDSN(),
		LockTimeout: cfg.LockTimeout,
		SeedNames:   cfg.SeedNames,
		Observer:    m,
	}, logger)
}
