package main

import (
	"context"
	"time"

	config "github.com/NordCoder/Runboard/internal/config/api-gateway"
	"github.com/NordCoder/Runboard/internal/repository/mock"
	pg "github.com/NordCoder/Runboard/internal/repository/postgres"
	"github.com/NordCoder/Runboard/internal/services/dashboard"
	"go.uber.org/zap"
)

// initSource returns the configured data source and a closer for it.
func initSource(ctx context.Context, cfg *config.Config, logger *zap.Logger) (dashboard.Source, func(), error) {
	switch cfg.Source.Kind {
	case config.SourcePostgres:
		db, err := pg.NewDB(ctx, cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("source: postgres")
		return pg.NewSource(db), db.Close, nil
	default:
		store, err := mock.Load(time.Now())
		if err != nil {
			return nil, nil, err
		}
		logger.Info("source: mock")
		return store, func() {}, nil
	}
}
