package main

import (
	"context"

	config "github.com/NordCoder/Runboard/internal/config/api-gateway"
	"github.com/NordCoder/Runboard/internal/obs"
	"go.uber.org/zap"
)

func initOTel(ctx context.Context, cfg *config.Config, logger *zap.Logger) (func(context.Context) error, error) {
	closer, err := obs.SetupOTel(ctx, cfg.OTEL.AsOTELConfig())
	if err != nil {
		return nil, err
	}
	logger.Info("otel ready", zap.Bool("export", cfg.OTEL.Enable))
	return closer.Shutdown, nil
}
