package main

import (
	config "github.com/NordCoder/Runboard/internal/config/api-gateway"
	"github.com/NordCoder/Runboard/internal/obs"
	"go.uber.org/zap"
)

func initLogger(cfg *config.Config) (*zap.Logger, error) {
	return obs.NewLogger(cfg.LoggerConfig())
}
