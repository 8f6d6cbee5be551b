package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/NordCoder/Runboard/internal/config/run-ingestor"
	"github.com/NordCoder/Runboard/internal/obs"
	"github.com/NordCoder/Runboard/internal/obs/retry"
	"github.com/NordCoder/Runboard/internal/repository/kafka"
	pg "github.com/NordCoder/Runboard/internal/repository/postgres"
	ingestor "github.com/NordCoder/Runboard/internal/services/run-ingestor"
	"go.uber.org/zap"
)

func wire(cfg *config.Config, db *pg.DB, cons *kafka.Consumer, l *zap.Logger) *ingestor.Runner {
	h := &ingestor.Handler{
		Runs:       pg.NewRunRepo(db),
		Steps:      pg.NewStepRepo(db),
		Devices:    pg.NewDeviceRepo(db),
		Transactor: pg.NewTransactor(db, l),
		Retry:      retry.DefaultStorePolicy("ingest.store", cfg.Retry, l),
	}
	return ingestor.NewRunner(l, cons, h)
}

func main() {
	cfgPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to run-ingestor yaml config")
	flag.Parse()

	root, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}

	// logger
	l, err := obs.NewLogger(cfg.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = l.Sync() }()

	// otel
	otelCloser, err := obs.SetupOTel(root, &cfg.OTEL)
	if err != nil {
		l.Fatal("otel init", zap.Error(err))
	}
	defer func() { _ = otelCloser.Shutdown(context.Background()) }()

	// db
	db, err := pg.NewDB(root, cfg.DB)
	if err != nil {
		l.Fatal("db connect", zap.Error(err))
	}
	defer db.Close()

	// metrics
	ms := obs.BootstrapMetricsServer(cfg.Server.MetricsAddr, db.Ping, l)

	// kafka
	cons := kafka.BootstrapConsumer(root, &kafka.ConsumerConfig{
		Brokers:       cfg.Kafka.Brokers,
		GroupID:       cfg.Kafka.GroupID,
		Topic:         cfg.Kafka.Topic,
		FromBeginning: cfg.Kafka.FromBeginning,
	}, kafka.TopicSpec{NumPartitions: cfg.Kafka.Partitions}, l)
	defer func() { _ = cons.Close() }()

	runner := wire(cfg, db, cons, l)

	errCh := make(chan error, 1)
	go func() { errCh <- runner.Run(root) }()

	select {
	case <-root.Done():
	case err = <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			l.Error("runner error", zap.Error(err))
		}
	}

	shCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_ = ms.Shutdown(shCtx)
	l.Info("bye")
}
