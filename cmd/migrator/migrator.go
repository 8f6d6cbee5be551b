package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/NordCoder/Runboard/internal/obs"
	pg "github.com/NordCoder/Runboard/internal/repository/postgres"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

// usage: migrator [up|down|status|reset]
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	l, err := obs.NewLogger(obs.LogConfig{Level: os.Getenv("LOG_LEVEL"), App: "runboard/migrator"})
	if err != nil {
		panic(err)
	}
	defer func() { _ = l.Sync() }()

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		l.Fatal("DB_DSN is empty")
	}
	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	goose.SetBaseFS(pg.Migrations)
	goose.SetLogger(zap.NewStdLog(l))
	if err := goose.SetDialect("postgres"); err != nil {
		l.Fatal("set dialect", zap.Error(err))
	}
	db, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		l.Fatal("open db", zap.Error(err))
	}
	defer db.Close()

	if err := goose.RunContext(ctx, cmd, db, pg.MigrationsDir); err != nil {
		l.Fatal("migrate", zap.String("cmd", cmd), zap.Error(err))
	}
	l.Info("migrations done", zap.String("cmd", cmd))
}
