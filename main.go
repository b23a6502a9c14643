package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/orkadesh/blackjacksrv/config"
	"github.com/orkadesh/blackjacksrv/events"
	"github.com/orkadesh/blackjacksrv/logger"
	"github.com/orkadesh/blackjacksrv/server"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	lgr, err := logger.Init(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer lgr.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := events.NewInMemoryEventStore()
	srv := server.New(cfg, lgr, store)
	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		lgr.Fatal("server failed", zap.Error(err))
	}
	lgr.Info("server stopped")
}
