package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"fieldops/internal/capacity"
	"fieldops/internal/commons"
	"fieldops/internal/config"
	"fieldops/internal/infrastructure/logger"
	"fieldops/internal/infrastructure/metrics"
	"fieldops/internal/infrastructure/mysql"
	"fieldops/internal/master"
	"fieldops/internal/order"
	"fieldops/internal/profit"
	"fieldops/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := commons.LoadConfigFile(path, cfg); err != nil {
			log.Fatalf("loading config file: %v", err)
		}
	}

	zapLogger, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	metrics.Register()

	masterModule := master.NewModule(db, cfg, zapLogger)
	orderModule := order.NewModule(db, masterModule, zapLogger)
	capacityModule := capacity.NewModule(db, cfg, masterModule, orderModule, zapLogger)
	profitModule := profit.NewModule(db, masterModule, orderModule, zapLogger)

	router := server.NewRouter(
		masterModule.Controller,
		orderModule.Controller,
		capacityModule.Controller,
		profitModule.Controller,
		zapLogger,
	)

	srv := server.New(cfg.Server, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
