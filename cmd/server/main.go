package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/daltonneres/finantrack/configs"
	"github.com/daltonneres/finantrack/internal/handlers"
	"github.com/daltonneres/finantrack/internal/logger"
	"github.com/daltonneres/finantrack/internal/routes"
	"github.com/daltonneres/finantrack/internal/seed"
	"github.com/daltonneres/finantrack/internal/service"
	"github.com/daltonneres/finantrack/internal/session"
	"github.com/daltonneres/finantrack/internal/store"
)

func main() {
	logger.Init()
	defer logger.Log.Sync()

	cfg, err := configs.Load()
	if err != nil {
		logger.Log.Fatal("failed to load config", zap.Error(err))
	}

	db, err := store.New(cfg)
	if err != nil {
		logger.Log.Fatal("failed to open store", zap.Error(err))
	}
	if err := store.Migrate(db); err != nil {
		logger.Log.Fatal("migration failed", zap.Error(err))
	}
	logger.Log.Info("connected to the database", zap.String("driver", cfg.DB.Driver))

	if cfg.Seed {
		if err := seed.Run(db); err != nil {
			logger.Log.Fatal("seed failed", zap.Error(err))
		}
	}

	sessions := session.NewManager(cfg.Session.Secret, cfg.Session.TTL)
	h := handlers.New(
		service.NewUsers(db),
		service.NewAccounts(db),
		service.NewTransactions(db),
		sessions,
	)
	router := routes.New(h, sessions)

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("server error", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	logger.Log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("graceful shutdown failed", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Log.Error("db close skipped, reason:", zap.Error(err))
	} else {
		sqlDB.Close()
		logger.Log.Info("db closed")
	}

	logger.Log.Info("server stopped")
}
