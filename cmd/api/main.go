package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/emilythestrangee/yatube/backend/internal/cache"
	"github.com/emilythestrangee/yatube/backend/internal/config"
	"github.com/emilythestrangee/yatube/backend/internal/database"
	"github.com/emilythestrangee/yatube/backend/internal/logger"
	"github.com/emilythestrangee/yatube/backend/internal/metrics"
	"github.com/emilythestrangee/yatube/backend/internal/repository"
	"github.com/emilythestrangee/yatube/backend/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	db, err := database.New(cfg.DB, log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}
	defer db.Close()

	deps := server.Deps{
		Config:  cfg,
		Log:     log,
		Repos:   repository.New(db.GetDB()),
		Metrics: metrics.New(),
		Health:  db.Health,
	}

	if rc := connectRedis(cfg.Redis, log); rc != nil {
		defer rc.Close()
		deps.Cache = rc
	}

	srv := server.New(deps).HTTPServer()

	go func() {
		log.WithField("addr", srv.Addr).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("failed to run http server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	log.Info("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}

// connectRedis returns nil when the cache is not configured or not reachable;
// the API then reads groups straight from the database.
func connectRedis(cfg config.RedisConfig, log *logrus.Logger) *cache.Redis {
	if cfg.Addr == "" {
		return nil
	}

	rc := cache.NewRedis(redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rc.Ping(ctx); err != nil {
		log.WithError(err).WithField("addr", cfg.Addr).Warn("redis unavailable, group cache disabled")
		_ = rc.Close()
		return nil
	}

	log.WithField("addr", cfg.Addr).Info("connected to redis")
	return rc
}
