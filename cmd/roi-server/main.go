package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/roi-estimator/internal/cache"
	"github.com/iwvelando/roi-estimator/internal/logging"
	"github.com/iwvelando/roi-estimator/internal/server"
	"github.com/iwvelando/roi-estimator/pkg/constants"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	configLocation := flag.String("config", constants.DefaultServerConfigFile, "path to server configuration file")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	cfg, err := server.LoadConfig(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	store, closeStore := newStore(logger, cfg)
	defer closeStore()

	srv := &http.Server{
		Addr: cfg.Address,
		Handler: server.NewHandler(logger, cfg.MaxBodySizeBytes(), version,
			server.WithCache(store),
			server.WithChartDefaults(cfg.Chart),
		),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("listening",
			zap.String("op", "main"),
			zap.String("address", cfg.Address),
			zap.String("version", version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Error("server failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
		return
	case sig := <-quit:
		logger.Info("shutting down",
			zap.String("op", "main"),
			zap.String("signal", sig.String()),
		)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("error during shutdown",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}

// newStore returns the Redis chart cache when one is configured and
// reachable, and an in-process cache otherwise.
func newStore(logger *zap.Logger, cfg *server.Config) (cache.Store, func()) {
	memory := func() (cache.Store, func()) {
		return cache.NewMemory(cfg.Cache.MaxEntries, cfg.CacheTTL()), func() {}
	}
	if cfg.Cache.RedisAddress == "" {
		return memory()
	}

	rdb := cache.NewRedis(cfg.Cache.RedisAddress, cfg.CacheTTL())
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx); err != nil {
		logger.Warn("redis unavailable, caching charts in memory",
			zap.String("op", "main.newStore"),
			zap.String("address", cfg.Cache.RedisAddress),
			zap.Error(err),
		)
		_ = rdb.Close()
		return memory()
	}

	logger.Info("caching charts in redis",
		zap.String("op", "main.newStore"),
		zap.String("address", cfg.Cache.RedisAddress),
	)
	return rdb, func() { _ = rdb.Close() }
}
