package main

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"zipshipping/internal/config"
	"zipshipping/internal/db"
	"zipshipping/internal/logging"
	"zipshipping/internal/postcode"
	"zipshipping/internal/server"
	"zipshipping/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("failed to load config", zap.Error(err))
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		logging.Fatal("failed to initialize logging", zap.Error(err))
	}
	defer logging.Sync()
	log := logging.Named("api")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var st store.Store = store.NewMemory()
	if strings.TrimSpace(cfg.DatabaseURL) != "" {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL, db.Options{MaxConns: cfg.DatabaseMaxConns})
		if err != nil {
			log.Fatal("failed to connect db", zap.Error(err))
		}
		defer pool.Close()
		if err := pool.Ping(ctx); err != nil {
			log.Fatal("database ping failed", zap.Error(err))
		}
		pg := store.NewPostgres(pool)
		if err := pg.Migrate(ctx); err != nil {
			log.Fatal("settings migration failed", zap.Error(err))
		}
		st = pg
	} else {
		log.Warn("DATABASE_URL not set; method settings are kept in memory")
	}

	if strings.TrimSpace(cfg.RedisURL) != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatal("invalid REDIS_URL", zap.Error(err))
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal("redis ping failed", zap.Error(err))
		}
		st = store.NewCached(st, rdb, 5*time.Minute, log.Named("cache"))
	}

	h := server.NewWithOptions(server.Options{
		Store:    st,
		Provider: cfg.RateProvider,
		Cache:    postcode.NewCache(cfg.PatternCacheSize),
		Logger:   log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	provider := cfg.RateProvider
	if provider == "" {
		provider = "default"
	}
	log.Info("api listening", zap.String("addr", srv.Addr), zap.String("rate_provider", provider))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", zap.Error(err))
		logging.Sync()
		os.Exit(1)
	}
}
