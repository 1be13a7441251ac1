package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"speed-camera-registry/be/config"
	"speed-camera-registry/be/database"
	"speed-camera-registry/be/handlers"
	"speed-camera-registry/be/observability"
	"speed-camera-registry/be/services"
	"speed-camera-registry/be/store"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if envErr != nil {
		logger.Debug("no .env file found, using environment variables")
	}
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cameraStore, cleanup, err := openStore(ctx, cfg, metrics, logger)
	if err != nil {
		logger.Error("failed to initialize store", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	if cfg.Store.Seed {
		if _, err := database.Seed(ctx, cameraStore, logger); err != nil {
			logger.Warn("failed to seed sample cameras", "error", err)
		}
	}

	cameraService := services.NewCameraService(cameraStore, metrics, logger)
	cameraHandler := handlers.NewCameraHandler(cameraService, logger)
	systemHandler := handlers.NewSystemHandler(cameraService)

	if cfg.Server.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handlers.SetupRouter(cameraHandler, systemHandler, cfg.CORS, metrics, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Server.Port, "store", cfg.Store.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	logger.Info("shutdown complete")
}

// openStore builds the configured store, wrapped in the Redis zipcode cache
// when REDIS_URL is set. The returned cleanup releases connections.
func openStore(ctx context.Context, cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) (store.Store, func(), error) {
	var (
		s       store.Store
		closers []func() error
		cleanup = func() {
			for _, c := range closers {
				if err := c(); err != nil {
					logger.Error("close error", "error", err)
				}
			}
		}
	)

	switch cfg.Store.Driver {
	case config.StorePostgres:
		db, err := database.Initialize(cfg.Database, logger)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, sqlDB.Close)
		s = store.NewGormStore(db)
	default:
		s = store.NewMemoryStore()
	}

	if cfg.Redis.Enabled() {
		cache, err := services.NewCacheService(ctx, cfg.Redis.URL, logger)
		if err != nil {
			logger.Warn("redis unavailable, zipcode cache disabled", "error", err)
		} else {
			closers = append(closers, cache.Close)
			s = store.NewCachedStore(s, cache, cfg.Redis.TTL, metrics, logger)
			logger.Info("zipcode cache enabled", "ttl", cfg.Redis.TTL)
		}
	}

	return s, cleanup, nil
}
