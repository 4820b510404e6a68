package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/digiloka/marketplace-api/internal/api"
	"github.com/digiloka/marketplace-api/internal/core/ports"
	"github.com/digiloka/marketplace-api/internal/infrastructure/config"
	mongoinfra "github.com/digiloka/marketplace-api/internal/infrastructure/db/mongo"
	redisinfra "github.com/digiloka/marketplace-api/internal/infrastructure/db/redis"
	"github.com/digiloka/marketplace-api/internal/infrastructure/storage"
	"github.com/digiloka/marketplace-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title           Digiloka Marketplace API
// @version         1.0
// @description     REST API for a digital-goods marketplace: sellers list downloadable products, buyers browse, cart, and check out.
// @BasePath        /
// @securityDefinitions.apikey  BearerAuth
// @in              header
// @name            Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongoinfra.Connect(ctx, mongoinfra.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	rdb, err := redisinfra.Connect(ctx, redisinfra.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	for _, idx := range []interface {
		EnsureIndexes(context.Context) error
	}{
		mongoinfra.NewUserRepository(db),
		mongoinfra.NewProductRepository(db),
		mongoinfra.NewOrderRepository(db),
	} {
		if err := idx.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("ensure indexes failed")
		}
	}

	var blobs ports.BlobStore
	switch cfg.Uploads.Backend {
	case "minio":
		blobs, err = storage.NewMinioStore(ctx, storage.MinioConfig{
			Endpoint:      cfg.Minio.Endpoint,
			AccessKey:     cfg.Minio.AccessKey,
			SecretKey:     cfg.Minio.SecretKey,
			Bucket:        cfg.Minio.Bucket,
			UseSSL:        cfg.Minio.UseSSL,
			PublicBaseURL: cfg.Minio.PublicBaseURL,
		})
	default:
		blobs, err = storage.NewDiskStore(cfg.Uploads.Dir, cfg.Uploads.PublicPrefix)
	}
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Uploads.Backend).Msg("blob store init failed")
	}

	e := api.NewRouter(db, rdb, blobs, cfg.JWTSecret)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
