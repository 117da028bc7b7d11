// Property back-office API server.
//
// @title                      Property Back-Office API
// @version                    1.0
// @description                Role-based property management back-office.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rentdesk/property-system/internal/api"
	"github.com/rentdesk/property-system/internal/core/service"
	"github.com/rentdesk/property-system/internal/infrastructure/config"
	mongorepo "github.com/rentdesk/property-system/internal/infrastructure/db/mongo"
	redisinfra "github.com/rentdesk/property-system/internal/infrastructure/db/redis"
	"github.com/rentdesk/property-system/internal/infrastructure/queue"
	"github.com/rentdesk/property-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Console: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongorepo.Connect(ctx, mongorepo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redisinfra.Connect(ctx, redisinfra.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// Bootstrap: indexes and the fixed role set.
	userRepo := mongorepo.NewUserRepository(db)
	roleRepo := mongorepo.NewRoleRepository(db)
	apartmentRepo := mongorepo.NewApartmentRepository(db)
	for name, fn := range map[string]func(context.Context) error{
		"users":      userRepo.EnsureIndexes,
		"roles":      roleRepo.EnsureIndexes,
		"apartments": apartmentRepo.EnsureIndexes,
	} {
		if err := fn(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("index bootstrap failed")
		}
	}
	if err := roleRepo.Seed(ctx); err != nil {
		log.Fatal().Err(err).Msg("role seed failed")
	}

	// Maintenance audit pipeline: sharded workers behind the API.
	maintenanceRepo := mongorepo.NewMaintenanceRepository(db)
	dedup := redisinfra.NewDedupChecker(rdb)
	eventService := service.NewEventService(maintenanceRepo, dedup, log)
	dispatcher := queue.NewDispatcher(cfg.EventWorkers, eventService, log)
	dispatcher.Start(ctx)

	tokenTTL := time.Duration(cfg.TokenTTLMins) * time.Minute
	e := api.NewRouter(db, rdb, dispatcher, cfg.JWTSecret, tokenTTL, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("http server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
