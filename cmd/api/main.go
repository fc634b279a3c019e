package main

// @title Restaurant Resolver API
// @version 1.0.0
// @description Сервис геопространственных запросов по ресторанам. Отдаёт точки в видимой области карты с ранжированием по расстоянию или приоритету наград и разрешает ресторан по координатам и текстовой подсказке, объединяя кандидатов из нескольких источников.
// @description
// @description Основные возможности:
// @description - Отсечение и ранжирование ресторанов по viewport камеры (Web Mercator)
// @description - Разрешение ресторана по точке: датасет, гео-индекс, внешний Places API
// @description - Нечёткое сопоставление названий с текстовой подсказкой
// @description - Отметки посещённых ресторанов

// @contact.name API Support
// @contact.email support@restaurant-resolver.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/restaurant-resolver/docs/swagger"
	"github.com/restaurant-resolver/internal/config"
	httpDelivery "github.com/restaurant-resolver/internal/delivery/http"
	"github.com/restaurant-resolver/internal/delivery/http/handler"
	"github.com/restaurant-resolver/internal/infrastructure/places"
	"github.com/restaurant-resolver/internal/pkg/logger"
	"github.com/restaurant-resolver/internal/repository/cache"
	"github.com/restaurant-resolver/internal/repository/postgres"
	redisRepo "github.com/restaurant-resolver/internal/repository/redis"
	"github.com/restaurant-resolver/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Restaurant Resolver")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize Repositories
	restaurantRepo := postgres.NewRestaurantRepository(db)
	visitRepo := postgres.NewVisitRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)

	geoSearchRepo := redisRepo.NewGeoSearchRepository(redisClient.Client(), log)
	nearbyRepo := cache.NewSearchCache(geoSearchRepo, log)

	placesClient := places.NewPlacesClient(&cfg.Places, log)
	if placesClient.Enabled() {
		log.Info("Places API source enabled")
	} else {
		log.Info("Places API source disabled, no access token configured")
	}

	log.Info("Repositories initialized")

	// 7. Initialize Use Cases
	viewportUC := usecase.NewViewportUseCase(restaurantRepo, visitRepo, log)

	resolveUC := usecase.NewResolveUseCase(
		restaurantRepo,
		nearbyRepo,
		placesClient,
		visitRepo,
		cacheRepo,
		log,
		usecase.SearchRadii{
			DatasetKm: cfg.Search.DatasetRadiusKm,
			NearbyKm:  cfg.Search.NearbyRadiusKm,
			RemoteKm:  cfg.Search.RemoteRadiusKm,
		},
		cfg.Cache.PlacesCacheTTL,
	)

	log.Info("Use cases initialized")

	// 8. Load dataset snapshot and seed geo index
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer startupCancel()

	if err := viewportUC.Refresh(startupCtx); err != nil {
		log.Fatal("Failed to load restaurant dataset", zap.Error(err))
	}

	if err := geoSearchRepo.Seed(startupCtx, viewportUC.Snapshot()); err != nil {
		// Гео-индекс не критичен: resolve продолжит работать на датасете
		log.Warn("Failed to seed geo index, nearby search degraded", zap.Error(err))
	}

	// 9. Initialize HTTP Handlers
	viewportHandler := handler.NewViewportHandler(viewportUC, log)
	resolveHandler := handler.NewResolveHandler(resolveUC, log)
	restaurantHandler := handler.NewRestaurantHandler(restaurantRepo, visitRepo, log)

	log.Info("HTTP handlers initialized")

	// 10. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		viewportHandler,
		resolveHandler,
		restaurantHandler,
	)

	// 11. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 12. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
