package main

// @title Heritage Catalog API
// @version 1.0.0
// @description Каталог исторических мест: CRUD мест, поиск по тексту и тегам, в радиусе и по дате основания,
// @description пользовательские вклады с модерацией, исторические события, комментарии и пользователи.

// @contact.name API Support

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

	_ "github.com/heritage-catalog/docs"
	"github.com/heritage-catalog/internal/config"
	httpDelivery "github.com/heritage-catalog/internal/delivery/http"
	"github.com/heritage-catalog/internal/delivery/http/handler"
	"github.com/heritage-catalog/internal/domain/repository"
	"github.com/heritage-catalog/internal/pkg/logger"
	"github.com/heritage-catalog/internal/repository/cache"
	"github.com/heritage-catalog/internal/repository/postgres"
	redisRepo "github.com/heritage-catalog/internal/repository/redis"
	"github.com/heritage-catalog/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "heritage-api")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Heritage Catalog API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("proximity_strategy", cfg.Search.ProximityStrategy),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	log.Info("PostgreSQL connected")

	// 4. Connect to Redis. Без Redis сервис работает без кеша и без событий модерации.
	var (
		redisClient *cache.Redis
		cacheRepo   repository.CacheRepository
		streamRepo  repository.StreamRepository
	)
	redisClient, err = cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Warn("Redis unavailable, running without cache and moderation events", zap.Error(err))
		redisClient = nil
	} else {
		streamRepo = redisRepo.NewStreamRepository(redisClient.Client(), log)
		if cfg.Cache.Enabled {
			cacheRepo = cache.NewCacheRepository(redisClient)
		}
	}

	// 5. Initialize Repositories
	siteRepo := postgres.NewSiteRepository(db)
	contributionRepo := postgres.NewContributionRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	commentRepo := postgres.NewCommentRepository(db)
	userRepo := postgres.NewUserRepository(db)
	moderationRepo := postgres.NewModerationRepository(db)

	log.Info("Repositories initialized")

	// 6. Initialize Use Cases
	catalogCache := usecase.NewCatalogCache(cacheRepo, cfg.Cache.SiteCacheTTL, cfg.Cache.SearchCacheTTL, log)

	proximity, err := usecase.NewProximitySearcher(cfg.Search.ProximityStrategy, siteRepo)
	if err != nil {
		log.Fatal("Failed to initialize proximity search", zap.Error(err))
	}

	siteUC := usecase.NewSiteUseCase(siteRepo, catalogCache, log)
	searchUC := usecase.NewSearchUseCase(siteRepo, proximity, catalogCache, cfg.Search.MaxRadiusKm, log)
	contributionUC := usecase.NewContributionUseCase(contributionRepo, siteRepo, userRepo, streamRepo, log)
	moderationUC := usecase.NewModerationUseCase(moderationRepo, contributionRepo, log)
	eventUC := usecase.NewEventUseCase(eventRepo, siteRepo, log)
	commentUC := usecase.NewCommentUseCase(commentRepo, siteRepo, eventRepo, userRepo, log)
	userUC := usecase.NewUserUseCase(userRepo, log)

	log.Info("Use cases initialized")

	// 7. Initialize HTTP Handlers
	handlers := httpDelivery.Handlers{
		Site:         handler.NewSiteHandler(siteUC, searchUC, log),
		Contribution: handler.NewContributionHandler(contributionUC, moderationUC, log),
		Event:        handler.NewEventHandler(eventUC, log),
		Comment:      handler.NewCommentHandler(commentUC, log),
		User:         handler.NewUserHandler(userUC, log),
	}

	checks := map[string]httpDelivery.HealthChecker{
		"postgres": db,
		"redis":    nil,
	}
	if redisClient != nil {
		checks["redis"] = redisClient
	}

	// 8. Initialize HTTP Server
	server := httpDelivery.NewServer(cfg, log, handlers, checks)

	// 9. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 10. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if err := db.Close(); err != nil {
		log.Error("Failed to close PostgreSQL", zap.Error(err))
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis", zap.Error(err))
		}
	}

	log.Info("Server stopped successfully")
}
