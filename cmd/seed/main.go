package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/heritage-catalog/internal/config"
	"github.com/heritage-catalog/internal/domain/repository"
	"github.com/heritage-catalog/internal/pkg/errors"
	"github.com/heritage-catalog/internal/pkg/logger"
	"github.com/heritage-catalog/internal/repository/cache"
	"github.com/heritage-catalog/internal/repository/postgres"
	"github.com/heritage-catalog/internal/usecase"
	"github.com/heritage-catalog/internal/usecase/dto"
)

func ptr[T any](v T) *T {
	return &v
}

// starterSites - стартовый каталог исторических мест Нью-Йорка
var starterSites = []dto.CreateSiteRequest{
	{
		Name:            "Statue of Liberty",
		Description:     "Colossal neoclassical copper statue on Liberty Island, a gift from the people of France.",
		Latitude:        ptr(40.689247),
		Longitude:       ptr(-74.044502),
		Address:         ptr("Liberty Island, New York, NY 10004"),
		Era:             "Gilded Age",
		Tags:            []string{"monument", "landmark", "unesco"},
		Verified:        true,
		DateEstablished: ptr("1886-10-28"),
	},
	{
		Name:            "Federal Hall",
		Description:     "Site of George Washington's first inauguration and the first Capitol of the United States.",
		Latitude:        ptr(40.707310),
		Longitude:       ptr(-74.010330),
		Address:         ptr("26 Wall St, New York, NY 10005"),
		Era:             "Colonial",
		Tags:            []string{"government", "revolution", "memorial"},
		Verified:        true,
		DateEstablished: ptr("1703-01-01"),
	},
	{
		Name:            "Fraunces Tavern",
		Description:     "Tavern where Washington bid farewell to the officers of the Continental Army.",
		Latitude:        ptr(40.703388),
		Longitude:       ptr(-74.011366),
		Address:         ptr("54 Pearl St, New York, NY 10004"),
		Era:             "Colonial",
		Tags:            []string{"revolution", "tavern", "museum"},
		Verified:        true,
		DateEstablished: ptr("1762-01-15"),
	},
	{
		Name:            "St. Paul's Chapel",
		Description:     "Oldest surviving church building in Manhattan, spared in the Great Fire of 1776.",
		Latitude:        ptr(40.711290),
		Longitude:       ptr(-74.009240),
		Address:         ptr("209 Broadway, New York, NY 10007"),
		Era:             "Colonial",
		Tags:            []string{"church", "architecture"},
		Verified:        true,
		DateEstablished: ptr("1766-10-30"),
	},
	{
		Name:            "Brooklyn Bridge",
		Description:     "Hybrid cable-stayed suspension bridge spanning the East River.",
		Latitude:        ptr(40.706086),
		Longitude:       ptr(-73.996864),
		Address:         ptr("Brooklyn Bridge, New York, NY 10038"),
		Era:             "Gilded Age",
		Tags:            []string{"bridge", "engineering", "landmark"},
		Verified:        true,
		DateEstablished: ptr("1883-05-24"),
	},
	{
		Name:            "Ellis Island",
		Description:     "Busiest immigrant inspection station in the United States from 1892 to 1954.",
		Latitude:        ptr(40.699471),
		Longitude:       ptr(-74.039560),
		Address:         ptr("Ellis Island, New York, NY 10004"),
		Era:             "Progressive Era",
		Tags:            []string{"immigration", "museum"},
		Verified:        true,
		DateEstablished: ptr("1892-01-01"),
	},
	{
		Name:            "Grand Central Terminal",
		Description:     "Beaux-Arts commuter rail terminal in Midtown Manhattan.",
		Latitude:        ptr(40.752726),
		Longitude:       ptr(-73.977229),
		Address:         ptr("89 E 42nd St, New York, NY 10017"),
		Era:             "Progressive Era",
		Tags:            []string{"railway", "architecture", "landmark"},
		Verified:        true,
		DateEstablished: ptr("1913-02-02"),
	},
	{
		Name:            "Stonewall Inn",
		Description:     "Site of the 1969 uprising widely considered the start of the gay liberation movement.",
		Latitude:        ptr(40.733820),
		Longitude:       ptr(-74.002140),
		Address:         ptr("53 Christopher St, New York, NY 10014"),
		Era:             "Postwar",
		Tags:            []string{"civil rights", "memorial"},
		Verified:        true,
		DateEstablished: ptr("1967-03-18"),
	},
	{
		Name:            "Apollo Theater",
		Description:     "Music hall in Harlem associated with African American performers.",
		Latitude:        ptr(40.810000),
		Longitude:       ptr(-73.950000),
		Address:         ptr("253 W 125th St, New York, NY 10027"),
		Era:             "Harlem Renaissance",
		Tags:            []string{"music", "theater", "harlem"},
		DateEstablished: ptr("1914-01-01"),
	},
	{
		Name:            "Morris-Jumel Mansion",
		Description:     "Oldest house in Manhattan, headquarters of Washington in the autumn of 1776.",
		Latitude:        ptr(40.834500),
		Longitude:       ptr(-73.938600),
		Address:         ptr("65 Jumel Terrace, New York, NY 10032"),
		Era:             "Colonial",
		Tags:            []string{"revolution", "house", "museum"},
		Verified:        true,
		DateEstablished: ptr("1765-01-01"),
	},
}

func main() {
	force := flag.Bool("force", false, "Seed even if the catalog already has sites")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log, err := logger.New(cfg.Log.Level, "heritage-seed")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	siteRepo := postgres.NewSiteRepository(db)

	existing, err := siteRepo.List(ctx)
	if err != nil {
		log.Fatal("Failed to list sites", zap.Error(err))
	}
	if len(existing) > 0 && !*force {
		log.Info("Catalog already seeded", zap.Int("sites", len(existing)))
		return
	}

	// Версия каталога в Redis сбрасывает закешированные поисковые выборки API
	var cacheRepo repository.CacheRepository
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Warn("Redis unavailable, search cache will expire by TTL", zap.Error(err))
		} else {
			defer redisClient.Close()
			cacheRepo = cache.NewCacheRepository(redisClient)
		}
	}
	catalogCache := usecase.NewCatalogCache(cacheRepo, cfg.Cache.SiteCacheTTL, cfg.Cache.SearchCacheTTL, log)
	siteUC := usecase.NewSiteUseCase(siteRepo, catalogCache, log)

	created, skipped := 0, 0
	for _, req := range starterSites {
		site, err := siteUC.Create(ctx, req)
		if err != nil {
			if appErr, ok := errors.As(err); ok && appErr.Code == errors.ErrSiteAlreadyExists.Code {
				skipped++
				continue
			}
			log.Fatal("Failed to seed site", zap.String("name", req.Name), zap.Error(err))
		}
		created++
		log.Debug("Site seeded", zap.Int64("id", site.ID), zap.String("name", site.Name))
	}

	log.Info("Seeding completed",
		zap.Int("created", created),
		zap.Int("skipped", skipped),
	)
}
