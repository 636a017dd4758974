package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/heritage-catalog/internal/domain"
	"github.com/heritage-catalog/internal/domain/repository"
	"github.com/heritage-catalog/internal/pkg/errors"
	"github.com/heritage-catalog/internal/pkg/metrics"
	"github.com/heritage-catalog/internal/pkg/utils"
	"github.com/heritage-catalog/internal/pkg/validator"
	"github.com/heritage-catalog/internal/usecase/dto"
)

const (
	searchKindText   = "text"
	searchKindNearby = "nearby"
	searchKindDates  = "dates"

	searchSourceCache = "cache"
	searchSourceStore = "store"
)

// SearchUseCase - поиск мест: текст и теги, радиус, диапазон дат
type SearchUseCase struct {
	siteRepo    repository.SiteRepository
	proximity   ProximitySearcher
	cache       *CatalogCache
	maxRadiusKm float64
	logger      *zap.Logger
}

// NewSearchUseCase - создание нового SearchUseCase. maxRadiusKm <= 0 снимает ограничение радиуса.
func NewSearchUseCase(
	siteRepo repository.SiteRepository,
	proximity ProximitySearcher,
	cache *CatalogCache,
	maxRadiusKm float64,
	logger *zap.Logger,
) *SearchUseCase {
	return &SearchUseCase{
		siteRepo:    siteRepo,
		proximity:   proximity,
		cache:       cache,
		maxRadiusKm: maxRadiusKm,
		logger:      logger,
	}
}

// Search - подстрока в name/description без учёта регистра И пересечение тегов.
// Без критериев возвращает весь каталог.
func (uc *SearchUseCase) Search(ctx context.Context, req dto.SearchSitesRequest) ([]*domain.Site, error) {
	start := time.Now()

	// Лимиты проверяются после раскрытия тегов через запятую
	req = req.Normalize()
	if err := validator.Validate(&req); err != nil {
		return nil, err
	}

	key, cacheable := uc.cache.SearchKey(ctx, searchKindText, req.Query, strings.Join(req.Tags, "\x1f"))
	if cacheable {
		if sites, ok := uc.cache.GetSites(ctx, key); ok {
			metrics.RecordSearch(searchKindText, searchSourceCache, time.Since(start))
			return sites, nil
		}
	}

	sites, err := uc.siteRepo.SearchText(ctx, req.Query, req.Tags)
	if err != nil {
		uc.logger.Error("Failed to search sites",
			zap.String("query", req.Query),
			zap.Strings("tags", req.Tags),
			zap.Error(err))
		return nil, err
	}

	if cacheable {
		uc.cache.SetSites(ctx, key, sites)
	}
	metrics.RecordSearch(searchKindText, searchSourceStore, time.Since(start))
	return sites, nil
}

// Nearby - места в радиусе (км) от точки, расстояние включительно
func (uc *SearchUseCase) Nearby(ctx context.Context, req dto.NearbySitesRequest) ([]domain.SiteWithDistance, error) {
	start := time.Now()

	if !utils.ValidateCoordinates(req.Latitude, req.Longitude) {
		return nil, errors.ErrInvalidCoordinates.WithDetails(map[string]interface{}{
			"latitude":  req.Latitude,
			"longitude": req.Longitude,
		})
	}

	if !utils.ValidateRadius(req.MaxDistance, uc.maxRadiusKm) {
		details := map[string]interface{}{"max_distance": req.MaxDistance}
		if uc.maxRadiusKm > 0 {
			details["max_allowed"] = uc.maxRadiusKm
		}
		return nil, errors.ErrInvalidRadius.WithDetails(details)
	}

	center := domain.Point{Lat: req.Latitude, Lon: req.Longitude}
	sites, err := uc.proximity.Nearby(ctx, center, req.MaxDistance)
	if err != nil {
		uc.logger.Error("Failed to search nearby sites",
			zap.String("strategy", uc.proximity.Strategy()),
			zap.Float64("lat", req.Latitude),
			zap.Float64("lon", req.Longitude),
			zap.Float64("radius_km", req.MaxDistance),
			zap.Error(err))
		return nil, err
	}

	metrics.RecordSearch(searchKindNearby, uc.proximity.Strategy(), time.Since(start))
	return sites, nil
}

// ByDateRange - места с date_established в диапазоне. Места без даты не попадают
// ни в один диапазон с границей.
func (uc *SearchUseCase) ByDateRange(ctx context.Context, req dto.DateRangeRequest) ([]*domain.Site, error) {
	start := time.Now()

	dateRange, err := req.ToDomain()
	if err != nil {
		return nil, err
	}

	key, cacheable := uc.cache.SearchKey(ctx, searchKindDates, formatBound(dateRange.Start), formatBound(dateRange.End))
	if cacheable {
		if sites, ok := uc.cache.GetSites(ctx, key); ok {
			metrics.RecordSearch(searchKindDates, searchSourceCache, time.Since(start))
			return sites, nil
		}
	}

	sites, err := uc.siteRepo.ListByDateRange(ctx, dateRange)
	if err != nil {
		uc.logger.Error("Failed to search sites by date range", zap.Error(err))
		return nil, err
	}

	if cacheable {
		uc.cache.SetSites(ctx, key, sites)
	}
	metrics.RecordSearch(searchKindDates, searchSourceStore, time.Since(start))
	return sites, nil
}

func formatBound(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.UTC().Format(time.RFC3339Nano)
}
