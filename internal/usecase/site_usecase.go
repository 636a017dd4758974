package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/heritage-catalog/internal/domain"
	"github.com/heritage-catalog/internal/domain/repository"
	"github.com/heritage-catalog/internal/pkg/errors"
	"github.com/heritage-catalog/internal/pkg/utils"
	"github.com/heritage-catalog/internal/usecase/dto"
)

// SiteUseCase - CRUD исторических мест
type SiteUseCase struct {
	siteRepo repository.SiteRepository
	cache    *CatalogCache
	logger   *zap.Logger
}

// NewSiteUseCase создает новый SiteUseCase
func NewSiteUseCase(
	siteRepo repository.SiteRepository,
	cache *CatalogCache,
	logger *zap.Logger,
) *SiteUseCase {
	return &SiteUseCase{
		siteRepo: siteRepo,
		cache:    cache,
		logger:   logger,
	}
}

// Create - создание места; имя уникально
func (uc *SiteUseCase) Create(ctx context.Context, req dto.CreateSiteRequest) (*domain.Site, error) {
	site, err := req.ToDomain()
	if err != nil {
		return nil, err
	}

	if !utils.ValidateCoordinates(site.Latitude, site.Longitude) {
		return nil, errors.ErrInvalidCoordinates.WithDetails(map[string]interface{}{
			"latitude":  site.Latitude,
			"longitude": site.Longitude,
		})
	}

	if err := uc.siteRepo.Create(ctx, site); err != nil {
		return nil, err
	}

	uc.cache.BumpVersion(ctx)

	uc.logger.Info("Historical site created",
		zap.Int64("id", site.ID),
		zap.String("name", site.Name))
	return site, nil
}

// Get - место по ID, сначала из кеша
func (uc *SiteUseCase) Get(ctx context.Context, id int64) (*domain.Site, error) {
	key, cacheable := uc.cache.SiteKey(ctx, id)
	if cacheable {
		if site, ok := uc.cache.GetSite(ctx, key); ok {
			return site, nil
		}
	}

	site, err := uc.siteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if cacheable {
		uc.cache.SetSite(ctx, key, site)
	}
	return site, nil
}

// List - все места по возрастанию ID
func (uc *SiteUseCase) List(ctx context.Context) ([]*domain.Site, error) {
	return uc.siteRepo.List(ctx)
}

// Update - частичное обновление. Итоговые координаты проверяются после слияния.
func (uc *SiteUseCase) Update(ctx context.Context, id int64, req dto.UpdateSiteRequest) (*domain.Site, error) {
	update, err := req.ToDomain()
	if err != nil {
		return nil, err
	}

	if update.Latitude != nil || update.Longitude != nil {
		current, err := uc.siteRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		merged := *current
		update.Apply(&merged)
		if !utils.ValidateCoordinates(merged.Latitude, merged.Longitude) {
			return nil, errors.ErrInvalidCoordinates.WithDetails(map[string]interface{}{
				"latitude":  merged.Latitude,
				"longitude": merged.Longitude,
			})
		}
	}

	site, err := uc.siteRepo.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}

	uc.cache.InvalidateSite(ctx, id)
	return site, nil
}

// Delete - удаление места вместе с зависимыми вкладами, событиями и комментариями
func (uc *SiteUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.siteRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.cache.InvalidateSite(ctx, id)
	return nil
}
