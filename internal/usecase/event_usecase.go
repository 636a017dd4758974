package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/heritage-catalog/internal/domain"
	"github.com/heritage-catalog/internal/domain/repository"
	"github.com/heritage-catalog/internal/pkg/errors"
	"github.com/heritage-catalog/internal/usecase/dto"
)

// EventUseCase - исторические события
type EventUseCase struct {
	eventRepo repository.EventRepository
	siteRepo  repository.SiteRepository
	logger    *zap.Logger
}

func NewEventUseCase(
	eventRepo repository.EventRepository,
	siteRepo repository.SiteRepository,
	logger *zap.Logger,
) *EventUseCase {
	return &EventUseCase{
		eventRepo: eventRepo,
		siteRepo:  siteRepo,
		logger:    logger,
	}
}

func (uc *EventUseCase) Create(ctx context.Context, req dto.CreateEventRequest) (*domain.Event, error) {
	event, err := req.ToDomain()
	if err != nil {
		return nil, err
	}

	if err := uc.ensureSite(ctx, event.SiteID); err != nil {
		return nil, err
	}

	if err := uc.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	uc.logger.Info("Historical event created", zap.Int64("id", event.ID))
	return event, nil
}

func (uc *EventUseCase) Get(ctx context.Context, id int64) (*domain.Event, error) {
	return uc.eventRepo.GetByID(ctx, id)
}

// List - все события или события одного места
func (uc *EventUseCase) List(ctx context.Context, siteID *int64) ([]*domain.Event, error) {
	if err := uc.ensureSite(ctx, siteID); err != nil {
		return nil, err
	}
	return uc.eventRepo.List(ctx, siteID)
}

func (uc *EventUseCase) Update(ctx context.Context, id int64, req dto.UpdateEventRequest) (*domain.Event, error) {
	update, err := req.ToDomain()
	if err != nil {
		return nil, err
	}

	if err := uc.ensureSite(ctx, update.SiteID); err != nil {
		return nil, err
	}

	return uc.eventRepo.Update(ctx, id, update)
}

func (uc *EventUseCase) Delete(ctx context.Context, id int64) error {
	return uc.eventRepo.Delete(ctx, id)
}

func (uc *EventUseCase) ensureSite(ctx context.Context, siteID *int64) error {
	if siteID == nil {
		return nil
	}
	exists, err := uc.siteRepo.Exists(ctx, *siteID)
	if err != nil {
		return err
	}
	if !exists {
		return errors.ErrSiteNotFound.WithDetails(map[string]interface{}{"site_id": *siteID})
	}
	return nil
}
