package repository

import (
	"context"

	"github.com/heritage-catalog/internal/domain"
)

type EventRepository interface {
	Create(ctx context.Context, e *domain.Event) error
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
	Exists(ctx context.Context, id int64) (bool, error)

	// List возвращает события; siteID != nil ограничивает выборку одним местом
	List(ctx context.Context, siteID *int64) ([]*domain.Event, error)
	Update(ctx context.Context, id int64, update domain.EventUpdate) (*domain.Event, error)
	Delete(ctx context.Context, id int64) error
}
