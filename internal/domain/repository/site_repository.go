package repository

import (
	"context"

	"github.com/heritage-catalog/internal/domain"
)

// SiteRepository определяет методы для работы с историческими местами
type SiteRepository interface {
	// Create сохраняет место и заполняет ID и временные метки
	Create(ctx context.Context, site *domain.Site) error

	// GetByID возвращает место по ID
	GetByID(ctx context.Context, id int64) (*domain.Site, error)

	// Exists проверяет наличие места
	Exists(ctx context.Context, id int64) (bool, error)

	// List возвращает все места по возрастанию ID
	List(ctx context.Context) ([]*domain.Site, error)

	// Update применяет частичное обновление в транзакции
	Update(ctx context.Context, id int64, update domain.SiteUpdate) (*domain.Site, error)

	// Delete удаляет место вместе с зависимыми записями
	Delete(ctx context.Context, id int64) error

	// SearchText ищет подстроку в name/description и пересечение по тегам
	SearchText(ctx context.Context, query string, tags []string) ([]*domain.Site, error)

	// ListByDateRange фильтрует по date_established, границы включительно
	ListByDateRange(ctx context.Context, dateRange domain.DateRange) ([]*domain.Site, error)

	// ListInBoundingBox возвращает места внутри прямоугольника координат
	ListInBoundingBox(ctx context.Context, box domain.BoundingBox) ([]*domain.Site, error)
}
