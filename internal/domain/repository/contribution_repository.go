package repository

import (
	"context"

	"github.com/heritage-catalog/internal/domain"
)

// ContributionRepository определяет методы для работы с пользовательскими вкладами
type ContributionRepository interface {
	Create(ctx context.Context, c *domain.Contribution) error
	GetByID(ctx context.Context, id int64) (*domain.Contribution, error)
	List(ctx context.Context) ([]*domain.Contribution, error)
	ListByStatus(ctx context.Context, status domain.ContributionStatus) ([]*domain.Contribution, error)
	Update(ctx context.Context, id int64, update domain.ContributionUpdate) (*domain.Contribution, error)
	Delete(ctx context.Context, id int64) error

	// TransitionStatus меняет статус только если текущий равен from.
	// Возвращает ErrInvalidStatusTransition, если статус уже другой.
	TransitionStatus(ctx context.Context, id int64, from, to domain.ContributionStatus) (*domain.Contribution, error)
}
