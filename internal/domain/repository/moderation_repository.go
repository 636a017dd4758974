package repository

import (
	"context"

	"github.com/heritage-catalog/internal/domain"
)

// ModerationRepository - журнал модерации вкладов
type ModerationRepository interface {
	// Record сохраняет запись; повторная запись того же EventID игнорируется (inserted=false)
	Record(ctx context.Context, rec *domain.ModerationRecord) (inserted bool, err error)

	ListByContribution(ctx context.Context, contributionID int64) ([]*domain.ModerationRecord, error)
}
