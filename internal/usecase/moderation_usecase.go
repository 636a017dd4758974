package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/heritage-catalog/internal/domain"
	"github.com/heritage-catalog/internal/domain/repository"
	"github.com/heritage-catalog/internal/pkg/metrics"
)

// ModerationUseCase - журнал модерации: запись событий из стрима и история по вкладу
type ModerationUseCase struct {
	moderationRepo   repository.ModerationRepository
	contributionRepo repository.ContributionRepository
	logger           *zap.Logger
}

func NewModerationUseCase(
	moderationRepo repository.ModerationRepository,
	contributionRepo repository.ContributionRepository,
	logger *zap.Logger,
) *ModerationUseCase {
	return &ModerationUseCase{
		moderationRepo:   moderationRepo,
		contributionRepo: contributionRepo,
		logger:           logger,
	}
}

// Record сохраняет событие; повторная доставка того же event_id возвращает false без ошибки
func (uc *ModerationUseCase) Record(ctx context.Context, event *domain.ContributionModeratedEvent) (bool, error) {
	rec := &domain.ModerationRecord{
		EventID:        event.EventID,
		ContributionID: event.ContributionID,
		SiteID:         event.SiteID,
		FromStatus:     event.FromStatus,
		ToStatus:       event.ToStatus,
		OccurredAt:     event.OccurredAt,
	}

	inserted, err := uc.moderationRepo.Record(ctx, rec)
	if err != nil {
		return false, err
	}

	if inserted {
		metrics.ModerationEventsRecorded.Inc()
	} else {
		uc.logger.Debug("Duplicate moderation event ignored",
			zap.String("event_id", event.EventID.String()))
	}
	return inserted, nil
}

// History - журнал по вкладу. Журнал переживает удаление вклада,
// поэтому 404 только если нет ни вклада, ни записей.
func (uc *ModerationUseCase) History(ctx context.Context, contributionID int64) ([]*domain.ModerationRecord, error) {
	records, err := uc.moderationRepo.ListByContribution(ctx, contributionID)
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		if _, err := uc.contributionRepo.GetByID(ctx, contributionID); err != nil {
			return nil, err
		}
	}
	return records, nil
}
