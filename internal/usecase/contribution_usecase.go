package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/heritage-catalog/internal/domain"
	"github.com/heritage-catalog/internal/domain/repository"
	"github.com/heritage-catalog/internal/pkg/errors"
	"github.com/heritage-catalog/internal/pkg/metrics"
	"github.com/heritage-catalog/internal/usecase/dto"
)

// ContributionUseCase - пользовательские вклады и их модерация.
// Статус меняется только pending -> approved | rejected.
type ContributionUseCase struct {
	contributionRepo repository.ContributionRepository
	siteRepo         repository.SiteRepository
	userRepo         repository.UserRepository
	streamRepo       repository.StreamRepository
	logger           *zap.Logger
	now              func() time.Time
}

// NewContributionUseCase создает новый ContributionUseCase.
// streamRepo может быть nil, тогда события модерации не публикуются.
func NewContributionUseCase(
	contributionRepo repository.ContributionRepository,
	siteRepo repository.SiteRepository,
	userRepo repository.UserRepository,
	streamRepo repository.StreamRepository,
	logger *zap.Logger,
) *ContributionUseCase {
	return &ContributionUseCase{
		contributionRepo: contributionRepo,
		siteRepo:         siteRepo,
		userRepo:         userRepo,
		streamRepo:       streamRepo,
		logger:           logger,
		now:              time.Now,
	}
}

// Create - новый вклад в статусе pending; место (и пользователь, если указан) должны существовать
func (uc *ContributionUseCase) Create(ctx context.Context, req dto.CreateContributionRequest) (*domain.Contribution, error) {
	exists, err := uc.siteRepo.Exists(ctx, req.SiteID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errors.ErrSiteNotFound.WithDetails(map[string]interface{}{
			"historical_site_id": req.SiteID,
		})
	}

	if req.UserID != nil {
		exists, err := uc.userRepo.Exists(ctx, *req.UserID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, errors.ErrUserNotFound.WithDetails(map[string]interface{}{
				"user_id": *req.UserID,
			})
		}
	}

	contribution := req.ToDomain()
	if err := uc.contributionRepo.Create(ctx, contribution); err != nil {
		return nil, err
	}

	uc.logger.Info("Contribution created",
		zap.Int64("id", contribution.ID),
		zap.Int64("site_id", contribution.SiteID))
	return contribution, nil
}

func (uc *ContributionUseCase) Get(ctx context.Context, id int64) (*domain.Contribution, error) {
	return uc.contributionRepo.GetByID(ctx, id)
}

func (uc *ContributionUseCase) List(ctx context.Context) ([]*domain.Contribution, error) {
	return uc.contributionRepo.List(ctx)
}

// ListByStatus - пустой статус означает pending, неизвестный - ErrInvalidStatus
func (uc *ContributionUseCase) ListByStatus(ctx context.Context, status string) ([]*domain.Contribution, error) {
	st := domain.ContributionPending
	if status != "" {
		parsed, ok := domain.ParseContributionStatus(status)
		if !ok {
			return nil, errors.ErrInvalidStatus.WithDetails(map[string]interface{}{
				"status":  status,
				"allowed": []domain.ContributionStatus{domain.ContributionPending, domain.ContributionApproved, domain.ContributionRejected},
			})
		}
		st = parsed
	}

	return uc.contributionRepo.ListByStatus(ctx, st)
}

// Update - частичное обновление содержимого вклада; статус не меняется
func (uc *ContributionUseCase) Update(ctx context.Context, id int64, req dto.UpdateContributionRequest) (*domain.Contribution, error) {
	return uc.contributionRepo.Update(ctx, id, req.ToDomain())
}

func (uc *ContributionUseCase) Delete(ctx context.Context, id int64) error {
	return uc.contributionRepo.Delete(ctx, id)
}

// Approve - pending -> approved
func (uc *ContributionUseCase) Approve(ctx context.Context, id int64) (*domain.Contribution, error) {
	return uc.moderate(ctx, id, domain.ContributionApproved)
}

// Reject - pending -> rejected
func (uc *ContributionUseCase) Reject(ctx context.Context, id int64) (*domain.Contribution, error) {
	return uc.moderate(ctx, id, domain.ContributionRejected)
}

func (uc *ContributionUseCase) moderate(ctx context.Context, id int64, to domain.ContributionStatus) (*domain.Contribution, error) {
	from := domain.ContributionPending

	contribution, err := uc.contributionRepo.TransitionStatus(ctx, id, from, to)
	if err != nil {
		if errors.Is(err, errors.ErrInvalidStatusTransition) {
			uc.logger.Warn("Rejected status transition",
				zap.Int64("id", id),
				zap.String("target", string(to)))
		}
		return nil, err
	}

	metrics.ContributionsModerated.WithLabelValues(string(to)).Inc()

	// Статус уже закоммичен: ошибка публикации не должна ломать запрос
	uc.publishModerated(ctx, contribution, from)

	return contribution, nil
}

func (uc *ContributionUseCase) publishModerated(ctx context.Context, c *domain.Contribution, from domain.ContributionStatus) {
	if uc.streamRepo == nil {
		uc.logger.Warn("Moderation stream unavailable, event not published",
			zap.Int64("contribution_id", c.ID))
		return
	}

	event := &domain.ContributionModeratedEvent{
		EventID:        uuid.New(),
		ContributionID: c.ID,
		SiteID:         c.SiteID,
		FromStatus:     from,
		ToStatus:       c.Status,
		OccurredAt:     uc.now().UTC(),
	}

	if err := uc.streamRepo.PublishToStream(ctx, domain.StreamContributionModerated, event); err != nil {
		uc.logger.Error("Failed to publish moderation event",
			zap.Int64("contribution_id", c.ID),
			zap.String("event_id", event.EventID.String()),
			zap.Error(err))
	}
}
