package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/heritage-catalog/internal/domain"
	"github.com/heritage-catalog/internal/domain/repository"
	"github.com/heritage-catalog/internal/pkg/errors"
	"github.com/heritage-catalog/internal/usecase/dto"
)

// CommentUseCase - комментарии к местам и событиям
type CommentUseCase struct {
	commentRepo repository.CommentRepository
	siteRepo    repository.SiteRepository
	eventRepo   repository.EventRepository
	userRepo    repository.UserRepository
	logger      *zap.Logger
}

func NewCommentUseCase(
	commentRepo repository.CommentRepository,
	siteRepo repository.SiteRepository,
	eventRepo repository.EventRepository,
	userRepo repository.UserRepository,
	logger *zap.Logger,
) *CommentUseCase {
	return &CommentUseCase{
		commentRepo: commentRepo,
		siteRepo:    siteRepo,
		eventRepo:   eventRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// Create - пользователь и родитель (место или событие) должны существовать
func (uc *CommentUseCase) Create(ctx context.Context, req dto.CreateCommentRequest) (*domain.Comment, error) {
	target, err := domain.NewCommentTarget(req.TargetType, req.TargetID)
	if err != nil {
		return nil, errors.ErrInvalidCommentTarget.WithDetails(map[string]interface{}{
			"target_type": req.TargetType,
			"target_id":   req.TargetID,
		})
	}

	exists, err := uc.userRepo.Exists(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errors.ErrUserNotFound.WithDetails(map[string]interface{}{"user_id": req.UserID})
	}

	if err := uc.ensureTarget(ctx, target); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		UserID:  req.UserID,
		Target:  target,
		Content: req.Content,
	}
	if err := uc.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	uc.logger.Info("Comment created",
		zap.Int64("id", comment.ID),
		zap.String("target", string(target.Kind)),
		zap.Int64("target_id", target.ID))
	return comment, nil
}

func (uc *CommentUseCase) Get(ctx context.Context, id int64) (*domain.Comment, error) {
	return uc.commentRepo.GetByID(ctx, id)
}

// List - комментарии одного места или одного события; нужен ровно один фильтр
func (uc *CommentUseCase) List(ctx context.Context, req dto.ListCommentsRequest) ([]*domain.Comment, error) {
	target, err := domain.CommentTargetFromColumns(req.SiteID, req.EventID)
	if err != nil {
		return nil, errors.ErrInvalidCommentTarget.WithMessage("Exactly one of site_id or event_id is required")
	}

	if err := uc.ensureTarget(ctx, target); err != nil {
		return nil, err
	}
	return uc.commentRepo.ListByTarget(ctx, target)
}

func (uc *CommentUseCase) UpdateContent(ctx context.Context, id int64, req dto.UpdateCommentRequest) (*domain.Comment, error) {
	return uc.commentRepo.UpdateContent(ctx, id, req.Content)
}

func (uc *CommentUseCase) Delete(ctx context.Context, id int64) error {
	return uc.commentRepo.Delete(ctx, id)
}

func (uc *CommentUseCase) ensureTarget(ctx context.Context, target domain.CommentTarget) error {
	switch target.Kind {
	case domain.CommentOnSite:
		exists, err := uc.siteRepo.Exists(ctx, target.ID)
		if err != nil {
			return err
		}
		if !exists {
			return errors.ErrSiteNotFound.WithDetails(map[string]interface{}{"site_id": target.ID})
		}
	case domain.CommentOnEvent:
		exists, err := uc.eventRepo.Exists(ctx, target.ID)
		if err != nil {
			return err
		}
		if !exists {
			return errors.ErrEventNotFound.WithDetails(map[string]interface{}{"event_id": target.ID})
		}
	default:
		return errors.ErrInvalidCommentTarget
	}
	return nil
}
