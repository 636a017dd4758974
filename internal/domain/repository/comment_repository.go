package repository

import (
	"context"

	"github.com/heritage-catalog/internal/domain"
)

type CommentRepository interface {
	Create(ctx context.Context, c *domain.Comment) error
	GetByID(ctx context.Context, id int64) (*domain.Comment, error)
	ListByTarget(ctx context.Context, target domain.CommentTarget) ([]*domain.Comment, error)
	UpdateContent(ctx context.Context, id int64, content string) (*domain.Comment, error)
	Delete(ctx context.Context, id int64) error
}
