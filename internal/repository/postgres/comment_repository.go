package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/heritage-catalog/internal/domain"
	"github.com/heritage-catalog/internal/domain/repository"
	apperrors "github.com/heritage-catalog/internal/pkg/errors"
)

const tableComments = "comments"

const commentColumns = `id, user_id, site_id, event_id, content, created_at`

// commentRow - строка таблицы comments, цель хранится в двух nullable колонках
type commentRow struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	SiteID    *int64    `db:"site_id"`
	EventID   *int64    `db:"event_id"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
}

func (row commentRow) toDomain() (*domain.Comment, error) {
	target, err := domain.CommentTargetFromColumns(row.SiteID, row.EventID)
	if err != nil {
		return nil, err
	}
	return &domain.Comment{
		ID:        row.ID,
		UserID:    row.UserID,
		Target:    target,
		Content:   row.Content,
		CreatedAt: row.CreatedAt,
	}, nil
}

type commentRepository struct {
	db     *DB
	logger *zap.Logger
}

func NewCommentRepository(db *DB) repository.CommentRepository {
	return &commentRepository{
		db:     db,
		logger: db.logger,
	}
}

func (r *commentRepository) Create(ctx context.Context, c *domain.Comment) error {
	query := `
		INSERT INTO comments (user_id, site_id, event_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	siteID, eventID := c.Target.Columns()

	start := time.Now()
	err := r.db.QueryRowxContext(ctx, query, c.UserID, siteID, eventID, c.Content).
		Scan(&c.ID, &c.CreatedAt)
	observe("insert", tableComments, start, err)

	switch {
	case err == nil:
		return nil
	case isForeignKeyViolation(err, "user"):
		return apperrors.ErrUserNotFound
	case isForeignKeyViolation(err, "site"):
		return apperrors.ErrSiteNotFound
	case isForeignKeyViolation(err, "event"):
		return apperrors.ErrEventNotFound
	case isCheckViolation(err):
		return apperrors.ErrInvalidCommentTarget
	default:
		r.logger.Error("Failed to create comment", zap.Int64("user_id", c.UserID), zap.Error(err))
		return apperrors.ErrDatabaseError
	}
}

func (r *commentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	var row commentRow
	start := time.Now()
	err := sqlx.GetContext(ctx, r.db, &row, `SELECT `+commentColumns+` FROM comments WHERE id = $1`, id)
	observe("select", tableComments, start, ignoreNoRows(err))

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrCommentNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get comment by ID", zap.Int64("id", id), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	return r.toDomain(row)
}

func (r *commentRepository) ListByTarget(ctx context.Context, target domain.CommentTarget) ([]*domain.Comment, error) {
	column := "site_id"
	if target.Kind == domain.CommentOnEvent {
		column = "event_id"
	}
	query := `SELECT ` + commentColumns + ` FROM comments WHERE ` + column + ` = $1 ORDER BY created_at, id`

	var rows []commentRow
	start := time.Now()
	err := sqlx.SelectContext(ctx, r.db, &rows, query, target.ID)
	observe("select", tableComments, start, err)

	if err != nil {
		r.logger.Error("Failed to list comments",
			zap.String("target", string(target.Kind)),
			zap.Int64("target_id", target.ID),
			zap.Error(err),
		)
		return nil, apperrors.ErrDatabaseError
	}

	comments := make([]*domain.Comment, 0, len(rows))
	for _, row := range rows {
		c, err := r.toDomain(row)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, nil
}

func (r *commentRepository) UpdateContent(ctx context.Context, id int64, content string) (*domain.Comment, error) {
	query := `UPDATE comments SET content = $2 WHERE id = $1 RETURNING ` + commentColumns

	var row commentRow
	start := time.Now()
	err := sqlx.GetContext(ctx, r.db, &row, query, id, content)
	observe("update", tableComments, start, ignoreNoRows(err))

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrCommentNotFound
	}
	if err != nil {
		r.logger.Error("Failed to update comment", zap.Int64("id", id), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	return r.toDomain(row)
}

func (r *commentRepository) Delete(ctx context.Context, id int64) error {
	start := time.Now()
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	affected, err := rowsAffected(res, err)
	observe("delete", tableComments, start, err)

	if err != nil {
		r.logger.Error("Failed to delete comment", zap.Int64("id", id), zap.Error(err))
		return apperrors.ErrDatabaseError
	}
	if affected == 0 {
		return apperrors.ErrCommentNotFound
	}
	return nil
}

func (r *commentRepository) toDomain(row commentRow) (*domain.Comment, error) {
	c, err := row.toDomain()
	if err != nil {
		// CHECK constraint не даёт такой строке появиться
		r.logger.Error("Comment row has invalid target", zap.Int64("id", row.ID), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	return c, nil
}
