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

const tableContributions = "user_contributions"

const contributionColumns = `
	id, historical_site_id, user_id, contributor_name, contribution_details, images,
	audio, verified, status, created_at, updated_at`

type contributionRepository struct {
	db     *DB
	logger *zap.Logger
}

func NewContributionRepository(db *DB) repository.ContributionRepository {
	return &contributionRepository{
		db:     db,
		logger: db.logger,
	}
}

func (r *contributionRepository) Create(ctx context.Context, c *domain.Contribution) error {
	query := `
		INSERT INTO user_contributions (
			historical_site_id, user_id, contributor_name, contribution_details,
			images, audio, verified, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	if c.Status == "" {
		c.Status = domain.ContributionPending
	}

	start := time.Now()
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		return tx.QueryRowxContext(ctx, query,
			c.SiteID, c.UserID, c.ContributorName, c.ContributionDetails,
			c.Images, c.Audio, c.Verified, c.Status,
		).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	})
	observe("insert", tableContributions, start, err)

	switch {
	case err == nil:
		return nil
	case isForeignKeyViolation(err, "site"):
		return apperrors.ErrSiteNotFound
	case isForeignKeyViolation(err, "user"):
		return apperrors.ErrUserNotFound
	default:
		r.logger.Error("Failed to create contribution", zap.Int64("site_id", c.SiteID), zap.Error(err))
		return apperrors.ErrDatabaseError
	}
}

func (r *contributionRepository) GetByID(ctx context.Context, id int64) (*domain.Contribution, error) {
	query := `SELECT ` + contributionColumns + ` FROM user_contributions WHERE id = $1`

	var c domain.Contribution
	start := time.Now()
	err := sqlx.GetContext(ctx, r.db, &c, query, id)
	observe("select", tableContributions, start, ignoreNoRows(err))

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrContributionNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get contribution by ID", zap.Int64("id", id), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	return &c, nil
}

func (r *contributionRepository) List(ctx context.Context) ([]*domain.Contribution, error) {
	query := `SELECT ` + contributionColumns + ` FROM user_contributions ORDER BY id`
	return r.selectContributions(ctx, query)
}

func (r *contributionRepository) ListByStatus(ctx context.Context, status domain.ContributionStatus) ([]*domain.Contribution, error) {
	query := `SELECT ` + contributionColumns + ` FROM user_contributions WHERE status = $1 ORDER BY id`
	return r.selectContributions(ctx, query, status)
}

func (r *contributionRepository) Update(ctx context.Context, id int64, update domain.ContributionUpdate) (*domain.Contribution, error) {
	selectQuery := `SELECT ` + contributionColumns + ` FROM user_contributions WHERE id = $1 FOR UPDATE`
	updateQuery := `
		UPDATE user_contributions SET
			contributor_name = $2, contribution_details = $3, images = $4,
			audio = $5, verified = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	var c domain.Contribution
	start := time.Now()
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &c, selectQuery, id); err != nil {
			return err
		}

		update.Apply(&c)

		return tx.QueryRowxContext(ctx, updateQuery, id,
			c.ContributorName, c.ContributionDetails, c.Images, c.Audio, c.Verified,
		).Scan(&c.UpdatedAt)
	})
	observe("update", tableContributions, start, ignoreNoRows(err))

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrContributionNotFound
	}
	if err != nil {
		r.logger.Error("Failed to update contribution", zap.Int64("id", id), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	return &c, nil
}

func (r *contributionRepository) Delete(ctx context.Context, id int64) error {
	start := time.Now()
	res, err := r.db.ExecContext(ctx, `DELETE FROM user_contributions WHERE id = $1`, id)
	affected, err := rowsAffected(res, err)
	observe("delete", tableContributions, start, err)

	if err != nil {
		r.logger.Error("Failed to delete contribution", zap.Int64("id", id), zap.Error(err))
		return apperrors.ErrDatabaseError
	}
	if affected == 0 {
		return apperrors.ErrContributionNotFound
	}
	return nil
}

// TransitionStatus - условный UPDATE: из двух одновременных модераторов успешен только один.
// Если строка есть, но статус уже не from - ErrInvalidStatusTransition, если строки нет - 404.
func (r *contributionRepository) TransitionStatus(ctx context.Context, id int64, from, to domain.ContributionStatus) (*domain.Contribution, error) {
	query := `
		UPDATE user_contributions
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING ` + contributionColumns

	var c domain.Contribution
	start := time.Now()
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		return tx.GetContext(ctx, &c, query, id, from, to)
	})
	observe("update", tableContributions, start, ignoreNoRows(err))

	if err == nil {
		r.logger.Info("Contribution status changed",
			zap.Int64("id", id),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
		)
		return &c, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		r.logger.Error("Failed to change contribution status", zap.Int64("id", id), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return nil, apperrors.ErrInvalidStatusTransition.WithDetails(map[string]interface{}{
		"id":             id,
		"current_status": current.Status,
		"target_status":  to,
	})
}

func (r *contributionRepository) selectContributions(ctx context.Context, query string, args ...interface{}) ([]*domain.Contribution, error) {
	contributions := make([]*domain.Contribution, 0)
	start := time.Now()
	err := sqlx.SelectContext(ctx, r.db, &contributions, query, args...)
	observe("select", tableContributions, start, err)

	if err != nil {
		r.logger.Error("Failed to select contributions", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	return contributions, nil
}
