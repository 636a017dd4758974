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

const tableModerationEvents = "moderation_events"

type moderationRepository struct {
	db     *DB
	logger *zap.Logger
}

func NewModerationRepository(db *DB) repository.ModerationRepository {
	return &moderationRepository{
		db:     db,
		logger: db.logger,
	}
}

// Record пишет событие в журнал. Повторная доставка того же event_id ничего не меняет.
func (r *moderationRepository) Record(ctx context.Context, rec *domain.ModerationRecord) (bool, error) {
	query := `
		INSERT INTO moderation_events (event_id, contribution_id, site_id, from_status, to_status, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (event_id) DO NOTHING
		RETURNING id, recorded_at
	`

	start := time.Now()
	err := r.db.QueryRowxContext(ctx, query,
		rec.EventID, rec.ContributionID, rec.SiteID, rec.FromStatus, rec.ToStatus, rec.OccurredAt,
	).Scan(&rec.ID, &rec.RecordedAt)
	observe("insert", tableModerationEvents, start, ignoreNoRows(err))

	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		r.logger.Error("Failed to record moderation event",
			zap.String("event_id", rec.EventID.String()),
			zap.Int64("contribution_id", rec.ContributionID),
			zap.Error(err),
		)
		return false, apperrors.ErrDatabaseError
	}
	return true, nil
}

func (r *moderationRepository) ListByContribution(ctx context.Context, contributionID int64) ([]*domain.ModerationRecord, error) {
	query := `
		SELECT id, event_id, contribution_id, site_id, from_status, to_status, occurred_at, recorded_at
		FROM moderation_events
		WHERE contribution_id = $1
		ORDER BY occurred_at, id
	`

	records := make([]*domain.ModerationRecord, 0)
	start := time.Now()
	err := sqlx.SelectContext(ctx, r.db, &records, query, contributionID)
	observe("select", tableModerationEvents, start, err)

	if err != nil {
		r.logger.Error("Failed to list moderation events", zap.Int64("contribution_id", contributionID), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	return records, nil
}
