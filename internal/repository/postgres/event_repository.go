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

const tableEvents = "historical_events"

const eventColumns = `id, title, description, date, site_id, participants, event_type, images`

type eventRepository struct {
	db     *DB
	logger *zap.Logger
}

func NewEventRepository(db *DB) repository.EventRepository {
	return &eventRepository{
		db:     db,
		logger: db.logger,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO historical_events (title, description, date, site_id, participants, event_type, images)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	start := time.Now()
	err := r.db.QueryRowxContext(ctx, query,
		e.Title, e.Description, e.Date, e.SiteID, e.Participants, e.EventType, e.Images,
	).Scan(&e.ID)
	observe("insert", tableEvents, start, err)

	if isForeignKeyViolation(err, "site") {
		return apperrors.ErrSiteNotFound
	}
	if err != nil {
		r.logger.Error("Failed to create event", zap.String("title", e.Title), zap.Error(err))
		return apperrors.ErrDatabaseError
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	var e domain.Event
	start := time.Now()
	err := sqlx.GetContext(ctx, r.db, &e, `SELECT `+eventColumns+` FROM historical_events WHERE id = $1`, id)
	observe("select", tableEvents, start, ignoreNoRows(err))

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrEventNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get event by ID", zap.Int64("id", id), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	return &e, nil
}

func (r *eventRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	start := time.Now()
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM historical_events WHERE id = $1)`, id).Scan(&exists)
	observe("select", tableEvents, start, err)

	if err != nil {
		r.logger.Error("Failed to check event existence", zap.Int64("id", id), zap.Error(err))
		return false, apperrors.ErrDatabaseError
	}
	return exists, nil
}

func (r *eventRepository) List(ctx context.Context, siteID *int64) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM historical_events`
	var args []interface{}
	if siteID != nil {
		query += ` WHERE site_id = $1`
		args = append(args, *siteID)
	}
	query += ` ORDER BY date, id`

	events := make([]*domain.Event, 0)
	start := time.Now()
	err := sqlx.SelectContext(ctx, r.db, &events, query, args...)
	observe("select", tableEvents, start, err)

	if err != nil {
		r.logger.Error("Failed to list events", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	return events, nil
}

func (r *eventRepository) Update(ctx context.Context, id int64, update domain.EventUpdate) (*domain.Event, error) {
	selectQuery := `SELECT ` + eventColumns + ` FROM historical_events WHERE id = $1 FOR UPDATE`
	updateQuery := `
		UPDATE historical_events SET
			title = $2, description = $3, date = $4, site_id = $5,
			participants = $6, event_type = $7, images = $8
		WHERE id = $1
	`

	var e domain.Event
	start := time.Now()
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &e, selectQuery, id); err != nil {
			return err
		}

		update.Apply(&e)

		_, err := tx.ExecContext(ctx, updateQuery, id,
			e.Title, e.Description, e.Date, e.SiteID, e.Participants, e.EventType, e.Images,
		)
		return err
	})
	observe("update", tableEvents, start, ignoreNoRows(err))

	switch {
	case err == nil:
		return &e, nil
	case errors.Is(err, sql.ErrNoRows):
		return nil, apperrors.ErrEventNotFound
	case isForeignKeyViolation(err, "site"):
		return nil, apperrors.ErrSiteNotFound
	default:
		r.logger.Error("Failed to update event", zap.Int64("id", id), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
}

func (r *eventRepository) Delete(ctx context.Context, id int64) error {
	start := time.Now()
	res, err := r.db.ExecContext(ctx, `DELETE FROM historical_events WHERE id = $1`, id)
	affected, err := rowsAffected(res, err)
	observe("delete", tableEvents, start, err)

	if err != nil {
		r.logger.Error("Failed to delete event", zap.Int64("id", id), zap.Error(err))
		return apperrors.ErrDatabaseError
	}
	if affected == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}
