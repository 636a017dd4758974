package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/heritage-catalog/internal/domain"
	"github.com/heritage-catalog/internal/domain/repository"
	apperrors "github.com/heritage-catalog/internal/pkg/errors"
)

const tableSites = "historical_sites"

const siteColumns = `
	id, name, description, latitude, longitude, address, era, tags, images,
	audio_guide_url, verified, date_established, created_at, updated_at`

type siteRepository struct {
	db     *DB
	logger *zap.Logger
}

func NewSiteRepository(db *DB) repository.SiteRepository {
	return &siteRepository{
		db:     db,
		logger: db.logger,
	}
}

func (r *siteRepository) Create(ctx context.Context, site *domain.Site) error {
	query := `
		INSERT INTO historical_sites (
			name, description, latitude, longitude, address, era, tags, images,
			audio_guide_url, verified, date_established
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	start := time.Now()
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		return tx.QueryRowxContext(ctx, query,
			site.Name, site.Description, site.Latitude, site.Longitude, site.Address,
			site.Era, site.Tags, site.Images, site.AudioGuideURL, site.Verified,
			site.DateEstablished,
		).Scan(&site.ID, &site.CreatedAt, &site.UpdatedAt)
	})
	observe("insert", tableSites, start, err)

	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrSiteAlreadyExists.WithDetails(map[string]interface{}{
				"name": site.Name,
			})
		}
		r.logger.Error("Failed to create historical site", zap.String("name", site.Name), zap.Error(err))
		return apperrors.ErrDatabaseError
	}

	return nil
}

func (r *siteRepository) GetByID(ctx context.Context, id int64) (*domain.Site, error) {
	query := `SELECT ` + siteColumns + ` FROM historical_sites WHERE id = $1`

	var site domain.Site
	start := time.Now()
	err := sqlx.GetContext(ctx, r.db, &site, query, id)
	observe("select", tableSites, start, ignoreNoRows(err))

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrSiteNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get historical site by ID", zap.Int64("id", id), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	return &site, nil
}

func (r *siteRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	start := time.Now()
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM historical_sites WHERE id = $1)`, id).Scan(&exists)
	observe("select", tableSites, start, err)

	if err != nil {
		r.logger.Error("Failed to check historical site existence", zap.Int64("id", id), zap.Error(err))
		return false, apperrors.ErrDatabaseError
	}
	return exists, nil
}

func (r *siteRepository) List(ctx context.Context) ([]*domain.Site, error) {
	query := `SELECT ` + siteColumns + ` FROM historical_sites ORDER BY id`
	return r.selectSites(ctx, "list", query)
}

func (r *siteRepository) Update(ctx context.Context, id int64, update domain.SiteUpdate) (*domain.Site, error) {
	selectQuery := `SELECT ` + siteColumns + ` FROM historical_sites WHERE id = $1 FOR UPDATE`
	updateQuery := `
		UPDATE historical_sites SET
			name = $2, description = $3, latitude = $4, longitude = $5, address = $6,
			era = $7, tags = $8, images = $9, audio_guide_url = $10, verified = $11,
			date_established = $12, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	var site domain.Site
	start := time.Now()
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &site, selectQuery, id); err != nil {
			return err
		}

		update.Apply(&site)

		return tx.QueryRowxContext(ctx, updateQuery, id,
			site.Name, site.Description, site.Latitude, site.Longitude, site.Address,
			site.Era, site.Tags, site.Images, site.AudioGuideURL, site.Verified,
			site.DateEstablished,
		).Scan(&site.UpdatedAt)
	})
	observe("update", tableSites, start, ignoreNoRows(err))

	switch {
	case err == nil:
		return &site, nil
	case errors.Is(err, sql.ErrNoRows):
		return nil, apperrors.ErrSiteNotFound
	case isUniqueViolation(err):
		return nil, apperrors.ErrSiteAlreadyExists.WithDetails(map[string]interface{}{
			"name": site.Name,
		})
	default:
		r.logger.Error("Failed to update historical site", zap.Int64("id", id), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
}

// Delete удаляет место; вклады, события и комментарии удаляются каскадно (ON DELETE CASCADE)
func (r *siteRepository) Delete(ctx context.Context, id int64) error {
	var affected int64
	start := time.Now()
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		affected, err = rowsAffected(tx.ExecContext(ctx, `DELETE FROM historical_sites WHERE id = $1`, id))
		return err
	})
	observe("delete", tableSites, start, err)

	if err != nil {
		r.logger.Error("Failed to delete historical site", zap.Int64("id", id), zap.Error(err))
		return apperrors.ErrDatabaseError
	}
	if affected == 0 {
		return apperrors.ErrSiteNotFound
	}

	r.logger.Info("Historical site deleted", zap.Int64("id", id))
	return nil
}

func (r *siteRepository) SearchText(ctx context.Context, query string, tags []string) ([]*domain.Site, error) {
	sqlQuery := `SELECT ` + siteColumns + ` FROM historical_sites`

	var conditions []string
	var args []interface{}
	argIdx := 1

	if query != "" {
		conditions = append(conditions, fmt.Sprintf(
			`(name ILIKE $%d ESCAPE '\' OR description ILIKE $%d ESCAPE '\')`, argIdx, argIdx))
		args = append(args, "%"+escapeLike(query)+"%")
		argIdx++
	}

	if len(tags) > 0 {
		// ?| - есть ли в JSONB массиве хотя бы одна из строк
		conditions = append(conditions, fmt.Sprintf("tags ?| $%d", argIdx))
		args = append(args, pq.Array(tags))
		argIdx++
	}

	if len(conditions) > 0 {
		sqlQuery += " WHERE " + strings.Join(conditions, " AND ")
	}
	sqlQuery += " ORDER BY id"

	return r.selectSites(ctx, "search", sqlQuery, args...)
}

func (r *siteRepository) ListByDateRange(ctx context.Context, dateRange domain.DateRange) ([]*domain.Site, error) {
	sqlQuery := `SELECT ` + siteColumns + ` FROM historical_sites`

	var conditions []string
	var args []interface{}
	argIdx := 1

	if dateRange.Start != nil {
		conditions = append(conditions, fmt.Sprintf("date_established >= $%d", argIdx))
		args = append(args, *dateRange.Start)
		argIdx++
	}
	if dateRange.End != nil {
		conditions = append(conditions, fmt.Sprintf("date_established <= $%d", argIdx))
		args = append(args, *dateRange.End)
		argIdx++
	}

	if len(conditions) > 0 {
		sqlQuery += " WHERE " + strings.Join(conditions, " AND ")
	}
	sqlQuery += " ORDER BY id"

	return r.selectSites(ctx, "date_range", sqlQuery, args...)
}

func (r *siteRepository) ListInBoundingBox(ctx context.Context, box domain.BoundingBox) ([]*domain.Site, error) {
	query := `
		SELECT ` + siteColumns + `
		FROM historical_sites
		WHERE latitude BETWEEN $1 AND $2
		  AND longitude BETWEEN $3 AND $4
		ORDER BY id
	`
	return r.selectSites(ctx, "bbox", query, box.MinLat, box.MaxLat, box.MinLon, box.MaxLon)
}

func (r *siteRepository) selectSites(ctx context.Context, op, query string, args ...interface{}) ([]*domain.Site, error) {
	sites := make([]*domain.Site, 0)
	start := time.Now()
	err := sqlx.SelectContext(ctx, r.db, &sites, query, args...)
	observe("select", tableSites, start, err)

	if err != nil {
		r.logger.Error("Failed to select historical sites", zap.String("op", op), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	return sites, nil
}

// ignoreNoRows - отсутствие строки не считается ошибкой запроса в метриках
func ignoreNoRows(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	return err
}
