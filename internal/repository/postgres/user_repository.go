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

const tableUsers = "users"

const userColumns = `id, username, hashed_password, email, is_admin, created_at`

type userRepository struct {
	db     *DB
	logger *zap.Logger
}

func NewUserRepository(db *DB) repository.UserRepository {
	return &userRepository{
		db:     db,
		logger: db.logger,
	}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (username, hashed_password, email, is_admin)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	start := time.Now()
	err := r.db.QueryRowxContext(ctx, query, u.Username, u.HashedPassword, u.Email, u.IsAdmin).
		Scan(&u.ID, &u.CreatedAt)
	observe("insert", tableUsers, start, err)

	if isUniqueViolation(err) {
		return apperrors.ErrUserAlreadyExists.WithDetails(map[string]interface{}{
			"username": u.Username,
		})
	}
	if err != nil {
		r.logger.Error("Failed to create user", zap.String("username", u.Username), zap.Error(err))
		return apperrors.ErrDatabaseError
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	start := time.Now()
	err := sqlx.GetContext(ctx, r.db, &u, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	observe("select", tableUsers, start, ignoreNoRows(err))

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get user by ID", zap.Int64("id", id), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	return &u, nil
}

func (r *userRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	start := time.Now()
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
	observe("select", tableUsers, start, err)

	if err != nil {
		r.logger.Error("Failed to check user existence", zap.Int64("id", id), zap.Error(err))
		return false, apperrors.ErrDatabaseError
	}
	return exists, nil
}

func (r *userRepository) List(ctx context.Context) ([]*domain.User, error) {
	users := make([]*domain.User, 0)
	start := time.Now()
	err := sqlx.SelectContext(ctx, r.db, &users, `SELECT `+userColumns+` FROM users ORDER BY id`)
	observe("select", tableUsers, start, err)

	if err != nil {
		r.logger.Error("Failed to list users", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, id int64, update domain.UserUpdate) (*domain.User, error) {
	var u domain.User
	start := time.Now()
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id); err != nil {
			return err
		}

		update.Apply(&u)

		_, err := tx.ExecContext(ctx, `UPDATE users SET email = $2, is_admin = $3 WHERE id = $1`,
			id, u.Email, u.IsAdmin)
		return err
	})
	observe("update", tableUsers, start, ignoreNoRows(err))

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		r.logger.Error("Failed to update user", zap.Int64("id", id), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	return &u, nil
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	start := time.Now()
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	affected, err := rowsAffected(res, err)
	observe("delete", tableUsers, start, err)

	if err != nil {
		r.logger.Error("Failed to delete user", zap.Int64("id", id), zap.Error(err))
		return apperrors.ErrDatabaseError
	}
	if affected == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}
