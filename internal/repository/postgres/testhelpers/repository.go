package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/heritage-catalog/internal/domain/repository"
	"github.com/heritage-catalog/internal/repository/postgres"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// NewSiteRepositoryForTest creates a site repository with test database and logger
func NewSiteRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.SiteRepository {
	return postgres.NewSiteRepository(NewDBForTest(db, logger))
}

// NewContributionRepositoryForTest creates a contribution repository with test database and logger
func NewContributionRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.ContributionRepository {
	return postgres.NewContributionRepository(NewDBForTest(db, logger))
}

// NewEventRepositoryForTest creates an event repository with test database and logger
func NewEventRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.EventRepository {
	return postgres.NewEventRepository(NewDBForTest(db, logger))
}

// NewCommentRepositoryForTest creates a comment repository with test database and logger
func NewCommentRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.CommentRepository {
	return postgres.NewCommentRepository(NewDBForTest(db, logger))
}

// NewUserRepositoryForTest creates a user repository with test database and logger
func NewUserRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.UserRepository {
	return postgres.NewUserRepository(NewDBForTest(db, logger))
}

// NewModerationRepositoryForTest creates a moderation repository with test database and logger
func NewModerationRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.ModerationRepository {
	return postgres.NewModerationRepository(NewDBForTest(db, logger))
}
