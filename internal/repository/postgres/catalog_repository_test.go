package postgres_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/heritage-catalog/internal/domain"
	"github.com/heritage-catalog/internal/domain/repository"
	apperrors "github.com/heritage-catalog/internal/pkg/errors"
	"github.com/heritage-catalog/internal/repository/postgres/testhelpers"
)

// CatalogRepositoryTestSuite covers events, comments, users and the moderation log
type CatalogRepositoryTestSuite struct {
	dbSuite
	events     repository.EventRepository
	comments   repository.CommentRepository
	users      repository.UserRepository
	moderation repository.ModerationRepository
}

func (s *CatalogRepositoryTestSuite) SetupSuite() {
	s.dbSuite.SetupSuite()
	s.events = testhelpers.NewEventRepositoryForTest(s.testDB.DB, s.testDB.Logger)
	s.comments = testhelpers.NewCommentRepositoryForTest(s.testDB.DB, s.testDB.Logger)
	s.users = testhelpers.NewUserRepositoryForTest(s.testDB.DB, s.testDB.Logger)
	s.moderation = testhelpers.NewModerationRepositoryForTest(s.testDB.DB, s.testDB.Logger)
}

// ============================================================================
// Events
// ============================================================================

func (s *CatalogRepositoryTestSuite) TestEvents_ListBySite() {
	siteID := s.siteID("Federal Hall")

	events, err := s.events.List(s.ctx, &siteID)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal("Washington Inauguration", events[0].Title)
	s.Equal(domain.StringList{"George Washington"}, events[0].Participants)

	all, err := s.events.List(s.ctx, nil)
	s.Require().NoError(err)
	s.Len(all, 3)
}

func (s *CatalogRepositoryTestSuite) TestEvents_CreateUnknownSite() {
	siteID := int64(999999)
	err := s.events.Create(s.ctx, &domain.Event{Title: "x", Date: time.Now(), SiteID: &siteID})

	s.True(apperrors.Is(err, apperrors.ErrSiteNotFound))
}

func (s *CatalogRepositoryTestSuite) TestEvents_UpdateAndDelete() {
	id := s.eventID("Great Fire")
	eventType := "fire"

	updated, err := s.events.Update(s.ctx, id, domain.EventUpdate{EventType: &eventType})
	s.Require().NoError(err)
	s.Equal("fire", updated.EventType)
	s.Equal("Fire in lower Manhattan", updated.Description)

	s.Require().NoError(s.events.Delete(s.ctx, id))
	_, err = s.events.GetByID(s.ctx, id)
	s.True(apperrors.Is(err, apperrors.ErrEventNotFound))
}

// ============================================================================
// Comments
// ============================================================================

func (s *CatalogRepositoryTestSuite) TestComments_SiteAndEventTargets() {
	userID := s.userID("bob")
	siteComment := &domain.Comment{UserID: userID, Target: domain.SiteTarget(s.siteID("Old Fort")), Content: "Great walls"}
	eventComment := &domain.Comment{UserID: userID, Target: domain.EventTarget(s.eventID("Great Fire")), Content: "Tragic"}

	s.Require().NoError(s.comments.Create(s.ctx, siteComment))
	s.Require().NoError(s.comments.Create(s.ctx, eventComment))

	got, err := s.comments.GetByID(s.ctx, eventComment.ID)
	s.Require().NoError(err)
	s.Equal(domain.CommentOnEvent, got.Target.Kind)

	bySite, err := s.comments.ListByTarget(s.ctx, siteComment.Target)
	s.Require().NoError(err)
	s.Require().Len(bySite, 1)
	s.Equal("Great walls", bySite[0].Content)
}

func (s *CatalogRepositoryTestSuite) TestComments_BothParentsRejectedByCheck() {
	_, err := s.testDB.DB.Exec(
		`INSERT INTO comments (user_id, site_id, event_id, content) VALUES ($1, $2, $3, 'x')`,
		s.userID("bob"), s.siteID("Old Fort"), s.eventID("Great Fire"))

	s.Error(err)
}

func (s *CatalogRepositoryTestSuite) TestComments_UnknownParents() {
	userID := s.userID("bob")

	err := s.comments.Create(s.ctx, &domain.Comment{UserID: userID, Target: domain.EventTarget(999999), Content: "x"})
	s.True(apperrors.Is(err, apperrors.ErrEventNotFound))

	err = s.comments.Create(s.ctx, &domain.Comment{UserID: 999999, Target: domain.SiteTarget(s.siteID("Old Fort")), Content: "x"})
	s.True(apperrors.Is(err, apperrors.ErrUserNotFound))
}

func (s *CatalogRepositoryTestSuite) TestComments_UpdateContent() {
	c := &domain.Comment{UserID: s.userID("alice"), Target: domain.SiteTarget(s.siteID("Old Fort")), Content: "v1"}
	s.Require().NoError(s.comments.Create(s.ctx, c))

	updated, err := s.comments.UpdateContent(s.ctx, c.ID, "v2")

	s.Require().NoError(err)
	s.Equal("v2", updated.Content)
	s.Equal(c.Target, updated.Target)

	_, err = s.comments.UpdateContent(s.ctx, 999999, "v3")
	s.True(apperrors.Is(err, apperrors.ErrCommentNotFound))
}

// ============================================================================
// Users
// ============================================================================

func (s *CatalogRepositoryTestSuite) TestUsers_DuplicateUsername() {
	err := s.users.Create(s.ctx, &domain.User{Username: "alice", HashedPassword: "hash"})

	s.True(apperrors.Is(err, apperrors.ErrUserAlreadyExists))
}

func (s *CatalogRepositoryTestSuite) TestUsers_UpdateAndDeleteNullsContributionUser() {
	id := s.userID("bob")
	email := "bob@example.org"

	updated, err := s.users.Update(s.ctx, id, domain.UserUpdate{Email: &email})
	s.Require().NoError(err)
	s.Require().NotNil(updated.Email)
	s.Equal(email, *updated.Email)
	s.False(updated.IsAdmin)

	_, err = s.testDB.DB.Exec(
		`INSERT INTO user_contributions (historical_site_id, user_id, contributor_name, contribution_details) VALUES ($1, $2, 'bob', 'y')`,
		s.siteID("Old Fort"), id)
	s.Require().NoError(err)

	s.Require().NoError(s.users.Delete(s.ctx, id))

	var userID *int64
	s.Require().NoError(s.testDB.DB.Get(&userID, `SELECT user_id FROM user_contributions LIMIT 1`))
	s.Nil(userID)
}

// ============================================================================
// Moderation log
// ============================================================================

func (s *CatalogRepositoryTestSuite) TestModeration_RecordIsIdempotent() {
	rec := &domain.ModerationRecord{
		EventID:        uuid.New(),
		ContributionID: 42,
		SiteID:         s.siteID("Old Fort"),
		FromStatus:     domain.ContributionPending,
		ToStatus:       domain.ContributionApproved,
		OccurredAt:     time.Now().UTC().Truncate(time.Millisecond),
	}

	inserted, err := s.moderation.Record(s.ctx, rec)
	s.Require().NoError(err)
	s.True(inserted)

	dup := *rec
	inserted, err = s.moderation.Record(s.ctx, &dup)
	s.Require().NoError(err)
	s.False(inserted)

	history, err := s.moderation.ListByContribution(s.ctx, 42)
	s.Require().NoError(err)
	s.Require().Len(history, 1)
	s.Equal(rec.EventID, history[0].EventID)
	s.Equal(domain.ContributionApproved, history[0].ToStatus)
}

// TestCatalogRepositorySuite runs the test suite
func TestCatalogRepositorySuite(t *testing.T) {
	suite.Run(t, new(CatalogRepositoryTestSuite))
}
