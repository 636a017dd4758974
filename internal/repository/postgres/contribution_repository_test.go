package postgres_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/heritage-catalog/internal/domain"
	"github.com/heritage-catalog/internal/domain/repository"
	apperrors "github.com/heritage-catalog/internal/pkg/errors"
	"github.com/heritage-catalog/internal/repository/postgres/testhelpers"
)

// ContributionRepositoryTestSuite tests all methods of ContributionRepository
type ContributionRepositoryTestSuite struct {
	dbSuite
	repo repository.ContributionRepository
}

func (s *ContributionRepositoryTestSuite) SetupSuite() {
	s.dbSuite.SetupSuite()
	s.repo = testhelpers.NewContributionRepositoryForTest(s.testDB.DB, s.testDB.Logger)
}

func (s *ContributionRepositoryTestSuite) create(siteName string) *domain.Contribution {
	c := &domain.Contribution{
		SiteID:              s.siteID(siteName),
		ContributorName:     "Jane",
		ContributionDetails: "Found an old map",
		Images:              domain.StringList{"https://example.org/map.jpg"},
	}
	s.Require().NoError(s.repo.Create(s.ctx, c))
	return c
}

func (s *ContributionRepositoryTestSuite) TestCreate_DefaultsToPending() {
	c := s.create("Old Fort")

	s.NotZero(c.ID)
	s.Equal(domain.ContributionPending, c.Status)

	got, err := s.repo.GetByID(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Equal(domain.ContributionPending, got.Status)
	s.Equal(domain.StringList{"https://example.org/map.jpg"}, got.Images)
	s.Nil(got.UserID)
}

func (s *ContributionRepositoryTestSuite) TestCreate_UnknownSite() {
	err := s.repo.Create(s.ctx, &domain.Contribution{SiteID: 999999, ContributorName: "x", ContributionDetails: "y"})

	s.True(apperrors.Is(err, apperrors.ErrSiteNotFound))
}

func (s *ContributionRepositoryTestSuite) TestCreate_UnknownUser() {
	userID := int64(999999)
	err := s.repo.Create(s.ctx, &domain.Contribution{
		SiteID: s.siteID("Old Fort"), UserID: &userID, ContributorName: "x", ContributionDetails: "y",
	})

	s.True(apperrors.Is(err, apperrors.ErrUserNotFound))
}

func (s *ContributionRepositoryTestSuite) TestGetByID_NotFound() {
	_, err := s.repo.GetByID(s.ctx, 999999)

	s.True(apperrors.Is(err, apperrors.ErrContributionNotFound))
}

func (s *ContributionRepositoryTestSuite) TestApprove_MovesBetweenStatusLists() {
	c := s.create("Old Fort")

	approved, err := s.repo.TransitionStatus(s.ctx, c.ID, domain.ContributionPending, domain.ContributionApproved)
	s.Require().NoError(err)
	s.Equal(domain.ContributionApproved, approved.Status)

	pending, err := s.repo.ListByStatus(s.ctx, domain.ContributionPending)
	s.Require().NoError(err)
	s.Empty(pending)

	approvedList, err := s.repo.ListByStatus(s.ctx, domain.ContributionApproved)
	s.Require().NoError(err)
	s.Require().Len(approvedList, 1)
	s.Equal(c.ID, approvedList[0].ID)
}

func (s *ContributionRepositoryTestSuite) TestTransition_FromTerminalConflicts() {
	c := s.create("Old Fort")
	_, err := s.repo.TransitionStatus(s.ctx, c.ID, domain.ContributionPending, domain.ContributionRejected)
	s.Require().NoError(err)

	_, err = s.repo.TransitionStatus(s.ctx, c.ID, domain.ContributionPending, domain.ContributionApproved)

	s.True(apperrors.Is(err, apperrors.ErrInvalidStatusTransition))
	got, err := s.repo.GetByID(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Equal(domain.ContributionRejected, got.Status)
}

func (s *ContributionRepositoryTestSuite) TestTransition_NotFound() {
	_, err := s.repo.TransitionStatus(s.ctx, 999999, domain.ContributionPending, domain.ContributionApproved)

	s.True(apperrors.Is(err, apperrors.ErrContributionNotFound))
}

func (s *ContributionRepositoryTestSuite) TestTransition_ConcurrentModeratorsOnlyOneWins() {
	c := s.create("Old Fort")

	var wg sync.WaitGroup
	results := make([]error, 2)
	targets := []domain.ContributionStatus{domain.ContributionApproved, domain.ContributionRejected}
	for i := range targets {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = s.repo.TransitionStatus(s.ctx, c.ID, domain.ContributionPending, targets[i])
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		} else {
			s.True(apperrors.Is(err, apperrors.ErrInvalidStatusTransition))
		}
	}
	s.Equal(1, succeeded)
}

func (s *ContributionRepositoryTestSuite) TestUpdate_DoesNotTouchStatus() {
	c := s.create("Old Fort")
	details := "Corrected details"

	updated, err := s.repo.Update(s.ctx, c.ID, domain.ContributionUpdate{ContributionDetails: &details})

	s.Require().NoError(err)
	s.Equal(details, updated.ContributionDetails)
	s.Equal("Jane", updated.ContributorName)
	s.Equal(domain.ContributionPending, updated.Status)
}

func (s *ContributionRepositoryTestSuite) TestDelete() {
	c := s.create("Old Fort")

	s.Require().NoError(s.repo.Delete(s.ctx, c.ID))
	s.True(apperrors.Is(s.repo.Delete(s.ctx, c.ID), apperrors.ErrContributionNotFound))
}

func (s *ContributionRepositoryTestSuite) TestList() {
	s.create("Old Fort")
	s.create("Federal Hall")

	all, err := s.repo.List(s.ctx)

	s.Require().NoError(err)
	s.Len(all, 2)
}

// TestContributionRepositorySuite runs the test suite
func TestContributionRepositorySuite(t *testing.T) {
	suite.Run(t, new(ContributionRepositoryTestSuite))
}
