package postgres_test

import (
	"context"

	"github.com/stretchr/testify/suite"

	"github.com/heritage-catalog/internal/repository/postgres/testhelpers"
)

const (
	migrationsPath = "../../../migrations"
	fixturesPath   = "testdata/fixtures"
)

// dbSuite is embedded by repository suites: it connects once and
// reloads fixtures before every test so tests can mutate freely.
type dbSuite struct {
	suite.Suite
	testDB *testhelpers.TestDB
	ctx    context.Context
}

func (s *dbSuite) SetupSuite() {
	s.testDB = testhelpers.SetupTestDB(s.T())

	err := testhelpers.ApplyMigrations(s.testDB.DB.DB, migrationsPath)
	s.Require().NoError(err, "Failed to apply migrations")
}

func (s *dbSuite) TearDownSuite() {
	if s.testDB != nil {
		s.testDB.Close()
	}
}

func (s *dbSuite) SetupTest() {
	s.ctx = context.Background()

	s.Require().NoError(s.testDB.Cleanup(s.ctx), "Failed to cleanup test database")
	err := testhelpers.LoadFixtures(s.testDB.DB.DB, fixturesPath, []string{
		"sites.sql",
		"users.sql",
		"events.sql",
	})
	s.Require().NoError(err, "Failed to load fixtures")
}

func (s *dbSuite) siteID(name string) int64 {
	id, err := testhelpers.GetSiteIDByName(s.testDB.DB.DB, name)
	s.Require().NoError(err)
	return id
}

func (s *dbSuite) userID(username string) int64 {
	id, err := testhelpers.GetUserIDByUsername(s.testDB.DB.DB, username)
	s.Require().NoError(err)
	return id
}

func (s *dbSuite) eventID(title string) int64 {
	id, err := testhelpers.GetEventIDByTitle(s.testDB.DB.DB, title)
	s.Require().NoError(err)
	return id
}

func (s *dbSuite) count(table string) int {
	var n int
	s.Require().NoError(s.testDB.DB.Get(&n, "SELECT COUNT(*) FROM "+table))
	return n
}
