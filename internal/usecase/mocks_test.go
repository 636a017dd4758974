package usecase_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/heritage-catalog/internal/domain"
	apperrors "github.com/heritage-catalog/internal/pkg/errors"
)

// MockSiteRepository is a mock of SiteRepository
type MockSiteRepository struct {
	mock.Mock
}

func (m *MockSiteRepository) Create(ctx context.Context, site *domain.Site) error {
	args := m.Called(ctx, site)
	return args.Error(0)
}

func (m *MockSiteRepository) GetByID(ctx context.Context, id int64) (*domain.Site, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Site), args.Error(1)
}

func (m *MockSiteRepository) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockSiteRepository) List(ctx context.Context) ([]*domain.Site, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Site), args.Error(1)
}

func (m *MockSiteRepository) Update(ctx context.Context, id int64, update domain.SiteUpdate) (*domain.Site, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Site), args.Error(1)
}

func (m *MockSiteRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSiteRepository) SearchText(ctx context.Context, query string, tags []string) ([]*domain.Site, error) {
	args := m.Called(ctx, query, tags)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Site), args.Error(1)
}

func (m *MockSiteRepository) ListByDateRange(ctx context.Context, dateRange domain.DateRange) ([]*domain.Site, error) {
	args := m.Called(ctx, dateRange)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Site), args.Error(1)
}

func (m *MockSiteRepository) ListInBoundingBox(ctx context.Context, box domain.BoundingBox) ([]*domain.Site, error) {
	args := m.Called(ctx, box)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Site), args.Error(1)
}

// MockContributionRepository is a mock of ContributionRepository
type MockContributionRepository struct {
	mock.Mock
}

func (m *MockContributionRepository) Create(ctx context.Context, c *domain.Contribution) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockContributionRepository) GetByID(ctx context.Context, id int64) (*domain.Contribution, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contribution), args.Error(1)
}

func (m *MockContributionRepository) List(ctx context.Context) ([]*domain.Contribution, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Contribution), args.Error(1)
}

func (m *MockContributionRepository) ListByStatus(ctx context.Context, status domain.ContributionStatus) ([]*domain.Contribution, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Contribution), args.Error(1)
}

func (m *MockContributionRepository) Update(ctx context.Context, id int64, update domain.ContributionUpdate) (*domain.Contribution, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contribution), args.Error(1)
}

func (m *MockContributionRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockContributionRepository) TransitionStatus(ctx context.Context, id int64, from, to domain.ContributionStatus) (*domain.Contribution, error) {
	args := m.Called(ctx, id, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contribution), args.Error(1)
}

// MockEventRepository is a mock of EventRepository
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Create(ctx context.Context, e *domain.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *MockEventRepository) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockEventRepository) List(ctx context.Context, siteID *int64) ([]*domain.Event, error) {
	args := m.Called(ctx, siteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Event), args.Error(1)
}

func (m *MockEventRepository) Update(ctx context.Context, id int64, update domain.EventUpdate) (*domain.Event, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *MockEventRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCommentRepository is a mock of CommentRepository
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, c *domain.Comment) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByTarget(ctx context.Context, target domain.CommentTarget) ([]*domain.Comment, error) {
	args := m.Called(ctx, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Comment), args.Error(1)
}

func (m *MockCommentRepository) UpdateContent(ctx context.Context, id int64, content string) (*domain.Comment, error) {
	args := m.Called(ctx, id, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUserRepository is a mock of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, id int64, update domain.UserUpdate) (*domain.User, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockModerationRepository is a mock of ModerationRepository
type MockModerationRepository struct {
	mock.Mock
}

func (m *MockModerationRepository) Record(ctx context.Context, rec *domain.ModerationRecord) (bool, error) {
	args := m.Called(ctx, rec)
	return args.Bool(0), args.Error(1)
}

func (m *MockModerationRepository) ListByContribution(ctx context.Context, contributionID int64) ([]*domain.ModerationRecord, error) {
	args := m.Called(ctx, contributionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ModerationRecord), args.Error(1)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) Counter(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCacheRepository) Incr(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) ClaimPending(ctx context.Context, stream, group, consumer string, minIdle time.Duration, start string, count int) ([]domain.StreamMessage, string, error) {
	args := m.Called(ctx, stream, group, consumer, minIdle, start, count)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]domain.StreamMessage), args.String(1), args.Error(2)
}

func (m *MockStreamRepository) AckMessages(ctx context.Context, stream, group string, messageIDs []string) error {
	args := m.Called(ctx, stream, group, messageIDs)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

// memorySiteRepository is an in-memory SiteRepository used by the search
// property tests; it returns sites in insertion order, not by id.
type memorySiteRepository struct {
	sites []*domain.Site
}

func (r *memorySiteRepository) Create(_ context.Context, site *domain.Site) error {
	for _, s := range r.sites {
		if s.Name == site.Name {
			return apperrors.ErrSiteAlreadyExists
		}
	}
	r.sites = append(r.sites, site)
	return nil
}

func (r *memorySiteRepository) GetByID(_ context.Context, id int64) (*domain.Site, error) {
	for _, s := range r.sites {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, apperrors.ErrSiteNotFound
}

func (r *memorySiteRepository) Exists(ctx context.Context, id int64) (bool, error) {
	_, err := r.GetByID(ctx, id)
	return err == nil, nil
}

func (r *memorySiteRepository) List(_ context.Context) ([]*domain.Site, error) {
	return append([]*domain.Site{}, r.sites...), nil
}

func (r *memorySiteRepository) Update(ctx context.Context, id int64, update domain.SiteUpdate) (*domain.Site, error) {
	s, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	update.Apply(s)
	return s, nil
}

func (r *memorySiteRepository) Delete(_ context.Context, id int64) error {
	for i, s := range r.sites {
		if s.ID == id {
			r.sites = append(r.sites[:i], r.sites[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrSiteNotFound
}

func (r *memorySiteRepository) SearchText(_ context.Context, query string, tags []string) ([]*domain.Site, error) {
	q := strings.ToLower(query)
	result := make([]*domain.Site, 0)
	for _, s := range r.sites {
		if q != "" && !strings.Contains(strings.ToLower(s.Name), q) && !strings.Contains(strings.ToLower(s.Description), q) {
			continue
		}
		if len(tags) > 0 && !s.Tags.Intersects(tags) {
			continue
		}
		result = append(result, s)
	}
	sortByID(result)
	return result, nil
}

func (r *memorySiteRepository) ListByDateRange(_ context.Context, dateRange domain.DateRange) ([]*domain.Site, error) {
	result := make([]*domain.Site, 0)
	for _, s := range r.sites {
		if dateRange.Matches(s.DateEstablished) {
			result = append(result, s)
		}
	}
	sortByID(result)
	return result, nil
}

func (r *memorySiteRepository) ListInBoundingBox(_ context.Context, box domain.BoundingBox) ([]*domain.Site, error) {
	result := make([]*domain.Site, 0)
	for _, s := range r.sites {
		if box.Contains(s.Latitude, s.Longitude) {
			result = append(result, s)
		}
	}
	return result, nil
}

func sortByID(sites []*domain.Site) {
	sort.Slice(sites, func(i, j int) bool { return sites[i].ID < sites[j].ID })
}

func ptrString(s string) *string    { return &s }
func ptrFloat64(f float64) *float64 { return &f }
func ptrInt64(i int64) *int64       { return &i }
func ptrBool(b bool) *bool          { return &b }

// racingSiteRepository runs duringRead once, after GetByID has copied the row
// and before it returns, to simulate a write committing mid-read.
type racingSiteRepository struct {
	memorySiteRepository
	duringRead func()
	reads      int
}

func (r *racingSiteRepository) GetByID(ctx context.Context, id int64) (*domain.Site, error) {
	r.reads++
	site, err := r.memorySiteRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	snapshot := *site

	if hook := r.duringRead; hook != nil {
		r.duringRead = nil
		hook()
	}
	return &snapshot, nil
}

// memoryCacheRepository is an in-memory CacheRepository without expiry
type memoryCacheRepository struct {
	mu       sync.Mutex
	values   map[string][]byte
	counters map[string]int64
}

func newMemoryCacheRepository() *memoryCacheRepository {
	return &memoryCacheRepository{
		values:   make(map[string][]byte),
		counters: make(map[string]int64),
	}
}

func (r *memoryCacheRepository) Get(_ context.Context, key string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.values[key], nil
}

func (r *memoryCacheRepository) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = value
	return nil
}

func (r *memoryCacheRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.values, key)
	return nil
}

func (r *memoryCacheRepository) Counter(_ context.Context, key string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counters[key], nil
}

func (r *memoryCacheRepository) Incr(_ context.Context, key string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counters[key]++
	return r.counters[key], nil
}
