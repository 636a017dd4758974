package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/heritage-catalog/internal/config"
	"github.com/heritage-catalog/internal/domain"
	apperrors "github.com/heritage-catalog/internal/pkg/errors"
	"github.com/heritage-catalog/internal/pkg/metrics"
	"github.com/heritage-catalog/internal/usecase"
	"github.com/heritage-catalog/internal/usecase/dto"
)

func fixtureCatalog() *memorySiteRepository {
	return &memorySiteRepository{sites: []*domain.Site{
		{ID: 1, Name: "Old Fort", Description: "Harbour defences", Tags: domain.StringList{"military"}},
		{ID: 2, Name: "Federal Hall", Description: "First capitol, near the old fort wall", Tags: domain.StringList{"government"}},
		{ID: 3, Name: "Brooklyn Bridge", Description: "Suspension bridge", Tags: domain.StringList{"bridge"}},
	}}
}

func newSearchUseCase(t *testing.T, repo *memorySiteRepository, cache *usecase.CatalogCache, maxRadius float64) *usecase.SearchUseCase {
	t.Helper()
	prox, err := usecase.NewProximitySearcher(config.ProximityBBox, repo)
	require.NoError(t, err)
	return usecase.NewSearchUseCase(repo, prox, cache, maxRadius, zap.NewNop())
}

func names(sites []*domain.Site) []string {
	out := make([]string, 0, len(sites))
	for _, s := range sites {
		out = append(out, s.Name)
	}
	return out
}

func TestSearchUseCase_Search(t *testing.T) {
	ctx := context.Background()
	repo := fixtureCatalog()
	uc := newSearchUseCase(t, repo, nil, 0)

	t.Run("no criteria returns full catalog", func(t *testing.T) {
		got, err := uc.Search(ctx, dto.SearchSitesRequest{})
		require.NoError(t, err)
		all, _ := repo.List(ctx)
		assert.Len(t, got, len(all))
	})

	t.Run("blank query is treated as absent", func(t *testing.T) {
		got, err := uc.Search(ctx, dto.SearchSitesRequest{Query: "   "})
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("case insensitive substring in name or description", func(t *testing.T) {
		for _, q := range []string{"fort", "FORT"} {
			got, err := uc.Search(ctx, dto.SearchSitesRequest{Query: q})
			require.NoError(t, err)
			assert.Equal(t, []string{"Old Fort", "Federal Hall"}, names(got), q)
		}
	})

	t.Run("tags any match with comma separated values", func(t *testing.T) {
		got, err := uc.Search(ctx, dto.SearchSitesRequest{Tags: []string{"bridge, military", ""}})
		require.NoError(t, err)
		assert.Equal(t, []string{"Old Fort", "Brooklyn Bridge"}, names(got))
	})

	t.Run("query and tags are combined with AND", func(t *testing.T) {
		got, err := uc.Search(ctx, dto.SearchSitesRequest{Query: "fort", Tags: []string{"government"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"Federal Hall"}, names(got))
	})

	t.Run("no match is an empty list", func(t *testing.T) {
		got, err := uc.Search(ctx, dto.SearchSitesRequest{Query: "pyramid"})
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestSearchUseCase_SearchNormalizesBeforeRepository(t *testing.T) {
	ctx := context.Background()
	repo := &MockSiteRepository{}
	prox, _ := usecase.NewProximitySearcher(config.ProximityScan, repo)
	uc := usecase.NewSearchUseCase(repo, prox, nil, 0, zap.NewNop())

	repo.On("SearchText", ctx, "fort", []string{"a", "b"}).Return([]*domain.Site{}, nil).Once()

	_, err := uc.Search(ctx, dto.SearchSitesRequest{Query: "  fort ", Tags: []string{"a,b", "a"}})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestSearchUseCase_SearchTagLimitAfterSplit(t *testing.T) {
	ctx := context.Background()
	repo := &MockSiteRepository{}
	prox, _ := usecase.NewProximitySearcher(config.ProximityScan, repo)
	uc := usecase.NewSearchUseCase(repo, prox, nil, 0, zap.NewNop())

	t.Run("too many distinct tags in one parameter", func(t *testing.T) {
		tags := make([]string, 51)
		for i := range tags {
			tags[i] = fmt.Sprintf("t%d", i)
		}

		_, err := uc.Search(ctx, dto.SearchSitesRequest{Tags: []string{strings.Join(tags, ",")}})

		require.Error(t, err)
		appErr, ok := apperrors.As(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrValidationFailed.Code, appErr.Code)
		assert.Contains(t, appErr.Details, "tags")
		repo.AssertNotCalled(t, "SearchText", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("overlong tag", func(t *testing.T) {
		_, err := uc.Search(ctx, dto.SearchSitesRequest{Tags: []string{strings.Repeat("x", 65)}})

		assert.True(t, apperrors.Is(err, apperrors.ErrValidationFailed))
	})

	t.Run("duplicates collapse below the limit", func(t *testing.T) {
		repeated := make([]string, 60)
		for i := range repeated {
			repeated[i] = "military"
		}
		repo.On("SearchText", ctx, "", []string{"military"}).Return([]*domain.Site{}, nil).Once()

		_, err := uc.Search(ctx, dto.SearchSitesRequest{Tags: repeated})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestSearchUseCase_RecordsSearchMetrics(t *testing.T) {
	ctx := context.Background()
	uc := newSearchUseCase(t, fixtureCatalog(), nil, 0)

	text := testutil.ToFloat64(metrics.SearchRequestsTotal.WithLabelValues("text", "store"))
	nearby := testutil.ToFloat64(metrics.SearchRequestsTotal.WithLabelValues("nearby", config.ProximityBBox))

	_, err := uc.Search(ctx, dto.SearchSitesRequest{Query: "fort"})
	require.NoError(t, err)
	_, err = uc.Nearby(ctx, dto.NearbySitesRequest{Latitude: 0, Longitude: 0, MaxDistance: 10})
	require.NoError(t, err)
	_, err = uc.Nearby(ctx, dto.NearbySitesRequest{Latitude: 0, Longitude: 0, MaxDistance: -1})
	require.Error(t, err)

	assert.Equal(t, text+1, testutil.ToFloat64(metrics.SearchRequestsTotal.WithLabelValues("text", "store")))
	assert.Equal(t, nearby+1, testutil.ToFloat64(metrics.SearchRequestsTotal.WithLabelValues("nearby", config.ProximityBBox)))
}

func TestSearchUseCase_SearchCache(t *testing.T) {
	ctx := context.Background()

	t.Run("hit skips the repository", func(t *testing.T) {
		cacheRepo := &MockCacheRepository{}
		cache := usecase.NewCatalogCache(cacheRepo, time.Minute, time.Minute, zap.NewNop())
		// empty store: anything returned must come from the cache
		uc := newSearchUseCase(t, &memorySiteRepository{}, cache, 0)

		cached, _ := json.Marshal([]*domain.Site{{ID: 7, Name: "Cached"}})
		cacheRepo.On("Counter", mock.Anything, "catalog:version").Return(int64(3), nil)
		cacheRepo.On("Get", mock.Anything, mock.MatchedBy(func(key string) bool {
			return len(key) > 0 && key[:10] == "search:v3:"
		})).Return(cached, nil)

		got, err := uc.Search(ctx, dto.SearchSitesRequest{Query: "anything"})

		require.NoError(t, err)
		assert.Equal(t, []string{"Cached"}, names(got))
		cacheRepo.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("miss stores the result", func(t *testing.T) {
		cacheRepo := &MockCacheRepository{}
		cache := usecase.NewCatalogCache(cacheRepo, time.Minute, 2*time.Minute, zap.NewNop())
		uc := newSearchUseCase(t, fixtureCatalog(), cache, 0)

		cacheRepo.On("Counter", mock.Anything, "catalog:version").Return(int64(0), nil)
		cacheRepo.On("Get", mock.Anything, mock.Anything).Return(nil, nil)
		cacheRepo.On("Set", mock.Anything, mock.Anything, mock.Anything, 2*time.Minute).Return(nil).Once()

		got, err := uc.Search(ctx, dto.SearchSitesRequest{Query: "bridge"})

		require.NoError(t, err)
		assert.Equal(t, []string{"Brooklyn Bridge"}, names(got))
		cacheRepo.AssertExpectations(t)
	})

	t.Run("cache faults fall through to the store", func(t *testing.T) {
		cacheRepo := &MockCacheRepository{}
		cache := usecase.NewCatalogCache(cacheRepo, time.Minute, time.Minute, zap.NewNop())
		uc := newSearchUseCase(t, fixtureCatalog(), cache, 0)

		cacheRepo.On("Counter", mock.Anything, mock.Anything).Return(int64(0), errors.New("connection refused"))

		got, err := uc.Search(ctx, dto.SearchSitesRequest{Query: "hall"})

		require.NoError(t, err)
		assert.Equal(t, []string{"Federal Hall"}, names(got))
		cacheRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})
}

func TestSearchUseCase_Nearby(t *testing.T) {
	ctx := context.Background()
	repo := &memorySiteRepository{sites: []*domain.Site{
		{ID: 1, Latitude: 0, Longitude: 0},
		{ID: 2, Latitude: 0, Longitude: 1},
	}}
	uc := newSearchUseCase(t, repo, nil, 20000)

	t.Run("negative radius is invalid", func(t *testing.T) {
		_, err := uc.Nearby(ctx, dto.NearbySitesRequest{MaxDistance: -1})
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidRadius))
	})

	t.Run("non finite radius is invalid", func(t *testing.T) {
		for _, r := range []float64{math.NaN(), math.Inf(1)} {
			_, err := uc.Nearby(ctx, dto.NearbySitesRequest{MaxDistance: r})
			assert.True(t, apperrors.Is(err, apperrors.ErrInvalidRadius))
		}
	})

	t.Run("radius above configured maximum is invalid", func(t *testing.T) {
		_, err := uc.Nearby(ctx, dto.NearbySitesRequest{MaxDistance: 20001})
		appErr, ok := apperrors.As(err)
		require.True(t, ok)
		assert.Equal(t, "INVALID_RADIUS", appErr.Code)
		assert.Equal(t, float64(20000), appErr.Details["max_allowed"])
	})

	t.Run("out of range coordinates are invalid", func(t *testing.T) {
		_, err := uc.Nearby(ctx, dto.NearbySitesRequest{Latitude: 91, MaxDistance: 10})
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidCoordinates))

		_, err = uc.Nearby(ctx, dto.NearbySitesRequest{Longitude: -181, MaxDistance: 10})
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidCoordinates))
	})

	t.Run("returns sites with distance", func(t *testing.T) {
		got, err := uc.Nearby(ctx, dto.NearbySitesRequest{MaxDistance: 120})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.InDelta(t, 111.19, got[1].DistanceKm, 0.01)
	})
}

func TestSearchUseCase_ByDateRange(t *testing.T) {
	ctx := context.Background()
	d := func(y int, m time.Month, day int) *time.Time {
		t := time.Date(y, m, day, 12, 0, 0, 0, time.UTC)
		return &t
	}
	repo := &memorySiteRepository{sites: []*domain.Site{
		{ID: 1, Name: "Colonial", DateEstablished: d(1700, 1, 1)},
		{ID: 2, Name: "Federal", DateEstablished: d(1789, 4, 30)},
		{ID: 3, Name: "Gilded", DateEstablished: d(1883, 5, 24)},
		{ID: 4, Name: "Undated"},
	}}
	uc := newSearchUseCase(t, repo, nil, 0)

	tests := []struct {
		name string
		req  dto.DateRangeRequest
		want []string
	}{
		{"no bounds returns all", dto.DateRangeRequest{}, []string{"Colonial", "Federal", "Gilded", "Undated"}},
		{"start only excludes undated", dto.DateRangeRequest{StartDate: "1789-04-30"}, []string{"Federal", "Gilded"}},
		{"bare end date includes the whole day", dto.DateRangeRequest{EndDate: "1789-04-30"}, []string{"Colonial", "Federal"}},
		{"both bounds inclusive", dto.DateRangeRequest{StartDate: "1789-04-30", EndDate: "1883-05-24"}, []string{"Federal", "Gilded"}},
		{"rfc3339 bound", dto.DateRangeRequest{StartDate: "1789-04-30T12:00:01Z"}, []string{"Gilded"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := uc.ByDateRange(ctx, tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(got))
		})
	}

	t.Run("start after end is invalid", func(t *testing.T) {
		_, err := uc.ByDateRange(ctx, dto.DateRangeRequest{StartDate: "1900-01-01", EndDate: "1800-01-01"})
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidDateRange))
	})

	t.Run("malformed date is invalid", func(t *testing.T) {
		_, err := uc.ByDateRange(ctx, dto.DateRangeRequest{StartDate: "last tuesday"})
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidDateRange))
	})
}
