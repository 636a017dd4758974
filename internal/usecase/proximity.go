package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/heritage-catalog/internal/config"
	"github.com/heritage-catalog/internal/domain"
	"github.com/heritage-catalog/internal/domain/repository"
	"github.com/heritage-catalog/internal/pkg/utils"
)

// ProximitySearcher находит места, до которых по haversine не дальше radiusKm.
// Результат отсортирован по ID, у каждого места заполнено расстояние.
type ProximitySearcher interface {
	Nearby(ctx context.Context, center domain.Point, radiusKm float64) ([]domain.SiteWithDistance, error)
	Strategy() string
}

// NewProximitySearcher выбирает реализацию по имени стратегии из конфигурации
func NewProximitySearcher(strategy string, siteRepo repository.SiteRepository) (ProximitySearcher, error) {
	switch strategy {
	case config.ProximityScan:
		return &scanSearcher{siteRepo: siteRepo}, nil
	case config.ProximityBBox, "":
		return &bboxSearcher{siteRepo: siteRepo}, nil
	default:
		return nil, fmt.Errorf("unknown proximity strategy %q", strategy)
	}
}

// scanSearcher - полный перебор каталога
type scanSearcher struct {
	siteRepo repository.SiteRepository
}

func (s *scanSearcher) Strategy() string { return config.ProximityScan }

func (s *scanSearcher) Nearby(ctx context.Context, center domain.Point, radiusKm float64) ([]domain.SiteWithDistance, error) {
	sites, err := s.siteRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return filterByDistance(sites, center, radiusKm), nil
}

// bboxSearcher - предварительный отбор по прямоугольнику, затем точный haversine
type bboxSearcher struct {
	siteRepo repository.SiteRepository
}

func (s *bboxSearcher) Strategy() string { return config.ProximityBBox }

func (s *bboxSearcher) Nearby(ctx context.Context, center domain.Point, radiusKm float64) ([]domain.SiteWithDistance, error) {
	box := utils.BoundingBoxForRadius(center.Lat, center.Lon, radiusKm)

	sites, err := s.siteRepo.ListInBoundingBox(ctx, box)
	if err != nil {
		return nil, err
	}
	return filterByDistance(sites, center, radiusKm), nil
}

func filterByDistance(sites []*domain.Site, center domain.Point, radiusKm float64) []domain.SiteWithDistance {
	result := make([]domain.SiteWithDistance, 0)
	for _, site := range sites {
		d := utils.HaversineDistance(center.Lat, center.Lon, site.Latitude, site.Longitude)
		if d <= radiusKm {
			result = append(result, domain.SiteWithDistance{Site: *site, DistanceKm: d})
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}
