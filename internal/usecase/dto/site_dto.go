package dto

import (
	"strings"
	"time"

	"github.com/heritage-catalog/internal/domain"
	"github.com/heritage-catalog/internal/pkg/errors"
	"github.com/heritage-catalog/internal/pkg/utils"
)

// CreateSiteRequest - запрос на создание исторического места
type CreateSiteRequest struct {
	Name            string   `json:"name" validate:"required,min=1,max=255"`
	Description     string   `json:"description" validate:"max=10000"`
	Latitude        *float64 `json:"latitude" validate:"required"`
	Longitude       *float64 `json:"longitude" validate:"required"`
	Address         *string  `json:"address,omitempty" validate:"omitempty,max=500"`
	Era             string   `json:"era" validate:"max=100"`
	Tags            []string `json:"tags,omitempty" validate:"omitempty,max=50,dive,min=1,max=64"`
	Images          []string `json:"images,omitempty" validate:"omitempty,max=50,dive,url"`
	AudioGuideURL   *string  `json:"audio_guide_url,omitempty" validate:"omitempty,url"`
	Verified        bool     `json:"verified"`
	DateEstablished *string  `json:"date_established,omitempty"`
}

// ToDomain собирает доменную модель; дата принимается как RFC 3339 или YYYY-MM-DD
func (r CreateSiteRequest) ToDomain() (*domain.Site, error) {
	established, err := parseBodyDate("date_established", r.DateEstablished)
	if err != nil {
		return nil, err
	}

	return &domain.Site{
		Name:            strings.TrimSpace(r.Name),
		Description:     r.Description,
		Latitude:        *r.Latitude,
		Longitude:       *r.Longitude,
		Address:         r.Address,
		Era:             r.Era,
		Tags:            domain.StringList(nonNil(r.Tags)),
		Images:          domain.StringList(nonNil(r.Images)),
		AudioGuideURL:   r.AudioGuideURL,
		Verified:        r.Verified,
		DateEstablished: established,
	}, nil
}

// UpdateSiteRequest - частичное обновление; отсутствующие поля не меняются
type UpdateSiteRequest struct {
	Name            *string   `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description     *string   `json:"description,omitempty" validate:"omitempty,max=10000"`
	Latitude        *float64  `json:"latitude,omitempty"`
	Longitude       *float64  `json:"longitude,omitempty"`
	Address         *string   `json:"address,omitempty" validate:"omitempty,max=500"`
	Era             *string   `json:"era,omitempty" validate:"omitempty,max=100"`
	Tags            *[]string `json:"tags,omitempty" validate:"omitempty,max=50,dive,min=1,max=64"`
	Images          *[]string `json:"images,omitempty" validate:"omitempty,max=50,dive,url"`
	AudioGuideURL   *string   `json:"audio_guide_url,omitempty" validate:"omitempty,url"`
	Verified        *bool     `json:"verified,omitempty"`
	DateEstablished *string   `json:"date_established,omitempty"`
}

func (r UpdateSiteRequest) ToDomain() (domain.SiteUpdate, error) {
	established, err := parseBodyDate("date_established", r.DateEstablished)
	if err != nil {
		return domain.SiteUpdate{}, err
	}

	update := domain.SiteUpdate{
		Description:     r.Description,
		Latitude:        r.Latitude,
		Longitude:       r.Longitude,
		Address:         r.Address,
		Era:             r.Era,
		Tags:            r.Tags,
		Images:          r.Images,
		AudioGuideURL:   r.AudioGuideURL,
		Verified:        r.Verified,
		DateEstablished: established,
	}
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		update.Name = &name
	}
	return update, nil
}

// SearchSitesRequest - текстовый поиск и фильтр по тегам (любое совпадение).
// Лимиты тегов действуют на результат Normalize.
type SearchSitesRequest struct {
	Query string   `json:"query" query:"query" validate:"max=255"`
	Tags  []string `json:"tags" query:"tags" validate:"max=50,dive,max=64"`
}

// Normalize обрезает пробелы, раскрывает теги через запятую и убирает пустые и повторы
func (r SearchSitesRequest) Normalize() SearchSitesRequest {
	out := SearchSitesRequest{Query: strings.TrimSpace(r.Query)}

	seen := make(map[string]struct{})
	for _, raw := range r.Tags {
		for _, tag := range strings.Split(raw, ",") {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			out.Tags = append(out.Tags, tag)
		}
	}
	return out
}

// NearbySitesRequest - поиск в радиусе max_distance километров
type NearbySitesRequest struct {
	Latitude    float64 `query:"latitude"`
	Longitude   float64 `query:"longitude"`
	MaxDistance float64 `query:"max_distance"`
}

// DateRangeRequest - границы по date_established, обе необязательные и включительные
type DateRangeRequest struct {
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
}

// ToDomain разбирает границы; start > end - ошибка
func (r DateRangeRequest) ToDomain() (domain.DateRange, error) {
	start, err := utils.ParseOptionalDate(r.StartDate, false)
	if err != nil {
		return domain.DateRange{}, errors.ErrInvalidDateRange.WithDetails(map[string]interface{}{
			"start_date": err.Error(),
		})
	}
	end, err := utils.ParseOptionalDate(r.EndDate, true)
	if err != nil {
		return domain.DateRange{}, errors.ErrInvalidDateRange.WithDetails(map[string]interface{}{
			"end_date": err.Error(),
		})
	}
	if start != nil && end != nil && start.After(*end) {
		return domain.DateRange{}, errors.ErrInvalidDateRange.WithDetails(map[string]interface{}{
			"start_date": r.StartDate,
			"end_date":   r.EndDate,
		})
	}
	return domain.DateRange{Start: start, End: end}, nil
}

func parseBodyDate(field string, s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := utils.ParseOptionalDate(*s, false)
	if err != nil {
		return nil, errors.ErrValidationFailed.WithDetails(map[string]interface{}{
			field: err.Error(),
		})
	}
	return t, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
