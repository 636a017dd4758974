package dto

import (
	"github.com/heritage-catalog/internal/domain"
	"github.com/heritage-catalog/internal/pkg/errors"
)

type CreateEventRequest struct {
	Title        string   `json:"title" validate:"required,min=1,max=255"`
	Description  string   `json:"description" validate:"max=10000"`
	Date         string   `json:"date" validate:"required"`
	SiteID       *int64   `json:"site_id,omitempty" validate:"omitempty,gt=0"`
	Participants []string `json:"participants,omitempty" validate:"omitempty,max=100,dive,min=1,max=255"`
	EventType    string   `json:"event_type" validate:"max=100"`
	Images       []string `json:"images,omitempty" validate:"omitempty,max=50,dive,url"`
}

func (r CreateEventRequest) ToDomain() (*domain.Event, error) {
	date, err := parseBodyDate("date", &r.Date)
	if err != nil {
		return nil, err
	}
	if date == nil {
		return nil, errors.ErrValidationFailed.WithDetails(map[string]interface{}{"date": "required"})
	}

	return &domain.Event{
		Title:        r.Title,
		Description:  r.Description,
		Date:         *date,
		SiteID:       r.SiteID,
		Participants: domain.StringList(nonNil(r.Participants)),
		EventType:    r.EventType,
		Images:       domain.StringList(nonNil(r.Images)),
	}, nil
}

type UpdateEventRequest struct {
	Title        *string   `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description  *string   `json:"description,omitempty" validate:"omitempty,max=10000"`
	Date         *string   `json:"date,omitempty"`
	SiteID       *int64    `json:"site_id,omitempty" validate:"omitempty,gt=0"`
	Participants *[]string `json:"participants,omitempty" validate:"omitempty,max=100,dive,min=1,max=255"`
	EventType    *string   `json:"event_type,omitempty" validate:"omitempty,max=100"`
	Images       *[]string `json:"images,omitempty" validate:"omitempty,max=50,dive,url"`
}

func (r UpdateEventRequest) ToDomain() (domain.EventUpdate, error) {
	date, err := parseBodyDate("date", r.Date)
	if err != nil {
		return domain.EventUpdate{}, err
	}

	return domain.EventUpdate{
		Title:        r.Title,
		Description:  r.Description,
		Date:         date,
		SiteID:       r.SiteID,
		Participants: r.Participants,
		EventType:    r.EventType,
		Images:       r.Images,
	}, nil
}
