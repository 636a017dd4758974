package domain

import "time"

// Event - историческое событие, опционально привязанное к месту
type Event struct {
	ID           int64      `json:"id" db:"id"`
	Title        string     `json:"title" db:"title"`
	Description  string     `json:"description" db:"description"`
	Date         time.Time  `json:"date" db:"date"`
	SiteID       *int64     `json:"site_id,omitempty" db:"site_id"`
	Participants StringList `json:"participants" db:"participants"`
	EventType    string     `json:"event_type" db:"event_type"`
	Images       StringList `json:"images" db:"images"`
}

type EventUpdate struct {
	Title        *string
	Description  *string
	Date         *time.Time
	SiteID       *int64
	Participants *[]string
	EventType    *string
	Images       *[]string
}

func (u EventUpdate) Apply(e *Event) {
	if u.Title != nil {
		e.Title = *u.Title
	}
	if u.Description != nil {
		e.Description = *u.Description
	}
	if u.Date != nil {
		e.Date = *u.Date
	}
	if u.SiteID != nil {
		e.SiteID = u.SiteID
	}
	if u.Participants != nil {
		e.Participants = append(StringList{}, (*u.Participants)...)
	}
	if u.EventType != nil {
		e.EventType = *u.EventType
	}
	if u.Images != nil {
		e.Images = append(StringList{}, (*u.Images)...)
	}
}
