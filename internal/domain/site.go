package domain

import "time"

// Site - историческое место из каталога
type Site struct {
	ID              int64      `json:"id" db:"id"`
	Name            string     `json:"name" db:"name"`
	Description     string     `json:"description" db:"description"`
	Latitude        float64    `json:"latitude" db:"latitude"`
	Longitude       float64    `json:"longitude" db:"longitude"`
	Address         *string    `json:"address,omitempty" db:"address"`
	Era             string     `json:"era" db:"era"`
	Tags            StringList `json:"tags" db:"tags"`
	Images          StringList `json:"images" db:"images"`
	AudioGuideURL   *string    `json:"audio_guide_url,omitempty" db:"audio_guide_url"`
	Verified        bool       `json:"verified" db:"verified"`
	DateEstablished *time.Time `json:"date_established,omitempty" db:"date_established"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}

// SiteUpdate - частичное обновление места. nil означает "поле не передано".
type SiteUpdate struct {
	Name            *string
	Description     *string
	Latitude        *float64
	Longitude       *float64
	Address         *string
	Era             *string
	Tags            *[]string
	Images          *[]string
	AudioGuideURL   *string
	Verified        *bool
	DateEstablished *time.Time
}

// Apply переносит переданные поля в site, остальные не трогает
func (u SiteUpdate) Apply(s *Site) {
	if u.Name != nil {
		s.Name = *u.Name
	}
	if u.Description != nil {
		s.Description = *u.Description
	}
	if u.Latitude != nil {
		s.Latitude = *u.Latitude
	}
	if u.Longitude != nil {
		s.Longitude = *u.Longitude
	}
	if u.Address != nil {
		s.Address = u.Address
	}
	if u.Era != nil {
		s.Era = *u.Era
	}
	if u.Tags != nil {
		s.Tags = append(StringList{}, (*u.Tags)...)
	}
	if u.Images != nil {
		s.Images = append(StringList{}, (*u.Images)...)
	}
	if u.AudioGuideURL != nil {
		s.AudioGuideURL = u.AudioGuideURL
	}
	if u.Verified != nil {
		s.Verified = *u.Verified
	}
	if u.DateEstablished != nil {
		s.DateEstablished = u.DateEstablished
	}
}

// SiteWithDistance - место с расстоянием до точки поиска
type SiteWithDistance struct {
	Site
	DistanceKm float64 `json:"distance_km"`
}

// DateRange - границы поиска по date_established, обе включительно
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// Matches проверяет дату основания места на попадание в диапазон.
// Место без даты попадает только в диапазон без границ.
func (r DateRange) Matches(established *time.Time) bool {
	if r.Start == nil && r.End == nil {
		return true
	}
	if established == nil {
		return false
	}
	if r.Start != nil && established.Before(*r.Start) {
		return false
	}
	if r.End != nil && established.After(*r.End) {
		return false
	}
	return true
}
