package domain

import "time"

// CatalogLink is one joined catalog row on a listing: either a canonical id,
// a free-text label, or both.
type CatalogLink struct {
	ID    string `json:"id,omitempty"`
	Label string `json:"label,omitempty"`
}

type InternshipRow struct {
	ID         string
	EmployerID string
	Title      string
	CreatedAt  time.Time

	RequiredSkills     []CatalogLink
	PreferredSkills    []CatalogLink
	RequiredCoursework []CatalogLink
	Majors             []CatalogLink
	TargetYears        []string

	ExperienceLevel string
	WorkMode        string // remote/hybrid/on-site/unknown
	RemoteStates    []string
	Term            string // season

	HoursMin *int
	HoursMax *int
	PayMin   *int
	PayMax   *int

	City  string
	State string
	Lat   *float64
	Lng   *float64

	Deadline *time.Time
	IsActive bool
}
