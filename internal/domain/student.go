package domain

import "time"

// StudentRow is a student profile as stored by the marketplace. Optional
// numeric fields are nil when the student never filled them in.
type StudentRow struct {
	ID        string
	School    string
	CreatedAt time.Time

	PrimaryMajorID   string
	SecondaryMajorID string
	MajorText        []string // free-text majors typed at signup

	Year            string // freshman/sophomore/... as entered
	ExperienceLevel string

	SkillIDs   []string // canonical ids persisted alongside custom labels
	SkillsText []string

	CourseworkCategoryIDs []string
	CourseworkText        []string // course names, e.g. "Intro to Databases"

	AvailabilityStartMonth *int
	AvailabilityHours      *int

	City  string
	State string
	Zip   string
	Lat   *float64
	Lng   *float64

	MaxCommuteMinutes *int
	TransportMode     string
}
