package domain

import "time"

// Application is an application row together with the match snapshot that
// was frozen when it was submitted.
type Application struct {
	ID           string    `json:"id"`
	StudentID    string    `json:"student_id"`
	InternshipID string    `json:"internship_id"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`

	MatchScore      float64  `json:"match_score"`
	MatchNormalized float64  `json:"match_normalized"`
	MatchReasons    []string `json:"match_reasons"`
	MatchGaps       []string `json:"match_gaps"`
	ReasonKeys      []string `json:"reason_keys"`
	GapKeys         []string `json:"gap_keys"`
	MatchingVersion string   `json:"matching_version"`
}
