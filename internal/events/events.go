package events

import (
	"encoding/json"
	"time"
)

const (
	TypeApplicationCreated = "application_created"
	TypeCatalogRefreshed   = "catalog_refreshed"
)

type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// ApplicationCreated carries the snapshot summary, not the full breakdown.
type ApplicationCreated struct {
	ApplicationID   string   `json:"application_id"`
	StudentID       string   `json:"student_id"`
	InternshipID    string   `json:"internship_id"`
	MatchScore      float64  `json:"match_score"`
	MatchNormalized float64  `json:"match_normalized"`
	GapKeys         []string `json:"gap_keys,omitempty"`
	MatchingVersion string   `json:"matching_version"`
}

type CatalogRefreshed struct {
	Skills  int `json:"skills"`
	Majors  int `json:"majors"`
	Courses int `json:"coursework_categories"`
}

func MakeEvent(reqID, typ string, v int, data any) string {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	e := Event{
		Type:      typ,
		Version:   v,
		At:        time.Now().UTC(),
		RequestID: reqID,
		Data:      raw,
	}
	b, _ := json.Marshal(e)
	return string(b)
}
