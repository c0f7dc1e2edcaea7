// Package profile turns raw student and internship rows into the canonical
// shapes the matcher scores. Missing or malformed data becomes an explicit
// unknown value instead of a default that could look like a match.
package profile

import (
	"sort"
	"time"
)

// Item is one member of a Set. Canonical items carry an ID; custom items
// only a Label and its normalized Key.
type Item struct {
	ID    string `json:"id,omitempty"`
	Label string `json:"label"`
	Key   string `json:"key"`
}

func (it Item) Custom() bool { return it.ID == "" }

// Set is an ordered, de-duplicated collection of catalog items: canonical
// items by id first, then custom items by key.
type Set struct {
	Items []Item `json:"items"`
}

func NewSet(items ...Item) Set {
	seenID := map[string]bool{}
	seenKey := map[string]bool{}
	var canon, custom []Item
	for _, it := range items {
		switch {
		case it.ID != "":
			if seenID[it.ID] {
				continue
			}
			seenID[it.ID] = true
			canon = append(canon, it)
		case it.Key != "":
			if seenKey[it.Key] {
				continue
			}
			seenKey[it.Key] = true
			custom = append(custom, it)
		}
	}
	// a custom label equal to a canonical name is the same item
	filtered := custom[:0]
	for _, it := range custom {
		if !containsKey(canon, it.Key) {
			filtered = append(filtered, it)
		}
	}
	sort.Slice(canon, func(i, j int) bool { return canon[i].ID < canon[j].ID })
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].Key < filtered[j].Key })
	return Set{Items: append(canon, filtered...)}
}

func containsKey(items []Item, key string) bool {
	for _, it := range items {
		if it.Key == key {
			return true
		}
	}
	return false
}

func (s Set) Len() int    { return len(s.Items) }
func (s Set) Empty() bool { return len(s.Items) == 0 }

func (s Set) HasID(id string) bool {
	for _, it := range s.Items {
		if it.ID != "" && it.ID == id {
			return true
		}
	}
	return false
}

// HasKey reports whether any item, canonical or custom, has the normalized key.
func (s Set) HasKey(key string) bool {
	if key == "" {
		return false
	}
	return containsKey(s.Items, key)
}

func (s Set) IDs() []string {
	var out []string
	for _, it := range s.Items {
		if it.ID != "" {
			out = append(out, it.ID)
		}
	}
	return out
}

func (s Set) Labels() []string {
	out := make([]string, 0, len(s.Items))
	for _, it := range s.Items {
		out = append(out, it.Label)
	}
	return out
}

type Location struct {
	City      string  `json:"city,omitempty"` // normalized
	State     string  `json:"state,omitempty"`
	Zip       string  `json:"zip,omitempty"`
	Lat       float64 `json:"lat,omitempty"`
	Lng       float64 `json:"lng,omitempty"`
	HasCoords bool    `json:"has_coords"`
}

// Known reports whether anything usable for commute checks is present.
func (l Location) Known() bool {
	return l.HasCoords || l.State != "" || l.City != ""
}

// Student is the normalized student profile. Zero numeric values mean unknown.
type Student struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	School    string    `json:"school,omitempty"`

	Majors     Set        `json:"majors"`
	Year       Year       `json:"year"`
	Experience Experience `json:"experience"`
	Skills     Set        `json:"skills"`
	Coursework Set        `json:"coursework"`

	AvailabilityStartMonth int `json:"availability_start_month,omitempty"`
	HoursPerWeek           int `json:"hours_per_week,omitempty"`

	Location          Location  `json:"location"`
	MaxCommuteMinutes int       `json:"max_commute_minutes,omitempty"`
	Transport         Transport `json:"transport"`
}

// Internship is the normalized listing. Empty sets mean "no constraint".
type Internship struct {
	ID         string    `json:"id"`
	EmployerID string    `json:"employer_id"`
	Title      string    `json:"title"`
	CreatedAt  time.Time `json:"created_at"`

	RequiredSkills     Set    `json:"required_skills"`
	PreferredSkills    Set    `json:"preferred_skills"`
	RequiredCoursework Set    `json:"required_coursework"`
	Majors             Set    `json:"majors"`
	TargetYears        []Year `json:"target_years"`
	AnyYear            bool   `json:"any_year"`

	Experience   Experience `json:"experience"`
	WorkMode     WorkMode   `json:"work_mode"`
	RemoteStates []string   `json:"remote_states,omitempty"`
	Term         Season     `json:"term"`

	HoursMin int `json:"hours_min,omitempty"`
	HoursMax int `json:"hours_max,omitempty"`
	PayMin   int `json:"pay_min,omitempty"`
	PayMax   int `json:"pay_max,omitempty"`

	Location Location   `json:"location"`
	Deadline *time.Time `json:"deadline,omitempty"`
	Active   bool       `json:"active"`
}

// Open reports whether the listing is active and its deadline, if any, has
// not passed at now.
func (i Internship) Open(now time.Time) bool {
	if !i.Active {
		return false
	}
	return i.Deadline == nil || !now.After(*i.Deadline)
}
