// Package report is the read-only admin view of the scoring engine: what
// each signal weighs, which raw fields feed it, a worked example, and batch
// previews. Nothing here writes.
package report

import (
	"sort"
	"time"

	"internmatch-engine/internal/catalog"
	"internmatch-engine/internal/matching"
	"internmatch-engine/internal/profile"
)

type SignalRow struct {
	Key             matching.Signal `json:"key"`
	Kind            matching.Kind   `json:"kind"`
	Weight          float64         `json:"weight"`
	Share           float64         `json:"share"`
	ReasonThreshold float64         `json:"reason_threshold"`
	GapThreshold    float64         `json:"gap_threshold"`
	ReasonKey       string          `json:"reason_key"`
	GapKey          string          `json:"gap_key,omitempty"`
	Description     string          `json:"description"`
}

// SignalTable lists the model's signals in evaluation order.
func SignalTable(m matching.Model) []SignalRow {
	total := m.MaxScore()
	rows := make([]SignalRow, 0, len(m.Signals))
	for _, d := range m.Signals {
		row := SignalRow{
			Key:             d.Signal,
			Kind:            d.Signal.Kind(),
			Weight:          d.Weight,
			ReasonThreshold: d.ReasonThreshold,
			ReasonKey:       d.Signal.ReasonKey(),
			GapKey:          d.Signal.GapKey(),
			Description:     d.Description,
		}
		if d.Signal.CanGap() {
			row.GapThreshold = m.GapThreshold
		}
		if total > 0 {
			row.Share = round4(d.Weight / total)
		}
		rows = append(rows, row)
	}
	return rows
}

type ProvenanceRow struct {
	Field  string          `json:"field"`
	Source string          `json:"source"`
	Signal matching.Signal `json:"signal"`
	Why    string          `json:"why"`
}

var provenance = []ProvenanceRow{
	{"internship.required_skills", "internship_required_skills", matching.SignalSkillCoverage, "Canonical skills the employer marked as required."},
	{"student.skills", "student_skills + free-text skills", matching.SignalSkillCoverage, "Matched by canonical id; unresolved labels earn partial credit on exact normalized text."},
	{"internship.preferred_skills", "internship_preferred_skills", matching.SignalPreferredSkills, "Nice-to-have skills. Adds credit, never a gap."},
	{"internship.required_coursework", "internship_required_coursework", matching.SignalCourseworkCoverage, "Coursework categories the role expects."},
	{"student.coursework", "student_coursework + coursework items", matching.SignalCourseworkCoverage, "Coursework items roll up to their category."},
	{"internship.majors", "internship_majors", matching.SignalMajorFit, "Empty means open to all majors."},
	{"student.majors", "students.major_id, second_major_id, major_text", matching.SignalMajorFit, "Free-text majors match on shared significant words."},
	{"internship.target_years", "internships.target_years", matching.SignalYearFit, "Class years the role is meant for; 'any' removes the constraint."},
	{"student.year", "students.year", matching.SignalYearFit, "Unrecognized values become unknown."},
	{"internship.experience_level", "internships.experience_level", matching.SignalExperienceFit, "Adjacent levels earn partial credit."},
	{"student.experience_level", "students.experience_level", matching.SignalExperienceFit, "Unrecognized values become unknown."},
	{"internship.work_mode", "internships.work_mode, remote_states", matching.SignalWorkModeFit, "Remote roles may restrict eligible states."},
	{"internship.location", "internships.city, state, lat, lng", matching.SignalWorkModeFit, "Commute target for on-site and hybrid roles."},
	{"student.location", "students.city, state, zip, lat, lng", matching.SignalWorkModeFit, "Commute origin and remote-state eligibility."},
	{"student.max_commute_minutes", "students.max_commute_minutes, transport", matching.SignalWorkModeFit, "Estimated door-to-door time must fit the limit."},
	{"internship.term", "internships.term", matching.SignalAvailabilityFit, "Season window the role runs in."},
	{"internship.hours", "internships.hours_min, hours_max", matching.SignalAvailabilityFit, "Weekly hours range."},
	{"student.availability", "students.availability_start_month, hours_per_week", matching.SignalAvailabilityFit, "Starts inside the term and hours outside the range earn partial credit; other start months earn none."},
}

// Provenance returns the field to signal mapping shown on the admin page.
func Provenance() []ProvenanceRow {
	return append([]ProvenanceRow(nil), provenance...)
}

type EnumList struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// Enums lists the canonical values of every profile enum. Anything else a
// row carries is read as unknown.
func Enums() []EnumList {
	return []EnumList{
		{"year", append(strs(profile.Years), string(profile.YearAny))},
		{"experience_level", strs(profile.Experiences)},
		{"work_mode", strs(profile.WorkModes)},
		{"term", strs(profile.Seasons)},
		{"transport", strs(profile.Transports)},
		{"signal", strs(matching.AllSignals)},
	}
}

func strs[T ~string](xs []T) []string {
	out := make([]string, len(xs))
	for i, x := range xs {
		out[i] = string(x)
	}
	return out
}

type Report struct {
	MatchingVersion string           `json:"matching_version"`
	MaxScore        float64          `json:"max_score"`
	Versions        []string         `json:"versions"`
	Signals         []SignalRow      `json:"signals"`
	Provenance      []ProvenanceRow  `json:"provenance"`
	Enums           []EnumList       `json:"enums"`
	Sample          Sample           `json:"sample"`
	Majors          MajorSuggestions `json:"majors"`
	GeneratedAt     time.Time        `json:"generated_at"`
}

// Build assembles the admin report for model m. versions lists every
// registered model version; cat and internships feed the major matrix.
func Build(m matching.Model, versions []string, cat *catalog.Catalog, internships []profile.Internship, now time.Time) (Report, error) {
	if err := m.Validate(); err != nil {
		return Report{}, err
	}
	sample, err := SampleBreakdown(m)
	if err != nil {
		return Report{}, err
	}
	vs := append([]string(nil), versions...)
	sort.Strings(vs)
	return Report{
		MatchingVersion: m.Version,
		MaxScore:        m.MaxScore(),
		Versions:        vs,
		Signals:         SignalTable(m),
		Provenance:      Provenance(),
		Enums:           Enums(),
		Sample:          sample,
		Majors:          BuildMajorSuggestions(cat, internships),
		GeneratedAt:     now.UTC(),
	}, nil
}
