package matching

import (
	"fmt"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"internmatch-engine/internal/catalog"
	"internmatch-engine/internal/profile"
)

// Evaluation is one evaluator's raw measurement.
//
// Known is false when the student side has no data for the dimension; the
// signal then earns nothing but is only reported as a gap if Required.
// Required is true when the listing actually constrains the dimension.
type Evaluation struct {
	Value    float64
	Known    bool
	Required bool
	Matched  []string
	Missing  []string
	Detail   string
}

func noConstraint() Evaluation {
	return Evaluation{Value: 1, Known: true}
}

func evalSkillCoverage(m Model, s profile.Student, in profile.Internship) Evaluation {
	return coverage(in.RequiredSkills, s.Skills, m.Partial.CustomLabelMatch)
}

func evalPreferredSkills(m Model, s profile.Student, in profile.Internship) Evaluation {
	e := coverage(in.PreferredSkills, s.Skills, m.Partial.CustomLabelMatch)
	e.Required = false
	return e
}

func evalCourseworkCoverage(m Model, s profile.Student, in profile.Internship) Evaluation {
	return coverage(in.RequiredCoursework, s.Coursework, m.Partial.CustomLabelMatch)
}

// coverage is the share of want that have satisfies. Canonical id matches
// earn full credit; a match only on the normalized label earns labelCredit.
func coverage(want, have profile.Set, labelCredit float64) Evaluation {
	if want.Empty() {
		return noConstraint()
	}
	e := Evaluation{Known: !have.Empty(), Required: true}
	var credit float64
	for _, it := range want.Items {
		switch {
		case !it.Custom() && have.HasID(it.ID):
			credit++
			e.Matched = append(e.Matched, it.Label)
		case labelCredit > 0 && have.HasKey(it.Key):
			credit += labelCredit
			e.Matched = append(e.Matched, it.Label)
		default:
			e.Missing = append(e.Missing, it.Label)
		}
	}
	e.Value = clamp01(credit / float64(want.Len()))
	e.Detail = fmt.Sprintf("%d of %d", len(e.Matched), want.Len())
	return e
}

func evalMajorFit(m Model, s profile.Student, in profile.Internship) Evaluation {
	if in.Majors.Empty() {
		return noConstraint()
	}
	e := Evaluation{Required: true}
	if s.Majors.Empty() {
		e.Missing = in.Majors.Labels()
		return e
	}
	e.Known = true

	for _, it := range in.Majors.Items {
		if !it.Custom() && s.Majors.HasID(it.ID) {
			e.Matched = append(e.Matched, it.Label)
		}
	}
	if len(e.Matched) > 0 {
		e.Value = 1
		return e
	}

	have := map[string]bool{}
	for _, it := range s.Majors.Items {
		for _, tok := range catalog.SignificantTokens(it.Label) {
			have[tok] = true
		}
	}
	for _, it := range in.Majors.Items {
		for _, tok := range catalog.SignificantTokens(it.Label) {
			if have[tok] {
				e.Matched = append(e.Matched, it.Label)
				break
			}
		}
	}
	if len(e.Matched) > 0 {
		e.Value = clamp01(m.Partial.MajorTextOverlap)
		e.Detail = "related field"
		return e
	}
	e.Missing = in.Majors.Labels()
	return e
}

func evalExperienceFit(m Model, s profile.Student, in profile.Internship) Evaluation {
	if in.Experience == profile.ExperienceUnknown {
		return noConstraint()
	}
	e := Evaluation{Required: true}
	if s.Experience == profile.ExperienceUnknown {
		e.Missing = []string{string(in.Experience)}
		return e
	}
	e.Known = true
	switch abs(s.Experience.Rank() - in.Experience.Rank()) {
	case 0:
		e.Value = 1
	case 1:
		e.Value = clamp01(m.Partial.AdjacentExperience)
		e.Detail = "adjacent level"
	}
	if e.Value > 0 {
		e.Matched = []string{string(s.Experience)}
	} else {
		e.Missing = []string{string(in.Experience)}
	}
	return e
}

func evalYearFit(_ Model, s profile.Student, in profile.Internship) Evaluation {
	if in.AnyYear || len(in.TargetYears) == 0 {
		return noConstraint()
	}
	e := Evaluation{Required: true}
	for _, y := range in.TargetYears {
		e.Missing = append(e.Missing, string(y))
	}
	if s.Year == profile.YearUnknown {
		return e
	}
	e.Known = true
	for _, y := range in.TargetYears {
		if y == s.Year {
			return Evaluation{Value: 1, Known: true, Required: true, Matched: []string{string(y)}}
		}
	}
	return e
}

const commuteDetour = 1.3

func evalWorkModeFit(m Model, s profile.Student, in profile.Internship) Evaluation {
	switch in.WorkMode {
	case profile.WorkModeRemote:
		if len(in.RemoteStates) == 0 {
			e := noConstraint()
			e.Matched = []string{"remote"}
			return e
		}
		e := Evaluation{Required: true}
		if s.Location.State == "" {
			e.Missing = in.RemoteStates
			return e
		}
		e.Known = true
		for _, st := range in.RemoteStates {
			if st == s.Location.State {
				e.Value = 1
				e.Matched = []string{st}
				e.Detail = "remote"
				return e
			}
		}
		e.Missing = in.RemoteStates
		return e

	case profile.WorkModeHybrid, profile.WorkModeOnSite:
		if !in.Location.Known() {
			// nothing to check against
			return noConstraint()
		}
		e := Evaluation{Required: true}
		place := placeLabel(in.Location)
		if !s.Location.Known() {
			e.Missing = []string{place}
			return e
		}

		if s.Location.HasCoords && in.Location.HasCoords {
			e.Known = true
			limit := s.MaxCommuteMinutes
			if limit <= 0 {
				limit = m.DefaultCommuteMinutes
			}
			km := haversineKm(s.Location.Lat, s.Location.Lng, in.Location.Lat, in.Location.Lng) * commuteDetour
			minutes := km / m.Speeds.For(s.Transport) * 60
			e.Detail = fmt.Sprintf("~%d min", int(math.Round(minutes)))
			if minutes <= float64(limit) {
				e.Value = 1
				e.Matched = []string{place}
			} else {
				e.Missing = []string{place}
			}
			return e
		}

		sameState := s.Location.State != "" && s.Location.State == in.Location.State
		switch {
		case sameState && s.Location.City != "" && s.Location.City == in.Location.City:
			e.Known, e.Value, e.Matched = true, 1, []string{place}
		case s.Location.State != "" && in.Location.State != "" && !sameState:
			e.Known, e.Missing = true, []string{place}
		default:
			e.Missing = []string{place}
		}
		return e
	}
	return noConstraint()
}

func placeLabel(l profile.Location) string {
	parts := make([]string, 0, 2)
	if l.City != "" {
		parts = append(parts, titleWords(l.City))
	}
	if l.State != "" {
		parts = append(parts, l.State)
	}
	if len(parts) == 0 {
		return "listing location"
	}
	return strings.Join(parts, ", ")
}

func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

func evalAvailabilityFit(_ Model, s profile.Student, in profile.Internship) Evaluation {
	start, end, hasTerm := in.Term.Window()
	hasHours := in.HoursMin > 0 || in.HoursMax > 0
	if !hasTerm && !hasHours {
		return noConstraint()
	}
	e := Evaluation{Required: true}

	var parts []float64
	if hasTerm {
		if s.AvailabilityStartMonth > 0 {
			f := monthFit(s.AvailabilityStartMonth, start, end)
			parts = append(parts, f)
			switch {
			case f <= 0:
				e.Missing = append(e.Missing, string(in.Term)+" term")
				e.Detail = "starts outside the term window"
			case f < 1:
				e.Matched = append(e.Matched, string(in.Term)+" term")
				e.Detail = "starts mid-term"
			default:
				e.Matched = append(e.Matched, string(in.Term)+" term")
			}
		} else {
			e.Missing = append(e.Missing, string(in.Term)+" term")
		}
	}
	if hasHours {
		if s.HoursPerWeek > 0 {
			f := hoursFit(s.HoursPerWeek, in.HoursMin, in.HoursMax)
			parts = append(parts, f)
			label := fmt.Sprintf("%d h/week", s.HoursPerWeek)
			if f >= 1 {
				e.Matched = append(e.Matched, label)
			} else {
				e.Missing = append(e.Missing, hoursRangeLabel(in.HoursMin, in.HoursMax))
			}
		} else {
			e.Missing = append(e.Missing, hoursRangeLabel(in.HoursMin, in.HoursMax))
		}
	}
	if len(parts) == 0 {
		return e
	}
	e.Known = true
	var sum float64
	for _, p := range parts {
		sum += p
	}
	e.Value = clamp01(sum / float64(len(parts)))
	return e
}

// termLeadMonths is how far ahead of a term a start month still counts as
// "available from the first day".
const termLeadMonths = 3

// monthFit scores a start month against a term window [start, end] (which
// may wrap the year). Starting up to termLeadMonths before the first month
// is a full match, starting inside the window earns the share of the term
// that remains, and starting after the window (or earlier than the lead)
// earns nothing.
func monthFit(month, start, end int) float64 {
	length := (end-start+12)%12 + 1
	offset := (month - start + 12) % 12
	if offset < length {
		return float64(length-offset) / float64(length)
	}
	if lead := (start - month + 12) % 12; lead <= termLeadMonths {
		return 1
	}
	return 0
}

func hoursFit(h, lo, hi int) float64 {
	switch {
	case lo > 0 && h < lo:
		return float64(h) / float64(lo)
	case hi > 0 && h > hi:
		return float64(hi) / float64(h)
	default:
		return 1
	}
}

func hoursRangeLabel(lo, hi int) string {
	switch {
	case lo > 0 && hi > 0:
		return fmt.Sprintf("%d-%d h/week", lo, hi)
	case lo > 0:
		return fmt.Sprintf("%d+ h/week", lo)
	default:
		return fmt.Sprintf("up to %d h/week", hi)
	}
}

func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	const earthRadiusKm = 6371.0
	rad := math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLng := (lng2 - lng1) * rad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(a)))
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
