package matching

import (
	"fmt"
	"sort"
	"strings"
)

// Reason is a signal that scored at or above its reason threshold.
type Reason struct {
	Key    string  `json:"key"`
	Signal Signal  `json:"signal"`
	Text   string  `json:"text"`
	Points float64 `json:"points"`
}

// Gap is a dimension the listing requires where the student scored at or
// below the model's gap threshold.
type Gap struct {
	Key    string  `json:"key"`
	Signal Signal  `json:"signal"`
	Text   string  `json:"text"`
	Weight float64 `json:"weight"`
}

// Reasons returns every qualifying reason, highest points first. Ties keep
// the heavier signal, then model order.
func Reasons(m Model, contribs []Contribution) []Reason {
	type ranked struct {
		Reason
		weight float64
		order  int
	}
	var rs []ranked
	for i, c := range contribs {
		d, ok := m.Definition(c.Signal)
		if !ok || c.Points <= 0 || c.Ratio() < d.ReasonThreshold {
			continue
		}
		rs = append(rs, ranked{
			Reason: Reason{Key: c.Signal.ReasonKey(), Signal: c.Signal, Text: reasonText(c), Points: c.Points},
			weight: c.Weight,
			order:  i,
		})
	}
	sort.SliceStable(rs, func(i, j int) bool {
		if rs[i].Points != rs[j].Points {
			return rs[i].Points > rs[j].Points
		}
		if rs[i].weight != rs[j].weight {
			return rs[i].weight > rs[j].weight
		}
		return rs[i].order < rs[j].order
	})
	out := make([]Reason, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Reason)
	}
	return out
}

// Gaps returns every gap, most important (heaviest) signal first.
func Gaps(m Model, contribs []Contribution) []Gap {
	type ranked struct {
		Gap
		order int
	}
	var gs []ranked
	for i, c := range contribs {
		if !c.Required || !c.Signal.CanGap() || c.Ratio() > m.GapThreshold {
			continue
		}
		gs = append(gs, ranked{
			Gap:   Gap{Key: c.Signal.GapKey(), Signal: c.Signal, Text: gapText(c), Weight: c.Weight},
			order: i,
		})
	}
	sort.SliceStable(gs, func(i, j int) bool {
		if gs[i].Weight != gs[j].Weight {
			return gs[i].Weight > gs[j].Weight
		}
		return gs[i].order < gs[j].order
	})
	out := make([]Gap, 0, len(gs))
	for _, g := range gs {
		out = append(out, g.Gap)
	}
	return out
}

func list(xs []string) string {
	return strings.Join(xs, ", ")
}

func reasonText(c Contribution) string {
	switch c.Signal {
	case SignalSkillCoverage:
		if !c.Required {
			return "No specific skills required"
		}
		return "Has required skills: " + list(c.Matched)
	case SignalPreferredSkills:
		if !c.Required && len(c.Matched) == 0 {
			return "No preferred skills listed"
		}
		return "Has preferred skills: " + list(c.Matched)
	case SignalCourseworkCoverage:
		if !c.Required {
			return "No required coursework"
		}
		return "Completed relevant coursework: " + list(c.Matched)
	case SignalMajorFit:
		if !c.Required {
			return "Open to all majors"
		}
		return "Major fits the role: " + list(c.Matched)
	case SignalExperienceFit:
		if !c.Required {
			return "No minimum experience level"
		}
		return fmt.Sprintf("Experience level matches (%s)", list(c.Matched))
	case SignalYearFit:
		if !c.Required {
			return "Open to all class years"
		}
		return fmt.Sprintf("Targets %s students", list(c.Matched))
	case SignalWorkModeFit:
		switch {
		case !c.Required && len(c.Matched) > 0:
			return "Remote-friendly"
		case !c.Required:
			return "No location constraint"
		case c.Detail == "remote":
			return "Remote-eligible in " + list(c.Matched)
		case c.Detail != "":
			return fmt.Sprintf("Within commute range of %s (%s)", list(c.Matched), c.Detail)
		default:
			return "Located in " + list(c.Matched)
		}
	case SignalAvailabilityFit:
		if !c.Required {
			return "Flexible schedule"
		}
		return "Availability fits: " + list(c.Matched)
	}
	panic(fmt.Sprintf("matching: unhandled signal %q", c.Signal))
}

func gapText(c Contribution) string {
	switch c.Signal {
	case SignalSkillCoverage:
		return "Missing required skills: " + list(c.Missing)
	case SignalCourseworkCoverage:
		return "Missing required coursework: " + list(c.Missing)
	case SignalMajorFit:
		if !c.Known {
			return "No major on profile; role wants " + list(c.Missing)
		}
		return "Major not listed for this role; wants " + list(c.Missing)
	case SignalExperienceFit:
		if !c.Known {
			return "No experience level on profile; role wants " + list(c.Missing)
		}
		return "Experience level differs from requested " + list(c.Missing)
	case SignalYearFit:
		if !c.Known {
			return "No class year on profile; role targets " + list(c.Missing)
		}
		return "Class year not targeted; role wants " + list(c.Missing)
	case SignalWorkModeFit:
		if !c.Known {
			return "Add your location to check eligibility for " + list(c.Missing)
		}
		if c.Detail != "" && c.Detail != "remote" {
			return fmt.Sprintf("Outside commute range of %s (%s)", list(c.Missing), c.Detail)
		}
		return "Not eligible for this location: " + list(c.Missing)
	case SignalAvailabilityFit:
		if !c.Known {
			return "Add your availability; role needs " + list(c.Missing)
		}
		return "Availability does not fit: " + list(c.Missing)
	}
	panic(fmt.Sprintf("matching: unhandled signal %q", c.Signal))
}
