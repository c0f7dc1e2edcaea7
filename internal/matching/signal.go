// Package matching scores how well a student fits an internship. Scoring is
// a fixed, versioned set of weighted signals; every result can be explained
// signal by signal and reproduced from the model version it names.
package matching

import (
	"fmt"
	"strings"

	"internmatch-engine/internal/profile"
)

// Signal is the closed set of fit dimensions. Adding one means adding a case
// to every switch in this file and bumping the model version.
type Signal string

const (
	SignalSkillCoverage      Signal = "skill_coverage"
	SignalMajorFit           Signal = "major_fit"
	SignalWorkModeFit        Signal = "work_mode_fit"
	SignalCourseworkCoverage Signal = "coursework_coverage"
	SignalExperienceFit      Signal = "experience_fit"
	SignalYearFit            Signal = "year_fit"
	SignalAvailabilityFit    Signal = "availability_fit"
	SignalPreferredSkills    Signal = "preferred_skills"
)

// AllSignals lists every signal in default model order.
var AllSignals = []Signal{
	SignalSkillCoverage,
	SignalMajorFit,
	SignalWorkModeFit,
	SignalCourseworkCoverage,
	SignalExperienceFit,
	SignalYearFit,
	SignalAvailabilityFit,
	SignalPreferredSkills,
}

// Kind describes how a signal's raw value is produced.
type Kind string

const (
	KindBoolean Kind = "boolean"
	KindGraded  Kind = "graded" // a few fixed partial-credit steps
	KindRatio   Kind = "ratio"
)

func ParseSignal(s string) (Signal, error) {
	sig := Signal(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllSignals {
		if sig == known {
			return sig, nil
		}
	}
	return "", fmt.Errorf("unknown signal %q", s)
}

func (s Signal) Kind() Kind {
	switch s {
	case SignalWorkModeFit, SignalYearFit:
		return KindBoolean
	case SignalMajorFit, SignalExperienceFit:
		return KindGraded
	default:
		return KindRatio
	}
}

// ReasonKey and GapKey are the stable machine-readable ids stored with
// snapshots. Never rename them under an existing model version.
func (s Signal) ReasonKey() string {
	switch s {
	case SignalSkillCoverage:
		return "required_skills"
	case SignalMajorFit:
		return "major"
	case SignalWorkModeFit:
		return "location"
	case SignalCourseworkCoverage:
		return "coursework"
	case SignalExperienceFit:
		return "experience"
	case SignalYearFit:
		return "class_year"
	case SignalAvailabilityFit:
		return "availability"
	case SignalPreferredSkills:
		return "preferred_skills"
	}
	panic(fmt.Sprintf("matching: unhandled signal %q", s))
}

func (s Signal) GapKey() string {
	switch s {
	case SignalSkillCoverage:
		return "required_skills"
	case SignalMajorFit:
		return "major"
	case SignalWorkModeFit:
		return "location"
	case SignalCourseworkCoverage:
		return "required_coursework"
	case SignalExperienceFit:
		return "experience_level"
	case SignalYearFit:
		return "class_year"
	case SignalAvailabilityFit:
		return "availability"
	case SignalPreferredSkills:
		return ""
	}
	panic(fmt.Sprintf("matching: unhandled signal %q", s))
}

// CanGap is false for signals that only ever add credit.
func (s Signal) CanGap() bool { return s.GapKey() != "" }

func (s Signal) DefaultDescription() string {
	switch s {
	case SignalSkillCoverage:
		return "Share of the listing's required skills the student has."
	case SignalMajorFit:
		return "Student major is one the listing asks for; free-text overlap earns partial credit."
	case SignalWorkModeFit:
		return "Remote eligibility or commute feasibility for on-site and hybrid roles."
	case SignalCourseworkCoverage:
		return "Share of the listing's required coursework categories the student has taken."
	case SignalExperienceFit:
		return "Student experience level equals the listing's; adjacent levels earn partial credit."
	case SignalYearFit:
		return "Student class year is one the listing targets."
	case SignalAvailabilityFit:
		return "Start month and weekly hours fit the listing's term and hours range."
	case SignalPreferredSkills:
		return "Share of the listing's nice-to-have skills the student has."
	}
	panic(fmt.Sprintf("matching: unhandled signal %q", s))
}

func (s Signal) defaultWeight() float64 {
	switch s {
	case SignalSkillCoverage:
		return 25
	case SignalMajorFit, SignalWorkModeFit:
		return 15
	case SignalCourseworkCoverage, SignalExperienceFit, SignalYearFit, SignalAvailabilityFit:
		return 10
	case SignalPreferredSkills:
		return 5
	}
	panic(fmt.Sprintf("matching: unhandled signal %q", s))
}

func (k Kind) defaultReasonThreshold() float64 {
	if k == KindRatio {
		return 0.6
	}
	return 0.99
}

// evaluator returns the pure function bound to the signal.
func (s Signal) evaluator() func(Model, profile.Student, profile.Internship) Evaluation {
	switch s {
	case SignalSkillCoverage:
		return evalSkillCoverage
	case SignalMajorFit:
		return evalMajorFit
	case SignalWorkModeFit:
		return evalWorkModeFit
	case SignalCourseworkCoverage:
		return evalCourseworkCoverage
	case SignalExperienceFit:
		return evalExperienceFit
	case SignalYearFit:
		return evalYearFit
	case SignalAvailabilityFit:
		return evalAvailabilityFit
	case SignalPreferredSkills:
		return evalPreferredSkills
	}
	panic(fmt.Sprintf("matching: unhandled signal %q", s))
}
