package report

import (
	"time"

	"internmatch-engine/internal/catalog"
	"internmatch-engine/internal/matching"
	"internmatch-engine/internal/profile"
)

// Sample is a fixed worked example evaluated under the current model.
type Sample struct {
	Student    profile.Student      `json:"student"`
	Internship profile.Internship   `json:"internship"`
	Result     matching.MatchResult `json:"result"`
}

func sampleItem(id, label string) profile.Item {
	return profile.Item{ID: id, Label: label, Key: catalog.NormalizeLabel(label)}
}

var sampleCreated = time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

func sampleStudent() profile.Student {
	return profile.Student{
		ID:                     "sample-student",
		CreatedAt:              sampleCreated,
		School:                 "State University",
		Majors:                 profile.NewSet(sampleItem("sample-major-bus", "Business Analytics")),
		Year:                   profile.YearJunior,
		Experience:             profile.ExperienceProjects,
		Skills:                 profile.NewSet(sampleItem("sample-skill-excel", "Excel")),
		Coursework:             profile.NewSet(sampleItem("sample-cc-stats", "Statistics")),
		AvailabilityStartMonth: 6,
		HoursPerWeek:           20,
		Location:               profile.Location{City: "austin", State: "TX"},
		Transport:              profile.TransportUnknown,
	}
}

func sampleInternship() profile.Internship {
	return profile.Internship{
		ID:                 "sample-internship",
		EmployerID:         "sample-employer",
		Title:              "Operations Analyst Intern",
		CreatedAt:          sampleCreated,
		RequiredSkills:     profile.NewSet(sampleItem("sample-skill-sql", "SQL"), sampleItem("sample-skill-excel", "Excel")),
		PreferredSkills:    profile.NewSet(sampleItem("sample-skill-tableau", "Tableau")),
		RequiredCoursework: profile.NewSet(sampleItem("sample-cc-stats", "Statistics")),
		Majors:             profile.NewSet(sampleItem("sample-major-bus", "Business Analytics"), sampleItem("sample-major-econ", "Economics")),
		TargetYears:        []profile.Year{profile.YearJunior, profile.YearSenior},
		Experience:         profile.ExperienceEntry,
		WorkMode:           profile.WorkModeHybrid,
		Term:               profile.SeasonSummer,
		HoursMin:           15,
		HoursMax:           25,
		Location:           profile.Location{City: "austin", State: "TX"},
		Active:             true,
	}
}

// SampleBreakdown evaluates the worked example: a student with one of two
// required skills, an adjacent experience level and a mid-term start.
func SampleBreakdown(m matching.Model) (Sample, error) {
	s, in := sampleStudent(), sampleInternship()
	res, err := matching.EvaluateSafe(m, s, in)
	if err != nil {
		return Sample{}, err
	}
	return Sample{Student: s, Internship: in, Result: res}, nil
}
