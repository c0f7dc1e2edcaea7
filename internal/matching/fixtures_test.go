package matching_test

import (
	"time"

	"internmatch-engine/internal/catalog"
	"internmatch-engine/internal/profile"
)

func item(id, label string) profile.Item {
	return profile.Item{ID: id, Label: label, Key: catalog.NormalizeLabel(label)}
}

func custom(label string) profile.Item {
	return profile.Item{Label: label, Key: catalog.NormalizeLabel(label)}
}

var (
	sql    = item("sk-sql", "SQL")
	excel  = item("sk-excel", "Excel")
	python = item("sk-python", "Python")
	cs     = item("mj-cs", "Computer Science")
	fin    = item("mj-fin", "Finance")
	dbs    = item("cc-db", "Databases")

	t0 = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
)

// fullStudent matches fullListing on every signal.
func fullStudent() profile.Student {
	return profile.Student{
		ID:                     "st-1",
		CreatedAt:              t0,
		Majors:                 profile.NewSet(cs),
		Year:                   profile.YearJunior,
		Experience:             profile.ExperienceProjects,
		Skills:                 profile.NewSet(sql, excel, python),
		Coursework:             profile.NewSet(dbs),
		AvailabilityStartMonth: 5,
		HoursPerWeek:           30,
		Location:               profile.Location{City: "dallas", State: "TX", Lat: 32.78, Lng: -96.80, HasCoords: true},
		MaxCommuteMinutes:      45,
		Transport:              profile.TransportCar,
	}
}

func fullListing() profile.Internship {
	return profile.Internship{
		ID:                 "in-1",
		Title:              "Data Intern",
		CreatedAt:          t0,
		RequiredSkills:     profile.NewSet(sql, excel),
		PreferredSkills:    profile.NewSet(python),
		RequiredCoursework: profile.NewSet(dbs),
		Majors:             profile.NewSet(cs),
		TargetYears:        []profile.Year{profile.YearJunior, profile.YearSenior},
		Experience:         profile.ExperienceProjects,
		WorkMode:           profile.WorkModeOnSite,
		Term:               profile.SeasonSummer,
		HoursMin:           20,
		HoursMax:           40,
		Location:           profile.Location{City: "dallas", State: "TX", Lat: 32.80, Lng: -96.80, HasCoords: true},
		Active:             true,
	}
}

// openListing constrains nothing.
func openListing(id string, created time.Time) profile.Internship {
	return profile.Internship{
		ID:         id,
		Title:      id,
		CreatedAt:  created,
		Experience: profile.ExperienceUnknown,
		WorkMode:   profile.WorkModeUnknown,
		Term:       profile.SeasonUnknown,
		Active:     true,
	}
}
