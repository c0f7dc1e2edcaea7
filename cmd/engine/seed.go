package main

import (
	"context"
	"time"

	"internmatch-engine/internal/domain"
	"internmatch-engine/internal/store"
)

func ptr[T any](v T) *T { return &v }

// seedDemoData upserts a fixed demo set. Running it twice is harmless.
func seedDemoData(ctx context.Context, db *store.DB) error {
	now := time.Now().UTC()

	catalogs := []struct {
		kind    domain.CatalogKind
		entries []domain.CatalogEntry
	}{
		{domain.KindSkill, []domain.CatalogEntry{
			{ID: "sk-sql", Slug: "sql", Name: "SQL"},
			{ID: "sk-excel", Slug: "excel", Name: "Excel"},
			{ID: "sk-python", Slug: "python", Name: "Python"},
			{ID: "sk-tableau", Slug: "tableau", Name: "Tableau"},
		}},
		{domain.KindMajor, []domain.CatalogEntry{
			{ID: "mj-cs", Slug: "computer-science", Name: "Computer Science"},
			{ID: "mj-fin", Slug: "finance", Name: "Finance"},
			{ID: "mj-stats", Slug: "statistics", Name: "Statistics"},
		}},
		{domain.KindCourseworkCategory, []domain.CatalogEntry{
			{ID: "cc-data", Slug: "databases", Name: "Databases"},
			{ID: "cc-acct", Slug: "accounting", Name: "Accounting"},
		}},
		{domain.KindCourseworkItem, []domain.CatalogEntry{
			{ID: "ci-db101", Name: "Intro to Databases", CategoryID: "cc-data"},
			{ID: "ci-acc201", Name: "Financial Accounting", CategoryID: "cc-acct"},
		}},
	}
	for _, c := range catalogs {
		if err := store.UpsertCatalog(ctx, db.Pool, c.kind, c.entries); err != nil {
			return err
		}
	}

	students := []domain.StudentRow{
		{
			ID:                     "demo-student-ana",
			School:                 "UT Dallas",
			CreatedAt:              now.Add(-72 * time.Hour),
			PrimaryMajorID:         "mj-cs",
			Year:                   "junior",
			ExperienceLevel:        "projects",
			SkillIDs:               []string{"sk-sql", "sk-python"},
			SkillsText:             []string{"Power BI"},
			CourseworkCategoryIDs:  []string{"cc-data"},
			AvailabilityStartMonth: ptr(5),
			AvailabilityHours:      ptr(30),
			City:                   "Dallas",
			State:                  "TX",
			Lat:                    ptr(32.78),
			Lng:                    ptr(-96.80),
			MaxCommuteMinutes:      ptr(40),
			TransportMode:          "car",
		},
		{
			ID:              "demo-student-ben",
			School:          "UT Austin",
			CreatedAt:       now.Add(-24 * time.Hour),
			PrimaryMajorID:  "mj-fin",
			MajorText:       []string{"Economics"},
			Year:            "sophomore",
			ExperienceLevel: "none",
			SkillIDs:        []string{"sk-excel"},
			CourseworkText:  []string{"Financial Accounting"},
			City:            "Austin",
			State:           "TX",
		},
	}
	for _, s := range students {
		if err := store.UpsertStudent(ctx, db.Pool, s); err != nil {
			return err
		}
	}

	internships := []domain.InternshipRow{
		{
			ID:                 "demo-intern-data",
			EmployerID:         "demo-acme",
			Title:              "Data Analyst Intern",
			CreatedAt:          now.Add(-48 * time.Hour),
			IsActive:           true,
			RequiredSkills:     []domain.CatalogLink{{ID: "sk-sql"}, {ID: "sk-excel"}},
			PreferredSkills:    []domain.CatalogLink{{ID: "sk-tableau"}},
			RequiredCoursework: []domain.CatalogLink{{ID: "cc-data"}},
			Majors:             []domain.CatalogLink{{ID: "mj-cs"}, {ID: "mj-stats"}},
			TargetYears:        []string{"junior", "senior"},
			ExperienceLevel:    "projects",
			WorkMode:           "hybrid",
			Term:               "summer",
			HoursMin:           ptr(20),
			HoursMax:           ptr(40),
			City:               "Dallas",
			State:              "TX",
			Lat:                ptr(32.80),
			Lng:                ptr(-96.78),
			Deadline:           ptr(now.AddDate(0, 2, 0)),
		},
		{
			ID:             "demo-intern-fin",
			EmployerID:     "demo-bank",
			Title:          "Finance Intern",
			CreatedAt:      now.Add(-12 * time.Hour),
			IsActive:       true,
			RequiredSkills: []domain.CatalogLink{{ID: "sk-excel"}, {Label: "Bloomberg Terminal"}},
			Majors:         []domain.CatalogLink{{ID: "mj-fin"}},
			TargetYears:    []string{"any"},
			WorkMode:       "remote",
			RemoteStates:   []string{"TX", "OK"},
			Term:           "fall",
		},
	}
	for _, in := range internships {
		if err := store.UpsertInternship(ctx, db.Pool, in); err != nil {
			return err
		}
	}
	return nil
}
