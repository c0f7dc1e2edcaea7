package profile

import (
	"sort"
	"strings"

	"internmatch-engine/internal/catalog"
	"internmatch-engine/internal/domain"
)

const (
	maxHoursPerWeek   = 80
	maxCommuteMinutes = 240
)

// Normalizer converts raw rows using the canonical catalog. It never fails:
// anything it cannot interpret becomes unknown.
type Normalizer struct {
	Catalog *catalog.Catalog
}

func (n Normalizer) Student(row domain.StudentRow) Student {
	s := Student{
		ID:         strings.TrimSpace(row.ID),
		CreatedAt:  row.CreatedAt,
		School:     strings.TrimSpace(row.School),
		Year:       ParseYear(row.Year),
		Experience: ParseExperience(row.ExperienceLevel),
		Transport:  ParseTransport(row.TransportMode),
	}

	var majors []Item
	for _, id := range []string{row.PrimaryMajorID, row.SecondaryMajorID} {
		if it, ok := n.canonical(domain.KindMajor, id); ok {
			majors = append(majors, it)
		}
	}
	for _, txt := range row.MajorText {
		if it, ok := n.resolve(domain.KindMajor, txt); ok {
			majors = append(majors, it)
		}
	}
	s.Majors = NewSet(majors...)

	var skills []Item
	for _, id := range row.SkillIDs {
		if it, ok := n.canonical(domain.KindSkill, id); ok {
			skills = append(skills, it)
		}
	}
	for _, txt := range row.SkillsText {
		if it, ok := n.resolve(domain.KindSkill, txt); ok {
			skills = append(skills, it)
		}
	}
	s.Skills = NewSet(skills...)

	var courses []Item
	for _, id := range row.CourseworkCategoryIDs {
		if it, ok := n.canonical(domain.KindCourseworkCategory, id); ok {
			courses = append(courses, it)
		}
	}
	for _, txt := range row.CourseworkText {
		if it, ok := n.resolveCoursework(txt); ok {
			courses = append(courses, it)
		}
	}
	s.Coursework = NewSet(courses...)

	s.AvailabilityStartMonth = month(row.AvailabilityStartMonth)
	s.HoursPerWeek = bounded(row.AvailabilityHours, maxHoursPerWeek)
	s.MaxCommuteMinutes = bounded(row.MaxCommuteMinutes, maxCommuteMinutes)
	s.Location = location(row.City, row.State, row.Zip, row.Lat, row.Lng)
	return s
}

func (n Normalizer) Internship(row domain.InternshipRow) Internship {
	in := Internship{
		ID:         strings.TrimSpace(row.ID),
		EmployerID: strings.TrimSpace(row.EmployerID),
		Title:      strings.TrimSpace(row.Title),
		CreatedAt:  row.CreatedAt,
		Experience: ParseExperience(row.ExperienceLevel),
		WorkMode:   ParseWorkMode(row.WorkMode),
		Term:       ParseSeason(row.Term),
		Location:   location(row.City, row.State, "", row.Lat, row.Lng),
		Deadline:   row.Deadline,
		Active:     row.IsActive,
	}
	in.RequiredSkills = n.links(domain.KindSkill, row.RequiredSkills)
	in.PreferredSkills = n.links(domain.KindSkill, row.PreferredSkills)
	in.Majors = n.links(domain.KindMajor, row.Majors)

	var courses []Item
	for _, l := range row.RequiredCoursework {
		if it, ok := n.canonical(domain.KindCourseworkCategory, l.ID); ok {
			courses = append(courses, it)
			continue
		}
		if it, ok := n.resolveCoursework(l.Label); ok {
			courses = append(courses, it)
		}
	}
	in.RequiredCoursework = NewSet(courses...)

	seen := map[Year]bool{}
	for _, raw := range row.TargetYears {
		switch y := ParseYear(raw); y {
		case YearAny:
			in.AnyYear = true
		case YearUnknown:
		default:
			seen[y] = true
		}
	}
	for _, y := range Years {
		if seen[y] {
			in.TargetYears = append(in.TargetYears, y)
		}
	}

	states := map[string]bool{}
	for _, st := range row.RemoteStates {
		if st = NormalizeState(st); st != "" {
			states[st] = true
		}
	}
	for st := range states {
		in.RemoteStates = append(in.RemoteStates, st)
	}
	sort.Strings(in.RemoteStates)

	in.HoursMin, in.HoursMax = rangeOf(row.HoursMin, row.HoursMax, maxHoursPerWeek)
	in.PayMin, in.PayMax = rangeOf(row.PayMin, row.PayMax, 0)
	return in
}

func (n Normalizer) links(kind domain.CatalogKind, links []domain.CatalogLink) Set {
	var items []Item
	for _, l := range links {
		if it, ok := n.canonical(kind, l.ID); ok {
			if it.Label == it.ID && strings.TrimSpace(l.Label) != "" {
				it.Label = strings.TrimSpace(l.Label)
				it.Key = catalog.NormalizeLabel(it.Label)
			}
			items = append(items, it)
			continue
		}
		if it, ok := n.resolve(kind, l.Label); ok {
			items = append(items, it)
		}
	}
	return NewSet(items...)
}

// canonical keeps persisted ids even when the catalog no longer lists them;
// the id is then its own label.
func (n Normalizer) canonical(kind domain.CatalogKind, id string) (Item, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Item{}, false
	}
	if e, ok := n.Catalog.Lookup(kind, id); ok {
		return Item{ID: e.ID, Label: e.Name, Key: catalog.NormalizeLabel(e.Name)}, true
	}
	return Item{ID: id, Label: id, Key: catalog.NormalizeLabel(id)}, true
}

func (n Normalizer) resolve(kind domain.CatalogKind, label string) (Item, bool) {
	r, ok := n.Catalog.Resolve(kind, strings.TrimSpace(label))
	if !ok {
		return Item{}, false
	}
	return Item{ID: r.ID, Label: strings.TrimSpace(r.Label), Key: r.Key}, true
}

func (n Normalizer) resolveCoursework(label string) (Item, bool) {
	r, ok := n.Catalog.ResolveCourseworkCategory(strings.TrimSpace(label))
	if !ok {
		return Item{}, false
	}
	return Item{ID: r.ID, Label: strings.TrimSpace(r.Label), Key: r.Key}, true
}

func month(p *int) int {
	if p == nil || *p < 1 || *p > 12 {
		return 0
	}
	return *p
}

// bounded returns *p when it lies in (0, max], else 0 (unknown). A max of 0
// means unbounded.
func bounded(p *int, max int) int {
	if p == nil || *p <= 0 {
		return 0
	}
	if max > 0 && *p > max {
		return 0
	}
	return *p
}

func rangeOf(lo, hi *int, max int) (int, int) {
	a, b := bounded(lo, max), bounded(hi, max)
	if a > 0 && b > 0 && a > b {
		a, b = b, a
	}
	return a, b
}

func location(city, state, zip string, lat, lng *float64) Location {
	loc := Location{
		City:  catalog.NormalizeLabel(city),
		State: NormalizeState(state),
		Zip:   strings.TrimSpace(zip),
	}
	if lat != nil && lng != nil && *lat >= -90 && *lat <= 90 && *lng >= -180 && *lng <= 180 {
		loc.Lat, loc.Lng, loc.HasCoords = *lat, *lng, true
	}
	return loc
}
