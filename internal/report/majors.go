package report

import (
	"sort"

	"internmatch-engine/internal/catalog"
	"internmatch-engine/internal/profile"
)

type InternshipRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type MajorRow struct {
	MajorID     string          `json:"major_id"`
	Major       string          `json:"major"`
	Internships []InternshipRef `json:"internships"`
}

// MajorSuggestions maps each canonical major to the listings that name it.
// Listings without a major constraint suit every major and are only counted.
type MajorSuggestions struct {
	Majors    []MajorRow      `json:"majors"`
	OpenToAll []InternshipRef `json:"open_to_all"`
}

func BuildMajorSuggestions(cat *catalog.Catalog, internships []profile.Internship) MajorSuggestions {
	var out MajorSuggestions
	byMajor := map[string][]InternshipRef{}
	for _, in := range internships {
		ref := InternshipRef{ID: in.ID, Title: in.Title}
		if in.Majors.Empty() {
			out.OpenToAll = append(out.OpenToAll, ref)
			continue
		}
		for _, id := range in.Majors.IDs() {
			byMajor[id] = append(byMajor[id], ref)
		}
	}
	sortRefs(out.OpenToAll)

	if cat != nil {
		for _, mj := range cat.Majors {
			refs := byMajor[mj.ID]
			sortRefs(refs)
			out.Majors = append(out.Majors, MajorRow{MajorID: mj.ID, Major: mj.Name, Internships: refs})
		}
	}
	sort.SliceStable(out.Majors, func(i, j int) bool {
		a, b := out.Majors[i], out.Majors[j]
		if len(a.Internships) != len(b.Internships) {
			return len(a.Internships) > len(b.Internships)
		}
		return a.MajorID < b.MajorID
	})
	return out
}

func sortRefs(refs []InternshipRef) {
	sort.Slice(refs, func(i, j int) bool { return refs[i].ID < refs[j].ID })
}
