// Package catalog resolves free-text skills, coursework and majors to the
// canonical catalog. Lookups are exact on the normalized label; anything
// that does not resolve is kept as a custom label.
package catalog

import (
	"sort"

	"internmatch-engine/internal/domain"
)

type Catalog struct {
	Skills               []domain.CatalogEntry `json:"skills"`
	CourseworkCategories []domain.CatalogEntry `json:"coursework_categories"`
	CourseworkItems      []domain.CatalogEntry `json:"coursework_items"`
	Majors               []domain.CatalogEntry `json:"majors"`

	idx map[domain.CatalogKind]*index
}

type index struct {
	byID  map[string]domain.CatalogEntry
	byKey map[string]domain.CatalogEntry
}

// Resolution is the outcome of resolving one label. Custom resolutions keep
// the original label and carry the normalized Key for approximate matching.
type Resolution struct {
	ID     string
	Label  string
	Key    string
	Custom bool
}

// New builds the lookup indexes. Entries are copied and sorted by id so two
// catalogs with the same rows behave identically.
func New(skills, categories, items, majors []domain.CatalogEntry) *Catalog {
	c := &Catalog{
		Skills:               sortedCopy(skills),
		CourseworkCategories: sortedCopy(categories),
		CourseworkItems:      sortedCopy(items),
		Majors:               sortedCopy(majors),
	}
	c.build()
	return c
}

func sortedCopy(in []domain.CatalogEntry) []domain.CatalogEntry {
	out := append([]domain.CatalogEntry(nil), in...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (c *Catalog) build() {
	c.idx = map[domain.CatalogKind]*index{
		domain.KindSkill:              newIndex(c.Skills),
		domain.KindCourseworkCategory: newIndex(c.CourseworkCategories),
		domain.KindCourseworkItem:     newIndex(c.CourseworkItems),
		domain.KindMajor:              newIndex(c.Majors),
	}
}

func newIndex(entries []domain.CatalogEntry) *index {
	ix := &index{
		byID:  make(map[string]domain.CatalogEntry, len(entries)),
		byKey: make(map[string]domain.CatalogEntry, len(entries)*2),
	}
	for _, e := range entries {
		if e.ID == "" {
			continue
		}
		ix.byID[e.ID] = e
		// first entry wins on key collisions; entries are id-sorted
		for _, k := range []string{NormalizeLabel(e.Name), NormalizeLabel(e.Slug)} {
			if k == "" {
				continue
			}
			if _, ok := ix.byKey[k]; !ok {
				ix.byKey[k] = e
			}
		}
	}
	return ix
}

// index is nil for catalogs that were not built with New; every label then
// resolves as custom.
func (c *Catalog) index(kind domain.CatalogKind) *index {
	if c == nil || c.idx == nil {
		return nil
	}
	return c.idx[kind]
}

// Resolve maps a label (or an id) to a catalog entry of the given kind.
// ok is false only for empty input.
func (c *Catalog) Resolve(kind domain.CatalogKind, label string) (Resolution, bool) {
	key := NormalizeLabel(label)
	if key == "" {
		return Resolution{}, false
	}
	if ix := c.index(kind); ix != nil {
		if e, ok := ix.byID[label]; ok {
			return Resolution{ID: e.ID, Label: e.Name, Key: NormalizeLabel(e.Name)}, true
		}
		if e, ok := ix.byKey[key]; ok {
			return Resolution{ID: e.ID, Label: e.Name, Key: NormalizeLabel(e.Name)}, true
		}
	}
	return Resolution{Label: label, Key: key, Custom: true}, true
}

// ResolveCourseworkCategory resolves a label to a coursework category,
// either directly or through a coursework item that belongs to one.
func (c *Catalog) ResolveCourseworkCategory(label string) (Resolution, bool) {
	r, ok := c.Resolve(domain.KindCourseworkCategory, label)
	if !ok || !r.Custom {
		return r, ok
	}
	item, ok := c.Resolve(domain.KindCourseworkItem, label)
	if !ok || item.Custom {
		return r, true
	}
	entry, _ := c.Lookup(domain.KindCourseworkItem, item.ID)
	cat, found := c.Lookup(domain.KindCourseworkCategory, entry.CategoryID)
	if !found {
		return r, true
	}
	return Resolution{ID: cat.ID, Label: cat.Name, Key: NormalizeLabel(cat.Name)}, true
}

// Lookup returns the entry for a canonical id.
func (c *Catalog) Lookup(kind domain.CatalogKind, id string) (domain.CatalogEntry, bool) {
	ix := c.index(kind)
	if ix == nil || id == "" {
		return domain.CatalogEntry{}, false
	}
	e, ok := ix.byID[id]
	return e, ok
}

// Name renders a canonical id for humans, falling back to the id itself.
func (c *Catalog) Name(kind domain.CatalogKind, id string) string {
	if e, ok := c.Lookup(kind, id); ok && e.Name != "" {
		return e.Name
	}
	return id
}
