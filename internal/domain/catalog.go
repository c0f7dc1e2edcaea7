package domain

type CatalogKind string

const (
	KindSkill              CatalogKind = "skill"
	KindCourseworkCategory CatalogKind = "coursework_category"
	KindCourseworkItem     CatalogKind = "coursework_item"
	KindMajor              CatalogKind = "major"
)

// CatalogEntry is a row from one of the canonical catalog tables.
// CategoryID is only set for coursework items.
type CatalogEntry struct {
	ID         string `json:"id"`
	Slug       string `json:"slug,omitempty"`
	Name       string `json:"name"`
	CategoryID string `json:"category_id,omitempty"`
}
