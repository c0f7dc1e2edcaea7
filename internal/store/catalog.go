package store

import (
	"context"
	"database/sql"
	"fmt"

	"internmatch-engine/internal/catalog"
	"internmatch-engine/internal/domain"
)

var catalogTables = map[domain.CatalogKind]string{
	domain.KindSkill:              "skills",
	domain.KindCourseworkCategory: "coursework_categories",
	domain.KindCourseworkItem:     "coursework_items",
	domain.KindMajor:              "majors",
}

// UpsertCatalog inserts or renames catalog entries of one kind.
func UpsertCatalog(ctx context.Context, db *sql.DB, kind domain.CatalogKind, entries []domain.CatalogEntry) error {
	table, ok := catalogTables[kind]
	if !ok {
		return fmt.Errorf("unknown catalog kind %q", kind)
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var stmt string
	if kind == domain.KindCourseworkItem {
		stmt = `
INSERT INTO coursework_items(id, slug, name, category_id) VALUES(?,?,?,?)
ON CONFLICT(id) DO UPDATE SET slug=excluded.slug, name=excluded.name, category_id=excluded.category_id;`
	} else {
		stmt = fmt.Sprintf(`
INSERT INTO %s(id, slug, name) VALUES(?,?,?)
ON CONFLICT(id) DO UPDATE SET slug=excluded.slug, name=excluded.name;`, table)
	}
	for _, e := range entries {
		args := []any{e.ID, e.Slug, e.Name}
		if kind == domain.KindCourseworkItem {
			args = append(args, e.CategoryID)
		}
		if _, err := tx.ExecContext(ctx, stmt, args...); err != nil {
			return fmt.Errorf("upsert %s %q: %w", kind, e.ID, err)
		}
	}
	return tx.Commit()
}

func listCatalog(ctx context.Context, db *sql.DB, kind domain.CatalogKind) ([]domain.CatalogEntry, error) {
	query := fmt.Sprintf(`SELECT id, slug, name, '' FROM %s ORDER BY id;`, catalogTables[kind])
	if kind == domain.KindCourseworkItem {
		query = `SELECT id, slug, name, category_id FROM coursework_items ORDER BY id;`
	}
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.CatalogEntry
	for rows.Next() {
		var e domain.CatalogEntry
		if err := rows.Scan(&e.ID, &e.Slug, &e.Name, &e.CategoryID); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// LoadCatalog reads all four catalog tables.
func LoadCatalog(ctx context.Context, db *sql.DB) (*catalog.Catalog, error) {
	lists := make(map[domain.CatalogKind][]domain.CatalogEntry, len(catalogTables))
	for kind := range catalogTables {
		entries, err := listCatalog(ctx, db, kind)
		if err != nil {
			return nil, fmt.Errorf("load %s catalog: %w", kind, err)
		}
		lists[kind] = entries
	}
	return catalog.New(
		lists[domain.KindSkill],
		lists[domain.KindCourseworkCategory],
		lists[domain.KindCourseworkItem],
		lists[domain.KindMajor],
	), nil
}

// CatalogLoader adapts the database to catalog.Loader.
type CatalogLoader struct {
	DB *sql.DB
}

func (l CatalogLoader) LoadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	return LoadCatalog(ctx, l.DB)
}
