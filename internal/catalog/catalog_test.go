package catalog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"internmatch-engine/internal/catalog"
	"internmatch-engine/internal/domain"
	"internmatch-engine/internal/logger"
)

func testCatalog() *catalog.Catalog {
	return catalog.New(
		[]domain.CatalogEntry{
			{ID: "sk-sql", Slug: "sql", Name: "SQL"},
			{ID: "sk-excel", Slug: "excel", Name: "Microsoft Excel"},
			{ID: "sk-cpp", Slug: "cpp", Name: "C++"},
			{ID: "sk-c", Slug: "c", Name: "C"},
		},
		[]domain.CatalogEntry{
			{ID: "cc-db", Slug: "databases", Name: "Databases"},
		},
		[]domain.CatalogEntry{
			{ID: "ci-1", Name: "Intro to Databases", CategoryID: "cc-db"},
		},
		[]domain.CatalogEntry{
			{ID: "mj-cs", Slug: "computer-science", Name: "Computer Science"},
		},
	)
}

func TestNormalizeLabel(t *testing.T) {
	cases := map[string]string{
		"  Microsoft   EXCEL ": "microsoft excel",
		"Node.js":              "node js",
		"C++":                  "c++",
		"C#":                   "c#",
		"data\u2014analysis":   "data analysis",
		"R&D":                  "r d",
		"":                     "",
		"...":                  "",
	}
	for in, want := range cases {
		if got := catalog.NormalizeLabel(in); got != want {
			t.Errorf("NormalizeLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestResolve(t *testing.T) {
	c := testCatalog()

	cases := []struct {
		label  string
		wantID string
		custom bool
	}{
		{"sk-sql", "sk-sql", false},
		{"sql", "sk-sql", false},
		{" microsoft excel", "sk-excel", false},
		{"EXCEL", "sk-excel", false}, // slug
		{"C++", "sk-cpp", false},
		{"c", "sk-c", false},
		{"Tableau", "", true},
	}
	for _, tc := range cases {
		r, ok := c.Resolve(domain.KindSkill, tc.label)
		if !ok {
			t.Fatalf("Resolve(%q) not ok", tc.label)
		}
		if r.ID != tc.wantID || r.Custom != tc.custom {
			t.Errorf("Resolve(%q) = %+v, want id=%q custom=%v", tc.label, r, tc.wantID, tc.custom)
		}
	}

	if _, ok := c.Resolve(domain.KindSkill, "   "); ok {
		t.Error("blank label should not resolve")
	}
	r, _ := c.Resolve(domain.KindSkill, "Tableau")
	if r.Label != "Tableau" || r.Key != "tableau" {
		t.Errorf("custom label not preserved: %+v", r)
	}
}

func TestResolveCourseworkCategoryThroughItem(t *testing.T) {
	c := testCatalog()
	r, ok := c.ResolveCourseworkCategory("intro to databases")
	if !ok || r.ID != "cc-db" {
		t.Fatalf("got %+v ok=%v, want cc-db", r, ok)
	}
	r, _ = c.ResolveCourseworkCategory("Underwater Basket Weaving")
	if !r.Custom {
		t.Errorf("unknown course should stay custom, got %+v", r)
	}
}

func TestZeroCatalogResolvesEverythingCustom(t *testing.T) {
	var c catalog.Catalog
	r, ok := c.Resolve(domain.KindMajor, "Computer Science")
	if !ok || !r.Custom {
		t.Errorf("got %+v ok=%v", r, ok)
	}
}

type countingLoader struct {
	n   int
	cat *catalog.Catalog
	err error
}

func (l *countingLoader) LoadCatalog(context.Context) (*catalog.Catalog, error) {
	l.n++
	return l.cat, l.err
}

type brokenCache struct{}

func (brokenCache) Get(context.Context) (*catalog.Catalog, bool, error) {
	return nil, false, errors.New("connection refused")
}
func (brokenCache) Set(context.Context, *catalog.Catalog) error { return errors.New("connection refused") }

func TestProviderCacheAside(t *testing.T) {
	ctx := context.Background()
	loader := &countingLoader{cat: testCatalog()}
	mem := catalog.NewMemoryCache(time.Hour)
	p := catalog.NewProvider(loader, logger.Nop(), mem, brokenCache{})

	for i := 0; i < 3; i++ {
		cat, err := p.Catalog(ctx)
		if err != nil {
			t.Fatalf("Catalog: %v", err)
		}
		if cat.Name(domain.KindMajor, "mj-cs") != "Computer Science" {
			t.Fatal("unexpected catalog contents")
		}
	}
	if loader.n != 1 {
		t.Errorf("loader called %d times, want 1", loader.n)
	}

	if _, err := p.Refresh(ctx); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if loader.n != 2 {
		t.Errorf("Refresh should reload, loader called %d times", loader.n)
	}
}

func TestProviderLoaderError(t *testing.T) {
	loader := &countingLoader{err: errors.New("db down")}
	p := catalog.NewProvider(loader, logger.Nop(), catalog.NewMemoryCache(0))
	if _, err := p.Catalog(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
