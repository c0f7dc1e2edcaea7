package catalog

import (
	"context"
	"fmt"

	"internmatch-engine/internal/logger"
)

// Loader reads the catalog tables. The store implements it.
type Loader interface {
	LoadCatalog(ctx context.Context) (*Catalog, error)
}

// Provider serves catalogs cache-aside: caches are consulted in order, a hit
// in a later cache backfills the earlier ones, and a full miss loads from the
// Loader and fills every cache.
type Provider struct {
	loader Loader
	caches []Cache
	log    *logger.Logger
}

func NewProvider(loader Loader, log *logger.Logger, caches ...Cache) *Provider {
	return &Provider{loader: loader, caches: caches, log: log}
}

func (p *Provider) Catalog(ctx context.Context) (*Catalog, error) {
	for i, c := range p.caches {
		cat, ok, err := c.Get(ctx)
		if err != nil {
			// a broken shared cache must not take matching down
			p.log.Warn("catalog cache read failed", "cache_index", i, "error", err)
			continue
		}
		if !ok {
			continue
		}
		for _, earlier := range p.caches[:i] {
			_ = earlier.Set(ctx, cat)
		}
		return cat, nil
	}
	return p.Refresh(ctx)
}

// Refresh reloads from the catalog tables and overwrites every cache.
func (p *Provider) Refresh(ctx context.Context) (*Catalog, error) {
	cat, err := p.loader.LoadCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	for i, c := range p.caches {
		if err := c.Set(ctx, cat); err != nil {
			p.log.Warn("catalog cache write failed", "cache_index", i, "error", err)
		}
	}
	p.log.Debug("catalog loaded",
		"skills", len(cat.Skills),
		"coursework_categories", len(cat.CourseworkCategories),
		"majors", len(cat.Majors),
	)
	return cat, nil
}
