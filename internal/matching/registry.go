package matching

import (
	"fmt"
	"sort"

	"internmatch-engine/internal/config"
)

// Registry holds every known model version. Snapshots name the version they
// were scored with, so old versions stay resolvable after the current one
// moves on.
type Registry struct {
	models  map[string]Model
	current string
}

// NewRegistry validates every model; an invalid one is a startup error.
func NewRegistry(current string, models ...Model) (*Registry, error) {
	r := &Registry{models: make(map[string]Model, len(models))}
	for _, m := range models {
		if err := m.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.models[m.Version]; dup {
			return nil, fmt.Errorf("%w: version %q registered twice", ErrInvalidModel, m.Version)
		}
		r.models[m.Version] = m.Clone()
	}
	if _, ok := r.models[current]; !ok {
		return nil, fmt.Errorf("%w: current version %q is not registered", ErrInvalidModel, current)
	}
	r.current = current
	return r, nil
}

// BuildRegistry registers the built-in model plus every model declared in
// the scoring config. Declared models extend the built-in model unless they
// name another declared version.
func BuildRegistry(sc config.Scoring) (*Registry, error) {
	built := map[string]Model{DefaultVersion: DefaultModel()}
	pending := append([]config.ModelSpec(nil), sc.Models...)

	// resolve extends chains in declaration-independent order
	for len(pending) > 0 {
		progressed := false
		rest := pending[:0]
		for _, spec := range pending {
			baseVersion := spec.Extends
			if baseVersion == "" {
				baseVersion = DefaultVersion
			}
			base, ok := built[baseVersion]
			if !ok {
				rest = append(rest, spec)
				continue
			}
			if _, dup := built[spec.Version]; dup {
				return nil, fmt.Errorf("%w: version %q declared twice", ErrInvalidModel, spec.Version)
			}
			m, err := FromSpec(base, spec)
			if err != nil {
				return nil, err
			}
			built[m.Version] = m
			progressed = true
		}
		pending = rest
		if !progressed {
			return nil, fmt.Errorf("%w: model %q extends unknown version %q", ErrInvalidModel, pending[0].Version, pending[0].Extends)
		}
	}

	current := sc.CurrentVersion
	if current == "" {
		current = DefaultVersion
	}
	models := make([]Model, 0, len(built))
	for _, v := range sortedKeys(built) {
		models = append(models, built[v])
	}
	return NewRegistry(current, models...)
}

func sortedKeys(m map[string]Model) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (r *Registry) Current() Model {
	return r.models[r.current].Clone()
}

func (r *Registry) Get(version string) (Model, bool) {
	m, ok := r.models[version]
	if !ok {
		return Model{}, false
	}
	return m.Clone(), true
}

func (r *Registry) Versions() []string {
	return sortedKeys(r.models)
}
