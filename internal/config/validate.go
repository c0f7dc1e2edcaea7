package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// Validate checks the process-level settings. Scoring models are validated
// by the matching registry, which knows the signal set.
func Validate(cfg Config) error {
	var errs []string

	if cfg.App.Port <= 0 || cfg.App.Port > 65535 {
		errs = append(errs, "app.port must be 1..65535")
	}
	if strings.TrimSpace(cfg.Store.Path) == "" {
		errs = append(errs, "store.path is required")
	}
	if cfg.Cache.TTLSeconds < 0 {
		errs = append(errs, "cache.ttl_seconds must be >= 0")
	}
	if s := strings.TrimSpace(cfg.Cache.RefreshSpec); s != "" {
		if _, err := cron.ParseStandard(s); err != nil {
			errs = append(errs, fmt.Sprintf("cache.refresh_spec %q: %v", s, err))
		}
	}
	if cfg.API.RatePerSec < 0 {
		errs = append(errs, "api.rate_per_sec must be >= 0")
	}
	if cfg.API.RatePerSec > 0 && cfg.API.Burst <= 0 {
		errs = append(errs, "api.burst must be > 0 when rate limiting is on")
	}
	if cfg.API.PreviewWorkers <= 0 {
		errs = append(errs, "api.preview_workers must be > 0")
	}

	seen := map[string]bool{}
	for i, m := range cfg.Scoring.Models {
		v := strings.TrimSpace(m.Version)
		if v == "" {
			errs = append(errs, fmt.Sprintf("scoring.models[%d].version is required", i))
			continue
		}
		if seen[v] {
			errs = append(errs, fmt.Sprintf("scoring.models[%d].version %q is declared twice", i, v))
		}
		seen[v] = true
		for j, s := range m.Signals {
			if strings.TrimSpace(s.Key) == "" {
				errs = append(errs, fmt.Sprintf("scoring.models[%d].signals[%d].key is required", i, j))
			}
		}
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n- " + joinLines(errs))
	}
	return nil
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n- ")
}

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a trimmed copy of cfg plus errors and
// warnings suitable for showing to an operator.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	out.App.LogMode = strings.ToLower(strings.TrimSpace(out.App.LogMode))
	out.App.LogLevel = strings.ToLower(strings.TrimSpace(out.App.LogLevel))
	out.Cache.RedisURL = strings.TrimSpace(out.Cache.RedisURL)
	out.Scoring.CurrentVersion = strings.TrimSpace(out.Scoring.CurrentVersion)

	models := make([]ModelSpec, len(out.Scoring.Models))
	copy(models, out.Scoring.Models)
	for i := range models {
		models[i].Version = strings.TrimSpace(models[i].Version)
		models[i].Extends = strings.TrimSpace(models[i].Extends)
		sigs := make([]SignalSpec, len(models[i].Signals))
		for j, s := range models[i].Signals {
			s.Key = strings.ToLower(strings.TrimSpace(s.Key))
			sigs[j] = s
		}
		models[i].Signals = sigs
	}
	out.Scoring.Models = models

	if err := Validate(out); err != nil {
		for _, line := range strings.Split(strings.TrimPrefix(err.Error(), "config validation failed:\n- "), "\n- ") {
			res.addErr("%s", line)
		}
	}

	if out.Cache.RedisURL == "" {
		res.addWarn("cache.redis_url is empty; the catalog is cached per process only.")
	}
	if out.Cache.TTLSeconds == 0 {
		res.addWarn("cache.ttl_seconds is 0; cached catalogs never expire between refreshes.")
	}
	if out.API.RatePerSec == 0 {
		res.addWarn("api.rate_per_sec is 0; rate limiting is disabled.")
	}
	if out.API.PreviewWorkers > 64 {
		res.addWarn("api.preview_workers is %d; admin previews may starve live ranking.", out.API.PreviewWorkers)
	}
	if out.Scoring.CurrentVersion == "" && len(out.Scoring.Models) > 0 {
		res.addWarn("scoring.current_version is empty; the built-in model stays current even though %d model(s) are declared.", len(out.Scoring.Models))
	}
	if out.Scoring.CurrentVersion != "" {
		found := false
		for _, m := range out.Scoring.Models {
			if m.Version == out.Scoring.CurrentVersion {
				found = true
			}
		}
		if !found {
			res.addWarn("scoring.current_version %q is not declared in scoring.models; it must be a built-in version.", out.Scoring.CurrentVersion)
		}
	}

	return out, res
}
