// engine/internal/config/config.go
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// SignalSpec overrides one signal of a scoring model. Nil pointers keep the
// value inherited from the base model.
type SignalSpec struct {
	Key             string   `yaml:"key" json:"key"`
	Weight          float64  `yaml:"weight" json:"weight"`
	Description     string   `yaml:"description,omitempty" json:"description,omitempty"`
	ReasonThreshold *float64 `yaml:"reason_threshold,omitempty" json:"reason_threshold,omitempty"`
}

// ModelSpec declares one scoring model version. A model either lists all
// its signals or inherits them from Extends (default: the built-in model).
type ModelSpec struct {
	Version string       `yaml:"version" json:"version"`
	Extends string       `yaml:"extends,omitempty" json:"extends,omitempty"`
	Signals []SignalSpec `yaml:"signals,omitempty" json:"signals,omitempty"`

	AdjacentExperience *float64 `yaml:"adjacent_experience,omitempty" json:"adjacent_experience,omitempty"`
	MajorTextOverlap   *float64 `yaml:"major_text_overlap,omitempty" json:"major_text_overlap,omitempty"`
	CustomLabelMatch   *float64 `yaml:"custom_label_match,omitempty" json:"custom_label_match,omitempty"`
	GapThreshold       *float64 `yaml:"gap_threshold,omitempty" json:"gap_threshold,omitempty"`

	DefaultCommuteMinutes int `yaml:"default_commute_minutes,omitempty" json:"default_commute_minutes,omitempty"`
}

type Scoring struct {
	CurrentVersion string      `yaml:"current_version" json:"current_version"`
	Models         []ModelSpec `yaml:"models" json:"models"`
}

type Config struct {
	App struct {
		Port     int    `yaml:"port" json:"port"`
		DataDir  string `yaml:"data_dir" json:"data_dir"`
		LogMode  string `yaml:"log_mode" json:"log_mode"`
		LogLevel string `yaml:"log_level" json:"log_level"`
	} `yaml:"app" json:"app"`

	Store struct {
		Path string `yaml:"path" json:"path"`
	} `yaml:"store" json:"store"`

	Cache struct {
		RedisURL    string `yaml:"redis_url" json:"redis_url"`
		TTLSeconds  int    `yaml:"ttl_seconds" json:"ttl_seconds"`
		RefreshSpec string `yaml:"refresh_spec" json:"refresh_spec"`
	} `yaml:"cache" json:"cache"`

	API struct {
		RatePerSec     float64 `yaml:"rate_per_sec" json:"rate_per_sec"`
		Burst          int     `yaml:"burst" json:"burst"`
		PreviewWorkers int     `yaml:"preview_workers" json:"preview_workers"`
		MatchLimit     int     `yaml:"match_limit" json:"match_limit"`
	} `yaml:"api" json:"api"`

	Scoring Scoring `yaml:"scoring" json:"scoring"`
}

// Default returns the values used for anything config.yml leaves out.
func Default() Config {
	var cfg Config
	cfg.App.Port = 38471
	cfg.App.DataDir = "."
	cfg.App.LogMode = "dev"
	cfg.App.LogLevel = "info"
	cfg.Store.Path = "internmatch.db"
	cfg.Cache.TTLSeconds = 900
	cfg.Cache.RefreshSpec = "@every 15m"
	cfg.API.RatePerSec = 20
	cfg.API.Burst = 40
	cfg.API.PreviewWorkers = 8
	cfg.API.MatchLimit = 50
	return cfg
}

func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
