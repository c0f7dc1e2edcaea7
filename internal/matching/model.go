package matching

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"internmatch-engine/internal/config"
	"internmatch-engine/internal/profile"
)

// DefaultVersion names the built-in model. Any change to evaluator logic or
// default weights must ship under a new version.
const DefaultVersion = "1.0.0"

var (
	// ErrInvalidModel is a configuration error: the model can't be used.
	ErrInvalidModel = errors.New("invalid scoring model")
	// ErrInvariant means an evaluator produced an out-of-range value.
	ErrInvariant = errors.New("scoring invariant violated")
	// ErrInvalidInput is returned for profiles or listings without an id.
	ErrInvalidInput = errors.New("invalid match input")
)

type SignalDefinition struct {
	Signal          Signal  `json:"key"`
	Weight          float64 `json:"weight"`
	Description     string  `json:"description"`
	ReasonThreshold float64 `json:"reason_threshold"`
}

type PartialCredit struct {
	AdjacentExperience float64 `json:"adjacent_experience"`
	MajorTextOverlap   float64 `json:"major_text_overlap"`
	CustomLabelMatch   float64 `json:"custom_label_match"`
}

// Speeds are door-to-door averages in km/h used for commute estimates.
type Speeds struct {
	Car     float64 `json:"car"`
	Transit float64 `json:"transit"`
	Bike    float64 `json:"bike"`
	Walk    float64 `json:"walk"`
}

func (s Speeds) For(t profile.Transport) float64 {
	switch t {
	case profile.TransportTransit:
		return s.Transit
	case profile.TransportBike:
		return s.Bike
	case profile.TransportWalk:
		return s.Walk
	default:
		return s.Car
	}
}

// Model is one immutable version of the scoring rules. Pass it by value;
// use Clone before handing it to code that might keep the slice.
type Model struct {
	Version               string             `json:"version"`
	Signals               []SignalDefinition `json:"signals"`
	Partial               PartialCredit      `json:"partial"`
	GapThreshold          float64            `json:"gap_threshold"`
	DefaultCommuteMinutes int                `json:"default_commute_minutes"`
	Speeds                Speeds             `json:"speeds"`
}

func DefaultModel() Model {
	m := Model{
		Version: DefaultVersion,
		Partial: PartialCredit{
			AdjacentExperience: 0.5,
			MajorTextOverlap:   0.5,
			CustomLabelMatch:   0.5,
		},
		GapThreshold:          0,
		DefaultCommuteMinutes: 45,
		Speeds:                Speeds{Car: 40, Transit: 22, Bike: 15, Walk: 5},
	}
	for _, s := range AllSignals {
		m.Signals = append(m.Signals, SignalDefinition{
			Signal:          s,
			Weight:          s.defaultWeight(),
			Description:     s.DefaultDescription(),
			ReasonThreshold: s.Kind().defaultReasonThreshold(),
		})
	}
	return m
}

func (m Model) Clone() Model {
	m.Signals = append([]SignalDefinition(nil), m.Signals...)
	return m
}

// MaxScore is the sum of all weights. It does not depend on which signals
// had data for a given pair.
func (m Model) MaxScore() float64 {
	var total float64
	for _, d := range m.Signals {
		total += d.Weight
	}
	return total
}

func (m Model) Definition(s Signal) (SignalDefinition, bool) {
	for _, d := range m.Signals {
		if d.Signal == s {
			return d, true
		}
	}
	return SignalDefinition{}, false
}

func (m Model) Validate() error {
	var errs []string
	add := func(format string, args ...any) { errs = append(errs, fmt.Sprintf(format, args...)) }

	if strings.TrimSpace(m.Version) == "" {
		add("version is required")
	}
	if len(m.Signals) == 0 {
		add("at least one signal is required")
	}
	seen := map[Signal]bool{}
	for i, d := range m.Signals {
		if _, err := ParseSignal(string(d.Signal)); err != nil {
			add("signals[%d]: %v", i, err)
			continue
		}
		if seen[d.Signal] {
			add("signals[%d]: %s declared twice", i, d.Signal)
		}
		seen[d.Signal] = true
		if math.IsNaN(d.Weight) || math.IsInf(d.Weight, 0) || d.Weight <= 0 {
			add("signals[%d]: %s weight must be a positive number", i, d.Signal)
		}
		if !unit(d.ReasonThreshold) || d.ReasonThreshold <= m.GapThreshold {
			add("signals[%d]: %s reason_threshold must be in (gap_threshold, 1]", i, d.Signal)
		}
	}
	if len(m.Signals) > 0 && !(m.MaxScore() > 0) {
		add("total weight must be > 0")
	}
	if !unit(m.GapThreshold) || m.GapThreshold >= 1 {
		add("gap_threshold must be in [0, 1)")
	}
	for name, v := range map[string]float64{
		"adjacent_experience": m.Partial.AdjacentExperience,
		"major_text_overlap":  m.Partial.MajorTextOverlap,
		"custom_label_match":  m.Partial.CustomLabelMatch,
	} {
		if !unit(v) {
			add("%s must be in [0, 1]", name)
		}
	}
	if m.DefaultCommuteMinutes <= 0 {
		add("default_commute_minutes must be > 0")
	}
	for _, v := range []float64{m.Speeds.Car, m.Speeds.Transit, m.Speeds.Bike, m.Speeds.Walk} {
		if !(v > 0) {
			add("speeds must be > 0")
			break
		}
	}

	if len(errs) > 0 {
		sort.Strings(errs)
		return fmt.Errorf("%w %q: %s", ErrInvalidModel, m.Version, strings.Join(errs, "; "))
	}
	return nil
}

func unit(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}

// FromSpec derives a model from base using a YAML model declaration.
func FromSpec(base Model, spec config.ModelSpec) (Model, error) {
	m := base.Clone()
	m.Version = strings.TrimSpace(spec.Version)

	if len(spec.Signals) > 0 {
		m.Signals = m.Signals[:0:0]
		for _, ss := range spec.Signals {
			sig, err := ParseSignal(ss.Key)
			if err != nil {
				return Model{}, fmt.Errorf("%w %q: %v", ErrInvalidModel, m.Version, err)
			}
			d := SignalDefinition{
				Signal:          sig,
				Weight:          ss.Weight,
				Description:     strings.TrimSpace(ss.Description),
				ReasonThreshold: sig.Kind().defaultReasonThreshold(),
			}
			if prev, ok := base.Definition(sig); ok {
				d.ReasonThreshold = prev.ReasonThreshold
				if d.Description == "" {
					d.Description = prev.Description
				}
			}
			if d.Description == "" {
				d.Description = sig.DefaultDescription()
			}
			if ss.ReasonThreshold != nil {
				d.ReasonThreshold = *ss.ReasonThreshold
			}
			m.Signals = append(m.Signals, d)
		}
	}
	if spec.AdjacentExperience != nil {
		m.Partial.AdjacentExperience = *spec.AdjacentExperience
	}
	if spec.MajorTextOverlap != nil {
		m.Partial.MajorTextOverlap = *spec.MajorTextOverlap
	}
	if spec.CustomLabelMatch != nil {
		m.Partial.CustomLabelMatch = *spec.CustomLabelMatch
	}
	if spec.GapThreshold != nil {
		m.GapThreshold = *spec.GapThreshold
	}
	if spec.DefaultCommuteMinutes > 0 {
		m.DefaultCommuteMinutes = spec.DefaultCommuteMinutes
	}
	return m, m.Validate()
}
