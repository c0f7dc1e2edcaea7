package matching

import (
	"fmt"
	"math"

	"internmatch-engine/internal/profile"
)

// Contribution is one signal's share of a match.
type Contribution struct {
	Signal   Signal   `json:"signal"`
	Weight   float64  `json:"weight"`
	RawValue float64  `json:"raw_value"`
	Points   float64  `json:"points"`
	Known    bool     `json:"known"`
	Required bool     `json:"required"`
	Matched  []string `json:"matched,omitempty"`
	Missing  []string `json:"missing,omitempty"`
	Detail   string   `json:"detail,omitempty"`
}

// Ratio is Points/Weight, the value the reason and gap thresholds apply to.
func (c Contribution) Ratio() float64 {
	if c.Weight <= 0 {
		return 0
	}
	return c.Points / c.Weight
}

type Breakdown struct {
	Contributions []Contribution `json:"contributions"`
	Reasons       []Reason       `json:"reasons"`
	Gaps          []Gap          `json:"gaps"`
}

type Totals struct {
	Score           float64 `json:"score"`
	MaxScore        float64 `json:"max_score"`
	NormalizedScore float64 `json:"normalized_score"`
}

// MatchResult is ephemeral: it is recomputed on every ranking call and only
// persisted through a Snapshot.
type MatchResult struct {
	StudentID    string `json:"student_id"`
	InternshipID string `json:"internship_id"`
	Version      string `json:"matching_version"`
	Totals
	Breakdown Breakdown `json:"breakdown"`
}

func (r MatchResult) TopReasons(n int) []Reason {
	if n < 0 || n >= len(r.Breakdown.Reasons) {
		return r.Breakdown.Reasons
	}
	return r.Breakdown.Reasons[:n]
}

func (r MatchResult) TopGaps(n int) []Gap {
	if n < 0 || n >= len(r.Breakdown.Gaps) {
		return r.Breakdown.Gaps
	}
	return r.Breakdown.Gaps[:n]
}

// Evaluate scores one student against one listing. It assumes m has been
// validated (the Registry does this) and fails only on missing ids or when
// an evaluator breaks the [0,1] contract.
func Evaluate(m Model, s profile.Student, in profile.Internship) (MatchResult, error) {
	if s.ID == "" || in.ID == "" {
		return MatchResult{}, fmt.Errorf("%w: student %q, internship %q", ErrInvalidInput, s.ID, in.ID)
	}

	contribs := make([]Contribution, 0, len(m.Signals))
	for _, d := range m.Signals {
		ev := d.Signal.evaluator()(m, s, in)
		if math.IsNaN(ev.Value) || ev.Value < 0 || ev.Value > 1 {
			return MatchResult{}, fmt.Errorf("%w: %s produced %v", ErrInvariant, d.Signal, ev.Value)
		}
		points := round4(d.Weight * ev.Value)
		if points > d.Weight {
			points = d.Weight
		}
		contribs = append(contribs, Contribution{
			Signal:   d.Signal,
			Weight:   d.Weight,
			RawValue: round4(ev.Value),
			Points:   points,
			Known:    ev.Known,
			Required: ev.Required,
			Matched:  ev.Matched,
			Missing:  ev.Missing,
			Detail:   ev.Detail,
		})
	}

	return MatchResult{
		StudentID:    s.ID,
		InternshipID: in.ID,
		Version:      m.Version,
		Totals:       Aggregate(contribs, m.MaxScore()),
		Breakdown: Breakdown{
			Contributions: contribs,
			Reasons:       Reasons(m, contribs),
			Gaps:          Gaps(m, contribs),
		},
	}, nil
}

// Aggregate sums contributions against the model's fixed maxScore.
func Aggregate(contribs []Contribution, maxScore float64) Totals {
	var score float64
	for _, c := range contribs {
		score += c.Points
	}
	score = round4(score)
	t := Totals{Score: score, MaxScore: maxScore}
	if maxScore > 0 {
		t.NormalizedScore = round4(clamp01(score / maxScore))
	}
	return t
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
