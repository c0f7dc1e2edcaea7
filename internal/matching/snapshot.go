package matching

import (
	"time"

	"internmatch-engine/internal/profile"
)

// Snapshot is the match frozen onto an application when it is submitted.
// It is written once with the application row and never recomputed; a
// later model version only affects applications created after it.
type Snapshot struct {
	StudentID       string    `json:"student_id"`
	InternshipID    string    `json:"internship_id"`
	Score           float64   `json:"match_score"`
	MaxScore        float64   `json:"max_score"`
	NormalizedScore float64   `json:"normalized_score"`
	Reasons         []string  `json:"match_reasons"`
	Gaps            []string  `json:"match_gaps"`
	ReasonKeys      []string  `json:"reason_keys"`
	GapKeys         []string  `json:"gap_keys"`
	MatchingVersion string    `json:"matching_version"`
	CreatedAt       time.Time `json:"created_at"`
}

func BuildSnapshot(m Model, in profile.Internship, s profile.Student, now time.Time) (Snapshot, error) {
	if err := m.Validate(); err != nil {
		return Snapshot{}, err
	}
	res, err := EvaluateSafe(m, s, in)
	if err != nil {
		return Snapshot{}, err
	}
	snap := Snapshot{
		StudentID:       s.ID,
		InternshipID:    in.ID,
		Score:           res.Score,
		MaxScore:        res.MaxScore,
		NormalizedScore: res.NormalizedScore,
		Reasons:         make([]string, 0, len(res.Breakdown.Reasons)),
		Gaps:            make([]string, 0, len(res.Breakdown.Gaps)),
		ReasonKeys:      make([]string, 0, len(res.Breakdown.Reasons)),
		GapKeys:         make([]string, 0, len(res.Breakdown.Gaps)),
		MatchingVersion: m.Version,
		CreatedAt:       now.UTC(),
	}
	for _, r := range res.Breakdown.Reasons {
		snap.Reasons = append(snap.Reasons, r.Text)
		snap.ReasonKeys = append(snap.ReasonKeys, r.Key)
	}
	for _, g := range res.Breakdown.Gaps {
		snap.Gaps = append(snap.Gaps, g.Text)
		snap.GapKeys = append(snap.GapKeys, g.Key)
	}
	return snap, nil
}
