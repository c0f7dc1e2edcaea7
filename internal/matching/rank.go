package matching

import (
	"fmt"
	"sort"
	"time"

	"internmatch-engine/internal/profile"
)

type RankedInternship struct {
	Internship profile.Internship `json:"internship"`
	Match      MatchResult        `json:"match"`
}

type RankedApplicant struct {
	Student profile.Student `json:"student"`
	Match   MatchResult     `json:"match"`
}

// Excluded records a pair that could not be scored. The rest of the batch
// is unaffected.
type Excluded struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

type InternshipRanking struct {
	Items    []RankedInternship `json:"items"`
	Excluded []Excluded         `json:"excluded,omitempty"`
}

type ApplicantRanking struct {
	Items    []RankedApplicant `json:"items"`
	Excluded []Excluded        `json:"excluded,omitempty"`
}

// RankInternships orders listings for one student: normalized score
// descending, then newest first, then id ascending. Filtering (category,
// remote, term, deadline) is the caller's job and must happen before.
func RankInternships(m Model, s profile.Student, listings []profile.Internship) (InternshipRanking, error) {
	if err := m.Validate(); err != nil {
		return InternshipRanking{}, err
	}
	var out InternshipRanking
	for _, in := range listings {
		res, err := EvaluateSafe(m, s, in)
		if err != nil {
			out.Excluded = append(out.Excluded, Excluded{ID: in.ID, Error: err.Error()})
			continue
		}
		out.Items = append(out.Items, RankedInternship{Internship: in, Match: res})
	}
	sort.SliceStable(out.Items, func(i, j int) bool {
		a, b := out.Items[i], out.Items[j]
		return before(a.Match.NormalizedScore, a.Internship.CreatedAt, a.Internship.ID,
			b.Match.NormalizedScore, b.Internship.CreatedAt, b.Internship.ID)
	})
	return out, nil
}

// RankApplicants orders students for one listing with the same tie-break
// rules, using the student's created_at and id.
func RankApplicants(m Model, in profile.Internship, students []profile.Student) (ApplicantRanking, error) {
	if err := m.Validate(); err != nil {
		return ApplicantRanking{}, err
	}
	var out ApplicantRanking
	for _, s := range students {
		res, err := EvaluateSafe(m, s, in)
		if err != nil {
			out.Excluded = append(out.Excluded, Excluded{ID: s.ID, Error: err.Error()})
			continue
		}
		out.Items = append(out.Items, RankedApplicant{Student: s, Match: res})
	}
	sort.SliceStable(out.Items, func(i, j int) bool {
		a, b := out.Items[i], out.Items[j]
		return before(a.Match.NormalizedScore, a.Student.CreatedAt, a.Student.ID,
			b.Match.NormalizedScore, b.Student.CreatedAt, b.Student.ID)
	})
	return out, nil
}

func before(scoreA float64, createdA time.Time, idA string, scoreB float64, createdB time.Time, idB string) bool {
	if scoreA != scoreB {
		return scoreA > scoreB
	}
	if !createdA.Equal(createdB) {
		return createdA.After(createdB)
	}
	return idA < idB
}

// EvaluateSafe is Evaluate with an evaluator panic turned into an error, so
// one malformed pair can't abort a batch.
func EvaluateSafe(m Model, s profile.Student, in profile.Internship) (res MatchResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: evaluator panic: %v", ErrInvariant, r)
		}
	}()
	return Evaluate(m, s, in)
}
