package report

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"internmatch-engine/internal/matching"
	"internmatch-engine/internal/profile"
)

type PreviewCell struct {
	StudentID       string   `json:"student_id"`
	InternshipID    string   `json:"internship_id"`
	Score           float64  `json:"score"`
	NormalizedScore float64  `json:"normalized_score"`
	ReasonKeys      []string `json:"reason_keys,omitempty"`
	GapKeys         []string `json:"gap_keys,omitempty"`
	Error           string   `json:"error,omitempty"`
}

// Preview is a student x internship matrix in row-major order.
type Preview struct {
	MatchingVersion string        `json:"matching_version"`
	MaxScore        float64       `json:"max_score"`
	Cells           []PreviewCell `json:"cells"`
	Failed          int           `json:"failed"`
}

// PreviewMatrix scores every pair with at most workers evaluations in
// flight. A pair that fails is recorded in its cell; only cancellation of
// ctx aborts the batch.
func PreviewMatrix(ctx context.Context, m matching.Model, students []profile.Student, internships []profile.Internship, workers int) (Preview, error) {
	if err := m.Validate(); err != nil {
		return Preview{}, err
	}
	if workers <= 0 {
		workers = 1
	}
	out := Preview{
		MatchingVersion: m.Version,
		MaxScore:        m.MaxScore(),
		Cells:           make([]PreviewCell, len(students)*len(internships)),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range students {
		for j := range internships {
			i, j := i, j
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				// each goroutine owns one cell
				out.Cells[i*len(internships)+j] = previewCell(m, students[i], internships[j])
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return Preview{}, err
	}

	for _, c := range out.Cells {
		if c.Error != "" {
			out.Failed++
		}
	}
	return out, nil
}

func previewCell(m matching.Model, s profile.Student, in profile.Internship) PreviewCell {
	cell := PreviewCell{StudentID: s.ID, InternshipID: in.ID}
	res, err := matching.EvaluateSafe(m, s, in)
	if err != nil {
		cell.Error = err.Error()
		return cell
	}
	cell.Score = res.Score
	cell.NormalizedScore = res.NormalizedScore
	for _, r := range res.Breakdown.Reasons {
		cell.ReasonKeys = append(cell.ReasonKeys, r.Key)
	}
	for _, g := range res.Breakdown.Gaps {
		cell.GapKeys = append(cell.GapKeys, g.Key)
	}
	return cell
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
