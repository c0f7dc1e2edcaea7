// Package service loads rows, normalizes them and runs the matching engine
// for the API. It owns no state beyond its dependencies.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"internmatch-engine/internal/catalog"
	"internmatch-engine/internal/domain"
	"internmatch-engine/internal/events"
	"internmatch-engine/internal/logger"
	"internmatch-engine/internal/matching"
	"internmatch-engine/internal/profile"
	"internmatch-engine/internal/report"
	"internmatch-engine/internal/store"
)

var (
	ErrInternshipClosed = errors.New("internship is not accepting applications")
	ErrUnknownVersion   = errors.New("unknown matching version")
)

type Service struct {
	DB       *sql.DB
	Catalogs *catalog.Provider
	Registry *matching.Registry
	Events   events.Publisher
	Log      *logger.Logger

	PreviewWorkers int
	Now            func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) normalizer(ctx context.Context) (profile.Normalizer, error) {
	cat, err := s.Catalogs.Catalog(ctx)
	if err != nil {
		return profile.Normalizer{}, err
	}
	return profile.Normalizer{Catalog: cat}, nil
}

// Model returns the named model version, or the current one for "".
func (s *Service) Model(version string) (matching.Model, error) {
	if version == "" {
		return s.Registry.Current(), nil
	}
	m, ok := s.Registry.Get(version)
	if !ok {
		return matching.Model{}, fmt.Errorf("%w: %q", ErrUnknownVersion, version)
	}
	return m, nil
}

// RankOptions filters listings before ranking. Zero values mean no filter.
type RankOptions struct {
	Limit    int
	WorkMode profile.WorkMode
	Term     profile.Season
}

func (o RankOptions) keep(in profile.Internship) bool {
	if o.WorkMode != "" && in.WorkMode != o.WorkMode {
		return false
	}
	if o.Term != "" && in.Term != o.Term {
		return false
	}
	return true
}

// RankForStudent ranks every open listing for one student under the
// current model.
func (s *Service) RankForStudent(ctx context.Context, studentID string, opts RankOptions) (matching.InternshipRanking, error) {
	norm, err := s.normalizer(ctx)
	if err != nil {
		return matching.InternshipRanking{}, err
	}
	row, err := store.GetStudent(ctx, s.DB, studentID)
	if err != nil {
		return matching.InternshipRanking{}, err
	}
	now := s.now()
	rows, err := store.ListOpenInternships(ctx, s.DB, now)
	if err != nil {
		return matching.InternshipRanking{}, err
	}

	student := norm.Student(row)
	listings := make([]profile.Internship, 0, len(rows))
	for _, r := range rows {
		in := norm.Internship(r)
		if in.Open(now) && opts.keep(in) {
			listings = append(listings, in)
		}
	}

	ranking, err := matching.RankInternships(s.Registry.Current(), student, listings)
	if err != nil {
		return matching.InternshipRanking{}, err
	}
	s.logExcluded("internship", studentID, ranking.Excluded)
	if opts.Limit > 0 && len(ranking.Items) > opts.Limit {
		ranking.Items = ranking.Items[:opts.Limit]
	}
	return ranking, nil
}

// RankApplicants ranks the students who applied to a listing by live fit.
// The stored snapshots are not consulted.
func (s *Service) RankApplicants(ctx context.Context, internshipID string) (matching.ApplicantRanking, error) {
	norm, err := s.normalizer(ctx)
	if err != nil {
		return matching.ApplicantRanking{}, err
	}
	row, err := store.GetInternship(ctx, s.DB, internshipID)
	if err != nil {
		return matching.ApplicantRanking{}, err
	}
	rows, err := store.ListApplicants(ctx, s.DB, internshipID)
	if err != nil {
		return matching.ApplicantRanking{}, err
	}
	students := make([]profile.Student, 0, len(rows))
	for _, r := range rows {
		students = append(students, norm.Student(r))
	}

	ranking, err := matching.RankApplicants(s.Registry.Current(), norm.Internship(row), students)
	if err != nil {
		return matching.ApplicantRanking{}, err
	}
	s.logExcluded("student", internshipID, ranking.Excluded)
	return ranking, nil
}

func (s *Service) logExcluded(kind, subject string, excluded []matching.Excluded) {
	for _, e := range excluded {
		s.Log.Warn("pair excluded from ranking", "subject", subject, kind+"_id", e.ID, "error", e.Error)
	}
}

// Apply freezes the current match into a new application. The snapshot is
// computed before the row is written and stored in the same transaction.
func (s *Service) Apply(ctx context.Context, reqID, studentID, internshipID string) (domain.Application, error) {
	norm, err := s.normalizer(ctx)
	if err != nil {
		return domain.Application{}, err
	}
	srow, err := store.GetStudent(ctx, s.DB, studentID)
	if err != nil {
		return domain.Application{}, err
	}
	irow, err := store.GetInternship(ctx, s.DB, internshipID)
	if err != nil {
		return domain.Application{}, err
	}

	now := s.now()
	in := norm.Internship(irow)
	if !in.Open(now) {
		return domain.Application{}, fmt.Errorf("%s: %w", internshipID, ErrInternshipClosed)
	}

	snap, err := matching.BuildSnapshot(s.Registry.Current(), in, norm.Student(srow), now)
	if err != nil {
		return domain.Application{}, err
	}
	app, err := store.CreateApplication(ctx, s.DB, domain.Application{
		StudentID:       snap.StudentID,
		InternshipID:    snap.InternshipID,
		CreatedAt:       snap.CreatedAt,
		MatchScore:      snap.Score,
		MatchNormalized: snap.NormalizedScore,
		MatchReasons:    snap.Reasons,
		MatchGaps:       snap.Gaps,
		ReasonKeys:      snap.ReasonKeys,
		GapKeys:         snap.GapKeys,
		MatchingVersion: snap.MatchingVersion,
	})
	if err != nil {
		return domain.Application{}, err
	}

	s.Log.Info("application created",
		"application_id", app.ID,
		"student_id", app.StudentID,
		"internship_id", app.InternshipID,
		"match_score", app.MatchScore,
		"matching_version", app.MatchingVersion,
	)
	if s.Events != nil {
		s.Events.Publish(events.MakeEvent(reqID, events.TypeApplicationCreated, 1, events.ApplicationCreated{
			ApplicationID:   app.ID,
			StudentID:       app.StudentID,
			InternshipID:    app.InternshipID,
			MatchScore:      app.MatchScore,
			MatchNormalized: app.MatchNormalized,
			GapKeys:         app.GapKeys,
			MatchingVersion: app.MatchingVersion,
		}))
	}
	return app, nil
}

// GetApplication returns the stored application exactly as snapshotted.
func (s *Service) GetApplication(ctx context.Context, id string) (domain.Application, error) {
	return store.GetApplication(ctx, s.DB, id)
}

// ListApplications returns a listing's applications with the snapshots
// stored at apply time, newest first.
func (s *Service) ListApplications(ctx context.Context, internshipID string) ([]domain.Application, error) {
	if _, err := store.GetInternship(ctx, s.DB, internshipID); err != nil {
		return nil, err
	}
	return store.ListApplications(ctx, s.DB, internshipID)
}

// Report builds the admin report for the named model version.
func (s *Service) Report(ctx context.Context, version string) (report.Report, error) {
	m, err := s.Model(version)
	if err != nil {
		return report.Report{}, err
	}
	cat, err := s.Catalogs.Catalog(ctx)
	if err != nil {
		return report.Report{}, err
	}
	rows, err := store.ListOpenInternships(ctx, s.DB, s.now())
	if err != nil {
		return report.Report{}, err
	}
	norm := profile.Normalizer{Catalog: cat}
	listings := make([]profile.Internship, 0, len(rows))
	for _, r := range rows {
		listings = append(listings, norm.Internship(r))
	}
	return report.Build(m, s.Registry.Versions(), cat, listings, s.now())
}

// PreviewLimit caps each side of an unfiltered preview matrix.
const PreviewLimit = 200

// Preview scores the named students against the named listings. Empty id
// lists take the first PreviewLimit rows.
func (s *Service) Preview(ctx context.Context, version string, studentIDs, internshipIDs []string) (report.Preview, error) {
	m, err := s.Model(version)
	if err != nil {
		return report.Preview{}, err
	}
	norm, err := s.normalizer(ctx)
	if err != nil {
		return report.Preview{}, err
	}
	srows, err := store.ListStudents(ctx, s.DB, studentIDs, PreviewLimit)
	if err != nil {
		return report.Preview{}, err
	}
	irows, err := store.ListInternships(ctx, s.DB, internshipIDs, PreviewLimit)
	if err != nil {
		return report.Preview{}, err
	}

	students := make([]profile.Student, 0, len(srows))
	for _, r := range srows {
		students = append(students, norm.Student(r))
	}
	listings := make([]profile.Internship, 0, len(irows))
	for _, r := range irows {
		listings = append(listings, norm.Internship(r))
	}

	start := time.Now()
	p, err := report.PreviewMatrix(ctx, m, students, listings, s.PreviewWorkers)
	if err != nil {
		return report.Preview{}, err
	}
	s.Log.Debug("preview computed",
		"matching_version", p.MatchingVersion,
		"cells", len(p.Cells),
		"failed", p.Failed,
		"took_ms", time.Since(start).Milliseconds(),
	)
	return p, nil
}

// RefreshCatalog reloads the catalog into every cache and announces it.
func (s *Service) RefreshCatalog(ctx context.Context) error {
	cat, err := s.Catalogs.Refresh(ctx)
	if err != nil {
		return err
	}
	if s.Events != nil {
		s.Events.Publish(events.MakeEvent("", events.TypeCatalogRefreshed, 1, events.CatalogRefreshed{
			Skills:  len(cat.Skills),
			Majors:  len(cat.Majors),
			Courses: len(cat.CourseworkCategories),
		}))
	}
	return nil
}
