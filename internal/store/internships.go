package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"internmatch-engine/internal/domain"
)

const (
	linkRequiredSkill      = "required_skill"
	linkPreferredSkill     = "preferred_skill"
	linkRequiredCoursework = "required_coursework"
	linkMajor              = "major"
)

// UpsertInternship writes the listing and replaces its catalog links.
func UpsertInternship(ctx context.Context, db *sql.DB, in domain.InternshipRow) error {
	if in.ID == "" {
		return errors.New("internship id is required")
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
INSERT INTO internships(
  id, employer_id, title, created_at, target_years, experience_level, work_mode,
  remote_states, term, hours_min, hours_max, pay_min, pay_max,
  city, state, lat, lng, deadline, is_active)
VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
ON CONFLICT(id) DO UPDATE SET
  employer_id=excluded.employer_id,
  title=excluded.title,
  target_years=excluded.target_years,
  experience_level=excluded.experience_level,
  work_mode=excluded.work_mode,
  remote_states=excluded.remote_states,
  term=excluded.term,
  hours_min=excluded.hours_min, hours_max=excluded.hours_max,
  pay_min=excluded.pay_min, pay_max=excluded.pay_max,
  city=excluded.city, state=excluded.state,
  lat=excluded.lat, lng=excluded.lng,
  deadline=excluded.deadline,
  is_active=excluded.is_active;`,
		in.ID, in.EmployerID, in.Title, formatTime(in.CreatedAt), encodeList(in.TargetYears), in.ExperienceLevel, in.WorkMode,
		encodeList(in.RemoteStates), in.Term, nullInt(in.HoursMin), nullInt(in.HoursMax), nullInt(in.PayMin), nullInt(in.PayMax),
		in.City, in.State, nullFloat(in.Lat), nullFloat(in.Lng), nullTime(in.Deadline), in.IsActive,
	)
	if err != nil {
		return fmt.Errorf("upsert internship %q: %w", in.ID, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM internship_links WHERE internship_id = ?;`, in.ID); err != nil {
		return err
	}
	for kind, links := range map[string][]domain.CatalogLink{
		linkRequiredSkill:      in.RequiredSkills,
		linkPreferredSkill:     in.PreferredSkills,
		linkRequiredCoursework: in.RequiredCoursework,
		linkMajor:              in.Majors,
	} {
		for pos, l := range links {
			if _, err := tx.ExecContext(ctx, `
INSERT INTO internship_links(internship_id, kind, position, catalog_id, label) VALUES(?,?,?,?,?);`,
				in.ID, kind, pos, l.ID, l.Label); err != nil {
				return fmt.Errorf("link %s: %w", kind, err)
			}
		}
	}
	return tx.Commit()
}

// SetInternshipActive soft-(de)activates a listing. Existing applications
// and their snapshots are untouched.
func SetInternshipActive(ctx context.Context, db *sql.DB, id string, active bool) error {
	res, err := db.ExecContext(ctx, `UPDATE internships SET is_active = ? WHERE id = ?;`, active, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("internship %q: %w", id, ErrNotFound)
	}
	return nil
}

const internshipColumns = `
  id, employer_id, title, created_at, target_years, experience_level, work_mode,
  remote_states, term, hours_min, hours_max, pay_min, pay_max,
  city, state, lat, lng, deadline, is_active`

func scanInternship(row interface{ Scan(...any) error }) (domain.InternshipRow, error) {
	var (
		in                                 domain.InternshipRow
		created, years, states             string
		hoursMin, hoursMax, payMin, payMax sql.NullInt64
		lat, lng                           sql.NullFloat64
		deadline                           sql.NullString
	)
	err := row.Scan(
		&in.ID, &in.EmployerID, &in.Title, &created, &years, &in.ExperienceLevel, &in.WorkMode,
		&states, &in.Term, &hoursMin, &hoursMax, &payMin, &payMax,
		&in.City, &in.State, &lat, &lng, &deadline, &in.IsActive,
	)
	if err != nil {
		return domain.InternshipRow{}, err
	}
	in.CreatedAt = parseTime(created)
	in.TargetYears = decodeList(years)
	in.RemoteStates = decodeList(states)
	in.HoursMin, in.HoursMax = intPtr(hoursMin), intPtr(hoursMax)
	in.PayMin, in.PayMax = intPtr(payMin), intPtr(payMax)
	in.Lat, in.Lng = floatPtr(lat), floatPtr(lng)
	in.Deadline = timePtr(deadline)
	return in, nil
}

func GetInternship(ctx context.Context, db *sql.DB, id string) (domain.InternshipRow, error) {
	in, err := scanInternship(db.QueryRowContext(ctx, `SELECT `+internshipColumns+` FROM internships WHERE id = ?;`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.InternshipRow{}, fmt.Errorf("internship %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return domain.InternshipRow{}, err
	}
	if err := loadInternshipLinks(ctx, db, []*domain.InternshipRow{&in}); err != nil {
		return domain.InternshipRow{}, err
	}
	return in, nil
}

// ListOpenInternships returns active listings whose deadline has not passed
// at now, newest first.
func ListOpenInternships(ctx context.Context, db *sql.DB, now time.Time) ([]domain.InternshipRow, error) {
	return queryInternships(ctx, db, `
SELECT `+internshipColumns+`
FROM internships
WHERE is_active = 1 AND (deadline IS NULL OR deadline >= ?)
ORDER BY created_at DESC, id;`, formatTime(now))
}

// ListInternships returns the named listings, or every listing (up to
// limit) when ids is empty.
func ListInternships(ctx context.Context, db *sql.DB, ids []string, limit int) ([]domain.InternshipRow, error) {
	query := `SELECT ` + internshipColumns + ` FROM internships`
	var args []any
	if len(ids) > 0 {
		query += ` WHERE id IN (` + placeholders(len(ids)) + `)`
		args = stringArgs(ids)
	}
	query += ` ORDER BY id`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	return queryInternships(ctx, db, query+`;`, args...)
}

func queryInternships(ctx context.Context, db *sql.DB, query string, args ...any) ([]domain.InternshipRow, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	var out []domain.InternshipRow
	for rows.Next() {
		in, err := scanInternship(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, in)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ptrs := make([]*domain.InternshipRow, len(out))
	for i := range out {
		ptrs[i] = &out[i]
	}
	if err := loadInternshipLinks(ctx, db, ptrs); err != nil {
		return nil, err
	}
	return out, nil
}

func loadInternshipLinks(ctx context.Context, db *sql.DB, listings []*domain.InternshipRow) error {
	if len(listings) == 0 {
		return nil
	}
	byID := make(map[string]*domain.InternshipRow, len(listings))
	ids := make([]string, 0, len(listings))
	for _, in := range listings {
		byID[in.ID] = in
		ids = append(ids, in.ID)
	}

	rows, err := db.QueryContext(ctx, `
SELECT internship_id, kind, catalog_id, label
FROM internship_links
WHERE internship_id IN (`+placeholders(len(ids))+`)
ORDER BY internship_id, kind, position;`, stringArgs(ids)...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var id, kind string
		var l domain.CatalogLink
		if err := rows.Scan(&id, &kind, &l.ID, &l.Label); err != nil {
			return err
		}
		in := byID[id]
		if in == nil {
			continue
		}
		switch kind {
		case linkRequiredSkill:
			in.RequiredSkills = append(in.RequiredSkills, l)
		case linkPreferredSkill:
			in.PreferredSkills = append(in.PreferredSkills, l)
		case linkRequiredCoursework:
			in.RequiredCoursework = append(in.RequiredCoursework, l)
		case linkMajor:
			in.Majors = append(in.Majors, l)
		}
	}
	return rows.Err()
}
