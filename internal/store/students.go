package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"internmatch-engine/internal/domain"
)

// UpsertStudent writes the profile row and replaces its skill and
// coursework links.
func UpsertStudent(ctx context.Context, db *sql.DB, s domain.StudentRow) error {
	if s.ID == "" {
		return errors.New("student id is required")
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
INSERT INTO students(
  id, school, created_at, primary_major_id, secondary_major_id, major_text,
  year, experience_level, skills_text, coursework_text,
  availability_start_month, availability_hours,
  city, state, zip, lat, lng, max_commute_minutes, transport_mode)
VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
ON CONFLICT(id) DO UPDATE SET
  school=excluded.school,
  primary_major_id=excluded.primary_major_id,
  secondary_major_id=excluded.secondary_major_id,
  major_text=excluded.major_text,
  year=excluded.year,
  experience_level=excluded.experience_level,
  skills_text=excluded.skills_text,
  coursework_text=excluded.coursework_text,
  availability_start_month=excluded.availability_start_month,
  availability_hours=excluded.availability_hours,
  city=excluded.city, state=excluded.state, zip=excluded.zip,
  lat=excluded.lat, lng=excluded.lng,
  max_commute_minutes=excluded.max_commute_minutes,
  transport_mode=excluded.transport_mode;`,
		s.ID, s.School, formatTime(s.CreatedAt), s.PrimaryMajorID, s.SecondaryMajorID, encodeList(s.MajorText),
		s.Year, s.ExperienceLevel, encodeList(s.SkillsText), encodeList(s.CourseworkText),
		nullInt(s.AvailabilityStartMonth), nullInt(s.AvailabilityHours),
		s.City, s.State, s.Zip, nullFloat(s.Lat), nullFloat(s.Lng), nullInt(s.MaxCommuteMinutes), s.TransportMode,
	)
	if err != nil {
		return fmt.Errorf("upsert student %q: %w", s.ID, err)
	}

	if err := replaceLinks(ctx, tx, "student_skills", "skill_id", s.ID, s.SkillIDs); err != nil {
		return err
	}
	if err := replaceLinks(ctx, tx, "student_coursework", "category_id", s.ID, s.CourseworkCategoryIDs); err != nil {
		return err
	}
	return tx.Commit()
}

func replaceLinks(ctx context.Context, tx *sql.Tx, table, col, studentID string, ids []string) error {
	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE student_id = ?;`, table), studentID); err != nil {
		return err
	}
	stmt := fmt.Sprintf(`INSERT OR IGNORE INTO %s(student_id, %s) VALUES(?, ?);`, table, col)
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, stmt, studentID, id); err != nil {
			return fmt.Errorf("link %s %q: %w", table, id, err)
		}
	}
	return nil
}

const studentColumns = `
  id, school, created_at, primary_major_id, secondary_major_id, major_text,
  year, experience_level, skills_text, coursework_text,
  availability_start_month, availability_hours,
  city, state, zip, lat, lng, max_commute_minutes, transport_mode`

func scanStudent(row interface{ Scan(...any) error }) (domain.StudentRow, error) {
	var (
		s                                   domain.StudentRow
		created, majorText, skills, courses string
		startMonth, hours, commute          sql.NullInt64
		lat, lng                            sql.NullFloat64
	)
	err := row.Scan(
		&s.ID, &s.School, &created, &s.PrimaryMajorID, &s.SecondaryMajorID, &majorText,
		&s.Year, &s.ExperienceLevel, &skills, &courses,
		&startMonth, &hours,
		&s.City, &s.State, &s.Zip, &lat, &lng, &commute, &s.TransportMode,
	)
	if err != nil {
		return domain.StudentRow{}, err
	}
	s.CreatedAt = parseTime(created)
	s.MajorText = decodeList(majorText)
	s.SkillsText = decodeList(skills)
	s.CourseworkText = decodeList(courses)
	s.AvailabilityStartMonth = intPtr(startMonth)
	s.AvailabilityHours = intPtr(hours)
	s.MaxCommuteMinutes = intPtr(commute)
	s.Lat = floatPtr(lat)
	s.Lng = floatPtr(lng)
	return s, nil
}

func GetStudent(ctx context.Context, db *sql.DB, id string) (domain.StudentRow, error) {
	s, err := scanStudent(db.QueryRowContext(ctx, `SELECT `+studentColumns+` FROM students WHERE id = ?;`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.StudentRow{}, fmt.Errorf("student %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return domain.StudentRow{}, err
	}
	if err := loadStudentLinks(ctx, db, []*domain.StudentRow{&s}); err != nil {
		return domain.StudentRow{}, err
	}
	return s, nil
}

// ListStudents returns the named students, or every student (up to limit)
// when ids is empty. Unknown ids are skipped.
func ListStudents(ctx context.Context, db *sql.DB, ids []string, limit int) ([]domain.StudentRow, error) {
	query := `SELECT ` + studentColumns + ` FROM students`
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
	return queryStudents(ctx, db, query+`;`, args...)
}

// ListApplicants returns every student who applied to the internship.
func ListApplicants(ctx context.Context, db *sql.DB, internshipID string) ([]domain.StudentRow, error) {
	return queryStudents(ctx, db, `
SELECT `+prefixed("s", studentColumns)+`
FROM students s
JOIN applications a ON a.student_id = s.id
WHERE a.internship_id = ?
ORDER BY s.id;`, internshipID)
}

func queryStudents(ctx context.Context, db *sql.DB, query string, args ...any) ([]domain.StudentRow, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	var out []domain.StudentRow
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ptrs := make([]*domain.StudentRow, len(out))
	for i := range out {
		ptrs[i] = &out[i]
	}
	if err := loadStudentLinks(ctx, db, ptrs); err != nil {
		return nil, err
	}
	return out, nil
}

// loadStudentLinks fills SkillIDs and CourseworkCategoryIDs. Rows must be
// closed before calling: the pool has a single connection.
func loadStudentLinks(ctx context.Context, db *sql.DB, students []*domain.StudentRow) error {
	if len(students) == 0 {
		return nil
	}
	byID := make(map[string]*domain.StudentRow, len(students))
	ids := make([]string, 0, len(students))
	for _, s := range students {
		byID[s.ID] = s
		ids = append(ids, s.ID)
	}

	for _, link := range []struct {
		table, col string
		dst        func(*domain.StudentRow, string)
	}{
		{"student_skills", "skill_id", func(s *domain.StudentRow, id string) { s.SkillIDs = append(s.SkillIDs, id) }},
		{"student_coursework", "category_id", func(s *domain.StudentRow, id string) {
			s.CourseworkCategoryIDs = append(s.CourseworkCategoryIDs, id)
		}},
	} {
		rows, err := db.QueryContext(ctx, fmt.Sprintf(
			`SELECT student_id, %s FROM %s WHERE student_id IN (%s) ORDER BY student_id, %s;`,
			link.col, link.table, placeholders(len(ids)), link.col), stringArgs(ids)...)
		if err != nil {
			return err
		}
		for rows.Next() {
			var sid, id string
			if err := rows.Scan(&sid, &id); err != nil {
				rows.Close()
				return err
			}
			if s := byID[sid]; s != nil {
				link.dst(s, id)
			}
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}
	}
	return nil
}
