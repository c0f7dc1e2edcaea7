package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"internmatch-engine/internal/domain"
)

const StatusSubmitted = "submitted"

// CreateApplication inserts the application together with its match
// snapshot. The student and internship must exist, and a student can apply
// to a listing only once. There is no update path for the snapshot.
func CreateApplication(ctx context.Context, db *sql.DB, app domain.Application) (domain.Application, error) {
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	if app.Status == "" {
		app.Status = StatusSubmitted
	}
	if app.CreatedAt.IsZero() {
		app.CreatedAt = time.Now()
	}
	app.CreatedAt = app.CreatedAt.UTC()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Application{}, err
	}
	defer func() { _ = tx.Rollback() }()

	for _, ref := range []struct{ table, id string }{
		{"students", app.StudentID},
		{"internships", app.InternshipID},
	} {
		var one int
		err := tx.QueryRowContext(ctx, fmt.Sprintf(`SELECT 1 FROM %s WHERE id = ?;`, ref.table), ref.id).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Application{}, fmt.Errorf("%s %q: %w", strings.TrimSuffix(ref.table, "s"), ref.id, ErrNotFound)
		}
		if err != nil {
			return domain.Application{}, err
		}
	}

	var existing string
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM applications WHERE student_id = ? AND internship_id = ?;`,
		app.StudentID, app.InternshipID).Scan(&existing)
	switch {
	case err == nil:
		return domain.Application{}, fmt.Errorf("application %s: %w", existing, ErrAlreadyApplied)
	case !errors.Is(err, sql.ErrNoRows):
		return domain.Application{}, err
	}

	_, err = tx.ExecContext(ctx, `
INSERT INTO applications(
  id, student_id, internship_id, status, created_at,
  match_score, match_normalized, match_reasons, match_gaps, reason_keys, gap_keys, matching_version)
VALUES(?,?,?,?,?,?,?,?,?,?,?,?);`,
		app.ID, app.StudentID, app.InternshipID, app.Status, formatTime(app.CreatedAt),
		app.MatchScore, app.MatchNormalized, encodeList(app.MatchReasons), encodeList(app.MatchGaps),
		encodeList(app.ReasonKeys), encodeList(app.GapKeys), app.MatchingVersion,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return domain.Application{}, fmt.Errorf("%s/%s: %w", app.StudentID, app.InternshipID, ErrAlreadyApplied)
		}
		return domain.Application{}, fmt.Errorf("insert application: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return domain.Application{}, err
	}
	return app, nil
}

const applicationColumns = `
  id, student_id, internship_id, status, created_at,
  match_score, match_normalized, match_reasons, match_gaps, reason_keys, gap_keys, matching_version`

func scanApplication(row interface{ Scan(...any) error }) (domain.Application, error) {
	var (
		a                                    domain.Application
		created, reasons, gaps, rkeys, gkeys string
	)
	err := row.Scan(
		&a.ID, &a.StudentID, &a.InternshipID, &a.Status, &created,
		&a.MatchScore, &a.MatchNormalized, &reasons, &gaps, &rkeys, &gkeys, &a.MatchingVersion,
	)
	if err != nil {
		return domain.Application{}, err
	}
	a.CreatedAt = parseTime(created)
	a.MatchReasons = decodeList(reasons)
	a.MatchGaps = decodeList(gaps)
	a.ReasonKeys = decodeList(rkeys)
	a.GapKeys = decodeList(gkeys)
	return a, nil
}

func GetApplication(ctx context.Context, db *sql.DB, id string) (domain.Application, error) {
	a, err := scanApplication(db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = ?;`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Application{}, fmt.Errorf("application %q: %w", id, ErrNotFound)
	}
	return a, err
}

// ListApplications returns an internship's applications, newest first.
func ListApplications(ctx context.Context, db *sql.DB, internshipID string) ([]domain.Application, error) {
	rows, err := db.QueryContext(ctx, `
SELECT `+applicationColumns+`
FROM applications
WHERE internship_id = ?
ORDER BY created_at DESC, id;`, internshipID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// UpdateApplicationStatus changes the workflow status only; the snapshot
// columns are protected by a trigger.
func UpdateApplicationStatus(ctx context.Context, db *sql.DB, id, status string) error {
	res, err := db.ExecContext(ctx, `UPDATE applications SET status = ? WHERE id = ?;`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("application %q: %w", id, ErrNotFound)
	}
	return nil
}
