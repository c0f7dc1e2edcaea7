package store

import (
	"database/sql"
	"fmt"
)

const schemaVersion = 1

var schemaV1 = []string{
	`CREATE TABLE IF NOT EXISTS majors (
  id TEXT PRIMARY KEY,
  slug TEXT NOT NULL DEFAULT '',
  name TEXT NOT NULL
);`,
	`CREATE TABLE IF NOT EXISTS skills (
  id TEXT PRIMARY KEY,
  slug TEXT NOT NULL DEFAULT '',
  name TEXT NOT NULL
);`,
	`CREATE TABLE IF NOT EXISTS coursework_categories (
  id TEXT PRIMARY KEY,
  slug TEXT NOT NULL DEFAULT '',
  name TEXT NOT NULL
);`,
	`CREATE TABLE IF NOT EXISTS coursework_items (
  id TEXT PRIMARY KEY,
  slug TEXT NOT NULL DEFAULT '',
  name TEXT NOT NULL,
  category_id TEXT NOT NULL DEFAULT ''
);`,
	`CREATE TABLE IF NOT EXISTS students (
  id TEXT PRIMARY KEY,
  school TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL,
  primary_major_id TEXT NOT NULL DEFAULT '',
  secondary_major_id TEXT NOT NULL DEFAULT '',
  major_text TEXT NOT NULL DEFAULT '[]',
  year TEXT NOT NULL DEFAULT '',
  experience_level TEXT NOT NULL DEFAULT '',
  skills_text TEXT NOT NULL DEFAULT '[]',
  coursework_text TEXT NOT NULL DEFAULT '[]',
  availability_start_month INTEGER,
  availability_hours INTEGER,
  city TEXT NOT NULL DEFAULT '',
  state TEXT NOT NULL DEFAULT '',
  zip TEXT NOT NULL DEFAULT '',
  lat REAL,
  lng REAL,
  max_commute_minutes INTEGER,
  transport_mode TEXT NOT NULL DEFAULT ''
);`,
	`CREATE TABLE IF NOT EXISTS student_skills (
  student_id TEXT NOT NULL REFERENCES students(id) ON DELETE CASCADE,
  skill_id TEXT NOT NULL,
  PRIMARY KEY (student_id, skill_id)
);`,
	`CREATE TABLE IF NOT EXISTS student_coursework (
  student_id TEXT NOT NULL REFERENCES students(id) ON DELETE CASCADE,
  category_id TEXT NOT NULL,
  PRIMARY KEY (student_id, category_id)
);`,
	`CREATE TABLE IF NOT EXISTS internships (
  id TEXT PRIMARY KEY,
  employer_id TEXT NOT NULL DEFAULT '',
  title TEXT NOT NULL,
  created_at TEXT NOT NULL,
  target_years TEXT NOT NULL DEFAULT '[]',
  experience_level TEXT NOT NULL DEFAULT '',
  work_mode TEXT NOT NULL DEFAULT '',
  remote_states TEXT NOT NULL DEFAULT '[]',
  term TEXT NOT NULL DEFAULT '',
  hours_min INTEGER,
  hours_max INTEGER,
  pay_min INTEGER,
  pay_max INTEGER,
  city TEXT NOT NULL DEFAULT '',
  state TEXT NOT NULL DEFAULT '',
  lat REAL,
  lng REAL,
  deadline TEXT,
  is_active INTEGER NOT NULL DEFAULT 1
);`,
	// kind: required_skill | preferred_skill | required_coursework | major
	`CREATE TABLE IF NOT EXISTS internship_links (
  internship_id TEXT NOT NULL REFERENCES internships(id) ON DELETE CASCADE,
  kind TEXT NOT NULL,
  position INTEGER NOT NULL,
  catalog_id TEXT NOT NULL DEFAULT '',
  label TEXT NOT NULL DEFAULT '',
  PRIMARY KEY (internship_id, kind, position)
);`,
	`CREATE TABLE IF NOT EXISTS applications (
  id TEXT PRIMARY KEY,
  student_id TEXT NOT NULL REFERENCES students(id),
  internship_id TEXT NOT NULL REFERENCES internships(id),
  status TEXT NOT NULL DEFAULT 'submitted',
  created_at TEXT NOT NULL,
  match_score REAL NOT NULL,
  match_normalized REAL NOT NULL,
  match_reasons TEXT NOT NULL DEFAULT '[]',
  match_gaps TEXT NOT NULL DEFAULT '[]',
  reason_keys TEXT NOT NULL DEFAULT '[]',
  gap_keys TEXT NOT NULL DEFAULT '[]',
  matching_version TEXT NOT NULL,
  UNIQUE (student_id, internship_id)
);`,

	`CREATE INDEX IF NOT EXISTS idx_internships_active ON internships(is_active, deadline);`,
	`CREATE INDEX IF NOT EXISTS idx_coursework_items_category ON coursework_items(category_id);`,
	`CREATE INDEX IF NOT EXISTS idx_applications_internship ON applications(internship_id, created_at);`,

	// snapshot columns are written once
	`CREATE TRIGGER IF NOT EXISTS applications_snapshot_immutable
BEFORE UPDATE OF match_score, match_normalized, match_reasons, match_gaps, reason_keys, gap_keys, matching_version
ON applications
BEGIN
  SELECT RAISE(ABORT, 'application match snapshot is immutable');
END;`,
}

func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= schemaVersion {
		return tx.Commit()
	}

	for _, stmt := range schemaV1 {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("migrate v1: %w", err)
		}
	}

	if _, err := tx.Exec(fmt.Sprintf(`PRAGMA user_version = %d;`, schemaVersion)); err != nil {
		return err
	}
	return tx.Commit()
}
