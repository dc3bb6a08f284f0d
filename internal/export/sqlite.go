package export

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"facscope/internal/aggregate"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	generated_at TEXT NOT NULL,
	catalog TEXT,
	mode TEXT
);

CREATE TABLE IF NOT EXISTS records (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id INTEGER NOT NULL REFERENCES runs(id),
	position INTEGER NOT NULL,
	url TEXT NOT NULL,
	faculty_name TEXT NOT NULL,
	tab_name TEXT NOT NULL,
	content TEXT NOT NULL,
	matched_expertise TEXT NOT NULL,
	failed INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_records_run ON records(run_id);
CREATE INDEX IF NOT EXISTS idx_records_url ON records(url);

CREATE TABLE IF NOT EXISTS summaries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id INTEGER NOT NULL REFERENCES runs(id),
	position INTEGER NOT NULL,
	url TEXT NOT NULL,
	faculty_name TEXT NOT NULL,
	expertise TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_summaries_run ON summaries(run_id);
`

// WriteSQLite appends res to the database at path as a new run, creating the
// file and schema if needed. Matched subjects are stored joined by ", ".
func WriteSQLite(ctx context.Context, path string, res aggregate.Result, meta Meta) (err error) {
	db, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if cerr := db.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	run, err := tx.ExecContext(ctx,
		`INSERT INTO runs (generated_at, catalog, mode) VALUES (?, ?, ?)`,
		meta.timestamp(), meta.Catalog, meta.Mode)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	runID, err := run.LastInsertId()
	if err != nil {
		return err
	}

	recStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO records (run_id, position, url, faculty_name, tab_name, content, matched_expertise, failed)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer recStmt.Close()
	for i, r := range res.Records {
		if _, err = recStmt.ExecContext(ctx, runID, i, r.URL, r.FacultyName, r.TabName, r.Content,
			strings.Join(r.Matched, ", "), r.Failed); err != nil {
			return fmt.Errorf("failed to insert record %d: %w", i, err)
		}
	}

	sumStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO summaries (run_id, position, url, faculty_name, expertise)
	VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer sumStmt.Close()
	for i, s := range res.Summaries {
		if _, err = sumStmt.ExecContext(ctx, runID, i, s.URL, s.FacultyName, strings.Join(s.Expertise, ", ")); err != nil {
			return fmt.Errorf("failed to insert summary %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// sqliteDSN builds a file: URI for path so that "?", "#" and "%" in directory
// names are not read as URI syntax.
func sqliteDSN(path string) string {
	return "file:" + (&url.URL{Path: path}).EscapedPath() + "?mode=rwc&_pragma=busy_timeout(5000)"
}
