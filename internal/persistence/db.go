// Package persistence provides the SQLite ledger of QA runs and farm history.
// Game saves themselves live in JSON files; this database only records what
// happened.
package persistence

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/fieldstation/fieldstation/internal/engine"
	"github.com/fieldstation/fieldstation/internal/qa"
)

// SchemaVersion is recorded in the meta table on open.
const SchemaVersion = "1"

// Meta keys.
const (
	MetaSchemaVersion = "schema_version"
	MetaLastQARun     = "last_qa_run"
	MetaLastFarm      = "last_farm"
)

// DB wraps a SQLite connection for the ledger.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path. ":memory:"
// opens a private in-memory database.
func Open(path string) (*DB, error) {
	dsn := ":memory:"
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	conn, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// One process, one writer.
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS qa_runs (
		id TEXT PRIMARY KEY,
		suite TEXT NOT NULL,
		started INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		passed INTEGER NOT NULL,
		failed INTEGER NOT NULL,
		exit_code INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS qa_cases (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES qa_runs(id),
		case_id TEXT NOT NULL,
		name TEXT NOT NULL,
		passed INTEGER NOT NULL,
		failure TEXT NOT NULL,
		duration_us INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS farm_days (
		save_id TEXT NOT NULL,
		day INTEGER NOT NULL,
		date TEXT NOT NULL,
		season TEXT NOT NULL,
		weather TEXT NOT NULL,
		extreme INTEGER NOT NULL,
		money INTEGER NOT NULL,
		avg_soil REAL NOT NULL,
		growing INTEGER NOT NULL,
		harvested INTEGER NOT NULL,
		PRIMARY KEY (save_id, day)
	);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_qa_runs_started ON qa_runs(started);
	CREATE INDEX IF NOT EXISTS idx_qa_cases_run ON qa_cases(run_id);
	`
	if _, err := db.conn.Exec(schema); err != nil {
		return err
	}
	return db.SetMeta(MetaSchemaVersion, SchemaVersion)
}

// Run is a stored QA run summary.
type Run struct {
	ID         string `db:"id"`
	Suite      string `db:"suite"`
	Started    int64  `db:"started"` // Unix milliseconds
	DurationMS int64  `db:"duration_ms"`
	Passed     int    `db:"passed"`
	Failed     int    `db:"failed"`
	ExitCode   int    `db:"exit_code"`
}

// StartedAt converts Started to a time.
func (r Run) StartedAt() time.Time { return time.UnixMilli(r.Started) }

// Case is a stored QA case result.
type Case struct {
	RunID      string `db:"run_id"`
	CaseID     string `db:"case_id"`
	Name       string `db:"name"`
	Passed     bool   `db:"passed"`
	Failure    string `db:"failure"`
	DurationUS int64  `db:"duration_us"`
}

// SaveRun records a finished QA report and all of its cases.
func (db *DB) SaveRun(r *qa.Report) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO qa_runs
		(id, suite, started, duration_ms, passed, failed, exit_code)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Suite, r.Started.UnixMilli(), r.Duration.Milliseconds(),
		r.Passed(), r.Failed(), r.ExitCode(),
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", r.ID, err)
	}

	stmt, err := tx.Preparex(`INSERT INTO qa_cases
		(run_id, case_id, name, passed, failure, duration_us)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range r.Cases {
		if _, err := stmt.Exec(r.ID, c.ID, c.Name, c.Passed, c.Failure, c.Duration.Microseconds()); err != nil {
			return fmt.Errorf("insert case %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	if err := db.SetMeta(MetaLastQARun, r.ID); err != nil {
		return fmt.Errorf("mark last run: %w", err)
	}
	slog.Info("qa run recorded", "run", r.ID, "suite", r.Suite, "passed", r.Passed(), "failed", r.Failed())
	return nil
}

// RecentRuns returns the most recent runs, newest first.
func (db *DB) RecentRuns(limit int) ([]Run, error) {
	var runs []Run
	err := db.conn.Select(&runs,
		"SELECT id, suite, started, duration_ms, passed, failed, exit_code FROM qa_runs ORDER BY started DESC, rowid DESC LIMIT ?",
		limit,
	)
	return runs, err
}

// RunCases returns the cases of one run in execution order.
func (db *DB) RunCases(runID string) ([]Case, error) {
	var cases []Case
	err := db.conn.Select(&cases,
		"SELECT run_id, case_id, name, passed, failure, duration_us FROM qa_cases WHERE run_id = ? ORDER BY id",
		runID,
	)
	return cases, err
}

// Day is a stored farm day.
type Day struct {
	SaveID    string  `db:"save_id"`
	Day       int     `db:"day"`
	Date      string  `db:"date"`
	Season    string  `db:"season"`
	Weather   string  `db:"weather"`
	Extreme   bool    `db:"extreme"`
	Money     int     `db:"money"`
	AvgSoil   float64 `db:"avg_soil"`
	Growing   int     `db:"growing"`
	Harvested int     `db:"harvested"`
}

// RecordDay stores one simulated day and marks saveID as the latest farm.
// Replaying a day after a load replaces the earlier row.
func (db *DB) RecordDay(saveID string, r engine.DayReport) error {
	_, err := db.conn.Exec(`INSERT OR REPLACE INTO farm_days
		(save_id, day, date, season, weather, extreme, money, avg_soil, growing, harvested)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		saveID, r.Day, r.Date.Format(time.DateOnly), r.Season.String(), r.Weather.String(),
		r.Extreme, r.Money, r.AvgSoil, r.Growing, r.Harvested,
	)
	if err != nil {
		return fmt.Errorf("record day %d: %w", r.Day, err)
	}
	return db.SetMeta(MetaLastFarm, saveID)
}

// DayHistory returns every recorded day for a save in day order.
func (db *DB) DayHistory(saveID string) ([]Day, error) {
	var days []Day
	err := db.conn.Select(&days,
		`SELECT save_id, day, date, season, weather, extreme, money, avg_soil, growing, harvested
		FROM farm_days WHERE save_id = ? ORDER BY day`,
		saveID,
	)
	return days, err
}

// SetMeta stores a key-value pair.
func (db *DB) SetMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM meta WHERE key = ?", key)
	return value, err
}
