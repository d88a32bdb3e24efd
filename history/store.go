package history

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Run : une extraction terminée (en succès ou non)
type Run struct {
	ID         string
	ReportID   string
	Status     string
	Rows       int
	File       string
	Object     string
	StartedAt  time.Time
	FinishedAt time.Time
	Error      string
}

// Store : historique des runs, backend choisi par la config
// ("sqlite", "mysql" ou "postgres")
type Store struct {
	db      *sql.DB
	backend string
}

const createTable = `CREATE TABLE IF NOT EXISTS extract_runs (
	id VARCHAR(64) PRIMARY KEY,
	report_id VARCHAR(255) NOT NULL,
	status VARCHAR(16) NOT NULL,
	row_count INTEGER NOT NULL,
	file TEXT,
	object TEXT,
	started_at TIMESTAMP NULL,
	finished_at TIMESTAMP NULL,
	error TEXT
)`

const runColumns = "id, report_id, status, row_count, file, object, started_at, finished_at, error"

func Open(backend, dsn string) (*Store, error) {
	driver := backend
	if backend == "sqlite" {
		driver = "sqlite3"
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open history (%s): %w", backend, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping history (%s): %w", backend, err)
	}
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create extract_runs: %w", err)
	}
	return &Store{db: db, backend: backend}, nil
}

// rebind : mysql et sqlite prennent des "?", postgres veut $1..$n
func (s *Store) rebind(query string) string {
	if s.backend != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (s *Store) RecordRun(r Run) error {
	q := s.rebind(`INSERT INTO extract_runs (` + runColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := s.db.Exec(q, r.ID, r.ReportID, r.Status, r.Rows, r.File, r.Object, r.StartedAt, r.FinishedAt, r.Error)
	return err
}

// LastRuns renvoie les runs les plus récents, du plus neuf au plus vieux
func (s *Store) LastRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	q := s.rebind(`SELECT ` + runColumns + ` FROM extract_runs ORDER BY finished_at DESC LIMIT ?`)
	rows, err := s.db.Query(q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// LastRunFor renvoie le dernier run d'un rapport, nil si jamais extrait
func (s *Store) LastRunFor(reportID string) (*Run, error) {
	q := s.rebind(`SELECT ` + runColumns + ` FROM extract_runs WHERE report_id = ? ORDER BY finished_at DESC LIMIT 1`)
	rows, err := s.db.Query(q, reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, rows.Err()
	}
	r, err := scanRun(rows)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func scanRun(rows *sql.Rows) (Run, error) {
	var r Run
	err := rows.Scan(&r.ID, &r.ReportID, &r.Status, &r.Rows, &r.File, &r.Object, &r.StartedAt, &r.FinishedAt, &r.Error)
	return r, err
}

func (s *Store) Close() error {
	return s.db.Close()
}
