package export

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"

	"codeberg.org/snonux/rapwiz/internal/lyrics"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS reports (
		id text PRIMARY KEY,
		title text NOT NULL,
		created_at integer NOT NULL,
		rhyme_scheme text NOT NULL,
		total_lines integer NOT NULL,
		total_words integer NOT NULL,
		unique_rhymes integer NOT NULL,
		payload text NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS report_lines (
		report_id text NOT NULL REFERENCES reports(id) ON DELETE CASCADE,
		line_number integer NOT NULL,
		text text NOT NULL,
		end_word text,
		phonetic text,
		rhyme_group text,
		PRIMARY KEY (report_id, line_number)
	)`,
	`CREATE INDEX IF NOT EXISTS ix_reports_created_at ON reports (created_at)`,
}

// Report is one stored analysis.
type Report struct {
	ID        string
	Title     string
	CreatedAt time.Time
	Result    *lyrics.Result
}

// Store writes reports to a database.
type Store struct {
	db     *sql.DB
	driver string
}

// DriverFor picks the database/sql driver for a DSN.
func DriverFor(dsn string) string {
	for _, prefix := range []string{"libsql://", "https://", "http://", "wss://", "ws://"} {
		if strings.HasPrefix(dsn, prefix) {
			return "libsql"
		}
	}
	return "sqlite3"
}

// Open connects to dsn and applies the schema.
func Open(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("export DSN is empty")
	}

	driver := DriverFor(dsn)
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}

	if driver == "sqlite3" {
		// A single writer avoids "database is locked" with concurrent batches.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{db: db, driver: driver}
	if err := s.createTables(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return s, nil
}

// Driver returns the driver name in use.
func (s *Store) Driver() string {
	return s.driver
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createTables(ctx context.Context) error {
	for _, query := range schema {
		if _, err := s.db.ExecContext(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

// SaveReport stores a report and its lines in one transaction.
func (s *Store) SaveReport(ctx context.Context, r Report) (err error) {
	if r.Result == nil {
		return fmt.Errorf("report %s has no result", r.ID)
	}

	payload, err := json.Marshal(r.Result)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	stats := r.Result.Statistics
	_, err = tx.ExecContext(ctx,
		`INSERT INTO reports (id, title, created_at, rhyme_scheme, total_lines, total_words, unique_rhymes, payload)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Title, r.CreatedAt.UnixMilli(), r.Result.RhymeScheme,
		stats.TotalLines, stats.TotalWords, stats.UniqueRhymes, string(payload))
	if err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}

	for _, line := range r.Result.Lines {
		var endWord, phonetic, group sql.NullString
		if line.EndWord != nil {
			endWord = sql.NullString{String: line.EndWord.Text, Valid: true}
			phonetic = sql.NullString{String: line.EndWord.Phonetic, Valid: true}
		}
		if line.RhymeGroup != "" {
			group = sql.NullString{String: line.RhymeGroup, Valid: true}
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO report_lines (report_id, line_number, text, end_word, phonetic, rhyme_group)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			r.ID, line.Number, line.Text, endWord, phonetic, group)
		if err != nil {
			return fmt.Errorf("failed to insert line %d: %w", line.Number, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit report: %w", err)
	}
	return nil
}

// ReportSummary is a stored report without its lines.
type ReportSummary struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	CreatedAt   time.Time         `json:"created_at"`
	RhymeScheme string            `json:"rhyme_scheme"`
	Statistics  lyrics.Statistics `json:"statistics"`
}

// ListReports returns stored reports, newest first.
func (s *Store) ListReports(ctx context.Context) ([]ReportSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, created_at, rhyme_scheme, total_lines, total_words, unique_rhymes
		 FROM reports ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	var reports []ReportSummary
	for rows.Next() {
		var (
			r       ReportSummary
			created int64
		)
		if err := rows.Scan(&r.ID, &r.Title, &created, &r.RhymeScheme,
			&r.Statistics.TotalLines, &r.Statistics.TotalWords, &r.Statistics.UniqueRhymes); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		r.CreatedAt = time.UnixMilli(created)
		reports = append(reports, r)
	}

	return reports, rows.Err()
}

// LoadResult returns the stored result of a report.
func (s *Store) LoadResult(ctx context.Context, id string) (*lyrics.Result, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM reports WHERE id = ?`, id).Scan(&payload)
	if err != nil {
		return nil, fmt.Errorf("failed to load report %s: %w", id, err)
	}

	var result lyrics.Result
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, fmt.Errorf("failed to decode report %s: %w", id, err)
	}
	return &result, nil
}
