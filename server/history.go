package server

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// History records daemon runs in a local SQLite database. Programs are
// stored as content hashes, not text, so the log stays small and carries no
// source.
type History struct {
	db *sql.DB
}

const historySchema = `
CREATE TABLE IF NOT EXISTS runs (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	program_hash TEXT    NOT NULL,
	exit_code    INTEGER NOT NULL,
	output_bytes INTEGER NOT NULL,
	duration_ms  INTEGER NOT NULL,
	created_at   TEXT    NOT NULL DEFAULT (datetime('now'))
);
CREATE INDEX IF NOT EXISTS idx_runs_hash ON runs(program_hash);
`

// OpenHistory opens or creates the run database at path.
func OpenHistory(path string) (*History, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db %s: %w", path, err)
	}
	if _, err := db.Exec(historySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}
	return &History{db: db}, nil
}

// Record logs one run.
func (h *History) Record(programXML string, exitCode, outputBytes int, d time.Duration) error {
	hash := sha256.Sum256([]byte(programXML))
	_, err := h.db.Exec(
		"INSERT INTO runs (program_hash, exit_code, output_bytes, duration_ms) VALUES (?, ?, ?, ?)",
		hex.EncodeToString(hash[:]), exitCode, outputBytes, d.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// RunRecord is one logged run.
type RunRecord struct {
	ID          int64
	ProgramHash string
	ExitCode    int
	OutputBytes int
	DurationMS  int64
	CreatedAt   string
}

// Recent returns the newest runs, most recent first.
func (h *History) Recent(limit int) ([]RunRecord, error) {
	rows, err := h.db.Query(
		"SELECT id, program_hash, exit_code, output_bytes, duration_ms, created_at FROM runs ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(&r.ID, &r.ProgramHash, &r.ExitCode, &r.OutputBytes, &r.DurationMS, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Close releases the database handle.
func (h *History) Close() error {
	return h.db.Close()
}
