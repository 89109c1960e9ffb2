// Package journal stores workout logs locally in SQLite for offline use and
// pushes them to a RepLog server when one is reachable. Entries are deduped
// by a content hash so re-running the CLI over the same text is harmless.
package journal

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/claude/replog/internal/models"
)

// Journal is the local SQLite store of logged workouts.
type Journal struct {
	db *sql.DB
}

// Entry is one journaled workout log.
type Entry struct {
	ID        int64
	Hash      string
	LoggedAt  time.Time
	RawText   string
	Exercises []models.ParsedExercise
	Pushed    bool
}

// Open opens (or creates) the journal database at dir/journal.db.
func Open(dir string) (*Journal, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating journal dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "journal.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening journal db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS entries (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		hash        TEXT NOT NULL UNIQUE,
		logged_at   TIMESTAMP NOT NULL,
		raw_text    TEXT NOT NULL,
		parsed_json TEXT NOT NULL,
		pushed      INTEGER NOT NULL DEFAULT 0,
		created_at  TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating entries table: %w", err)
	}

	return &Journal{db: db}, nil
}

// Add journals a workout log. Returns false when an identical entry (same
// text on the same day) already exists.
func (j *Journal) Add(text string, loggedAt time.Time, exercises []models.ParsedExercise) (bool, error) {
	parsed, err := json.Marshal(exercises)
	if err != nil {
		return false, fmt.Errorf("encoding parsed exercises: %w", err)
	}

	res, err := j.db.Exec(
		`INSERT OR IGNORE INTO entries (hash, logged_at, raw_text, parsed_json) VALUES (?, ?, ?, ?)`,
		entryHash(text, loggedAt), loggedAt, text, string(parsed),
	)
	if err != nil {
		return false, fmt.Errorf("inserting entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Pending returns all entries not yet pushed to a server, oldest first.
func (j *Journal) Pending() ([]Entry, error) {
	rows, err := j.db.Query(
		`SELECT id, hash, logged_at, raw_text, parsed_json, pushed
		 FROM entries WHERE pushed = 0 ORDER BY logged_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying pending entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var parsed string
		var pushed int
		if err := rows.Scan(&e.ID, &e.Hash, &e.LoggedAt, &e.RawText, &parsed, &pushed); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		if err := json.Unmarshal([]byte(parsed), &e.Exercises); err != nil {
			return nil, fmt.Errorf("decoding entry %d: %w", e.ID, err)
		}
		e.Pushed = pushed != 0
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// MarkPushed records that an entry reached the server.
func (j *Journal) MarkPushed(id int64) error {
	_, err := j.db.Exec(`UPDATE entries SET pushed = 1 WHERE id = ?`, id)
	return err
}

// Close closes the journal database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// entryHash keys an entry by its text and calendar day, so the same log
// re-entered on a different day still counts as new.
func entryHash(text string, loggedAt time.Time) string {
	h := sha256.Sum256([]byte(loggedAt.Format("2006-01-02") + "\n" + text))
	return hex.EncodeToString(h[:])
}
