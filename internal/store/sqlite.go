// internal/store/sqlite.go
//
// SQLite persistence for round history and player accounts.
// Responsibilities:
//   - Opening SQLite with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying embedded migrations from sql/*.sql (idempotent, recorded in _migrations).
//   - Recording rounds and accepted words.
//
// The live rule engine never touches this package; the HTTP layer writes here
// after the engine has decided.

package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

//go:embed sql/*.sql
var migrations embed.FS

// DB wraps the SQL handle with history and user helpers.
type DB struct {
	SQL *sql.DB
}

// Open opens (and creates if missing) a SQLite database file and migrates it.
func Open(dsn string) (*DB, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	if err := migrate(db, migrations); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &DB{SQL: db}, nil
}

// Close releases the database handle.
func (d *DB) Close() error { return d.SQL.Close() }

// migrate applies every *.sql file in fsys in lexical order, once each.
func migrate(db *sql.DB, fsys fs.FS) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	var files []string
	if err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), ".sql") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return fmt.Errorf("walk migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("query _migrations: %w", err)
		}

		body, err := fs.ReadFile(fsys, f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(body)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

/* ----------------------------- rounds ---------------------------------- */

// Owner identifies who played a round: a user or an anonymous cookie.
type Owner struct {
	UserID string
	AnonID string
}

// Key is a single string naming o, distinct for users and anonymous ids.
func (o Owner) Key() string {
	if o.UserID != "" {
		return "user:" + o.UserID
	}
	return "anon:" + o.AnonID
}

// RoundRow is a persisted round summary.
type RoundRow struct {
	ID        string    `json:"id"`
	Mode      string    `json:"mode"`
	Root      string    `json:"root"`
	Score     int       `json:"score"`
	Words     int       `json:"words"`
	StartedAt time.Time `json:"startedAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WordRow is one accepted word of a persisted round.
type WordRow struct {
	Position int    `json:"position"`
	Word     string `json:"word"`
	Points   int    `json:"points"`
}

// CreateRound inserts a round row owned by o and bumps the user's
// rounds_played counter when o is a user.
func (d *DB) CreateRound(ctx context.Context, id, mode, root string, o Owner) error {
	now := time.Now().UTC().Format(time.RFC3339)
	tx, err := d.SQL.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
        INSERT INTO rounds (id, user_id, anonymous_id, mode, root_word, started_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, nullable(o.UserID), nullable(o.AnonID), mode, root, now, now,
	); err != nil {
		return fmt.Errorf("insert round: %w", err)
	}
	if o.UserID != "" {
		if _, err := tx.ExecContext(ctx,
			`UPDATE users SET rounds_played = rounds_played + 1 WHERE id=?`, o.UserID,
		); err != nil {
			return fmt.Errorf("bump rounds_played: %w", err)
		}
	}
	return tx.Commit()
}

// RecordWord stores an accepted word and the round's new totals.
// position is 1-based in acceptance order. Totals only grow, so writes that
// arrive out of order never lower a round's score.
func (d *DB) RecordWord(ctx context.Context, roundID, word string, position, points, score int) error {
	now := time.Now().UTC().Format(time.RFC3339)
	tx, err := d.SQL.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
        INSERT INTO round_words (round_id, position, word, points, created_at)
        VALUES (?, ?, ?, ?, ?)`, roundID, position, word, points, now,
	); err != nil {
		return fmt.Errorf("insert word: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE rounds SET score=MAX(score, ?), words=MAX(words, ?), updated_at=? WHERE id=?`, score, position, now, roundID,
	); err != nil {
		return fmt.Errorf("update round: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
        UPDATE users SET best_score = MAX(best_score, ?)
        WHERE id = (SELECT user_id FROM rounds WHERE id=?)`, score, roundID,
	); err != nil {
		return fmt.Errorf("update best score: %w", err)
	}
	return tx.Commit()
}

// ClaimAnonRounds transfers anonymous rounds to a user account.
func (d *DB) ClaimAnonRounds(ctx context.Context, anonID, userID string) error {
	if anonID == "" || userID == "" {
		return nil
	}
	_, err := d.SQL.ExecContext(ctx,
		`UPDATE rounds SET user_id=?, anonymous_id=NULL WHERE anonymous_id=?`, userID, anonID)
	return err
}

// RoundsByUser lists a user's most recent rounds, newest first.
func (d *DB) RoundsByUser(ctx context.Context, userID string, limit int) ([]RoundRow, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := d.SQL.QueryContext(ctx, `
        SELECT id, mode, root_word, score, words, started_at, updated_at
        FROM rounds WHERE user_id=?
        ORDER BY started_at DESC, rowid DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []RoundRow{}
	for rows.Next() {
		var r RoundRow
		var started, updated string
		if err := rows.Scan(&r.ID, &r.Mode, &r.Root, &r.Score, &r.Words, &started, &updated); err != nil {
			return nil, err
		}
		r.StartedAt, r.UpdatedAt = parseTime(started), parseTime(updated)
		out = append(out, r)
	}
	return out, rows.Err()
}

// RoundOwnedBy reports whether roundID belongs to userID.
func (d *DB) RoundOwnedBy(ctx context.Context, roundID, userID string) (bool, error) {
	var n int
	err := d.SQL.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM rounds WHERE id=? AND user_id=?`, roundID, userID).Scan(&n)
	return n > 0, err
}

// RoundWords returns the accepted words of a round in acceptance order.
func (d *DB) RoundWords(ctx context.Context, roundID string) ([]WordRow, error) {
	rows, err := d.SQL.QueryContext(ctx,
		`SELECT position, word, points FROM round_words WHERE round_id=? ORDER BY position`, roundID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []WordRow{}
	for rows.Next() {
		var w WordRow
		if err := rows.Scan(&w.Position, &w.Word, &w.Points); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// parseTime parses RFC3339 timestamps; on error returns zero time.
func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}
