package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrUsernameTaken is returned by CreateUser for a duplicate username.
var ErrUsernameTaken = errors.New("username taken")

// User matches the users table shape.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	RoundsPlayed int       `json:"roundsPlayed"`
	BestScore    int       `json:"bestScore"`
}

// CreateUser inserts a user with an already-hashed password.
// Usernames are unique case-insensitively.
func (d *DB) CreateUser(ctx context.Context, id, username, passwordHash string) (*User, error) {
	var exists int
	err := d.SQL.QueryRowContext(ctx, `SELECT 1 FROM users WHERE username=?`, username).Scan(&exists)
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	now := time.Now().UTC()
	if _, err := d.SQL.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, created_at) VALUES (?,?,?,?)`,
		id, username, passwordHash, now.Format(time.RFC3339),
	); err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &User{ID: id, Username: username, PasswordHash: passwordHash, CreatedAt: now.Truncate(time.Second)}, nil
}

// FindUserByUsername loads a user by case-insensitive username.
func (d *DB) FindUserByUsername(ctx context.Context, username string) (*User, error) {
	row := d.SQL.QueryRowContext(ctx, `
        SELECT id, username, password_hash, created_at, rounds_played, best_score
        FROM users WHERE username=?`, username)
	return scanUser(row)
}

// FindUserByID loads a user by ID.
func (d *DB) FindUserByID(ctx context.Context, id string) (*User, error) {
	row := d.SQL.QueryRowContext(ctx, `
        SELECT id, username, password_hash, created_at, rounds_played, best_score
        FROM users WHERE id=?`, id)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*User, error) {
	var u User
	var created string
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &created, &u.RoundsPlayed, &u.BestScore); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	u.CreatedAt = parseTime(created)
	return &u, nil
}
