package daily

import (
	"context"
	"database/sql"
	"errors"
)

// Result is one player's daily round.
type Result struct {
	UserID    string `json:"userId"`
	Date      string `json:"date"`
	WordIndex int    `json:"wordIndex"`
	Score     int    `json:"score"`
	Words     int    `json:"words"`
}

// Store persists daily results in the daily_results table.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Get returns the player's result for date; ok is false when none exists.
func (s *Store) Get(ctx context.Context, userID, date string) (r Result, ok bool, err error) {
	err = s.db.QueryRowContext(ctx,
		`SELECT user_id, date, word_index, score, words FROM daily_results WHERE user_id=? AND date=?`,
		userID, date,
	).Scan(&r.UserID, &r.Date, &r.WordIndex, &r.Score, &r.Words)
	if errors.Is(err, sql.ErrNoRows) {
		return Result{}, false, nil
	}
	if err != nil {
		return Result{}, false, err
	}
	return r, true, nil
}

// Upsert records r, keeping the higher score when a row for the same
// (user, date) already exists.
func (s *Store) Upsert(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO daily_results (user_id, date, word_index, score, words)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT(user_id, date) DO UPDATE SET
            score      = MAX(daily_results.score, excluded.score),
            words      = CASE WHEN excluded.score > daily_results.score THEN excluded.words ELSE daily_results.words END,
            updated_at = CURRENT_TIMESTAMP`,
		r.UserID, r.Date, r.WordIndex, r.Score, r.Words,
	)
	return err
}

// LBRow is a leaderboard entry.
type LBRow struct {
	UserID string `json:"userId"`
	Score  int    `json:"score"`
	Words  int    `json:"words"`
}

// Leaderboard returns the top scores for date: score DESC, then words DESC,
// then whoever got there first.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT user_id, score, words
        FROM daily_results
        WHERE date=?
        ORDER BY score DESC, words DESC, updated_at ASC
        LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []LBRow{}
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.UserID, &r.Score, &r.Words); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
