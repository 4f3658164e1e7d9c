package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"power_monitor/internal/models"
)

type LoginAttemptSQLite struct {
	db *sql.DB
}

func NewLoginAttemptSQLite(db *sql.DB) *LoginAttemptSQLite {
	return &LoginAttemptSQLite{db: db}
}

var _ LoginAttemptRepo = (*LoginAttemptSQLite)(nil)

const (
	insertAttemptSQL = `INSERT INTO login_attempts (email, success, attempted_at) VALUES (?, ?, ?)`

	selectRecentAttemptsSQL = `
		SELECT id, email, success, attempted_at
		FROM login_attempts
		WHERE email = ? AND attempted_at >= ?
		ORDER BY attempted_at DESC
	`
)

// Record stores one attempt. AttemptedAt defaults to now when zero.
func (r *LoginAttemptSQLite) Record(ctx context.Context, a models.LoginAttempt) error {
	ts := a.AttemptedAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	} else {
		ts = ts.UTC()
	}
	if _, err := r.db.ExecContext(ctx, insertAttemptSQL, a.Email, a.Success, ts); err != nil {
		return fmt.Errorf("insert login attempt for %q: %w", a.Email, err)
	}
	return nil
}

// Recent returns attempts for the email since the given time, newest first.
func (r *LoginAttemptSQLite) Recent(ctx context.Context, email string, since time.Time) ([]models.LoginAttempt, error) {
	rows, err := r.db.QueryContext(ctx, selectRecentAttemptsSQL, email, since.UTC())
	if err != nil {
		return nil, fmt.Errorf("select login attempts for %q: %w", email, err)
	}
	defer rows.Close()

	out := make([]models.LoginAttempt, 0, 16)
	for rows.Next() {
		var a models.LoginAttempt
		if err := rows.Scan(&a.ID, &a.Email, &a.Success, &a.AttemptedAt); err != nil {
			return nil, err
		}
		a.AttemptedAt = a.AttemptedAt.UTC()
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
