package models

import "time"

// LoginAttempt records one sign-in attempt for an email. Lockout and
// rate-limit decisions are derived from the recent attempt history.
type LoginAttempt struct {
	ID          int       `json:"id"`
	Email       string    `json:"email"`
	Success     bool      `json:"success"`
	AttemptedAt time.Time `json:"attempted_at"`
}
