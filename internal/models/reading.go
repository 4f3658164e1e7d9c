package models

import "time"

// DeviceReading is the latest sampled power draw for one device type.
type DeviceReading struct {
	DeviceType string    `json:"device_type"`
	Watts      float64   `json:"watts"`
	RecordedAt time.Time `json:"recorded_at"`
}

// AuditEvent is a single log entry.
type AuditEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // SIGN_UP | LOGIN_FAILURE | ACCOUNT_LOCKED | SETTINGS_UPDATE | TELEMETRY
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}

// Event types recorded in the audit log.
const (
	EventSignUp         = "SIGN_UP"
	EventLoginFailure   = "LOGIN_FAILURE"
	EventAccountLocked  = "ACCOUNT_LOCKED"
	EventSettingsUpdate = "SETTINGS_UPDATE"
	EventTelemetry      = "TELEMETRY"
)
