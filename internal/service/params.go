package service

import "time"

// SignUpParams is the input for account creation. Role defaults to viewer.
type SignUpParams struct {
	Email    string
	Password string
	Role     string // "admin" | "manager" | "viewer"
}

// SignUpResult reports the created user plus the strength meter values so
// the caller can render them.
type SignUpResult struct {
	ID            int
	StrengthScore int
	StrengthLabel string
}

// Identity is what a parsed access token asserts about the caller.
type Identity struct {
	UserID int
	Role   string
}

// UpdateSettingsParams carries a full settings document plus the actor
// performing the write (for the role gate and the audit trail).
type UpdateSettingsParams struct {
	Actor       Identity
	PricePerKWh float64
	WattsByType map[string]float64
}

// CostEstimate is the arithmetic result of pricing one device over a span.
type CostEstimate struct {
	DeviceType  string  `json:"device_type"`
	Watts       float64 `json:"watts"`
	Hours       float64 `json:"hours"`
	EnergyKWh   float64 `json:"energy_kwh"`
	PricePerKWh float64 `json:"price_per_kwh"`
	Cost        float64 `json:"cost"`
}

// EventFilter supports history filtering by time range and type.
type EventFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "SIGN_UP", "LOGIN_FAILURE", "ACCOUNT_LOCKED", "SETTINGS_UPDATE", "TELEMETRY"
}
