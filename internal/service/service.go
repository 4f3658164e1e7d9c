package service

import (
	"context"
	"time"

	"power_monitor/internal/models"
	"power_monitor/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, p SignUpParams) (SignUpResult, error)
	GenerateToken(ctx context.Context, email, password string, rememberMe bool) (string, error)
	ParseToken(accessToken string) (Identity, error)
}

// Settings exposes the operator-managed tariff and wattage document.
type Settings interface {
	Get(ctx context.Context) (models.PowerSettings, error)
	Update(ctx context.Context, p UpdateSettingsParams) (models.PowerSettings, error)
}

// Cost derives running-cost figures from the current settings.
type Cost interface {
	Estimate(ctx context.Context, deviceType string, hours float64) (CostEstimate, error)
}

// Monitoring exposes the latest sampled reading per device type.
type Monitoring interface {
	LatestReadings(ctx context.Context) ([]models.DeviceReading, error)
}

// EventLog exposes append-only audit logs with filtering access.
type EventLog interface {
	List(ctx context.Context, f EventFilter) ([]models.AuditEvent, error)
}

// Sampler runs the background loop that refreshes device readings.
// Stop via context cancellation in main() for graceful shutdown.
type Sampler interface {
	Run(ctx context.Context, tick time.Duration)
}

// AuthConfig carries the tunables of the auth service. Zero fields fall
// back to the documented defaults.
type AuthConfig struct {
	SigningKey      string
	TokenTTL        time.Duration // sign-in without remember-me
	RememberTTL     time.Duration // sign-in with remember-me
	MaxFailures     int           // consecutive failures before lockout
	LockoutWindow   time.Duration // window consecutive failures are counted in
	RateLimitMax    int           // attempts allowed per RateLimitWindow
	RateLimitWindow time.Duration
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Authorization
	Settings
	Cost
	Monitoring
	EventLog
	Sampler
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, authCfg AuthConfig) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Auth, repos.Attempts, repos.Events, authCfg),
		Settings:      NewSettingsService(repos.Settings, repos.Events),
		Cost:          NewCostService(repos.Settings),
		Monitoring:    NewMonitoringService(repos.Readings),
		EventLog:      NewEventLogService(repos.Events),
		Sampler:       NewSamplerService(repos.Settings, repos.Readings, repos.Events),
	}
}
