package repository

import (
	"context"
	"database/sql"
	"time"

	"power_monitor/internal/models"
	"power_monitor/internal/repository/db"
)

type Authorization interface {
	Create(email, hash, role string) (int, error)
	GetByEmail(email string) (*models.User, error)
}

// LoginAttemptRepo records sign-in attempts and exposes the recent history
// the auth service needs for lockout and rate-limit decisions.
type LoginAttemptRepo interface {
	Record(ctx context.Context, a models.LoginAttempt) error
	Recent(ctx context.Context, email string, since time.Time) ([]models.LoginAttempt, error)
}

// SettingsRepo persists the single power-settings row (last write wins).
type SettingsRepo interface {
	Save(ctx context.Context, s models.PowerSettings) error
	Load(ctx context.Context) (models.PowerSettings, error)
}

// ReadingRepo keeps the latest sampled reading per device type.
type ReadingRepo interface {
	Upsert(ctx context.Context, r models.DeviceReading) error
	Latest(ctx context.Context) ([]models.DeviceReading, error)
}

type EventRepo interface {
	Append(ctx context.Context, e models.AuditEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.AuditEvent, error)
}

type Repository struct {
	Auth     Authorization
	Attempts LoginAttemptRepo
	Settings SettingsRepo
	Readings ReadingRepo
	Events   EventRepo
}

func NewRepository(sqlDB *sql.DB) *Repository {
	return &Repository{
		Auth:     NewUserRepository(sqlDB),
		Attempts: NewLoginAttemptSQLite(sqlDB),
		Settings: NewSettingsSQLite(sqlDB),
		Readings: NewReadingSQLite(sqlDB),
		Events:   NewEventSQLite(sqlDB),
	}
}

// InitDB opens the SQLite database and ensures the schema exists.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}
