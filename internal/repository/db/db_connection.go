package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"power_monitor/internal/models"

	_ "modernc.org/sqlite"
)

// InitDB opens/creates a SQLite DB file and ensures tables exist.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// Conservative pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is not great with many writers
	db.SetMaxIdleConns(1)

	// Pragmas to improve reliability
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set PRAGMA journal_mode=WAL: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set PRAGMA foreign_keys=ON: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set PRAGMA busy_timeout=5000: %w", err)
	}

	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Fail fast if the DB cannot be reached
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

const sqliteDriverName = "sqlite"

const schemaUsers = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    email TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL,
    role TEXT NOT NULL DEFAULT 'viewer'
);
`

const schemaPowerSettings = `
CREATE TABLE IF NOT EXISTS power_settings (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    price_per_kwh REAL NOT NULL,
    watts_by_type TEXT NOT NULL,
    updated_by INTEGER,
    updated_at TIMESTAMP NOT NULL
);
`

const schemaDeviceReadings = `
CREATE TABLE IF NOT EXISTS device_readings (
    device_type TEXT PRIMARY KEY,
    watts REAL NOT NULL,
    recorded_at TIMESTAMP NOT NULL
);
`

const schemaAuditEvents = `
CREATE TABLE IF NOT EXISTS audit_events (
    id TEXT PRIMARY KEY,
    occurred_at TIMESTAMP NOT NULL,
    type TEXT NOT NULL,
    message TEXT NOT NULL,
    meta TEXT
);
`

const schemaLoginAttempts = `
CREATE TABLE IF NOT EXISTS login_attempts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    email TEXT NOT NULL,
    success BOOLEAN NOT NULL,
    attempted_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_login_attempts_email_time
    ON login_attempts (email, attempted_at);
`

const seedPowerSettingsSQL = `
INSERT OR IGNORE INTO power_settings (id, price_per_kwh, watts_by_type, updated_at)
VALUES (1, ?, ?, ?);
`

func ensureSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		// In case of panic, rollback to avoid leaving an open transaction
		_ = tx.Rollback()
	}()

	for i, stmt := range []string{
		schemaUsers,
		schemaPowerSettings,
		schemaDeviceReadings,
		schemaAuditEvents,
		schemaLoginAttempts,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}

	// Seed the settings row on first boot; a saved document wins afterwards.
	def := models.DefaultPowerSettings()
	watts, err := json.Marshal(def.WattsByType)
	if err != nil {
		return fmt.Errorf("marshal default wattages: %w", err)
	}
	if _, err := tx.Exec(seedPowerSettingsSQL, def.PricePerKWh, string(watts), time.Now().UTC()); err != nil {
		return fmt.Errorf("seed power settings: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}
