package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"power_monitor/internal/models"
)

type ReadingSQLite struct {
	db *sql.DB
}

func NewReadingSQLite(db *sql.DB) *ReadingSQLite {
	return &ReadingSQLite{db: db}
}

var _ ReadingRepo = (*ReadingSQLite)(nil)

const (
	upsertReadingSQL = `
		INSERT INTO device_readings (device_type, watts, recorded_at)
		VALUES (?, ?, ?)
		ON CONFLICT(device_type) DO UPDATE SET
			watts=excluded.watts,
			recorded_at=excluded.recorded_at
	`

	selectLatestReadingsSQL = `
		SELECT device_type, watts, recorded_at
		FROM device_readings
		ORDER BY device_type ASC
	`
)

// Upsert replaces the latest reading for the device type.
func (r *ReadingSQLite) Upsert(ctx context.Context, reading models.DeviceReading) error {
	ts := reading.RecordedAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	} else {
		ts = ts.UTC()
	}
	if _, err := r.db.ExecContext(ctx, upsertReadingSQL, reading.DeviceType, reading.Watts, ts); err != nil {
		return fmt.Errorf("upsert reading for %q: %w", reading.DeviceType, err)
	}
	return nil
}

// Latest returns the most recent reading per device type.
func (r *ReadingSQLite) Latest(ctx context.Context) ([]models.DeviceReading, error) {
	rows, err := r.db.QueryContext(ctx, selectLatestReadingsSQL)
	if err != nil {
		return nil, fmt.Errorf("select latest readings: %w", err)
	}
	defer rows.Close()

	out := make([]models.DeviceReading, 0, len(models.DeviceTypes))
	for rows.Next() {
		var rd models.DeviceReading
		if err := rows.Scan(&rd.DeviceType, &rd.Watts, &rd.RecordedAt); err != nil {
			return nil, err
		}
		rd.RecordedAt = rd.RecordedAt.UTC()
		out = append(out, rd)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
