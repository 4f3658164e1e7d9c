package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"power_monitor/internal/models"
)

type SettingsSQLite struct {
	db *sql.DB
}

func NewSettingsSQLite(db *sql.DB) *SettingsSQLite {
	return &SettingsSQLite{db: db}
}

var _ SettingsRepo = (*SettingsSQLite)(nil)

const (
	powerSettingsRowID = 1

	insertOrUpdateSettingsSQL = `
		INSERT INTO power_settings (id, price_per_kwh, watts_by_type, updated_by, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			price_per_kwh=excluded.price_per_kwh,
			watts_by_type=excluded.watts_by_type,
			updated_by=excluded.updated_by,
			updated_at=excluded.updated_at
	`

	selectSettingsSQL = `
		SELECT id, price_per_kwh, watts_by_type, updated_by, updated_at
		FROM power_settings WHERE id=?
	`
)

// marshalWatts converts the wattage map to a JSON string.
func marshalWatts(watts map[string]float64) (string, error) {
	b, err := json.Marshal(watts)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// unmarshalWatts parses a JSON string into a wattage map.
func unmarshalWatts(s string) (map[string]float64, error) {
	if s == "" {
		return nil, nil
	}
	var watts map[string]float64
	if err := json.Unmarshal([]byte(s), &watts); err != nil {
		return nil, err
	}
	return watts, nil
}

// Save updates or inserts the power_settings row (id always 1).
func (r *SettingsSQLite) Save(ctx context.Context, s models.PowerSettings) error {
	wattsJSONStr, err := marshalWatts(s.WattsByType)
	if err != nil {
		return err
	}

	// ensure UpdatedAt is always persisted as UTC; set if zero
	tsUTC := s.UpdatedAt
	if tsUTC.IsZero() {
		tsUTC = time.Now().UTC()
	} else {
		tsUTC = tsUTC.UTC()
	}

	_, err = r.db.ExecContext(ctx, insertOrUpdateSettingsSQL,
		powerSettingsRowID,
		s.PricePerKWh,
		wattsJSONStr,
		s.UpdatedBy,
		tsUTC,
	)
	return err
}

// Load fetches the single power_settings row (id=1).
func (r *SettingsSQLite) Load(ctx context.Context) (models.PowerSettings, error) {
	row := r.db.QueryRowContext(ctx, selectSettingsSQL, powerSettingsRowID)

	var s models.PowerSettings
	var wattsJSONStr string
	var updatedBy sql.NullInt64
	if err := row.Scan(
		&s.ID,
		&s.PricePerKWh,
		&wattsJSONStr,
		&updatedBy,
		&s.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.PowerSettings{}, nil // no settings yet
		}
		return models.PowerSettings{}, err
	}

	watts, err := unmarshalWatts(wattsJSONStr)
	if err != nil {
		return models.PowerSettings{}, err
	}
	s.WattsByType = watts
	if updatedBy.Valid {
		s.UpdatedBy = int(updatedBy.Int64)
	}
	s.UpdatedAt = s.UpdatedAt.UTC()

	return s, nil
}
