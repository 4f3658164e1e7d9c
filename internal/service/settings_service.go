package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"power_monitor/internal/models"
	"power_monitor/internal/repository"
)

// Domain errors for settings writes.
var (
	ErrForbidden      = errors.New("role is not allowed to update settings")
	ErrInvalidPrice   = errors.New("price_per_kwh must be > 0")
	ErrInvalidWattage = errors.New("every device wattage must be > 0")
	ErrUnknownDevice  = errors.New("unknown device type")
	ErrMissingDevice  = errors.New("missing device type")
)

type SettingsService struct {
	settingsRepo repository.SettingsRepo
	eventRepo    repository.EventRepo
}

func NewSettingsService(settingsRepo repository.SettingsRepo, eventRepo repository.EventRepo) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo, eventRepo: eventRepo}
}

// Get returns the persisted settings, or the seeded defaults when nothing
// has been saved yet.
func (s *SettingsService) Get(ctx context.Context) (models.PowerSettings, error) {
	st, err := s.settingsRepo.Load(ctx)
	if err != nil {
		return models.PowerSettings{}, err
	}
	if st.ID == 0 {
		return models.DefaultPowerSettings(), nil
	}
	return st, nil
}

// Update replaces the whole settings document (last write wins). Only
// admin and manager roles may write; the document must carry a positive
// price and a positive wattage for every known device type.
func (s *SettingsService) Update(ctx context.Context, p UpdateSettingsParams) (models.PowerSettings, error) {
	switch p.Actor.Role {
	case models.RoleAdmin, models.RoleManager:
	default:
		return models.PowerSettings{}, ErrForbidden
	}

	if err := validateSettings(p.PricePerKWh, p.WattsByType); err != nil {
		return models.PowerSettings{}, err
	}

	st := models.PowerSettings{
		ID:          1,
		PricePerKWh: p.PricePerKWh,
		WattsByType: p.WattsByType,
		UpdatedBy:   p.Actor.UserID,
		UpdatedAt:   time.Now().UTC(),
	}
	if err := s.settingsRepo.Save(ctx, st); err != nil {
		return models.PowerSettings{}, err
	}

	_ = s.eventRepo.Append(ctx, models.AuditEvent{
		Type:        models.EventSettingsUpdate,
		Description: "Power settings updated",
		Metadata: map[string]any{
			"price_per_kwh": st.PricePerKWh,
			"updated_by":    st.UpdatedBy,
		},
	})

	return st, nil
}

func validateSettings(price float64, watts map[string]float64) error {
	if price <= 0 {
		return ErrInvalidPrice
	}
	for typ := range watts {
		if !knownDeviceType(typ) {
			return fmt.Errorf("%w: %q", ErrUnknownDevice, typ)
		}
	}
	for _, typ := range models.DeviceTypes {
		w, ok := watts[typ]
		if !ok {
			return fmt.Errorf("%w: %q", ErrMissingDevice, typ)
		}
		if w <= 0 {
			return fmt.Errorf("%w: %q", ErrInvalidWattage, typ)
		}
	}
	return nil
}

func knownDeviceType(typ string) bool {
	for _, t := range models.DeviceTypes {
		if t == typ {
			return true
		}
	}
	return false
}
