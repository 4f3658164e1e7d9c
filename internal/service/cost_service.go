package service

import (
	"context"
	"errors"
	"fmt"

	"power_monitor/internal/models"
	"power_monitor/internal/repository"
)

var errInvalidHours = errors.New("hours must be > 0")

// CostService prices device usage against the current tariff.
type CostService struct {
	settingsRepo repository.SettingsRepo
}

func NewCostService(settingsRepo repository.SettingsRepo) *CostService {
	return &CostService{settingsRepo: settingsRepo}
}

// Estimate computes wattage/1000 × hours × price for one device type.
// E.g. a 1500 W air conditioner at 7.50/kWh for one hour costs 11.25.
func (s *CostService) Estimate(ctx context.Context, deviceType string, hours float64) (CostEstimate, error) {
	if hours <= 0 {
		return CostEstimate{}, errInvalidHours
	}

	st, err := s.settingsRepo.Load(ctx)
	if err != nil {
		return CostEstimate{}, err
	}
	if st.ID == 0 {
		st = models.DefaultPowerSettings()
	}

	watts, ok := st.WattsByType[deviceType]
	if !ok {
		return CostEstimate{}, fmt.Errorf("%w: %q", ErrUnknownDevice, deviceType)
	}

	energyKWh := watts / 1000 * hours
	return CostEstimate{
		DeviceType:  deviceType,
		Watts:       watts,
		Hours:       hours,
		EnergyKWh:   energyKWh,
		PricePerKWh: st.PricePerKWh,
		Cost:        energyKWh * st.PricePerKWh,
	}, nil
}
