package models

import "time"

// Device types with a configurable wattage. The sampler and the cost
// estimator only know devices listed here.
const (
	DeviceRefrigerator   = "refrigerator"
	DeviceAirConditioner = "air_conditioner"
	DeviceWashingMachine = "washing_machine"
	DeviceTelevision     = "television"
	DeviceLighting       = "lighting"
	DeviceWaterHeater    = "water_heater"
)

// DeviceTypes lists every configurable device type in display order.
var DeviceTypes = []string{
	DeviceRefrigerator,
	DeviceAirConditioner,
	DeviceWashingMachine,
	DeviceTelevision,
	DeviceLighting,
	DeviceWaterHeater,
}

// PowerSettings is the single operator-managed settings document:
// the electricity tariff plus the rated wattage of each device type.
// Last write wins; there is exactly one row in storage.
type PowerSettings struct {
	ID          int                `json:"id"`
	PricePerKWh float64            `json:"price_per_kwh"`
	WattsByType map[string]float64 `json:"watts_by_type"`
	UpdatedBy   int                `json:"updated_by,omitempty"` // user id of last writer
	UpdatedAt   time.Time          `json:"updated_at"`
}

// DefaultPowerSettings seeds storage on first boot.
func DefaultPowerSettings() PowerSettings {
	return PowerSettings{
		ID:          1,
		PricePerKWh: 7.50,
		WattsByType: map[string]float64{
			DeviceRefrigerator:   200,
			DeviceAirConditioner: 1500,
			DeviceWashingMachine: 500,
			DeviceTelevision:     120,
			DeviceLighting:       60,
			DeviceWaterHeater:    2000,
		},
	}
}
