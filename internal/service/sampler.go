package service

import (
	"context"
	"math/rand"
	"time"

	"power_monitor/internal/models"
	"power_monitor/internal/repository"
)

// Jitter band applied to the rated wattage of each device per sample.
const (
	jitterLow  = 0.85
	jitterHigh = 1.15
)

// SamplerService refreshes per-device readings over time from the rated
// wattages in the current settings.
type SamplerService struct {
	settingsRepo repository.SettingsRepo
	readingRepo  repository.ReadingRepo
	eventRepo    repository.EventRepo
	rng          *rand.Rand
}

func NewSamplerService(settingsRepo repository.SettingsRepo, readingRepo repository.ReadingRepo, eventRepo repository.EventRepo) *SamplerService {
	return &SamplerService{
		settingsRepo: settingsRepo,
		readingRepo:  readingRepo,
		eventRepo:    eventRepo,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run ticks at the given interval until ctx is canceled.
func (s *SamplerService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			s.sample(ctx, now.UTC())
		}
	}
}

// sample writes one jittered reading per configured device type and an
// aggregate TELEMETRY event. Per-device repo errors are skipped so one bad
// write doesn't starve the others.
func (s *SamplerService) sample(ctx context.Context, now time.Time) {
	st, err := s.settingsRepo.Load(ctx)
	if err != nil {
		return
	}
	if st.ID == 0 {
		st = models.DefaultPowerSettings()
	}

	total := 0.0
	for _, typ := range models.DeviceTypes {
		rated, ok := st.WattsByType[typ]
		if !ok {
			continue
		}
		watts := rated * (jitterLow + s.rng.Float64()*(jitterHigh-jitterLow))
		if err := s.readingRepo.Upsert(ctx, models.DeviceReading{
			DeviceType: typ,
			Watts:      watts,
			RecordedAt: now,
		}); err != nil {
			continue
		}
		total += watts
	}

	_ = s.eventRepo.Append(ctx, models.AuditEvent{
		OccurredAt:  now,
		Type:        models.EventTelemetry,
		Description: "Telemetry sample",
		Metadata:    map[string]any{"total_watts": total},
	})
}
