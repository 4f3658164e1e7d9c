package service

import (
	"context"
	"testing"
	"time"

	"power_monitor/internal/models"
)

// mockReadingRepo stores readings by device type.
type mockReadingRepo struct {
	readings map[string]models.DeviceReading
	upserts  int
}

func (m *mockReadingRepo) Upsert(ctx context.Context, r models.DeviceReading) error {
	if m.readings == nil {
		m.readings = make(map[string]models.DeviceReading)
	}
	m.readings[r.DeviceType] = r
	m.upserts++
	return nil
}

func (m *mockReadingRepo) Latest(ctx context.Context) ([]models.DeviceReading, error) {
	out := make([]models.DeviceReading, 0, len(m.readings))
	for _, r := range m.readings {
		out = append(out, r)
	}
	return out, nil
}

func TestSampler_SampleWritesEveryDeviceWithinJitterBand(t *testing.T) {
	settings := &mockSettingsRepo{stored: models.DefaultPowerSettings()}
	readings := &mockReadingRepo{}
	events := &mockEventRepo{}
	s := NewSamplerService(settings, readings, events)

	now := time.Now().UTC()
	s.sample(context.Background(), now)

	if readings.upserts != len(models.DeviceTypes) {
		t.Fatalf("expected %d upserts, got %d", len(models.DeviceTypes), readings.upserts)
	}
	for _, typ := range models.DeviceTypes {
		r, ok := readings.readings[typ]
		if !ok {
			t.Fatalf("missing reading for %q", typ)
		}
		rated := settings.stored.WattsByType[typ]
		if r.Watts < rated*jitterLow || r.Watts > rated*jitterHigh {
			t.Errorf("reading for %q (%v W) outside jitter band of rated %v W", typ, r.Watts, rated)
		}
		if !r.RecordedAt.Equal(now) {
			t.Errorf("reading for %q has RecordedAt %v, want %v", typ, r.RecordedAt, now)
		}
	}

	if len(events.appended) != 1 || events.appended[0].Type != models.EventTelemetry {
		t.Fatalf("expected one TELEMETRY event, got %+v", events.appended)
	}
}

func TestSampler_RunStopsOnCancel(t *testing.T) {
	s := NewSamplerService(&mockSettingsRepo{}, &mockReadingRepo{}, &mockEventRepo{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx, 10*time.Millisecond)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sampler did not stop after cancellation")
	}
}

func TestMonitoring_LatestReadingsNeverNil(t *testing.T) {
	svc := NewMonitoringService(&mockReadingRepo{})

	readings, err := svc.LatestReadings(context.Background())
	if err != nil {
		t.Fatalf("LatestReadings returned error: %v", err)
	}
	if readings == nil {
		t.Fatal("expected empty slice, got nil")
	}
}
