package service

import (
	"context"
	"errors"
	"testing"

	"power_monitor/internal/models"
)

// mockSettingsRepo is an in-memory stand-in for repository.SettingsRepo.
type mockSettingsRepo struct {
	stored  models.PowerSettings
	loadErr error
	saveErr error
	saves   int
}

func (m *mockSettingsRepo) Save(ctx context.Context, s models.PowerSettings) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.stored = s
	m.saves++
	return nil
}

func (m *mockSettingsRepo) Load(ctx context.Context) (models.PowerSettings, error) {
	if m.loadErr != nil {
		return models.PowerSettings{}, m.loadErr
	}
	return m.stored, nil
}

func validWatts() map[string]float64 {
	watts := make(map[string]float64, len(models.DeviceTypes))
	for _, typ := range models.DeviceTypes {
		watts[typ] = 100
	}
	return watts
}

func TestSettingsService_Get_DefaultsWhenEmpty(t *testing.T) {
	svc := NewSettingsService(&mockSettingsRepo{}, &mockEventRepo{})

	st, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if st.PricePerKWh != 7.50 {
		t.Errorf("expected default price 7.50, got %v", st.PricePerKWh)
	}
	for _, typ := range models.DeviceTypes {
		if st.WattsByType[typ] <= 0 {
			t.Errorf("expected positive default wattage for %q", typ)
		}
	}
}

func TestSettingsService_Update_RoleGate(t *testing.T) {
	cases := []struct {
		role    string
		wantErr bool
	}{
		{models.RoleAdmin, false},
		{models.RoleManager, false},
		{models.RoleViewer, true},
		{"", true},
		{"root", true},
	}

	for _, tc := range cases {
		t.Run("role_"+tc.role, func(t *testing.T) {
			repo := &mockSettingsRepo{}
			svc := NewSettingsService(repo, &mockEventRepo{})

			_, err := svc.Update(context.Background(), UpdateSettingsParams{
				Actor:       Identity{UserID: 1, Role: tc.role},
				PricePerKWh: 8.0,
				WattsByType: validWatts(),
			})
			if tc.wantErr {
				if !errors.Is(err, ErrForbidden) {
					t.Fatalf("expected ErrForbidden for role %q, got %v", tc.role, err)
				}
				if repo.saves != 0 {
					t.Fatalf("expected no save for forbidden role, got %d", repo.saves)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error for role %q: %v", tc.role, err)
			}
			if repo.saves != 1 {
				t.Fatalf("expected one save, got %d", repo.saves)
			}
		})
	}
}

func TestSettingsService_Update_Validation(t *testing.T) {
	admin := Identity{UserID: 1, Role: models.RoleAdmin}

	t.Run("non-positive price", func(t *testing.T) {
		svc := NewSettingsService(&mockSettingsRepo{}, &mockEventRepo{})
		_, err := svc.Update(context.Background(), UpdateSettingsParams{
			Actor: admin, PricePerKWh: 0, WattsByType: validWatts(),
		})
		if !errors.Is(err, ErrInvalidPrice) {
			t.Fatalf("expected ErrInvalidPrice, got %v", err)
		}
	})

	t.Run("unknown device", func(t *testing.T) {
		watts := validWatts()
		watts["toaster"] = 900
		svc := NewSettingsService(&mockSettingsRepo{}, &mockEventRepo{})
		_, err := svc.Update(context.Background(), UpdateSettingsParams{
			Actor: admin, PricePerKWh: 8.0, WattsByType: watts,
		})
		if !errors.Is(err, ErrUnknownDevice) {
			t.Fatalf("expected ErrUnknownDevice, got %v", err)
		}
	})

	t.Run("missing device", func(t *testing.T) {
		watts := validWatts()
		delete(watts, models.DeviceLighting)
		svc := NewSettingsService(&mockSettingsRepo{}, &mockEventRepo{})
		_, err := svc.Update(context.Background(), UpdateSettingsParams{
			Actor: admin, PricePerKWh: 8.0, WattsByType: watts,
		})
		if !errors.Is(err, ErrMissingDevice) {
			t.Fatalf("expected ErrMissingDevice, got %v", err)
		}
	})

	t.Run("non-positive wattage", func(t *testing.T) {
		watts := validWatts()
		watts[models.DeviceTelevision] = 0
		svc := NewSettingsService(&mockSettingsRepo{}, &mockEventRepo{})
		_, err := svc.Update(context.Background(), UpdateSettingsParams{
			Actor: admin, PricePerKWh: 8.0, WattsByType: watts,
		})
		if !errors.Is(err, ErrInvalidWattage) {
			t.Fatalf("expected ErrInvalidWattage, got %v", err)
		}
	})
}

func TestSettingsService_Update_LastWriteWinsAndAudited(t *testing.T) {
	repo := &mockSettingsRepo{}
	events := &mockEventRepo{}
	svc := NewSettingsService(repo, events)

	first := validWatts()
	if _, err := svc.Update(context.Background(), UpdateSettingsParams{
		Actor: Identity{UserID: 1, Role: models.RoleAdmin}, PricePerKWh: 8.0, WattsByType: first,
	}); err != nil {
		t.Fatalf("first update: %v", err)
	}

	second := validWatts()
	second[models.DeviceAirConditioner] = 1800
	if _, err := svc.Update(context.Background(), UpdateSettingsParams{
		Actor: Identity{UserID: 2, Role: models.RoleManager}, PricePerKWh: 9.0, WattsByType: second,
	}); err != nil {
		t.Fatalf("second update: %v", err)
	}

	got, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.PricePerKWh != 9.0 || got.WattsByType[models.DeviceAirConditioner] != 1800 {
		t.Fatalf("expected last write to win, got %+v", got)
	}
	if got.UpdatedBy != 2 {
		t.Fatalf("expected UpdatedBy=2, got %d", got.UpdatedBy)
	}

	if len(events.appended) != 2 {
		t.Fatalf("expected 2 SETTINGS_UPDATE events, got %d", len(events.appended))
	}
	for _, e := range events.appended {
		if e.Type != models.EventSettingsUpdate {
			t.Errorf("unexpected event type %q", e.Type)
		}
	}
}
