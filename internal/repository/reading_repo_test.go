package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"power_monitor/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockReadingRepo(t *testing.T) (*ReadingSQLite, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewReadingSQLite(db)
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return repo, mock, cleanup
}

func TestReadingSQLite_Upsert(t *testing.T) {
	t.Run("writes device row", func(t *testing.T) {
		repo, mock, cleanup := newMockReadingRepo(t)
		defer cleanup()

		ts := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
		mock.ExpectExec(regexp.QuoteMeta(upsertReadingSQL)).
			WithArgs(models.DeviceLighting, 62.5, ts).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.Upsert(context.Background(), models.DeviceReading{
			DeviceType: models.DeviceLighting,
			Watts:      62.5,
			RecordedAt: ts,
		})
		if err != nil {
			t.Fatalf("Upsert returned error: %v", err)
		}
	})

	t.Run("wraps exec error", func(t *testing.T) {
		repo, mock, cleanup := newMockReadingRepo(t)
		defer cleanup()

		dbErr := errors.New("disk I/O error")
		mock.ExpectExec(regexp.QuoteMeta(upsertReadingSQL)).
			WithArgs(models.DeviceTelevision, 120.0, sqlmock.AnyArg()).
			WillReturnError(dbErr)

		err := repo.Upsert(context.Background(), models.DeviceReading{
			DeviceType: models.DeviceTelevision,
			Watts:      120,
		})
		if !errors.Is(err, dbErr) {
			t.Fatalf("expected wrapped exec error, got %v", err)
		}
	})
}

func TestReadingSQLite_Latest(t *testing.T) {
	repo, mock, cleanup := newMockReadingRepo(t)
	defer cleanup()

	ts := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"device_type", "watts", "recorded_at"}).
		AddRow(models.DeviceAirConditioner, 1480.2, ts).
		AddRow(models.DeviceRefrigerator, 205.7, ts)
	mock.ExpectQuery(regexp.QuoteMeta(selectLatestReadingsSQL)).
		WillReturnRows(rows)

	readings, err := repo.Latest(context.Background())
	if err != nil {
		t.Fatalf("Latest returned error: %v", err)
	}
	if len(readings) != 2 {
		t.Fatalf("expected 2 readings, got %d", len(readings))
	}
	if readings[0].DeviceType != models.DeviceAirConditioner {
		t.Errorf("expected air_conditioner first, got %q", readings[0].DeviceType)
	}
	if loc := readings[0].RecordedAt.Location(); loc != time.UTC {
		t.Errorf("expected UTC timestamps, got %v", loc)
	}
}
