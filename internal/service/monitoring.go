package service

import (
	"context"

	"power_monitor/internal/models"
	"power_monitor/internal/repository"
)

type MonitoringService struct {
	readingRepo repository.ReadingRepo
}

func NewMonitoringService(readingRepo repository.ReadingRepo) *MonitoringService {
	return &MonitoringService{readingRepo: readingRepo}
}

// LatestReadings returns the most recent sampled reading per device type.
// An empty slice (not nil) is returned before the sampler's first tick.
func (s *MonitoringService) LatestReadings(ctx context.Context) ([]models.DeviceReading, error) {
	readings, err := s.readingRepo.Latest(ctx)
	if err != nil {
		return nil, err
	}
	if readings == nil {
		readings = []models.DeviceReading{}
	}
	return readings, nil
}
