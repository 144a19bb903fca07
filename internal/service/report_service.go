package service

import (
	"context"
	"time"

	"violation-tracker/internal/model"
)

const (
	defaultReportDays = 7
	maxReportDays     = 366
	recentLimit       = 5
)

type ReportStore interface {
	ViolationsByType(ctx context.Context) ([]model.TypeTotal, error)
	ObservationsByVehicle(ctx context.Context) ([]model.TypeTotal, error)
	DailyViolations(ctx context.Context, since time.Time) ([]model.DailyTotal, error)
}

type ReportService struct {
	reports ReportStore
	now     func() time.Time
}

func NewReportService(reports ReportStore) *ReportService {
	return &ReportService{reports: reports, now: time.Now}
}

func (s *ReportService) ViolationsByType(ctx context.Context) ([]model.TypeTotal, error) {
	return s.reports.ViolationsByType(ctx)
}

func (s *ReportService) ObservationsByVehicle(ctx context.Context) ([]model.TypeTotal, error) {
	return s.reports.ObservationsByVehicle(ctx)
}

// DailyViolations counts violations per day over the last days days;
// non-positive values mean a week and anything past a year is clamped.
func (s *ReportService) DailyViolations(ctx context.Context, days int) ([]model.DailyTotal, error) {
	if days <= 0 {
		days = defaultReportDays
	}
	if days > maxReportDays {
		days = maxReportDays
	}
	since := s.now().UTC().AddDate(0, 0, -days)
	return s.reports.DailyViolations(ctx, since)
}
