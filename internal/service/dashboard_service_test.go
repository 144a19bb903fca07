package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"violation-tracker/internal/model"
)

type countFunc func(context.Context) (int, error)

func (f countFunc) Count(ctx context.Context) (int, error) { return f(ctx) }

type fakeRecentViolations struct {
	count int
	items []model.Violation
}

func (f fakeRecentViolations) Count(context.Context) (int, error) { return f.count, nil }

func (f fakeRecentViolations) Recent(_ context.Context, limit int) ([]model.Violation, error) {
	if len(f.items) > limit {
		return f.items[:limit], nil
	}
	return f.items, nil
}

type fakeRecentObservations struct {
	count int
	err   error
}

func (f fakeRecentObservations) Count(context.Context) (int, error) { return f.count, f.err }

func (f fakeRecentObservations) Recent(context.Context, int) ([]model.Observation, error) {
	return []model.Observation{}, f.err
}

type fakeTypeCounter struct{}

func (fakeTypeCounter) CountActiveViolationTypes(context.Context) (int, error) { return 3, nil }
func (fakeTypeCounter) CountActiveVehicleTypes(context.Context) (int, error)   { return 3, nil }

func TestDashboardSummary(t *testing.T) {
	t.Parallel()

	users := countFunc(func(context.Context) (int, error) { return 4, nil })

	t.Run("collects counts and recent records", func(t *testing.T) {
		violations := fakeRecentViolations{count: 7, items: make([]model.Violation, 7)}
		svc := NewDashboardService(users, violations, fakeRecentObservations{count: 2}, fakeTypeCounter{})

		summary, err := svc.Summary(context.Background())
		require.NoError(t, err)
		require.Equal(t, model.DashboardCounts{
			Users: 4, Violations: 7, Observations: 2, ViolationTypesActive: 3, VehicleTypesActive: 3,
		}, summary.Counts)
		require.Len(t, summary.RecentViolations, 5)
		require.NotNil(t, summary.RecentObservations)
	})

	t.Run("fails when any query fails", func(t *testing.T) {
		svc := NewDashboardService(users, fakeRecentViolations{}, fakeRecentObservations{err: errors.New("db down")}, fakeTypeCounter{})

		_, err := svc.Summary(context.Background())
		require.Error(t, err)
	})
}

type fakeReportStore struct {
	since time.Time
}

func (f *fakeReportStore) ViolationsByType(context.Context) ([]model.TypeTotal, error) {
	return []model.TypeTotal{}, nil
}

func (f *fakeReportStore) ObservationsByVehicle(context.Context) ([]model.TypeTotal, error) {
	return []model.TypeTotal{}, nil
}

func (f *fakeReportStore) DailyViolations(_ context.Context, since time.Time) ([]model.DailyTotal, error) {
	f.since = since
	return []model.DailyTotal{}, nil
}

func TestReportServiceDailyViolations(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		days int
		want time.Time
	}{
		{days: 0, want: now.AddDate(0, 0, -7)},
		{days: -3, want: now.AddDate(0, 0, -7)},
		{days: 30, want: now.AddDate(0, 0, -30)},
		{days: 366, want: now.AddDate(0, 0, -366)},
		{days: 367, want: now.AddDate(0, 0, -366)},
		{days: 1000000000, want: now.AddDate(0, 0, -366)},
	}

	for _, tt := range tests {
		store := &fakeReportStore{}
		svc := NewReportService(store)
		svc.now = func() time.Time { return now }

		_, err := svc.DailyViolations(context.Background(), tt.days)
		require.NoError(t, err)
		require.Equal(t, tt.want, store.since)
	}
}
