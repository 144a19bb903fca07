package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"violation-tracker/internal/model"
)

type UserCounter interface {
	Count(ctx context.Context) (int, error)
}

type RecentViolations interface {
	Count(ctx context.Context) (int, error)
	Recent(ctx context.Context, limit int) ([]model.Violation, error)
}

type RecentObservations interface {
	Count(ctx context.Context) (int, error)
	Recent(ctx context.Context, limit int) ([]model.Observation, error)
}

type ActiveTypeCounter interface {
	CountActiveViolationTypes(ctx context.Context) (int, error)
	CountActiveVehicleTypes(ctx context.Context) (int, error)
}

type DashboardService struct {
	users        UserCounter
	violations   RecentViolations
	observations RecentObservations
	catalog      ActiveTypeCounter
}

func NewDashboardService(users UserCounter, violations RecentViolations, observations RecentObservations, catalog ActiveTypeCounter) *DashboardService {
	return &DashboardService{users: users, violations: violations, observations: observations, catalog: catalog}
}

// Summary gathers the dashboard counters and the latest records. The queries
// run concurrently; the first failure cancels the rest.
func (s *DashboardService) Summary(ctx context.Context) (model.DashboardSummary, error) {
	var summary model.DashboardSummary
	g, gctx := errgroup.WithContext(ctx)

	count := func(dst *int, fn func(context.Context) (int, error)) {
		g.Go(func() error {
			n, err := fn(gctx)
			if err != nil {
				return err
			}
			*dst = n
			return nil
		})
	}

	count(&summary.Counts.Users, s.users.Count)
	count(&summary.Counts.Violations, s.violations.Count)
	count(&summary.Counts.Observations, s.observations.Count)
	count(&summary.Counts.ViolationTypesActive, s.catalog.CountActiveViolationTypes)
	count(&summary.Counts.VehicleTypesActive, s.catalog.CountActiveVehicleTypes)

	g.Go(func() error {
		items, err := s.violations.Recent(gctx, recentLimit)
		summary.RecentViolations = items
		return err
	})
	g.Go(func() error {
		items, err := s.observations.Recent(gctx, recentLimit)
		summary.RecentObservations = items
		return err
	})

	if err := g.Wait(); err != nil {
		return model.DashboardSummary{}, fmt.Errorf("dashboard summary: %w", err)
	}
	return summary, nil
}
