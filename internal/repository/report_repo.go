package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"violation-tracker/internal/model"
)

type ReportRepository struct {
	db DBTX
}

func NewReportRepository(db DBTX) *ReportRepository {
	return &ReportRepository{db: db}
}

func collectTypeTotals(rows pgx.Rows) ([]model.TypeTotal, error) {
	defer rows.Close()

	items := make([]model.TypeTotal, 0)
	for rows.Next() {
		var t model.TypeTotal
		if err := rows.Scan(&t.ID, &t.Name, &t.Code, &t.Total); err != nil {
			return nil, fmt.Errorf("scan type total: %w", err)
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

// ViolationsByType counts live violations per active violation type,
// including types with no violations.
func (r *ReportRepository) ViolationsByType(ctx context.Context) ([]model.TypeTotal, error) {
	rows, err := r.db.Query(ctx,
		`SELECT vt.id, vt.name, vt.code, COUNT(v.id)::int
		 FROM violation_types vt
		 LEFT JOIN violations v ON v.violation_type_id = vt.id AND v.deleted_at IS NULL
		 WHERE vt.is_active AND vt.deleted_at IS NULL
		 GROUP BY vt.id, vt.name, vt.code
		 ORDER BY 4 DESC, vt.name`)
	if err != nil {
		return nil, fmt.Errorf("violations by type: %w", err)
	}
	return collectTypeTotals(rows)
}

func (r *ReportRepository) ObservationsByVehicle(ctx context.Context) ([]model.TypeTotal, error) {
	rows, err := r.db.Query(ctx,
		`SELECT vt.id, vt.name, vt.code, COUNT(o.id)::int
		 FROM vehicle_types vt
		 LEFT JOIN traffic_observations o ON o.vehicle_type_id = vt.id AND o.deleted_at IS NULL
		 WHERE vt.is_active AND vt.deleted_at IS NULL
		 GROUP BY vt.id, vt.name, vt.code
		 ORDER BY 4 DESC, vt.name`)
	if err != nil {
		return nil, fmt.Errorf("observations by vehicle: %w", err)
	}
	return collectTypeTotals(rows)
}

// DailyViolations returns per-day (UTC) violation counts from since onward.
// Days with no violations are absent.
func (r *ReportRepository) DailyViolations(ctx context.Context, since time.Time) ([]model.DailyTotal, error) {
	rows, err := r.db.Query(ctx,
		`SELECT to_char(date_trunc('day', violation_datetime AT TIME ZONE 'UTC'), 'YYYY-MM-DD'), COUNT(*)::int
		 FROM violations
		 WHERE deleted_at IS NULL AND violation_datetime >= $1
		 GROUP BY 1
		 ORDER BY 1`, since)
	if err != nil {
		return nil, fmt.Errorf("daily violations: %w", err)
	}
	defer rows.Close()

	items := make([]model.DailyTotal, 0)
	for rows.Next() {
		var d model.DailyTotal
		if err := rows.Scan(&d.Day, &d.Total); err != nil {
			return nil, fmt.Errorf("scan daily total: %w", err)
		}
		items = append(items, d)
	}
	return items, rows.Err()
}
