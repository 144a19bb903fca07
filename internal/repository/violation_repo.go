package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"violation-tracker/internal/model"
)

const violationColumns = `id, uuid, violation_type_id, violation_number, location_address, latitude, longitude,
		violation_datetime, description, status, evidence_file_path, vehicle_plate, vehicle_type_id,
		created_by, created_at, updated_at`

type ViolationRepository struct {
	db DBTX
}

func NewViolationRepository(db DBTX) *ViolationRepository {
	return &ViolationRepository{db: db}
}

func scanViolation(row pgx.Row) (model.Violation, error) {
	var v model.Violation
	var occurredAt time.Time
	err := row.Scan(&v.ID, &v.UUID, &v.ViolationTypeID, &v.ViolationNumber, &v.LocationAddress,
		&v.Latitude, &v.Longitude, &occurredAt, &v.Description, &v.Status, &v.EvidenceFilePath,
		&v.VehiclePlate, &v.VehicleTypeID, &v.CreatedBy, &v.CreatedAt, &v.UpdatedAt)
	v.ViolationDatetime = model.NewDateTime(occurredAt)
	return v, err
}

func collectViolations(rows pgx.Rows) ([]model.Violation, error) {
	defer rows.Close()

	items := make([]model.Violation, 0)
	for rows.Next() {
		v, err := scanViolation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan violation: %w", err)
		}
		items = append(items, v)
	}
	return items, rows.Err()
}

func (r *ViolationRepository) List(ctx context.Context, page int, perPage int) ([]model.Violation, int, error) {
	total, err := r.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	limit, offset := limitOffset(page, perPage)
	rows, err := r.db.Query(ctx,
		`SELECT `+violationColumns+` FROM violations WHERE deleted_at IS NULL
		 ORDER BY violation_datetime DESC, id DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list violations: %w", err)
	}

	items, err := collectViolations(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *ViolationRepository) Recent(ctx context.Context, limit int) ([]model.Violation, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+violationColumns+` FROM violations WHERE deleted_at IS NULL
		 ORDER BY violation_datetime DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent violations: %w", err)
	}
	return collectViolations(rows)
}

func (r *ViolationRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM violations WHERE deleted_at IS NULL`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count violations: %w", err)
	}
	return total, nil
}

func (r *ViolationRepository) FindByID(ctx context.Context, id int64) (model.Violation, error) {
	v, err := scanViolation(r.db.QueryRow(ctx,
		`SELECT `+violationColumns+` FROM violations WHERE id = $1 AND deleted_at IS NULL`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Violation{}, model.ErrViolationNotFound
	}
	if err != nil {
		return model.Violation{}, fmt.Errorf("find violation: %w", err)
	}
	return v, nil
}

// Create inserts v and fills in its generated id, status and timestamps.
func (r *ViolationRepository) Create(ctx context.Context, v *model.Violation) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO violations
		 (uuid, violation_type_id, location_address, latitude, longitude, violation_datetime,
		  description, vehicle_plate, vehicle_type_id, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, status, created_at, updated_at`,
		v.UUID, v.ViolationTypeID, v.LocationAddress, v.Latitude, v.Longitude, v.ViolationDatetime.Time,
		v.Description, v.VehiclePlate, v.VehicleTypeID, v.CreatedBy).
		Scan(&v.ID, &v.Status, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create violation: %w", err)
	}
	return nil
}

func (r *ViolationRepository) Update(ctx context.Context, v model.Violation) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE violations
		 SET location_address = $2, latitude = $3, longitude = $4, violation_datetime = $5,
		     description = $6, vehicle_plate = $7, vehicle_type_id = $8, updated_at = $9
		 WHERE id = $1 AND deleted_at IS NULL`,
		v.ID, v.LocationAddress, v.Latitude, v.Longitude, v.ViolationDatetime.Time,
		v.Description, v.VehiclePlate, v.VehicleTypeID, v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update violation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrViolationNotFound
	}
	return nil
}

func (r *ViolationRepository) SoftDelete(ctx context.Context, id int64, at time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE violations SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`, id, at)
	if err != nil {
		return fmt.Errorf("delete violation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrViolationNotFound
	}
	return nil
}
