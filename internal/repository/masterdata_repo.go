package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"violation-tracker/internal/model"
)

const (
	violationTypeColumns = `id, code, name, description, fine_amount, penalty_points, severity_level,
		is_active, created_at, updated_at`
	vehicleTypeColumns = `id, code, name, icon_class, color_code, is_active, created_at, updated_at`
)

// MasterDataRepository reads the violation and vehicle type catalogues.
type MasterDataRepository struct {
	db DBTX
}

func NewMasterDataRepository(db DBTX) *MasterDataRepository {
	return &MasterDataRepository{db: db}
}

func scanViolationType(row pgx.Row) (model.ViolationType, error) {
	var t model.ViolationType
	err := row.Scan(&t.ID, &t.Code, &t.Name, &t.Description, &t.FineAmount, &t.PenaltyPoints,
		&t.SeverityLevel, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func scanVehicleType(row pgx.Row) (model.VehicleType, error) {
	var t model.VehicleType
	err := row.Scan(&t.ID, &t.Code, &t.Name, &t.IconClass, &t.ColorCode, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (r *MasterDataRepository) ActiveViolationTypes(ctx context.Context) ([]model.ViolationType, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+violationTypeColumns+` FROM violation_types
		 WHERE is_active AND deleted_at IS NULL ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list violation types: %w", err)
	}
	defer rows.Close()

	items := make([]model.ViolationType, 0)
	for rows.Next() {
		t, err := scanViolationType(rows)
		if err != nil {
			return nil, fmt.Errorf("scan violation type: %w", err)
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

func (r *MasterDataRepository) ActiveVehicleTypes(ctx context.Context) ([]model.VehicleType, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+vehicleTypeColumns+` FROM vehicle_types
		 WHERE is_active AND deleted_at IS NULL ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list vehicle types: %w", err)
	}
	defer rows.Close()

	items := make([]model.VehicleType, 0)
	for rows.Next() {
		t, err := scanVehicleType(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vehicle type: %w", err)
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

func (r *MasterDataRepository) FindViolationTypeByCode(ctx context.Context, code string) (model.ViolationType, error) {
	t, err := scanViolationType(r.db.QueryRow(ctx,
		`SELECT `+violationTypeColumns+` FROM violation_types
		 WHERE code = $1 AND is_active AND deleted_at IS NULL`, code))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.ViolationType{}, model.ErrViolationTypeNotFound
	}
	if err != nil {
		return model.ViolationType{}, fmt.Errorf("find violation type: %w", err)
	}
	return t, nil
}

func (r *MasterDataRepository) FindVehicleTypeByCode(ctx context.Context, code string) (model.VehicleType, error) {
	t, err := scanVehicleType(r.db.QueryRow(ctx,
		`SELECT `+vehicleTypeColumns+` FROM vehicle_types
		 WHERE code = $1 AND is_active AND deleted_at IS NULL`, code))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.VehicleType{}, model.ErrVehicleTypeNotFound
	}
	if err != nil {
		return model.VehicleType{}, fmt.Errorf("find vehicle type: %w", err)
	}
	return t, nil
}

func (r *MasterDataRepository) FindVehicleTypeByID(ctx context.Context, id int64) (model.VehicleType, error) {
	t, err := scanVehicleType(r.db.QueryRow(ctx,
		`SELECT `+vehicleTypeColumns+` FROM vehicle_types
		 WHERE id = $1 AND is_active AND deleted_at IS NULL`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.VehicleType{}, model.ErrVehicleTypeNotFound
	}
	if err != nil {
		return model.VehicleType{}, fmt.Errorf("find vehicle type: %w", err)
	}
	return t, nil
}

func (r *MasterDataRepository) CountActiveViolationTypes(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM violation_types WHERE is_active AND deleted_at IS NULL`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count violation types: %w", err)
	}
	return n, nil
}

func (r *MasterDataRepository) CountActiveVehicleTypes(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM vehicle_types WHERE is_active AND deleted_at IS NULL`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count vehicle types: %w", err)
	}
	return n, nil
}
