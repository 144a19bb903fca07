package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"violation-tracker/internal/model"
)

const observationColumns = `id, uuid, vehicle_type_id, license_plate, observation_datetime, location_address,
		latitude, longitude, direction, speed_kmh, lane_number, observed_by, created_at, updated_at`

type ObservationRepository struct {
	db DBTX
}

func NewObservationRepository(db DBTX) *ObservationRepository {
	return &ObservationRepository{db: db}
}

func scanObservation(row pgx.Row) (model.Observation, error) {
	var o model.Observation
	var observedAt time.Time
	err := row.Scan(&o.ID, &o.UUID, &o.VehicleTypeID, &o.LicensePlate, &observedAt, &o.LocationAddress,
		&o.Latitude, &o.Longitude, &o.Direction, &o.SpeedKmh, &o.LaneNumber, &o.ObservedBy,
		&o.CreatedAt, &o.UpdatedAt)
	o.ObservationDatetime = model.NewDateTime(observedAt)
	return o, err
}

func collectObservations(rows pgx.Rows) ([]model.Observation, error) {
	defer rows.Close()

	items := make([]model.Observation, 0)
	for rows.Next() {
		o, err := scanObservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan observation: %w", err)
		}
		items = append(items, o)
	}
	return items, rows.Err()
}

func (r *ObservationRepository) List(ctx context.Context, page int, perPage int) ([]model.Observation, int, error) {
	total, err := r.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	limit, offset := limitOffset(page, perPage)
	rows, err := r.db.Query(ctx,
		`SELECT `+observationColumns+` FROM traffic_observations WHERE deleted_at IS NULL
		 ORDER BY observation_datetime DESC, id DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list observations: %w", err)
	}

	items, err := collectObservations(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *ObservationRepository) Recent(ctx context.Context, limit int) ([]model.Observation, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+observationColumns+` FROM traffic_observations WHERE deleted_at IS NULL
		 ORDER BY observation_datetime DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent observations: %w", err)
	}
	return collectObservations(rows)
}

func (r *ObservationRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM traffic_observations WHERE deleted_at IS NULL`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count observations: %w", err)
	}
	return total, nil
}

func (r *ObservationRepository) FindByID(ctx context.Context, id int64) (model.Observation, error) {
	o, err := scanObservation(r.db.QueryRow(ctx,
		`SELECT `+observationColumns+` FROM traffic_observations WHERE id = $1 AND deleted_at IS NULL`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Observation{}, model.ErrObservationNotFound
	}
	if err != nil {
		return model.Observation{}, fmt.Errorf("find observation: %w", err)
	}
	return o, nil
}

func (r *ObservationRepository) Create(ctx context.Context, o *model.Observation) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO traffic_observations
		 (uuid, vehicle_type_id, license_plate, observation_datetime, location_address, latitude,
		  longitude, direction, speed_kmh, lane_number, observed_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id, created_at, updated_at`,
		o.UUID, o.VehicleTypeID, o.LicensePlate, o.ObservationDatetime.Time, o.LocationAddress, o.Latitude,
		o.Longitude, o.Direction, o.SpeedKmh, o.LaneNumber, o.ObservedBy).
		Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create observation: %w", err)
	}
	return nil
}

func (r *ObservationRepository) Update(ctx context.Context, o model.Observation) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE traffic_observations
		 SET license_plate = $2, observation_datetime = $3, location_address = $4, latitude = $5,
		     longitude = $6, direction = $7, speed_kmh = $8, lane_number = $9, updated_at = $10
		 WHERE id = $1 AND deleted_at IS NULL`,
		o.ID, o.LicensePlate, o.ObservationDatetime.Time, o.LocationAddress, o.Latitude,
		o.Longitude, o.Direction, o.SpeedKmh, o.LaneNumber, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update observation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrObservationNotFound
	}
	return nil
}

func (r *ObservationRepository) SoftDelete(ctx context.Context, id int64, at time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE traffic_observations SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`, id, at)
	if err != nil {
		return fmt.Errorf("delete observation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrObservationNotFound
	}
	return nil
}
