package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"violation-tracker/internal/model"
)

const defaultObservationsPerPage = 10

type ObservationStore interface {
	List(ctx context.Context, page int, perPage int) ([]model.Observation, int, error)
	FindByID(ctx context.Context, id int64) (model.Observation, error)
	Create(ctx context.Context, o *model.Observation) error
	Update(ctx context.Context, o model.Observation) error
	SoftDelete(ctx context.Context, id int64, at time.Time) error
}

type ObservationService struct {
	observations ObservationStore
	catalog      TypeCatalog
	configs      ConfigReader
	now          func() time.Time
}

func NewObservationService(observations ObservationStore, catalog TypeCatalog, configs ConfigReader) *ObservationService {
	return &ObservationService{observations: observations, catalog: catalog, configs: configs, now: time.Now}
}

func (s *ObservationService) List(ctx context.Context, page int) (model.ObservationListData, error) {
	page = normalizePage(page)
	perPage := perPageFromConfig(ctx, s.configs, model.ConfigObservationsPerPage, defaultObservationsPerPage)

	items, total, err := s.observations.List(ctx, page, perPage)
	if err != nil {
		return model.ObservationListData{}, err
	}

	return model.ObservationListData{Items: items, Pagination: model.NewPagination(page, perPage, total)}, nil
}

func (s *ObservationService) Get(ctx context.Context, id int64) (model.Observation, error) {
	return s.observations.FindByID(ctx, id)
}

func (s *ObservationService) Create(ctx context.Context, user model.AuthUser, req model.CreateObservationRequest) (model.Observation, error) {
	code, ok := model.VehicleTypeCode(req.VehicleType)
	if !ok {
		return model.Observation{}, model.ErrInvalidVehicleType
	}

	vt, err := s.catalog.FindVehicleTypeByCode(ctx, code)
	if err != nil {
		return model.Observation{}, err
	}

	id := uuid.NewString()
	observedBy := user.ID
	o := model.Observation{
		UUID:                &id,
		VehicleTypeID:       vt.ID,
		LicensePlate:        req.LicensePlate,
		ObservationDatetime: req.ObservationDatetime,
		LocationAddress:     req.LocationAddress,
		Latitude:            req.Latitude,
		Longitude:           req.Longitude,
		Direction:           emptyToNil(req.Direction),
		SpeedKmh:            req.SpeedKmh,
		LaneNumber:          req.LaneNumber,
		ObservedBy:          &observedBy,
	}
	if err := s.observations.Create(ctx, &o); err != nil {
		return model.Observation{}, err
	}
	return o, nil
}

func (s *ObservationService) Update(ctx context.Context, id int64, req model.UpdateObservationRequest) (model.Observation, error) {
	o, err := s.observations.FindByID(ctx, id)
	if err != nil {
		return model.Observation{}, err
	}

	o.LicensePlate = req.LicensePlate
	o.ObservationDatetime = req.ObservationDatetime
	o.LocationAddress = req.LocationAddress
	o.Latitude = req.Latitude
	o.Longitude = req.Longitude
	o.Direction = emptyToNil(req.Direction)
	o.SpeedKmh = req.SpeedKmh
	o.LaneNumber = req.LaneNumber
	o.UpdatedAt = s.now().UTC()

	if err := s.observations.Update(ctx, o); err != nil {
		return model.Observation{}, err
	}
	return o, nil
}

func (s *ObservationService) Delete(ctx context.Context, id int64) error {
	return s.observations.SoftDelete(ctx, id, s.now().UTC())
}
