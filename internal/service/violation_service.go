package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"violation-tracker/internal/model"
)

const defaultViolationsPerPage = 20

type ViolationStore interface {
	List(ctx context.Context, page int, perPage int) ([]model.Violation, int, error)
	FindByID(ctx context.Context, id int64) (model.Violation, error)
	Create(ctx context.Context, v *model.Violation) error
	Update(ctx context.Context, v model.Violation) error
	SoftDelete(ctx context.Context, id int64, at time.Time) error
}

// TypeCatalog resolves client-facing type names to catalogue rows.
type TypeCatalog interface {
	FindViolationTypeByCode(ctx context.Context, code string) (model.ViolationType, error)
	FindVehicleTypeByCode(ctx context.Context, code string) (model.VehicleType, error)
}

type ViolationService struct {
	violations ViolationStore
	catalog    TypeCatalog
	configs    ConfigReader
	now        func() time.Time
}

func NewViolationService(violations ViolationStore, catalog TypeCatalog, configs ConfigReader) *ViolationService {
	return &ViolationService{violations: violations, catalog: catalog, configs: configs, now: time.Now}
}

func (s *ViolationService) List(ctx context.Context, page int) (model.ViolationListData, error) {
	page = normalizePage(page)
	perPage := perPageFromConfig(ctx, s.configs, model.ConfigViolationsPerPage, defaultViolationsPerPage)

	items, total, err := s.violations.List(ctx, page, perPage)
	if err != nil {
		return model.ViolationListData{}, err
	}

	return model.ViolationListData{Items: items, Pagination: model.NewPagination(page, perPage, total)}, nil
}

func (s *ViolationService) Get(ctx context.Context, id int64) (model.Violation, error) {
	return s.violations.FindByID(ctx, id)
}

// Create records a violation reported by user. The type name must map to a
// catalogue code; an unknown vehicle name leaves the vehicle type empty.
func (s *ViolationService) Create(ctx context.Context, user model.AuthUser, req model.CreateViolationRequest) (model.Violation, error) {
	code, ok := model.ViolationTypeCode(req.Type)
	if !ok {
		return model.Violation{}, model.ErrInvalidViolationType
	}

	vt, err := s.catalog.FindViolationTypeByCode(ctx, code)
	if err != nil {
		return model.Violation{}, err
	}

	vehicleTypeID, err := s.vehicleTypeID(ctx, req.VehicleType)
	if err != nil {
		return model.Violation{}, err
	}

	id := uuid.NewString()
	createdBy := user.ID
	v := model.Violation{
		UUID:              &id,
		ViolationTypeID:   vt.ID,
		LocationAddress:   req.LocationAddress,
		Latitude:          req.Latitude,
		Longitude:         req.Longitude,
		ViolationDatetime: req.ViolationDatetime,
		Description:       emptyToNil(req.Description),
		VehiclePlate:      emptyToNil(req.VehiclePlate),
		VehicleTypeID:     vehicleTypeID,
		CreatedBy:         &createdBy,
	}
	if err := s.violations.Create(ctx, &v); err != nil {
		return model.Violation{}, err
	}
	return v, nil
}

func (s *ViolationService) Update(ctx context.Context, id int64, req model.UpdateViolationRequest) (model.Violation, error) {
	v, err := s.violations.FindByID(ctx, id)
	if err != nil {
		return model.Violation{}, err
	}

	v.LocationAddress = req.LocationAddress
	v.Latitude = req.Latitude
	v.Longitude = req.Longitude
	v.ViolationDatetime = req.ViolationDatetime
	v.Description = emptyToNil(req.Description)
	v.VehiclePlate = emptyToNil(req.VehiclePlate)
	if req.VehicleTypeID != nil && *req.VehicleTypeID != 0 {
		v.VehicleTypeID = req.VehicleTypeID
	}
	v.UpdatedAt = s.now().UTC()

	if err := s.violations.Update(ctx, v); err != nil {
		return model.Violation{}, err
	}
	return v, nil
}

func (s *ViolationService) Delete(ctx context.Context, id int64) error {
	return s.violations.SoftDelete(ctx, id, s.now().UTC())
}

func (s *ViolationService) vehicleTypeID(ctx context.Context, name string) (*int64, error) {
	if name == "" {
		return nil, nil
	}

	code, ok := model.VehicleTypeCode(name)
	if !ok {
		return nil, nil
	}

	vt, err := s.catalog.FindVehicleTypeByCode(ctx, code)
	if errors.Is(err, model.ErrVehicleTypeNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve vehicle type: %w", err)
	}
	return &vt.ID, nil
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
