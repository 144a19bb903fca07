package service

import (
	"context"

	"violation-tracker/internal/model"
)

type MasterDataStore interface {
	ActiveViolationTypes(ctx context.Context) ([]model.ViolationType, error)
	ActiveVehicleTypes(ctx context.Context) ([]model.VehicleType, error)
}

type ConfigLister interface {
	List(ctx context.Context) ([]model.SystemConfig, error)
}

// MasterDataService serves the read-only lookup tables.
type MasterDataService struct {
	catalog MasterDataStore
	configs ConfigLister
}

func NewMasterDataService(catalog MasterDataStore, configs ConfigLister) *MasterDataService {
	return &MasterDataService{catalog: catalog, configs: configs}
}

func (s *MasterDataService) ViolationTypes(ctx context.Context) ([]model.ViolationType, error) {
	return s.catalog.ActiveViolationTypes(ctx)
}

func (s *MasterDataService) VehicleTypes(ctx context.Context) ([]model.VehicleType, error) {
	return s.catalog.ActiveVehicleTypes(ctx)
}

func (s *MasterDataService) Configs(ctx context.Context) ([]model.SystemConfig, error) {
	return s.configs.List(ctx)
}
