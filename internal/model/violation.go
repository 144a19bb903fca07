package model

import (
	"strings"
	"time"
)

type Violation struct {
	ID                int64     `json:"id"`
	UUID              *string   `json:"uuid"`
	ViolationTypeID   int64     `json:"violation_type_id"`
	ViolationNumber   *string   `json:"violation_number"`
	LocationAddress   string    `json:"location_address"`
	Latitude          *float64  `json:"latitude"`
	Longitude         *float64  `json:"longitude"`
	ViolationDatetime DateTime  `json:"violation_datetime"`
	Description       *string   `json:"description"`
	Status            string    `json:"status"`
	EvidenceFilePath  *string   `json:"evidence_file_path"`
	VehiclePlate      *string   `json:"vehicle_plate"`
	VehicleTypeID     *int64    `json:"vehicle_type_id"`
	CreatedBy         *int64    `json:"created_by"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type ViolationListData struct {
	Items      []Violation `json:"items"`
	Pagination Pagination  `json:"pagination"`
}

var violationTypeCodes = map[string]string{
	"contraflow":  "CONTRAFLOW",
	"overspeed":   "OVERSPEED",
	"traffic_jam": "TRAFFIC_BLOCK",
}

var vehicleTypeCodes = map[string]string{
	"truk":  "TRUCK",
	"mobil": "CAR",
	"motor": "MOTORCYCLE",
}

// ViolationTypeCode maps the client-facing violation type name onto the
// violation_types.code column.
func ViolationTypeCode(name string) (string, bool) {
	code, ok := violationTypeCodes[strings.ToLower(strings.TrimSpace(name))]
	return code, ok
}

// VehicleTypeCode maps the client-facing vehicle name onto the
// vehicle_types.code column.
func VehicleTypeCode(name string) (string, bool) {
	code, ok := vehicleTypeCodes[strings.ToLower(strings.TrimSpace(name))]
	return code, ok
}
