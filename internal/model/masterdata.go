package model

import "time"

type ViolationType struct {
	ID            int64     `json:"id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	Description   *string   `json:"description"`
	FineAmount    *float64  `json:"fine_amount"`
	PenaltyPoints *int      `json:"penalty_points"`
	SeverityLevel *string   `json:"severity_level"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type VehicleType struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	IconClass *string   `json:"icon_class"`
	ColorCode *string   `json:"color_code"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SystemConfig struct {
	ID          int64     `json:"id"`
	ConfigKey   string    `json:"config_key"`
	ConfigValue *string   `json:"config_value"`
	DataType    string    `json:"data_type"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	IsPublic    bool      `json:"is_public"`
	IsEncrypted bool      `json:"is_encrypted"`
	UpdatedBy   *int64    `json:"updated_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Config keys read by the record listings.
const (
	ConfigViolationsPerPage   = "pagination.violations_per_page"
	ConfigObservationsPerPage = "pagination.observations_per_page"
)
