package model

import "time"

type Observation struct {
	ID                  int64     `json:"id"`
	UUID                *string   `json:"uuid"`
	VehicleTypeID       int64     `json:"vehicle_type_id"`
	LicensePlate        string    `json:"license_plate"`
	ObservationDatetime DateTime  `json:"observation_datetime"`
	LocationAddress     string    `json:"location_address"`
	Latitude            *float64  `json:"latitude"`
	Longitude           *float64  `json:"longitude"`
	Direction           *string   `json:"direction"`
	SpeedKmh            *float64  `json:"speed_kmh"`
	LaneNumber          *int      `json:"lane_number"`
	ObservedBy          *int64    `json:"observed_by"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type ObservationListData struct {
	Items      []Observation `json:"items"`
	Pagination Pagination    `json:"pagination"`
}
