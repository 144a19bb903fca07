package model

type LoginRequest struct {
	Identity string `json:"identity" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type CreateViolationRequest struct {
	Type              string   `json:"type" validate:"required"`
	LocationAddress   string   `json:"location_address" validate:"required"`
	Latitude          *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude         *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	ViolationDatetime DateTime `json:"violation_datetime" validate:"required"`
	Description       *string  `json:"description"`
	VehiclePlate      *string  `json:"vehicle_plate" validate:"omitempty,max=20"`
	VehicleType       string   `json:"vehicle_type"`
}

type UpdateViolationRequest struct {
	LocationAddress   string   `json:"location_address" validate:"required"`
	Latitude          *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude         *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	ViolationDatetime DateTime `json:"violation_datetime" validate:"required"`
	Description       *string  `json:"description"`
	VehiclePlate      *string  `json:"vehicle_plate" validate:"omitempty,max=20"`
	VehicleTypeID     *int64   `json:"vehicle_type_id"`
}

type CreateObservationRequest struct {
	VehicleType         string   `json:"vehicle_type" validate:"required"`
	LicensePlate        string   `json:"license_plate" validate:"required,max=20"`
	ObservationDatetime DateTime `json:"observation_datetime" validate:"required"`
	LocationAddress     string   `json:"location_address" validate:"required"`
	Latitude            *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude           *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Direction           *string  `json:"direction"`
	SpeedKmh            *float64 `json:"speed_kmh" validate:"omitempty,gte=0"`
	LaneNumber          *int     `json:"lane_number" validate:"omitempty,gte=1"`
}

type UpdateObservationRequest struct {
	LicensePlate        string   `json:"license_plate" validate:"required,max=20"`
	ObservationDatetime DateTime `json:"observation_datetime" validate:"required"`
	LocationAddress     string   `json:"location_address" validate:"required"`
	Latitude            *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude           *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Direction           *string  `json:"direction"`
	SpeedKmh            *float64 `json:"speed_kmh" validate:"omitempty,gte=0"`
	LaneNumber          *int     `json:"lane_number" validate:"omitempty,gte=1"`
}

type CreateUserRequest struct {
	Username string  `json:"username" validate:"required,max=50,printascii"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Role     string  `json:"role"`
	IsActive bool    `json:"is_active"`
	Metadata *string `json:"metadata"`
}

type UpdateUserRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}
