package model

import "errors"

var (
	// Authentication errors. All of them surface as HTTP 401.
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrMissingToken        = errors.New("missing token")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrExpiredRefreshToken = errors.New("refresh token expired")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")

	// Lookup errors
	ErrUserNotFound          = errors.New("user not found")
	ErrUserAlreadyExists     = errors.New("user already exists")
	ErrViolationNotFound     = errors.New("violation not found")
	ErrObservationNotFound   = errors.New("observation not found")
	ErrViolationTypeNotFound = errors.New("violation type not found in system")
	ErrVehicleTypeNotFound   = errors.New("vehicle type not found in system")
	ErrConfigNotFound        = errors.New("config not found")

	// Input errors
	ErrInvalidViolationType = errors.New("invalid violation type")
	ErrInvalidVehicleType   = errors.New("invalid vehicle type")
	ErrInvalidInput         = errors.New("invalid input")
)
