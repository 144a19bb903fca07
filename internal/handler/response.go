package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"violation-tracker/internal/model"
	"violation-tracker/internal/validator"
	"violation-tracker/pkg/apierror"
)

const maxBodyBytes = 1 << 20

func writeSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, model.APIResponse{Status: model.StatusSuccess, Message: message, Data: data})
}

func writeJSON(w http.ResponseWriter, status int, body model.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type errorMapping struct {
	err     error
	status  int
	message string
}

// errorMappings translates sentinel errors into client-safe responses.
// Authentication failures share 401 and never say more than the message.
var errorMappings = []errorMapping{
	{model.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
	{model.ErrInvalidToken, http.StatusUnauthorized, "Invalid or expired token"},
	{model.ErrMissingToken, http.StatusUnauthorized, "Missing refresh_token"},
	{model.ErrInvalidRefreshToken, http.StatusUnauthorized, "Invalid refresh token"},
	{model.ErrExpiredRefreshToken, http.StatusUnauthorized, "Refresh token expired"},
	{model.ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
	{model.ErrForbidden, http.StatusForbidden, "Forbidden"},
	{model.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{model.ErrUserAlreadyExists, http.StatusConflict, "User already exists"},
	{model.ErrViolationNotFound, http.StatusNotFound, "Violation not found"},
	{model.ErrObservationNotFound, http.StatusNotFound, "Observation not found"},
	{model.ErrConfigNotFound, http.StatusNotFound, "Config not found"},
	{model.ErrInvalidViolationType, http.StatusUnprocessableEntity, "Invalid violation type"},
	{model.ErrInvalidVehicleType, http.StatusUnprocessableEntity, "Invalid vehicle type"},
	{model.ErrViolationTypeNotFound, http.StatusUnprocessableEntity, "Violation type not found in system"},
	{model.ErrVehicleTypeNotFound, http.StatusUnprocessableEntity, "Vehicle type not found in system"},
	{model.ErrInvalidInput, http.StatusBadRequest, "Invalid input"},
}

func writeError(w http.ResponseWriter, err error) {
	body := model.APIResponse{Status: model.StatusError, Message: "Internal server error"}
	status := http.StatusInternalServerError

	var apiErr *apierror.APIError
	var validationErr *validator.ValidationError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatus
		body.Message = apiErr.Message
		body.Data = apiErr.Data
	case errors.As(err, &validationErr):
		status = http.StatusUnprocessableEntity
		body.Message = "Validation failed"
		body.Data = validationErr.Fields()
	default:
		matched := false
		for _, m := range errorMappings {
			if errors.Is(err, m.err) {
				status, body.Message, matched = m.status, m.message, true
				break
			}
		}
		if !matched {
			// Log unclassified errors so they are visible in container logs.
			slog.Error("unhandled error in writeError", "error", err.Error())
		}
	}

	writeJSON(w, status, body)
}

// decodeAndValidate reads a JSON body into dst and runs its validate tags.
// Malformed timestamps are reported as validation failures.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) error {
	defer r.Body.Close()

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		var parseErr *time.ParseError
		switch {
		case errors.As(err, &parseErr):
			return apierror.Validation(map[string]string{
				"datetime": "must use the format YYYY-MM-DD HH:MM:SS",
			})
		case errors.Is(err, io.EOF):
			return apierror.BadRequest("Request body is required")
		default:
			return apierror.BadRequest("Invalid JSON body")
		}
	}

	return validator.Validate(dst)
}

func parseIntOrDefault(raw string, fallback int) int {
	if strings.TrimSpace(raw) == "" {
		return fallback
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return v
}

// pathID parses the {id} route parameter. Anything but a positive integer
// is reported as notFound, the same as a missing record.
func pathID(r *http.Request, notFound error) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, notFound
	}
	return id, nil
}

func NotFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, model.APIResponse{Status: model.StatusError, Message: "Route not found"})
}

func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, model.APIResponse{Status: model.StatusError, Message: "Method not allowed"})
}
