package handler

import (
	"net/http"

	"violation-tracker/internal/middleware"
	"violation-tracker/internal/model"
	"violation-tracker/internal/service"
)

type ObservationHandler struct {
	service *service.ObservationService
}

func NewObservationHandler(service *service.ObservationService) *ObservationHandler {
	return &ObservationHandler{service: service}
}

func (h *ObservationHandler) List(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.List(r.Context(), parseIntOrDefault(r.URL.Query().Get("page"), 1))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "OK", data)
}

func (h *ObservationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, model.ErrObservationNotFound)
	if err != nil {
		writeError(w, err)
		return
	}

	o, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "OK", o)
}

func (h *ObservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	var payload model.CreateObservationRequest
	if err := decodeAndValidate(w, r, &payload); err != nil {
		writeError(w, err)
		return
	}

	o, err := h.service.Create(r.Context(), *user, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "Observation created", o)
}

func (h *ObservationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, model.ErrObservationNotFound)
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.UpdateObservationRequest
	if err := decodeAndValidate(w, r, &payload); err != nil {
		writeError(w, err)
		return
	}

	o, err := h.service.Update(r.Context(), id, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Observation updated", o)
}

func (h *ObservationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, model.ErrObservationNotFound)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Observation deleted", nil)
}
