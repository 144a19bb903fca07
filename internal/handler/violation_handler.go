package handler

import (
	"net/http"

	"violation-tracker/internal/middleware"
	"violation-tracker/internal/model"
	"violation-tracker/internal/service"
)

type ViolationHandler struct {
	service *service.ViolationService
}

func NewViolationHandler(service *service.ViolationService) *ViolationHandler {
	return &ViolationHandler{service: service}
}

func (h *ViolationHandler) List(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.List(r.Context(), parseIntOrDefault(r.URL.Query().Get("page"), 1))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "OK", data)
}

func (h *ViolationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, model.ErrViolationNotFound)
	if err != nil {
		writeError(w, err)
		return
	}

	v, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "OK", v)
}

func (h *ViolationHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	var payload model.CreateViolationRequest
	if err := decodeAndValidate(w, r, &payload); err != nil {
		writeError(w, err)
		return
	}

	v, err := h.service.Create(r.Context(), *user, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "Violation created", v)
}

func (h *ViolationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, model.ErrViolationNotFound)
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.UpdateViolationRequest
	if err := decodeAndValidate(w, r, &payload); err != nil {
		writeError(w, err)
		return
	}

	v, err := h.service.Update(r.Context(), id, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Violation updated", v)
}

func (h *ViolationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, model.ErrViolationNotFound)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Violation deleted", nil)
}
