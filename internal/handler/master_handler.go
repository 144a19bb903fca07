package handler

import (
	"net/http"

	"violation-tracker/internal/service"
)

// MasterHandler serves the read-only catalogue lookups.
type MasterHandler struct {
	service *service.MasterDataService
}

func NewMasterHandler(service *service.MasterDataService) *MasterHandler {
	return &MasterHandler{service: service}
}

func (h *MasterHandler) ViolationTypes(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ViolationTypes(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "OK", items)
}

func (h *MasterHandler) VehicleTypes(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.VehicleTypes(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "OK", items)
}

func (h *MasterHandler) Configs(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.Configs(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "OK", items)
}
