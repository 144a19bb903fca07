package handler

import (
	"net/http"

	"violation-tracker/internal/service"
)

type ReportHandler struct {
	reports   *service.ReportService
	dashboard *service.DashboardService
}

func NewReportHandler(reports *service.ReportService, dashboard *service.DashboardService) *ReportHandler {
	return &ReportHandler{reports: reports, dashboard: dashboard}
}

func (h *ReportHandler) ViolationsByType(w http.ResponseWriter, r *http.Request) {
	items, err := h.reports.ViolationsByType(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "OK", items)
}

func (h *ReportHandler) ObservationsByVehicle(w http.ResponseWriter, r *http.Request) {
	items, err := h.reports.ObservationsByVehicle(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "OK", items)
}

func (h *ReportHandler) DailyViolations(w http.ResponseWriter, r *http.Request) {
	days := parseIntOrDefault(r.URL.Query().Get("days"), 0)
	items, err := h.reports.DailyViolations(r.Context(), days)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "OK", items)
}

func (h *ReportHandler) DashboardSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboard.Summary(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "OK", summary)
}
