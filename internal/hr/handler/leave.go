package handler

import (
	"net/http"
	"time"

	"github.com/hrdesk/hrdesk-backend/internal/hr/service"
	"github.com/hrdesk/hrdesk-backend/pkg/errors"
	"github.com/hrdesk/hrdesk-backend/pkg/httputil"
	"github.com/hrdesk/hrdesk-backend/pkg/logger"
)

// LeaveHandler handles vacation history and balance endpoints
type LeaveHandler struct {
	service *service.LeaveService
	logger  *logger.Logger
}

// NewLeaveHandler creates a new leave handler
func NewLeaveHandler(svc *service.LeaveService, log *logger.Logger) *LeaveHandler {
	return &LeaveHandler{
		service: svc,
		logger:  log,
	}
}

// History lists the actor's approved leaves, newest first
func (h *LeaveHandler) History(w http.ResponseWriter, r *http.Request) {
	a, err := actingEmployee(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	records, err := h.service.History(r.Context(), a.ID)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, records)
}

// Balance returns the actor's current vacation balance
func (h *LeaveHandler) Balance(w http.ResponseWriter, r *http.Request) {
	a, err := actingEmployee(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	report, err := h.service.Balance(r.Context(), a.ID)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, report)
}

// Forecast projects the actor's balance to a future date
func (h *LeaveHandler) Forecast(w http.ResponseWriter, r *http.Request) {
	a, err := actingEmployee(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	var req ForecastRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := httputil.Validate(&req); err != nil {
		httputil.Error(w, err)
		return
	}

	target, err := time.Parse("2006-01-02", req.Target)
	if err != nil {
		httputil.Error(w, errors.BadRequest("invalid target format, expected YYYY-MM-DD"))
		return
	}

	input := service.ForecastRequest{
		Target:      target,
		PlannedDays: req.PlannedDays,
	}
	if req.PlannedStart != "" {
		t, err := time.Parse("2006-01-02", req.PlannedStart)
		if err != nil {
			httputil.Error(w, errors.BadRequest("invalid planned_start format, expected YYYY-MM-DD"))
			return
		}
		input.PlannedStart = &t
	}
	if req.PlannedEnd != "" {
		t, err := time.Parse("2006-01-02", req.PlannedEnd)
		if err != nil {
			httputil.Error(w, errors.BadRequest("invalid planned_end format, expected YYYY-MM-DD"))
			return
		}
		input.PlannedEnd = &t
	}

	report, err := h.service.Forecast(r.Context(), a.ID, input)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, report)
}

// ForecastRequest is the request body for a balance forecast
type ForecastRequest struct {
	Target       string   `json:"target" validate:"required"` // YYYY-MM-DD
	PlannedDays  *float64 `json:"planned_days,omitempty"`
	PlannedStart string   `json:"planned_start,omitempty"` // YYYY-MM-DD
	PlannedEnd   string   `json:"planned_end,omitempty"`   // YYYY-MM-DD
}
