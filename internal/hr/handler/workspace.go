package handler

import (
	"net/http"
	"strconv"

	"github.com/hrdesk/hrdesk-backend/internal/hr/service"
	"github.com/hrdesk/hrdesk-backend/pkg/errors"
	"github.com/hrdesk/hrdesk-backend/pkg/httputil"
	"github.com/hrdesk/hrdesk-backend/pkg/logger"
)

// WorkspaceHandler handles tracker, calendar and certificate endpoints
type WorkspaceHandler struct {
	service *service.WorkspaceService
	logger  *logger.Logger
}

// NewWorkspaceHandler creates a new workspace handler
func NewWorkspaceHandler(svc *service.WorkspaceService, log *logger.Logger) *WorkspaceHandler {
	return &WorkspaceHandler{
		service: svc,
		logger:  log,
	}
}

// Tasks lists the actor's open tracker tasks for a sprint
func (h *WorkspaceHandler) Tasks(w http.ResponseWriter, r *http.Request) {
	a, err := actingEmployee(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	var sprint *int
	if raw := r.URL.Query().Get("sprint"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			httputil.Error(w, errors.BadRequest("invalid sprint"))
			return
		}
		sprint = &n
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	tasks, err := h.service.Tasks(r.Context(), a.ID, sprint, limit)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, tasks)
}

// Calendar lists the actor's events for today or the coming week
func (h *WorkspaceHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	a, err := actingEmployee(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	window := r.URL.Query().Get("window")
	if window == "" {
		window = service.CalendarWindowDay
	}

	events, err := h.service.Events(r.Context(), a.ID, window)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, events)
}

// OrderCertificate requests an income certificate for a year
func (h *WorkspaceHandler) OrderCertificate(w http.ResponseWriter, r *http.Request) {
	a, err := actingEmployee(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	var req OrderCertificateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := httputil.Validate(&req); err != nil {
		httputil.Error(w, err)
		return
	}

	order, err := h.service.OrderCertificate(r.Context(), a.ID, req.Year)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, order)
}

// OrderCertificateRequest is the request body for a certificate order
type OrderCertificateRequest struct {
	Year int `json:"year" validate:"required"`
}
