package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hrdesk/hrdesk-backend/internal/hr/service"
	"github.com/hrdesk/hrdesk-backend/pkg/errors"
	"github.com/hrdesk/hrdesk-backend/pkg/httputil"
	"github.com/hrdesk/hrdesk-backend/pkg/logger"
)

// StatementHandler handles statement endpoints
type StatementHandler struct {
	service *service.StatementService
	logger  *logger.Logger
}

// NewStatementHandler creates a new statement handler
func NewStatementHandler(svc *service.StatementService, log *logger.Logger) *StatementHandler {
	return &StatementHandler{
		service: svc,
		logger:  log,
	}
}

// Create files a new statement for the acting employee
func (h *StatementHandler) Create(w http.ResponseWriter, r *http.Request) {
	a, err := actingEmployee(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	var req CreateStatementRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := httputil.Validate(&req); err != nil {
		httputil.Error(w, err)
		return
	}

	input := service.CreateStatementInput{
		Category:     req.Category,
		Body:         req.Body,
		VacationKind: req.VacationKind,
	}

	if req.StartDate != "" {
		t, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			httputil.Error(w, errors.BadRequest("invalid start_date format, expected YYYY-MM-DD"))
			return
		}
		input.StartDate = &t
	}
	if req.EndDate != "" {
		t, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			httputil.Error(w, errors.BadRequest("invalid end_date format, expected YYYY-MM-DD"))
			return
		}
		input.EndDate = &t
	}

	st, err := h.service.Create(r.Context(), a.ID, input)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.Created(w, st)
}

// List lists statements for the actor or the actor's team
func (h *StatementHandler) List(w http.ResponseWriter, r *http.Request) {
	a, err := actingEmployee(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	activeOnly := r.URL.Query().Get("active") == "true"

	scope := r.URL.Query().Get("scope")
	switch scope {
	case "", "self":
		statements, err := h.service.ListOwn(r.Context(), a.ID, activeOnly)
		if err != nil {
			httputil.Error(w, err)
			return
		}
		httputil.JSON(w, http.StatusOK, statements)
	case "team":
		teamID, err := queryTeamID(r)
		if err != nil {
			httputil.Error(w, err)
			return
		}
		statements, err := h.service.ListTeam(r.Context(), a.ID, teamID, activeOnly)
		if err != nil {
			httputil.Error(w, err)
			return
		}
		httputil.JSON(w, http.StatusOK, statements)
	default:
		httputil.Error(w, errors.BadRequest("scope must be self or team"))
	}
}

// Cancel soft-deletes a statement
func (h *StatementHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	a, err := actingEmployee(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.Error(w, errors.BadRequest("invalid statement id"))
		return
	}

	st, err := h.service.Cancel(r.Context(), a.ID, id)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, st)
}

// CreateStatementRequest is the request body for filing a statement
type CreateStatementRequest struct {
	Category     string `json:"category" validate:"required"` // leave, termination, other
	Body         string `json:"body" validate:"required"`
	StartDate    string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate      string `json:"end_date,omitempty"`   // YYYY-MM-DD
	VacationKind string `json:"vacation_kind,omitempty"`
}
