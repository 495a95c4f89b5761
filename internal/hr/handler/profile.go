package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/hrdesk/hrdesk-backend/internal/hr/service"
	"github.com/hrdesk/hrdesk-backend/pkg/errors"
	"github.com/hrdesk/hrdesk-backend/pkg/httputil"
	"github.com/hrdesk/hrdesk-backend/pkg/logger"
)

// ProfileHandler handles employee profile endpoints
type ProfileHandler struct {
	service *service.ProfileService
	logger  *logger.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(svc *service.ProfileService, log *logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		service: svc,
		logger:  log,
	}
}

// Get returns the profile card for an employee
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := actingEmployee(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.Error(w, errors.BadRequest("invalid employee id"))
		return
	}

	card, err := h.service.GetCard(r.Context(), a.ID, id)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, card)
}

// GetOwn returns the acting employee's own profile card
func (h *ProfileHandler) GetOwn(w http.ResponseWriter, r *http.Request) {
	a, err := actingEmployee(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	card, err := h.service.GetCard(r.Context(), a.ID, a.ID)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, card)
}
