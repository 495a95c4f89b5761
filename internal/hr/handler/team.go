package handler

import (
	"net/http"
	"strconv"

	"github.com/hrdesk/hrdesk-backend/internal/hr/service"
	"github.com/hrdesk/hrdesk-backend/pkg/errors"
	"github.com/hrdesk/hrdesk-backend/pkg/httputil"
	"github.com/hrdesk/hrdesk-backend/pkg/logger"
)

// TeamHandler handles team overview endpoints
type TeamHandler struct {
	service *service.TeamService
	logger  *logger.Logger
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(svc *service.TeamService, log *logger.Logger) *TeamHandler {
	return &TeamHandler{
		service: svc,
		logger:  log,
	}
}

// Overview returns a team roster with birthdays and, for authorized
// actors, salaries
func (h *TeamHandler) Overview(w http.ResponseWriter, r *http.Request) {
	a, err := actingEmployee(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	teamID, err := queryTeamID(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	overview, err := h.service.Overview(r.Context(), a.ID, teamID)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, overview)
}

// Search finds teams by name fragment
func (h *TeamHandler) Search(w http.ResponseWriter, r *http.Request) {
	a, err := actingEmployee(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	fragment := r.URL.Query().Get("q")
	if fragment == "" {
		httputil.Error(w, errors.MissingFields("q"))
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}

	teams, err := h.service.Search(r.Context(), a.ID, fragment, limit)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, teams)
}
