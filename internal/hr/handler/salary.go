package handler

import (
	"net/http"

	"github.com/hrdesk/hrdesk-backend/internal/hr/service"
	"github.com/hrdesk/hrdesk-backend/pkg/httputil"
	"github.com/hrdesk/hrdesk-backend/pkg/logger"
)

// SalaryHandler handles salary statistics endpoints
type SalaryHandler struct {
	service *service.SalaryService
	logger  *logger.Logger
}

// NewSalaryHandler creates a new salary handler
func NewSalaryHandler(svc *service.SalaryService, log *logger.Logger) *SalaryHandler {
	return &SalaryHandler{
		service: svc,
		logger:  log,
	}
}

// TeamStats returns aggregate salary figures for a team
func (h *SalaryHandler) TeamStats(w http.ResponseWriter, r *http.Request) {
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

	var position *string
	if p := r.URL.Query().Get("position"); p != "" {
		position = &p
	}

	stats, err := h.service.TeamStats(r.Context(), a.ID, teamID, position)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, stats)
}
