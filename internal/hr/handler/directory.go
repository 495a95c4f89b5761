package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/hrdesk/hrdesk-backend/internal/hr/service"
	"github.com/hrdesk/hrdesk-backend/pkg/httputil"
	"github.com/hrdesk/hrdesk-backend/pkg/logger"
)

// DirectoryHandler handles employee directory search endpoints
type DirectoryHandler struct {
	service *service.DirectoryService
	logger  *logger.Logger
}

// NewDirectoryHandler creates a new directory handler
func NewDirectoryHandler(svc *service.DirectoryService, log *logger.Logger) *DirectoryHandler {
	return &DirectoryHandler{
		service: svc,
		logger:  log,
	}
}

// Search looks up employees by name fragments or phone digits
func (h *DirectoryHandler) Search(w http.ResponseWriter, r *http.Request) {
	a, err := actingEmployee(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	query := r.URL.Query().Get("q")

	var fields []string
	if raw := r.URL.Query().Get("fields"); raw != "" {
		for _, f := range strings.Split(raw, ",") {
			if f = strings.TrimSpace(f); f != "" {
				fields = append(fields, f)
			}
		}
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}

	results, err := h.service.SearchEmployees(r.Context(), a.ID, query, fields, limit)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, results)
}
