package handler

import (
	"net/http"

	"github.com/hrdesk/hrdesk-backend/pkg/activity"
	"github.com/hrdesk/hrdesk-backend/pkg/httputil"
	"github.com/hrdesk/hrdesk-backend/pkg/logger"
)

// ActivityHandler exposes the recent intent log
type ActivityHandler struct {
	intents *activity.Log
	logger  *logger.Logger
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(intents *activity.Log, log *logger.Logger) *ActivityHandler {
	return &ActivityHandler{
		intents: intents,
		logger:  log,
	}
}

// Recent lists the most recent recorded intents, newest first
func (h *ActivityHandler) Recent(w http.ResponseWriter, r *http.Request) {
	if _, err := actingEmployee(r); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, h.intents.Recent())
}
