package handler

import (
	"net/http"
	"strconv"

	"github.com/hrdesk/hrdesk-backend/pkg/actor"
	"github.com/hrdesk/hrdesk-backend/pkg/errors"
)

// actingEmployee returns the actor attached to the request context.
func actingEmployee(r *http.Request) (*actor.Actor, error) {
	a := actor.FromContext(r.Context())
	if a == nil {
		return nil, errors.Unauthorized("no acting employee")
	}
	return a, nil
}

// queryTeamID parses an optional team_id query parameter.
func queryTeamID(r *http.Request) (*int64, error) {
	raw := r.URL.Query().Get("team_id")
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, errors.BadRequest("invalid team_id")
	}
	return &id, nil
}
