package auth

import (
	"net/http"
	"strings"

	"github.com/hrdesk/hrdesk-backend/pkg/actor"
	"github.com/hrdesk/hrdesk-backend/pkg/errors"
	"github.com/hrdesk/hrdesk-backend/pkg/httputil"
	"github.com/hrdesk/hrdesk-backend/pkg/logger"
)

// Middleware resolves the acting employee for each request.
type Middleware struct {
	manager *Manager
	logger  *logger.Logger

	// defaultRequesterID is used when a request carries no credentials.
	// Zero disables the fallback.
	defaultRequesterID int64
}

// NewMiddleware creates an authentication middleware.
func NewMiddleware(manager *Manager, log *logger.Logger, defaultRequesterID int64) *Middleware {
	return &Middleware{
		manager:            manager,
		logger:             log,
		defaultRequesterID: defaultRequesterID,
	}
}

// Authenticate validates the bearer token and attaches the Actor to the
// request context. Requests without credentials fall back to the configured
// default requester when one is set.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			if m.defaultRequesterID != 0 {
				ctx := actor.WithActor(r.Context(), &actor.Actor{ID: m.defaultRequesterID})
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
			httputil.Error(w, errors.Unauthorized("missing authorization header"))
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httputil.Error(w, errors.Unauthorized("invalid authorization header"))
			return
		}

		claims, err := m.manager.ValidateToken(parts[1])
		if err != nil {
			httputil.Error(w, err)
			return
		}

		a := &actor.Actor{
			ID:     claims.EmployeeID,
			Name:   claims.Name,
			Email:  claims.Email,
			TeamID: claims.TeamID,
		}

		next.ServeHTTP(w, r.WithContext(actor.WithActor(r.Context(), a)))
	})
}
