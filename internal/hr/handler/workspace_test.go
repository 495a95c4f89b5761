package handler_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrdesk/hrdesk-backend/internal/hr/handler"
	"github.com/hrdesk/hrdesk-backend/internal/hr/repository"
	"github.com/hrdesk/hrdesk-backend/internal/hr/service"
	"github.com/hrdesk/hrdesk-backend/pkg/activity"
	"github.com/hrdesk/hrdesk-backend/pkg/actor"
	"github.com/hrdesk/hrdesk-backend/pkg/testutil"
)

func newWorkspaceHandler(m *testutil.MockDB) *handler.WorkspaceHandler {
	log := testutil.NewTestLogger()
	svc := service.NewWorkspaceService(
		repository.NewTrackerRepository(m.DB),
		repository.NewCalendarRepository(m.DB),
		repository.NewCertificateRepository(m.DB),
		repository.NewEmployeeRepository(m.DB),
		activity.NewLog(activity.DefaultCapacity),
		log,
	)
	return handler.NewWorkspaceHandler(svc, log)
}

func mountWorkspace(h *handler.WorkspaceHandler) func(chi.Router) {
	return func(r chi.Router) {
		r.Get("/workspace/tasks", h.Tasks)
		r.Get("/workspace/calendar", h.Calendar)
		r.Post("/workspace/certificates", h.OrderCertificate)
	}
}

func TestWorkspaceHandler_Tasks(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()
	h := newWorkspaceHandler(mockDB)

	mockDB.ExpectQuery("FROM task_tracker_tasks").
		WithArgs(int64(7), 12, 5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "employee_id", "title", "status", "sprint", "deadline"}).
			AddRow(int64(1), int64(7), "Review onboarding checklist", "open", 12, nil))

	router := newRouter(&actor.Actor{ID: 7}, mountWorkspace(h))
	rec, env := doRequest(t, router, http.MethodGet, "/workspace/tasks?sprint=12&limit=5", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), "Review onboarding checklist")

	mockDB.ExpectationsWereMet(t)
}

func TestWorkspaceHandler_Tasks_BadSprint(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()
	h := newWorkspaceHandler(mockDB)

	router := newRouter(&actor.Actor{ID: 7}, mountWorkspace(h))
	rec, env := doRequest(t, router, http.MethodGet, "/workspace/tasks?sprint=soon", "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "BAD_REQUEST", env.Error.Code)
}

func TestWorkspaceHandler_Calendar_UnknownWindow(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()
	h := newWorkspaceHandler(mockDB)

	router := newRouter(&actor.Actor{ID: 7}, mountWorkspace(h))
	rec, env := doRequest(t, router, http.MethodGet, "/workspace/calendar?window=month", "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestWorkspaceHandler_OrderCertificate_MissingYear(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()
	h := newWorkspaceHandler(mockDB)

	router := newRouter(&actor.Actor{ID: 7}, mountWorkspace(h))
	rec, env := doRequest(t, router, http.MethodPost, "/workspace/certificates", `{}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Details, "Year")
}

func TestWorkspaceHandler_OrderCertificate_Ready(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()
	h := newWorkspaceHandler(mockDB)

	year := time.Now().Year() - 1
	hired := time.Date(year-2, 3, 1, 0, 0, 0, 0, time.UTC)

	mockDB.ExpectQuery("FROM employees e").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(employeeColumns).
			AddRow(int64(7), nil, "Jonas Keller", nil, nil, nil, hired, nil, nil, nil, true, nil, nil, nil, nil))
	mockDB.ExpectQuery("FROM certificate_links").
		WithArgs(int64(7), year).
		WillReturnRows(sqlmock.NewRows([]string{"id", "employee_id", "year", "url", "created_at"}).
			AddRow(int64(1), int64(7), year, "https://docs.hrdesk.local/cert/7", time.Now()))

	router := newRouter(&actor.Actor{ID: 7}, mountWorkspace(h))
	rec, env := doRequest(t, router, http.MethodPost, "/workspace/certificates",
		fmt.Sprintf(`{"year": %d}`, year))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"ready":true`)

	mockDB.ExpectationsWereMet(t)
}
