package handler_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrdesk/hrdesk-backend/internal/hr/access"
	"github.com/hrdesk/hrdesk-backend/internal/hr/events"
	"github.com/hrdesk/hrdesk-backend/internal/hr/handler"
	"github.com/hrdesk/hrdesk-backend/internal/hr/repository"
	"github.com/hrdesk/hrdesk-backend/internal/hr/service"
	"github.com/hrdesk/hrdesk-backend/pkg/activity"
	"github.com/hrdesk/hrdesk-backend/pkg/actor"
	"github.com/hrdesk/hrdesk-backend/pkg/testutil"
)

func newStatementHandler(m *testutil.MockDB) *handler.StatementHandler {
	log := testutil.NewTestLogger()
	employees := repository.NewEmployeeRepository(m.DB)
	teams := repository.NewTeamRepository(m.DB)
	rules := repository.NewAccessRuleRepository(m.DB)
	resolver := access.NewResolver(employees, teams, rules, log)
	publisher := events.NewHREventPublisherWith(testutil.NewMockPublisher(), log)

	svc := service.NewStatementService(
		repository.NewStatementRepository(m.DB),
		employees,
		resolver,
		publisher,
		activity.NewLog(activity.DefaultCapacity),
		log,
	)
	return handler.NewStatementHandler(svc, log)
}

func mountStatements(h *handler.StatementHandler) func(chi.Router) {
	return func(r chi.Router) {
		r.Post("/statements", h.Create)
		r.Get("/statements", h.List)
		r.Delete("/statements/{id}", h.Cancel)
	}
}

func TestStatementHandler_Create(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()
	h := newStatementHandler(mockDB)

	mockDB.ExpectQuery("INSERT INTO employee_statements").
		WithArgs(int64(7), "other", "Need a replacement badge", nil, nil, nil, "new").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(3), time.Now()))

	router := newRouter(&actor.Actor{ID: 7}, mountStatements(h))
	rec, env := doRequest(t, router, http.MethodPost, "/statements",
		`{"category": "other", "body": "Need a replacement badge"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, env.Success)
	assert.Contains(t, string(env.Data), `"id":3`)

	mockDB.ExpectationsWereMet(t)
}

func TestStatementHandler_Create_BadStartDate(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()
	h := newStatementHandler(mockDB)

	router := newRouter(&actor.Actor{ID: 7}, mountStatements(h))
	rec, env := doRequest(t, router, http.MethodPost, "/statements",
		`{"category": "leave", "body": "trip", "start_date": "01.09.2026"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "BAD_REQUEST", env.Error.Code)
}

func TestStatementHandler_Create_MissingFields(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()
	h := newStatementHandler(mockDB)

	router := newRouter(&actor.Actor{ID: 7}, mountStatements(h))
	rec, env := doRequest(t, router, http.MethodPost, "/statements",
		`{"category": "leave", "body": "two weeks in October"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "MISSING_FIELDS", env.Error.Code)
}

func TestStatementHandler_Create_EmptyRequest(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()
	h := newStatementHandler(mockDB)

	router := newRouter(&actor.Actor{ID: 7}, mountStatements(h))
	rec, env := doRequest(t, router, http.MethodPost, "/statements", `{}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Details, "Category")
	assert.Contains(t, env.Error.Details, "Body")
}

func TestStatementHandler_List_Self(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()
	h := newStatementHandler(mockDB)

	mockDB.ExpectQuery("FROM employee_statements s").
		WithArgs(int64(7), false, "cancelled").
		WillReturnRows(sqlmock.NewRows([]string{"id", "employee_id", "category", "body", "start_date", "end_date", "vacation_kind", "status", "created_at", "deleted_at"}).
			AddRow(int64(1), int64(7), "other", "Parking card", nil, nil, nil, "new", time.Now(), nil))

	router := newRouter(&actor.Actor{ID: 7}, mountStatements(h))
	rec, env := doRequest(t, router, http.MethodGet, "/statements", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), "Parking card")

	mockDB.ExpectationsWereMet(t)
}

func TestStatementHandler_List_BadScope(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()
	h := newStatementHandler(mockDB)

	router := newRouter(&actor.Actor{ID: 7}, mountStatements(h))
	rec, env := doRequest(t, router, http.MethodGet, "/statements?scope=everything", "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "BAD_REQUEST", env.Error.Code)
}

func TestStatementHandler_Cancel_BadID(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()
	h := newStatementHandler(mockDB)

	router := newRouter(&actor.Actor{ID: 7}, mountStatements(h))
	rec, env := doRequest(t, router, http.MethodDelete, "/statements/abc", "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "BAD_REQUEST", env.Error.Code)
}

func TestStatementHandler_NoActor(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()
	h := newStatementHandler(mockDB)

	router := newRouter(nil, mountStatements(h))
	rec, env := doRequest(t, router, http.MethodGet, "/statements", "")

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)
}
