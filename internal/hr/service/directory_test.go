package service_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrdesk/hrdesk-backend/internal/hr/repository"
	"github.com/hrdesk/hrdesk-backend/internal/hr/service"
	"github.com/hrdesk/hrdesk-backend/pkg/activity"
	"github.com/hrdesk/hrdesk-backend/pkg/errors"
	"github.com/hrdesk/hrdesk-backend/pkg/testutil"
)

func newDirectoryService(m *testutil.MockDB) *service.DirectoryService {
	return service.NewDirectoryService(
		repository.NewEmployeeRepository(m.DB),
		activity.NewLog(activity.DefaultCapacity),
		testutil.NewTestLogger(),
	)
}

func TestDirectoryService_Search_EmptyQuery(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()
	svc := newDirectoryService(mockDB)

	_, err := svc.SearchEmployees(context.Background(), 1, "   ", nil, 0)
	require.Error(t, err)

	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "MISSING_FIELDS", appErr.Code)
}

func TestDirectoryService_Search_UnknownField(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()
	svc := newDirectoryService(mockDB)

	_, err := svc.SearchEmployees(context.Background(), 1, "maria", []string{"salary"}, 0)
	require.Error(t, err)

	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestDirectoryService_Search_SingleNameScopedToOwnTeam(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()
	svc := newDirectoryService(mockDB)

	// Single bare name: the actor's team narrows the search
	mockDB.ExpectQuery("SELECT team_id FROM employees").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"team_id"}).AddRow(int64(10)))
	mockDB.ExpectQuery("FROM employees e").
		WillReturnRows(employeeRow(5, "Maria Lang", nil))

	results, err := svc.SearchEmployees(context.Background(), 1, "maria", []string{"id", "name"}, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, int64(5), results[0]["id"])
	assert.Equal(t, "Maria Lang", results[0]["name"])
	// Whitelisted projection only
	assert.NotContains(t, results[0], "phone")

	mockDB.ExpectationsWereMet(t)
}

func TestDirectoryService_Search_FallsBackToWholeDirectory(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()
	svc := newDirectoryService(mockDB)

	mockDB.ExpectQuery("SELECT team_id FROM employees").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"team_id"}).AddRow(int64(10)))
	// Nobody on the actor's team, so the search widens
	mockDB.ExpectQuery("FROM employees e").
		WillReturnRows(sqlmock.NewRows(employeeColumns))
	mockDB.ExpectQuery("FROM employees e").
		WillReturnRows(employeeRow(42, "Maria Brandt", nil))

	results, err := svc.SearchEmployees(context.Background(), 1, "maria", nil, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Maria Brandt", results[0]["name"])

	mockDB.ExpectationsWereMet(t)
}

func TestDirectoryService_Search_TwoWordsSearchGlobally(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()
	svc := newDirectoryService(mockDB)

	// Multi-word queries never consult the actor's team
	mockDB.ExpectQuery("FROM employees e").
		WillReturnRows(employeeRow(5, "Maria Lang", nil))

	results, err := svc.SearchEmployees(context.Background(), 1, "maria lang", nil, 0)
	require.NoError(t, err)
	assert.Len(t, results, 1)

	mockDB.ExpectationsWereMet(t)
}
