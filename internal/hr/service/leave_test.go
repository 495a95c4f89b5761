package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrdesk/hrdesk-backend/internal/hr/leave"
	"github.com/hrdesk/hrdesk-backend/internal/hr/repository"
	"github.com/hrdesk/hrdesk-backend/internal/hr/service"
	"github.com/hrdesk/hrdesk-backend/pkg/activity"
	"github.com/hrdesk/hrdesk-backend/pkg/errors"
	"github.com/hrdesk/hrdesk-backend/pkg/testutil"
)

var employeeColumns = []string{
	"id", "external_id", "name", "email", "phone", "position",
	"hired_at", "fired_at", "team_id", "manager_id", "is_active",
	"gender", "birth_date", "team_name", "manager_name",
}

func employeeRow(id int64, name string, hiredAt *time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(employeeColumns).
		AddRow(id, nil, name, nil, nil, nil, hiredAt, nil, nil, nil, true, nil, nil, nil, nil)
}

func newLeaveService(m *testutil.MockDB) *service.LeaveService {
	log := testutil.NewTestLogger()
	return service.NewLeaveService(
		repository.NewLeaveRepository(m.DB),
		repository.NewEmployeeRepository(m.DB),
		activity.NewLog(activity.DefaultCapacity),
		log,
	)
}

func TestLeaveService_History(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()
	svc := newLeaveService(mockDB)

	mockDB.ExpectQuery("FROM leaves").
		WithArgs(int64(7), "approved").
		WillReturnRows(sqlmock.NewRows([]string{"id", "employee_id", "start_date", "end_date", "kind", "status"}).
			AddRow(int64(2), int64(7), time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC), time.Date(2026, 5, 8, 0, 0, 0, 0, time.UTC), "regular", "approved").
			AddRow(int64(1), int64(7), time.Date(2025, 12, 22, 0, 0, 0, 0, time.UTC), time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), "regular", "approved"))

	records, err := svc.History(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, 5, records[0].Days)
	assert.Equal(t, 10, records[1].Days)

	mockDB.ExpectationsWereMet(t)
}

func TestLeaveService_Balance_NoHireDate(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()
	svc := newLeaveService(mockDB)

	mockDB.ExpectQuery("FROM employees e").
		WithArgs(int64(7)).
		WillReturnRows(employeeRow(7, "Jonas Keller", nil))
	mockDB.ExpectQuery("FROM leaves").
		WithArgs(int64(7), "approved").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(5.0))

	report, err := svc.Balance(context.Background(), 7)
	require.NoError(t, err)

	// Flat pool of 28 minus used days
	assert.Equal(t, 23.0, report.Balance)
	assert.Equal(t, 5.0, report.UsedDays)

	mockDB.ExpectationsWereMet(t)
}

func TestLeaveService_Forecast(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()
	svc := newLeaveService(mockDB)

	target := time.Now().AddDate(0, 3, 5)
	planned := 3.0

	mockDB.ExpectQuery("FROM employees e").
		WillReturnRows(employeeRow(7, "Jonas Keller", nil))
	mockDB.ExpectQuery("FROM leaves").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(5.0))
	mockDB.ExpectQuery("FROM leaves").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(4.0))

	report, err := svc.Forecast(context.Background(), 7, service.ForecastRequest{
		Target:      target,
		PlannedDays: &planned,
	})
	require.NoError(t, err)

	expected := leave.ForecastBalance(leave.ForecastInput{
		Today:              time.Now(),
		Target:             target,
		CurrentBalance:     23.0,
		ApprovedFutureDays: 4.0,
		PlannedDays:        3.0,
	})
	assert.InDelta(t, expected, report.ProjectedBalance, 0.01)
	assert.Equal(t, 23.0, report.CurrentBalance)

	mockDB.ExpectationsWereMet(t)
}

func TestLeaveService_Forecast_PastTarget(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()
	svc := newLeaveService(mockDB)

	_, err := svc.Forecast(context.Background(), 7, service.ForecastRequest{
		Target: time.Now().AddDate(0, 0, -1),
	})
	require.Error(t, err)

	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestLeaveService_Forecast_HalfOpenPlannedRange(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()
	svc := newLeaveService(mockDB)

	start := time.Now().AddDate(0, 1, 0)

	_, err := svc.Forecast(context.Background(), 7, service.ForecastRequest{
		Target:       time.Now().AddDate(0, 3, 0),
		PlannedStart: &start,
	})
	require.Error(t, err)

	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "MISSING_FIELDS", appErr.Code)
	assert.Contains(t, appErr.Details, "planned_end")
}
