package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrdesk/hrdesk-backend/internal/hr/access"
	"github.com/hrdesk/hrdesk-backend/internal/hr/events"
	"github.com/hrdesk/hrdesk-backend/internal/hr/repository"
	"github.com/hrdesk/hrdesk-backend/internal/hr/service"
	"github.com/hrdesk/hrdesk-backend/pkg/activity"
	"github.com/hrdesk/hrdesk-backend/pkg/errors"
	"github.com/hrdesk/hrdesk-backend/pkg/messaging"
	"github.com/hrdesk/hrdesk-backend/pkg/testutil"
)

func newSalaryService(m *testutil.MockDB, pub *testutil.MockPublisher) *service.SalaryService {
	log := testutil.NewTestLogger()
	employees := repository.NewEmployeeRepository(m.DB)
	teams := repository.NewTeamRepository(m.DB)
	rules := repository.NewAccessRuleRepository(m.DB)
	resolver := access.NewResolver(employees, teams, rules, log)

	return service.NewSalaryService(
		repository.NewSalaryRepository(m.DB),
		employees,
		resolver,
		events.NewHREventPublisherWith(pub, log),
		activity.NewLog(activity.DefaultCapacity),
		log,
	)
}

func salaryRows(employeeAmounts map[int64]int64) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "employee_id", "amount", "currency", "effective_from", "effective_to"})
	id := int64(0)
	for empID, amount := range employeeAmounts {
		id++
		rows.AddRow(id, empID, decimal.NewFromInt(amount), "EUR", time.Now().AddDate(-1, 0, 0), nil)
	}
	return rows
}

func TestSalaryService_TeamStats(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()
	pub := testutil.NewMockPublisher()
	svc := newSalaryService(mockDB, pub)

	teamID := int64(10)

	// Not a lead, but the rule table grants the permission
	mockDB.ExpectQuery("SELECT EXISTS(SELECT 1 FROM teams").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mockDB.ExpectQuery("FROM access_rules").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mockDB.ExpectQuery("SELECT DISTINCT ON (s.employee_id)").
		WillReturnRows(salaryRows(map[int64]int64{7: 4000, 8: 5000, 9: 6000}))

	stats, err := svc.TeamStats(context.Background(), 3, &teamID, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Count)
	assert.True(t, stats.Average.Equal(decimal.NewFromInt(5000)), "avg %s", stats.Average)
	assert.True(t, stats.Median.Equal(decimal.NewFromInt(5000)), "median %s", stats.Median)
	assert.True(t, stats.Min.Equal(decimal.NewFromInt(4000)))
	assert.True(t, stats.Max.Equal(decimal.NewFromInt(6000)))

	mockDB.ExpectationsWereMet(t)
}

func TestSalaryService_TeamStats_EvenCountMedian(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()
	pub := testutil.NewMockPublisher()
	svc := newSalaryService(mockDB, pub)

	teamID := int64(10)

	mockDB.ExpectQuery("SELECT EXISTS(SELECT 1 FROM teams").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mockDB.ExpectQuery("SELECT DISTINCT ON (s.employee_id)").
		WillReturnRows(salaryRows(map[int64]int64{7: 4000, 8: 5000}))

	stats, err := svc.TeamStats(context.Background(), 3, &teamID, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Count)
	assert.True(t, stats.Median.Equal(decimal.NewFromInt(4500)), "median %s", stats.Median)

	mockDB.ExpectationsWereMet(t)
}

func TestSalaryService_TeamStats_Forbidden(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()
	pub := testutil.NewMockPublisher()
	svc := newSalaryService(mockDB, pub)

	teamID := int64(10)

	// Neither lead nor rule grant
	mockDB.ExpectQuery("SELECT EXISTS(SELECT 1 FROM teams").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mockDB.ExpectQuery("FROM access_rules").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	_, err := svc.TeamStats(context.Background(), 3, &teamID, nil)
	require.Error(t, err)

	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "FORBIDDEN", appErr.Code)

	pub.AssertEventPublished(t, messaging.EventAccessDenied)
	mockDB.ExpectationsWereMet(t)
}

func TestSalaryService_TeamStats_NoData(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()
	pub := testutil.NewMockPublisher()
	svc := newSalaryService(mockDB, pub)

	teamID := int64(10)

	mockDB.ExpectQuery("SELECT EXISTS(SELECT 1 FROM teams").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mockDB.ExpectQuery("SELECT DISTINCT ON (s.employee_id)").
		WillReturnRows(salaryRows(nil))

	_, err := svc.TeamStats(context.Background(), 3, &teamID, nil)
	require.Error(t, err)

	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NOT_FOUND", appErr.Code)

	mockDB.ExpectationsWereMet(t)
}
