package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// TeamFixture represents test team data
type TeamFixture struct {
	Name   string
	LeadID *int64
}

// EmployeeFixture represents test employee data
type EmployeeFixture struct {
	ExternalID *string
	Name       string
	Email      *string
	Phone      *string
	Position   *string
	HiredAt    *time.Time
	FiredAt    *time.Time
	TeamID     *int64
	ManagerID  *int64
	IsActive   bool
	Gender     *string
	BirthDate  *time.Time
}

// SalaryFixture represents test salary data
type SalaryFixture struct {
	EmployeeID    int64
	Amount        decimal.Decimal
	Currency      string
	EffectiveFrom time.Time
	EffectiveTo   *time.Time
}

// LeaveFixture represents test leave data
type LeaveFixture struct {
	EmployeeID int64
	StartDate  time.Time
	EndDate    time.Time
	Kind       string
	Status     string
}

// AccessRuleFixture represents test access rule data
type AccessRuleFixture struct {
	EmployeeID       int64
	Action           string
	Scope            string
	TargetEmployeeID *int64
	TeamID           *int64
	Allow            bool
}

// StatementFixture represents test statement data
type StatementFixture struct {
	EmployeeID   int64
	Category     string
	Body         string
	StartDate    *time.Time
	EndDate      *time.Time
	VacationKind *string
	Status       string
}

// FixtureFactory creates test fixtures with sensible defaults
type FixtureFactory struct {
	sequence int
}

// NewFixtureFactory creates a new fixture factory
func NewFixtureFactory() *FixtureFactory {
	return &FixtureFactory{sequence: 0}
}

// nextSeq returns the next sequence number for unique values
func (f *FixtureFactory) nextSeq() int {
	f.sequence++
	return f.sequence
}

// Team creates a team fixture with defaults
func (f *FixtureFactory) Team(opts ...func(*TeamFixture)) TeamFixture {
	seq := f.nextSeq()

	team := TeamFixture{
		Name: fmt.Sprintf("Team %d", seq),
	}

	for _, opt := range opts {
		opt(&team)
	}

	return team
}

// WithTeamName sets the team name
func WithTeamName(name string) func(*TeamFixture) {
	return func(t *TeamFixture) {
		t.Name = name
	}
}

// WithLead sets the team lead
func WithLead(employeeID int64) func(*TeamFixture) {
	return func(t *TeamFixture) {
		t.LeadID = &employeeID
	}
}

// Employee creates an employee fixture with defaults
func (f *FixtureFactory) Employee(opts ...func(*EmployeeFixture)) EmployeeFixture {
	seq := f.nextSeq()

	externalID := fmt.Sprintf("EMP-%04d", seq)
	email := fmt.Sprintf("employee%d@test.hrdesk.io", seq)
	position := "Engineer"
	hiredAt := time.Now().AddDate(-1, 0, 0)

	emp := EmployeeFixture{
		ExternalID: &externalID,
		Name:       fmt.Sprintf("Employee %d", seq),
		Email:      &email,
		Position:   &position,
		HiredAt:    &hiredAt,
		IsActive:   true,
	}

	for _, opt := range opts {
		opt(&emp)
	}

	return emp
}

// WithEmployeeName sets the employee name
func WithEmployeeName(name string) func(*EmployeeFixture) {
	return func(e *EmployeeFixture) {
		e.Name = name
	}
}

// WithPosition sets the employee position
func WithPosition(position string) func(*EmployeeFixture) {
	return func(e *EmployeeFixture) {
		e.Position = &position
	}
}

// WithPhone sets the employee phone number
func WithPhone(phone string) func(*EmployeeFixture) {
	return func(e *EmployeeFixture) {
		e.Phone = &phone
	}
}

// WithTeam assigns the employee to a team
func WithTeam(teamID int64) func(*EmployeeFixture) {
	return func(e *EmployeeFixture) {
		e.TeamID = &teamID
	}
}

// WithManager sets the employee's manager
func WithManager(managerID int64) func(*EmployeeFixture) {
	return func(e *EmployeeFixture) {
		e.ManagerID = &managerID
	}
}

// WithHiredAt sets the employee hire date
func WithHiredAt(hiredAt time.Time) func(*EmployeeFixture) {
	return func(e *EmployeeFixture) {
		e.HiredAt = &hiredAt
	}
}

// WithoutHireDate clears the employee hire date
func WithoutHireDate() func(*EmployeeFixture) {
	return func(e *EmployeeFixture) {
		e.HiredAt = nil
	}
}

// WithBirthDate sets the employee birth date
func WithBirthDate(birthDate time.Time) func(*EmployeeFixture) {
	return func(e *EmployeeFixture) {
		e.BirthDate = &birthDate
	}
}

// WithFired marks the employee as inactive with a termination date
func WithFired(firedAt time.Time) func(*EmployeeFixture) {
	return func(e *EmployeeFixture) {
		e.FiredAt = &firedAt
		e.IsActive = false
	}
}

// Salary creates a salary fixture with defaults
func (f *FixtureFactory) Salary(employeeID int64, opts ...func(*SalaryFixture)) SalaryFixture {
	sal := SalaryFixture{
		EmployeeID:    employeeID,
		Amount:        decimal.NewFromInt(5000),
		Currency:      "EUR",
		EffectiveFrom: time.Now().AddDate(-1, 0, 0),
	}

	for _, opt := range opts {
		opt(&sal)
	}

	return sal
}

// WithAmount sets the salary amount
func WithAmount(amount decimal.Decimal) func(*SalaryFixture) {
	return func(s *SalaryFixture) {
		s.Amount = amount
	}
}

// WithEffectivePeriod sets the salary validity interval
func WithEffectivePeriod(from time.Time, to *time.Time) func(*SalaryFixture) {
	return func(s *SalaryFixture) {
		s.EffectiveFrom = from
		s.EffectiveTo = to
	}
}

// Leave creates a leave fixture with defaults
func (f *FixtureFactory) Leave(employeeID int64, opts ...func(*LeaveFixture)) LeaveFixture {
	leave := LeaveFixture{
		EmployeeID: employeeID,
		StartDate:  time.Now().AddDate(0, -1, 0),
		EndDate:    time.Now().AddDate(0, -1, 4),
		Kind:       "regular",
		Status:     "approved",
	}

	for _, opt := range opts {
		opt(&leave)
	}

	return leave
}

// WithLeaveDates sets the leave date range
func WithLeaveDates(start, end time.Time) func(*LeaveFixture) {
	return func(l *LeaveFixture) {
		l.StartDate = start
		l.EndDate = end
	}
}

// WithLeaveKind sets the leave kind
func WithLeaveKind(kind string) func(*LeaveFixture) {
	return func(l *LeaveFixture) {
		l.Kind = kind
	}
}

// WithLeaveStatus sets the leave status
func WithLeaveStatus(status string) func(*LeaveFixture) {
	return func(l *LeaveFixture) {
		l.Status = status
	}
}

// AccessRule creates an access rule fixture with defaults
func (f *FixtureFactory) AccessRule(employeeID int64, action, scope string, opts ...func(*AccessRuleFixture)) AccessRuleFixture {
	rule := AccessRuleFixture{
		EmployeeID: employeeID,
		Action:     action,
		Scope:      scope,
		Allow:      true,
	}

	for _, opt := range opts {
		opt(&rule)
	}

	return rule
}

// WithTargetEmployee sets the rule's target employee
func WithTargetEmployee(employeeID int64) func(*AccessRuleFixture) {
	return func(r *AccessRuleFixture) {
		r.TargetEmployeeID = &employeeID
	}
}

// WithRuleTeam sets the rule's team
func WithRuleTeam(teamID int64) func(*AccessRuleFixture) {
	return func(r *AccessRuleFixture) {
		r.TeamID = &teamID
	}
}

// Statement creates a statement fixture with defaults
func (f *FixtureFactory) Statement(employeeID int64, opts ...func(*StatementFixture)) StatementFixture {
	seq := f.nextSeq()

	st := StatementFixture{
		EmployeeID: employeeID,
		Category:   "other",
		Body:       fmt.Sprintf("Test statement %d", seq),
		Status:     "new",
	}

	for _, opt := range opts {
		opt(&st)
	}

	return st
}

// WithStatementCategory sets the statement category
func WithStatementCategory(category string) func(*StatementFixture) {
	return func(s *StatementFixture) {
		s.Category = category
	}
}

// WithVacation sets the leave-specific statement fields
func WithVacation(start, end time.Time, kind string) func(*StatementFixture) {
	return func(s *StatementFixture) {
		s.StartDate = &start
		s.EndDate = &end
		s.VacationKind = &kind
	}
}

// SeedTeam inserts a team fixture and returns its ID
func (s *IntegrationSuite) SeedTeam(t *testing.T, ctx context.Context, team TeamFixture) int64 {
	t.Helper()

	var id int64
	err := s.RawDB.QueryRowContext(ctx,
		`INSERT INTO teams (name, lead_id) VALUES ($1, $2) RETURNING id`,
		team.Name, team.LeadID,
	).Scan(&id)
	if err != nil {
		t.Fatalf("failed to seed team: %v", err)
	}
	return id
}

// SetTeamLead updates a team's lead after its members exist
func (s *IntegrationSuite) SetTeamLead(t *testing.T, ctx context.Context, teamID, leadID int64) {
	t.Helper()

	if _, err := s.RawDB.ExecContext(ctx,
		`UPDATE teams SET lead_id = $2 WHERE id = $1`, teamID, leadID,
	); err != nil {
		t.Fatalf("failed to set team lead: %v", err)
	}
}

// SeedEmployee inserts an employee fixture and returns its ID
func (s *IntegrationSuite) SeedEmployee(t *testing.T, ctx context.Context, emp EmployeeFixture) int64 {
	t.Helper()

	var id int64
	err := s.RawDB.QueryRowContext(ctx,
		`INSERT INTO employees (external_id, name, email, phone, position, hired_at, fired_at, team_id, manager_id, is_active, gender, birth_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id`,
		emp.ExternalID, emp.Name, emp.Email, emp.Phone, emp.Position,
		emp.HiredAt, emp.FiredAt, emp.TeamID, emp.ManagerID, emp.IsActive,
		emp.Gender, emp.BirthDate,
	).Scan(&id)
	if err != nil {
		t.Fatalf("failed to seed employee: %v", err)
	}
	return id
}

// SeedSalary inserts a salary fixture and returns its ID
func (s *IntegrationSuite) SeedSalary(t *testing.T, ctx context.Context, sal SalaryFixture) int64 {
	t.Helper()

	var id int64
	err := s.RawDB.QueryRowContext(ctx,
		`INSERT INTO salaries (employee_id, amount, currency, effective_from, effective_to)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		sal.EmployeeID, sal.Amount, sal.Currency, sal.EffectiveFrom, sal.EffectiveTo,
	).Scan(&id)
	if err != nil {
		t.Fatalf("failed to seed salary: %v", err)
	}
	return id
}

// SeedLeave inserts a leave fixture and returns its ID
func (s *IntegrationSuite) SeedLeave(t *testing.T, ctx context.Context, leave LeaveFixture) int64 {
	t.Helper()

	var id int64
	err := s.RawDB.QueryRowContext(ctx,
		`INSERT INTO leaves (employee_id, start_date, end_date, kind, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		leave.EmployeeID, leave.StartDate, leave.EndDate, leave.Kind, leave.Status,
	).Scan(&id)
	if err != nil {
		t.Fatalf("failed to seed leave: %v", err)
	}
	return id
}

// SeedAccessRule inserts an access rule fixture and returns its ID
func (s *IntegrationSuite) SeedAccessRule(t *testing.T, ctx context.Context, rule AccessRuleFixture) int64 {
	t.Helper()

	var id int64
	err := s.RawDB.QueryRowContext(ctx,
		`INSERT INTO access_rules (employee_id, action, scope, target_employee_id, team_id, allow)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		rule.EmployeeID, rule.Action, rule.Scope, rule.TargetEmployeeID, rule.TeamID, rule.Allow,
	).Scan(&id)
	if err != nil {
		t.Fatalf("failed to seed access rule: %v", err)
	}
	return id
}

// SeedStatement inserts a statement fixture and returns its ID
func (s *IntegrationSuite) SeedStatement(t *testing.T, ctx context.Context, st StatementFixture) int64 {
	t.Helper()

	var id int64
	err := s.RawDB.QueryRowContext(ctx,
		`INSERT INTO employee_statements (employee_id, category, body, start_date, end_date, vacation_kind, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		st.EmployeeID, st.Category, st.Body, st.StartDate, st.EndDate, st.VacationKind, st.Status,
	).Scan(&id)
	if err != nil {
		t.Fatalf("failed to seed statement: %v", err)
	}
	return id
}
