package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/hrdesk/hrdesk-backend/pkg/database"
	"github.com/hrdesk/hrdesk-backend/pkg/errors"
)

// Employee represents a member of the organization
type Employee struct {
	ID         int64      `db:"id" json:"id"`
	ExternalID *string    `db:"external_id" json:"external_id,omitempty"`
	Name       string     `db:"name" json:"name"`
	Email      *string    `db:"email" json:"email,omitempty"`
	Phone      *string    `db:"phone" json:"phone,omitempty"`
	Position   *string    `db:"position" json:"position,omitempty"`
	HiredAt    *time.Time `db:"hired_at" json:"hired_at,omitempty"`
	FiredAt    *time.Time `db:"fired_at" json:"fired_at,omitempty"`
	TeamID     *int64     `db:"team_id" json:"team_id,omitempty"`
	ManagerID  *int64     `db:"manager_id" json:"manager_id,omitempty"`
	IsActive   bool       `db:"is_active" json:"is_active"`
	Gender     *string    `db:"gender" json:"gender,omitempty"`
	BirthDate  *time.Time `db:"birth_date" json:"birth_date,omitempty"`

	// Joined fields
	TeamName    *string `db:"team_name" json:"team_name,omitempty"`
	ManagerName *string `db:"manager_name" json:"manager_name,omitempty"`
}

// EmployeeSearchParams holds parameters for searching employees
type EmployeeSearchParams struct {
	// Words are name fragments, all of which must match.
	Words []string

	// Digits matches the employee id exactly or the phone as a substring.
	Digits string

	// TeamID restricts results to one team when set.
	TeamID *int64

	Limit int
}

// EmployeeRepository handles employee persistence
type EmployeeRepository struct {
	db *database.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *database.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

const employeeColumns = `
	e.id, e.external_id, e.name, e.email, e.phone, e.position,
	e.hired_at, e.fired_at, e.team_id, e.manager_id, e.is_active,
	e.gender, e.birth_date,
	t.name AS team_name,
	m.name AS manager_name`

const employeeJoins = `
	FROM employees e
	LEFT JOIN teams t ON e.team_id = t.id
	LEFT JOIN employees m ON e.manager_id = m.id`

// GetByID gets an employee by ID with team and manager names joined
func (r *EmployeeRepository) GetByID(ctx context.Context, id int64) (*Employee, error) {
	var emp Employee

	query := `SELECT` + employeeColumns + employeeJoins + ` WHERE e.id = $1`
	err := r.db.GetContext(ctx, &emp, query, id)

	if err == sql.ErrNoRows {
		return nil, errors.NotFound("employee")
	}
	if err != nil {
		return nil, err
	}

	return &emp, nil
}

// TeamID returns the team of an employee, nil when unassigned
func (r *EmployeeRepository) TeamID(ctx context.Context, employeeID int64) (*int64, error) {
	var teamID *int64

	query := `SELECT team_id FROM employees WHERE id = $1`
	err := r.db.GetContext(ctx, &teamID, query, employeeID)

	if err == sql.ErrNoRows {
		return nil, errors.NotFound("employee")
	}
	if err != nil {
		return nil, err
	}

	return teamID, nil
}

// IsManagerOf reports whether managerID is the direct manager of employeeID
func (r *EmployeeRepository) IsManagerOf(ctx context.Context, managerID, employeeID int64) (bool, error) {
	var exists bool

	query := `SELECT EXISTS(SELECT 1 FROM employees WHERE id = $1 AND manager_id = $2)`
	if err := r.db.GetContext(ctx, &exists, query, employeeID, managerID); err != nil {
		return false, err
	}

	return exists, nil
}

// TeamMembers lists active employees of a team
func (r *EmployeeRepository) TeamMembers(ctx context.Context, teamID int64) ([]*Employee, error) {
	var members []*Employee

	query := `SELECT` + employeeColumns + employeeJoins + `
		WHERE e.team_id = $1 AND e.is_active
		ORDER BY e.name`
	if err := r.db.SelectContext(ctx, &members, query, teamID); err != nil {
		return nil, err
	}

	return members, nil
}

// Search finds employees by name fragments or by id/phone digits
func (r *EmployeeRepository) Search(ctx context.Context, params EmployeeSearchParams) ([]*Employee, error) {
	where := []string{"e.is_active"}
	args := []interface{}{}

	if params.Digits != "" {
		args = append(args, params.Digits)
		idArg := len(args)
		args = append(args, "%"+params.Digits+"%")
		where = append(where, fmt.Sprintf("(CAST(e.id AS TEXT) = $%d OR e.phone LIKE $%d)", idArg, idArg+1))
	}

	for _, word := range params.Words {
		args = append(args, "%"+word+"%")
		where = append(where, fmt.Sprintf("e.name ILIKE $%d", len(args)))
	}

	if params.TeamID != nil {
		args = append(args, *params.TeamID)
		where = append(where, fmt.Sprintf("e.team_id = $%d", len(args)))
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	args = append(args, limit)

	query := `SELECT` + employeeColumns + employeeJoins + `
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY e.name
		LIMIT $` + fmt.Sprint(len(args))

	var found []*Employee
	if err := r.db.SelectContext(ctx, &found, query, args...); err != nil {
		return nil, err
	}

	return found, nil
}
