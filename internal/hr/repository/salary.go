package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hrdesk/hrdesk-backend/pkg/database"
)

// Salary represents one interval of an employee's compensation history.
// An open interval (EffectiveTo nil) runs until superseded.
type Salary struct {
	ID            int64           `db:"id" json:"id"`
	EmployeeID    int64           `db:"employee_id" json:"employee_id"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
	Currency      string          `db:"currency" json:"currency"`
	EffectiveFrom time.Time       `db:"effective_from" json:"effective_from"`
	EffectiveTo   *time.Time      `db:"effective_to" json:"effective_to,omitempty"`
}

// SalaryRepository handles salary persistence
type SalaryRepository struct {
	db *database.DB
}

// NewSalaryRepository creates a new salary repository
func NewSalaryRepository(db *database.DB) *SalaryRepository {
	return &SalaryRepository{db: db}
}

// Current returns the salary interval covering asOf, most recent start
// winning when intervals overlap. Returns nil when none covers the date.
func (r *SalaryRepository) Current(ctx context.Context, employeeID int64, asOf time.Time) (*Salary, error) {
	var salary Salary

	query := `
		SELECT id, employee_id, amount, currency, effective_from, effective_to
		FROM salaries
		WHERE employee_id = $1
		  AND effective_from <= $2
		  AND (effective_to IS NULL OR effective_to >= $2)
		ORDER BY effective_from DESC
		LIMIT 1`
	err := r.db.GetContext(ctx, &salary, query, employeeID, asOf)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &salary, nil
}

// CurrentForTeam returns the current salaries of a team's active members,
// optionally restricted to one position.
func (r *SalaryRepository) CurrentForTeam(ctx context.Context, teamID int64, position *string, asOf time.Time) ([]*Salary, error) {
	var salaries []*Salary

	query := `
		SELECT DISTINCT ON (s.employee_id)
		       s.id, s.employee_id, s.amount, s.currency, s.effective_from, s.effective_to
		FROM salaries s
		JOIN employees e ON s.employee_id = e.id
		WHERE e.team_id = $1
		  AND e.is_active
		  AND s.effective_from <= $2
		  AND (s.effective_to IS NULL OR s.effective_to >= $2)
		  AND ($3::text IS NULL OR e.position = $3)
		ORDER BY s.employee_id, s.effective_from DESC`
	if err := r.db.SelectContext(ctx, &salaries, query, teamID, asOf, position); err != nil {
		return nil, err
	}

	return salaries, nil
}
