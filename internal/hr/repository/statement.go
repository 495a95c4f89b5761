package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/hrdesk/hrdesk-backend/pkg/database"
	"github.com/hrdesk/hrdesk-backend/pkg/errors"
)

// Statement statuses
const (
	StatementStatusNew       = "new"
	StatementStatusCancelled = "cancelled"
)

// Statement categories
const (
	StatementCategoryLeave       = "leave"
	StatementCategoryTermination = "termination"
	StatementCategoryOther       = "other"
)

// Statement represents a formal request filed by an employee
type Statement struct {
	ID           int64      `db:"id" json:"id"`
	EmployeeID   int64      `db:"employee_id" json:"employee_id"`
	Category     string     `db:"category" json:"category"`
	Body         string     `db:"body" json:"body"`
	StartDate    *time.Time `db:"start_date" json:"start_date,omitempty"`
	EndDate      *time.Time `db:"end_date" json:"end_date,omitempty"`
	VacationKind *string    `db:"vacation_kind" json:"vacation_kind,omitempty"`
	Status       string     `db:"status" json:"status"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	DeletedAt    *time.Time `db:"deleted_at" json:"-"`

	// Joined fields
	EmployeeName *string `db:"employee_name" json:"employee_name,omitempty"`
}

// StatementRepository handles statement persistence
type StatementRepository struct {
	db *database.DB
}

// NewStatementRepository creates a new statement repository
func NewStatementRepository(db *database.DB) *StatementRepository {
	return &StatementRepository{db: db}
}

// Create inserts a statement and fills its generated fields
func (r *StatementRepository) Create(ctx context.Context, st *Statement) error {
	if st.Status == "" {
		st.Status = StatementStatusNew
	}

	query := `
		INSERT INTO employee_statements (
			employee_id, category, body, start_date, end_date, vacation_kind, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`
	return r.db.QueryRowxContext(ctx, query,
		st.EmployeeID, st.Category, st.Body, st.StartDate, st.EndDate, st.VacationKind, st.Status,
	).Scan(&st.ID, &st.CreatedAt)
}

// GetByID gets a statement by ID, soft-deleted rows included
func (r *StatementRepository) GetByID(ctx context.Context, id int64) (*Statement, error) {
	var st Statement

	query := `
		SELECT s.id, s.employee_id, s.category, s.body, s.start_date, s.end_date,
		       s.vacation_kind, s.status, s.created_at, s.deleted_at,
		       e.name AS employee_name
		FROM employee_statements s
		LEFT JOIN employees e ON s.employee_id = e.id
		WHERE s.id = $1`
	err := r.db.GetContext(ctx, &st, query, id)

	if err == sql.ErrNoRows {
		return nil, errors.NotFound("statement")
	}
	if err != nil {
		return nil, err
	}

	return &st, nil
}

// ListByEmployee lists an employee's non-deleted statements, newest first.
// With activeOnly set, cancelled statements are excluded as well.
func (r *StatementRepository) ListByEmployee(ctx context.Context, employeeID int64, activeOnly bool) ([]*Statement, error) {
	var statements []*Statement

	query := `
		SELECT s.id, s.employee_id, s.category, s.body, s.start_date, s.end_date,
		       s.vacation_kind, s.status, s.created_at, s.deleted_at,
		       e.name AS employee_name
		FROM employee_statements s
		LEFT JOIN employees e ON s.employee_id = e.id
		WHERE s.employee_id = $1 AND s.deleted_at IS NULL
		  AND (NOT $2 OR s.status <> $3)
		ORDER BY s.created_at DESC`
	if err := r.db.SelectContext(ctx, &statements, query, employeeID, activeOnly, StatementStatusCancelled); err != nil {
		return nil, err
	}

	return statements, nil
}

// ListByTeam lists the non-deleted statements of a team's members with
// author names joined, newest first.
func (r *StatementRepository) ListByTeam(ctx context.Context, teamID int64, activeOnly bool) ([]*Statement, error) {
	var statements []*Statement

	query := `
		SELECT s.id, s.employee_id, s.category, s.body, s.start_date, s.end_date,
		       s.vacation_kind, s.status, s.created_at, s.deleted_at,
		       e.name AS employee_name
		FROM employee_statements s
		JOIN employees e ON s.employee_id = e.id
		WHERE e.team_id = $1 AND s.deleted_at IS NULL
		  AND (NOT $2 OR s.status <> $3)
		ORDER BY s.created_at DESC`
	if err := r.db.SelectContext(ctx, &statements, query, teamID, activeOnly, StatementStatusCancelled); err != nil {
		return nil, err
	}

	return statements, nil
}

// Cancel soft-deletes a statement inside one transaction. The row is
// locked and re-checked before the update: a missing statement returns
// NotFound, an already cancelled one AlreadyCancelled. The authorize
// closure runs on the locked row so the caller can reject the cancel
// before any change is made.
func (r *StatementRepository) Cancel(ctx context.Context, id int64, authorize func(*Statement) error) (*Statement, error) {
	var st Statement

	err := r.db.Transaction(ctx, func(tx *sqlx.Tx) error {
		query := `
			SELECT id, employee_id, category, body, start_date, end_date,
			       vacation_kind, status, created_at, deleted_at
			FROM employee_statements
			WHERE id = $1
			FOR UPDATE`
		err := tx.GetContext(ctx, &st, query, id)
		if err == sql.ErrNoRows {
			return errors.NotFound("statement")
		}
		if err != nil {
			return err
		}

		if st.DeletedAt != nil || st.Status == StatementStatusCancelled {
			return errors.AlreadyCancelled()
		}

		if err := authorize(&st); err != nil {
			return err
		}

		update := `
			UPDATE employee_statements
			SET status = $2, deleted_at = NOW()
			WHERE id = $1
			RETURNING deleted_at`
		if err := tx.QueryRowxContext(ctx, update, id, StatementStatusCancelled).Scan(&st.DeletedAt); err != nil {
			return err
		}
		st.Status = StatementStatusCancelled

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &st, nil
}
