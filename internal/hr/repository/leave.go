package repository

import (
	"context"
	"time"

	"github.com/hrdesk/hrdesk-backend/pkg/database"
)

// Leave statuses
const (
	LeaveStatusPending   = "pending"
	LeaveStatusApproved  = "approved"
	LeaveStatusRejected  = "rejected"
	LeaveStatusCancelled = "cancelled"
)

// Leave kinds
const (
	LeaveKindRegular = "regular"
	LeaveKindUnpaid  = "unpaid"
)

// Leave represents a leave record with an inclusive date range
type Leave struct {
	ID         int64     `db:"id" json:"id"`
	EmployeeID int64     `db:"employee_id" json:"employee_id"`
	StartDate  time.Time `db:"start_date" json:"start_date"`
	EndDate    time.Time `db:"end_date" json:"end_date"`
	Kind       string    `db:"kind" json:"kind"`
	Status     string    `db:"status" json:"status"`
}

// LeaveRepository handles leave persistence
type LeaveRepository struct {
	db *database.DB
}

// NewLeaveRepository creates a new leave repository
func NewLeaveRepository(db *database.DB) *LeaveRepository {
	return &LeaveRepository{db: db}
}

// UsedDays returns the total inclusive days of approved leaves of any
// kind. Date ranges are inclusive on both ends.
func (r *LeaveRepository) UsedDays(ctx context.Context, employeeID int64) (float64, error) {
	var used float64

	query := `
		SELECT COALESCE(SUM(end_date - start_date + 1), 0)
		FROM leaves
		WHERE employee_id = $1 AND status = $2`
	if err := r.db.GetContext(ctx, &used, query, employeeID, LeaveStatusApproved); err != nil {
		return 0, err
	}

	return used, nil
}

// Upcoming lists pending and approved leaves that have not ended yet
func (r *LeaveRepository) Upcoming(ctx context.Context, employeeID int64, from time.Time) ([]*Leave, error) {
	var leaves []*Leave

	query := `
		SELECT id, employee_id, start_date, end_date, kind, status
		FROM leaves
		WHERE employee_id = $1
		  AND status IN ($2, $3)
		  AND end_date >= $4
		ORDER BY start_date`
	if err := r.db.SelectContext(ctx, &leaves, query, employeeID, LeaveStatusPending, LeaveStatusApproved, from); err != nil {
		return nil, err
	}

	return leaves, nil
}

// ApprovedDaysWithin returns the total inclusive days of approved leaves
// lying entirely within [from, to].
func (r *LeaveRepository) ApprovedDaysWithin(ctx context.Context, employeeID int64, from, to time.Time) (float64, error) {
	var total float64

	query := `
		SELECT COALESCE(SUM(end_date - start_date + 1), 0)
		FROM leaves
		WHERE employee_id = $1
		  AND status = $2
		  AND start_date >= $3
		  AND end_date <= $4`
	if err := r.db.GetContext(ctx, &total, query, employeeID, LeaveStatusApproved, from, to); err != nil {
		return 0, err
	}

	return total, nil
}

// History lists approved leaves, newest first
func (r *LeaveRepository) History(ctx context.Context, employeeID int64) ([]*Leave, error) {
	var leaves []*Leave

	query := `
		SELECT id, employee_id, start_date, end_date, kind, status
		FROM leaves
		WHERE employee_id = $1 AND status = $2
		ORDER BY start_date DESC`
	if err := r.db.SelectContext(ctx, &leaves, query, employeeID, LeaveStatusApproved); err != nil {
		return nil, err
	}

	return leaves, nil
}
