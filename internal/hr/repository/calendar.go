package repository

import (
	"context"
	"time"

	"github.com/hrdesk/hrdesk-backend/pkg/database"
)

// CalendarEvent represents a meeting or other scheduled entry
type CalendarEvent struct {
	ID         int64     `db:"id" json:"id"`
	EmployeeID int64     `db:"employee_id" json:"employee_id"`
	Title      string    `db:"title" json:"title"`
	StartsAt   time.Time `db:"starts_at" json:"starts_at"`
	EndsAt     time.Time `db:"ends_at" json:"ends_at"`
	Location   *string   `db:"location" json:"location,omitempty"`
}

// CalendarRepository handles calendar persistence
type CalendarRepository struct {
	db *database.DB
}

// NewCalendarRepository creates a new calendar repository
func NewCalendarRepository(db *database.DB) *CalendarRepository {
	return &CalendarRepository{db: db}
}

// ForEmployeeBetween lists an employee's events overlapping [from, to)
func (r *CalendarRepository) ForEmployeeBetween(ctx context.Context, employeeID int64, from, to time.Time) ([]*CalendarEvent, error) {
	var events []*CalendarEvent

	query := `
		SELECT id, employee_id, title, starts_at, ends_at, location
		FROM calendar_events
		WHERE employee_id = $1 AND starts_at < $3 AND ends_at >= $2
		ORDER BY starts_at`
	if err := r.db.SelectContext(ctx, &events, query, employeeID, from, to); err != nil {
		return nil, err
	}

	return events, nil
}
