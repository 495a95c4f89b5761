package repository

import (
	"context"
	"time"

	"github.com/hrdesk/hrdesk-backend/pkg/database"
)

// Task represents an assignment in the internal task tracker
type Task struct {
	ID         int64      `db:"id" json:"id"`
	EmployeeID int64      `db:"employee_id" json:"employee_id"`
	Title      string     `db:"title" json:"title"`
	Status     string     `db:"status" json:"status"`
	Sprint     int        `db:"sprint" json:"sprint"`
	Deadline   *time.Time `db:"deadline" json:"deadline,omitempty"`
}

// TrackerRepository handles task tracker persistence
type TrackerRepository struct {
	db *database.DB
}

// NewTrackerRepository creates a new tracker repository
func NewTrackerRepository(db *database.DB) *TrackerRepository {
	return &TrackerRepository{db: db}
}

// OpenForSprint lists an employee's unfinished tasks in a sprint,
// earliest deadline first with undated tasks last.
func (r *TrackerRepository) OpenForSprint(ctx context.Context, employeeID int64, sprint, limit int) ([]*Task, error) {
	if limit <= 0 {
		limit = 20
	}

	var tasks []*Task

	query := `
		SELECT id, employee_id, title, status, sprint, deadline
		FROM task_tracker_tasks
		WHERE employee_id = $1 AND sprint = $2 AND status <> 'done'
		ORDER BY deadline ASC NULLS LAST, id
		LIMIT $3`
	if err := r.db.SelectContext(ctx, &tasks, query, employeeID, sprint, limit); err != nil {
		return nil, err
	}

	return tasks, nil
}
