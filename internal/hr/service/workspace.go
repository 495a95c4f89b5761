package service

import (
	"context"
	"time"

	"github.com/hrdesk/hrdesk-backend/internal/hr/repository"
	"github.com/hrdesk/hrdesk-backend/pkg/activity"
	"github.com/hrdesk/hrdesk-backend/pkg/errors"
	"github.com/hrdesk/hrdesk-backend/pkg/logger"
)

// Calendar windows
const (
	CalendarWindowDay  = "day"
	CalendarWindowWeek = "week"
)

// CertificateOrder is the outcome of an income certificate request.
// Ready orders carry the document link; the rest are queued for the
// back office.
type CertificateOrder struct {
	Year  int                         `json:"year"`
	Ready bool                        `json:"ready"`
	Link  *repository.CertificateLink `json:"link,omitempty"`
}

// WorkspaceService covers the actor's personal workspace: tracker
// tasks, calendar, and document orders.
type WorkspaceService struct {
	tracker      *repository.TrackerRepository
	calendar     *repository.CalendarRepository
	certificates *repository.CertificateRepository
	employees    *repository.EmployeeRepository
	intents      *activity.Log
	logger       *logger.Logger
}

// NewWorkspaceService creates a new workspace service
func NewWorkspaceService(
	tracker *repository.TrackerRepository,
	calendar *repository.CalendarRepository,
	certificates *repository.CertificateRepository,
	employees *repository.EmployeeRepository,
	intents *activity.Log,
	log *logger.Logger,
) *WorkspaceService {
	return &WorkspaceService{
		tracker:      tracker,
		calendar:     calendar,
		certificates: certificates,
		employees:    employees,
		intents:      intents,
		logger:       log,
	}
}

// Tasks lists the actor's open tracker tasks for a sprint. Sprints are
// numbered by ISO week; without an explicit sprint the current week is
// used.
func (s *WorkspaceService) Tasks(ctx context.Context, actorID int64, sprint *int, limit int) ([]*repository.Task, error) {
	sprintNum := 0
	if sprint != nil {
		sprintNum = *sprint
	} else {
		_, sprintNum = time.Now().ISOWeek()
	}
	if sprintNum < 1 || sprintNum > 53 {
		return nil, errors.Validation(map[string]string{
			"sprint": "must be an ISO week number between 1 and 53",
		})
	}

	s.intents.Record(actorID, "workspace.tasks", "")

	return s.tracker.OpenForSprint(ctx, actorID, sprintNum, limit)
}

// Events lists the actor's calendar entries for today or the coming week
func (s *WorkspaceService) Events(ctx context.Context, actorID int64, window string) ([]*repository.CalendarEvent, error) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var to time.Time
	switch window {
	case CalendarWindowDay, "":
		to = from.AddDate(0, 0, 1)
	case CalendarWindowWeek:
		to = from.AddDate(0, 0, 7)
	default:
		return nil, errors.Validation(map[string]string{
			"window": "must be one of: day, week",
		})
	}

	s.intents.Record(actorID, "workspace.events", window)

	return s.calendar.ForEmployeeBetween(ctx, actorID, from, to)
}

// OrderCertificate requests an income certificate for a year. The year
// must overlap the actor's employment. An already prepared certificate
// is returned directly; otherwise the order is queued.
func (s *WorkspaceService) OrderCertificate(ctx context.Context, actorID int64, year int) (*CertificateOrder, error) {
	now := time.Now()
	if year < 1900 || year > now.Year() {
		return nil, errors.Validation(map[string]string{
			"year": "must not be in the future",
		})
	}

	emp, err := s.employees.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	if emp.HiredAt != nil && year < emp.HiredAt.Year() {
		return nil, errors.Validation(map[string]string{
			"year": "precedes the employment start",
		})
	}
	if emp.FiredAt != nil && year > emp.FiredAt.Year() {
		return nil, errors.Validation(map[string]string{
			"year": "follows the employment end",
		})
	}

	link, err := s.certificates.ForEmployeeYear(ctx, actorID, year)
	if err != nil {
		return nil, err
	}

	s.intents.Record(actorID, "workspace.certificate", "")

	order := &CertificateOrder{Year: year}
	if link != nil {
		order.Ready = true
		order.Link = link
		return order, nil
	}

	s.logger.Info().
		Int64("employee_id", actorID).
		Int("year", year).
		Msg("income certificate ordered")

	return order, nil
}
