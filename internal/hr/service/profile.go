package service

import (
	"context"
	"time"

	"github.com/hrdesk/hrdesk-backend/internal/hr/access"
	"github.com/hrdesk/hrdesk-backend/internal/hr/events"
	"github.com/hrdesk/hrdesk-backend/internal/hr/leave"
	"github.com/hrdesk/hrdesk-backend/internal/hr/repository"
	"github.com/hrdesk/hrdesk-backend/pkg/activity"
	"github.com/hrdesk/hrdesk-backend/pkg/errors"
	"github.com/hrdesk/hrdesk-backend/pkg/logger"
)

// ProfileCard is an employee summary with access-dependent detail
type ProfileCard struct {
	Employee      *repository.Employee `json:"employee"`
	Salary        *repository.Salary   `json:"salary,omitempty"`
	UpcomingLeave []*repository.Leave  `json:"upcoming_leave"`
	LeaveBalance  float64              `json:"leave_balance"`
}

// ProfileService assembles employee profile cards
type ProfileService struct {
	employees *repository.EmployeeRepository
	salaries  *repository.SalaryRepository
	leaves    *repository.LeaveRepository
	resolver  *access.Resolver
	publisher *events.HREventPublisher
	intents   *activity.Log
	logger    *logger.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(
	employees *repository.EmployeeRepository,
	salaries *repository.SalaryRepository,
	leaves *repository.LeaveRepository,
	resolver *access.Resolver,
	publisher *events.HREventPublisher,
	intents *activity.Log,
	log *logger.Logger,
) *ProfileService {
	return &ProfileService{
		employees: employees,
		salaries:  salaries,
		leaves:    leaves,
		resolver:  resolver,
		publisher: publisher,
		intents:   intents,
		logger:    log,
	}
}

// GetCard returns the profile card for an employee. Salary is included
// only for the actor's own card or under a subordinate-salary grant;
// everything else on the card is colleague-visible.
func (s *ProfileService) GetCard(ctx context.Context, actorID, employeeID int64) (*ProfileCard, error) {
	allowed, err := s.resolver.Authorize(ctx, actorID, access.PermReadColleague, access.Target{EmployeeID: &employeeID})
	if err != nil {
		return nil, err
	}
	if !allowed {
		s.publisher.PublishAccessDenied(ctx, actorID, access.PermReadColleague, employeeID, 0)
		return nil, errors.Forbidden("not allowed to read this profile")
	}

	emp, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	card := &ProfileCard{Employee: emp}

	salaryVisible := actorID == employeeID
	if !salaryVisible {
		salaryVisible, err = s.resolver.Authorize(ctx, actorID, access.PermViewSalarySubordinates, access.Target{EmployeeID: &employeeID})
		if err != nil {
			return nil, err
		}
	}
	if salaryVisible {
		card.Salary, err = s.salaries.Current(ctx, employeeID, now)
		if err != nil {
			return nil, err
		}
	}

	card.UpcomingLeave, err = s.leaves.Upcoming(ctx, employeeID, now)
	if err != nil {
		return nil, err
	}

	used, err := s.leaves.UsedDays(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	card.LeaveBalance = leave.AccruedDays(emp.HiredAt, used, now)

	s.intents.Record(actorID, "profile.card", emp.Name)

	return card, nil
}
