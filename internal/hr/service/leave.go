package service

import (
	"context"
	"time"

	"github.com/hrdesk/hrdesk-backend/internal/hr/leave"
	"github.com/hrdesk/hrdesk-backend/internal/hr/repository"
	"github.com/hrdesk/hrdesk-backend/pkg/activity"
	"github.com/hrdesk/hrdesk-backend/pkg/errors"
	"github.com/hrdesk/hrdesk-backend/pkg/logger"
)

// LeaveRecord is one entry of a leave history with its computed duration
type LeaveRecord struct {
	Leave *repository.Leave `json:"leave"`
	Days  int               `json:"days"`
}

// BalanceReport is an on-demand vacation balance
type BalanceReport struct {
	Balance  float64 `json:"balance"`
	UsedDays float64 `json:"used_days"`
}

// ForecastRequest asks what the balance will be at a future date
type ForecastRequest struct {
	Target       time.Time
	PlannedDays  *float64
	PlannedStart *time.Time
	PlannedEnd   *time.Time
}

// ForecastReport is a projected vacation balance
type ForecastReport struct {
	Target             time.Time `json:"target"`
	CurrentBalance     float64   `json:"current_balance"`
	ProjectedBalance   float64   `json:"projected_balance"`
	ApprovedFutureDays float64   `json:"approved_future_days"`
	PlannedDays        float64   `json:"planned_days"`
}

// LeaveService answers vacation history and balance questions for the actor
type LeaveService struct {
	leaves    *repository.LeaveRepository
	employees *repository.EmployeeRepository
	intents   *activity.Log
	logger    *logger.Logger
}

// NewLeaveService creates a new leave service
func NewLeaveService(
	leaves *repository.LeaveRepository,
	employees *repository.EmployeeRepository,
	intents *activity.Log,
	log *logger.Logger,
) *LeaveService {
	return &LeaveService{
		leaves:    leaves,
		employees: employees,
		intents:   intents,
		logger:    log,
	}
}

// History lists the actor's approved leaves, newest first
func (s *LeaveService) History(ctx context.Context, actorID int64) ([]*LeaveRecord, error) {
	history, err := s.leaves.History(ctx, actorID)
	if err != nil {
		return nil, err
	}

	records := make([]*LeaveRecord, 0, len(history))
	for _, l := range history {
		records = append(records, &LeaveRecord{
			Leave: l,
			Days:  leave.InclusiveDays(l.StartDate, l.EndDate),
		})
	}

	s.intents.Record(actorID, "leave.history", "")

	return records, nil
}

// Balance returns the actor's accrued vacation balance as of now
func (s *LeaveService) Balance(ctx context.Context, actorID int64) (*BalanceReport, error) {
	emp, err := s.employees.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	used, err := s.leaves.UsedDays(ctx, actorID)
	if err != nil {
		return nil, err
	}

	s.intents.Record(actorID, "leave.balance", "")

	return &BalanceReport{
		Balance:  leave.AccruedDays(emp.HiredAt, used, time.Now()),
		UsedDays: used,
	}, nil
}

// Forecast projects the actor's balance to a future date, deducting
// approved leaves fully inside the window and any leave the actor still
// plans to file, given either as a day count or as an inclusive range.
func (s *LeaveService) Forecast(ctx context.Context, actorID int64, req ForecastRequest) (*ForecastReport, error) {
	now := time.Now()
	if req.Target.Before(now) {
		return nil, errors.Validation(map[string]string{
			"target": "must be a future date",
		})
	}

	planned := 0.0
	switch {
	case req.PlannedDays != nil:
		if *req.PlannedDays < 0 {
			return nil, errors.Validation(map[string]string{
				"planned_days": "must not be negative",
			})
		}
		planned = *req.PlannedDays
	case req.PlannedStart != nil && req.PlannedEnd != nil:
		planned = float64(leave.InclusiveDays(*req.PlannedStart, *req.PlannedEnd))
	case req.PlannedStart != nil:
		return nil, errors.MissingFields("planned_end")
	case req.PlannedEnd != nil:
		return nil, errors.MissingFields("planned_start")
	}

	emp, err := s.employees.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	used, err := s.leaves.UsedDays(ctx, actorID)
	if err != nil {
		return nil, err
	}
	current := leave.AccruedDays(emp.HiredAt, used, now)

	approved, err := s.leaves.ApprovedDaysWithin(ctx, actorID, now, req.Target)
	if err != nil {
		return nil, err
	}

	projected := leave.ForecastBalance(leave.ForecastInput{
		Today:              now,
		Target:             req.Target,
		CurrentBalance:     current,
		ApprovedFutureDays: approved,
		PlannedDays:        planned,
	})

	s.intents.Record(actorID, "leave.forecast", req.Target.Format("2006-01-02"))

	return &ForecastReport{
		Target:             req.Target,
		CurrentBalance:     current,
		ProjectedBalance:   projected,
		ApprovedFutureDays: approved,
		PlannedDays:        planned,
	}, nil
}
