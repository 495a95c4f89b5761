package service

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hrdesk/hrdesk-backend/internal/hr/access"
	"github.com/hrdesk/hrdesk-backend/internal/hr/events"
	"github.com/hrdesk/hrdesk-backend/internal/hr/repository"
	"github.com/hrdesk/hrdesk-backend/pkg/activity"
	"github.com/hrdesk/hrdesk-backend/pkg/errors"
	"github.com/hrdesk/hrdesk-backend/pkg/logger"
)

// SalaryStats aggregates current salaries across a team
type SalaryStats struct {
	TeamID   int64           `json:"team_id"`
	Position *string         `json:"position,omitempty"`
	Count    int             `json:"count"`
	Average  decimal.Decimal `json:"average"`
	Median   decimal.Decimal `json:"median"`
	Min      decimal.Decimal `json:"min"`
	Max      decimal.Decimal `json:"max"`
}

// SalaryService computes team salary aggregates
type SalaryService struct {
	salaries  *repository.SalaryRepository
	employees *repository.EmployeeRepository
	resolver  *access.Resolver
	publisher *events.HREventPublisher
	intents   *activity.Log
	logger    *logger.Logger
}

// NewSalaryService creates a new salary service
func NewSalaryService(
	salaries *repository.SalaryRepository,
	employees *repository.EmployeeRepository,
	resolver *access.Resolver,
	publisher *events.HREventPublisher,
	intents *activity.Log,
	log *logger.Logger,
) *SalaryService {
	return &SalaryService{
		salaries:  salaries,
		employees: employees,
		resolver:  resolver,
		publisher: publisher,
		intents:   intents,
		logger:    log,
	}
}

// TeamStats aggregates current salaries for a team, optionally narrowed
// to one position. A team without any current salary rows is reported
// as not found rather than as zeroes.
func (s *SalaryService) TeamStats(ctx context.Context, actorID int64, teamID *int64, position *string) (*SalaryStats, error) {
	if teamID == nil {
		ownTeam, err := s.employees.TeamID(ctx, actorID)
		if err != nil {
			return nil, err
		}
		if ownTeam == nil {
			return nil, errors.NotFound("team")
		}
		teamID = ownTeam
	}

	allowed, err := s.resolver.Authorize(ctx, actorID, access.PermViewSalarySubordinates, access.Target{TeamID: teamID})
	if err != nil {
		return nil, err
	}
	if !allowed {
		s.publisher.PublishAccessDenied(ctx, actorID, access.PermViewSalarySubordinates, 0, *teamID)
		return nil, errors.Forbidden("not allowed to read team salaries")
	}

	current, err := s.salaries.CurrentForTeam(ctx, *teamID, position, time.Now())
	if err != nil {
		return nil, err
	}
	if len(current) == 0 {
		return nil, errors.NotFound("salary data")
	}

	amounts := make([]decimal.Decimal, 0, len(current))
	for _, sal := range current {
		amounts = append(amounts, sal.Amount)
	}
	sort.Slice(amounts, func(i, j int) bool { return amounts[i].LessThan(amounts[j]) })

	sum := decimal.Zero
	for _, a := range amounts {
		sum = sum.Add(a)
	}

	stats := &SalaryStats{
		TeamID:   *teamID,
		Position: position,
		Count:    len(amounts),
		Average:  sum.Div(decimal.NewFromInt(int64(len(amounts)))).Round(2),
		Median:   median(amounts),
		Min:      amounts[0],
		Max:      amounts[len(amounts)-1],
	}

	s.intents.Record(actorID, "salary.team_stats", "")

	return stats, nil
}

// median expects amounts sorted ascending
func median(amounts []decimal.Decimal) decimal.Decimal {
	n := len(amounts)
	if n%2 == 1 {
		return amounts[n/2]
	}
	return amounts[n/2-1].Add(amounts[n/2]).Div(decimal.NewFromInt(2)).Round(2)
}
