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

// TeamMember is one row of a team overview
type TeamMember struct {
	Employee       *repository.Employee `json:"employee"`
	NextBirthday   *time.Time           `json:"next_birthday,omitempty"`
	DaysToBirthday *int                 `json:"days_to_birthday,omitempty"`
	Salary         *repository.Salary   `json:"salary,omitempty"`
}

// TeamOverview is a team with its member roster
type TeamOverview struct {
	Team    *repository.Team `json:"team"`
	Members []*TeamMember    `json:"members"`
}

// TeamService answers team roster and team search questions
type TeamService struct {
	teams     *repository.TeamRepository
	employees *repository.EmployeeRepository
	salaries  *repository.SalaryRepository
	resolver  *access.Resolver
	publisher *events.HREventPublisher
	intents   *activity.Log
	logger    *logger.Logger
}

// NewTeamService creates a new team service
func NewTeamService(
	teams *repository.TeamRepository,
	employees *repository.EmployeeRepository,
	salaries *repository.SalaryRepository,
	resolver *access.Resolver,
	publisher *events.HREventPublisher,
	intents *activity.Log,
	log *logger.Logger,
) *TeamService {
	return &TeamService{
		teams:     teams,
		employees: employees,
		salaries:  salaries,
		resolver:  resolver,
		publisher: publisher,
		intents:   intents,
		logger:    log,
	}
}

// Overview returns the roster of a team with birthday projections.
// Without an explicit team the actor's own team is used. Salaries are
// attached only when the actor holds a subordinate-salary grant for the
// whole team.
func (s *TeamService) Overview(ctx context.Context, actorID int64, teamID *int64) (*TeamOverview, error) {
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

	allowed, err := s.resolver.Authorize(ctx, actorID, access.PermReadTeam, access.Target{TeamID: teamID})
	if err != nil {
		return nil, err
	}
	if !allowed {
		s.publisher.PublishAccessDenied(ctx, actorID, access.PermReadTeam, 0, *teamID)
		return nil, errors.Forbidden("not allowed to read this team")
	}

	team, err := s.teams.GetByID(ctx, *teamID)
	if err != nil {
		return nil, err
	}

	members, err := s.employees.TeamMembers(ctx, *teamID)
	if err != nil {
		return nil, err
	}

	salariesVisible, err := s.resolver.Authorize(ctx, actorID, access.PermViewSalarySubordinates, access.Target{TeamID: teamID})
	if err != nil {
		return nil, err
	}

	var salaryByEmployee map[int64]*repository.Salary
	now := time.Now()
	if salariesVisible {
		current, err := s.salaries.CurrentForTeam(ctx, *teamID, nil, now)
		if err != nil {
			return nil, err
		}
		salaryByEmployee = make(map[int64]*repository.Salary, len(current))
		for _, sal := range current {
			salaryByEmployee[sal.EmployeeID] = sal
		}
	}

	overview := &TeamOverview{
		Team:    team,
		Members: make([]*TeamMember, 0, len(members)),
	}
	for _, emp := range members {
		member := &TeamMember{Employee: emp}

		if emp.BirthDate != nil {
			next := leave.NextBirthday(*emp.BirthDate, now)
			days := leave.InclusiveDays(now, next) - 1
			member.NextBirthday = &next
			member.DaysToBirthday = &days
		}

		if salaryByEmployee != nil {
			member.Salary = salaryByEmployee[emp.ID]
		}

		overview.Members = append(overview.Members, member)
	}

	s.intents.Record(actorID, "team.overview", team.Name)

	return overview, nil
}

// Search finds teams by name fragment and lists their members without
// salary data. Member rosters stay colleague-visible.
func (s *TeamService) Search(ctx context.Context, actorID int64, fragment string, limit int) ([]*TeamOverview, error) {
	teams, err := s.teams.SearchByName(ctx, fragment, limit)
	if err != nil {
		return nil, err
	}

	results := make([]*TeamOverview, 0, len(teams))
	for _, team := range teams {
		members, err := s.employees.TeamMembers(ctx, team.ID)
		if err != nil {
			return nil, err
		}

		overview := &TeamOverview{
			Team:    team,
			Members: make([]*TeamMember, 0, len(members)),
		}
		for _, emp := range members {
			overview.Members = append(overview.Members, &TeamMember{Employee: emp})
		}
		results = append(results, overview)
	}

	s.intents.Record(actorID, "team.search", fragment)

	return results, nil
}
