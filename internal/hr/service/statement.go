package service

import (
	"context"
	"strings"
	"time"

	"github.com/hrdesk/hrdesk-backend/internal/hr/access"
	"github.com/hrdesk/hrdesk-backend/internal/hr/events"
	"github.com/hrdesk/hrdesk-backend/internal/hr/repository"
	"github.com/hrdesk/hrdesk-backend/pkg/activity"
	"github.com/hrdesk/hrdesk-backend/pkg/errors"
	"github.com/hrdesk/hrdesk-backend/pkg/logger"
)

// vacationKinds maps accepted spellings to canonical vacation kinds
var vacationKinds = map[string]string{
	"regular":     repository.LeaveKindRegular,
	"unpaid":      repository.LeaveKindUnpaid,
	"own-expense": repository.LeaveKindUnpaid,
}

// StatementService handles the statement lifecycle
type StatementService struct {
	statements *repository.StatementRepository
	employees  *repository.EmployeeRepository
	resolver   *access.Resolver
	publisher  *events.HREventPublisher
	intents    *activity.Log
	logger     *logger.Logger
}

// NewStatementService creates a new statement service
func NewStatementService(
	statements *repository.StatementRepository,
	employees *repository.EmployeeRepository,
	resolver *access.Resolver,
	publisher *events.HREventPublisher,
	intents *activity.Log,
	log *logger.Logger,
) *StatementService {
	return &StatementService{
		statements: statements,
		employees:  employees,
		resolver:   resolver,
		publisher:  publisher,
		intents:    intents,
		logger:     log,
	}
}

// CreateStatementInput carries a statement request before validation
type CreateStatementInput struct {
	Category     string
	Body         string
	StartDate    *time.Time
	EndDate      *time.Time
	VacationKind string
}

// Create validates and files a statement for the actor. Validation runs
// before any insert; a rejected statement leaves no row behind.
func (s *StatementService) Create(ctx context.Context, actorID int64, input CreateStatementInput) (*repository.Statement, error) {
	category := strings.ToLower(strings.TrimSpace(input.Category))
	switch category {
	case repository.StatementCategoryLeave, repository.StatementCategoryTermination, repository.StatementCategoryOther:
	default:
		return nil, errors.Validation(map[string]string{
			"category": "must be one of: leave, termination, other",
		})
	}

	if strings.TrimSpace(input.Body) == "" {
		return nil, errors.Validation(map[string]string{
			"body": "must not be empty",
		})
	}

	var missing []string
	if category == repository.StatementCategoryLeave || category == repository.StatementCategoryTermination {
		if input.StartDate == nil {
			missing = append(missing, "start_date")
		}
		if input.EndDate == nil {
			missing = append(missing, "end_date")
		}
	}

	var vacationKind string
	if category == repository.StatementCategoryLeave {
		kind := strings.ToLower(strings.TrimSpace(input.VacationKind))
		canonical, ok := vacationKinds[kind]
		if !ok {
			missing = append(missing, "vacation_kind")
		} else {
			vacationKind = canonical
		}
	}

	if len(missing) > 0 {
		return nil, errors.MissingFields(missing...)
	}

	if input.StartDate != nil && input.EndDate != nil && input.EndDate.Before(*input.StartDate) {
		return nil, errors.Validation(map[string]string{
			"end_date": "must not precede start_date",
		})
	}

	st := &repository.Statement{
		EmployeeID: actorID,
		Category:   category,
		Body:       input.Body,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
	}

	if category == repository.StatementCategoryLeave {
		st.VacationKind = &vacationKind
	}

	if err := s.statements.Create(ctx, st); err != nil {
		return nil, err
	}

	s.publisher.PublishStatementCreated(ctx, st)
	s.intents.Record(actorID, "statement.create", category)

	s.logger.Info().
		Int64("statement_id", st.ID).
		Int64("employee_id", actorID).
		Str("category", category).
		Msg("statement created")

	return st, nil
}

// ListOwn lists the actor's statements, newest first. With activeOnly
// set, cancelled statements are excluded as well as soft-deleted ones.
func (s *StatementService) ListOwn(ctx context.Context, actorID int64, activeOnly bool) ([]*repository.Statement, error) {
	s.intents.Record(actorID, "statement.list", "self")
	return s.statements.ListByEmployee(ctx, actorID, activeOnly)
}

// ListTeam lists statements filed by members of a team. Without an
// explicit team the actor's own team is used; actors without a team get
// a not-found error rather than a silently empty list.
func (s *StatementService) ListTeam(ctx context.Context, actorID int64, teamID *int64, activeOnly bool) ([]*repository.Statement, error) {
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
		return nil, errors.Forbidden("not allowed to read team statements")
	}

	s.intents.Record(actorID, "statement.list", "team")
	return s.statements.ListByTeam(ctx, *teamID, activeOnly)
}

// Cancel soft-deletes a statement. Allowed for the statement's author,
// their direct manager, and anyone holding team read access to the
// author's team. The whole fetch-check-update sequence runs in one
// transaction.
func (s *StatementService) Cancel(ctx context.Context, actorID, statementID int64) (*repository.Statement, error) {
	st, err := s.statements.Cancel(ctx, statementID, func(st *repository.Statement) error {
		if st.EmployeeID == actorID {
			return nil
		}

		manages, err := s.employees.IsManagerOf(ctx, actorID, st.EmployeeID)
		if err != nil {
			return err
		}
		if manages {
			return nil
		}

		teamID, err := s.employees.TeamID(ctx, st.EmployeeID)
		if err != nil {
			return err
		}
		if teamID != nil {
			allowed, err := s.resolver.Authorize(ctx, actorID, access.PermReadTeam, access.Target{TeamID: teamID})
			if err != nil {
				return err
			}
			if allowed {
				return nil
			}
		}

		return errors.Forbidden("not allowed to cancel this statement")
	})
	if err != nil {
		return nil, err
	}

	s.publisher.PublishStatementCancelled(ctx, st, actorID)
	s.intents.Record(actorID, "statement.cancel", st.Category)

	s.logger.Info().
		Int64("statement_id", st.ID).
		Int64("employee_id", st.EmployeeID).
		Int64("cancelled_by", actorID).
		Msg("statement cancelled")

	return st, nil
}
