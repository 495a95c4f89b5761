// Package access decides whether an employee may read another employee's
// or team's data. Decisions are evaluated per call against the live
// directory and rule table; nothing is cached.
package access

import (
	"context"

	"github.com/hrdesk/hrdesk-backend/internal/hr/repository"
	"github.com/hrdesk/hrdesk-backend/pkg/logger"
)

// Permissions understood by the resolver
const (
	PermReadSelf               = "READ_SELF"
	PermReadColleague          = "READ_COLLEAGUE"
	PermReadTeam               = "READ_TEAM"
	PermViewSalarySubordinates = "VIEW_SALARY_SUBORDINATES"
)

// Target identifies whose data is being read. Either field may be unset.
type Target struct {
	EmployeeID *int64
	TeamID     *int64
}

// EmployeeDirectory resolves reporting relations
type EmployeeDirectory interface {
	IsManagerOf(ctx context.Context, managerID, employeeID int64) (bool, error)
}

// TeamDirectory resolves declared team leadership
type TeamDirectory interface {
	IsLead(ctx context.Context, employeeID, teamID int64) (bool, error)
}

// RuleSource answers rule table lookups
type RuleSource interface {
	HasGrant(ctx context.Context, actorID int64, action string, target repository.RuleTarget) (bool, error)
}

// request carries one authorization question through the predicate chain
type request struct {
	actorID int64
	action  string
	target  Target
}

// predicate answers one way a request can be allowed. Returning
// (false, nil) passes the question to the next predicate.
type predicate func(ctx context.Context, req *request) (bool, error)

// Resolver evaluates access questions against an ordered predicate chain,
// short-circuiting on the first allow.
type Resolver struct {
	employees EmployeeDirectory
	teams     TeamDirectory
	rules     RuleSource
	logger    *logger.Logger
	chain     []predicate
}

// NewResolver creates a resolver over the given directories
func NewResolver(employees EmployeeDirectory, teams TeamDirectory, rules RuleSource, log *logger.Logger) *Resolver {
	r := &Resolver{
		employees: employees,
		teams:     teams,
		rules:     rules,
		logger:    log.WithComponent("access"),
	}
	r.chain = []predicate{
		r.selfRead,
		r.managementShortcut,
		r.ruleGrant,
		r.colleagueFallback,
	}
	return r
}

// Authorize reports whether the actor may perform the action on the
// target. A deny is (false, nil); errors are returned only for datastore
// failures.
func (r *Resolver) Authorize(ctx context.Context, actorID int64, action string, target Target) (bool, error) {
	req := &request{
		actorID: actorID,
		action:  action,
		target:  target,
	}

	for _, p := range r.chain {
		allowed, err := p(ctx, req)
		if err != nil {
			return false, err
		}
		if allowed {
			return true, nil
		}
	}

	r.logger.Debug().
		Int64("actor_id", actorID).
		Str("action", action).
		Msg("access denied")

	return false, nil
}

// selfRead allows READ_SELF when the target is the actor
func (r *Resolver) selfRead(_ context.Context, req *request) (bool, error) {
	if req.action != PermReadSelf {
		return false, nil
	}
	return req.target.EmployeeID != nil && *req.target.EmployeeID == req.actorID, nil
}

// managementShortcut allows team and subordinate-salary reads for direct
// managers of the target employee and, when a team is explicitly named,
// for its declared lead, without consulting the rule table.
func (r *Resolver) managementShortcut(ctx context.Context, req *request) (bool, error) {
	if req.action != PermReadTeam && req.action != PermViewSalarySubordinates {
		return false, nil
	}

	if req.target.EmployeeID != nil {
		manages, err := r.employees.IsManagerOf(ctx, req.actorID, *req.target.EmployeeID)
		if err != nil {
			return false, err
		}
		if manages {
			return true, nil
		}
	}

	if req.target.TeamID != nil {
		leads, err := r.teams.IsLead(ctx, req.actorID, *req.target.TeamID)
		if err != nil {
			return false, err
		}
		if leads {
			return true, nil
		}
	}

	return false, nil
}

// ruleGrant consults the access rule table
func (r *Resolver) ruleGrant(ctx context.Context, req *request) (bool, error) {
	return r.rules.HasGrant(ctx, req.actorID, req.action, repository.RuleTarget{
		EmployeeID: req.target.EmployeeID,
		TeamID:     req.target.TeamID,
	})
}

// colleagueFallback keeps basic directory data readable by everyone
func (r *Resolver) colleagueFallback(_ context.Context, req *request) (bool, error) {
	return req.action == PermReadColleague, nil
}
