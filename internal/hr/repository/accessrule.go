package repository

import (
	"context"

	"github.com/hrdesk/hrdesk-backend/pkg/database"
)

// Access rule scopes
const (
	ScopeAll          = "ALL"
	ScopeSelf         = "SELF"
	ScopeUser         = "USER"
	ScopeTeam         = "TEAM"
	ScopeTeamOnly     = "TEAM_ONLY"
	ScopeSubordinates = "SUBORDINATES"
)

// RuleTarget identifies what a rule lookup is evaluated against
type RuleTarget struct {
	EmployeeID *int64
	TeamID     *int64
}

// AccessRuleRepository handles access rule persistence
type AccessRuleRepository struct {
	db *database.DB
}

// NewAccessRuleRepository creates a new access rule repository
func NewAccessRuleRepository(db *database.DB) *AccessRuleRepository {
	return &AccessRuleRepository{db: db}
}

// HasGrant reports whether an allow rule of the actor matches the action
// and target. Scope semantics: ALL and SUBORDINATES match unconditionally,
// SELF matches when the target employee is the actor, USER matches the
// rule's named employee, TEAM and TEAM_ONLY match the rule's team.
func (r *AccessRuleRepository) HasGrant(ctx context.Context, actorID int64, action string, target RuleTarget) (bool, error) {
	var exists bool

	query := `
		SELECT EXISTS(
			SELECT 1 FROM access_rules
			WHERE employee_id = $1
			  AND action = $2
			  AND allow
			  AND (
				scope = 'ALL'
				OR scope = 'SUBORDINATES'
				OR (scope = 'SELF' AND $3::bigint = employee_id)
				OR (scope = 'USER' AND target_employee_id = $3)
				OR (scope IN ('TEAM', 'TEAM_ONLY') AND team_id = $4)
			  )
		)`
	if err := r.db.GetContext(ctx, &exists, query, actorID, action, target.EmployeeID, target.TeamID); err != nil {
		return false, err
	}

	return exists, nil
}
