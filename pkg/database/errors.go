package database

import (
	"strings"

	"github.com/lib/pq"

	"github.com/hrdesk/hrdesk-backend/pkg/errors"
)

// MapPQError converts a PostgreSQL error to an AppError with meaningful messages.
// Returns nil if the error is not a pq.Error.
func MapPQError(err error) *errors.AppError {
	pqErr, ok := err.(*pq.Error)
	if !ok {
		return nil
	}

	switch pqErr.Code {
	// Check constraint violation (23514)
	case "23514":
		return mapCheckConstraint(pqErr)

	// Unique constraint violation (23505)
	case "23505":
		return errors.Conflict(formatConstraintMessage(pqErr))

	// Foreign key violation (23503)
	case "23503":
		return errors.BadRequest("referenced record does not exist")

	// Not null violation (23502)
	case "23502":
		col := pqErr.Column
		if col == "" {
			col = "required field"
		}
		return errors.Validation(map[string]string{
			col: "must not be empty",
		})

	default:
		return nil
	}
}

// mapCheckConstraint maps specific CHECK constraint names to user-friendly messages.
func mapCheckConstraint(pqErr *pq.Error) *errors.AppError {
	constraint := pqErr.Constraint

	switch {
	case strings.Contains(constraint, "statement_category_valid"):
		return errors.Validation(map[string]string{
			"category": "must be one of: leave, termination, other",
		})

	case strings.Contains(constraint, "statement_status_valid"):
		return errors.Validation(map[string]string{
			"status": "must be one of: new, cancelled",
		})

	case strings.Contains(constraint, "leave_kind_valid"):
		return errors.Validation(map[string]string{
			"kind": "must be one of: regular, unpaid",
		})

	case strings.Contains(constraint, "scope_valid"):
		return errors.Validation(map[string]string{
			"scope": "must be one of: ALL, SELF, USER, TEAM, TEAM_ONLY, SUBORDINATES",
		})

	default:
		return errors.BadRequest("data validation failed: " + constraint)
	}
}

// formatConstraintMessage creates a user-friendly message for unique constraint violations.
func formatConstraintMessage(pqErr *pq.Error) string {
	constraint := pqErr.Constraint

	switch {
	case strings.Contains(constraint, "external_id"):
		return "an employee with this external id already exists"
	case strings.Contains(constraint, "email"):
		return "an employee with this email already exists"
	case strings.Contains(constraint, "access_rules"):
		return "an identical access rule already exists"
	default:
		return "a record with these values already exists"
	}
}
