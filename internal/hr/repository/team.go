package repository

import (
	"context"
	"database/sql"

	"github.com/hrdesk/hrdesk-backend/pkg/database"
	"github.com/hrdesk/hrdesk-backend/pkg/errors"
)

// Team represents an organizational unit
type Team struct {
	ID     int64  `db:"id" json:"id"`
	Name   string `db:"name" json:"name"`
	LeadID *int64 `db:"lead_id" json:"lead_id,omitempty"`

	// Joined fields. LeadName stays nil for dangling lead references.
	LeadName *string `db:"lead_name" json:"lead_name,omitempty"`
}

// TeamRepository handles team persistence
type TeamRepository struct {
	db *database.DB
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *database.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

const teamColumns = `
	t.id, t.name, t.lead_id,
	l.name AS lead_name`

const teamJoins = `
	FROM teams t
	LEFT JOIN employees l ON t.lead_id = l.id`

// GetByID gets a team by ID with the lead's name joined
func (r *TeamRepository) GetByID(ctx context.Context, id int64) (*Team, error) {
	var team Team

	query := `SELECT` + teamColumns + teamJoins + ` WHERE t.id = $1`
	err := r.db.GetContext(ctx, &team, query, id)

	if err == sql.ErrNoRows {
		return nil, errors.NotFound("team")
	}
	if err != nil {
		return nil, err
	}

	return &team, nil
}

// SearchByName finds teams whose name contains the fragment. An
// all-digit fragment also matches the team id exactly.
func (r *TeamRepository) SearchByName(ctx context.Context, fragment string, limit int) ([]*Team, error) {
	if limit <= 0 {
		limit = 20
	}

	var teams []*Team

	query := `SELECT` + teamColumns + teamJoins + `
		WHERE t.name ILIKE $1 OR (CAST(t.id AS TEXT) = $2)
		ORDER BY t.name
		LIMIT $3`
	idTerm := ""
	if allDigits(fragment) {
		idTerm = fragment
	}
	if err := r.db.SelectContext(ctx, &teams, query, "%"+fragment+"%", idTerm, limit); err != nil {
		return nil, err
	}

	return teams, nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// IsLead reports whether the employee is the declared lead of the team
func (r *TeamRepository) IsLead(ctx context.Context, employeeID, teamID int64) (bool, error) {
	var exists bool

	query := `SELECT EXISTS(SELECT 1 FROM teams WHERE id = $1 AND lead_id = $2)`
	if err := r.db.GetContext(ctx, &exists, query, teamID, employeeID); err != nil {
		return false, err
	}

	return exists, nil
}
