package repository

import (
	"context"
	"fmt"

	"github.com/hrdesk/hrdesk-backend/pkg/database"
)

// serviceTables are the tables this service owns and creates itself.
// Employee, team, salary, leave and access rule data is mastered by the
// upstream HR system and assumed to exist.
var serviceTables = []string{
	`CREATE TABLE IF NOT EXISTS employee_statements (
		id            BIGSERIAL PRIMARY KEY,
		employee_id   BIGINT NOT NULL,
		category      TEXT NOT NULL,
		body          TEXT NOT NULL,
		start_date    DATE,
		end_date      DATE,
		vacation_kind TEXT,
		status        TEXT NOT NULL DEFAULT 'new',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		deleted_at    TIMESTAMPTZ,
		CONSTRAINT statement_category_valid CHECK (category IN ('leave', 'termination', 'other'))
	)`,
	`CREATE INDEX IF NOT EXISTS idx_statements_employee
		ON employee_statements (employee_id) WHERE deleted_at IS NULL`,
	`CREATE TABLE IF NOT EXISTS task_tracker_tasks (
		id          BIGSERIAL PRIMARY KEY,
		employee_id BIGINT NOT NULL,
		title       TEXT NOT NULL,
		status      TEXT NOT NULL DEFAULT 'open',
		sprint      INT NOT NULL,
		deadline    DATE
	)`,
	`CREATE TABLE IF NOT EXISTS calendar_events (
		id          BIGSERIAL PRIMARY KEY,
		employee_id BIGINT NOT NULL,
		title       TEXT NOT NULL,
		starts_at   TIMESTAMPTZ NOT NULL,
		ends_at     TIMESTAMPTZ NOT NULL,
		location    TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS certificate_links (
		id          BIGSERIAL PRIMARY KEY,
		employee_id BIGINT NOT NULL,
		year        INT NOT NULL,
		url         TEXT NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// EnsureSchema creates the service-owned tables if they do not exist.
// Called once at startup.
func EnsureSchema(ctx context.Context, db *database.DB) error {
	for _, stmt := range serviceTables {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}
