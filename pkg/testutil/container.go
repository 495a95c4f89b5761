// Package testutil provides testing utilities for the hrdesk backend.
// It includes a PostgreSQL testcontainer, a shared integration suite,
// mock factories, and common test fixtures.
package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// PostgresContainer wraps a testcontainers PostgreSQL instance
type PostgresContainer struct {
	*postgres.PostgresContainer
	DSN string
}

// PostgresContainerConfig configures the test PostgreSQL container
type PostgresContainerConfig struct {
	Database string
	Username string
	Password string
	Image    string // Optional: defaults to postgres:15-alpine
}

// DefaultPostgresConfig returns sensible defaults for test containers
func DefaultPostgresConfig() PostgresContainerConfig {
	return PostgresContainerConfig{
		Database: "hrdesk_test",
		Username: "test",
		Password: "test",
		Image:    "postgres:15-alpine",
	}
}

// NewPostgresContainer creates a new PostgreSQL test container.
//
// Usage:
//
//	func TestMain(m *testing.M) {
//	    ctx := context.Background()
//	    container, err := testutil.NewPostgresContainer(ctx, testutil.DefaultPostgresConfig())
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer container.Terminate(ctx)
//
//	    code := m.Run()
//	    os.Exit(code)
//	}
func NewPostgresContainer(ctx context.Context, cfg PostgresContainerConfig) (*PostgresContainer, error) {
	if cfg.Image == "" {
		cfg.Image = "postgres:15-alpine"
	}
	if cfg.Database == "" {
		cfg.Database = "hrdesk_test"
	}
	if cfg.Username == "" {
		cfg.Username = "test"
	}
	if cfg.Password == "" {
		cfg.Password = "test"
	}

	container, err := postgres.RunContainer(ctx,
		testcontainers.WithImage(cfg.Image),
		postgres.WithDatabase(cfg.Database),
		postgres.WithUsername(cfg.Username),
		postgres.WithPassword(cfg.Password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	return &PostgresContainer{
		PostgresContainer: container,
		DSN:               dsn,
	}, nil
}

// Connect returns a sqlx.DB connection to the container
func (c *PostgresContainer) Connect(ctx context.Context) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", c.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}
	return db, nil
}

// Terminate stops and removes the container
func (c *PostgresContainer) Terminate(ctx context.Context) error {
	return c.PostgresContainer.Terminate(ctx)
}

// CreateCoreSchema creates the HR tables mastered by the upstream system.
// Service-owned tables are created by repository.EnsureSchema.
func (c *PostgresContainer) CreateCoreSchema(ctx context.Context, db *sqlx.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS teams (
			id      BIGSERIAL PRIMARY KEY,
			name    TEXT NOT NULL,
			lead_id BIGINT
		);

		CREATE TABLE IF NOT EXISTS employees (
			id          BIGSERIAL PRIMARY KEY,
			external_id TEXT UNIQUE,
			name        TEXT NOT NULL,
			email       TEXT UNIQUE,
			phone       TEXT,
			position    TEXT,
			hired_at    DATE,
			fired_at    DATE,
			team_id     BIGINT REFERENCES teams(id),
			manager_id  BIGINT REFERENCES employees(id),
			is_active   BOOLEAN NOT NULL DEFAULT TRUE,
			gender      TEXT,
			birth_date  DATE
		);

		CREATE TABLE IF NOT EXISTS salaries (
			id             BIGSERIAL PRIMARY KEY,
			employee_id    BIGINT NOT NULL REFERENCES employees(id),
			amount         NUMERIC(12,2) NOT NULL,
			currency       TEXT NOT NULL DEFAULT 'EUR',
			effective_from DATE NOT NULL,
			effective_to   DATE
		);

		CREATE TABLE IF NOT EXISTS leaves (
			id          BIGSERIAL PRIMARY KEY,
			employee_id BIGINT NOT NULL REFERENCES employees(id),
			start_date  DATE NOT NULL,
			end_date    DATE NOT NULL,
			kind        TEXT NOT NULL DEFAULT 'regular',
			status      TEXT NOT NULL DEFAULT 'pending',
			CONSTRAINT leave_kind_valid CHECK (kind IN ('regular', 'unpaid'))
		);

		CREATE TABLE IF NOT EXISTS access_rules (
			id                 BIGSERIAL PRIMARY KEY,
			employee_id        BIGINT NOT NULL REFERENCES employees(id),
			action             TEXT NOT NULL,
			scope              TEXT NOT NULL,
			target_employee_id BIGINT,
			team_id            BIGINT,
			allow              BOOLEAN NOT NULL DEFAULT TRUE,
			CONSTRAINT scope_valid CHECK (scope IN ('ALL', 'SELF', 'USER', 'TEAM', 'TEAM_ONLY', 'SUBORDINATES'))
		);
	`

	_, err := db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create core schema: %w", err)
	}

	return nil
}
