package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// PostgresContainer wraps a PostgreSQL testcontainer
type PostgresContainer struct {
	Container testcontainers.Container
	Pool      *pgxpool.Pool
	DSN       string
}

// NewPostgresContainer creates a new PostgreSQL container for testing
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	ctx := context.Background()

	container, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("test_user"),
		postgres.WithPassword("test_pass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("Failed to start postgres container: %v", err)
	}

	// Get connection string
	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("Failed to get connection string: %v", err)
	}

	// Create connection pool
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("Failed to create connection pool: %v", err)
	}

	// Cleanup on test completion
	t.Cleanup(func() {
		pool.Close()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	pc := &PostgresContainer{
		Container: container,
		Pool:      pool,
		DSN:       dsn,
	}

	// Run migrations
	if err := pc.RunMigrations(ctx); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return pc
}

// RunMigrations applies all database migrations
func (pc *PostgresContainer) RunMigrations(ctx context.Context) error {
	// Initial schema migration
	migrations := []string{
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,

		// Pairing-code allocator tables
		`CREATE TABLE IF NOT EXISTS pairing_code_range (
			id BIGSERIAL PRIMARY KEY,
			left_code INTEGER NOT NULL,
			right_code INTEGER NOT NULL,
			family VARCHAR(255) NOT NULL,
			CHECK (right_code >= left_code)
		)`,
		`CREATE TABLE IF NOT EXISTS taken_pairing_code (
			id BIGSERIAL PRIMARY KEY,
			app_user_id BIGINT NOT NULL,
			val INTEGER NOT NULL,
			creation_time BIGINT NOT NULL,
			family VARCHAR(255) NOT NULL,
			UNIQUE (family, val),
			UNIQUE (family, app_user_id)
		)`,

		// Registered devices
		`CREATE TABLE IF NOT EXISTS app_user (
			id BIGSERIAL PRIMARY KEY,
			external_uid UUID NOT NULL UNIQUE,
			name VARCHAR(255) NOT NULL,
			client_token TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		// Pairing requests
		`CREATE TABLE IF NOT EXISTS pairing_requests (
			id UUID PRIMARY KEY,
			requester_user_id BIGINT NOT NULL REFERENCES app_user(id),
			target_user_id BIGINT NOT NULL REFERENCES app_user(id),
			state VARCHAR(16) NOT NULL DEFAULT 'PENDING',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			expires_at TIMESTAMPTZ NOT NULL,
			resolved_at TIMESTAMPTZ
		)`,

		// Direct messages
		`CREATE TABLE IF NOT EXISTS direct_messages (
			id UUID PRIMARY KEY,
			sender_user_id BIGINT NOT NULL REFERENCES app_user(id),
			recipient_user_id BIGINT NOT NULL REFERENCES app_user(id),
			body TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			delivered_at TIMESTAMPTZ
		)`,

		// Indexes
		`CREATE INDEX IF NOT EXISTS idx_pcr_family_right ON pairing_code_range(family, right_code)`,
		`CREATE INDEX IF NOT EXISTS idx_pcr_family_left ON pairing_code_range(family, left_code)`,
		`CREATE INDEX IF NOT EXISTS idx_tpc_family_creation ON taken_pairing_code(family, creation_time)`,
		`CREATE INDEX IF NOT EXISTS idx_pairing_requests_expiry ON pairing_requests(state, expires_at)`,
		`CREATE INDEX IF NOT EXISTS idx_direct_messages_recipient ON direct_messages(recipient_user_id, created_at)`,
	}

	for _, sql := range migrations {
		if _, err := pc.Pool.Exec(ctx, sql); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

// CleanTables truncates all tables for test isolation
func (pc *PostgresContainer) CleanTables(ctx context.Context) error {
	tables := []string{
		"direct_messages",
		"pairing_requests",
		"taken_pairing_code",
		"pairing_code_range",
		"app_user",
	}

	for _, table := range tables {
		if _, err := pc.Pool.Exec(ctx, fmt.Sprintf("TRUNCATE %s CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}

	return nil
}
