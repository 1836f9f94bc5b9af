package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/toldya/internal/server/config"
	"github.com/dmitrijs2005/toldya/internal/server/migrations"
	"github.com/dmitrijs2005/toldya/internal/server/repositories/messages"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends the PostgreSQL-backed repository and runs
// the embedded schema migrations.
type PostgresRepositoryManager struct {
	db *sql.DB
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// OpenPostgres connects with the pgx driver and migrates the schema.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresRepositoryManager, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	m, err := NewPostgresRepositoryManager(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return m, nil
}

// NewPostgresRepositoryManager wraps an open connection and migrates it.
func NewPostgresRepositoryManager(ctx context.Context, db *sql.DB) (*PostgresRepositoryManager, error) {
	m := &PostgresRepositoryManager{db: db}
	if err := m.RunMigrations(ctx); err != nil {
		return nil, fmt.Errorf("migrate postgres: %w", err)
	}
	return m, nil
}

// RunMigrations sets up goose with the embedded migrations and runs them.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, m.db, ".")
}

func (m *PostgresRepositoryManager) Backend() string { return config.StoragePostgres }

func (m *PostgresRepositoryManager) Messages() messages.Repository {
	return messages.NewPostgresRepository(m.db)
}

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}
