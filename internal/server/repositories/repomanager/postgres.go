package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/bloglist/internal/dbx"
	"github.com/dmitrijs2005/bloglist/internal/server/migrations"
	"github.com/dmitrijs2005/bloglist/internal/server/repositories/posts"
	"github.com/dmitrijs2005/bloglist/internal/server/repositories/users"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repositories over a
// pgx connection pool exposed as *sql.DB.
type PostgresRepositoryManager struct {
	*dbx.SQLTransactor

	db   *sql.DB
	pool *pgxpool.Pool
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// OpenPostgres creates a pool of at most maxConns connections to dsn and
// verifies it is reachable.
func OpenPostgres(ctx context.Context, dsn string, maxConns int32) (*PostgresRepositoryManager, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	m := NewPostgresRepositoryManager(stdlib.OpenDBFromPool(pool))
	m.pool = pool

	if err := m.Ping(ctx); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return m, nil
}

// NewPostgresRepositoryManager wraps an already opened database.
func NewPostgresRepositoryManager(db *sql.DB) *PostgresRepositoryManager {
	return &PostgresRepositoryManager{SQLTransactor: dbx.NewSQLTransactor(db), db: db}
}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Posts(db dbx.DBTX) posts.Repository {
	return posts.NewPostgresRepository(db)
}

// RunMigrations applies the embedded goose migrations.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, m.db, ".")
}

func (m *PostgresRepositoryManager) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}

func (m *PostgresRepositoryManager) Close() error {
	err := m.db.Close()
	if m.pool != nil {
		m.pool.Close()
	}
	return err
}
