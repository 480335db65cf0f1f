package datastore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	bferrors "github.com/lepinkainen/bookflow/internal/errors"
)

// PostgresStore implements the Store interface for a Postgres database.
type PostgresStore struct {
	pool *pgxpool.Pool
	dsn  string
}

// NewPostgresStore creates a new PostgresStore for the given connection string.
func NewPostgresStore(dsn string) *PostgresStore {
	return &PostgresStore{
		dsn: dsn,
	}
}

// Connect creates the connection pool and verifies it with a ping.
func (s *PostgresStore) Connect(ctx context.Context) error {
	pool, err := pgxpool.New(ctx, s.dsn)
	if err != nil {
		return bferrors.NewPersistenceError("connect", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return bferrors.NewPersistenceError("connect", err)
	}

	s.pool = pool
	return nil
}

// CreateTable ensures the destination table exists
func (s *PostgresStore) CreateTable(ctx context.Context, ddl string) error {
	if _, err := s.pool.Exec(ctx, ddl); err != nil {
		return bferrors.NewPersistenceError("create table", err)
	}
	return nil
}

// BatchInsert inserts all rows inside a single transaction.
func (s *PostgresStore) BatchInsert(ctx context.Context, table string, columns []string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return bferrors.NewPersistenceError("begin transaction", err)
	}
	defer func() {
		// Rollback is a no-op after a successful commit
		_ = tx.Rollback(ctx)
	}()

	query := pgInsertStatement(table, columns)
	for _, row := range rows {
		if _, err := tx.Exec(ctx, query, row...); err != nil {
			return bferrors.NewPersistenceError("insert", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return bferrors.NewPersistenceError("commit", err)
	}

	return nil
}

// Close closes the connection pool
func (s *PostgresStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

// pgInsertStatement builds an INSERT with numbered placeholders ($1..$n).
func pgInsertStatement(table string, columns []string) string {
	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)
}
