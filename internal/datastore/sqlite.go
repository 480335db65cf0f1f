package datastore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	bferrors "github.com/lepinkainen/bookflow/internal/errors"
)

// SQLiteStore implements the Store interface for a local SQLite file.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore creates a new SQLiteStore instance
func NewSQLiteStore(dbPath string) *SQLiteStore {
	return &SQLiteStore{
		dbPath: dbPath,
	}
}

// Connect opens a connection to the SQLite database
func (s *SQLiteStore) Connect(ctx context.Context) error {
	db, err := sql.Open("sqlite", s.dbPath)
	if err != nil {
		return bferrors.NewPersistenceError("connect", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return bferrors.NewPersistenceError("connect", err)
	}
	s.db = db
	return nil
}

// CreateTable ensures the destination table exists
func (s *SQLiteStore) CreateTable(ctx context.Context, ddl string) error {
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return bferrors.NewPersistenceError("create table", err)
	}
	return nil
}

// BatchInsert inserts all rows inside a single transaction.
func (s *SQLiteStore) BatchInsert(ctx context.Context, table string, columns []string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return bferrors.NewPersistenceError("begin transaction", err)
	}
	defer func() {
		// Rollback is a no-op after a successful commit
		_ = tx.Rollback()
	}()

	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = "?"
	}
	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return bferrors.NewPersistenceError("prepare insert", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return bferrors.NewPersistenceError("insert", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return bferrors.NewPersistenceError("commit", err)
	}

	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
