package datastore

import "context"

// Store defines the interface for the destination relational database.
// Implementations must keep the whole BatchInsert inside one transaction so
// a mid-run failure leaves no partial batch.
type Store interface {
	// Connect establishes a connection to the data store
	Connect(ctx context.Context) error

	// CreateTable ensures the destination table exists
	CreateTable(ctx context.Context, ddl string) error

	// BatchInsert inserts rows into the given table in one transaction.
	// Columns fix the insert order; each row must match their count.
	BatchInsert(ctx context.Context, table string, columns []string, rows [][]any) error

	// Close closes the connection to the data store
	Close() error
}
