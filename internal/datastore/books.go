package datastore

import (
	"strings"

	"github.com/lepinkainen/bookflow/internal/transform"
)

// BooksTable is the name of the destination table.
const BooksTable = "books"

// BooksDDL creates the destination table. Same SQL works for SQLite and
// Postgres. No primary key or uniqueness constraint: the pipeline appends,
// deduplication is an external policy choice.
const BooksDDL = `CREATE TABLE IF NOT EXISTS books (
	title TEXT NOT NULL,
	authors TEXT NOT NULL,
	published_date TEXT NOT NULL
)`

// BooksColumns fixes the insert column order for the books table.
var BooksColumns = []string{"title", "authors", "published_date"}

// maxColumnLen clips the joined authors column. Individual fields are already
// clipped by the transformer, but the join can still exceed the limit.
const maxColumnLen = 200

// BookRow converts a record into a row matching BooksColumns.
// Authors are stored as one comma-joined text value, clipped to maxColumnLen runes.
func BookRow(record transform.Record) []any {
	return []any{
		record.Title,
		clip(strings.Join(record.Authors, ",")),
		record.PublishedDate,
	}
}

// clip truncates a string to maxColumnLen runes.
func clip(s string) string {
	runes := []rune(s)
	if len(runes) <= maxColumnLen {
		return s
	}
	return string(runes[:maxColumnLen])
}

// BookRows converts a batch of records, preserving order.
func BookRows(records []transform.Record) [][]any {
	rows := make([][]any, 0, len(records))
	for _, record := range records {
		rows = append(rows, BookRow(record))
	}
	return rows
}
