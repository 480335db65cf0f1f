// Package transform normalizes raw Books API volumes into flat book records.
// Everything here is pure: no I/O, deterministic output, input order preserved.
package transform

import "github.com/lepinkainen/bookflow/internal/googlebooks"

const (
	// PlaceholderTitle substitutes a missing title.
	PlaceholderTitle = "Unknown Title"
	// PlaceholderDate substitutes a missing publication date.
	PlaceholderDate = "Unknown"

	// maxFieldLen clips free-form text fields for database compatibility.
	maxFieldLen = 200
)

// Record is the normalized book produced for each API result.
type Record struct {
	Title         string
	Authors       []string
	PublishedDate string
}

// Records maps each volume to one Record, substituting placeholders for
// missing fields. Output order matches input order.
func Records(volumes []googlebooks.Volume) []Record {
	records := make([]Record, 0, len(volumes))
	for _, volume := range volumes {
		records = append(records, record(volume))
	}
	return records
}

func record(volume googlebooks.Volume) Record {
	info := volume.VolumeInfo

	title := info.Title
	if title == "" {
		title = PlaceholderTitle
	}

	authors := make([]string, 0, len(info.Authors))
	for _, author := range info.Authors {
		authors = append(authors, truncate(author))
	}

	date := info.PublishedDate
	if date == "" {
		date = PlaceholderDate
	}

	return Record{
		Title:         truncate(title),
		Authors:       authors,
		PublishedDate: date,
	}
}

// truncate clips a string to maxFieldLen runes.
func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= maxFieldLen {
		return s
	}
	return string(runes[:maxFieldLen])
}
