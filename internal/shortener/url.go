package shortener

import "time"

// ID is the store-assigned identifier of a URL record.
type ID uint64

// Code is the fixed-width short form of an ID.
type Code string

// URLRecord is a stored URL. Records are created once and never modified.
type URLRecord struct {
	ID        ID
	URL       string
	CreatedAt time.Time
}

// ShortURL pairs a freshly stored record with its code.
type ShortURL struct {
	URLRecord

	Code Code
}
