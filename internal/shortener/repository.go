package shortener

import "context"

// Repository is the persistence port for URL records.
// Implementations must hand out a distinct ID for every successful Insert,
// including under concurrent use.
type Repository interface {
	Insert(ctx context.Context, url string) (*URLRecord, error)
	// FindByID returns ErrNotFound if no record has the given ID.
	FindByID(ctx context.Context, id ID) (*URLRecord, error)
}
