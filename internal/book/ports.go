package book

import (
	"context"
)

// Repository defines the contract for book data storage.
type Repository interface {
	// List returns one page of books matching q plus the total match count.
	List(ctx context.Context, q Query) ([]Book, int, error)
	// GetByID returns the book with the given id, or ErrNotFound.
	GetByID(ctx context.Context, id string) (Book, error)
	// Insert persists a fully-populated book row.
	Insert(ctx context.Context, b Book) error
	// Update replaces the row identified by b.ID.
	Update(ctx context.Context, b Book) error
	// Delete removes the row with the given id, or returns ErrNotFound.
	Delete(ctx context.Context, id string) error
}
