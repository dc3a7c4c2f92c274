package book

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a book is not found.
var ErrNotFound = errors.New("book not found")

// Book represents a book record.
type Book struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	PublishedDate string    `json:"publishedDate"`
	NumberOfPages int       `json:"numberOfPages"`
	ISBN          *string   `json:"isbn"`
	Genre         *string   `json:"genre"`
	Description   *string   `json:"description"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Sort fields accepted by List.
const (
	SortByTitle         = "title"
	SortByAuthor        = "author"
	SortByPublishedDate = "publishedDate"
	SortByCreatedAt     = "createdAt"
)

// Query defines filters, ordering and pagination for listing books.
// Filter fields are substring matches; an empty field applies no constraint.
type Query struct {
	Title     string
	Author    string
	Genre     string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// Offset computes the row offset for the requested page.
func (q Query) Offset() int {
	return (q.Page - 1) * q.Limit
}

// ListResult is one page of books plus the pagination totals.
type ListResult struct {
	Books      []Book
	TotalCount int
	TotalPages int
}

// CreateInput holds the client-settable fields for a new book.
// ID and timestamps are assigned by the service, never by the caller.
type CreateInput struct {
	Title         string
	Author        string
	PublishedDate string
	NumberOfPages int
	ISBN          *string
	Genre         *string
	Description   *string
}

// UpdateInput holds a partial field set for an update.
// Nil fields are left untouched.
type UpdateInput struct {
	Title         *string
	Author        *string
	PublishedDate *string
	NumberOfPages *int
	ISBN          *string
	Genre         *string
	Description   *string
}
