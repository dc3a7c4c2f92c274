package book

import (
	"context"
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Service owns book lifecycle rules: id and timestamp assignment,
// partial-update merging and existence checks before mutation.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the requested page of books and the pagination totals.
func (s *Service) List(ctx context.Context, q Query) (ListResult, error) {
	books, total, err := s.repo.List(ctx, q)
	if err != nil {
		return ListResult{}, fmt.Errorf("list books: %w", err)
	}
	return ListResult{
		Books:      books,
		TotalCount: total,
		TotalPages: (total + q.Limit - 1) / q.Limit, // ceiling division
	}, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Book, error) {
	return s.repo.GetByID(ctx, id)
}

// Create assigns a fresh id and timestamps, persists the book and
// returns the complete row so the caller needs no follow-up read.
func (s *Service) Create(ctx context.Context, in CreateInput) (Book, error) {
	id, err := gonanoid.New()
	if err != nil {
		return Book{}, fmt.Errorf("generate book id: %w", err)
	}

	now := time.Now().UTC()
	b := Book{
		ID:            id,
		Title:         in.Title,
		Author:        in.Author,
		PublishedDate: in.PublishedDate,
		NumberOfPages: in.NumberOfPages,
		ISBN:          in.ISBN,
		Genre:         in.Genre,
		Description:   in.Description,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Insert(ctx, b); err != nil {
		return Book{}, fmt.Errorf("insert book: %w", err)
	}
	return b, nil
}

// Update merges the supplied fields over the existing row and refreshes
// updatedAt. Unsupplied fields keep their prior values; id and createdAt
// are immutable.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Book, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Book{}, err
	}

	if in.Title != nil {
		b.Title = *in.Title
	}
	if in.Author != nil {
		b.Author = *in.Author
	}
	if in.PublishedDate != nil {
		b.PublishedDate = *in.PublishedDate
	}
	if in.NumberOfPages != nil {
		b.NumberOfPages = *in.NumberOfPages
	}
	if in.ISBN != nil {
		b.ISBN = in.ISBN
	}
	if in.Genre != nil {
		b.Genre = in.Genre
	}
	if in.Description != nil {
		b.Description = in.Description
	}
	b.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, b); err != nil {
		return Book{}, fmt.Errorf("update book: %w", err)
	}
	return b, nil
}

// Delete removes the book permanently after verifying it exists.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	return nil
}
