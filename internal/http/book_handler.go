package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"bookshelf/internal/book"

	"github.com/go-chi/chi/v5"
)

const maxPageSize = 100

type BookHandler struct {
	svc *book.Service
	log *slog.Logger
}

func NewBookHandler(svc *book.Service, log *slog.Logger) *BookHandler {
	return &BookHandler{svc: svc, log: log}
}

type createBookRequest struct {
	Title         string  `json:"title" validate:"required,max=255"`
	Author        string  `json:"author" validate:"required,max=255"`
	PublishedDate string  `json:"publishedDate" validate:"required,bookdate"`
	NumberOfPages int     `json:"numberOfPages" validate:"required,gt=0"`
	ISBN          *string `json:"isbn"`
	Genre         *string `json:"genre"`
	Description   *string `json:"description"`
}

type updateBookRequest struct {
	Title         *string `json:"title" validate:"omitnil,min=1,max=255"`
	Author        *string `json:"author" validate:"omitnil,min=1,max=255"`
	PublishedDate *string `json:"publishedDate" validate:"omitnil,bookdate"`
	NumberOfPages *int    `json:"numberOfPages" validate:"omitnil,gt=0"`
	ISBN          *string `json:"isbn"`
	Genre         *string `json:"genre"`
	Description   *string `json:"description"`
}

type listBooksQuery struct {
	Title     string `validate:"omitempty,max=255"`
	Author    string `validate:"omitempty,max=255"`
	Genre     string `validate:"omitempty,max=255"`
	SortBy    string `validate:"omitempty,oneof=title author publishedDate createdAt"`
	SortOrder string `validate:"omitempty,oneof=asc desc"`
	Page      int    `validate:"omitempty,gt=0"`
	Limit     int    `validate:"omitempty,gt=0"`
}

func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	q := listBooksQuery{
		Title:     values.Get("title"),
		Author:    values.Get("author"),
		Genre:     values.Get("genre"),
		SortBy:    values.Get("sortBy"),
		SortOrder: values.Get("sortOrder"),
	}

	var parseErrs []ValidationError
	q.Page = parsePositiveInt(values.Get("page"), "page", &parseErrs)
	q.Limit = parsePositiveInt(values.Get("limit"), "limit", &parseErrs)

	if errs := append(parseErrs, ValidateStruct(q)...); len(errs) > 0 {
		JSONError(w, http.StatusBadRequest, joinValidationErrors(errs))
		return
	}

	if q.Page == 0 {
		q.Page = 1
	}
	if q.Limit == 0 {
		q.Limit = 10
	}
	if q.Limit > maxPageSize {
		q.Limit = maxPageSize
	}
	if q.SortBy == "" {
		q.SortBy = book.SortByCreatedAt
	}
	if q.SortOrder == "" {
		q.SortOrder = "desc"
	}

	result, err := h.svc.List(r.Context(), book.Query{
		Title:     q.Title,
		Author:    q.Author,
		Genre:     q.Genre,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
		Page:      q.Page,
		Limit:     q.Limit,
	})
	if err != nil {
		h.log.Error("listing books failed", "error", err)
		JSONError(w, http.StatusInternalServerError, "Error fetching books")
		return
	}

	meta := &Meta{Pagination: &Pagination{
		Page:       q.Page,
		Limit:      q.Limit,
		TotalCount: result.TotalCount,
		TotalPages: result.TotalPages,
	}}
	JSONSuccess(w, http.StatusOK, result.Books, "Books retrieved successfully", meta)
}

func (h *BookHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	b, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, book.ErrNotFound) {
			JSONError(w, http.StatusNotFound, "Book not found")
			return
		}
		h.log.Error("fetching book failed", "id", id, "error", err)
		JSONError(w, http.StatusInternalServerError, "Error fetching book")
		return
	}

	JSONSuccess(w, http.StatusOK, b, "Book retrieved successfully", nil)
}

func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := ValidateStruct(req); len(errs) > 0 {
		JSONError(w, http.StatusBadRequest, joinValidationErrors(errs))
		return
	}

	created, err := h.svc.Create(r.Context(), book.CreateInput{
		Title:         req.Title,
		Author:        req.Author,
		PublishedDate: req.PublishedDate,
		NumberOfPages: req.NumberOfPages,
		ISBN:          req.ISBN,
		Genre:         req.Genre,
		Description:   req.Description,
	})
	if err != nil {
		h.log.Error("creating book failed", "error", err)
		JSONError(w, http.StatusInternalServerError, "Error creating book")
		return
	}

	JSONSuccess(w, http.StatusCreated, created, "Book created successfully", nil)
}

func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := ValidateStruct(req); len(errs) > 0 {
		JSONError(w, http.StatusBadRequest, joinValidationErrors(errs))
		return
	}

	updated, err := h.svc.Update(r.Context(), id, book.UpdateInput{
		Title:         req.Title,
		Author:        req.Author,
		PublishedDate: req.PublishedDate,
		NumberOfPages: req.NumberOfPages,
		ISBN:          req.ISBN,
		Genre:         req.Genre,
		Description:   req.Description,
	})
	if err != nil {
		if errors.Is(err, book.ErrNotFound) {
			JSONError(w, http.StatusNotFound, "Book not found")
			return
		}
		h.log.Error("updating book failed", "id", id, "error", err)
		JSONError(w, http.StatusInternalServerError, "Error updating book")
		return
	}

	JSONSuccess(w, http.StatusOK, updated, "Book updated successfully", nil)
}

func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, book.ErrNotFound) {
			JSONError(w, http.StatusNotFound, "Book not found")
			return
		}
		h.log.Error("deleting book failed", "id", id, "error", err)
		JSONError(w, http.StatusInternalServerError, "Error deleting book")
		return
	}

	JSONSuccess(w, http.StatusOK, nil, "Book deleted successfully", nil)
}

// parsePositiveInt parses an optional numeric query parameter, recording
// a field error when the raw value is not an integer. Range checks are
// left to struct validation.
func parsePositiveInt(raw, field string, errs *[]ValidationError) int {
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		*errs = append(*errs, ValidationError{
			Field:   field,
			Message: field + " must be a positive integer",
		})
		return 0
	}
	return n
}
