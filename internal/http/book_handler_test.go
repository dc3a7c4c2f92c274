package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bookshelf/internal/book"
	"bookshelf/internal/book/mocks"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testBook = book.Book{
	ID:            "bk-test-123",
	Title:         "Dune",
	Author:        "Frank Herbert",
	PublishedDate: "1965-06-01",
	NumberOfPages: 412,
	Genre:         strPtr("Science Fiction"),
	CreatedAt:     time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	UpdatedAt:     time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
}

func newTestRouter(t *testing.T) (chi.Router, *mocks.MockRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := mocks.NewMockRepository(ctrl)
	handler := NewBookHandler(book.NewService(mockRepo), slog.New(slog.NewTextHandler(io.Discard, nil)))

	r := chi.NewRouter()
	r.Route("/api/books", func(r chi.Router) {
		r.Get("/", handler.List)
		r.Get("/{id}", handler.GetByID)
		r.Post("/", handler.Create)
		r.Put("/{id}", handler.Update)
		r.Delete("/{id}", handler.Delete)
	})
	return r, mockRepo
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Meta    *Meta           `json:"meta"`
}

func doRequest(t *testing.T, router http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	router.ServeHTTP(w, r)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestBookHandler_List(t *testing.T) {
	t.Run("empty result is a JSON array", func(t *testing.T) {
		router, mockRepo := newTestRouter(t)
		mockRepo.EXPECT().List(gomock.Any(), gomock.Any()).Return([]book.Book{}, 0, nil)

		w, env := doRequest(t, router, http.MethodGet, "/api/books", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, env.Success)
		assert.Equal(t, "Books retrieved successfully", env.Message)
		assert.JSONEq(t, "[]", string(env.Data))
	})

	t.Run("pagination meta", func(t *testing.T) {
		router, mockRepo := newTestRouter(t)
		mockRepo.EXPECT().List(gomock.Any(), gomock.Any()).Return([]book.Book{testBook}, 25, nil)

		w, env := doRequest(t, router, http.MethodGet, "/api/books?page=2&limit=10", "")

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, env.Meta)
		require.NotNil(t, env.Meta.Pagination)
		assert.Equal(t, 2, env.Meta.Pagination.Page)
		assert.Equal(t, 10, env.Meta.Pagination.Limit)
		assert.Equal(t, 25, env.Meta.Pagination.TotalCount)
		assert.Equal(t, 3, env.Meta.Pagination.TotalPages)
	})

	t.Run("filters and sorting forwarded", func(t *testing.T) {
		router, mockRepo := newTestRouter(t)

		var got book.Query
		mockRepo.EXPECT().
			List(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, q book.Query) ([]book.Book, int, error) {
				got = q
				return []book.Book{}, 0, nil
			})

		w, _ := doRequest(t, router, http.MethodGet,
			"/api/books?title=Dune&author=Herbert&genre=Sci&sortBy=title&sortOrder=asc", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Dune", got.Title)
		assert.Equal(t, "Herbert", got.Author)
		assert.Equal(t, "Sci", got.Genre)
		assert.Equal(t, book.SortByTitle, got.SortBy)
		assert.Equal(t, "asc", got.SortOrder)
		// defaults
		assert.Equal(t, 1, got.Page)
		assert.Equal(t, 10, got.Limit)
	})

	t.Run("sorted page preserves store order", func(t *testing.T) {
		router, mockRepo := newTestRouter(t)

		sorted := []book.Book{
			{ID: "1", Title: "A"}, {ID: "2", Title: "B"}, {ID: "3", Title: "C"},
		}
		mockRepo.EXPECT().List(gomock.Any(), gomock.Any()).Return(sorted, 3, nil)

		_, env := doRequest(t, router, http.MethodGet, "/api/books?sortBy=title&sortOrder=asc", "")

		var got []book.Book
		require.NoError(t, json.Unmarshal(env.Data, &got))
		require.Len(t, got, 3)
		assert.Equal(t, []string{"A", "B", "C"}, []string{got[0].Title, got[1].Title, got[2].Title})
	})

	t.Run("invalid sortBy", func(t *testing.T) {
		router, _ := newTestRouter(t)

		w, env := doRequest(t, router, http.MethodGet, "/api/books?sortBy=isbn", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, env.Success)
		assert.Contains(t, env.Message, "SortBy")
	})

	t.Run("non-numeric page", func(t *testing.T) {
		router, _ := newTestRouter(t)

		w, env := doRequest(t, router, http.MethodGet, "/api/books?page=abc", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, env.Message, "page must be a positive integer")
	})

	t.Run("zero limit", func(t *testing.T) {
		router, _ := newTestRouter(t)

		w, env := doRequest(t, router, http.MethodGet, "/api/books?limit=0", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, env.Message, "limit")
	})

	t.Run("store failure is generic", func(t *testing.T) {
		router, mockRepo := newTestRouter(t)
		mockRepo.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, 0, context.DeadlineExceeded)

		w, env := doRequest(t, router, http.MethodGet, "/api/books", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Error fetching books", env.Message)
	})
}

func TestBookHandler_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		router, mockRepo := newTestRouter(t)
		mockRepo.EXPECT().GetByID(gomock.Any(), "bk-test-123").Return(testBook, nil)

		w, env := doRequest(t, router, http.MethodGet, "/api/books/bk-test-123", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Book retrieved successfully", env.Message)

		var got book.Book
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, testBook, got)
	})

	t.Run("not found", func(t *testing.T) {
		router, mockRepo := newTestRouter(t)
		mockRepo.EXPECT().GetByID(gomock.Any(), "missing").Return(book.Book{}, book.ErrNotFound)

		w, env := doRequest(t, router, http.MethodGet, "/api/books/missing", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.False(t, env.Success)
		assert.Equal(t, "Book not found", env.Message)
	})
}

func TestBookHandler_Create(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		router, mockRepo := newTestRouter(t)
		mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		body := `{"title":"Dune","author":"Herbert","publishedDate":"1965-06-01","numberOfPages":412}`
		w, env := doRequest(t, router, http.MethodPost, "/api/books", body)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "Book created successfully", env.Message)

		var got book.Book
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, "Dune", got.Title)
		assert.NotEmpty(t, got.ID)
		assert.False(t, got.CreatedAt.IsZero())
	})

	t.Run("client cannot set id", func(t *testing.T) {
		router, mockRepo := newTestRouter(t)
		mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		body := `{"id":"client-id","title":"Dune","author":"Herbert","publishedDate":"1965-06-01","numberOfPages":412}`
		_, env := doRequest(t, router, http.MethodPost, "/api/books", body)

		var got book.Book
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.NotEqual(t, "client-id", got.ID)
	})

	t.Run("negative page count", func(t *testing.T) {
		router, _ := newTestRouter(t)

		body := `{"title":"Dune","author":"Herbert","publishedDate":"1965-06-01","numberOfPages":-5}`
		w, env := doRequest(t, router, http.MethodPost, "/api/books", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, env.Success)
		assert.Contains(t, env.Message, "NumberOfPages")
	})

	t.Run("aggregated validation failures", func(t *testing.T) {
		router, _ := newTestRouter(t)

		w, env := doRequest(t, router, http.MethodPost, "/api/books", `{"numberOfPages":-1}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, env.Message, "Title")
		assert.Contains(t, env.Message, "Author")
		assert.Contains(t, env.Message, "PublishedDate")
		assert.Contains(t, env.Message, "NumberOfPages")
	})

	t.Run("malformed body", func(t *testing.T) {
		router, _ := newTestRouter(t)

		w, env := doRequest(t, router, http.MethodPost, "/api/books", `{"title":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid request body", env.Message)
	})

	t.Run("store failure is generic", func(t *testing.T) {
		router, mockRepo := newTestRouter(t)
		mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(context.DeadlineExceeded)

		body := `{"title":"Dune","author":"Herbert","publishedDate":"1965-06-01","numberOfPages":412}`
		w, env := doRequest(t, router, http.MethodPost, "/api/books", body)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Error creating book", env.Message)
	})
}

func TestBookHandler_Update(t *testing.T) {
	t.Run("partial update", func(t *testing.T) {
		router, mockRepo := newTestRouter(t)
		mockRepo.EXPECT().GetByID(gomock.Any(), "bk-test-123").Return(testBook, nil)
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		w, env := doRequest(t, router, http.MethodPut, "/api/books/bk-test-123", `{"numberOfPages":500}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Book updated successfully", env.Message)

		var got book.Book
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, 500, got.NumberOfPages)
		assert.Equal(t, testBook.Title, got.Title)
		assert.Equal(t, testBook.Author, got.Author)
	})

	t.Run("not found", func(t *testing.T) {
		router, mockRepo := newTestRouter(t)
		mockRepo.EXPECT().GetByID(gomock.Any(), "missing").Return(book.Book{}, book.ErrNotFound)

		w, env := doRequest(t, router, http.MethodPut, "/api/books/missing", `{"title":"x"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Book not found", env.Message)
	})

	t.Run("invalid supplied field", func(t *testing.T) {
		router, _ := newTestRouter(t)

		w, env := doRequest(t, router, http.MethodPut, "/api/books/bk-test-123", `{"numberOfPages":0}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, env.Message, "NumberOfPages")
	})
}

func TestBookHandler_Delete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		router, mockRepo := newTestRouter(t)
		mockRepo.EXPECT().GetByID(gomock.Any(), "bk-test-123").Return(testBook, nil)
		mockRepo.EXPECT().Delete(gomock.Any(), "bk-test-123").Return(nil)

		w, env := doRequest(t, router, http.MethodDelete, "/api/books/bk-test-123", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, env.Success)
		assert.Equal(t, "Book deleted successfully", env.Message)
		assert.JSONEq(t, "null", string(env.Data))
	})

	t.Run("not found", func(t *testing.T) {
		router, mockRepo := newTestRouter(t)
		mockRepo.EXPECT().GetByID(gomock.Any(), "missing").Return(book.Book{}, book.ErrNotFound)

		w, env := doRequest(t, router, http.MethodDelete, "/api/books/missing", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Book not found", env.Message)
	})

	t.Run("get after delete is 404", func(t *testing.T) {
		router, mockRepo := newTestRouter(t)
		gomock.InOrder(
			mockRepo.EXPECT().GetByID(gomock.Any(), "bk-test-123").Return(testBook, nil),
			mockRepo.EXPECT().Delete(gomock.Any(), "bk-test-123").Return(nil),
			mockRepo.EXPECT().GetByID(gomock.Any(), "bk-test-123").Return(book.Book{}, book.ErrNotFound),
		)

		w, _ := doRequest(t, router, http.MethodDelete, "/api/books/bk-test-123", "")
		assert.Equal(t, http.StatusOK, w.Code)

		w2, env := doRequest(t, router, http.MethodGet, "/api/books/bk-test-123", "")
		assert.Equal(t, http.StatusNotFound, w2.Code)
		assert.Equal(t, "Book not found", env.Message)
	})
}
