package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Astemirdum/bookreview-service/pkg/circuit_breaker"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL + "/")
}

func TestClient_ListBooks(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/books", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("skip"))
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		_, _ = io.WriteString(w, `{"data":[{"id":"b1","name":"Dune","author":"Frank Herbert","tags":["sci-fi"],"userId":"admin"}]}`)
	})

	books, err := c.ListBooks(context.Background(), 5, 50)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Dune", books[0].Name)
	assert.Equal(t, []string{"sci-fi"}, books[0].Tags)
}

func TestClient_GetBook(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		body string
		want *Book
	}{
		{
			name: "found",
			body: `{"data":{"id":"b1","name":"Emma"}}`,
			want: &Book{ID: "b1", Name: "Emma"},
		},
		{
			name: "missing",
			body: `{"data":null}`,
			want: nil,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/books/b1", r.URL.Path)
				_, _ = io.WriteString(w, tt.body)
			})
			got, err := c.GetBook(context.Background(), "b1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_CreateBook(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var req CreateBookRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{}, req.Tags)
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"data":{"id":"new","name":"`+req.Name+`","userId":"`+req.UserID+`"}}`)
	})

	book, err := c.CreateBook(context.Background(), CreateBookRequest{Name: "Ulysses", UserID: "admin"})
	require.NoError(t, err)
	assert.Equal(t, Book{ID: "new", Name: "Ulysses", UserID: "admin"}, book)
}

func TestClient_CreateBook_Unauthorized(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":"unauthorized: only ADMIN users can create books"}`)
	})

	_, err := c.CreateBook(context.Background(), CreateBookRequest{Name: "x", UserID: "bob"})
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "unauthorized: only ADMIN users can create books", apiErr.Message)
}

func TestClient_Reviews(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			assert.Equal(t, "/reviews/b1", r.URL.Path)
			_, _ = io.WriteString(w, `{"data":[{"id":"r1","data":"great","userId":"alice","bookId":"b1"}]}`)
		case http.MethodPost:
			assert.Equal(t, "/reviews", r.URL.Path)
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `{"review":{"id":"r2","data":"meh","userId":"bob","bookId":"b1"}}`)
		}
	})

	reviews, err := c.ListReviews(context.Background(), "b1")
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "great", reviews[0].Data)

	rv, err := c.CreateReview(context.Background(), CreateReviewRequest{Data: "meh", UserID: "bob", BookID: "b1"})
	require.NoError(t, err)
	assert.Equal(t, "r2", rv.ID)
}

func TestClient_Users(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/alice", r.URL.Path)
		switch r.Method {
		case http.MethodGet:
			_, _ = io.WriteString(w, `{"data":null}`)
		case http.MethodPut:
			var req UpdateUserRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			_, _ = io.WriteString(w, `{"data":{"id":"alice","username":"`+req.Username+`","role":"`+string(req.Role)+`"}}`)
		}
	})

	u, err := c.GetUser(context.Background(), "alice")
	require.NoError(t, err)
	assert.Nil(t, u)

	updated, err := c.UpdateUser(context.Background(), "alice", UpdateUserRequest{Username: "Alice", Role: RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, User{ID: "alice", Username: "Alice", Role: RoleAdmin}, updated)
}

func TestClient_ErrorWithoutBody(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	_, err := c.ListReviews(context.Background(), "b1")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Bad Request", apiErr.Message)
}

func TestClient_CircuitBreakerOpensOnServerErrors(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":"boom"}`)
	}))
	t.Cleanup(srv.Close)

	cb := circuit_breaker.New(4, time.Minute, 0.5, 1)
	c := New(srv.URL, WithCircuitBreaker(cb))

	for i := 0; i < 2; i++ {
		_, err := c.ListBooks(context.Background(), 0, 10)
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "boom", apiErr.Message)
	}
	_, err := c.ListBooks(context.Background(), 0, 10)
	require.ErrorIs(t, err, circuit_breaker.ErrOpenCB)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, circuit_breaker.Open, cb.State())
}

func TestClient_ClientErrorsKeepBreakerClosed(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"limit is invalid"}`)
	})

	for i := 0; i < 30; i++ {
		_, err := c.ListBooks(context.Background(), 0, -1)
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
	}
	assert.Equal(t, circuit_breaker.Closed, c.cb.State())
}
