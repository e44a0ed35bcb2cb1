package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/bookreview-service/pkg/circuit_breaker"
)

type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

type Client struct {
	baseURL string
	client  *http.Client
	cb      circuit_breaker.CircuitBreaker
	log     *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.client = c
	}
}

func WithCircuitBreaker(cb circuit_breaker.CircuitBreaker) Option {
	return func(cl *Client) {
		cl.cb = cb
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(cl *Client) {
		cl.log = log
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
		cb:      circuit_breaker.New(20, 5*time.Second, 0.5, 2),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.Named("api")
	return c
}

func (c *Client) ListBooks(ctx context.Context, skip, limit int) ([]Book, error) {
	q := url.Values{}
	q.Set("skip", strconv.Itoa(skip))
	q.Set("limit", strconv.Itoa(limit))
	var resp struct {
		Data []Book `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/books?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GetBook returns nil without error when the book does not exist.
func (c *Client) GetBook(ctx context.Context, id string) (*Book, error) {
	var resp struct {
		Data *Book `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/books/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) CreateBook(ctx context.Context, req CreateBookRequest) (Book, error) {
	if req.Tags == nil {
		req.Tags = []string{}
	}
	var resp struct {
		Data Book `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/books", req, &resp); err != nil {
		return Book{}, err
	}
	return resp.Data, nil
}

func (c *Client) ListReviews(ctx context.Context, bookID string) ([]Review, error) {
	var resp struct {
		Data []Review `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/reviews/"+url.PathEscape(bookID), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) CreateReview(ctx context.Context, req CreateReviewRequest) (Review, error) {
	var resp struct {
		Review Review `json:"review"`
	}
	if err := c.do(ctx, http.MethodPost, "/reviews", req, &resp); err != nil {
		return Review{}, err
	}
	return resp.Review, nil
}

// GetUser returns nil without error when the user does not exist.
func (c *Client) GetUser(ctx context.Context, id string) (*User, error) {
	var resp struct {
		Data *User `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (User, error) {
	var resp struct {
		Data User `json:"data"`
	}
	if err := c.do(ctx, http.MethodPut, "/users/"+url.PathEscape(id), req, &resp); err != nil {
		return User{}, err
	}
	return resp.Data, nil
}

// do performs one call through the circuit breaker. Only transport
// failures and 5xx answers count against the breaker.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return errors.Wrap(err, "encode request")
		}
	}

	var apiErr error
	err := c.cb.Call(func() error {
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
		if err != nil {
			return err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			return errors.Wrapf(err, "%s %s", method, path)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusBadRequest {
			e := decodeError(resp)
			if resp.StatusCode >= http.StatusInternalServerError {
				return e
			}
			apiErr = e
			return nil
		}
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.Wrap(err, "decode response")
		}
		return nil
	})
	if err != nil {
		c.log.Debug("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return err
	}
	return apiErr
}

func decodeError(resp *http.Response) *APIError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16)) //nolint:errcheck
	var body struct {
		Error string `json:"error"`
	}
	msg := strings.TrimSpace(string(raw))
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		msg = body.Error
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &APIError{Status: resp.StatusCode, Message: msg}
}
