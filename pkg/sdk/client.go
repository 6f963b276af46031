// Package sdk provides the client-side library for the back office API.
// It supports both a remote HTTP backend and a local embedded store.
package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/backoffice-kit/backoffice/internal/tracing"
	"github.com/backoffice-kit/backoffice/pkg/engine"
	"github.com/backoffice-kit/backoffice/pkg/schema"
)

// DefaultBaseURL is where the API server listens out of the box.
const DefaultBaseURL = "http://localhost:3001"


// APIError is a non-2xx answer from the server. A 404 matches
// engine.ErrNotFound with errors.Is.
type APIError struct {
	Status     int
	StatusText string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("API error: %d %s", e.Status, e.StatusText)
	}
	return fmt.Sprintf("API error: %d %s: %s", e.Status, e.StatusText, e.Message)
}

func (e *APIError) Unwrap() error {
	if e.Status == http.StatusNotFound {
		return engine.ErrNotFound
	}
	return nil
}

// NetworkError wraps a transport failure. It matches ErrNetwork.
type NetworkError struct {
	Op  string
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: network error: %v", e.Op, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// Client talks to a remote API server. It implements Backend.
// Failed requests are never retried.
type Client struct {
	baseURL string
	http    *http.Client
	actor   *schema.Actor
}

type ClientOption func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithActor sends a as the acting user on every mutation. An actor stored
// in the request context takes precedence.
func WithActor(a schema.Actor) ClientOption {
	return func(c *Client) {
		c.actor = &a
	}
}

// WithTracing propagates trace context on outgoing requests.
func WithTracing() ClientOption {
	return func(c *Client) {
		c.http.Transport = tracing.WrapTransport(c.http.Transport)
	}
}

// NewClient returns a client for baseURL, or DefaultBaseURL when empty.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the server address the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) List(ctx context.Context, q schema.ListQuery) (schema.PaginationResponse[schema.Owner], error) {
	params := url.Values{}
	setInt(params, "page", q.Page)
	setInt(params, "pageSize", q.PageSize)
	setString(params, "search", q.Search)

	var out schema.PaginationResponse[schema.Owner]
	err := c.do(ctx, http.MethodGet, "/api/owners", params, nil, &out)
	return out, err
}

// ListAll walks every page of the owner listing for search.
func (c *Client) ListAll(ctx context.Context, search string) ([]schema.Owner, error) {
	return ListAll(ctx, c, search)
}

// All returns every owner. It lets a Client act as a Migrate source.
func (c *Client) All(ctx context.Context) ([]schema.Owner, error) {
	return c.ListAll(ctx, "")
}

func (c *Client) Get(ctx context.Context, id string) (schema.Owner, error) {
	var out schema.Owner
	err := c.do(ctx, http.MethodGet, "/api/owners/"+url.PathEscape(id), nil, nil, &out)
	return out, err
}

func (c *Client) Create(ctx context.Context, in schema.OwnerCreate) (schema.Owner, error) {
	var out schema.Owner
	err := c.do(ctx, http.MethodPost, "/api/owners", nil, schema.NewCreateOwnerRequest(in), &out)
	return out, err
}

func (c *Client) Update(ctx context.Context, id string, patch schema.OwnerPatch) (schema.Owner, error) {
	var out schema.Owner
	err := c.do(ctx, http.MethodPut, "/api/owners/"+url.PathEscape(id), nil, schema.NewUpdateOwnerRequest(patch), &out)
	return out, err
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/owners/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) ListAudit(ctx context.Context, q schema.AuditQuery) (schema.PaginationResponse[schema.AuditLogItem], error) {
	params := url.Values{}
	setInt(params, "page", q.Page)
	setInt(params, "pageSize", q.PageSize)
	setString(params, "search", q.Search)
	setString(params, "action", string(q.Action))
	setString(params, "entityType", q.EntityType)
	setString(params, "user", q.User)
	setString(params, "sort", q.SortKey)
	setString(params, "order", q.SortOrder)
	if q.From != nil {
		params.Set("from", q.From.Format(time.RFC3339Nano))
	}
	if q.To != nil {
		params.Set("to", q.To.Format(time.RFC3339Nano))
	}

	var out schema.PaginationResponse[schema.AuditLogItem]
	err := c.do(ctx, http.MethodGet, "/api/audit", params, nil, &out)
	return out, err
}

func (c *Client) OwnershipSummary(ctx context.Context) (schema.OwnershipSummary, error) {
	var out schema.OwnershipSummary
	err := c.do(ctx, http.MethodGet, "/api/ownership/summary", nil, nil, &out)
	return out, err
}

// Health reports whether the server answers its health check.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, nil)
}

// do sends one request and decodes a 2xx body into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out any) error {
	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.setActor(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Op: method, URL: target, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Op: method, URL: target, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp, data)
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) setActor(req *http.Request) {
	actor := schema.ActorFrom(req.Context())
	if actor == schema.SystemActor {
		if c.actor == nil {
			return
		}
		actor = *c.actor
	}
	req.Header.Set("X-Actor-Id", actor.ID)
	if actor.Name != "" {
		req.Header.Set("X-Actor-Name", actor.Name)
	}
}

// decodeError turns a 400 body into a *schema.ValidationError and anything
// else into an *APIError.
func decodeError(resp *http.Response, data []byte) error {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		schema.ValidationErrorShape
	}
	decoded := json.Unmarshal(data, &body) == nil

	if resp.StatusCode == http.StatusBadRequest && decoded {
		verr := schema.NewValidationError()
		for k, v := range body.FieldErrors {
			verr.AddField(k, v)
		}
		verr.RowErrors = append(verr.RowErrors, body.RowErrors...)
		verr.GlobalErrors = append(verr.GlobalErrors, body.GlobalErrors...)
		if !verr.HasErrors() && body.Message != "" {
			verr.AddGlobal(body.Message)
		}
		return verr
	}

	apiErr := &APIError{Status: resp.StatusCode, StatusText: http.StatusText(resp.StatusCode)}
	if decoded {
		apiErr.Message = body.Message
	} else {
		apiErr.Message = strings.TrimSpace(string(data))
	}
	return apiErr
}

// IsNotFound reports whether err is a not-found answer from either backend.
func IsNotFound(err error) bool {
	return errors.Is(err, engine.ErrNotFound)
}

func setInt(v url.Values, key string, n int) {
	if n != 0 {
		v.Set(key, strconv.Itoa(n))
	}
}

func setString(v url.Values, key, s string) {
	if s != "" {
		v.Set(key, s)
	}
}
