// Package apiclient is the typed HTTP client for the talentview API. It
// attaches the stored bearer credential to every request and intercepts
// 401 responses by clearing the credential, so a stale session never keeps
// issuing authenticated calls.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/clearhire/talentview/internal/models"
	"github.com/clearhire/talentview/internal/validate"
)

// ErrUnauthorized is returned after a 401 response. By the time the caller
// sees it the stored credential has already been cleared; the operation is
// over, not retryable.
var ErrUnauthorized = errors.New("unauthorized")

// APIError carries a non-2xx response's status and server-supplied message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

// Client is the talentview API client. One typed method exists per
// (entity, verb) pair; none of them retry.
type Client struct {
	baseURL        string
	hc             *http.Client
	tokens         TokenStore
	onUnauthorized func()
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, e.g. to set a
// timeout. Its transport is still wrapped for bearer injection.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

// WithTokenStore replaces the default in-memory credential store.
func WithTokenStore(ts TokenStore) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithOnUnauthorized sets a hook run after a 401 clears the credential,
// e.g. to point the user back at the login flow.
func WithOnUnauthorized(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// New creates a client for the API at baseURL (e.g. "http://localhost:8080").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{},
		tokens:  NewMemoryTokenStore(),
	}
	for _, opt := range opts {
		opt(c)
	}

	next := c.hc.Transport
	if next == nil {
		next = http.DefaultTransport
	}
	wrapped := *c.hc
	wrapped.Transport = &authTransport{tokens: c.tokens, next: next}
	c.hc = &wrapped
	return c
}

// authTransport injects "Authorization: Bearer <token>" when a credential
// is stored. No credential is not an error; the request simply goes out
// unauthenticated.
type authTransport struct {
	tokens TokenStore
	next   http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := t.tokens.Token()
	if err == nil && token != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return t.next.RoundTrip(req)
}

// do performs one request. A 401 clears the credential and fires the
// onUnauthorized hook before returning ErrUnauthorized; other non-2xx
// statuses surface the server's error message.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		_ = c.tokens.Clear()
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(resp.Body)}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func errorMessage(body io.Reader) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return "request failed"
}

// Login signs in and stores the returned token for subsequent calls.
func (c *Client) Login(ctx context.Context, email, password string) (models.User, error) {
	email, errs := validate.Login(email, password)
	if errs != nil {
		return models.User{}, errs
	}

	var resp struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	payload := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, payload, &resp); err != nil {
		return models.User{}, err
	}
	if err := c.tokens.Set(resp.Token); err != nil {
		return models.User{}, err
	}
	return resp.User, nil
}

// Logout discards the stored credential.
func (c *Client) Logout() error {
	return c.tokens.Clear()
}

// InterviewFilters narrow ListInterviews. Zero fields are omitted; set
// fields compose with logical AND on the server.
type InterviewFilters struct {
	Search   string
	Position string
	Status   models.InterviewStatus
	DateFrom *time.Time
	DateTo   *time.Time
}

func (f InterviewFilters) query() url.Values {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Position != "" {
		q.Set("position", f.Position)
	}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.DateFrom != nil {
		q.Set("dateFrom", f.DateFrom.Format(time.RFC3339))
	}
	if f.DateTo != nil {
		q.Set("dateTo", f.DateTo.Format(time.RFC3339))
	}
	return q
}

// ListInterviews returns the interviews matching filters.
func (c *Client) ListInterviews(ctx context.Context, filters InterviewFilters) ([]models.Interview, error) {
	var out []models.Interview
	if err := c.do(ctx, http.MethodGet, "/api/interviews", filters.query(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetInterview fetches a single interview.
func (c *Client) GetInterview(ctx context.Context, id string) (models.Interview, error) {
	var out models.Interview
	if err := c.do(ctx, http.MethodGet, "/api/interviews/"+id, nil, nil, &out); err != nil {
		return models.Interview{}, err
	}
	return out, nil
}

// CreateInterview validates the draft locally and, only if it passes,
// submits it. Validation failures never reach the network.
func (c *Client) CreateInterview(ctx context.Context, draft models.InterviewDraft) (models.Interview, error) {
	draft, errs := validate.Interview(draft)
	if errs != nil {
		return models.Interview{}, errs
	}
	var out models.Interview
	if err := c.do(ctx, http.MethodPost, "/api/interviews", nil, draft, &out); err != nil {
		return models.Interview{}, err
	}
	return out, nil
}

// UpdateInterview applies a partial update.
func (c *Client) UpdateInterview(ctx context.Context, id string, patch models.InterviewPatch) (models.Interview, error) {
	var out models.Interview
	if err := c.do(ctx, http.MethodPut, "/api/interviews/"+id, nil, patch, &out); err != nil {
		return models.Interview{}, err
	}
	return out, nil
}

// DeleteInterview removes an interview.
func (c *Client) DeleteInterview(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/interviews/"+id, nil, nil, nil)
}

// ListTemplates returns all question templates.
func (c *Client) ListTemplates(ctx context.Context) ([]models.Template, error) {
	var out []models.Template
	if err := c.do(ctx, http.MethodGet, "/api/templates", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetTemplate fetches a single template.
func (c *Client) GetTemplate(ctx context.Context, id string) (models.Template, error) {
	var out models.Template
	if err := c.do(ctx, http.MethodGet, "/api/templates/"+id, nil, nil, &out); err != nil {
		return models.Template{}, err
	}
	return out, nil
}

// CreateTemplate validates the draft locally and submits it. The server
// assigns ids to the template and each question.
func (c *Client) CreateTemplate(ctx context.Context, draft models.TemplateDraft) (models.Template, error) {
	draft, errs := validate.Template(draft)
	if errs != nil {
		return models.Template{}, errs
	}
	var out models.Template
	if err := c.do(ctx, http.MethodPost, "/api/templates", nil, draft, &out); err != nil {
		return models.Template{}, err
	}
	return out, nil
}

// UpdateTemplate applies a partial update.
func (c *Client) UpdateTemplate(ctx context.Context, id string, patch models.TemplatePatch) (models.Template, error) {
	var out models.Template
	if err := c.do(ctx, http.MethodPut, "/api/templates/"+id, nil, patch, &out); err != nil {
		return models.Template{}, err
	}
	return out, nil
}

// DeleteTemplate removes a template.
func (c *Client) DeleteTemplate(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/templates/"+id, nil, nil, nil)
}

// ListPositions returns the known position names.
func (c *Client) ListPositions(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.do(ctx, http.MethodGet, "/api/positions", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Dashboard fetches the aggregate metrics and upcoming/recent lists.
func (c *Client) Dashboard(ctx context.Context) (models.DashboardSummary, error) {
	var out models.DashboardSummary
	if err := c.do(ctx, http.MethodGet, "/api/dashboard", nil, nil, &out); err != nil {
		return models.DashboardSummary{}, err
	}
	return out, nil
}
