package backend

import (
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
)

// PostgREST error codes reported for a missing relation.
const (
	codeUndefinedTable  = "42P01"
	codeSchemaCacheMiss = "PGRST205"
)

// APIError is the error body returned by PostgREST.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details"`
	Hint       string `json:"hint"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%s)", e.Message, e.Code)
	}
	return e.Message
}

// Is matches ErrTableNotFound for missing relations.
func (e *APIError) Is(target error) bool {
	if target != ErrTableNotFound {
		return false
	}
	return e.StatusCode == http.StatusNotFound || e.Code == codeUndefinedTable || e.Code == codeSchemaCacheMiss
}

// RESTDriver queries a PostgREST compatible API such as Supabase.
type RESTDriver struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// RESTOption configures a RESTDriver.
type RESTOption func(*RESTDriver)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) RESTOption {
	return func(d *RESTDriver) {
		if c != nil {
			d.client = c
		}
	}
}

// WithTimeout bounds every request made by the default client.
func WithTimeout(t time.Duration) RESTOption {
	return func(d *RESTDriver) {
		if t > 0 {
			d.client = &http.Client{Timeout: t}
		}
	}
}

// NewRESTDriver creates a driver for baseURL. apiKey is sent both as the
// apikey header and as a bearer token.
func NewRESTDriver(baseURL, apiKey string, opts ...RESTOption) (*RESTDriver, error) {
	if baseURL == "" {
		return nil, ErrMissingURL
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, errors.Join(ErrMissingURL, err)
	}
	d := &RESTDriver{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Select issues GET {baseURL}/rest/v1/{table}. Error bodies are decoded
// into *APIError.
func (d *RESTDriver) Select(ctx context.Context, q Query) ([]Row, error) {
	params := url.Values{}
	params.Set("select", strings.Join(q.Columns, ","))
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	endpoint := d.baseURL + "/rest/v1/" + url.PathEscape(q.Table) + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Join(ErrRequestFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	if d.apiKey != "" {
		req.Header.Set("apikey", d.apiKey)
		req.Header.Set("Authorization", "Bearer "+d.apiKey)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, errors.Join(ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeAPIError(resp)
	}

	var rows []Row
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, errors.Join(ErrDecodeResponse, err)
	}
	return rows, nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if len(body) == 0 || json.Unmarshal(body, apiErr) != nil || apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
