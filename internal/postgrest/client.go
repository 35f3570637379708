// Package postgrest is a small client for PostgREST-compatible REST
// endpoints such as the one Supabase exposes under /rest/v1. It covers the
// subset of the query grammar the fact board needs: column selection,
// equality filters, ordering, limits, inserts and conditional updates.
package postgrest

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
)

// Config holds connection settings for a PostgREST endpoint.
type Config struct {
	// BaseURL is the REST root, e.g. https://<project>.supabase.co/rest/v1.
	BaseURL string
	// APIKey is sent both as the apikey header and as a bearer token.
	APIKey string
	// HTTPClient overrides the default client. Optional.
	HTTPClient *http.Client
}

// Client issues requests against a PostgREST endpoint.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New validates cfg and returns a ready client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("postgrest: base URL is required")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("postgrest: API key is required")
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("postgrest: invalid base URL %q", cfg.BaseURL)
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    hc,
	}, nil
}

// Error is the decoded body of a non-2xx PostgREST response.
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "postgrest: status %d", e.Status)
	if e.Code != "" {
		fmt.Fprintf(&b, " (%s)", e.Code)
	}
	if e.Message != "" {
		b.WriteString(": " + e.Message)
	}
	if e.Details != "" {
		b.WriteString(" - " + e.Details)
	}
	return b.String()
}

// Request is a chainable builder for one table operation. Build it with
// Client.From and finish it with Execute.
type Request struct {
	client *Client
	table  string
	method string
	params url.Values
	body   any
	prefer []string
}

// From starts a request against table.
func (c *Client) From(table string) *Request {
	return &Request{
		client: c,
		table:  table,
		params: url.Values{},
	}
}

// Select sets the returned columns. On a plain read it makes the request a
// GET; after Insert or Update it asks the server to return the affected
// rows.
func (r *Request) Select(columns string) *Request {
	if columns == "" {
		columns = "*"
	}
	r.params.Set("select", columns)
	if r.method == "" {
		r.method = http.MethodGet
	} else {
		r.prefer = append(r.prefer, "return=representation")
	}
	return r
}

// Insert turns the request into a POST of rows, which must marshal to a
// JSON object or array.
func (r *Request) Insert(rows any) *Request {
	r.method = http.MethodPost
	r.body = rows
	return r
}

// Update turns the request into a PATCH setting values on every row that
// matches the filters.
func (r *Request) Update(values any) *Request {
	r.method = http.MethodPatch
	r.body = values
	return r
}

// Eq adds a column=eq.value filter.
func (r *Request) Eq(column string, value any) *Request {
	r.params.Add(column, "eq."+fmt.Sprint(value))
	return r
}

// Order sorts by column. Repeated calls add secondary sort keys.
func (r *Request) Order(column string, ascending bool) *Request {
	dir := "desc"
	if ascending {
		dir = "asc"
	}
	term := column + "." + dir
	if prev := r.params.Get("order"); prev != "" {
		term = prev + "," + term
	}
	r.params.Set("order", term)
	return r
}

// Limit caps the number of rows returned.
func (r *Request) Limit(n int) *Request {
	r.params.Set("limit", strconv.Itoa(n))
	return r
}

// URL returns the full request URL including the encoded query string.
func (r *Request) URL() string {
	u := r.client.baseURL + "/" + url.PathEscape(r.table)
	if q := r.params.Encode(); q != "" {
		u += "?" + q
	}
	return u
}

// Execute sends the request and decodes a JSON response body into dest
// when dest is non-nil and the server returned one.
func (r *Request) Execute(ctx context.Context, dest any) error {
	method := r.method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if r.body != nil {
		payload, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("postgrest marshal: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.URL(), body)
	if err != nil {
		return fmt.Errorf("postgrest request: %w", err)
	}

	req.Header.Set("apikey", r.client.apiKey)
	req.Header.Set("Authorization", "Bearer "+r.client.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if len(r.prefer) > 0 {
		req.Header.Set("Prefer", strings.Join(r.prefer, ","))
	}

	resp, err := r.client.http.Do(req)
	if err != nil {
		return fmt.Errorf("postgrest http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("postgrest read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode}
		if err := json.Unmarshal(respBody, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(respBody))
		}
		return apiErr
	}

	if dest == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, dest); err != nil {
		return fmt.Errorf("postgrest unmarshal: %w", err)
	}
	return nil
}
