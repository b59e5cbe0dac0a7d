// Package supabase talks to a Supabase project: Storage for card images and
// the PostgREST API for agent rows.
package supabase

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

	"github.com/youruser/soulcard/internal/agent"
	"github.com/youruser/soulcard/internal/publish"
	"github.com/youruser/soulcard/internal/util"
)

// Client is safe for concurrent use. Construct it once and inject it.
type Client struct {
	baseURL string
	key     string
	http    *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New returns a client for the project at baseURL using the anonymous key.
func New(baseURL, anonKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		key:     anonKey,
		http:    util.NewHTTPClient(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is a non-2xx response from Storage or PostgREST.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (status %d, code %s)", e.Message, e.Status, e.Code)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// Upload stores data at bucket/path. With opts.Upsert false an existing
// object yields publish.ErrObjectExists.
func (c *Client) Upload(ctx context.Context, bucket, path string, data []byte, opts publish.UploadOptions) error {
	headers := map[string]string{
		"Content-Type":  opts.ContentType,
		"cache-control": "max-age=" + opts.CacheControl,
		"x-upsert":      strconv.FormatBool(opts.Upsert),
	}
	endpoint := c.baseURL + "/storage/v1/object/" + util.EscapeObjectPath(bucket, path)
	resp, err := c.do(ctx, http.MethodPost, endpoint, headers, bytes.NewReader(data))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := checkResponse(resp); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && isDuplicate(apiErr) {
			return fmt.Errorf("%w: %s/%s", publish.ErrObjectExists, bucket, path)
		}
		return err
	}
	return nil
}

// PublicURL returns the object's address in a public bucket. No request is
// made.
func (c *Client) PublicURL(bucket, path string) string {
	return c.baseURL + "/storage/v1/object/public/" + util.EscapeObjectPath(bucket, path)
}

// Insert adds one row and returns it as stored.
func (c *Client) Insert(ctx context.Context, table string, rec agent.Record) (agent.Record, error) {
	body, err := json.Marshal(rec)
	if err != nil {
		return agent.Record{}, err
	}
	headers := map[string]string{
		"Content-Type": "application/json",
		"Prefer":       "return=representation",
		"Accept":       "application/vnd.pgrst.object+json",
	}
	resp, err := c.do(ctx, http.MethodPost, c.restURL(table, nil), headers, bytes.NewReader(body))
	if err != nil {
		return agent.Record{}, err
	}
	defer resp.Body.Close()
	if err := checkResponse(resp); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotAcceptable {
			return agent.Record{}, fmt.Errorf("%w: %v", publish.ErrNotSingleRow, err)
		}
		return agent.Record{}, err
	}
	var out agent.Record
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return agent.Record{}, fmt.Errorf("decode inserted row: %w", err)
	}
	return out, nil
}

// List returns rows newest first.
func (c *Client) List(ctx context.Context, table string, opts agent.ListOptions) ([]agent.Record, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("order", "created_at.desc")
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	var out []agent.Record
	if err := c.getJSON(ctx, c.restURL(table, q), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, table, id string) (agent.Record, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("id", "eq."+id)
	var rows []agent.Record
	if err := c.getJSON(ctx, c.restURL(table, q), &rows); err != nil {
		return agent.Record{}, err
	}
	if len(rows) == 0 {
		return agent.Record{}, fmt.Errorf("%w: %s", agent.ErrNotFound, id)
	}
	return rows[0], nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, v any) error {
	resp, err := c.do(ctx, http.MethodGet, endpoint, map[string]string{"Accept": "application/json"}, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := checkResponse(resp); err != nil {
		return err
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

func (c *Client) restURL(table string, q url.Values) string {
	u := c.baseURL + "/rest/v1/" + url.PathEscape(table)
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

func (c *Client) do(ctx context.Context, method, endpoint string, headers map[string]string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", c.key)
	req.Header.Set("Authorization", "Bearer "+c.key)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return c.http.Do(req)
}

// checkResponse turns a non-2xx response into an *APIError. Storage and
// PostgREST both report a "message"; Storage adds "error" and a string
// "statusCode", PostgREST a "code".
func checkResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return nil
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var body struct {
		Message    string `json:"message"`
		Error      string `json:"error"`
		Code       string `json:"code"`
		StatusCode string `json:"statusCode"`
	}
	apiErr := &APIError{Status: resp.StatusCode}
	if json.Unmarshal(raw, &body) == nil {
		apiErr.Message = body.Message
		apiErr.Code = body.Code
		if apiErr.Code == "" {
			apiErr.Code = body.StatusCode
		}
		if apiErr.Message == "" {
			apiErr.Message = body.Error
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

func isDuplicate(e *APIError) bool {
	return e.Status == http.StatusConflict || e.Code == "409" ||
		strings.Contains(strings.ToLower(e.Message), "already exists")
}

var (
	_ publish.ObjectStore = (*Client)(nil)
	_ publish.RecordStore = (*Client)(nil)
)
