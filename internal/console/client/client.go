// Package client is the console's generic REST client. It issues CRUD calls
// against named resources, attaches the bearer credential when one is set,
// and intercepts 401 responses globally: the session store is cleared and
// the registered hook fires exactly once per credential, no matter how many
// in-flight calls fail with 401 at the same time.
package client

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
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/rentdesk/property-system/internal/console/session"
)

const defaultTimeout = 15 * time.Second

// APIError carries a non-2xx response back to the caller with the server's
// detail message when one was supplied.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api: status %d", e.Status)
	}
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Detail)
}

// Client performs authenticated CRUD calls against named REST resources.
// No resource-specific logic lives here.
type Client struct {
	baseURL string
	http    *http.Client
	store   *session.Store
	log     zerolog.Logger

	mu             sync.Mutex
	token          string
	onUnauthorized func()
}

// New returns a Client for the API at baseURL. The store is cleared when a
// 401 invalidates the active credential.
func New(baseURL string, store *session.Store, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		store:   store,
		log:     log,
	}
}

// OnUnauthorized registers the hook fired when the active credential is
// rejected. Typically wired to the authorization gate's forced sign-out.
func (c *Client) OnUnauthorized(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

// SetToken makes tok the active credential for subsequent requests.
func (c *Client) SetToken(tok string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = tok
}

// ClearToken drops the active credential.
func (c *Client) ClearToken() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
}

// LoginResult is the payload of a successful authentication call.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      int    `json:"user_id"`
	Username    string `json:"username"`
	RoleID      int    `json:"role_id"`
}

// Login calls the authentication endpoint with form-encoded credentials.
// It does not touch the active credential; the caller decides what to
// persist on success.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	form := url.Values{"username": {username}, "password": {password}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("client: build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, err := c.send(req, "")
	if err != nil {
		return nil, err
	}

	var result LoginResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("client: decode login response: %w", err)
	}
	return &result, nil
}

// ListResult is a normalised list response: the server may answer with a
// bare array or with an {items|users, total} envelope.
type ListResult struct {
	Items []json.RawMessage
	Total int
}

// List fetches a page of the named resource.
func (c *Client) List(ctx context.Context, resource string, query url.Values) (*ListResult, error) {
	path := c.resourcePath(resource)
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	body, err := c.call(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return normaliseList(body)
}

// Get fetches one record by id and decodes it into out.
func (c *Client) Get(ctx context.Context, resource string, id int, out any) error {
	body, err := c.call(ctx, http.MethodGet, c.resourcePath(resource)+"/"+strconv.Itoa(id), nil)
	if err != nil {
		return err
	}
	return decodeInto(body, out)
}

// Create posts a new record and decodes the server's echo into out when
// out is non-nil.
func (c *Client) Create(ctx context.Context, resource string, payload, out any) error {
	body, err := c.call(ctx, http.MethodPost, c.resourcePath(resource), payload)
	if err != nil {
		return err
	}
	return decodeInto(body, out)
}

// Update replaces a record by id.
func (c *Client) Update(ctx context.Context, resource string, id int, payload, out any) error {
	body, err := c.call(ctx, http.MethodPut, c.resourcePath(resource)+"/"+strconv.Itoa(id), payload)
	if err != nil {
		return err
	}
	return decodeInto(body, out)
}

// Delete removes a record by id.
func (c *Client) Delete(ctx context.Context, resource string, id int) error {
	_, err := c.call(ctx, http.MethodDelete, c.resourcePath(resource)+"/"+strconv.Itoa(id), nil)
	return err
}

func (c *Client) resourcePath(resource string) string {
	return "/" + strings.Trim(resource, "/")
}

func (c *Client) call(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("client: encode payload: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("client: build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.mu.Lock()
	token := c.token
	c.mu.Unlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.send(req, token)
}

// send executes the request and applies the global 401 interception when
// the request carried a credential. All other error statuses propagate as
// *APIError with the server detail attached.
func (c *Client) send(req *http.Request, sentToken string) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("client: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("client: read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized && sentToken != "" {
		c.invalidate(sentToken)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Detail: errorDetail(body)}
	}
	return body, nil
}

// invalidate clears the session for a rejected credential. Concurrent 401s
// for the same credential fire the hook once: the first caller swaps the
// token out, later callers see a mismatch and do nothing.
func (c *Client) invalidate(sentToken string) {
	c.mu.Lock()
	if c.token != sentToken {
		c.mu.Unlock()
		return
	}
	c.token = ""
	fn := c.onUnauthorized
	c.mu.Unlock()

	if err := c.store.Clear(); err != nil {
		c.log.Warn().Err(err).Msg("failed to clear session store")
	}
	if fn != nil {
		fn()
	}
}

func decodeInto(body []byte, out any) error {
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("client: decode response: %w", err)
	}
	return nil
}

// errorDetail pulls the message from an error envelope. The API uses
// {"error": ...}; older deployments used {"detail": ...}.
func errorDetail(body []byte) string {
	var envelope struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	if envelope.Error != "" {
		return envelope.Error
	}
	return envelope.Detail
}

// normaliseList accepts either a bare JSON array or an envelope carrying an
// array under "items" or "users" plus a "total".
func normaliseList(body []byte) (*ListResult, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("client: decode list: %w", err)
		}
		return &ListResult{Items: items, Total: len(items)}, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("client: decode list envelope: %w", err)
	}

	result := &ListResult{}
	for _, key := range []string{"items", "users"} {
		raw, ok := envelope[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, &result.Items); err != nil {
			return nil, fmt.Errorf("client: decode list envelope %q: %w", key, err)
		}
		break
	}
	if raw, ok := envelope["total"]; ok {
		if err := json.Unmarshal(raw, &result.Total); err != nil {
			return nil, fmt.Errorf("client: decode list total: %w", err)
		}
	} else {
		result.Total = len(result.Items)
	}
	return result, nil
}
