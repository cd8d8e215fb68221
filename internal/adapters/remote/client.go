// Package remote provides the HTTP adapter for the remote todo collection
// endpoint used by the networked store variant.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hylla/syssla/internal/app"
	"github.com/hylla/syssla/internal/domain"
)

// DefaultBaseURL matches the development server's default bind address.
const DefaultBaseURL = "http://127.0.0.1:8080"

// defaultTimeout bounds each request when the caller supplies no client.
const defaultTimeout = 10 * time.Second

// Client implements app.Remote against the `/todos` REST surface.
// Failures are wrapped with app.ErrNetwork (transport or HTTP status) or
// app.ErrDecode (unreadable response body) so the store can tell them apart.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a client for the given base URL. An empty base URL
// selects DefaultBaseURL; a nil httpClient gets a timeout-bounded default.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// ListTodos fetches the full collection via GET /todos.
func (c *Client) ListTodos(ctx context.Context) ([]domain.Item, error) {
	body, err := c.roundTrip(ctx, http.MethodGet, c.baseURL+"/todos", nil)
	if err != nil {
		return nil, err
	}

	var items []domain.Item
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("decode todo list: %w (%v)", app.ErrDecode, err)
	}
	return items, nil
}

// CreateTodo posts the candidate item via POST /todos and returns the item
// the server stored, which may carry server-assigned fields.
func (c *Client) CreateTodo(ctx context.Context, item domain.Item) (domain.Item, error) {
	return c.sendItem(ctx, c.baseURL+"/todos", item)
}

// UpdateTodo persists an edit via POST /todos/{id} and returns the server's
// view of the item.
func (c *Client) UpdateTodo(ctx context.Context, item domain.Item) (domain.Item, error) {
	return c.sendItem(ctx, c.baseURL+"/todos/"+url.PathEscape(item.ID), item)
}

// DeleteTodo removes the item via DELETE /todos/{id}. The returned payload is
// the server's representation of the deleted resource and only confirms
// success.
func (c *Client) DeleteTodo(ctx context.Context, id string) (domain.Item, error) {
	body, err := c.roundTrip(ctx, http.MethodDelete, c.baseURL+"/todos/"+url.PathEscape(id), nil)
	if err != nil {
		return domain.Item{}, err
	}

	var deleted domain.Item
	if err := json.Unmarshal(body, &deleted); err != nil {
		return domain.Item{}, fmt.Errorf("decode deleted todo: %w (%v)", app.ErrDecode, err)
	}
	return deleted, nil
}

// sendItem posts one item as JSON and decodes the returned item.
func (c *Client) sendItem(ctx context.Context, endpoint string, item domain.Item) (domain.Item, error) {
	payload, err := json.Marshal(item)
	if err != nil {
		return domain.Item{}, fmt.Errorf("marshal todo: %w", err)
	}
	body, err := c.roundTrip(ctx, http.MethodPost, endpoint, payload)
	if err != nil {
		return domain.Item{}, err
	}

	var stored domain.Item
	if err := json.Unmarshal(body, &stored); err != nil {
		return domain.Item{}, fmt.Errorf("decode todo: %w (%v)", app.ErrDecode, err)
	}
	return stored, nil
}

// roundTrip issues one request and returns the raw success body.
func (c *Client) roundTrip(ctx context.Context, method, endpoint string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, endpoint, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w (%v)", method, endpoint, app.ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w (%v)", app.ErrNetwork, err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%s %s: status %d: %w", method, endpoint, resp.StatusCode, app.ErrNetwork)
	}
	return body, nil
}
