// Package store is the thin HTTP client over the remote record store: one
// JSON collection per entity, conventional REST verbs, no retries.
package store

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
)

// Record is anything stored in a collection. The id is assigned by the
// store on create; an empty id means the record is not persisted yet.
type Record interface {
	RecordID() string
}

// Client holds the connection settings shared by all collections. Fields
// are set at wiring time and only read afterwards; collections may issue
// requests concurrently.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// New creates a client with sane defaults.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		Timeout: 10 * time.Second,
	}
}

// TransportError wraps any failed exchange with the record store: non-2xx
// responses and network failures alike. Callers do not discriminate
// between them.
type TransportError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("record store: %v", e.Err)
	}
	return fmt.Sprintf("record store: status=%d body=%s", e.StatusCode, e.Body)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Collection issues CRUD requests against one named collection.
type Collection[T Record] struct {
	client   *Client
	path     string
	fkField  string
	defaults func(*T, time.Time)

	// Now is overridable in tests; defaults are stamped with it.
	Now func() time.Time
}

// NewCollection builds a collection client. defaults, when non-nil, stamps
// the store-level defaults onto a record before create; fkField names the
// query parameter used by ListByUsuario.
func NewCollection[T Record](c *Client, path, fkField string, defaults func(*T, time.Time)) *Collection[T] {
	return &Collection[T]{client: c, path: path, fkField: fkField, defaults: defaults, Now: time.Now}
}

// ListAll fetches the entire collection. No pagination.
func (col *Collection[T]) ListAll(ctx context.Context) ([]T, error) {
	var out []T
	if err := col.client.do(ctx, http.MethodGet, col.path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches one record.
func (col *Collection[T]) GetByID(ctx context.Context, id string) (T, error) {
	var out T
	err := col.client.do(ctx, http.MethodGet, col.path+"/"+url.PathEscape(id), nil, &out)
	return out, err
}

// ListByUsuario fetches records whose foreign key equals usuarioID.
func (col *Collection[T]) ListByUsuario(ctx context.Context, usuarioID string) ([]T, error) {
	endpoint := fmt.Sprintf("%s?%s=%s", col.path, col.fkField, url.QueryEscape(usuarioID))
	var out []T
	if err := col.client.do(ctx, http.MethodGet, endpoint, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create submits a new record. Store-level defaults (initial status,
// zeroed counters, creation timestamp) are stamped here, before
// submission, matching what the store would otherwise leave empty. The
// returned record carries the store-assigned id.
func (col *Collection[T]) Create(ctx context.Context, item T) (T, error) {
	if col.defaults != nil {
		now := time.Now
		if col.Now != nil {
			now = col.Now
		}
		col.defaults(&item, now().UTC())
	}
	var out T
	err := col.client.do(ctx, http.MethodPost, col.path, item, &out)
	return out, err
}

// Update patches only the supplied fields and returns the merged record.
func (col *Collection[T]) Update(ctx context.Context, id string, fields map[string]any) (T, error) {
	var out T
	err := col.client.do(ctx, http.MethodPatch, col.path+"/"+url.PathEscape(id), fields, &out)
	return out, err
}

// Delete removes a record.
func (col *Collection[T]) Delete(ctx context.Context, id string) error {
	return col.client.do(ctx, http.MethodDelete, col.path+"/"+url.PathEscape(id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body any, out any) error {
	// Never written here: concurrent collection calls share c.
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: c.Timeout}
	}
	u := strings.TrimRight(c.BaseURL, "/") + "/" + strings.TrimLeft(endpoint, "/")
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return &TransportError{Err: err}
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, u, &buf)
	if err != nil {
		return &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := httpClient.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return &TransportError{StatusCode: resp.StatusCode, Body: string(b)}
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &TransportError{Err: err}
		}
	}
	return nil
}
