// Package blobstore persists JSON documents in a remote blob store that
// speaks plain GET/PUT: GET {base}/{key} returns the document and
// PUT {base}/{key} replaces it.
package blobstore

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
)

// ErrNotFound is returned by Get when the key holds no document
var ErrNotFound = errors.New("blob not found")

// Client talks to the blob store
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates a client for baseURL. token is sent as a bearer token when set.
func New(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

// Get decodes the document stored at key into v
func (c *Client) Get(ctx context.Context, key string, v any) error {
	req, err := c.newRequest(ctx, http.MethodGet, key, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", key, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return statusError("get", key, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// Put stores v as JSON at key, replacing whatever was there
func (c *Client) Put(ctx context.Context, key string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	req, err := c.newRequest(ctx, http.MethodPut, key, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError("put", key, resp)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, key string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+url.PathEscape(key), body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", strings.ToLower(method), err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

func statusError(op, key string, resp *http.Response) error {
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("%s %s: unexpected status %d: %s", op, key, resp.StatusCode, strings.TrimSpace(string(msg)))
}

// Collection persists a whole list under a single key
type Collection[T any] struct {
	client *Client
	key    string
}

// NewCollection binds a list of T to key
func NewCollection[T any](client *Client, key string) *Collection[T] {
	return &Collection[T]{client: client, key: key}
}

// Load returns the stored list; a missing key is an empty list
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	var items []T
	err := c.client.Get(ctx, c.key, &items)
	if errors.Is(err, ErrNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Save replaces the stored list
func (c *Collection[T]) Save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	return c.client.Put(ctx, c.key, items)
}
