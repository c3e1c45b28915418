// Package scout is a Go client for the scout-server HTTP API.
package scout

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

	"scout/internal/catalog"
	"scout/internal/dashboard"
	"scout/internal/httpapi"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("scout: %d %s", e.Status, e.Message)
}

// Client provides a Go SDK for interacting with the scout-server API.
type Client struct {
	baseURL    string
	user       string
	httpClient *http.Client
}

// NewClient creates a new scout API client. user may be empty to use the
// server's default user.
func NewClient(baseURL, user string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		user:       user,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		rd = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.user != "" {
		req.Header.Set(httpapi.UserHeader, c.user)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if json.Unmarshal(raw, &e) != nil || e.Error == "" {
			e.Error = strings.TrimSpace(string(raw))
		}
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

// Today returns the reel order for the current day.
func (c *Client) Today(ctx context.Context) (*httpapi.TodayJSON, error) {
	var out httpapi.TodayJSON
	if err := c.do(ctx, http.MethodGet, "/api/reels/today", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Reel resolves the entries at position and position+1.
func (c *Client) Reel(ctx context.Context, position int64) (*httpapi.ReelJSON, error) {
	var out httpapi.ReelJSON
	if err := c.do(ctx, http.MethodGet, "/api/reels/"+strconv.FormatInt(position, 10), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Position returns the user's persisted reel position, resolved.
func (c *Client) Position(ctx context.Context) (*httpapi.ReelJSON, error) {
	var out httpapi.ReelJSON
	if err := c.do(ctx, http.MethodGet, "/api/reels/position", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetPosition stores the user's reel position.
func (c *Client) SetPosition(ctx context.Context, position int64) error {
	return c.do(ctx, http.MethodPut, "/api/reels/position", httpapi.PositionJSON{Position: position}, nil)
}

// ResetPosition forgets the user's reel position.
func (c *Client) ResetPosition(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/reels/position", nil, nil)
}

// Search returns companies matching query.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]catalog.Entry, error) {
	q := url.Values{"q": {query}}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out []catalog.Entry
	if err := c.do(ctx, http.MethodGet, "/api/search?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Snapshot loads the dashboard snapshot for symbol.
func (c *Client) Snapshot(ctx context.Context, symbol string) (*dashboard.Snapshot, error) {
	var out dashboard.Snapshot
	if err := c.do(ctx, http.MethodGet, "/api/snapshot/"+url.PathEscape(symbol), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// News returns up to limit recent articles for symbol. A limit <= 0 uses the
// server default.
func (c *Client) News(ctx context.Context, symbol string, limit int) (*httpapi.NewsJSON, error) {
	path := "/api/news/" + url.PathEscape(symbol)
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var out httpapi.NewsJSON
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Sentiment asks the server to score recent headlines about company.
func (c *Client) Sentiment(ctx context.Context, company string) (*httpapi.SentimentJSON, error) {
	var out httpapi.SentimentJSON
	if err := c.do(ctx, http.MethodPost, "/api/sentiment", httpapi.SentimentRequest{Company: company}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Favorites lists the user's favorites, newest first.
func (c *Client) Favorites(ctx context.Context) ([]httpapi.FavoriteJSON, error) {
	var out []httpapi.FavoriteJSON
	if err := c.do(ctx, http.MethodGet, "/api/favorites", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddFavorite saves symbol and reports whether it was newly added.
func (c *Client) AddFavorite(ctx context.Context, symbol string) (bool, error) {
	var out httpapi.FavoriteChangeJSON
	if err := c.do(ctx, http.MethodPut, "/api/favorites/"+url.PathEscape(symbol), nil, &out); err != nil {
		return false, err
	}
	return out.Changed, nil
}

// RemoveFavorite deletes symbol and reports whether it was present.
func (c *Client) RemoveFavorite(ctx context.Context, symbol string) (bool, error) {
	var out httpapi.FavoriteChangeJSON
	if err := c.do(ctx, http.MethodDelete, "/api/favorites/"+url.PathEscape(symbol), nil, &out); err != nil {
		return false, err
	}
	return out.Changed, nil
}

// Ping checks that the server is up.
func (c *Client) Ping(ctx context.Context) error {
	var out httpapi.StatusJSON
	if err := c.do(ctx, http.MethodGet, "/api/test", nil, &out); err != nil {
		return err
	}
	if out.Status != "OK" {
		return fmt.Errorf("scout: unexpected status %q", out.Status)
	}
	return nil
}
