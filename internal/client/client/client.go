package client

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
	"sync"
	"time"
)

type APIClient struct {
	baseURL string
	http    *http.Client

	mu      sync.RWMutex
	session *Session
}

// NewAPIClient returns a client for the API rooted at baseURL
// (e.g. "http://127.0.0.1:3003").
func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Session returns the current login, or nil.
func (c *APIClient) Session() *Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

func (c *APIClient) Logout() {
	c.mu.Lock()
	c.session = nil
	c.mu.Unlock()
}

func (c *APIClient) Register(ctx context.Context, username, name, password string) (*User, error) {
	var u User
	body := map[string]string{"username": username, "name": name, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/users", false, body, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Login stores the returned token for later calls.
func (c *APIClient) Login(ctx context.Context, username, password string) (*Session, error) {
	var s Session
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/login", false, body, &s); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.session = &s
	c.mu.Unlock()
	return &s, nil
}

func (c *APIClient) ListPosts(ctx context.Context) ([]Post, error) {
	var posts []Post
	if err := c.do(ctx, http.MethodGet, "/api/posts", false, nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *APIClient) GetPost(ctx context.Context, id string) (*Post, error) {
	var p Post
	if err := c.do(ctx, http.MethodGet, "/api/posts/"+url.PathEscape(id), false, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *APIClient) CreatePost(ctx context.Context, in NewPost) (*Post, error) {
	var p Post
	if err := c.do(ctx, http.MethodPost, "/api/posts", true, in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *APIClient) UpdatePost(ctx context.Context, p Post) (*Post, error) {
	body := map[string]any{"title": p.Title, "author": p.Author, "url": p.URL, "likes": p.Likes}
	var out Post
	if err := c.do(ctx, http.MethodPut, "/api/posts/"+url.PathEscape(p.ID), true, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Like adds one like to the post.
func (c *APIClient) Like(ctx context.Context, id string) (*Post, error) {
	p, err := c.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Likes++
	return c.UpdatePost(ctx, *p)
}

func (c *APIClient) DeletePost(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/posts/"+url.PathEscape(id), true, nil, nil)
}

func (c *APIClient) Stats(ctx context.Context) (*Stats, error) {
	var s Stats
	if err := c.do(ctx, http.MethodGet, "/api/stats", false, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Ping checks that the server answers /healthz.
func (c *APIClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", false, nil, nil)
}

func (c *APIClient) do(ctx context.Context, method, path string, authenticated bool, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authenticated {
		s := c.Session()
		if s == nil {
			return ErrNotLoggedIn
		}
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return responseError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func responseError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	var e struct {
		Error string `json:"error"`
	}
	if json.NewDecoder(resp.Body).Decode(&e) == nil {
		apiErr.Message = e.Error
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %w", ErrUnauthorized, apiErr)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %w", ErrNotFound, apiErr)
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return fmt.Errorf("%w: %w", ErrUnavailable, apiErr)
	}
	return apiErr
}
