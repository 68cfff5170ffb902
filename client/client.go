// Package client là thư viện Go gọi question-bank API, có cache
// tag-invalidation và dedup request trùng key đang bay.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// APIError là lỗi trả về từ server, giữ nguyên status + message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Session giữ token + identity của user đang đăng nhập.
// Truyền tường minh qua Client, không dùng global state.
type Session struct {
	Token           string
	Name            string
	Email           string
	Role            string
	CanSeeMCQ       bool
	CanSeeTrueFalse bool
	CanSeeFillBlank bool
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == "admin"
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *Session
	cache      *tagCache
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithSession khởi tạo client với session có sẵn (ví dụ token đã lưu).
func WithSession(s *Session) Option {
	return func(c *Client) { c.session = s }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cache:      newTagCache(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session trả về session hiện tại (nil nếu chưa đăng nhập).
func (c *Client) Session() *Session {
	return c.session
}

// Logout xoá session và toàn bộ cache.
func (c *Client) Logout() {
	c.session = nil
	c.cache.Clear()
}

// doJSON gửi request JSON, decode kết quả vào out (nếu out != nil).
// Lỗi HTTP trả về *APIError với message từ body.
func (c *Client) doJSON(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.session != nil && c.session.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var env struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&env)
		if env.Message == "" {
			env.Message = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
