// Package api is the HTTP client for the InternX portal API. It speaks the
// server's response envelope, converts machine-readable error codes into
// sentinel errors, and attaches the current bearer token to every request
// once one has been installed.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Raghugowd/Internx-sub001/internal/model"
)

// Client is a thread-safe portal API client. The zero token means
// unauthenticated; SetToken/ClearToken are driven by the session store.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// New creates a Client for the given base URL, e.g. "http://localhost:8080".
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// SetToken installs the default bearer credential for all subsequent calls.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearToken removes the default bearer credential.
func (c *Client) ClearToken() {
	c.SetToken("")
}

// Token returns the currently installed bearer credential, if any.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SendOTP requests a verification code for the email.
func (c *Client) SendOTP(ctx context.Context, email string) error {
	return c.call(ctx, http.MethodPost, "/api/v1/auth/send-otp",
		model.SendOTPRequest{Email: email}, nil)
}

// Register submits the atomic account-creation request.
func (c *Client) Register(ctx context.Context, req *model.RegisterRequest) (string, *model.User, error) {
	var out model.RegisterResponse
	if err := c.call(ctx, http.MethodPost, "/api/v1/auth/register", req, &out); err != nil {
		return "", nil, err
	}
	return out.Token, &out.User, nil
}

// LoginUser exchanges email + password for a bearer token and user snapshot.
func (c *Client) LoginUser(ctx context.Context, email, password string) (string, *model.User, error) {
	var out model.UserLoginResponse
	err := c.call(ctx, http.MethodPost, "/api/v1/auth/login",
		model.UserLoginRequest{Email: email, Password: password}, &out)
	if err != nil {
		return "", nil, err
	}
	return out.Token, &out.User, nil
}

// LoginAdmin exchanges username + password for a bearer token and admin snapshot.
func (c *Client) LoginAdmin(ctx context.Context, username, password string) (string, *model.Admin, error) {
	var out model.AdminLoginResponse
	err := c.call(ctx, http.MethodPost, "/api/v1/auth/admin/login",
		model.AdminLoginRequest{Username: username, Password: password}, &out)
	if err != nil {
		return "", nil, err
	}
	return out.Token, &out.Admin, nil
}

// UserProfile fetches the authenticated user's snapshot.
func (c *Client) UserProfile(ctx context.Context) (*model.User, error) {
	var out struct {
		User model.User `json:"user"`
	}
	if err := c.call(ctx, http.MethodGet, "/api/v1/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// AdminProfile fetches the authenticated admin's snapshot.
func (c *Client) AdminProfile(ctx context.Context) (*model.Admin, error) {
	var out struct {
		Admin model.Admin `json:"admin"`
	}
	if err := c.call(ctx, http.MethodGet, "/api/v1/auth/admin/me", nil, &out); err != nil {
		return nil, err
	}
	return &out.Admin, nil
}

// envelope mirrors the server's response wrapper.
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	} `json:"error"`
}

// call performs one request/response exchange. Transport failures and
// undecodable responses surface as ErrServerUnavailable; envelope errors are
// decoded into sentinel errors.
func (c *Client) call(ctx context.Context, method, path string, in, out any) error {
	var body *bytes.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServerUnavailable, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%w: undecodable response (status %d)", ErrServerUnavailable, resp.StatusCode)
	}

	if env.Error != nil {
		return decodeError(env.Error.Code, env.Error.Message, env.Error.Fields)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: status %d", ErrServerUnavailable, resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
