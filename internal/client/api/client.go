package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/stockbook-app/stockbook/internal/common"
)

// Config holds the explicit settings for a Client. There is no package-level
// client and no global default headers; the configured client is threaded
// through call sites.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks JSON over HTTP to the backend. It holds the current token
// pair and transparently refreshes an expired access token once per call.
type Client struct {
	baseURL string
	http    *http.Client

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

// New builds a Client from config.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// SetTokens replaces the stored token pair (e.g. restored from disk).
func (c *Client) SetTokens(access, refresh string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = access
	c.refreshToken = refresh
}

func (c *Client) tokens() (string, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken, c.refreshToken
}

type errorBody struct {
	Error string `json:"error"`
}

type tokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// apiError maps an HTTP failure to a sentinel so callers can errors.Is it,
// preserving the server's message.
func apiError(status int, message string) error {
	if message == "" {
		message = "request failed"
	}
	switch status {
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", message, common.ErrorNotFound)
	case http.StatusUnauthorized:
		if message == common.ErrTokenExpired.Error() {
			return common.ErrTokenExpired
		}
		return fmt.Errorf("%s: %w", message, common.ErrorUnauthorized)
	case http.StatusConflict:
		return fmt.Errorf("%s: %w", message, common.ErrorAlreadyExists)
	default:
		return fmt.Errorf("server error (%d): %s", status, message)
	}
}

// do performs one JSON request. On an expired access token it refreshes the
// pair and retries the original request once.
func (c *Client) do(ctx context.Context, method, path string, body, out any, authed bool) error {
	err := c.doOnce(ctx, method, path, body, out, authed)
	if !authed || !errors.Is(err, common.ErrTokenExpired) {
		return err
	}

	if err := c.refresh(ctx); err != nil {
		return err
	}
	return c.doOnce(ctx, method, path, body, out, authed)
}

func (c *Client) doOnce(ctx context.Context, method, path string, body, out any, authed bool) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if authed {
		access, _ := c.tokens()
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+access)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var eb errorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		return apiError(resp.StatusCode, eb.Error)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) refresh(ctx context.Context) error {
	_, refresh := c.tokens()
	if refresh == "" {
		return common.ErrorUnauthorized
	}

	var pair tokenPair
	err := c.doOnce(ctx, http.MethodPost, "/api/auth/refresh",
		map[string]string{"refreshToken": refresh}, &pair, false)
	if err != nil {
		return err
	}
	c.SetTokens(pair.AccessToken, pair.RefreshToken)
	return nil
}

// Register creates a backend account.
func (c *Client) Register(ctx context.Context, username, password string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/register",
		credentials{Username: username, Password: password}, nil, false)
}

// Login verifies credentials and stores the returned token pair.
func (c *Client) Login(ctx context.Context, username, password string) error {
	var pair tokenPair
	err := c.do(ctx, http.MethodPost, "/api/auth/login",
		credentials{Username: username, Password: password}, &pair, false)
	if err != nil {
		return err
	}
	c.SetTokens(pair.AccessToken, pair.RefreshToken)
	return nil
}

// Ping probes server reachability.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil, false)
}

// GetItems lists the caller's backend items.
func (c *Client) GetItems(ctx context.Context) ([]Item, error) {
	var items []Item
	if err := c.do(ctx, http.MethodGet, "/api/items", nil, &items, true); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateItem creates a backend item. Repeating the call with the same
// ClientKey returns the already-created item instead of a duplicate.
func (c *Client) CreateItem(ctx context.Context, req CreateItemRequest) (*Item, error) {
	var item Item
	if err := c.do(ctx, http.MethodPost, "/api/items", req, &item, true); err != nil {
		return nil, err
	}
	return &item, nil
}

// GetRecords lists one item's ledger records.
func (c *Client) GetRecords(ctx context.Context, itemID int64) ([]Record, error) {
	var recs []Record
	path := fmt.Sprintf("/api/items/%d/records", itemID)
	if err := c.do(ctx, http.MethodGet, path, nil, &recs, true); err != nil {
		return nil, err
	}
	return recs, nil
}

// CreateRecord appends to an item's ledger, idempotent on ClientKey.
func (c *Client) CreateRecord(ctx context.Context, itemID int64, req CreateRecordRequest) (*Record, error) {
	var rec Record
	path := fmt.Sprintf("/api/items/%d/records", itemID)
	if err := c.do(ctx, http.MethodPost, path, req, &rec, true); err != nil {
		return nil, err
	}
	return &rec, nil
}

// PresignImageUpload asks the backend for a presigned PUT URL for an item
// image and returns the storage key and the URL.
func (c *Client) PresignImageUpload(ctx context.Context) (string, string, error) {
	var resp struct {
		Key string `json:"key"`
		URL string `json:"url"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/images/presign", nil, &resp, true); err != nil {
		return "", "", err
	}
	return resp.Key, resp.URL, nil
}

// UploadImage PUTs raw image bytes to a presigned URL.
func (c *Client) UploadImage(ctx context.Context, url string, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("upload failed: %s", resp.Status)
	}
	return nil
}
