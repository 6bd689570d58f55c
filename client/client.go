// Package client is the remote data gateway for the order service. It wraps
// the JSON/HTTP wire contract, classifies failures, and transparently
// refreshes an expired session exactly once before giving up.
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
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"github.com/stellarburgers/orderclient/credentials"
	"github.com/stellarburgers/orderclient/pkg/logger"
)

const (
	defaultTimeout     = 15 * time.Second
	defaultMaxBodySize = 1 << 20 // 1MiB

	contentTypeJSON = "application/json;charset=utf-8"
)

// Config holds gateway configuration.
type Config struct {
	// BaseURL is the service root, e.g. https://norma.nomoreparties.space/api.
	BaseURL string
	// HTTPClient executes requests. When nil, a default client with a
	// conservative timeout is used.
	HTTPClient *http.Client
	// Credentials holds the session token pair. Required.
	Credentials *credentials.Keeper
	// RateLimit caps outgoing requests per second. Zero means no limit.
	RateLimit float64
	// RateBurst is the limiter burst size; defaults to 1 when limited.
	RateBurst int
	// Logger receives request and refresh diagnostics.
	Logger *logger.Logger
}

// Client is the order-service gateway.
type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      *credentials.Keeper
	limiter    *rate.Limiter
	log        *logger.Logger
}

// New creates a gateway client.
func New(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("client: BaseURL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, errors.New("client: BaseURL must be a valid URL")
	}
	if cfg.Credentials == nil {
		return nil, errors.New("client: Credentials is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	log := cfg.Logger
	if log == nil {
		log = logger.NewDefault("client")
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		creds:      cfg.Credentials,
		limiter:    limiter,
		log:        log,
	}, nil
}

// do executes one request and returns the validated body. authed attaches
// the stored access token verbatim in the Authorization header.
func (c *Client) do(ctx context.Context, method, path string, payload any, authed bool) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &Error{Kind: KindNetwork, Message: err.Error(), URL: c.baseURL + path}
		}
	}

	reqURL := c.baseURL + path

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("client: marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("client: create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", contentTypeJSON)
	}
	if authed {
		if access, ok := c.creds.AccessToken(); ok {
			req.Header.Set("Authorization", access)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Message: err.Error(), URL: reqURL}
	}
	defer resp.Body.Close()

	return checkResponse(reqURL, resp)
}

// checkResponse validates the content type, reads the body, and converts
// non-success replies into classified errors. Never parses a non-JSON body.
func checkResponse(reqURL string, resp *http.Response) ([]byte, error) {
	ct := resp.Header.Get("Content-Type")
	if !strings.Contains(ct, "application/json") {
		if ct == "" {
			ct = "unknown"
		}
		return nil, &Error{
			Kind:        KindNonJSON,
			Status:      resp.StatusCode,
			Message:     fmt.Sprintf("non-JSON response (%s) from %s", ct, reqURL),
			URL:         reqURL,
			ContentType: ct,
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, defaultMaxBodySize))
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Message: err.Error(), URL: reqURL}
	}
	if !gjson.ValidBytes(body) {
		return nil, &Error{
			Kind:        KindNonJSON,
			Status:      resp.StatusCode,
			Message:     fmt.Sprintf("invalid JSON response from %s", reqURL),
			URL:         reqURL,
			ContentType: ct,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := gjson.GetBytes(body, "message").String()
		if msg == "" {
			msg = fmt.Sprintf("server error: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
		}
		return nil, serverError(reqURL, resp.StatusCode, msg)
	}

	// Bodies carry an explicit success flag on top of the HTTP status.
	if success := gjson.GetBytes(body, "success"); success.Exists() && !success.Bool() {
		msg := gjson.GetBytes(body, "message").String()
		if msg == "" {
			msg = "unexpected response from server"
		}
		return nil, serverError(reqURL, resp.StatusCode, msg)
	}

	return body, nil
}

func serverError(reqURL string, status int, msg string) *Error {
	kind := KindServer
	if msg == sessionExpiredMessage {
		kind = KindSessionExpired
	}
	return &Error{Kind: kind, Status: status, Message: msg, URL: reqURL}
}

// authed runs an authenticated request and, on a stale-token rejection,
// refreshes the session and replays the request exactly once. A failing
// replay wins over the original failure.
func (c *Client) authed(ctx context.Context, method, path string, payload any) ([]byte, error) {
	body, err := c.do(ctx, method, path, payload, true)
	if err == nil || !IsSessionExpired(err) {
		return body, err
	}

	c.log.WithField("path", path).Info("access token expired, refreshing session")
	if _, rerr := c.Refresh(ctx); rerr != nil {
		c.log.WithError(rerr).Warn("session refresh failed")
		return nil, rerr
	}
	return c.do(ctx, method, path, payload, true)
}

// Refresh posts the stored long-lived token, persists the fresh credential
// pair, and returns the new access token.
func (c *Client) Refresh(ctx context.Context) (string, error) {
	refresh, ok := c.creds.RefreshToken()
	if !ok || refresh == "" {
		return "", &Error{Kind: KindSessionExpired, Message: "no refresh token stored"}
	}

	body, err := c.do(ctx, http.MethodPost, "/auth/token", map[string]string{"token": refresh}, false)
	if err != nil {
		return "", err
	}

	var resp refreshResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("client: decode refresh response: %w", err)
	}

	c.creds.SetAccessToken(resp.AccessToken)
	if err := c.creds.SetRefreshToken(resp.RefreshToken); err != nil {
		return "", fmt.Errorf("client: persist refresh token: %w", err)
	}
	return resp.AccessToken, nil
}
