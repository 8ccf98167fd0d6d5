package simplybook

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/courtify/courtify/config"
)

// tokenTTL is deliberately shorter than the provider's actual token lifetime
// so a cached token never reaches the provider already expired.
const tokenTTL = 50 * time.Minute

// TokenCache obtains and memoizes the provider session token. One cache is
// shared per process; it is safe for concurrent use.
type TokenCache struct {
	httpClient   *http.Client
	loginURL     string
	companyLogin string
	apiKey       string
	mock         bool
	now          func() time.Time

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

func NewTokenCache(cfg config.ProviderConfig) *TokenCache {
	return &TokenCache{
		httpClient:   &http.Client{Timeout: authTimeout},
		loginURL:     strings.TrimSuffix(cfg.BaseURL, "/") + "/login",
		companyLogin: cfg.CompanyLogin,
		apiKey:       cfg.APIKey,
		mock:         cfg.Mock(),
		now:          time.Now,
	}
}

// Token returns the cached token while it is still valid, re-authenticating
// otherwise. A failed login caches nothing; the next call retries.
func (c *TokenCache) Token(ctx context.Context) (string, error) {
	if c.mock {
		return "", ErrMockMode
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.now().Before(c.expiresAt) {
		return c.token, nil
	}

	token, err := c.login(ctx)
	if err != nil {
		return "", err
	}
	c.token = token
	c.expiresAt = c.now().Add(tokenTTL)
	return token, nil
}

func (c *TokenCache) login(ctx context.Context) (string, error) {
	payload, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		Method:  "getToken",
		Params:  []any{c.companyLogin, c.apiKey},
		ID:      nextCallID(),
	})
	if err != nil {
		return "", &AuthError{Reason: "encode login request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.loginURL, bytes.NewReader(payload))
	if err != nil {
		return "", &AuthError{Reason: "build login request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &AuthError{Reason: "login request failed", Err: err}
	}
	defer resp.Body.Close()

	var envelope rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return "", &AuthError{Reason: "decode login response", Err: err}
	}
	if envelope.Error != nil {
		return "", &AuthError{Reason: envelope.Error.Message}
	}

	var token string
	if err := json.Unmarshal(envelope.Result, &token); err != nil {
		return "", &AuthError{Reason: "unexpected login result", Err: err}
	}
	if token == "" {
		return "", &AuthError{Reason: "provider returned an empty token"}
	}
	return token, nil
}
