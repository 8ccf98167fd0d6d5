package simplybook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/courtify/courtify/config"
	"github.com/courtify/courtify/internal/domain"
)

const (
	authTimeout = 10 * time.Second
	callTimeout = 15 * time.Second
)

var callID atomic.Int64

func nextCallID() int64 {
	return callID.Add(1)
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
	ID      int64  `json:"id"`
}

type rpcErrorBody struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcErrorBody   `json:"error"`
}

// Client issues authenticated JSON-RPC calls against the SimplyBook user API.
// It refuses to run in mock mode; callers are expected to check the mode
// before reaching for the provider, this is the backstop.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	companyLogin string
	mock         bool
	tokens       *TokenCache
}

func NewClient(cfg config.ProviderConfig) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: callTimeout},
		baseURL:      cfg.BaseURL,
		companyLogin: cfg.CompanyLogin,
		mock:         cfg.Mock(),
		tokens:       NewTokenCache(cfg),
	}
}

// MockMode reports whether the client is configured for mock mode.
func (c *Client) MockMode() bool {
	return c.mock
}

// Token exposes the session token for health reporting.
func (c *Client) Token(ctx context.Context) (string, error) {
	return c.tokens.Token(ctx)
}

// Call issues one JSON-RPC method call and decodes its result into out.
// Token expiry is handled entirely by the TokenCache; Call never re-fetches
// a token mid-call.
func (c *Client) Call(ctx context.Context, method string, params []any, out any) error {
	if c.mock {
		return ErrMockMode
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      nextCallID(),
	})
	if err != nil {
		return &TransportError{Method: method, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return &TransportError{Method: method, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Company-Login", c.companyLogin)
	req.Header.Set("X-Token", token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Method: method, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &TransportError{Method: method, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	var envelope rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return &TransportError{Method: method, Err: err}
	}
	if envelope.Error != nil {
		return &RPCError{
			Method:  method,
			Code:    envelope.Error.Code,
			Message: envelope.Error.Message,
			Data:    envelope.Error.Data,
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return &TransportError{Method: method, Err: err}
	}
	return nil
}

// EventList fetches the service catalog.
func (c *Client) EventList(ctx context.Context) ([]domain.Service, error) {
	var services []domain.Service
	if err := c.Call(ctx, "getEventList", []any{}, &services); err != nil {
		return nil, err
	}
	for i := range services {
		if services[i].Duration == 0 {
			services[i].Duration = 60
		}
	}
	return services, nil
}

// UnitList fetches the resource (court) catalog.
func (c *Client) UnitList(ctx context.Context) ([]domain.Unit, error) {
	var units []domain.Unit
	if err := c.Call(ctx, "getUnitList", []any{}, &units); err != nil {
		return nil, err
	}
	return units, nil
}

// StartTimeMatrix fetches bookable start times per date for one
// (service, unit) pair over the requested date range.
func (c *Client) StartTimeMatrix(ctx context.Context, dateFrom, dateTo string, serviceID, unitID domain.ID, count int) (domain.SlotMatrix, error) {
	var matrix domain.SlotMatrix
	params := []any{dateFrom, dateTo, string(serviceID), string(unitID), count}
	if err := c.Call(ctx, "getStartTimeMatrix", params, &matrix); err != nil {
		return nil, err
	}
	return matrix, nil
}
