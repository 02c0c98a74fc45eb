// Package rpc implements a JSON-RPC 2.0 client for Avalanche node endpoints.
package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"
)

// Caller issues a single JSON-RPC call against endpoint and decodes the
// result into result, which may be nil.
type Caller interface {
	Call(ctx context.Context, endpoint, method string, params, result any) error
}

// Request is the JSON-RPC 2.0 request envelope
type Request struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
	ID      uint64 `json:"id"`
}

// Response is the JSON-RPC 2.0 response envelope
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Error is the JSON-RPC 2.0 error object
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Client is a plain HTTP JSON-RPC client without retries
type Client struct {
	httpClient *http.Client
	nextID     atomic.Uint64
}

// NewClient creates a client whose requests time out after timeout
func NewClient(timeout time.Duration) *Client {
	return NewClientWithHTTP(&http.Client{Timeout: timeout})
}

// NewClientWithHTTP creates a client around an existing http.Client
func NewClientWithHTTP(httpClient *http.Client) *Client {
	return &Client{httpClient: httpClient}
}

// Call sends method with params to endpoint.
// Network failures and malformed envelopes return *TransportError; an
// error object in the envelope returns *ProtocolError.
func (c *Client) Call(ctx context.Context, endpoint, method string, params, result any) (err error) {
	start := time.Now()
	defer func() { observeCall(method, start, err) }()

	if params == nil {
		params = map[string]any{}
	}

	body, err := json.Marshal(Request{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      c.nextID.Add(1),
	})
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return &TransportError{Endpoint: endpoint, Method: method, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Endpoint: endpoint, Method: method, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Endpoint: endpoint, Method: method, StatusCode: resp.StatusCode, Err: err}
	}

	var envelope Response
	if err := json.Unmarshal(raw, &envelope); err != nil {
		if resp.StatusCode != http.StatusOK {
			return &TransportError{Endpoint: endpoint, Method: method, StatusCode: resp.StatusCode, Err: fmt.Errorf("%s", bytes.TrimSpace(raw))}
		}
		return &TransportError{Endpoint: endpoint, Method: method, StatusCode: resp.StatusCode, Err: fmt.Errorf("invalid response envelope: %w", err)}
	}

	if envelope.Error != nil {
		return &ProtocolError{
			Method:  method,
			Code:    envelope.Error.Code,
			Message: envelope.Error.Message,
			Data:    envelope.Error.Data,
		}
	}

	if resp.StatusCode != http.StatusOK {
		return &TransportError{Endpoint: endpoint, Method: method, StatusCode: resp.StatusCode, Err: errors.New("unexpected status")}
	}

	if result == nil || len(envelope.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Result, result); err != nil {
		return fmt.Errorf("failed to decode %s result: %w", method, err)
	}
	return nil
}

// IsTransport reports whether err is, or wraps, a *TransportError
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
