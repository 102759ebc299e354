package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"
)

const (
	// codeUserRejected is the JSON-RPC error code the registry daemon
	// returns when the signer declines a transaction (EIP-1193
	// userRejectedRequest).
	codeUserRejected = 4001

	// codeNoSuchEntry is returned when a removal targets a position
	// that does not exist on the ledger.
	codeNoSuchEntry = -32001
)

// RPCConfig holds the connection parameters for a registry daemon's
// JSON-RPC interface.
type RPCConfig struct {
	URL      string `json:"url"`
	User     string `json:"user"`
	Password string `json:"password"`
}

// RPCClient is a JSON-RPC 1.0 client for the registry daemon. The
// daemon owns the caller's signing identity; registration calls block
// until the daemon reports the transaction settled or failed.
// All high-level registry methods are built on top of the call method.
type RPCClient struct {
	url    string
	user   string
	pass   string
	client *http.Client
	nextID atomic.Int64
}

// rpcRequest represents a JSON-RPC 1.0 request payload.
type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int64         `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

// rpcResponse represents a JSON-RPC 1.0 response payload.
type rpcResponse struct {
	ID     int64           `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

// rpcError represents an error returned by the JSON-RPC server.
type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewRPCClient creates a new registry client with the given configuration.
// The client uses HTTP Basic Auth when User is non-empty. No request
// timeout is set: a registration is bounded only by the daemon's own
// confirmation behavior, which may take arbitrarily long. Use the
// context to bound individual calls if needed.
func NewRPCClient(cfg RPCConfig) *RPCClient {
	return &RPCClient{
		url:  cfg.URL,
		user: cfg.User,
		pass: cfg.Password,
		client: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 10,
			},
		},
	}
}

// Compile-time interface check.
var _ Service = (*RPCClient)(nil)

// call invokes a JSON-RPC method on the registry daemon. If result is
// nil, the response result is discarded.
//
// call returns ErrConnectionFailed if the HTTP request fails and
// ErrInvalidResponse if the response cannot be decoded. Daemon-level
// errors are returned as *rpcError-derived errors by the callers.
func (c *RPCClient) call(ctx context.Context, method string, params []interface{}, result interface{}) error {
	if params == nil {
		params = []interface{}{}
	}
	reqBody := rpcRequest{
		JSONRPC: "1.0",
		ID:      c.nextID.Add(1),
		Method:  method,
		Params:  params,
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("ledger: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("ledger: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.user != "" {
		req.SetBasicAuth(c.user, c.pass)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: HTTP %d: %s", ErrConnectionFailed, resp.StatusCode, string(respBody))
	}

	var rpcResp rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return fmt.Errorf("%w: decode response: %w", ErrInvalidResponse, err)
	}

	if rpcResp.Error != nil {
		return rpcResp.Error
	}

	if rpcResp.ID != reqBody.ID {
		return fmt.Errorf("%w: response ID mismatch: expected %d, got %d",
			ErrInvalidResponse, reqBody.ID, rpcResp.ID)
	}

	if result != nil && rpcResp.Result != nil {
		if err := json.Unmarshal(rpcResp.Result, result); err != nil {
			return fmt.Errorf("%w: unmarshal result: %w", ErrInvalidResponse, err)
		}
	}

	return nil
}

// Error implements the error interface for daemon-level errors.
func (e *rpcError) Error() string {
	return fmt.Sprintf("ledger: rpc error %d: %s", e.Code, e.Message)
}

// Register records (storageID, name) on the ledger. Signer declines and
// settlement failures surface as *RegistrationError with the kind taken
// from the daemon's error code.
func (c *RPCClient) Register(ctx context.Context, storageID, name string) error {
	err := c.call(ctx, "registry.addfile", []interface{}{storageID, name}, nil)
	if err == nil {
		return nil
	}
	if rpcErr, ok := err.(*rpcError); ok {
		kind := KindOther
		if rpcErr.Code == codeUserRejected {
			kind = KindUserRejected
		}
		return &RegistrationError{Kind: kind, Message: rpcErr.Message}
	}
	return err
}

// ListEntries returns the caller's committed entries in ledger order.
func (c *RPCClient) ListEntries(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	if err := c.call(ctx, "registry.listfiles", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// RemoveEntry deletes the entry at position.
func (c *RPCClient) RemoveEntry(ctx context.Context, position int) error {
	err := c.call(ctx, "registry.removefile", []interface{}{position}, nil)
	if err == nil {
		return nil
	}
	if rpcErr, ok := err.(*rpcError); ok {
		if rpcErr.Code == codeNoSuchEntry {
			return fmt.Errorf("%w: %s", ErrEntryNotFound, rpcErr.Message)
		}
		kind := KindOther
		if rpcErr.Code == codeUserRejected {
			kind = KindUserRejected
		}
		return &RegistrationError{Kind: kind, Message: rpcErr.Message}
	}
	return err
}
