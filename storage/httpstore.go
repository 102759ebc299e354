package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// HTTPStore talks to an IPFS-compatible HTTP API (e.g. a local Kubo
// daemon at http://localhost:5001). Insert maps to POST /api/v0/add.
type HTTPStore struct {
	baseURL string
	client  *http.Client
}

// addResponse is the JSON object the add endpoint returns per file.
type addResponse struct {
	Name string `json:"Name"`
	Hash string `json:"Hash"`
	Size string `json:"Size"`
}

// versionResponse is the JSON object the version endpoint returns.
type versionResponse struct {
	Version string `json:"Version"`
}

// NewHTTPStore creates a client for the IPFS HTTP API at baseURL.
// A trailing slash on baseURL is tolerated. The client maintains a
// connection pool for efficient reuse.
func NewHTTPStore(baseURL string) *HTTPStore {
	return &HTTPStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 10,
			},
		},
	}
}

// Insert submits data to the add endpoint and returns the content
// identifier the daemon assigned. Transport failures wrap
// ErrUnavailable so callers can distinguish an unreachable daemon from
// a store-level rejection.
func (s *HTTPStore) Insert(ctx context.Context, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyContent
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "file")
	if err != nil {
		return "", fmt.Errorf("storage: create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("storage: write form file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("storage: close multipart writer: %w", err)
	}

	url := s.baseURL + "/api/v0/add?cid-version=1"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return "", fmt.Errorf("storage: create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("%w: HTTP %d: %s", ErrUnavailable, resp.StatusCode, string(respBody))
	}

	// The add endpoint streams one JSON object per line; a single file
	// produces a single object.
	var added addResponse
	if err := json.NewDecoder(resp.Body).Decode(&added); err != nil {
		return "", fmt.Errorf("%w: decode response: %w", ErrInvalidResponse, err)
	}
	if added.Hash == "" {
		return "", fmt.Errorf("%w: missing content identifier", ErrInvalidResponse)
	}

	return added.Hash, nil
}

// Ping checks that the daemon is reachable by querying its version
// endpoint. Useful as a pre-flight before a large upload.
func (s *HTTPStore) Ping(ctx context.Context) error {
	url := s.baseURL + "/api/v0/version"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return fmt.Errorf("storage: create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: HTTP %d", ErrUnavailable, resp.StatusCode)
	}

	var v versionResponse
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		return fmt.Errorf("%w: decode version: %w", ErrInvalidResponse, err)
	}
	return nil
}
