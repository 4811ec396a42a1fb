package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/config"
	"github.com/jafarshop/storefront/pkg/errors"
)

// Client wraps HTTP access to the remote storefront API
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new backend API client
func NewClient(cfg config.BackendConfig, logger *zap.Logger) *Client {
	// Normalize base URL - drop trailing slashes
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// doJSON executes a request against the API and returns the raw JSON body.
// Non-JSON bodies are a malformed-response error regardless of status code;
// non-2xx responses surface the server's message field when one is present.
func (c *Client) doJSON(ctx context.Context, method, path, token string, payload interface{}) ([]byte, error) {
	url := c.baseURL + path

	var reqBody io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &errors.ErrTransport{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &errors.ErrTransport{Err: err}
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		c.logger.Warn("Backend returned non-JSON response",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("content_type", contentType),
		)
		return nil, &errors.ErrMalformedResponse{Detail: "server returned non-JSON response"}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Surface the server's message when the error body carries one
		var errBody struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(body, &errBody); err == nil && errBody.Message != "" {
			return nil, &errors.ErrTransport{Status: resp.StatusCode, Message: errBody.Message}
		}
		return nil, &errors.ErrTransport{Status: resp.StatusCode}
	}

	return body, nil
}
