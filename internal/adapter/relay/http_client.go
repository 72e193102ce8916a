// Package relay holds the coordinator's ways of reaching the AI relay function.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"promptlycoach-be/internal/coordinator"
	"promptlycoach-be/internal/dto"
)

// HTTPClient calls a relay deployed behind a URL, e.g. another instance's
// /functions/v1/ai-chat.
type HTTPClient struct {
	url        string
	apiKey     string
	httpClient *http.Client
}

var _ coordinator.Relay = (*HTTPClient)(nil)

// NewHTTPClient leaves timeouts to the caller's context.
func NewHTTPClient(url, apiKey string) *HTTPClient {
	return &HTTPClient{
		url:        strings.TrimSuffix(url, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{},
	}
}

func (c *HTTPClient) Invoke(ctx context.Context, req *dto.RelayRequest) (*dto.RelayResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal relay request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create relay request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("apikey", c.apiKey)
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("relay request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read relay response: %w", err)
	}

	var result dto.RelayResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("relay error [%d]: %s", resp.StatusCode, string(respBody))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("relay error [%d]: %s", resp.StatusCode, result.Error)
	}

	return &result, nil
}
