// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package llm is the inference boundary: prompt in, assistant text out.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Message is one chat message in the wire format.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is one completion request. Model selection (including the
// @fast/@deep speed hint) is resolved by the caller before it gets here.
type Request struct {
	Model    string
	Messages []Message
}

// Client produces assistant text for a request. The engine treats it as an
// opaque black box; network, latency, and auth live behind it.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// =============================================================================
// HTTP CLIENT
// =============================================================================

// HTTPClient talks to an OpenAI-style chat-completions endpoint (Ollama,
// OpenRouter, and friends all speak it).
type HTTPClient struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

// NewHTTPClient returns a client for endpoint. apiKeyEnv optionally names an
// environment variable holding a bearer token.
func NewHTTPClient(endpoint, apiKeyEnv string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		endpoint: endpoint,
		apiKey:   os.Getenv(apiKeyEnv),
		http:     &http.Client{Timeout: timeout},
	}
}

type wireRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type wireResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete posts the request and returns the first choice's content.
func (c *HTTPClient) Complete(ctx context.Context, req Request) (string, error) {
	body, err := json.Marshal(wireRequest{Model: req.Model, Messages: req.Messages})
	if err != nil {
		return "", err
	}

	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	hreq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		hreq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(hreq)
	if err != nil {
		return "", fmt.Errorf("inference request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read inference response: %w", err)
	}

	var wire wireResponse
	if err := json.Unmarshal(raw, &wire); err != nil {
		return "", fmt.Errorf("decode inference response (status %d): %w", resp.StatusCode, err)
	}
	if wire.Error != nil {
		return "", fmt.Errorf("inference error: %s", wire.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("inference error: status %d", resp.StatusCode)
	}
	if len(wire.Choices) == 0 {
		return "", fmt.Errorf("inference response has no choices")
	}
	return wire.Choices[0].Message.Content, nil
}
