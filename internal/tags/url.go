// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tags maps @-tag prefixes to plugins and dispatches tag expansion.
package tags

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/jeranaias/quickllm/internal/conversation"
)

// MaxURLBytes caps how much of a fetched page lands in context.
const MaxURLBytes = 64 * 1024

// URLPlugin fetches @http:// and @https:// tags into URL context items.
type URLPlugin struct {
	client  *http.Client
	limiter *rate.Limiter
}

// NewURLPlugin returns a URL plugin with a bounded client and a fetch rate
// limit, so a burst of URL tags in one submission cannot hammer a host.
func NewURLPlugin(client *http.Client) *URLPlugin {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &URLPlugin{
		client:  client,
		limiter: rate.NewLimiter(rate.Every(time.Second), 3),
	}
}

func (p *URLPlugin) Name() string { return "url" }

func (p *URLPlugin) Prefixes() []string { return []string{"@http://", "@https://"} }

// Expand fetches the page body (capped at MaxURLBytes) into a context item
// labeled by host.
func (p *URLPlugin) Expand(ctx context.Context, tag string, sink conversation.Sink) (string, error) {
	raw := strings.TrimPrefix(tag, "@")

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse url %q: %w", raw, err)
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, raw, nil)
	if err != nil {
		return "", err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", u.Host, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: status %d", u.Host, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxURLBytes+1))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", u.Host, err)
	}
	truncated := len(body) > MaxURLBytes
	if truncated {
		body = body[:MaxURLBytes]
	}

	sink.AddItem(conversation.ContextItem{
		Kind:      conversation.ItemURL,
		Label:     raw,
		Payload:   string(body),
		Truncated: truncated,
	})
	return "[url: " + u.Host + "]", nil
}

func (p *URLPlugin) DisplayString(tag string) string {
	if u, err := url.Parse(strings.TrimPrefix(tag, "@")); err == nil && u.Host != "" {
		return "🔗 " + u.Host
	}
	return "🔗 " + tag
}
