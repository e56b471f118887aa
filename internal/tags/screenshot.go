// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tags maps @-tag prefixes to plugins and dispatches tag expansion.
package tags

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/jeranaias/quickllm/internal/conversation"
)

// screenshotLabel is the dedupe label for the screenshot context item; a new
// capture replaces the previous one.
const screenshotLabel = "[screenshot]"

// Capturer is the OS screen-capture primitive. It lives outside this core;
// the plugin only knows the interface.
type Capturer interface {
	Capture(ctx context.Context) ([]byte, error)
}

// ScreenshotPlugin attaches a fresh screen capture as an image context item.
type ScreenshotPlugin struct {
	cap Capturer
}

func NewScreenshotPlugin(c Capturer) *ScreenshotPlugin {
	return &ScreenshotPlugin{cap: c}
}

func (p *ScreenshotPlugin) Name() string { return "screenshot" }

func (p *ScreenshotPlugin) Prefixes() []string { return []string{"@screenshot"} }

func (p *ScreenshotPlugin) Expand(ctx context.Context, _ string, sink conversation.Sink) (string, error) {
	if p.cap == nil {
		return "", fmt.Errorf("no screen capture available")
	}
	img, err := p.cap.Capture(ctx)
	if err != nil {
		return "", fmt.Errorf("capture screen: %w", err)
	}

	sink.AddItem(conversation.ContextItem{
		Kind:    conversation.ItemImage,
		Label:   screenshotLabel,
		Payload: base64.StdEncoding.EncodeToString(img),
	})
	return screenshotLabel, nil
}

func (p *ScreenshotPlugin) DisplayString(string) string { return "📸 screenshot" }
