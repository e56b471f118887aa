// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tags maps @-tag prefixes to plugins and dispatches tag expansion.
package tags

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/jeranaias/quickllm/internal/conversation"
)

// clipboardLabel is the dedupe label for the clipboard context item; repeated
// @clipboard references refresh one snapshot instead of stacking copies.
const clipboardLabel = "[clipboard]"

// ClipboardPlugin pulls the current OS clipboard text into context.
type ClipboardPlugin struct {
	// Read returns the clipboard text. Defaults to the system clipboard;
	// tests inject their own.
	Read func() (string, error)
}

// NewClipboardPlugin returns a plugin backed by the system clipboard.
func NewClipboardPlugin() *ClipboardPlugin {
	return &ClipboardPlugin{Read: clipboard.ReadAll}
}

func (p *ClipboardPlugin) Name() string { return "clipboard" }

func (p *ClipboardPlugin) Prefixes() []string { return []string{"@clipboard"} }

// Expand snapshots the clipboard into a context item and splices the pill
// marker in place of the tag.
func (p *ClipboardPlugin) Expand(_ context.Context, _ string, sink conversation.Sink) (string, error) {
	text, err := p.Read()
	if err != nil {
		return "", fmt.Errorf("read clipboard: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("clipboard is empty")
	}

	sink.AddItem(conversation.ContextItem{
		Kind:    conversation.ItemClipboard,
		Label:   clipboardLabel,
		Payload: text,
	})
	return clipboardLabel, nil
}

func (p *ClipboardPlugin) DisplayString(string) string { return "📋 clipboard" }
