// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tags maps @-tag prefixes to plugins and dispatches tag expansion.
package tags

import (
	"context"
	"strings"

	"github.com/jeranaias/quickllm/internal/conversation"
)

// speedLabel keys the speed hint in context; the last @fast/@deep wins via
// the (kind, label) dedupe.
const speedLabel = "speed"

// SpeedPlugin records a model-speed hint (@fast, @deep) as a context item
// consumed by the inference layer when picking a model.
type SpeedPlugin struct{}

func NewSpeedPlugin() *SpeedPlugin { return &SpeedPlugin{} }

func (p *SpeedPlugin) Name() string { return "speed" }

func (p *SpeedPlugin) Prefixes() []string { return []string{"@fast", "@deep"} }

// Expand stores the hint and splices nothing: a speed tag is pure routing,
// not prompt text.
func (p *SpeedPlugin) Expand(_ context.Context, tag string, sink conversation.Sink) (string, error) {
	sink.AddItem(conversation.ContextItem{
		Kind:    conversation.ItemOther,
		Label:   speedLabel,
		Payload: strings.TrimPrefix(tag, "@"),
	})
	return "", nil
}

func (p *SpeedPlugin) DisplayString(tag string) string {
	if tag == "@deep" {
		return "🧠 deep"
	}
	return "⚡ fast"
}
