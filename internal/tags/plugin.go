// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tags maps @-tag prefixes to plugins and dispatches tag expansion.
package tags

import (
	"context"

	"github.com/jeranaias/quickllm/internal/conversation"
)

// =============================================================================
// CAPABILITY INTERFACES
// =============================================================================

// Suggestion is one autocomplete candidate. InsertText is what lands in the
// input field; DisplayText is what the suggestion list shows.
type Suggestion struct {
	InsertText  string
	DisplayText string
	Icon        string
}

// Plugin is the core tag capability. A plugin claims a set of @-prefixes and
// expands any tag matching one of them.
//
// Expand may block on I/O (file read, network fetch, capture). It writes
// context items into sink and returns the inline text spliced in place of the
// tag, usually a short marker. Returning an error leaves the tag verbatim in
// the prompt; it never aborts the surrounding submission.
type Plugin interface {
	Name() string
	Prefixes() []string
	Expand(ctx context.Context, tag string, sink conversation.Sink) (string, error)

	// DisplayString renders a short pill label for a resolved tag.
	DisplayString(tag string) string
}

// ConfigHandler is the optional config-tag capability. Config prefixes appear
// only in configuration sources, never in live user text, and are dispatched
// once at load time.
type ConfigHandler interface {
	ConfigPrefixes() []string
	OnConfigTag(trigger, value string) error
}

// Suggester is the optional dynamic-autocomplete capability.
type Suggester interface {
	AutocompleteSuggestions(partial string) []Suggestion
}
