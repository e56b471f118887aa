// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package conversation holds per-conversation history and accumulated context.
package conversation

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ITEM KINDS
// =============================================================================

// ItemKind classifies a context item by the source it was pulled from.
type ItemKind int

const (
	ItemFile ItemKind = iota
	ItemClipboard
	ItemImage
	ItemURL
	ItemOther
)

// String returns the kind's serialized name.
func (k ItemKind) String() string {
	switch k {
	case ItemFile:
		return "file"
	case ItemClipboard:
		return "clipboard"
	case ItemImage:
		return "image"
	case ItemURL:
		return "url"
	default:
		return "other"
	}
}

// =============================================================================
// CONTEXT ITEM
// =============================================================================

// ContextItem is one labeled piece of external content attached to a
// conversation. Items are owned by exactly one conversation and resent with
// every model request until Reset.
type ContextItem struct {
	Kind    ItemKind
	Label   string
	Payload string

	// AddedAt is a per-conversation ordinal, bumped on every add or replace.
	AddedAt int

	// Truncated marks content that was cut at the size cap.
	Truncated bool
}

// Turn is one (role, text) entry of the conversation history.
type Turn struct {
	Role string
	Text string
	At   time.Time
}

// Roles used in conversation history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Sink receives context items produced by tag expansion. Conversation and
// Staging both implement it.
type Sink interface {
	AddItem(item ContextItem)
}

// =============================================================================
// CONVERSATION
// =============================================================================

// Conversation is the history plus accumulated context of one exchange with
// the model. Not safe for concurrent mutation; one submission owns it at a
// time.
type Conversation struct {
	id      string
	history []Turn
	items   []ContextItem
	ordinal int
}

// New creates an empty conversation with a fresh identity.
func New() *Conversation {
	return &Conversation{id: uuid.NewString()}
}

// ID returns the conversation's identity. Reset assigns a new one.
func (c *Conversation) ID() string {
	return c.id
}

// AddItem appends item to the context. If an item with the same (kind, label)
// already exists, the existing item is replaced in place so the context keeps
// its original position; only the ordinal advances. Re-referencing @clipboard
// twice therefore refreshes the snapshot instead of duplicating it.
func (c *Conversation) AddItem(item ContextItem) {
	c.ordinal++
	item.AddedAt = c.ordinal

	for i, have := range c.items {
		if have.Kind == item.Kind && have.Label == item.Label {
			c.items[i] = item
			return
		}
	}
	c.items = append(c.items, item)
}

// AddTurn appends a history turn.
func (c *Conversation) AddTurn(role, text string) {
	c.history = append(c.history, Turn{Role: role, Text: text, At: time.Now()})
}

// Reset clears history and context atomically and assigns a new identity.
// There is no partial clear: after Reset the next request carries nothing.
func (c *Conversation) Reset() {
	c.id = uuid.NewString()
	c.history = nil
	c.items = nil
	c.ordinal = 0
}

// Turns returns a copy of the history in order.
func (c *Conversation) Turns() []Turn {
	out := make([]Turn, len(c.history))
	copy(out, c.history)
	return out
}

// Items returns a copy of the context items in insertion order.
func (c *Conversation) Items() []ContextItem {
	out := make([]ContextItem, len(c.items))
	copy(out, c.items)
	return out
}

// ContextSummary returns the ordered item labels, used to render context
// pills. Pure; no side effects.
func (c *Conversation) ContextSummary() []string {
	labels := make([]string, len(c.items))
	for i, item := range c.items {
		labels[i] = item.Label
	}
	return labels
}

// =============================================================================
// STAGING
// =============================================================================

// Staging buffers context items produced during one expansion pass so that a
// cancelled submission leaves the conversation untouched. Plugins write into
// the staging sink; the engine commits only if the submission is still live.
type Staging struct {
	items []ContextItem
}

// AddItem buffers an item. Dedup against the conversation happens at commit,
// via the conversation's own AddItem.
func (s *Staging) AddItem(item ContextItem) {
	s.items = append(s.items, item)
}

// Items returns the staged items in order.
func (s *Staging) Items() []ContextItem {
	return s.items
}

// CommitTo applies the staged items to conv in order.
func (s *Staging) CommitTo(conv *Conversation) {
	for _, item := range s.items {
		conv.AddItem(item)
	}
}
