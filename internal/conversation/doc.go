// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package conversation holds per-conversation history and accumulated context.
//
// A Conversation owns an ordered turn history and an ordered set of
// ContextItems deduplicated by (kind, label). Context is conversation-scoped,
// not turn-scoped: the full current item set rides along with every model
// request until an explicit Reset, which clears history and context together.
//
// Staging decouples tag expansion from the conversation: an expansion pass
// writes items into a Staging sink, and the engine commits them only if the
// submission was not cancelled mid-flight.
package conversation
