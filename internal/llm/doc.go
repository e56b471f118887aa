// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package llm is the inference boundary: prompt in, assistant text out.
//
// The Client interface keeps the rest of the application ignorant of wire
// details; HTTPClient implements it against an OpenAI-style chat-completions
// endpoint. BuildMessages serializes a conversation - system framing, the
// full current context set as tagged blocks, the turn history, and the new
// prompt. PickModel resolves the @fast/@deep speed hint into a model name.
package llm
