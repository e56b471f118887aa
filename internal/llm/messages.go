// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package llm is the inference boundary: prompt in, assistant text out.
package llm

import (
	"fmt"
	"strings"

	"github.com/jeranaias/quickllm/internal/conversation"
)

// systemPrompt frames the assistant for quick one-shot use.
const systemPrompt = "You are a quick assistant invoked from a prompt box. " +
	"Answer directly and concisely. Attached context blocks describe material " +
	"the user referenced with @ tags."

// BuildMessages serializes the conversation for the wire: system prompt,
// one context block carrying the full current context set, then the turn
// history, then the new prompt. The whole context rides along every request,
// not just items referenced in the latest turn.
func BuildMessages(conv *conversation.Conversation, prompt string) []Message {
	msgs := []Message{{Role: "system", Content: systemPrompt}}

	if block := contextBlock(conv.Items()); block != "" {
		msgs = append(msgs, Message{Role: "system", Content: block})
	}

	for _, turn := range conv.Turns() {
		msgs = append(msgs, Message{Role: turn.Role, Content: turn.Text})
	}

	return append(msgs, Message{Role: conversation.RoleUser, Content: prompt})
}

// contextBlock renders context items as tagged blocks. Speed hints are
// routing metadata, not prompt material, so they are skipped here.
func contextBlock(items []conversation.ContextItem) string {
	var b strings.Builder
	for _, item := range items {
		if item.Kind == conversation.ItemOther {
			continue
		}
		note := ""
		if item.Truncated {
			note = ` truncated="true"`
		}
		fmt.Fprintf(&b, "<context kind=%q label=%q%s>\n%s\n</context>\n",
			item.Kind, item.Label, note, item.Payload)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// PickModel resolves the model name from the default and the conversation's
// speed hint, if any.
func PickModel(conv *conversation.Conversation, def, fast, deep string) string {
	for _, item := range conv.Items() {
		if item.Kind != conversation.ItemOther || item.Label != "speed" {
			continue
		}
		switch item.Payload {
		case "fast":
			if fast != "" {
				return fast
			}
		case "deep":
			if deep != "" {
				return deep
			}
		}
	}
	return def
}
