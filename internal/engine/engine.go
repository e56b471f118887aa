// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package engine runs one submission through expansion, tokenization, and
// tag dispatch.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jeranaias/quickllm/internal/conversation"
	"github.com/jeranaias/quickllm/internal/scanner"
	"github.com/jeranaias/quickllm/internal/shortcuts"
	"github.com/jeranaias/quickllm/internal/tags"
)

// DefaultClipboardMarker flags clipboard content meant as a full input.
const DefaultClipboardMarker = "@@"

// Result is the outcome of one processed submission.
type Result struct {
	// Prompt is the fully expanded text handed to inference.
	Prompt string

	// Tags lists the tag tokens encountered, claimed or not, in order.
	Tags []string

	// Warnings carries per-tag expansion failures, one line each. A warning
	// never aborts the submission.
	Warnings []string
}

// Engine owns the per-submission pipeline. The table and registry are
// read-only here; config reload swaps in a whole new Engine.
type Engine struct {
	table    *shortcuts.Table
	registry *tags.Registry
	marker   string
	log      zerolog.Logger
}

// New returns an engine over the loaded table and registry. An empty marker
// selects DefaultClipboardMarker.
func New(table *shortcuts.Table, registry *tags.Registry, marker string, log zerolog.Logger) *Engine {
	if marker == "" {
		marker = DefaultClipboardMarker
	}
	return &Engine{table: table, registry: registry, marker: marker, log: log}
}

// =============================================================================
// SUBMISSION PIPELINE
// =============================================================================

// Process runs input through shortcut expansion, tag tokenization, and
// sequential plugin dispatch, as one uninterrupted unit of work. Context
// items produced by plugins are staged and committed to conv only if ctx is
// still live when the pass finishes; a cancelled submission mutates nothing.
//
// Failure policy: an unclaimed tag is ordinary text and stays verbatim; a
// plugin failure leaves its tag verbatim and surfaces a warning; neither
// stops the pass.
func (e *Engine) Process(ctx context.Context, conv *conversation.Conversation, input string) (*Result, error) {
	expanded := e.table.Expand(input)
	toks := scanner.Tokenize(expanded)

	var staging conversation.Staging
	res := &Result{}

	var b strings.Builder
	b.Grow(len(expanded))
	last := 0

	for _, tok := range toks {
		b.WriteString(expanded[last:tok.Start])
		last = tok.End
		res.Tags = append(res.Tags, tok.Raw)

		rep, err := e.registry.Expand(ctx, tok.Raw, &staging)
		switch {
		case errors.Is(err, tags.ErrUnclaimed):
			b.WriteString(expanded[tok.Start:tok.End])
		case err != nil:
			e.log.Warn().Err(err).Str("tag", tok.Raw).Msg("engine: tag expansion failed")
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s: %v", tok.Raw, err))
			b.WriteString(expanded[tok.Start:tok.End])
		default:
			b.WriteString(rep)
		}
	}
	b.WriteString(expanded[last:])
	res.Prompt = b.String()

	// An abandoned submission leaves the conversation untouched: in-flight
	// plugin calls above were allowed to finish, their results are dropped.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	staging.CommitTo(conv)
	return res, nil
}

// =============================================================================
// CLIPBOARD TRIGGER
// =============================================================================

// ClipboardTrigger checks external clipboard content for the trigger marker.
// When content starts with it, the remainder is returned as a full input for
// the normal pipeline.
func (e *Engine) ClipboardTrigger(content string) (string, bool) {
	if !strings.HasPrefix(content, e.marker) {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(content, e.marker)), true
}
