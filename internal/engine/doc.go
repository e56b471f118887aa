// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package engine runs one submission through expansion, tokenization, and
// tag dispatch.
//
// Per submission: shortcut expansion is a single textual pass, its output is
// tokenized for @ tags, and each tag dispatches sequentially through the
// plugin registry. Plugins write context items into a staging buffer that
// commits to the conversation only if the submission was not cancelled, so
// an abandoned submission never leaves partial context behind.
//
// The engine also hosts the clipboard trigger: clipboard content starting
// with the configured marker (default "@@") re-enters this same pipeline as
// a full input.
package engine
