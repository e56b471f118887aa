// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tags maps @-tag prefixes to plugins and dispatches tag expansion.
//
// A Plugin claims a set of @-prefixes at registration; the Registry fails
// fast if two plugins claim the same prefix. Dispatch resolves a tag to the
// plugin with the longest matching prefix, so @clipboard beats @clip when
// both are registered. Tags nobody claims are left verbatim in the prompt.
//
// Expansion has two out-of-band channels besides the returned inline text:
// context items written into a conversation.Sink, and - for config tags like
// @IndexFiles found in configuration sources - a one-shot OnConfigTag call at
// load time.
//
// Bundled plugins: clipboard, file paths (@/ and @~), URLs, screenshot, and
// the @fast/@deep speed hint.
package tags
