// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package autocomplete ranks live-typing suggestions for / and @ fragments.
//
// Slash fragments match shortcut triggers with a case-sensitive prefix match.
// At-fragments union three sources in a fixed order: plugin static prefixes,
// plugin dynamic suggestions, then file-index results once the fragment looks
// path-like or has at least three characters. The total is capped at ten.
//
// The matcher only reads immutable state (table, registry, index snapshot),
// so it is safe to call from the input loop on every keystroke.
package autocomplete
