// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package shortcuts implements the /-triggered text-expansion table.
//
// Shortcut entries are merged from an ordered list of configuration sources
// with last-wins semantics, so user files override bundled defaults. Entries
// whose trigger starts with "@" never enter the table; Load surfaces them as
// config tags for the plugin registry to consume.
//
// Expansion is a single left-to-right textual pass that happens before any
// tag is recognized. Inserted expansion text is not rescanned for further
// triggers, so a table without self-referential expansions is idempotent:
// Expand(Expand(x)) == Expand(x).
package shortcuts
