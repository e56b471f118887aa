// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads quickllm configuration from ordered TOML sources.
//
// Sources load in a fixed precedence order: bundled defaults first, then
// every *.toml file under ~/.quickllm sorted by name. Settings merge
// last-wins field by field. Each source's shortcuts array is handed to the
// shortcut table, which performs its own last-wins merge and routes
// @-triggered entries to plugin config dispatch.
//
// Malformed TOML anywhere is fatal at startup. After startup, Watch rebuilds
// everything wholesale when a source file changes; the loaded configuration
// is never patched in place.
package config
