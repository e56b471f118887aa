// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package index builds and searches the note-file index behind path-tag
// autocomplete.
//
// The Indexer walks the configured root directories once at startup,
// collecting .txt and .md files into an in-memory list, and publishes the
// result as an immutable snapshot behind an atomic pointer. Builds run in the
// background; until a build completes, search simply sees fewer entries.
// Unreadable roots are logged and skipped, never fatal.
//
// Search is a case-insensitive substring match over basenames only, ordered
// by match position then name, with a minimum query length of three and a
// result cap of ten.
package index
