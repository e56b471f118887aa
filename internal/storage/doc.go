// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists conversation history in a local SQLite database.
//
// The store keeps turns verbatim and context items by label only; context
// payloads (clipboard snapshots, file content, page bodies) stay in memory
// with the live conversation and die with it. The database lives under
// ~/.quickllm/history.db and is optional: persistence failures degrade the
// app to memory-only, they never block a submission.
package storage
