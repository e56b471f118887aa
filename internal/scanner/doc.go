// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package scanner provides the low-level token scanner shared by tag
// tokenization and autocomplete fragment tracking.
//
// The scanner carves @ tag and / shortcut tokens out of free text under the
// quoting and escaping rules of the input language:
//
//   - @"~/My Notes/plan.md" - quote-delimited, quotes stripped
//   - @/notes/a\ b.txt      - backslash-escaped spaces kept in the token
//   - @clipboard            - bare token, ends at the first whitespace
//
// # Key Functions
//
//   - ScanToken: scan a single token at a known prefix position
//   - Tokenize: produce the ordered tag spans of a full input line
//   - FragmentAt: extract the in-progress fragment under the cursor
package scanner
