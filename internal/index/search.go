// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package index builds and searches the note-file index behind path-tag
// autocomplete.
package index

import (
	"sort"
	"strings"
)

// Search limits. Queries below MinQueryLength return nothing; results are
// capped at DefaultLimit to bound suggestion rendering cost.
const (
	MinQueryLength = 3
	DefaultLimit   = 10
)

// match pairs an entry with where the query matched inside its basename.
type match struct {
	entry Entry
	pos   int
}

// Search returns entries whose basename contains query, case-insensitive.
// Results are ordered by match position (earlier matches first), then by
// basename, and capped at limit. A query shorter than MinQueryLength returns
// an empty result regardless of index contents; limit <= 0 means
// DefaultLimit.
//
// PERFORMANCE: search reads one immutable snapshot, so it is lock-free and
// safe to call from the input loop while a build is publishing.
func (ix *Indexer) Search(query string, limit int) []Entry {
	if len(query) < MinQueryLength {
		return nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	snap := ix.snap.Load()
	folded := fold(query)

	var matches []match
	for i, name := range snap.folded {
		if pos := strings.Index(name, folded); pos >= 0 {
			matches = append(matches, match{entry: snap.entries[i], pos: pos})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].pos != matches[j].pos {
			return matches[i].pos < matches[j].pos
		}
		return matches[i].entry.Basename < matches[j].entry.Basename
	})

	if len(matches) == 0 {
		return nil
	}
	if len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]Entry, len(matches))
	for i, m := range matches {
		out[i] = m.entry
	}
	return out
}
