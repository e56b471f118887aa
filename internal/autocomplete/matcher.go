// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package autocomplete ranks live-typing suggestions for / and @ fragments.
package autocomplete

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/jeranaias/quickllm/internal/index"
	"github.com/jeranaias/quickllm/internal/shortcuts"
	"github.com/jeranaias/quickllm/internal/tags"
)

// Limit caps the total suggestion count to bound rendering cost.
const Limit = 10

// Matcher ranks suggestions for an in-progress / or @ fragment against the
// shortcut table, the plugin registry's prefixes, and the file index.
type Matcher struct {
	table    *shortcuts.Table
	registry *tags.Registry
	files    *index.Indexer
}

// New returns a matcher over the given sources. The indexer may still be
// building; suggestions simply degrade to fewer results.
func New(table *shortcuts.Table, registry *tags.Registry, files *index.Indexer) *Matcher {
	return &Matcher{table: table, registry: registry, files: files}
}

// Suggest returns up to Limit suggestions for fragment, which includes its
// leading prefix character as produced by scanner.FragmentAt.
func (m *Matcher) Suggest(fragment string) []tags.Suggestion {
	if fragment == "" {
		return nil
	}
	switch fragment[0] {
	case '/':
		return m.suggestShortcuts(fragment)
	case '@':
		return m.suggestTags(fragment)
	}
	return nil
}

// =============================================================================
// SHORTCUT SUGGESTIONS
// =============================================================================

// suggestShortcuts matches fragment against shortcut triggers, case-sensitive
// prefix match, alphabetical.
func (m *Matcher) suggestShortcuts(fragment string) []tags.Suggestion {
	var hits []string
	for _, trig := range m.table.Triggers() {
		if strings.HasPrefix(trig, fragment) {
			hits = append(hits, trig)
		}
	}
	sort.Strings(hits)

	out := make([]tags.Suggestion, 0, len(hits))
	for _, trig := range hits {
		if len(out) == Limit {
			break
		}
		out = append(out, tags.Suggestion{InsertText: trig, DisplayText: trig})
	}
	return out
}

// =============================================================================
// TAG SUGGESTIONS
// =============================================================================

// suggestTags unions plugin static prefixes, plugin dynamic suggestions, and
// file-index hits, in that order. Static prefixes surface from the first
// character; file search needs a path-like fragment or three typed
// characters.
func (m *Matcher) suggestTags(fragment string) []tags.Suggestion {
	out := make([]tags.Suggestion, 0, Limit)

	var static []string
	for _, prefix := range m.registry.Prefixes() {
		if strings.HasPrefix(prefix, fragment) {
			static = append(static, prefix)
		}
	}
	sort.Strings(static)
	for _, prefix := range static {
		out = append(out, tags.Suggestion{
			InsertText:  prefix,
			DisplayText: m.registry.DisplayString(prefix),
		})
	}

	for _, s := range m.registry.Suggestions(fragment) {
		if len(out) == Limit {
			return out
		}
		out = append(out, s)
	}

	partial := fragment[1:]
	if query, ok := fileQuery(partial); ok {
		for _, e := range m.files.Search(query, Limit) {
			if len(out) == Limit {
				break
			}
			out = append(out, tags.Suggestion{
				InsertText:  insertPath(e.Path),
				DisplayText: e.Basename,
				Icon:        "📄",
			})
		}
	}

	if len(out) > Limit {
		out = out[:Limit]
	}
	return out
}

// fileQuery decides whether partial should hit the file index and, if so,
// what to search for. Path-like partials search on their final component;
// plain text needs the index's minimum length.
func fileQuery(partial string) (string, bool) {
	if strings.HasPrefix(partial, "/") || strings.HasPrefix(partial, "~") {
		base := filepath.Base(partial)
		if base == "/" || base == "~" || base == "." {
			return "", false
		}
		return base, true
	}
	if len(partial) >= index.MinQueryLength {
		return partial, true
	}
	return "", false
}

// insertPath formats a file path as an insertable tag, quoting it when the
// path contains whitespace the scanner would otherwise split on.
func insertPath(path string) string {
	if strings.ContainsAny(path, " \t") {
		return `@"` + path + `"`
	}
	return "@" + path
}
