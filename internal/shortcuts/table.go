// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package shortcuts implements the /-triggered text-expansion table.
package shortcuts

import (
	"fmt"
	"sort"
	"strings"
)

// =============================================================================
// TYPES
// =============================================================================

// Entry is a single shortcut: a /-prefixed trigger and its expansion text.
type Entry struct {
	Trigger   string
	Expansion string
}

// Source is one configuration source's shortcut list, in file order. Sources
// are merged last-wins, so a user file can override a bundled default.
type Source struct {
	// Name identifies the source in error messages ("defaults",
	// "~/.quickllm/extra.toml").
	Name    string
	Entries []Entry
}

// ConfigTag is an @-triggered entry found in a shortcut source. These never
// enter the expansion table; the caller routes them to plugin config dispatch.
type ConfigTag struct {
	Source  string
	Trigger string
	Value   string
}

// ConfigurationError reports a malformed shortcut source. It is fatal at
// startup: the table refuses to load rather than run with a partial merge.
type ConfigurationError struct {
	Source string
	Detail string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("shortcut source %s: %s", e.Source, e.Detail)
}

// =============================================================================
// TABLE
// =============================================================================

// Table is the merged, immutable shortcut table. Rebuilt wholesale on config
// reload, never patched in place.
type Table struct {
	entries map[string]string

	// ordered holds triggers longest-first (ties lexicographic) so that
	// Expand resolves /fixall before /fix deterministically.
	ordered []string
}

// Load merges sources in order with last-wins semantics and returns the table
// plus any @-triggered config tags found along the way. A trigger that starts
// with neither "/" nor "@" is a configuration error.
func Load(sources []Source) (*Table, []ConfigTag, error) {
	entries := make(map[string]string)
	var cfg []ConfigTag

	for _, src := range sources {
		for _, e := range src.Entries {
			switch {
			case strings.HasPrefix(e.Trigger, "@"):
				cfg = append(cfg, ConfigTag{Source: src.Name, Trigger: e.Trigger, Value: e.Expansion})
			case strings.HasPrefix(e.Trigger, "/"):
				entries[e.Trigger] = e.Expansion
			case e.Trigger == "":
				return nil, nil, &ConfigurationError{Source: src.Name, Detail: "empty shortcut trigger"}
			default:
				return nil, nil, &ConfigurationError{
					Source: src.Name,
					Detail: fmt.Sprintf("trigger %q must start with / or @", e.Trigger),
				}
			}
		}
	}

	ordered := make([]string, 0, len(entries))
	for trig := range entries {
		ordered = append(ordered, trig)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if len(ordered[i]) != len(ordered[j]) {
			return len(ordered[i]) > len(ordered[j])
		}
		return ordered[i] < ordered[j]
	})

	return &Table{entries: entries, ordered: ordered}, cfg, nil
}

// Len returns the number of loaded shortcuts.
func (t *Table) Len() int {
	return len(t.entries)
}

// Triggers returns all triggers, longest first. The slice is shared; callers
// must not mutate it.
func (t *Table) Triggers() []string {
	return t.ordered
}

// Lookup returns the expansion for an exact trigger.
func (t *Table) Lookup(trigger string) (string, bool) {
	exp, ok := t.entries[trigger]
	return exp, ok
}

// =============================================================================
// EXPANSION
// =============================================================================

// Expand performs a single left-to-right pass over text, replacing each known
// trigger (matched longest-first, terminated by a non-alphanumeric boundary or
// end of string) with its expansion. The single whitespace character that
// delimits a matched trigger is consumed with it, so an expansion ending in
// ": " joins its argument without a doubled space. Inserted expansion text is
// never rescanned, so expansion cannot recurse.
func (t *Table) Expand(text string) string {
	if len(t.entries) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))

	i := 0
	for i < len(text) {
		if text[i] != '/' {
			b.WriteByte(text[i])
			i++
			continue
		}

		trig, ok := t.matchAt(text, i)
		if !ok {
			b.WriteByte(text[i])
			i++
			continue
		}

		b.WriteString(t.entries[trig])
		i += len(trig)
		if i < len(text) && (text[i] == ' ' || text[i] == '\t') {
			i++
		}
	}

	return b.String()
}

// matchAt returns the longest trigger that matches text at position i with a
// valid boundary after it.
func (t *Table) matchAt(text string, i int) (string, bool) {
	rest := text[i:]
	for _, trig := range t.ordered {
		if strings.HasPrefix(rest, trig) && boundaryAt(text, i+len(trig)) {
			return trig, true
		}
	}
	return "", false
}

// boundaryAt reports whether position i terminates a trigger: end of string or
// a non-alphanumeric byte.
func boundaryAt(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	c := text[i]
	return !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9')
}
