// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tags maps @-tag prefixes to plugins and dispatches tag expansion.
package tags

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jeranaias/quickllm/internal/conversation"
)

// ErrUnclaimed is returned by Expand when no registered plugin claims the
// tag's prefix. The caller leaves such tags verbatim; this is not a failure.
var ErrUnclaimed = errors.New("no plugin claims tag prefix")

// ConfigurationError reports an invalid registry or config-tag setup. Fatal
// at startup, before any conversation can begin.
type ConfigurationError struct {
	Detail string
}

func (e *ConfigurationError) Error() string {
	return "tag registry: " + e.Detail
}

// =============================================================================
// REGISTRY
// =============================================================================

// Registry maps tag prefixes to exactly one plugin each. It is read-only
// after construction; config reload rebuilds it wholesale.
type Registry struct {
	plugins []Plugin

	byPrefix map[string]Plugin

	// prefixes holds all claimed prefixes longest-first, so dispatch resolves
	// @clipboard before @clip deterministically.
	prefixes []string

	byConfigPrefix map[string]ConfigHandler
}

// NewRegistry registers plugins and fails fast if two plugins claim the same
// prefix, or the same config prefix. A prefix that is a proper prefix of
// another (@clip vs @clipboard) is allowed; dispatch picks the longest match.
func NewRegistry(plugins ...Plugin) (*Registry, error) {
	r := &Registry{
		plugins:        plugins,
		byPrefix:       make(map[string]Plugin),
		byConfigPrefix: make(map[string]ConfigHandler),
	}

	for _, p := range plugins {
		for _, prefix := range p.Prefixes() {
			if !strings.HasPrefix(prefix, "@") {
				return nil, &ConfigurationError{
					Detail: fmt.Sprintf("plugin %s: prefix %q must start with @", p.Name(), prefix),
				}
			}
			if have, dup := r.byPrefix[prefix]; dup {
				return nil, &ConfigurationError{
					Detail: fmt.Sprintf("prefix %q claimed by both %s and %s", prefix, have.Name(), p.Name()),
				}
			}
			r.byPrefix[prefix] = p
			r.prefixes = append(r.prefixes, prefix)
		}

		ch, ok := p.(ConfigHandler)
		if !ok {
			continue
		}
		for _, prefix := range ch.ConfigPrefixes() {
			if _, dup := r.byConfigPrefix[prefix]; dup {
				return nil, &ConfigurationError{
					Detail: fmt.Sprintf("config prefix %q claimed twice", prefix),
				}
			}
			r.byConfigPrefix[prefix] = ch
		}
	}

	sort.Slice(r.prefixes, func(i, j int) bool {
		if len(r.prefixes[i]) != len(r.prefixes[j]) {
			return len(r.prefixes[i]) > len(r.prefixes[j])
		}
		return r.prefixes[i] < r.prefixes[j]
	})

	return r, nil
}

// Prefixes returns all claimed tag prefixes, longest first. The slice is
// shared; callers must not mutate it.
func (r *Registry) Prefixes() []string {
	return r.prefixes
}

// Resolve returns the plugin whose prefix is the longest match for tag.
func (r *Registry) Resolve(tag string) (Plugin, bool) {
	for _, prefix := range r.prefixes {
		if strings.HasPrefix(tag, prefix) {
			return r.byPrefix[prefix], true
		}
	}
	return nil, false
}

// =============================================================================
// DISPATCH
// =============================================================================

// Expand dispatches tag to its claiming plugin and returns the inline
// replacement text. ErrUnclaimed means no plugin claims the prefix; any other
// error is the plugin's own expansion failure. Either way the caller decides
// what to splice, so a failing tag never aborts the pass.
func (r *Registry) Expand(ctx context.Context, tag string, sink conversation.Sink) (string, error) {
	p, ok := r.Resolve(tag)
	if !ok {
		return "", ErrUnclaimed
	}
	out, err := p.Expand(ctx, tag, sink)
	if err != nil {
		return "", fmt.Errorf("plugin %s: %w", p.Name(), err)
	}
	return out, nil
}

// DispatchConfig routes a config tag found in a configuration source to the
// plugin that claims it. An unclaimed config trigger is a configuration
// error: unlike live tags, config entries have nowhere sensible to fall back.
func (r *Registry) DispatchConfig(trigger, value string) error {
	ch, ok := r.byConfigPrefix[trigger]
	if !ok {
		return &ConfigurationError{Detail: fmt.Sprintf("unknown config tag %q", trigger)}
	}
	if err := ch.OnConfigTag(trigger, value); err != nil {
		return fmt.Errorf("config tag %s: %w", trigger, err)
	}
	return nil
}

// DisplayString renders the pill label for tag via its claiming plugin, or
// the tag itself when unclaimed.
func (r *Registry) DisplayString(tag string) string {
	if p, ok := r.Resolve(tag); ok {
		return p.DisplayString(tag)
	}
	return tag
}

// Suggestions collects dynamic suggestions for a partial @-fragment from
// every plugin implementing Suggester, in registration order.
func (r *Registry) Suggestions(partial string) []Suggestion {
	var out []Suggestion
	for _, p := range r.plugins {
		s, ok := p.(Suggester)
		if !ok {
			continue
		}
		out = append(out, s.AutocompleteSuggestions(partial)...)
	}
	return out
}
