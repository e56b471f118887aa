// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tags maps @-tag prefixes to plugins and dispatches tag expansion.
package tags

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/quickllm/internal/conversation"
)

// MaxFileBytes caps how much file content a single @/path tag pulls into
// context. Larger files are truncated, not rejected.
const MaxFileBytes = 10 * 1024

// maxPillWidth caps pill labels at a terminal-cell width.
const maxPillWidth = 24

// FilePlugin resolves @/absolute and @~/home-relative path tags into file
// content context items. It also owns the @IndexFiles config tag, collecting
// the note-directory roots the file indexer builds from.
type FilePlugin struct {
	// home resolves "~" prefixes. Defaults to the user's home directory.
	home string

	roots []string
}

// NewFilePlugin returns a file plugin resolving "~" against home. Pass ""
// to use the current user's home directory.
func NewFilePlugin(home string) *FilePlugin {
	if home == "" {
		home, _ = os.UserHomeDir()
	}
	return &FilePlugin{home: home}
}

func (p *FilePlugin) Name() string { return "file" }

func (p *FilePlugin) Prefixes() []string { return []string{"@/", "@~"} }

// Expand reads the tagged file, truncating at MaxFileBytes, and attaches it
// as a context item labeled by basename.
func (p *FilePlugin) Expand(_ context.Context, tag string, sink conversation.Sink) (string, error) {
	path := p.resolve(strings.TrimPrefix(tag, "@"))

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	// Read one byte past the cap to distinguish exactly-at-cap from over.
	buf, err := io.ReadAll(io.LimitReader(f, MaxFileBytes+1))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	truncated := len(buf) > MaxFileBytes
	if truncated {
		buf = buf[:MaxFileBytes]
	}

	base := filepath.Base(path)
	sink.AddItem(conversation.ContextItem{
		Kind:      conversation.ItemFile,
		Label:     base,
		Payload:   string(buf),
		Truncated: truncated,
	})
	return "[file: " + base + "]", nil
}

// resolve expands a leading "~" against the configured home directory.
func (p *FilePlugin) resolve(path string) string {
	if path == "~" {
		return p.home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(p.home, path[2:])
	}
	return path
}

func (p *FilePlugin) DisplayString(tag string) string {
	base := filepath.Base(strings.TrimPrefix(tag, "@"))
	return "📄 " + runewidth.Truncate(base, maxPillWidth, "…")
}

// =============================================================================
// CONFIG TAGS
// =============================================================================

func (p *FilePlugin) ConfigPrefixes() []string { return []string{"@IndexFiles"} }

// OnConfigTag collects an index root from configuration. Values are
// ~-expanded but not validated here; the indexer logs and skips unreadable
// roots at build time.
func (p *FilePlugin) OnConfigTag(_, value string) error {
	root := strings.TrimSpace(value)
	if root == "" {
		return fmt.Errorf("empty index root")
	}
	p.roots = append(p.roots, p.resolve(root))
	return nil
}

// IndexRoots returns the note-directory roots collected from configuration,
// in source order.
func (p *FilePlugin) IndexRoots() []string {
	return p.roots
}
