// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package index builds and searches the note-file index behind path-tag
// autocomplete.
package index

import (
	"io/fs"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/text/unicode/norm"
)

// =============================================================================
// TYPES
// =============================================================================

// Entry is one indexed note file.
type Entry struct {
	Path      string
	Basename  string
	SizeBytes int64
}

// snapshot is an immutable published index state. folded holds the
// NFC-normalized, lower-cased basenames parallel to entries, precomputed so
// live-typing search never allocates per entry.
type snapshot struct {
	entries []Entry
	folded  []string
}

// Indexer builds the index in the background and publishes immutable
// snapshots. Readers always see either the previous snapshot or the next one,
// never a half-built state.
type Indexer struct {
	log  zerolog.Logger
	snap atomic.Pointer[snapshot]
}

// indexedExtensions are the file types worth surfacing as note suggestions.
var indexedExtensions = map[string]bool{
	".txt": true,
	".md":  true,
}

// New returns an Indexer with an empty published snapshot, so search works
// (and returns nothing) before any build completes.
func New(log zerolog.Logger) *Indexer {
	ix := &Indexer{log: log}
	ix.snap.Store(&snapshot{})
	return ix
}

// =============================================================================
// BUILD
// =============================================================================

// Build enumerates .txt and .md files under each root and publishes the
// result. A snapshot is published after every root so autocomplete degrades
// gracefully while a build is still running: partial results, never blocking.
//
// RELIABILITY: an unreadable root is logged and skipped; indexing continues
// with the remaining roots and never fails the application.
func (ix *Indexer) Build(roots []string) {
	var entries []Entry

	for _, root := range roots {
		added := 0
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Unreadable subtree: skip it, keep walking the rest.
				ix.log.Warn().Err(err).Str("path", path).Msg("index: skipping unreadable entry")
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			if !indexedExtensions[strings.ToLower(filepath.Ext(path))] {
				return nil
			}

			info, err := d.Info()
			if err != nil {
				return nil
			}
			entries = append(entries, Entry{
				Path:      path,
				Basename:  filepath.Base(path),
				SizeBytes: info.Size(),
			})
			added++
			return nil
		})
		if err != nil {
			ix.log.Warn().Err(err).Str("root", root).Msg("index: root not readable, skipped")
			continue
		}

		ix.log.Debug().Str("root", root).Int("files", added).Msg("index: root scanned")
		ix.publish(entries)
	}

	ix.publish(entries)
	ix.log.Info().Int("files", len(entries)).Msg("index: build complete")
}

// publish folds basenames and swaps in a fresh immutable snapshot.
func (ix *Indexer) publish(entries []Entry) {
	snap := &snapshot{
		entries: make([]Entry, len(entries)),
		folded:  make([]string, len(entries)),
	}
	copy(snap.entries, entries)
	for i, e := range entries {
		snap.folded[i] = fold(e.Basename)
	}
	ix.snap.Store(snap)
}

// Len returns the number of entries in the current snapshot.
func (ix *Indexer) Len() int {
	return len(ix.snap.Load().entries)
}

// fold normalizes a name for case-insensitive matching. NFC normalization
// makes macOS NFD filenames match composed query text.
func fold(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}
