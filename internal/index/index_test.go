// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package index builds and searches the note-file index behind path-tag
// autocomplete.
package index

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func buildTestIndex(t *testing.T, roots ...string) *Indexer {
	t.Helper()
	ix := New(zerolog.Nop())
	ix.Build(roots)
	return ix
}

// =============================================================================
// BUILD TESTS
// =============================================================================

func TestBuild_FiltersExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.md", "a")
	writeFile(t, dir, "todo.txt", "b")
	writeFile(t, dir, "image.png", "c")
	writeFile(t, dir, "script.sh", "d")
	writeFile(t, dir, "sub/deep.md", "e")

	ix := buildTestIndex(t, dir)
	if got := ix.Len(); got != 3 {
		t.Errorf("indexed %d files, want 3 (.md and .txt only, recursive)", got)
	}
}

func TestBuild_MissingRootSkipped(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "keep.md", "a")

	ix := buildTestIndex(t, filepath.Join(dir, "does-not-exist"), dir)
	if got := ix.Len(); got != 1 {
		t.Errorf("indexed %d files, want 1 (bad root skipped, good root kept)", got)
	}
}

func TestBuild_EmptyBeforeFirstBuild(t *testing.T) {
	ix := New(zerolog.Nop())
	if got := ix.Search("notes", 0); got != nil {
		t.Errorf("Search before build = %v, want nil", got)
	}
}

// =============================================================================
// SEARCH TESTS
// =============================================================================

func TestSearch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "meeting-notes.md", "")
	writeFile(t, dir, "notes.md", "")
	writeFile(t, dir, "NOTES-old.txt", "")
	writeFile(t, dir, "recipes.md", "")
	ix := buildTestIndex(t, dir)

	tests := []struct {
		name  string
		query string
		want  []string // basenames in expected order
	}{
		{"below min length", "no", nil},
		{"no match", "zzz", nil},
		{
			// Position 0 matches before position 8, ties alphabetical.
			"ordered by position then name",
			"notes",
			[]string{"NOTES-old.txt", "notes.md", "meeting-notes.md"},
		},
		{"case insensitive", "NoTeS", []string{"NOTES-old.txt", "notes.md", "meeting-notes.md"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ix.Search(tc.query, 0)
			if len(got) != len(tc.want) {
				t.Fatalf("Search(%q) returned %d entries, want %d", tc.query, len(got), len(tc.want))
			}
			for i := range tc.want {
				if got[i].Basename != tc.want[i] {
					t.Errorf("result %d = %q, want %q", i, got[i].Basename, tc.want[i])
				}
			}
		})
	}
}

func TestSearch_Limit(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		"plan-a.md", "plan-b.md", "plan-c.md", "plan-d.md", "plan-e.md",
		"plan-f.md", "plan-g.md", "plan-h.md", "plan-i.md", "plan-j.md",
		"plan-k.md", "plan-l.md",
	}
	for _, n := range names {
		writeFile(t, dir, n, "")
	}
	ix := buildTestIndex(t, dir)

	if got := len(ix.Search("plan", 0)); got != DefaultLimit {
		t.Errorf("Search with default limit returned %d entries, want %d", got, DefaultLimit)
	}
	if got := len(ix.Search("plan", 3)); got != 3 {
		t.Errorf("Search with limit 3 returned %d entries, want 3", got)
	}
}

func TestSearch_NoMatchReturnsNil(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.md", "")
	ix := buildTestIndex(t, dir)

	if got := ix.Search("zzz", 0); got != nil {
		t.Errorf("Search with no matches = %#v, want nil", got)
	}
}

func TestSearch_BasenameOnly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "projects/readme.md", "")
	ix := buildTestIndex(t, dir)

	if got := ix.Search("projects", 0); len(got) != 0 {
		t.Errorf("Search matched directory component: %v", got)
	}
	if got := ix.Search("readme", 0); len(got) != 1 {
		t.Errorf("Search(%q) returned %d entries, want 1", "readme", len(got))
	}
}
