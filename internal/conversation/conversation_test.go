// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package conversation holds per-conversation history and accumulated context.
package conversation

import (
	"testing"
)

// =============================================================================
// CONTEXT ITEM TESTS
// =============================================================================

func TestAddItem_DedupeReplacesInPlace(t *testing.T) {
	c := New()
	c.AddItem(ContextItem{Kind: ItemClipboard, Label: "[clipboard]", Payload: "first"})
	c.AddItem(ContextItem{Kind: ItemFile, Label: "notes.md", Payload: "body"})
	c.AddItem(ContextItem{Kind: ItemClipboard, Label: "[clipboard]", Payload: "second"})

	items := c.Items()
	if len(items) != 2 {
		t.Fatalf("context length = %d, want 2", len(items))
	}

	// The clipboard item keeps its original position with fresh payload.
	if items[0].Kind != ItemClipboard || items[0].Payload != "second" {
		t.Errorf("item 0 = %+v, want replaced clipboard snapshot in place", items[0])
	}
	if items[0].AddedAt <= items[1].AddedAt {
		t.Errorf("replaced item ordinal %d not newer than %d", items[0].AddedAt, items[1].AddedAt)
	}
}

func TestAddItem_SameLabelDifferentKind(t *testing.T) {
	c := New()
	c.AddItem(ContextItem{Kind: ItemFile, Label: "x", Payload: "a"})
	c.AddItem(ContextItem{Kind: ItemURL, Label: "x", Payload: "b"})

	if got := len(c.Items()); got != 2 {
		t.Errorf("context length = %d, want 2 (dedupe key is kind AND label)", got)
	}
}

func TestContextSummary(t *testing.T) {
	c := New()
	c.AddItem(ContextItem{Kind: ItemFile, Label: "a.md"})
	c.AddItem(ContextItem{Kind: ItemURL, Label: "example.com"})

	got := c.ContextSummary()
	want := []string{"a.md", "example.com"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("ContextSummary() = %v, want %v", got, want)
	}
}

// =============================================================================
// LIFECYCLE TESTS
// =============================================================================

func TestReset_ClearsEverything(t *testing.T) {
	c := New()
	oldID := c.ID()
	c.AddTurn(RoleUser, "hello")
	c.AddTurn(RoleAssistant, "hi")
	c.AddItem(ContextItem{Kind: ItemClipboard, Label: "[clipboard]"})

	c.Reset()

	if len(c.Turns()) != 0 {
		t.Errorf("history not cleared: %d turns", len(c.Turns()))
	}
	if len(c.Items()) != 0 {
		t.Errorf("context not cleared: %d items", len(c.Items()))
	}
	if len(c.ContextSummary()) != 0 {
		t.Errorf("summary not empty after reset")
	}
	if c.ID() == oldID {
		t.Errorf("Reset kept the old conversation ID")
	}

	// Ordinals restart cleanly after reset.
	c.AddItem(ContextItem{Kind: ItemFile, Label: "a.md"})
	if got := c.Items()[0].AddedAt; got != 1 {
		t.Errorf("first ordinal after reset = %d, want 1", got)
	}
}

func TestItemKind_String(t *testing.T) {
	tests := []struct {
		kind ItemKind
		want string
	}{
		{ItemFile, "file"},
		{ItemClipboard, "clipboard"},
		{ItemImage, "image"},
		{ItemURL, "url"},
		{ItemOther, "other"},
	}
	for _, tc := range tests {
		if got := tc.kind.String(); got != tc.want {
			t.Errorf("%d.String() = %q, want %q", tc.kind, got, tc.want)
		}
	}
}

// =============================================================================
// STAGING TESTS
// =============================================================================

func TestStaging_CommitTo(t *testing.T) {
	c := New()
	c.AddItem(ContextItem{Kind: ItemClipboard, Label: "[clipboard]", Payload: "old"})

	var st Staging
	st.AddItem(ContextItem{Kind: ItemFile, Label: "a.md", Payload: "body"})
	st.AddItem(ContextItem{Kind: ItemClipboard, Label: "[clipboard]", Payload: "new"})

	st.CommitTo(c)

	items := c.Items()
	if len(items) != 2 {
		t.Fatalf("context length = %d, want 2", len(items))
	}
	if items[0].Payload != "new" {
		t.Errorf("commit did not refresh clipboard snapshot: %+v", items[0])
	}
}

func TestStaging_DiscardLeavesConversationUntouched(t *testing.T) {
	c := New()
	c.AddItem(ContextItem{Kind: ItemFile, Label: "keep.md"})

	var st Staging
	st.AddItem(ContextItem{Kind: ItemURL, Label: "example.com"})
	// Staging dropped without CommitTo: a cancelled submission.

	if got := len(c.Items()); got != 1 {
		t.Errorf("context length = %d, want 1 (no partial mutation)", got)
	}
}
