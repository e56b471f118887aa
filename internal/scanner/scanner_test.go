// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package scanner provides the low-level token scanner for @ tags and / shortcuts.
package scanner

import (
	"testing"
)

// =============================================================================
// SCAN TOKEN TESTS
// =============================================================================

func TestScanToken_Bare(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		pos      int
		wantText string
		wantEnd  int
	}{
		{"simple tag", "@clipboard rest", 0, "@clipboard", 10},
		{"tag at end of string", "say @clipboard", 4, "@clipboard", 14},
		{"path tag", "@/notes/a.txt more", 0, "@/notes/a.txt", 13},
		{"escaped space kept", `@/a\ b.txt c`, 0, "@/a b.txt", 10},
		{"double escaped space", `@/a\ b\ c.md x`, 0, "@/a b c.md", 12},
		{"tab terminates", "@foo\tbar", 0, "@foo", 4},
		{"newline terminates", "@foo\nbar", 0, "@foo", 4},
		{"embedded at kept literally", "@a@b c", 0, "@a@b", 4},
		{"trailing backslash literal", `@foo\`, 0, `@foo\`, 5},
		{"prefix at end of string", "hi @", 3, "@", 4},
		{"slash prefix", "/fix it", 0, "/fix", 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ScanToken(tc.text, tc.pos)
			if got.Text != tc.wantText {
				t.Errorf("ScanToken(%q, %d).Text = %q, want %q", tc.text, tc.pos, got.Text, tc.wantText)
			}
			if got.End != tc.wantEnd {
				t.Errorf("ScanToken(%q, %d).End = %d, want %d", tc.text, tc.pos, got.End, tc.wantEnd)
			}
			if got.Quoted {
				t.Errorf("ScanToken(%q, %d).Quoted = true, want false", tc.text, tc.pos)
			}
		})
	}
}

func TestScanToken_Quoted(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		pos      int
		wantText string
		wantEnd  int
	}{
		{"quotes stripped", `@"~/My Notes/x.md" rest`, 0, "@~/My Notes/x.md", 18},
		{"empty quotes", `@"" rest`, 0, "@", 3},
		{"escaped quote inside", `@"a\"b" c`, 0, `@a"b`, 7},
		{"unterminated at end of string", `@"half open`, 0, "@half open", 11},
		{"unterminated at end of line", "@\"half open\nnext", 0, "@half open", 11},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ScanToken(tc.text, tc.pos)
			if got.Text != tc.wantText {
				t.Errorf("ScanToken(%q).Text = %q, want %q", tc.text, got.Text, tc.wantText)
			}
			if got.End != tc.wantEnd {
				t.Errorf("ScanToken(%q).End = %d, want %d", tc.text, got.End, tc.wantEnd)
			}
			if !got.Quoted {
				t.Errorf("ScanToken(%q).Quoted = false, want true", tc.text)
			}
		})
	}
}

func TestScanToken_RemainderUntouched(t *testing.T) {
	text := `@"~/My Notes/x.md" rest`
	tok := ScanToken(text, 0)

	if got := text[tok.End:]; got != " rest" {
		t.Errorf("remainder after quoted token = %q, want %q", got, " rest")
	}
}

func TestScanToken_UTF8PassThrough(t *testing.T) {
	tok := ScanToken("@/notes/résumé.md done", 0)
	if tok.Text != "@/notes/résumé.md" {
		t.Errorf("Text = %q, want %q", tok.Text, "@/notes/résumé.md")
	}
}

// =============================================================================
// TOKENIZER TESTS
// =============================================================================

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string // expected Raw values in order
	}{
		{"no tags", "plain text only", nil},
		{"single tag", "summarize @clipboard please", []string{"@clipboard"}},
		{"two tags", "@clipboard and @/a.txt done", []string{"@clipboard", "@/a.txt"}},
		{"tag at start", "@clipboard", []string{"@clipboard"}},
		{"email is not a tag", "mail me at foo@example.com", nil},
		{"quoted tag with spaces", `read @"~/My Notes/x.md" now`, []string{"@~/My Notes/x.md"}},
		{"escaped space tag", `open @/a\ b.txt c`, []string{"@/a b.txt"}},
		{"bare at end of line", "look @", []string{"@"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			toks := Tokenize(tc.text)
			if len(toks) != len(tc.want) {
				t.Fatalf("Tokenize(%q) returned %d tokens, want %d", tc.text, len(toks), len(tc.want))
			}
			for i, tok := range toks {
				if tok.Raw != tc.want[i] {
					t.Errorf("token %d = %q, want %q", i, tok.Raw, tc.want[i])
				}
			}
		})
	}
}

func TestTokenize_Offsets(t *testing.T) {
	text := "a @clipboard b"
	toks := Tokenize(text)
	if len(toks) != 1 {
		t.Fatalf("got %d tokens, want 1", len(toks))
	}
	if toks[0].Start != 2 || toks[0].End != 12 {
		t.Errorf("span = [%d,%d), want [2,12)", toks[0].Start, toks[0].End)
	}
	if text[toks[0].Start:toks[0].End] != "@clipboard" {
		t.Errorf("source span = %q, want %q", text[toks[0].Start:toks[0].End], "@clipboard")
	}
}

// =============================================================================
// FRAGMENT TESTS
// =============================================================================

func TestFragmentAt(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		cursor    int
		wantFrag  string
		wantStart int
		wantOK    bool
	}{
		{"slash fragment", "/fi", 3, "/fi", 0, true},
		{"at fragment mid line", "hello @cli", 10, "@cli", 6, true},
		{"bare at", "@", 1, "@", 0, true},
		{"no fragment", "hello world", 11, "", 0, false},
		{"email not a fragment", "foo@exa", 7, "", 0, false},
		{"cursor before fragment", "hello @cli", 5, "", 0, false},
		{"path fragment", "see @/no", 8, "@/no", 4, true},
		{"path fragment with subdir", "open @notes/su", 14, "@notes/su", 5, true},
		{"tilde path fragment", "@~/My", 5, "@~/My", 0, true},
		{"url fragment", "fetch @http://exa", 17, "@http://exa", 6, true},
		{"slash inside word only", "a/b", 3, "", 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			frag, start, ok := FragmentAt(tc.text, tc.cursor)
			if ok != tc.wantOK {
				t.Fatalf("FragmentAt(%q, %d) ok = %v, want %v", tc.text, tc.cursor, ok, tc.wantOK)
			}
			if frag != tc.wantFrag || start != tc.wantStart {
				t.Errorf("FragmentAt(%q, %d) = (%q, %d), want (%q, %d)",
					tc.text, tc.cursor, frag, start, tc.wantFrag, tc.wantStart)
			}
		})
	}
}
