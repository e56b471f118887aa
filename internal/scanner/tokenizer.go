// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package scanner provides the low-level token scanner for @ tags and / shortcuts.
package scanner

// =============================================================================
// TAG TOKEN
// =============================================================================

// TagToken is a single @ tag span carved out of free text.
type TagToken struct {
	// Raw is the tag text including the leading "@", with escapes resolved
	// and quotes stripped.
	Raw string

	// Start and End are byte offsets of the span in the source text.
	Start int
	End   int

	// Quoted reports whether the tag body was quote-delimited.
	Quoted bool
}

// =============================================================================
// TOKENIZER
// =============================================================================

// Tokenize returns the ordered list of @ tag spans in text. A tag starts at
// an @ that sits at the beginning of the text or directly after whitespace;
// an @ embedded in a word (foo@example.com) is ordinary text.
func Tokenize(text string) []TagToken {
	var toks []TagToken

	i := 0
	for i < len(text) {
		if text[i] != '@' || !boundaryBefore(text, i) {
			i++
			continue
		}
		tok := ScanToken(text, i)
		toks = append(toks, TagToken{
			Raw:    tok.Text,
			Start:  i,
			End:    tok.End,
			Quoted: tok.Quoted,
		})
		i = tok.End
	}

	return toks
}

// boundaryBefore reports whether position i is a valid token start.
func boundaryBefore(text string, i int) bool {
	return i == 0 || isSpace(text[i-1])
}

// =============================================================================
// FRAGMENT EXTRACTION
// =============================================================================

// FragmentAt returns the in-progress / or @ fragment that contains the cursor,
// along with its start offset. This is what live autocomplete matches against:
// the text from the most recent token start up to the cursor. The boolean is
// false when the cursor is not inside a fragment.
func FragmentAt(text string, cursor int) (string, int, bool) {
	if cursor > len(text) {
		cursor = len(text)
	}

	for i := cursor - 1; i >= 0; i-- {
		c := text[i]
		if (c == '@' || c == '/') && boundaryBefore(text, i) {
			return text[i:cursor], i, true
		}
		// A prefix character inside a word (path separator, the @ of an
		// email) is fragment body, not a fragment start; keep scanning left.
		if isSpace(c) {
			return "", 0, false
		}
	}
	return "", 0, false
}
