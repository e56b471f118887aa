// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package scanner provides the low-level token scanner for @ tags and / shortcuts.
package scanner

// =============================================================================
// TOKEN TYPE
// =============================================================================

// Token is the result of scanning a single tag or shortcut token.
type Token struct {
	// Text is the token text including the leading prefix character,
	// with escapes resolved and surrounding quotes stripped.
	Text string

	// End is the offset just past the last character consumed by the scan.
	End int

	// Quoted reports whether the token body was quote-delimited.
	Quoted bool
}

// =============================================================================
// SCANNER
// =============================================================================

// ScanToken scans the token beginning at pos, where text[pos] is the prefix
// character (@ or /). Three rules apply, tried in order:
//
//  1. If the character after the prefix is a double quote, the token runs to
//     the next unescaped quote or to end of line, whichever comes first. The
//     quotes are stripped. An unterminated quote is treated as terminated at
//     end of line.
//  2. Otherwise the token runs to the first unescaped whitespace character.
//     A backslash immediately followed by whitespace keeps the whitespace
//     character in the token and drops the backslash.
//  3. Any other character is included literally.
//
// ScanToken never fails: a prefix at end of string yields a zero-length token
// consisting of just the prefix character.
func ScanToken(text string, pos int) Token {
	prefix := text[pos]
	i := pos + 1

	if i >= len(text) {
		return Token{Text: string(prefix), End: i}
	}

	if text[i] == '"' {
		return scanQuoted(text, pos, i+1)
	}
	return scanBare(text, pos, i)
}

// scanQuoted scans a quote-delimited token body starting at start (just past
// the opening quote).
func scanQuoted(text string, pos, start int) Token {
	var body []byte
	i := start
	for i < len(text) {
		c := text[i]
		switch {
		case c == '\\' && i+1 < len(text) && text[i+1] == '"':
			body = append(body, '"')
			i += 2
		case c == '"':
			return Token{Text: string(text[pos]) + string(body), End: i + 1, Quoted: true}
		case c == '\n':
			// Unterminated quote ends at end of line, no error.
			return Token{Text: string(text[pos]) + string(body), End: i, Quoted: true}
		default:
			body = append(body, c)
			i++
		}
	}
	return Token{Text: string(text[pos]) + string(body), End: i, Quoted: true}
}

// scanBare scans an unquoted token body starting at start.
func scanBare(text string, pos, start int) Token {
	var body []byte
	i := start
	for i < len(text) {
		c := text[i]
		switch {
		case c == '\\' && i+1 < len(text) && isSpace(text[i+1]):
			// Escaped whitespace stays in the token, the backslash does not.
			body = append(body, text[i+1])
			i += 2
		case isSpace(c):
			return Token{Text: string(text[pos]) + string(body), End: i}
		default:
			body = append(body, c)
			i++
		}
	}
	return Token{Text: string(text[pos]) + string(body), End: i}
}

// isSpace reports whether c is a whitespace byte. Multi-byte runes never
// match, so UTF-8 content passes through the scanner untouched.
func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
