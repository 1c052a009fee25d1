// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonrepair

import (
	"strings"
	"unicode/utf8"
)

// stringContext distinguishes an object-key position from a value
// position; both use the same reader, but only a value position chains
// "+"-concatenation — a key is always a single token.
type stringContext int

const (
	stringValue stringContext = iota
	stringKey
)

// readString reads one string-shaped token — double-quoted, single-quoted,
// smart-quoted, or unquoted — starting at c.pos, decodes its escapes, and
// (for value position) follows any "+" concatenation chain. It returns the
// logical (unescaped) text; the caller's Emitter re-escapes it for output.
func readString(s *state, path Path, ctx stringContext) string {
	text := readOneStringLiteral(s, path)
	if ctx != stringValue {
		return text
	}
	c := s.c
	var parts []string
	for {
		save := c.pos
		skipInsignificant(s, path)
		if c.peekByte() != '+' {
			c.pos = save
			break
		}
		c.advance(1)
		skipInsignificant(s, path)
		if !startsQuotedString(c) {
			c.pos = save
			break
		}
		if parts == nil {
			parts = []string{text}
		}
		parts = append(parts, readOneStringLiteral(s, path))
	}
	if parts == nil {
		return text
	}
	s.rec.record(CategoryConcatenation, c.pos, path, "merged %d string literals joined by +", len(parts))
	return strings.Join(parts, "")
}

func startsQuotedString(c *cursor) bool {
	b := c.peekByte()
	if b == '"' || b == '\'' {
		return true
	}
	if b >= utf8RuneSelf {
		r, _ := decodeRuneAt(c)
		_, ok := normalizeQuoteRune(r)
		return ok
	}
	return false
}

// readOneStringLiteral reads exactly one quoted or unquoted string token,
// with no concatenation.
func readOneStringLiteral(s *state, path Path) string {
	c, opts, rec := s.c, s.opts, s.rec
	quote, qlen, isQuoted := openingQuote(c)
	if !isQuoted {
		return readUnquotedString(s)
	}
	start := c.pos
	c.advance(qlen)

	var buf []byte
	raw := false
	contentStart := c.pos
	for {
		if c.atEOF() {
			if raw {
				buf = append(buf, c.slice(contentStart, c.pos)...)
			} else {
				buf = c.slice(contentStart, c.pos)
			}
			cat := CategoryQuote
			if opts.AggressiveTruncationFix {
				cat = CategoryTruncation
			}
			rec.record(cat, start, path, "closed unterminated string at end of input")
			s.markEOFRecovery()
			return string(buf)
		}
		b := c.peekByte()
		if b == '\n' {
			if raw {
				buf = append(buf, c.slice(contentStart, c.pos)...)
			} else {
				buf = c.slice(contentStart, c.pos)
			}
			rec.record(CategoryQuote, start, path, "closed string at unescaped newline")
			return string(buf)
		}
		if b == quote {
			if raw {
				buf = append(buf, c.slice(contentStart, c.pos)...)
			} else {
				buf = c.slice(contentStart, c.pos)
			}
			c.advance(1)
			return string(buf)
		}
		if b >= utf8RuneSelf {
			r, n := decodeRuneAt(c)
			if ascii, ok := normalizeQuoteRune(r); ok && ascii == quote {
				if raw {
					buf = append(buf, c.slice(contentStart, c.pos)...)
				} else {
					buf = c.slice(contentStart, c.pos)
				}
				c.advance(n)
				return string(buf)
			}
			c.advance(n)
			continue
		}
		if b == '\\' {
			if !raw {
				buf = append(buf[:0:0], c.slice(contentStart, c.pos)...)
				raw = true
			} else {
				buf = append(buf, c.slice(contentStart, c.pos)...)
			}
			c.advance(1)
			buf = decodeEscape(s, buf, path)
			contentStart = c.pos
			continue
		}
		c.advance(1)
	}
}

// trySuspiciousStringClose handles a double-quoted object value that itself
// contains an unescaped comma followed by a stray unescaped double quote, of
// the shape produced by a source that quoted a whole clause and left a stray
// quote inside it (e.g. "one, two" three"). A naive reader closes the string
// at that first stray quote; if what immediately follows is not a legal member
// terminator, the value is closed at the first unescaped comma instead, and
// the comma is left unconsumed for the caller's member-separator handling.
// A value with no comma before its first unescaped quote is left alone.
// It reports false when the value does not have this shape, leaving the
// cursor untouched so the normal reader can take over.
func trySuspiciousStringClose(s *state, path Path) (string, bool) {
	c := s.c
	if c.peekByte() != '"' {
		return "", false
	}
	start := c.pos
	contentStart := start + 1

	firstComma, closePos := -1, -1
	escape := false
	for i := contentStart; i < len(c.buf); i++ {
		b := c.buf[i]
		if escape {
			escape = false
			continue
		}
		switch b {
		case '\\':
			escape = true
		case ',':
			if firstComma < 0 {
				firstComma = i
			}
		case '"':
			closePos = i
		}
		if closePos >= 0 {
			break
		}
	}
	if closePos < 0 || firstComma < 0 || firstComma >= closePos {
		return "", false
	}

	save := c.pos
	c.pos = closePos + 1
	skipInsignificant(s, path)
	lookByte := c.peekByte()
	afterOK := c.atEOF() || lookByte == ',' || lookByte == '}' || lookByte == ']'
	c.pos = save
	if afterOK {
		return "", false
	}

	text := string(c.buf[contentStart:firstComma])
	c.advance(firstComma - c.pos)
	loc := c.location(start)
	s.rec.recordLoc(CategorySuspiciousClose, start, loc, path,
		"closed string value at comma; later quote at byte %d was not followed by a member terminator", closePos)
	return text, true
}

// openingQuote reports the normalized quote byte and its byte width if c.pos
// starts a quoted string (including smart-quote forms).
func openingQuote(c *cursor) (quote byte, width int, ok bool) {
	b := c.peekByte()
	if b == '"' || b == '\'' {
		return b, 1, true
	}
	if b >= utf8RuneSelf {
		r, n := decodeRuneAt(c)
		if ascii, isQuote := normalizeQuoteRune(r); isQuote {
			return ascii, n, true
		}
	}
	return 0, 0, false
}

// readUnquotedString reads the bare-token form for a key or value
// position: runs until a delimiter, or whitespace followed by another
// delimiter.
func readUnquotedString(s *state) string {
	c := s.c
	start := c.pos
	for {
		if c.atEOF() {
			s.markEOFRecovery()
			break
		}
		b := c.peekByte()
		if b == ',' || b == ':' || b == ']' || b == '}' || b == '\n' {
			break
		}
		if isASCIISpace(b) {
			n := 0
			for {
				nb := c.peekByteAt(n)
				if nb == 0 || !isASCIISpace(nb) {
					break
				}
				n++
			}
			after := c.peekByteAt(n)
			if after == 0 || after == ',' || after == ':' || after == ']' || after == '}' || after == '\n' {
				break
			}
		}
		c.advance(1)
	}
	return strings.TrimSpace(string(c.slice(start, c.pos)))
}

// decodeEscape consumes one escape sequence (the cursor is positioned just
// past the backslash) and appends its decoded bytes to buf. Recognizes the
// standard JSON escapes plus a few lenient forms; unknown escapes preserve
// the backslashed character verbatim and are logged.
func decodeEscape(s *state, buf []byte, path Path) []byte {
	c, rec := s.c, s.rec
	pos := c.pos
	if c.atEOF() {
		s.markEOFRecovery()
		return buf
	}
	b := c.peekByte()
	switch b {
	case '"', '\'', '\\', '/':
		c.advance(1)
		return append(buf, b)
	case 'b':
		c.advance(1)
		return append(buf, '\b')
	case 'f':
		c.advance(1)
		return append(buf, '\f')
	case 'n':
		c.advance(1)
		return append(buf, '\n')
	case 'r':
		c.advance(1)
		return append(buf, '\r')
	case 't':
		c.advance(1)
		return append(buf, '\t')
	case 'u':
		c.advance(1)
		r, ok := readHex4(c)
		if !ok {
			rec.record(CategoryEscape, pos, path, "malformed \\u escape replaced with U+FFFD")
			return appendRune(buf, utf8.RuneError)
		}
		if r >= 0xd800 && r <= 0xdbff {
			save := c.pos
			if c.hasPrefix("\\u") {
				c.advance(2)
				if lo, ok2 := readHex4(c); ok2 && lo >= 0xdc00 && lo <= 0xdfff {
					combined := ((r - 0xd800) << 10) + (lo - 0xdc00) + 0x10000
					return appendRune(buf, rune(combined))
				}
			}
			c.pos = save
			rec.record(CategoryEscape, pos, path, "isolated high surrogate replaced with U+FFFD")
			return appendRune(buf, utf8.RuneError)
		}
		if r >= 0xdc00 && r <= 0xdfff {
			rec.record(CategoryEscape, pos, path, "isolated low surrogate replaced with U+FFFD")
			return appendRune(buf, utf8.RuneError)
		}
		return appendRune(buf, rune(r))
	case 'x':
		c.advance(1)
		if v, ok := readHex2(c); ok {
			return appendRune(buf, rune(v))
		}
		rec.record(CategoryEscape, pos, path, "malformed \\x escape replaced with U+FFFD")
		return appendRune(buf, utf8.RuneError)
	default:
		c.advance(1)
		rec.record(CategoryEscape, pos, path, "unknown escape \\%c preserved verbatim", b)
		return append(buf, '\\', b)
	}
}

func appendRune(buf []byte, r rune) []byte {
	var tmp [4]byte
	n := utf8.EncodeRune(tmp[:], r)
	return append(buf, tmp[:n]...)
}

func readHex4(c *cursor) (int, bool) {
	if c.pos+4 > len(c.buf) {
		return 0, false
	}
	v := 0
	for i := 0; i < 4; i++ {
		d, ok := hexVal(c.peekByteAt(i))
		if !ok {
			return 0, false
		}
		v = v<<4 + d
	}
	c.advance(4)
	return v, true
}

func readHex2(c *cursor) (int, bool) {
	if c.pos+2 > len(c.buf) {
		return 0, false
	}
	v := 0
	for i := 0; i < 2; i++ {
		d, ok := hexVal(c.peekByteAt(i))
		if !ok {
			return 0, false
		}
		v = v<<4 + d
	}
	c.advance(2)
	return v, true
}

func hexVal(b byte) (int, bool) {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0'), true
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10, true
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10, true
	default:
		return 0, false
	}
}
