// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonrepair

import "unicode"

// skipInsignificant repeatedly consumes whitespace and comments until
// neither applies. It does not handle fences or JSONP wrappers; those are
// stripped once, at the edges of the whole input, by stripWrappers.
func skipInsignificant(s *state, path Path) {
	c, opts, rec := s.c, s.opts, s.rec
	for {
		switch {
		case skipWhitespace(c):
		case skipLineComment(c, "//"):
			rec.record(CategoryComment, c.pos, path, "stripped // comment")
		case opts.TolerateHashComments && skipLineComment(c, "#"):
			rec.record(CategoryComment, c.pos, path, "stripped # comment")
		case skipBlockComment(c):
			rec.record(CategoryComment, c.pos, path, "stripped block comment")
		case skipWordCommentMarker(c, opts):
			rec.record(CategoryComment, c.pos, path, "stripped word-comment marker")
		default:
			return
		}
	}
}

// skipInsignificantToDelim is like skipInsignificant but a line comment
// that never finds a '\n' before a structural closer is cut short exactly
// before that closer, so the closer is never swallowed into a discarded
// comment.
func skipInsignificantToDelim(s *state, path Path, delims string) {
	c, opts, rec := s.c, s.opts, s.rec
	for {
		start := c.pos
		skipWhitespace(c)
		if (c.hasPrefix("//") || (opts.TolerateHashComments && c.hasPrefix("#"))) && !c.hasPrefix("/*") {
			n := 2
			if c.peekByte() == '#' {
				n = 1
			}
			rest := c.remaining()[n:]
			end := len(rest)
			for i, b := range rest {
				if b == '\n' || b == '\r' || isDelim(b, delims) {
					end = i
					break
				}
			}
			c.advance(n + end)
			rec.record(CategoryComment, c.pos, path, "stripped line comment before closer")
			continue
		}
		if skipBlockComment(c) {
			rec.record(CategoryComment, c.pos, path, "stripped block comment")
			continue
		}
		if n, ok := matchWordCommentMarker(c, opts); ok {
			rest := c.remaining()[n:]
			end := len(rest)
			for i, b := range rest {
				if b == '\n' || b == '\r' || isDelim(b, delims) {
					end = i
					break
				}
			}
			c.advance(n + end)
			rec.record(CategoryComment, c.pos, path, "stripped word-comment marker before closer")
			continue
		}
		if c.pos == start {
			return
		}
	}
}

func isDelim(b byte, delims string) bool {
	for i := 0; i < len(delims); i++ {
		if delims[i] == b {
			return true
		}
	}
	return false
}

func skipWhitespace(c *cursor) bool {
	start := c.pos
	for !c.atEOF() {
		b := c.peekByte()
		if b < utf8RuneSelf {
			if !isASCIISpace(b) {
				break
			}
			c.advance(1)
			continue
		}
		r, n := decodeRuneAt(c)
		if !unicode.IsSpace(r) {
			break
		}
		c.advance(n)
	}
	return c.pos != start
}

const utf8RuneSelf = 0x80

func isASCIISpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func decodeRuneAt(c *cursor) (rune, int) {
	save := c.pos
	r, n := c.advanceRune()
	c.pos = save
	return r, n
}

func skipLineComment(c *cursor, marker string) bool {
	if !c.hasPrefix(marker) {
		return false
	}
	c.advance(len(marker))
	for !c.atEOF() {
		b := c.peekByte()
		if b == '\n' {
			c.advance(1)
			break
		}
		if b == '\r' {
			c.advance(1)
			if c.peekByte() == '\n' {
				c.advance(1)
			}
			break
		}
		c.advance(1)
	}
	return true
}

func skipBlockComment(c *cursor) bool {
	if !c.hasPrefix("/*") {
		return false
	}
	c.advance(2)
	for !c.atEOF() {
		if c.hasPrefix("*/") {
			c.advance(2)
			return true
		}
		c.advance(1)
	}
	return true // unterminated: consumed to EOF
}

// skipWordCommentMarker consumes a caller-supplied bare-identifier comment
// marker (e.g. "NOTE") found where a comment is legal, plus the remainder
// of its line.
func skipWordCommentMarker(c *cursor, opts *Options) bool {
	n, ok := matchWordCommentMarker(c, opts)
	if !ok {
		return false
	}
	c.advance(n)
	for !c.atEOF() && c.peekByte() != '\n' {
		c.advance(1)
	}
	if !c.atEOF() {
		c.advance(1)
	}
	return true
}

// matchWordCommentMarker reports the byte length of a configured
// word-comment marker at c.pos, if one starts there, without consuming it.
func matchWordCommentMarker(c *cursor, opts *Options) (int, bool) {
	for _, marker := range opts.WordCommentMarkers {
		if c.hasPrefix(marker) {
			after := c.peekByteAt(len(marker))
			if after == 0 || isASCIISpace(after) || after == ':' {
				return len(marker), true
			}
		}
	}
	return 0, false
}

// normalizeQuoteRune maps smart-quote codepoints to their plain ASCII
// equivalent: U+2018/U+2019 to ', U+201C/U+201D/U+00AB/U+00BB to ".
func normalizeQuoteRune(r rune) (ascii byte, ok bool) {
	switch r {
	case '‘', '’':
		return '\'', true
	case '“', '”', '«', '»':
		return '"', true
	default:
		return 0, false
	}
}

// stripWrappers removes a single leading fenced-code-block wrapper and/or a
// leading JSONP wrapper from the whole input, returning the inner slice.
// Nested JSONP wrappers are peeled repeatedly.
func stripWrappers(buf []byte, opts *Options, rec *recorder) []byte {
	if opts.FencedCodeBlocks {
		if inner, ok := stripFence(buf); ok {
			rec.record(CategoryWrapper, 0, nil, "stripped fenced code block")
			buf = inner
		}
	}
	for {
		inner, ok := stripJSONP(buf)
		if !ok {
			break
		}
		rec.record(CategoryWrapper, 0, nil, "stripped JSONP wrapper")
		buf = inner
	}
	return buf
}

// stripFence strips a single ```lang\n ... \n``` wrapper when it is the
// sole top-level wrapper. When a second fence follows the first closing
// fence, nothing is stripped: the fence markers stay in the input and the
// parser reads them as ordinary bare tokens.
func stripFence(buf []byte) ([]byte, bool) {
	s := skipLeadingSpace(buf)
	if len(s) < 3 || string(s[:3]) != "```" {
		return buf, false
	}
	rest := s[3:]
	nl := indexByte(rest, '\n')
	if nl < 0 {
		return buf, false
	}
	body := rest[nl+1:]
	close := indexString(body, "```")
	if close < 0 {
		return buf, false
	}
	tail := skipLeadingSpace(body[close+3:])
	if indexString(tail, "```") >= 0 {
		return buf, false // a second fence follows; strip nothing
	}
	return body[:close], true
}

func stripJSONP(buf []byte) ([]byte, bool) {
	s := skipLeadingSpace(buf)
	i := 0
	for i < len(s) && (isIdentByte(s[i], i == 0)) {
		i++
	}
	if i == 0 || i >= len(s) || s[i] != '(' {
		return buf, false
	}
	inner := s[i+1:]
	depth := 1
	j := 0
	for j < len(inner) {
		switch inner[j] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				tail := skipLeadingSpace(inner[j+1:])
				if len(tail) > 0 && tail[0] == ';' {
					tail = tail[1:]
				}
				if len(skipLeadingSpace(tail)) != 0 {
					return buf, false
				}
				return inner[:j], true
			}
		case '"', '\'':
			j = skipStringLiteralRaw(inner, j)
			continue
		}
		j++
	}
	return buf, false
}

func skipStringLiteralRaw(s []byte, i int) int {
	q := s[i]
	i++
	for i < len(s) {
		if s[i] == '\\' {
			i += 2
			continue
		}
		if s[i] == q {
			return i + 1
		}
		i++
	}
	return i
}

func isIdentByte(b byte, first bool) bool {
	if b == '_' || b == '$' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') {
		return true
	}
	if !first && b >= '0' && b <= '9' {
		return true
	}
	return false
}

func skipLeadingSpace(buf []byte) []byte {
	i := 0
	for i < len(buf) && isASCIISpace(buf[i]) {
		i++
	}
	return buf[i:]
}

func indexByte(buf []byte, b byte) int {
	for i, c := range buf {
		if c == b {
			return i
		}
	}
	return -1
}

func indexString(buf []byte, s string) int {
	if len(s) == 0 {
		return 0
	}
	for i := 0; i+len(s) <= len(buf); i++ {
		if string(buf[i:i+len(s)]) == s {
			return i
		}
	}
	return -1
}

// stripBOM removes a leading UTF-8 byte order mark, if present.
func stripBOM(buf []byte) []byte {
	if len(buf) >= 3 && buf[0] == 0xef && buf[1] == 0xbb && buf[2] == 0xbf {
		return buf[3:]
	}
	return buf
}
