// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonrepair

import "strings"

// keyword is the outcome of reading a bare identifier or symbol token where
// a value is expected: a recognized keyword, a regex literal, or an
// unquoted bare string (possibly a multi-word run).
type keyword struct {
	Text     string // literal JSON text to emit (e.g. "true", "null")
	AsString bool   // Text should be emitted as a quoted JSON string instead
}

// readKeywordOrBareString reads the identifier-shaped token at c starting
// at c.pos and classifies it as a JSON keyword, a Python keyword, a
// non-finite numeric keyword, "undefined", a regex literal, or — the
// fallback — an unquoted bare string, possibly spanning several
// whitespace-separated words.
func readKeywordOrBareString(s *state, path Path) keyword {
	c, opts, rec := s.c, s.opts, s.rec
	if c.peekByte() == '/' {
		if kw, ok := readRegexLiteral(s); ok {
			return kw
		}
	}

	start := c.pos
	word := takeIdent(c)
	if word == "" {
		for !c.atEOF() && !isBareStringDelim(c.peekByte()) {
			c.advance(1)
		}
		if c.atEOF() {
			s.markEOFRecovery()
		}
		return keyword{Text: string(c.slice(start, c.pos)), AsString: true}
	}

	switch word {
	case "true", "false", "null":
		return keyword{Text: word}
	case "True":
		if opts.AllowPythonKeywords {
			rec.record(CategoryKeyword, start, path, "normalized True to true")
			return keyword{Text: "true"}
		}
	case "False":
		if opts.AllowPythonKeywords {
			rec.record(CategoryKeyword, start, path, "normalized False to false")
			return keyword{Text: "false"}
		}
	case "None":
		if opts.AllowPythonKeywords {
			rec.record(CategoryKeyword, start, path, "normalized None to null")
			return keyword{Text: "null"}
		}
	case "undefined":
		if opts.RepairUndefined {
			rec.record(CategoryKeyword, start, path, "normalized undefined to null")
			return keyword{Text: "null"}
		}
	case "NaN", "Infinity":
		if opts.NormalizeJSNonfinite {
			rec.record(CategoryKeyword, start, path, "normalized "+word+" to null")
			return keyword{Text: "null"}
		}
	}

	return readBareStringRun(s, start)
}

// readNegativeNonfinite handles the "-Infinity" case, where the leading
// minus sign would otherwise be claimed by the number reader.
func readNegativeNonfinite(s *state, path Path) (keyword, bool) {
	c, opts, rec := s.c, s.opts, s.rec
	save := c.pos
	if c.peekByte() != '-' {
		return keyword{}, false
	}
	c.advance(1)
	start := c.pos
	if takeIdent(c) == "Infinity" {
		if opts.NormalizeJSNonfinite {
			rec.record(CategoryKeyword, save, path, "normalized -Infinity to null")
			return keyword{Text: "null"}, true
		}
		return keyword{Text: string(c.slice(save, c.pos)), AsString: true}, true
	}
	c.pos = save
	return keyword{}, false
}

func takeIdent(c *cursor) string {
	start := c.pos
	if !isIdentByte(c.peekByte(), true) {
		return ""
	}
	c.advance(1)
	for isIdentByte(c.peekByte(), false) {
		c.advance(1)
	}
	return string(c.slice(start, c.pos))
}

func isBareStringDelim(b byte) bool {
	switch b {
	case ',', ':', ']', '}', '\n':
		return true
	}
	return isASCIISpace(b)
}

// readBareStringRun accumulates whitespace-or-symbol-separated fragments
// starting at c.pos (c.pos already past the first fragment; start marks
// the beginning of that first fragment) until a structural delimiter,
// trims the trailing whitespace, and returns the whole run as one string.
func readBareStringRun(s *state, start int) keyword {
	c := s.c
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
	text := strings.TrimRight(string(c.slice(start, c.pos)), " \t\r\v\f")
	return keyword{Text: text, AsString: true}
}

// readRegexLiteral reads a /pattern/flags literal. ok is false if the
// leading '/' does not actually open a closed regex literal (e.g. it is a
// stray division-like symbol), in which case the cursor is not advanced.
func readRegexLiteral(s *state) (keyword, bool) {
	c := s.c
	if c.peekByte() != '/' {
		return keyword{}, false
	}
	start := c.pos
	i := 1
	for {
		b := c.peekByteAt(i)
		if b == 0 {
			return keyword{}, false
		}
		if b == '\n' {
			return keyword{}, false
		}
		if b == '\\' {
			i += 2
			continue
		}
		if b == '/' {
			i++
			break
		}
		i++
	}
	for {
		b := c.peekByteAt(i)
		if b >= 'a' && b <= 'z' {
			i++
			continue
		}
		break
	}
	c.advance(i)
	raw := c.slice(start, c.pos)
	unescaped := make([]byte, 0, len(raw))
	for j := 0; j < len(raw); j++ {
		if raw[j] == '\\' && j+1 < len(raw) && raw[j+1] == '/' {
			unescaped = append(unescaped, '/')
			j++
			continue
		}
		unescaped = append(unescaped, raw[j])
	}
	return keyword{Text: string(unescaped), AsString: true}, true
}
