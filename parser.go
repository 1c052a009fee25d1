// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonrepair

// parseAbort is panicked by the rare conditions that are treated as real
// errors (DepthExceeded, InputTooLarge, WriterFailure) rather than local
// repairs. It
// is caught at the top of the public entry points in jsonrepair.go and
// stream.go.
type parseAbort struct{ err *Error }

func fail(kind ErrorKind, pos int, msg string) {
	panic(parseAbort{newError(kind, pos, msg)})
}

// failAt is fail, additionally recording pos's line/column location in buf.
func failAt(kind ErrorKind, buf []byte, pos int, msg string) {
	panic(parseAbort{newErrorAt(kind, buf, pos, msg)})
}

func (s *state) enterDepth(pos int) {
	s.depth++
	if s.depth > s.opts.maxDepth() {
		failAt(DepthExceeded, s.c.buf, pos, "maximum nesting depth exceeded")
	}
}

func (s *state) leaveDepth() { s.depth-- }

// parseValue parses one JSON value at the cursor (already past any
// insignificant prefix) and writes it to e. It reports false if there was
// nothing left to parse (end of input): callers in a value-required
// position are responsible for substituting null and logging.
func parseValue(s *state, e emitter, path Path) bool {
	c := s.c
	// Drop any run of unmatched closing brackets or stray commas with no
	// prior open before dispatching on the value that actually starts here.
	for !c.atEOF() {
		b := c.peekByte()
		if b != '}' && b != ']' && b != ',' {
			break
		}
		s.rec.record(CategoryBracket, c.pos, path, "dropped stray %q before value", string(b))
		c.advance(1)
		skipInsignificant(s, path)
	}
	if c.atEOF() {
		return false
	}
	b := c.peekByte()
	switch {
	case b == '{':
		parseObject(s, e, path)
		return true
	case b == '[':
		parseArray(s, e, path)
		return true
	case b == '"' || b == '\'':
		text := readString(s, path, stringValue)
		writeErr(e.writeString(text))
		return true
	case b == '-':
		if kw, ok := readNegativeNonfinite(s, path); ok {
			emitKeyword(e, kw)
			return true
		}
		tok := readNumber(s, path)
		emitNumber(e, tok)
		return true
	case isDigit(b) || b == '+' || b == '.':
		tok := readNumber(s, path)
		emitNumber(e, tok)
		return true
	case b >= utf8RuneSelf:
		if _, _, ok := openingQuote(c); ok {
			text := readString(s, path, stringValue)
			writeErr(e.writeString(text))
			return true
		}
		kw := readKeywordOrBareString(s, path)
		emitKeyword(e, kw)
		return true
	default:
		kw := readKeywordOrBareString(s, path)
		emitKeyword(e, kw)
		return true
	}
}

func emitNumber(e emitter, tok numberToken) {
	if tok.AsString {
		writeErr(e.writeString(tok.Text))
	} else {
		writeErr(e.writeRaw(tok.Text))
	}
}

func emitKeyword(e emitter, kw keyword) {
	if kw.AsString {
		writeErr(e.writeString(kw.Text))
	} else {
		writeErr(e.writeRaw(kw.Text))
	}
}

// writeErr surfaces a writer failure as a real error; it is only non-nil
// when the caller-provided io.Writer itself failed.
func writeErr(err error) {
	if err != nil {
		fail(WriterFailure, -1, err.Error())
	}
}

// parseObject parses a '{'-led object, including every local recovery rule:
// missing colon, missing comma, dangling key, unexpected opening bracket
// treated as a missing comma, trailing comma, and LIFO closer recovery at
// end of input.
func parseObject(s *state, e emitter, path Path) {
	c, rec := s.c, s.rec
	start := c.pos
	s.enterDepth(start)
	defer s.leaveDepth()
	c.advance(1) // '{'
	writeErr(e.beginObject())

	for {
		skipInsignificantToDelim(s, path, "}")
		if c.atEOF() {
			rec.record(CategoryBracket, c.pos, path, "closed object truncated at end of input")
			s.markEOFRecovery()
			break
		}
		if c.peekByte() == '}' {
			c.advance(1)
			break
		}

		loopStart := c.pos
		key := readString(s, path, stringKey)
		writeErr(e.comma())
		writeErr(e.writeKey(key))
		childPath := append(path.clone(), PathElem{Key: key})

		skipInsignificant(s, childPath)
		if c.peekByte() == ':' {
			c.advance(1)
		} else {
			rec.record(CategoryBracket, c.pos, childPath, "inserted missing colon after key %q", key)
		}
		skipInsignificant(s, childPath)

		if c.atEOF() {
			writeErr(e.writeRaw("null"))
			rec.record(CategoryBracket, c.pos, childPath, "dangling key %q with no value replaced with null", key)
			s.markEOFRecovery()
			break
		}
		if c.peekByte() == '}' {
			writeErr(e.writeRaw("null"))
			rec.record(CategoryBracket, c.pos, childPath, "dangling key %q with no value replaced with null", key)
			c.advance(1)
			break
		}

		if text, ok := trySuspiciousStringClose(s, childPath); ok {
			writeErr(e.writeString(text))
		} else if !parseValue(s, e, childPath) {
			writeErr(e.writeRaw("null"))
			rec.record(CategoryBracket, c.pos, childPath, "missing value for key %q replaced with null", key)
		}
		skipInsignificant(s, childPath)

		if c.atEOF() {
			rec.record(CategoryBracket, c.pos, path, "closed object truncated at end of input")
			s.markEOFRecovery()
			break
		}
		switch c.peekByte() {
		case ',', ';':
			c.advance(1)
			skipInsignificant(s, path)
			if c.peekByte() == '}' {
				rec.record(CategoryBracket, c.pos, path, "allowed trailing comma before }")
			}
		case '}':
			c.advance(1)
			writeErr(e.endObject())
			return
		case '{', '[':
			rec.record(CategoryBracket, c.pos, path, "inferred missing comma before next member")
		default:
			rec.record(CategoryBracket, c.pos, path, "inferred missing comma before next member")
		}

		if c.pos == loopStart {
			// No progress was possible; avoid spinning forever on an
			// input the grammar genuinely cannot make sense of.
			c.advance(1)
		}
	}
	writeErr(e.endObject())
}

// parseArray parses a '['-led array, symmetric to parseObject, plus the
// ellipsis-skip rule.
func parseArray(s *state, e emitter, path Path) {
	c, rec := s.c, s.rec
	start := c.pos
	s.enterDepth(start)
	defer s.leaveDepth()
	c.advance(1) // '['
	writeErr(e.beginArray())

	index := 0
	for {
		skipInsignificantToDelim(s, path, "]")
		if c.atEOF() {
			rec.record(CategoryBracket, c.pos, path, "closed array truncated at end of input")
			s.markEOFRecovery()
			break
		}
		if c.peekByte() == ']' {
			c.advance(1)
			break
		}
		if c.hasPrefix("...") {
			c.advance(3)
			rec.record(CategoryBracket, c.pos, path, "skipped ellipsis placeholder")
			skipInsignificant(s, path)
			if c.peekByte() == ',' {
				c.advance(1)
			}
			continue
		}

		loopStart := c.pos
		childPath := append(path.clone(), PathElem{Index: index, IsIndex: true})
		writeErr(e.comma())
		if !parseValue(s, e, childPath) {
			writeErr(e.writeRaw("null"))
			rec.record(CategoryBracket, c.pos, childPath, "missing array element replaced with null")
		}
		index++
		skipInsignificant(s, childPath)

		if c.atEOF() {
			rec.record(CategoryBracket, c.pos, path, "closed array truncated at end of input")
			s.markEOFRecovery()
			break
		}
		switch c.peekByte() {
		case ',', ';':
			c.advance(1)
			skipInsignificant(s, path)
			if c.peekByte() == ']' {
				rec.record(CategoryBracket, c.pos, path, "allowed trailing comma before ]")
			}
		case ']':
			c.advance(1)
			writeErr(e.endArray())
			return
		case '{', '[', '"', '\'':
			rec.record(CategoryBracket, c.pos, path, "inferred missing comma before next element")
		default:
			rec.record(CategoryBracket, c.pos, path, "inferred missing comma before next element")
		}

		if c.pos == loopStart {
			c.advance(1)
		}
	}
	writeErr(e.endArray())
}
