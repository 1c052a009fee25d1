// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonrepair

// numberToken is the result of reading one number-shaped run of input.
type numberToken struct {
	// Text is the text to emit. When AsString is false it is a normalized
	// JSON number literal; when AsString is true the whole run (including
	// any suspicious trailing garbage) is emitted as a quoted JSON string.
	Text     string
	AsString bool
}

// readNumber reads a tolerant number token starting at c.pos, which must be
// '+', '-', '.', or a digit, accepting leading/trailing dots, an incomplete
// exponent, and other forms a strict JSON number grammar rejects. If the
// token runs all the way to the end of the buffer without hitting a clear
// delimiter, s.eofRecovered is set: in streaming mode a later chunk might
// extend the same number.
func readNumber(s *state, path Path) numberToken {
	c, opts, rec := s.c, s.opts, s.rec
	start := c.pos
	neg := false
	if c.peekByte() == '+' || c.peekByte() == '-' {
		neg = c.peekByte() == '-'
		c.advance(1)
	}

	intStart := c.pos
	hadLeadingDot := false
	if c.peekByte() == '.' {
		if !opts.NumberToleranceLeadingDot {
			return numberToken{Text: scanSuspiciousRun(s, start), AsString: true}
		}
		hadLeadingDot = true
	} else {
		for isDigit(c.peekByte()) {
			c.advance(1)
		}
	}
	intDigits := c.slice(intStart, c.pos)
	leadingZero := len(intDigits) > 1 && intDigits[0] == '0'

	hadDot := hadLeadingDot
	fracStart := c.pos
	if hadLeadingDot {
		c.advance(1) // consume '.'
		fracStart = c.pos
		for isDigit(c.peekByte()) {
			c.advance(1)
		}
		if c.pos == fracStart {
			c.pos = start
			return numberToken{Text: scanSuspiciousRun(s, start), AsString: true}
		}
	} else if c.peekByte() == '.' {
		c.advance(1)
		fracStart = c.pos
		for isDigit(c.peekByte()) {
			c.advance(1)
		}
		if c.pos == fracStart {
			if !opts.NumberToleranceTrailingDot {
				c.pos = start
				rec.record(CategoryNumber, start, path, "trailing dot without tolerance quoted as string")
				return numberToken{Text: scanSuspiciousRun(s, start), AsString: true}
			}
		}
		hadDot = true
	}
	hadTrailingDot := hadDot && c.pos == fracStart

	hadExp := false
	expIncomplete := false
	if c.peekByte() == 'e' || c.peekByte() == 'E' {
		expMark := c.pos
		c.advance(1)
		if c.peekByte() == '+' || c.peekByte() == '-' {
			c.advance(1)
		}
		expDigitsStart := c.pos
		for isDigit(c.peekByte()) {
			c.advance(1)
		}
		if c.pos == expDigitsStart {
			expIncomplete = true
			if !opts.NumberToleranceIncompleteExponent {
				c.pos = expMark
			}
		} else {
			hadExp = true
		}
	}

	if len(intDigits) == 0 && !hadLeadingDot {
		c.pos = start
		return numberToken{Text: scanSuspiciousRun(s, start), AsString: true}
	}

	numEnd := c.pos
	if expIncomplete && opts.NumberToleranceIncompleteExponent {
		rec.record(CategoryNumber, start, path, "repaired incomplete exponent")
	}

	if c.atEOF() {
		// The token's end coincides with the end of the whole buffer: in
		// streaming mode, a later chunk could still extend it.
		s.markEOFRecovery()
	} else if b := c.peekByte(); !isNumberTerminator(b) {
		if opts.NumberQuoteSuspicious {
			c.pos = start
			text := scanSuspiciousRun(s, start)
			rec.record(CategoryNumber, start, path, "quoted number with trailing garbage as string")
			return numberToken{Text: text, AsString: true}
		}
		rec.record(CategoryNumber, start, path, "accepted number despite trailing garbage")
	}

	fracEnd := numEnd
	if !hadDot {
		fracEnd = fracStart
	}
	text := buildNumberText(neg, intDigits, leadingZero, opts, hadDot, hadTrailingDot, c.slice(fracStart, fracEnd), hadExp, c.slice(start, numEnd))
	return numberToken{Text: text, AsString: leadingZero && opts.LeadingZeroPolicy == QuoteAsString}
}

// buildNumberText reassembles the normalized number text, applying the
// leading-zero policy and leading/trailing-dot completion.
func buildNumberText(neg bool, intDigits []byte, leadingZero bool, opts *Options, hadDot, hadTrailingDot bool, fracDigits []byte, hadExp bool, whole []byte) string {
	if leadingZero && opts.LeadingZeroPolicy == QuoteAsString {
		return string(whole)
	}

	var buf []byte
	if neg {
		buf = append(buf, '-')
	}
	if len(intDigits) == 0 {
		buf = append(buf, '0')
	} else if leadingZero {
		i := 0
		for i < len(intDigits)-1 && intDigits[i] == '0' {
			i++
		}
		buf = append(buf, intDigits[i:]...)
	} else {
		buf = append(buf, intDigits...)
	}

	if hadDot && !hadTrailingDot {
		buf = append(buf, '.')
		buf = append(buf, fracDigits...)
	}

	if hadExp {
		if i := indexByte(whole, 'e'); i >= 0 {
			buf = append(buf, whole[i:]...)
		} else if i := indexByte(whole, 'E'); i >= 0 {
			buf = append(buf, whole[i:]...)
		}
	}
	return string(buf)
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isNumberTerminator(b byte) bool {
	switch b {
	case ',', ':', ']', '}', ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// scanSuspiciousRun consumes from start through the next delimiter and
// returns the whole run as literal text, for quoting as a string.
func scanSuspiciousRun(s *state, start int) string {
	c := s.c
	for !c.atEOF() && !isNumberTerminator(c.peekByte()) {
		c.advance(1)
	}
	if c.atEOF() {
		s.markEOFRecovery()
	}
	return string(c.slice(start, c.pos))
}
