// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

import (
	"unicode/utf8"

	"go4.org/mem"
)

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789abcdef")

// Quote encodes a string to escape characters for inclusion in a JSON
// string. When ensureASCII is set, every codepoint >= 0x80 is additionally
// escaped as \uXXXX, using a surrogate pair for codepoints >= 0x10000, so
// the returned bytes are pure ASCII.
func Quote(src mem.RO, ensureASCII bool) []byte {
	buf := make([]byte, 0, src.Len())
	putByte := func(bs ...byte) { buf = append(buf, bs...) }
	putU16 := func(v uint16) {
		putByte('\\', 'u',
			hexDigit[(v>>12)&0xf], hexDigit[(v>>8)&0xf],
			hexDigit[(v>>4)&0xf], hexDigit[v&0xf])
	}

	i := 0
	for i < src.Len() {
		r, n := mem.DecodeRune(src)
		if r < utf8.RuneSelf {
			if r < ' ' {
				if b := controlEsc[r]; b != 0 {
					putByte('\\', b)
				} else {
					putByte('\\', 'u', '0', '0', hexDigit[int(r>>4)], hexDigit[int(r&15)])
				}
			} else if r == '\\' || r == '"' {
				putByte('\\', byte(r))
			} else {
				putByte(byte(r))
			}
			src = src.SliceFrom(n)
			continue
		}

		if ensureASCII {
			if r > 0xffff {
				r -= 0x10000
				putU16(uint16(0xd800 + (r >> 10)))
				putU16(uint16(0xdc00 + (r & 0x3ff)))
			} else {
				putU16(uint16(r))
			}
			src = src.SliceFrom(n)
			continue
		}

		switch r {
		case '\u2028': // line separator
			buf = append(buf, `\u2028`...)
		case '\u2029': // paragraph separator
			buf = append(buf, `\u2029`...)
		default:
			var rbuf [6]byte
			n := utf8.EncodeRune(rbuf[:], r)
			buf = append(buf, rbuf[:n]...)
		}

		src = src.SliceFrom(n)
	}
	return buf
}
