// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonrepair

import (
	"io"

	"go4.org/mem"

	"github.com/creachadair/jsonrepair/internal/escape"
)

// An emitter writes canonical JSON directly to an output sink, tracking
// container nesting so it knows when a leading comma is needed. It is
// polymorphic over the sink capability set {write bytes}, so the same
// parsing logic can target either a growable in-memory buffer or an
// arbitrary io.Writer.
//
// Comma placement is the caller's (parser's) responsibility: comma must be
// called exactly once before each array element and before each object key,
// including the first in a container (where it is a no-op). writeKey,
// writeString, and writeRaw never touch comma bookkeeping themselves.
type emitter interface {
	beginArray() error
	endArray() error
	beginObject() error
	endObject() error
	comma() error
	writeKey(text string) error
	writeString(text string) error
	writeRaw(text string) error
	failure() error
}

type frame struct {
	wroteAny bool
}

// baseEmitter holds the separator/escaping policy and the container stack
// shared by both sink implementations.
type baseEmitter struct {
	opts  *Options
	stack []frame
	err   error
}

func (b *baseEmitter) colonSep() string {
	if b.opts.PythonStyleSeparators {
		return ": "
	}
	return ":"
}

func (b *baseEmitter) commaSep() string {
	if b.opts.PythonStyleSeparators {
		return ", "
	}
	return ","
}

func (b *baseEmitter) push() { b.stack = append(b.stack, frame{}) }
func (b *baseEmitter) pop()  { b.stack = b.stack[:len(b.stack)-1] }

func (b *baseEmitter) quote(text string) []byte {
	return escape.Quote(mem.S(text), b.opts.EnsureASCII)
}

// bufferEmitter accumulates output into an in-memory buffer, used by
// RepairToString.
type bufferEmitter struct {
	baseEmitter
	buf []byte
}

func newBufferEmitter(opts *Options) *bufferEmitter {
	return &bufferEmitter{baseEmitter: baseEmitter{opts: opts}}
}

func (e *bufferEmitter) beginArray() error {
	e.buf = append(e.buf, '[')
	e.push()
	return nil
}
func (e *bufferEmitter) endArray() error {
	e.pop()
	e.buf = append(e.buf, ']')
	return nil
}
func (e *bufferEmitter) beginObject() error {
	e.buf = append(e.buf, '{')
	e.push()
	return nil
}
func (e *bufferEmitter) endObject() error {
	e.pop()
	e.buf = append(e.buf, '}')
	return nil
}
func (e *bufferEmitter) comma() error {
	if len(e.stack) == 0 {
		return nil
	}
	top := &e.stack[len(e.stack)-1]
	if top.wroteAny {
		e.buf = append(e.buf, e.commaSep()...)
	}
	top.wroteAny = true
	return nil
}
func (e *bufferEmitter) writeKey(text string) error {
	e.buf = append(e.buf, '"')
	e.buf = append(e.buf, e.quote(text)...)
	e.buf = append(e.buf, '"')
	e.buf = append(e.buf, e.colonSep()...)
	return nil
}
func (e *bufferEmitter) writeString(text string) error {
	e.buf = append(e.buf, '"')
	e.buf = append(e.buf, e.quote(text)...)
	e.buf = append(e.buf, '"')
	return nil
}
func (e *bufferEmitter) writeRaw(text string) error {
	e.buf = append(e.buf, text...)
	return nil
}
func (e *bufferEmitter) failure() error { return e.err }
func (e *bufferEmitter) String() string { return string(e.buf) }

// writerEmitter writes directly to a caller-provided io.Writer. The first
// write error becomes sticky and is returned by every later call. The public
// entry points do not use it: RepairToWriter and RepairToWriterStreaming
// build each value with a bufferEmitter and then write the finished text.
type writerEmitter struct {
	baseEmitter
	w io.Writer
}

func newWriterEmitter(w io.Writer, opts *Options) *writerEmitter {
	return &writerEmitter{baseEmitter: baseEmitter{opts: opts}, w: w}
}

func (e *writerEmitter) write(s string) {
	if e.err != nil {
		return
	}
	if _, err := io.WriteString(e.w, s); err != nil {
		e.err = err
	}
}

func (e *writerEmitter) beginArray() error {
	e.write("[")
	e.push()
	return e.err
}
func (e *writerEmitter) endArray() error {
	e.pop()
	e.write("]")
	return e.err
}
func (e *writerEmitter) beginObject() error {
	e.write("{")
	e.push()
	return e.err
}
func (e *writerEmitter) endObject() error {
	e.pop()
	e.write("}")
	return e.err
}
func (e *writerEmitter) comma() error {
	if len(e.stack) == 0 {
		return e.err
	}
	top := &e.stack[len(e.stack)-1]
	if top.wroteAny {
		e.write(e.commaSep())
	}
	top.wroteAny = true
	return e.err
}
func (e *writerEmitter) writeKey(text string) error {
	e.write(`"`)
	e.write(string(e.quote(text)))
	e.write(`"`)
	e.write(e.colonSep())
	return e.err
}
func (e *writerEmitter) writeString(text string) error {
	e.write(`"`)
	e.write(string(e.quote(text)))
	e.write(`"`)
	return e.err
}
func (e *writerEmitter) writeRaw(text string) error {
	e.write(text)
	return e.err
}
func (e *writerEmitter) failure() error { return e.err }
