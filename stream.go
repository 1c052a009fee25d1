// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonrepair

import (
	"io"
	"strings"
)

// wrapperKind identifies a leading wrapper a StreamRepairer has detected
// and must see closed before the value(s) inside it are considered final.
type wrapperKind int

const (
	wrapperNone wrapperKind = iota
	wrapperFence
	wrapperJSONP
)

// StreamRepairer wraps the structural parser in a simple resumable model:
// each push retries the parser over the whole accumulated buffer starting
// from the last confirmed-safe offset, rather than encoding every
// sub-parser's mid-construct state as a resumable machine.
//
// A StreamRepairer is not safe for concurrent use.
type StreamRepairer struct {
	opts Options
	rec  *recorder

	buf       []byte
	committed int // bytes of buf already emitted as complete values

	wrapper        wrapperKind
	wrapperChecked bool

	aggValues []string
	err       error
}

// NewStreamRepairer creates a driver with the given options.
func NewStreamRepairer(opts Options) *StreamRepairer {
	return &StreamRepairer{opts: opts, rec: newRecorder(&opts, nil)}
}

// Log returns the repair log accumulated so far, if Options.Logging is set.
func (sr *StreamRepairer) Log() Log { return sr.rec.log() }

// Push appends chunk to the internal buffer and returns any newly
// completed top-level value text (several values, if more than one
// completed in this call, are joined with "\n"; use PushToWriter to
// receive them as separate writes).
func (sr *StreamRepairer) Push(chunk []byte) (string, error) {
	if sr.err != nil {
		return "", sr.err
	}
	sr.buf = append(sr.buf, chunk...)
	sr.syncRecorderSrc()
	values, err := sr.drain(false)
	if err != nil {
		return "", err
	}
	return strings.Join(values, "\n"), nil
}

// Flush signals that no further input is coming, finalizes any tentative
// value still held back (closing open containers/strings exactly as a
// non-streaming repair would at end of input), and — when
// Options.StreamNDJSONAggregate is set — returns the aggregated array of
// every value seen across the driver's lifetime.
func (sr *StreamRepairer) Flush() (string, error) {
	if sr.err != nil {
		return "", sr.err
	}
	values, err := sr.drain(true)
	if err != nil {
		return "", err
	}
	if sr.opts.StreamNDJSONAggregate {
		out := combineValues(sr.aggValues, &sr.opts)
		sr.aggValues = nil
		return out, nil
	}
	return strings.Join(values, "\n"), nil
}

// PushToWriter is Push, writing each completed value to w as a separate
// write instead of returning them joined.
func (sr *StreamRepairer) PushToWriter(chunk []byte, w io.Writer) error {
	if sr.err != nil {
		return sr.err
	}
	sr.buf = append(sr.buf, chunk...)
	sr.syncRecorderSrc()
	values, err := sr.drain(false)
	if err != nil {
		return err
	}
	return writeAll(w, values)
}

// syncRecorderSrc keeps the recorder's context-window source in step with
// the buffer the cursor actually parses, since sr.buf is reallocated by
// every append.
func (sr *StreamRepairer) syncRecorderSrc() {
	if sr.rec != nil {
		sr.rec.src = sr.buf
	}
}

// FlushToWriter is Flush, writing to w instead of returning a string.
func (sr *StreamRepairer) FlushToWriter(w io.Writer) error {
	if sr.err != nil {
		return sr.err
	}
	values, err := sr.drain(true)
	if err != nil {
		return err
	}
	if sr.opts.StreamNDJSONAggregate {
		out := combineValues(sr.aggValues, &sr.opts)
		sr.aggValues = nil
		if out == "" {
			return nil
		}
		_, werr := io.WriteString(w, out)
		if werr != nil {
			return wrapError(WriterFailure, -1, werr)
		}
		return nil
	}
	return writeAll(w, values)
}

func writeAll(w io.Writer, values []string) error {
	for _, v := range values {
		if _, err := io.WriteString(w, v); err != nil {
			return wrapError(WriterFailure, -1, err)
		}
	}
	return nil
}

// drain parses as many complete top-level values as it can starting from
// sr.committed, advancing sr.committed past each one it accepts. A value
// whose parse required papering over a premature end of buffer is held
// back (not emitted, not committed) unless final is set, so the next push
// can retry it with more data once available.
func (sr *StreamRepairer) drain(final bool) ([]string, error) {
	if !sr.wrapperChecked {
		sr.detectWrapper()
		if !sr.wrapperChecked && !final {
			// Not enough buffer yet to know whether a wrapper opens this
			// input; wait for more before attempting to parse anything.
			return nil, nil
		}
		sr.wrapperChecked = true
	}

	var emitted []string
	for {
		c := newCursor(sr.buf)
		c.pos = sr.committed
		s := newState(c, &sr.opts, sr.rec, true)

		skipInsignificant(s, nil)
		if c.atEOF() {
			sr.committed = c.pos
			break
		}

		be := newBufferEmitter(&sr.opts)
		if abort := sr.parseGuarded(s, be); abort != nil {
			sr.err = abort
			return emitted, abort
		}

		if s.eofRecovered && !final {
			sr.opts.logf("discarded tentative parse of %d buffered bytes pending more input", len(sr.buf)-sr.committed)
			return emitted, nil
		}

		valueEnd := c.pos
		if sr.wrapper != wrapperNone {
			skipInsignificant(s, nil)
			if sr.consumeWrapperClose(c) {
				sr.wrapper = wrapperNone
				valueEnd = c.pos
			} else if !final {
				return emitted, nil
			} else {
				sr.rec.record(CategoryWrapper, c.pos, nil, "wrapper closing token never observed; emitted anyway at flush")
				sr.wrapper = wrapperNone
				valueEnd = c.pos
			}
		}

		sr.committed = valueEnd
		text := be.String()
		if text == "" {
			// Only stray closers or commas were dropped; no value to emit.
			continue
		}
		if sr.opts.StreamNDJSONAggregate {
			sr.aggValues = append(sr.aggValues, text)
		} else {
			emitted = append(emitted, text)
		}
	}
	return emitted, nil
}

func (sr *StreamRepairer) parseGuarded(s *state, e emitter) (abort *Error) {
	defer func() {
		if r := recover(); r != nil {
			if ab, ok := r.(parseAbort); ok {
				abort = ab.err
				return
			}
			panic(r)
		}
	}()
	parseValue(s, e, nil)
	return nil
}

// detectWrapper recognizes a leading fenced-code-block or JSONP wrapper in
// the buffer accumulated so far and strips its opening token, recording
// that a matching close is still owed. It only commits to "no wrapper"
// once enough of the buffer is available to be confident; until then it
// leaves the buffer alone and retries on the next push.
func (sr *StreamRepairer) detectWrapper() {
	sr.buf = stripBOM(sr.buf)
	if sr.opts.FencedCodeBlocks {
		if rest, ok := stripFenceOpen(sr.buf); ok {
			sr.rec.record(CategoryWrapper, 0, nil, "stripped opening fence")
			sr.buf = rest
			sr.wrapper = wrapperFence
			sr.wrapperChecked = true
			return
		}
	}
	if rest, ok := stripJSONPOpen(sr.buf); ok {
		sr.rec.record(CategoryWrapper, 0, nil, "stripped JSONP call prefix")
		sr.buf = rest
		sr.wrapper = wrapperJSONP
		sr.wrapperChecked = true
		return
	}
	// No wrapper found yet. If the buffer already has enough bytes to
	// rule out both forms definitively, stop checking; otherwise a later
	// push might still reveal one.
	if len(sr.buf) > 0 && sr.buf[0] != '`' && !isIdentByte(sr.buf[0], true) {
		sr.wrapperChecked = true
	}
}

// stripFenceOpen strips a leading "```lang\n" fence marker, if present.
func stripFenceOpen(buf []byte) ([]byte, bool) {
	s := skipLeadingSpace(buf)
	if len(s) < 3 || string(s[:3]) != "```" {
		return buf, false
	}
	nl := indexByte(s[3:], '\n')
	if nl < 0 {
		return buf, false
	}
	return s[3+nl+1:], true
}

// stripJSONPOpen strips a leading "identifier(" call prefix, if present.
func stripJSONPOpen(buf []byte) ([]byte, bool) {
	s := skipLeadingSpace(buf)
	i := 0
	for i < len(s) && isIdentByte(s[i], i == 0) {
		i++
	}
	if i == 0 || i >= len(s) || s[i] != '(' {
		return buf, false
	}
	return s[i+1:], true
}

// consumeWrapperClose consumes the closing token for the currently
// pending wrapper at c.pos, if present.
func (sr *StreamRepairer) consumeWrapperClose(c *cursor) bool {
	switch sr.wrapper {
	case wrapperFence:
		if c.hasPrefix("```") {
			c.advance(3)
			return true
		}
	case wrapperJSONP:
		if c.peekByte() == ')' {
			c.advance(1)
			skipWhitespace(c)
			if c.peekByte() == ';' {
				c.advance(1)
			}
			return true
		}
	}
	return false
}
