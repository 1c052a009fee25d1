// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonrepair

// state carries everything the scalar readers and structural parser share
// for one parse: the cursor, the effective options, the optional repair
// recorder, the recursion depth counter, and streaming-mode bookkeeping.
//
// eofRecovered is set the first time any reader has to paper over running
// out of buffer (an unterminated string, an unclosed container, a bare
// token that stopped only because the buffer ended). In streaming mode this
// means the value just parsed is tentative: more input might still extend
// it, so the driver should hold it back rather than emit it (see stream.go).
type state struct {
	c    *cursor
	opts *Options
	rec  *recorder

	depth        int
	streaming    bool
	eofRecovered bool
}

func newState(c *cursor, opts *Options, rec *recorder, streaming bool) *state {
	return &state{c: c, opts: opts, rec: rec, streaming: streaming}
}

func (s *state) markEOFRecovery() { s.eofRecovered = true }
