// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonrepair

import (
	"testing"

	"github.com/creachadair/mds/mtest"
)

// TestEnterDepthPanicsPastLimit exercises enterDepth directly, bypassing the
// recover wrapper that repairAll and the streaming driver install around the
// parser. Called this way, exceeding the configured depth is a genuine panic
// across the state boundary, not a value callers ever observe through the
// public API.
func TestEnterDepthPanicsPastLimit(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxDepth = 2
	s := newState(newCursor(nil), &opts, nil, false)

	s.enterDepth(0)
	s.enterDepth(0)
	mtest.MustPanic(t, func() { s.enterDepth(0) })
}

// TestTrySuspiciousStringClose exercises the re-close heuristic directly
// against a value whose first comma precedes a closing quote that is not
// itself followed by a legal member terminator: the earlier comma wins, and
// the cursor is left sitting on it for the member loop to consume.
func TestTrySuspiciousStringClose(t *testing.T) {
	buf := []byte(`"one, two" three", "b": 4}`)
	c := newCursor(buf)
	s := newState(c, &Options{}, nil, false)

	text, ok := trySuspiciousStringClose(s, nil)
	if !ok {
		t.Fatalf("trySuspiciousStringClose: got ok=false, want true")
	}
	if text != "one" {
		t.Errorf("trySuspiciousStringClose: got text %q, want %q", text, "one")
	}
	if got, want := c.peekByte(), byte(','); got != want {
		t.Errorf("cursor after close: got byte %q, want %q", got, want)
	}

	c2 := newCursor([]byte(`"plain value", "b": 4}`))
	s2 := newState(c2, &Options{}, nil, false)
	if _, ok := trySuspiciousStringClose(s2, nil); ok {
		t.Errorf("trySuspiciousStringClose: got ok=true for an ordinary string value")
	}
}
