// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonrepair_test

import (
	"strings"
	"testing"

	"github.com/creachadair/jsonrepair"
	"github.com/stretchr/testify/require"
)

// TestStreamWithholdsUnclosedFence checks that a fenced-code-block wrapper
// pushed in pieces is not emitted until its closing fence is observed, and
// that nothing is left for Flush once it has been.
func TestStreamWithholdsUnclosedFence(t *testing.T) {
	sr := jsonrepair.NewStreamRepairer(jsonrepair.DefaultOptions())

	out, err := sr.Push([]byte("```json\n{\"a\":1}\n"))
	require.NoError(t, err)
	require.Empty(t, out, "value withheld until the closing fence is seen")

	out, err = sr.Push([]byte("```"))
	require.NoError(t, err)
	require.Equal(t, `{"a":1}`, out)

	final, err := sr.Flush()
	require.NoError(t, err)
	require.Empty(t, final)
}

// TestStreamFlushEmitsUnclosedFenceAnyway checks that a fence whose closing
// token never arrives is still emitted once Flush forces finalization.
func TestStreamFlushEmitsUnclosedFenceAnyway(t *testing.T) {
	opts := jsonrepair.DefaultOptions()
	opts.Logging = true
	sr := jsonrepair.NewStreamRepairer(opts)

	out, err := sr.Push([]byte("```json\n{\"a\":1}\n"))
	require.NoError(t, err)
	require.Empty(t, out)

	final, err := sr.Flush()
	require.NoError(t, err)
	require.Equal(t, `{"a":1}`, final)
	require.NotEmpty(t, sr.Log())
}

// TestStreamJSONPWrapper checks the JSONP wrapper form in streaming mode.
func TestStreamJSONPWrapper(t *testing.T) {
	sr := jsonrepair.NewStreamRepairer(jsonrepair.DefaultOptions())

	out, err := sr.Push([]byte(`callback({"a":1}`))
	require.NoError(t, err)
	require.Empty(t, out, "value withheld until the closing paren is seen")

	out, err = sr.Push([]byte(`);`))
	require.NoError(t, err)
	require.Equal(t, `{"a":1}`, out)
}

// TestPushToWriterSeparatesValues checks that PushToWriter issues one write
// per completed value instead of joining them.
func TestPushToWriterSeparatesValues(t *testing.T) {
	sr := jsonrepair.NewStreamRepairer(jsonrepair.DefaultOptions())
	var got []string
	w := &collectingWriter{writes: &got}

	err := sr.PushToWriter([]byte(`{"a":1} {"b":2}`), w)
	require.NoError(t, err)
	require.Equal(t, []string{`{"a":1}`, `{"b":2}`}, got)

	err = sr.FlushToWriter(w)
	require.NoError(t, err)
	require.Equal(t, []string{`{"a":1}`, `{"b":2}`}, got, "nothing left to flush")
}

// TestFlushToWriterAggregates checks that FlushToWriter honors
// StreamNDJSONAggregate just like Flush.
func TestFlushToWriterAggregates(t *testing.T) {
	opts := jsonrepair.DefaultOptions()
	opts.StreamNDJSONAggregate = true
	sr := jsonrepair.NewStreamRepairer(opts)
	var got []string
	w := &collectingWriter{writes: &got}

	require.NoError(t, sr.PushToWriter([]byte(`{"a":1} {"b":2}`), w))
	require.Empty(t, got)

	require.NoError(t, sr.FlushToWriter(w))
	require.Equal(t, []string{`[{"a":1},{"b":2}]`}, got)
}

// TestRepairToWriterStreaming checks the whole-input convenience entry
// point that routes through the streaming driver's emission policy.
func TestRepairToWriterStreaming(t *testing.T) {
	var buf strings.Builder
	err := jsonrepair.RepairToWriterStreaming(`{"a":1} {"b":2}`, jsonrepair.DefaultOptions(), &buf)
	require.NoError(t, err)
	require.Equal(t, `{"a":1}{"b":2}`, buf.String())
}

type collectingWriter struct {
	writes *[]string
}

func (w *collectingWriter) Write(p []byte) (int, error) {
	*w.writes = append(*w.writes, string(p))
	return len(p), nil
}
