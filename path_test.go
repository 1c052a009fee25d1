// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonrepair_test

import (
	"testing"

	"github.com/creachadair/jsonrepair"
	"github.com/stretchr/testify/require"
)

// TestLogJSONPath checks that log entries carry the structural path to the
// value they concern when Options.LogJSONPath is set.
func TestLogJSONPath(t *testing.T) {
	opts := jsonrepair.DefaultOptions()
	opts.Logging = true
	opts.LogJSONPath = true

	got, log, err := jsonrepair.RepairToStringWithLog(`{"items": [1, 'x', True,]}`, opts)
	require.NoError(t, err)
	require.Equal(t, `{"items":[1,"x",true]}`, got)

	var found bool
	for _, e := range log {
		if e.Category == jsonrepair.CategoryKeyword {
			require.Equal(t, `$["items"][2]`, e.Path.String())
			found = true
		}
	}
	require.True(t, found, "expected a keyword-normalization log entry")
}

// TestLogWithoutPathIsEmpty checks that paths are omitted unless
// Options.LogJSONPath is set, even with logging enabled.
func TestLogWithoutPathIsEmpty(t *testing.T) {
	opts := jsonrepair.DefaultOptions()
	opts.Logging = true

	_, log, err := jsonrepair.RepairToStringWithLog(`{"items": [True]}`, opts)
	require.NoError(t, err)
	require.NotEmpty(t, log)
	for _, e := range log {
		require.Nil(t, e.Path)
	}
}

// TestLogContextWindow checks that each log entry's Context captures the
// surrounding original text when a nonzero window is configured.
func TestLogContextWindow(t *testing.T) {
	opts := jsonrepair.DefaultOptions()
	opts.Logging = true
	opts.LogContextWindow = 4

	_, log, err := jsonrepair.RepairToStringWithLog(`{"a": True}`, opts)
	require.NoError(t, err)
	require.NotEmpty(t, log)
	for _, e := range log {
		require.NotEmpty(t, e.Context)
	}
}
