// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonrepair_test

import (
	"testing"

	"github.com/creachadair/jsonrepair"
	"github.com/stretchr/testify/require"
)

func TestHashComments(t *testing.T) {
	opts := jsonrepair.DefaultOptions()
	got, err := jsonrepair.RepairToString("{\n# a hash comment\n\"a\": 1\n}", opts)
	require.NoError(t, err)
	require.Equal(t, `{"a":1}`, got)
}

func TestWordCommentMarkers(t *testing.T) {
	opts := jsonrepair.DefaultOptions()
	opts.WordCommentMarkers = []string{"NOTE", "TODO"}
	got, err := jsonrepair.RepairToString("{\n  NOTE: remember this\n  \"a\": 1\n}", opts)
	require.NoError(t, err)
	require.Equal(t, `{"a":1}`, got)
}

func TestLeadingZeroPolicy(t *testing.T) {
	optsKeep := jsonrepair.DefaultOptions()
	optsKeep.LeadingZeroPolicy = jsonrepair.KeepAsNumber
	got, err := jsonrepair.RepairToString(`007`, optsKeep)
	require.NoError(t, err)
	require.Equal(t, `7`, got)

	optsQuote := jsonrepair.DefaultOptions()
	optsQuote.LeadingZeroPolicy = jsonrepair.QuoteAsString
	got, err = jsonrepair.RepairToString(`007`, optsQuote)
	require.NoError(t, err)
	require.Equal(t, `"007"`, got)
}

func TestNumberQuoteSuspicious(t *testing.T) {
	opts := jsonrepair.DefaultOptions()
	opts.Logging = true
	got, log, err := jsonrepair.RepairToStringWithLog(`5abc`, opts)
	require.NoError(t, err)
	require.Equal(t, `"5abc"`, got)
	require.NotEmpty(t, log)
}

func TestStringConcatenation(t *testing.T) {
	got, err := jsonrepair.RepairToString(`{"a": "foo" + "bar"}`, jsonrepair.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, `{"a":"foobar"}`, got)
}

func TestSingleQuotesAndSmartQuotes(t *testing.T) {
	got, err := jsonrepair.RepairToString("{‘a’: “value”}", jsonrepair.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, `{"a":"value"}`, got)
}

func TestEscapeForms(t *testing.T) {
	got, err := jsonrepair.RepairToString(`"\x41\'b"`, jsonrepair.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, `"A'b"`, got)
}

func TestIsolatedSurrogateFallsBackToReplacementChar(t *testing.T) {
	opts := jsonrepair.DefaultOptions()
	opts.Logging = true
	got, log, err := jsonrepair.RepairToStringWithLog(`"\ud800x"`, opts)
	require.NoError(t, err)
	require.Equal(t, "\"�x\"", got)
	require.NotEmpty(t, log)
}

func TestRegexLiteralBecomesString(t *testing.T) {
	got, err := jsonrepair.RepairToString(`{"pattern": /a\/b+/gi}`, jsonrepair.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, `{"pattern":"/a/b+/gi"}`, got)
}

func TestMultipleTopLevelValuesAggregateByDefault(t *testing.T) {
	got, err := jsonrepair.RepairToString(`{"a":1} {"b":2}`, jsonrepair.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, `[{"a":1},{"b":2}]`, got)
}

func TestPythonStyleSeparators(t *testing.T) {
	opts := jsonrepair.DefaultOptions()
	opts.PythonStyleSeparators = true
	got, err := jsonrepair.RepairToString(`{"a":1,"b":[1,2]}`, opts)
	require.NoError(t, err)
	require.Equal(t, `{"a": 1, "b": [1, 2]}`, got)
}

func TestEllipsisSkippedInArray(t *testing.T) {
	got, err := jsonrepair.RepairToString(`[1, ..., 2]`, jsonrepair.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, `[1,2]`, got)
}

func TestDanglingKeyBecomesNull(t *testing.T) {
	got, err := jsonrepair.RepairToString(`{"a":}`, jsonrepair.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, `{"a":null}`, got)
}

func TestMissingCommaInferred(t *testing.T) {
	got, err := jsonrepair.RepairToString(`{"a":1 "b":2}`, jsonrepair.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, `{"a":1,"b":2}`, got)
}

func TestMissingColonInferred(t *testing.T) {
	got, err := jsonrepair.RepairToString(`{"a" 1}`, jsonrepair.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, `{"a":1}`, got)
}
