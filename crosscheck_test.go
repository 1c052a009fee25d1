// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonrepair_test

import (
	"io"
	"strings"
	"testing"

	"github.com/creachadair/jsonrepair"
	"github.com/stretchr/testify/require"
	"github.com/tailscale/hujson"
)

// TestCrosscheckAgainstHuJSON differentially tests this engine against
// tailscale/hujson's Standardize for the subset of malformed input this
// engine also treats as well-defined: ordinary JSON plus "//" and "/* */"
// comments and trailing commas. That subset is exactly what HuJSON (JWCC)
// standardizes, so the two engines should agree there, even though this
// engine's tolerance extends far beyond it.
func TestCrosscheckAgainstHuJSON(t *testing.T) {
	tests := []string{
		`{}`,
		`[]`,
		`{"a": 1, "b": 2}`,
		`{"a": 1, "b": 2,}`,
		`[1, 2, 3,]`,
		`{
			// a comment
			"a": 1,
			"b": [1, 2, /* inline */ 3],
		}`,
		`{"nested": {"deeper": [1, 2, {"x": true, "y": false, "z": null}]}}`,
		`// leading comment
		{"a": "b"}`,
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			want := standardize(t, input)
			got, err := jsonrepair.RepairToString(input, jsonrepair.DefaultOptions())
			require.NoError(t, err)
			require.JSONEq(t, want, got)
		})
	}
}

func standardize(t *testing.T, input string) string {
	t.Helper()
	r := hujson.NewStandardizer(strings.NewReader(input))
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}
