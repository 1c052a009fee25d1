// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonrepair_test

import (
	"testing"

	"github.com/creachadair/jsonrepair"
	"github.com/google/go-cmp/cmp"
)

// TestLogCategorySequence checks the ordered sequence of repair categories
// recorded for a fixed input with several distinct malformations, using a
// structural diff so a mismatch reports exactly where the sequence diverged.
func TestLogCategorySequence(t *testing.T) {
	opts := jsonrepair.DefaultOptions()
	opts.Logging = true

	_, log, err := jsonrepair.RepairToStringWithLog(`{'a': True, "b": 1,}`, opts)
	if err != nil {
		t.Fatalf("RepairToStringWithLog: %v", err)
	}

	var got []jsonrepair.Category
	for _, e := range log {
		got = append(got, e.Category)
	}
	want := []jsonrepair.Category{
		jsonrepair.CategoryKeyword,
		jsonrepair.CategoryBracket,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("log category sequence mismatch (-want +got):\n%s", diff)
	}
}
