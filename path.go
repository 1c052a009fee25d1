// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package jsonrepair

import "strconv"

// A PathElem is a single step in a structural Path: either an object key or
// an array index.
type PathElem struct {
	Key     string // object key; valid when !IsIndex
	Index   int    // array index; valid when IsIndex
	IsIndex bool
}

// Path is a structural path from the root value to a nested position,
// reported by log entries when Options.LogJSONPath is set.
type Path []PathElem

// String renders p in bracket notation, e.g. $["users"][3]["name"].
func (p Path) String() string {
	if len(p) == 0 {
		return "$"
	}
	var buf []byte
	buf = append(buf, '$')
	for _, el := range p {
		buf = append(buf, '[')
		if el.IsIndex {
			buf = strconv.AppendInt(buf, int64(el.Index), 10)
		} else {
			buf = append(buf, '"')
			for _, r := range el.Key {
				if r == '"' || r == '\\' {
					buf = append(buf, '\\')
				}
				buf = append(buf, string(r)...)
			}
			buf = append(buf, '"')
		}
		buf = append(buf, ']')
	}
	return string(buf)
}

// clone returns a copy of p, since log entries retain their path after the
// live path slice that produced them keeps mutating.
func (p Path) clone() Path {
	out := make(Path, len(p))
	copy(out, p)
	return out
}
