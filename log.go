// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonrepair

import "fmt"

// Category classifies the kind of local repair a LogEntry records.
type Category int

const (
	CategoryQuote           Category = iota // added or normalized quoting
	CategoryBracket                         // synthesized a missing ] } , or :
	CategoryEscape                          // repaired or dropped an escape sequence
	CategoryKeyword                         // normalized True/False/None/undefined/NaN/...
	CategoryNumber                          // normalized a malformed number token
	CategoryComment                         // stripped a comment or word-comment marker
	CategoryWrapper                         // stripped a fence or JSONP wrapper
	CategoryTruncation                      // closed a truncated trailing value at EOF
	CategoryConcatenation                   // merged adjacent string literals joined by +
	CategorySuspiciousClose                 // re-closed a string value at an earlier comma
)

func (c Category) String() string {
	switch c {
	case CategoryQuote:
		return "quote"
	case CategoryBracket:
		return "bracket"
	case CategoryEscape:
		return "escape"
	case CategoryKeyword:
		return "keyword"
	case CategoryNumber:
		return "number"
	case CategoryComment:
		return "comment"
	case CategoryWrapper:
		return "wrapper"
	case CategoryTruncation:
		return "truncation"
	case CategoryConcatenation:
		return "concatenation"
	case CategorySuspiciousClose:
		return "suspicious-close"
	default:
		return "unknown"
	}
}

// LogEntry records a single local repair applied to the input.
type LogEntry struct {
	Category Category
	Position int      // byte offset where the repair began, in the text actually parsed (after BOM/wrapper stripping)
	Location Location // line/column location of Position (or of the repaired span, when one is known)
	Message  string   // human-readable description
	Context  string   // a window of surrounding original text, if requested
	Path     Path     // structural path to the enclosing value, if requested
}

func (e LogEntry) String() string {
	if e.Context != "" {
		return fmt.Sprintf("%s @%d: %s (near %q)", e.Category, e.Position, e.Message, e.Context)
	}
	return fmt.Sprintf("%s @%d: %s", e.Category, e.Position, e.Message)
}

// A Log is the ordered journal of repairs applied during one repair call, in
// the order they were discovered. RepairToStringWithLog returns one; plain
// RepairToString and RepairToWriter never populate one.
type Log []LogEntry

// recorder accumulates LogEntry values during a parse and is embedded in the
// parser state. A nil *recorder means logging is disabled and every method
// is a cheap no-op, so callers never need to branch on whether logging is
// on before recording.
type recorder struct {
	entries       Log
	contextWindow int
	withPath      bool
	src           []byte
}

func newRecorder(opts *Options, src []byte) *recorder {
	if !opts.Logging {
		return nil
	}
	return &recorder{
		contextWindow: opts.LogContextWindow,
		withPath:      opts.LogJSONPath,
		src:           src,
	}
}

func (r *recorder) record(cat Category, pos int, path Path, format string, args ...any) {
	if r == nil {
		return
	}
	r.recordLoc(cat, pos, locationAt(r.src, pos), path, format, args...)
}

// recordLoc is record, but with a caller-computed Location (typically from a
// live cursor, e.g. cursor.location(), when the repaired span is already in
// hand) instead of one recomputed from a bare position.
func (r *recorder) recordLoc(cat Category, pos int, loc Location, path Path, format string, args ...any) {
	if r == nil {
		return
	}
	e := LogEntry{Category: cat, Position: pos, Location: loc, Message: fmt.Sprintf(format, args...)}
	if r.withPath {
		e.Path = path.clone()
	}
	if r.contextWindow > 0 {
		e.Context = r.contextAt(pos)
	}
	r.entries = append(r.entries, e)
}

func (r *recorder) contextAt(pos int) string {
	lo := pos - r.contextWindow
	if lo < 0 {
		lo = 0
	}
	hi := pos + r.contextWindow
	if hi > len(r.src) {
		hi = len(r.src)
	}
	if lo >= hi {
		return ""
	}
	return string(r.src[lo:hi])
}

func (r *recorder) log() Log {
	if r == nil {
		return nil
	}
	return r.entries
}
