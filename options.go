// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonrepair

import "go.uber.org/zap"

// LeadingZeroPolicy controls how the number reader treats an integer with
// redundant leading zeros, such as "007".
type LeadingZeroPolicy int

const (
	// KeepAsNumber strips the redundant leading zeros and keeps the token as
	// a JSON number (e.g. "007" repairs to 7).
	KeepAsNumber LeadingZeroPolicy = iota
	// QuoteAsString quotes the original digit run as a JSON string instead
	// (e.g. "007" repairs to "007").
	QuoteAsString
)

// Options configures a single repair call. A zero Options is not ready for
// use; construct one with DefaultOptions and adjust the fields you care
// about. Options is treated as immutable during a single repair call and may
// be shared freely across concurrent calls and goroutines.
type Options struct {
	// TolerateHashComments allows "#" line comments, in addition to "//" and
	// "/* */".
	TolerateHashComments bool
	// RepairUndefined converts the JavaScript value "undefined" to null.
	RepairUndefined bool
	// AllowPythonKeywords accepts True/False/None as true/false/null.
	AllowPythonKeywords bool
	// NormalizeJSNonfinite converts bare NaN/Infinity/-Infinity to null.
	NormalizeJSNonfinite bool
	// FencedCodeBlocks strips a single leading/trailing Markdown fence
	// (```lang ... ```) around the payload.
	FencedCodeBlocks bool
	// StreamNDJSONAggregate causes a StreamRepairer to buffer multiple
	// top-level values and emit them as one JSON array on Flush, instead of
	// emitting each value standalone.
	StreamNDJSONAggregate bool
	// LeadingZeroPolicy controls repair of integers with redundant leading
	// zeros.
	LeadingZeroPolicy LeadingZeroPolicy
	// EnsureASCII escapes every codepoint >= 0x80 in emitted strings as
	// \uXXXX (with surrogate pairs for codepoints >= 0x10000).
	EnsureASCII bool
	// NumberToleranceLeadingDot accepts ".5" as "0.5".
	NumberToleranceLeadingDot bool
	// NumberToleranceTrailingDot accepts "5." as "5".
	NumberToleranceTrailingDot bool
	// NumberToleranceIncompleteExponent accepts "1e"/"1e+" as "1".
	NumberToleranceIncompleteExponent bool
	// NumberQuoteSuspicious quotes a number token that is immediately
	// followed by non-delimiter garbage, instead of truncating it.
	NumberQuoteSuspicious bool
	// PythonStyleSeparators emits ": " and ", " instead of ":" and ",".
	PythonStyleSeparators bool
	// AggressiveTruncationFix logs the closing of a string left unterminated
	// at end of input under CategoryTruncation instead of CategoryQuote. Such
	// a string is closed, and its enclosing containers with it, whether or not
	// this is set.
	AggressiveTruncationFix bool
	// MaxDepth bounds recursive-descent nesting. Zero means the default of
	// 1024.
	MaxDepth int
	// WordCommentMarkers lists additional bare identifiers that, found where
	// a comment is legal, are treated as starting a line comment.
	WordCommentMarkers []string

	// Logging enables the Repair Log (see Log, LogEntry). RepairToString and
	// RepairToWriter never populate a log even when this is true; use
	// RepairToStringWithLog to retrieve one.
	Logging bool
	// LogContextWindow is the number of bytes of original text captured on
	// each side of a log entry's position.
	LogContextWindow int
	// LogJSONPath attaches a structural path (object keys / array indices)
	// to each log entry.
	LogJSONPath bool

	// ValidateOutput runs the emitted text through an external strict JSON
	// parser (github.com/valyala/fastjson) before returning it. A failure
	// here indicates a bug in the repair engine itself, not a malformed
	// input, and surfaces as an *Error of kind UnrecoverableSyntax.
	ValidateOutput bool

	// AssumeValidJSONFastpath tries a strict JSON parse of the raw input
	// first; when it succeeds and EnsureASCII is false, the input is
	// returned unchanged instead of being run through the repair engine.
	// Leave this off when the input is expected to need repair, since the
	// strict parse is then pure overhead.
	AssumeValidJSONFastpath bool

	// Logger receives ambient diagnostic messages unrelated to the Repair
	// Log (buffer-discard notices, validator fast-path hits, and the like).
	// A nil Logger discards these messages.
	Logger *zap.SugaredLogger
}

// DefaultOptions returns the recognized configuration defaults.
func DefaultOptions() Options {
	return Options{
		TolerateHashComments:              true,
		RepairUndefined:                   true,
		AllowPythonKeywords:               true,
		NormalizeJSNonfinite:              true,
		FencedCodeBlocks:                  true,
		StreamNDJSONAggregate:             false,
		LeadingZeroPolicy:                 KeepAsNumber,
		EnsureASCII:                       false,
		NumberToleranceLeadingDot:         true,
		NumberToleranceTrailingDot:        true,
		NumberToleranceIncompleteExponent: true,
		NumberQuoteSuspicious:             true,
		PythonStyleSeparators:             false,
		AggressiveTruncationFix:           false,
		MaxDepth:                          1024,
		LogContextWindow:                  10,
	}
}

func (o *Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return 1024
	}
	return o.MaxDepth
}

func (o *Options) logf(template string, args ...any) {
	if o.Logger != nil {
		o.Logger.Debugf(template, args...)
	}
}
