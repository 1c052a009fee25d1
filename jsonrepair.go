// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonrepair

import (
	"io"
	"strings"
)

// maxInputBytes bounds worst-case work on a single non-streaming call.
const maxInputBytes = 64 << 20 // 64 MiB

// RepairToString parses input under opts and returns the repaired JSON
// text. If input contains more than one top-level value, they are
// collected into a JSON array (the NDJSON aggregation rule for
// non-streaming calls). Empty input (or input that is only whitespace and
// comments) returns "" with no error.
func RepairToString(input string, opts Options) (string, error) {
	if fastpathPassthrough(input, &opts) {
		return input, nil
	}
	values, _, err := repairAll([]byte(input), &opts)
	if err != nil {
		return "", err
	}
	out := combineValues(values, &opts)
	if verr := validateStrict(out, &opts); verr != nil {
		return "", verr
	}
	return out, nil
}

// RepairToStringWithLog is RepairToString, additionally returning the
// ordered journal of local repairs that were applied. Options.Logging must
// be set for the log to be populated; otherwise it is nil.
func RepairToStringWithLog(input string, opts Options) (string, Log, error) {
	if fastpathPassthrough(input, &opts) {
		return input, nil, nil
	}
	values, lg, err := repairAll([]byte(input), &opts)
	if err != nil {
		return "", lg, err
	}
	out := combineValues(values, &opts)
	if verr := validateStrict(out, &opts); verr != nil {
		return "", lg, verr
	}
	return out, lg, nil
}

// RepairToWriter is RepairToString, writing the result to w instead of
// returning it. A write failure surfaces as an *Error with kind
// WriterFailure.
func RepairToWriter(input string, opts Options, w io.Writer) error {
	out, err := RepairToString(input, opts)
	if err != nil {
		return err
	}
	if out == "" {
		return nil
	}
	if _, werr := io.WriteString(w, out); werr != nil {
		return wrapError(WriterFailure, -1, werr)
	}
	return nil
}

// RepairToWriterStreaming repairs a single, complete input under the
// streaming driver's emission policy instead of the non-streaming one:
// multiple top-level values are written as separate JSON texts (or
// aggregated into one array only if Options.StreamNDJSONAggregate is set)
// rather than always being collected into an array. This is useful when a
// caller has the whole input in hand but wants streaming-shaped output.
func RepairToWriterStreaming(input string, opts Options, w io.Writer) error {
	sr := NewStreamRepairer(opts)
	if err := sr.PushToWriter([]byte(input), w); err != nil {
		return err
	}
	return sr.FlushToWriter(w)
}

// combineValues applies the NDJSON aggregation rule: zero values is empty
// output, one value is passed through, and more than one is collected into
// a JSON array.
func combineValues(values []string, opts *Options) string {
	switch len(values) {
	case 0:
		return ""
	case 1:
		return values[0]
	default:
		sep := ","
		if opts.PythonStyleSeparators {
			sep = ", "
		}
		return "[" + strings.Join(values, sep) + "]"
	}
}

// repairAll parses every top-level value in buf under opts, applying BOM
// stripping, wrapper stripping, and the size cap before parsing begins.
// Recoverable malformations never reach here as errors — only a narrow set
// of conditions do, surfaced via the parseAbort panic caught below.
func repairAll(buf []byte, opts *Options) (values []string, lg Log, err *Error) {
	defer func() {
		if r := recover(); r != nil {
			if ab, ok := r.(parseAbort); ok {
				err = ab.err
				return
			}
			panic(r)
		}
	}()

	buf = stripBOM(buf)
	rec := newRecorder(opts, buf)
	buf = stripWrappers(buf, opts, rec)
	// Positions recorded from here on are relative to buf as the cursor
	// will see it, which is the wrapper-stripped slice, not the original
	// bytes: keep the recorder's context window in the same coordinates.
	if rec != nil {
		rec.src = buf
	}
	if len(buf) > maxInputBytes {
		failAt(InputTooLarge, buf, 0, "input exceeds maximum size")
	}

	c := newCursor(buf)
	s := newState(c, opts, rec, false)
	for {
		skipInsignificant(s, nil)
		if c.atEOF() {
			break
		}
		be := newBufferEmitter(opts)
		if parseValue(s, be, nil) {
			values = append(values, be.String())
		}
	}
	return values, rec.log(), nil
}
