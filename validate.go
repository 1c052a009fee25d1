// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonrepair

import "github.com/valyala/fastjson"

// validateStrict runs text through a strict JSON parser as a post-check.
// A failure here means the repair engine itself emitted malformed JSON —
// a bug, not a property of the input — so it is reported as
// UnrecoverableSyntax rather than attributed to any input position. Wired
// to Options.ValidateOutput.
func validateStrict(text string, opts *Options) error {
	if !opts.ValidateOutput {
		return nil
	}
	var p fastjson.Parser
	if _, err := p.Parse(text); err != nil {
		opts.logf("output failed strict validation: %v", err)
		e := newErrorAt(UnrecoverableSyntax, []byte(text), len(text), "repaired output is not valid JSON: "+err.Error())
		e.err = err
		return e
	}
	return nil
}

// fastpathPassthrough reports whether input is already strict JSON and can
// be returned unchanged instead of running through the repair engine.
// Wired to Options.AssumeValidJSONFastpath; never applies when EnsureASCII
// is set, since a pass-through skips the escaping that flag requires.
func fastpathPassthrough(input string, opts *Options) bool {
	if !opts.AssumeValidJSONFastpath || opts.EnsureASCII {
		return false
	}
	var p fastjson.Parser
	if _, err := p.Parse(input); err != nil {
		return false
	}
	opts.logf("assume_valid_json_fastpath: input already strict JSON, passed through unchanged")
	return true
}
