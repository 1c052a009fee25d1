// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jsonrepair implements a tolerant parser that consumes
// "almost-JSON" text — as commonly emitted by language models, JavaScript
// dumps, Python literals, or ad-hoc hand editing — and produces strictly
// valid JSON output.
//
// # Repairing
//
// The simplest entry point parses a complete input and returns the
// repaired text:
//
//	out, err := jsonrepair.RepairToString(input, jsonrepair.DefaultOptions())
//
// RepairToWriter writes the repaired text to an io.Writer instead of
// returning it, and RepairToStringWithLog additionally returns a Log describing
// every local repair that was applied.
//
// # Streaming
//
// StreamRepairer accepts input in chunks of arbitrary size, including
// chunks that split in the middle of a string, a number, or a comment, and
// emits each completed top-level JSON value as soon as it is known to be
// complete:
//
//	sr := jsonrepair.NewStreamRepairer(jsonrepair.DefaultOptions())
//	for chunk := range chunks {
//	   if out, err := sr.Push(chunk); err != nil {
//	      log.Fatal(err)
//	   } else if out != "" {
//	      fmt.Println(out)
//	   }
//	}
//	out, err := sr.Flush()
//
// A StreamRepairer is not safe for concurrent use; each instance belongs to
// a single goroutine.
package jsonrepair
