// Package io reads point sets and writes spanning forests.
//
// # Point Format
//
// Input is plain text with one point per line, written as three or four
// comma-separated numbers:
//
//	162,817,812
//	57,618,57
//	906,360,560,12
//
// Whitespace around a field is ignored, as are blank lines. A missing
// fourth field is read as zero. Any other field count, a field that is not
// a number, or a non-finite value (NaN, Inf) aborts the read with an
// INVALID_INPUT error whose cause is an [errors.LineError] naming the
// 1-based line number and the offending text. Nothing is returned for a
// partially valid input.
//
// Use [ImportPoints] to read from a file path (or "-" for stdin), or
// [ReadPoints] to read from any io.Reader:
//
//	points, err := io.ImportPoints("input.txt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Forest Export
//
// [WriteForestJSON] encodes the points and the linking connections of a run
// (the spanning forest) as JSON:
//
//	{
//	  "points": [[162, 817, 812, 0], ...],
//	  "edges": [{"a": 0, "b": 19, "distance": 316.9, "outcome": "created"}, ...]
//	}
//
// [errors.LineError]: github.com/matzehuels/circuitry/pkg/errors.LineError
package io
