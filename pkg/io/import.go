package io

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/circuitry/pkg/errors"
	"github.com/matzehuels/circuitry/pkg/geom"
)

// StdinPath selects standard input in ImportPoints.
const StdinPath = "-"

// maxLineBytes caps a single input line.
const maxLineBytes = 1 << 20

// ReadPoints parses one point per line from r.
//
// Lines must hold 3 or 4 comma-separated finite numbers; blank lines are
// skipped. The first malformed line aborts the read and is reported as an
// ErrCodeInvalidInput error wrapping an *errors.LineError. ReadPoints does
// not close r.
func ReadPoints(r io.Reader) (geom.PointSet, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var points geom.PointSet
	for line := 1; sc.Scan(); line++ {
		text := sc.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		p, reason := parsePoint(text)
		if reason != "" {
			cause := &errors.LineError{Line: line, Text: text, Reason: reason}
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, cause, "invalid point")
		}
		points = append(points, p)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read points")
	}
	return points, nil
}

// parsePoint returns the point on a line, or a non-empty reason why the
// line is malformed.
func parsePoint(text string) (geom.Point, string) {
	var p geom.Point
	fields := strings.Split(text, ",")
	switch {
	case len(fields) < 3:
		return p, fmt.Sprintf("too few coordinates (%d, want 3 or 4)", len(fields))
	case len(fields) > geom.Dims:
		return p, fmt.Sprintf("too many coordinates (%d, want 3 or 4)", len(fields))
	}
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return p, fmt.Sprintf("non-numeric coordinate %d", i+1)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return p, fmt.Sprintf("non-finite coordinate %d", i+1)
		}
		p[i] = v
	}
	return p, ""
}

// ImportPoints reads the point file at path. A path of "-" reads stdin.
//
// ImportPoints returns the same validation errors as [ReadPoints]; failures
// to open the file are returned wrapped with the path.
func ImportPoints(path string) (geom.PointSet, error) {
	if path == StdinPath || path == "" {
		return ReadPoints(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadPoints(f)
}
