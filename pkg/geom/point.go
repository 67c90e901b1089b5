// Package geom provides the points that circuitry clusters and the
// Euclidean metric used to weigh connections between them.
//
// A [Point] always has four axes. Inputs that describe fewer axes leave the
// trailing components at zero, so three-dimensional and four-dimensional
// point sets share one representation and one distance function.
package geom

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Dims is the number of axes carried by every Point.
const Dims = 4

// Point is an immutable coordinate tuple (x, y, z, w).
type Point [Dims]float64

// X returns the first coordinate.
func (p Point) X() float64 { return p[0] }

// Y returns the second coordinate.
func (p Point) Y() float64 { return p[1] }

// Z returns the third coordinate.
func (p Point) Z() float64 { return p[2] }

// W returns the fourth coordinate.
func (p Point) W() float64 { return p[3] }

// String formats the point as comma-separated coordinates. The w axis is
// omitted when it is zero, matching the three-field input form.
func (p Point) String() string {
	n := Dims
	if p[3] == 0 {
		n = 3
	}
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = strconv.FormatFloat(p[i], 'f', -1, 64)
	}
	return strings.Join(parts, ",")
}

// Distance returns the Euclidean distance between a and b over all axes.
// Differences are scaled by the largest one before squaring, so the result
// stays finite whenever it is representable.
func Distance(a, b Point) float64 {
	var d [Dims]float64
	scale := 0.0
	for i := range d {
		d[i] = math.Abs(b[i] - a[i])
		scale = math.Max(scale, d[i])
	}
	if scale == 0 || math.IsInf(scale, 1) {
		return scale
	}

	var sum float64
	for _, v := range d {
		v /= scale
		sum += v * v
	}
	return scale * math.Sqrt(sum)
}

// PointSet is the ordered, read-only input of a run. The index of a point
// is its box number.
type PointSet []Point

// Len returns the number of points.
func (s PointSet) Len() int { return len(s) }

// At returns the point with index i. It panics when i is out of range.
func (s PointSet) At(i int) Point {
	if i < 0 || i >= len(s) {
		panic(fmt.Sprintf("geom: point %d out of range [0,%d)", i, len(s)))
	}
	return s[i]
}

// Pairs returns the number of unordered pairs, n(n-1)/2.
func (s PointSet) Pairs() int {
	n := len(s)
	if n < 2 {
		return 0
	}
	return n * (n - 1) / 2
}
