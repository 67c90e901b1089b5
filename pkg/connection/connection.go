package connection

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/circuitry/pkg/errors"
	"github.com/matzehuels/circuitry/pkg/geom"
)

// DefaultMaxConnections bounds the pair list at roughly 800 MB
// (16 bytes per connection), i.e. about 10,000 points.
const DefaultMaxConnections = 50_000_000

// Box identifies a point by its index in the PointSet.
type Box uint32

// Connection is an unordered pair of distinct boxes with A < B.
type Connection struct {
	A, B     Box
	Distance float64
}

// String formats the connection as "a-b (distance)".
func (c Connection) String() string {
	return fmt.Sprintf("%d-%d (%g)", c.A, c.B, c.Distance)
}

// Less orders connections by distance, then by A, then by B.
func (c Connection) Less(o Connection) bool {
	if c.Distance != o.Distance {
		return c.Distance < o.Distance
	}
	if c.A != o.A {
		return c.A < o.A
	}
	return c.B < o.B
}

// BuildOptions configures Build.
type BuildOptions struct {
	// Workers is the number of goroutines computing rows. Zero means
	// runtime.GOMAXPROCS(0).
	Workers int

	// MaxConnections is the largest pair list Build will allocate. Zero
	// means DefaultMaxConnections; a negative value disables the check.
	MaxConnections int
}

func (o BuildOptions) workers(rows int) int {
	w := o.Workers
	if w <= 0 {
		w = runtime.GOMAXPROCS(0)
	}
	if w > rows {
		w = rows
	}
	if w < 1 {
		w = 1
	}
	return w
}

func (o BuildOptions) limit() int {
	switch {
	case o.MaxConnections == 0:
		return DefaultMaxConnections
	case o.MaxConnections < 0:
		return 0
	default:
		return o.MaxConnections
	}
}

// Build returns one Connection per unordered pair of points. The returned
// slice is ordered by (A, B); use NewQueue to order it by distance.
//
// Build fails with ErrCodeResourceLimit when the pair count exceeds the
// configured ceiling, and with the context's error when ctx is cancelled
// while rows are being computed.
func Build(ctx context.Context, points geom.PointSet, opts BuildOptions) ([]Connection, error) {
	n := points.Len()
	if err := errors.ValidatePoints(n, opts.limit()); err != nil {
		return nil, err
	}
	if uint64(n) > uint64(^Box(0)) {
		return nil, errors.New(errors.ErrCodeResourceLimit, "%d points exceed the box id range", n)
	}
	if n < 2 {
		return []Connection{}, nil
	}

	out := make([]Connection, points.Pairs())
	rows := n - 1
	workers := opts.workers(rows)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			// Strided rows balance the shrinking triangle across workers.
			for i := w; i < rows; i += workers {
				if err := gctx.Err(); err != nil {
					return err
				}
				fillRow(out[rowOffset(n, i):], points, i)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// rowOffset returns the index of pair (i, i+1) in the row-major upper
// triangle of an n×n matrix.
func rowOffset(n, i int) int {
	return i*n - i*(i+1)/2
}

func fillRow(dst []Connection, points geom.PointSet, i int) {
	a := points[i]
	for j := i + 1; j < len(points); j++ {
		dst[j-i-1] = Connection{
			A:        Box(i),
			B:        Box(j),
			Distance: geom.Distance(a, points[j]),
		}
	}
}
