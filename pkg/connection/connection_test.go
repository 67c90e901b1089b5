package connection

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/circuitry/pkg/errors"
	"github.com/matzehuels/circuitry/pkg/geom"
)

// randomPoints returns n points with integer coordinates in [0, 1000),
// generated from a fixed seed.
func randomPoints(n int, seed int64) geom.PointSet {
	r := rand.New(rand.NewSource(seed))
	ps := make(geom.PointSet, n)
	for i := range ps {
		ps[i] = geom.Point{float64(r.Intn(1000)), float64(r.Intn(1000)), float64(r.Intn(1000))}
	}
	return ps
}

func TestBuildEmitsEveryPairOnce(t *testing.T) {
	for _, n := range []int{2, 3, 7, 40} {
		points := randomPoints(n, int64(n))
		conns, err := Build(context.Background(), points, BuildOptions{Workers: 3})
		require.NoError(t, err)
		require.Len(t, conns, n*(n-1)/2)

		seen := make(map[[2]Box]bool, len(conns))
		for _, c := range conns {
			assert.Less(t, c.A, c.B, "pairs must satisfy A < B")
			key := [2]Box{c.A, c.B}
			assert.False(t, seen[key], "pair %v emitted twice", key)
			seen[key] = true
			assert.InDelta(t, geom.Distance(points[c.A], points[c.B]), c.Distance, 1e-12)
		}
	}
}

func TestBuildParallelMatchesSequential(t *testing.T) {
	points := randomPoints(120, 7)
	seq, err := Build(context.Background(), points, BuildOptions{Workers: 1})
	require.NoError(t, err)
	par, err := Build(context.Background(), points, BuildOptions{Workers: 8})
	require.NoError(t, err)
	assert.Equal(t, seq, par)
}

func TestBuildDegenerate(t *testing.T) {
	for _, points := range []geom.PointSet{nil, {{1, 2, 3}}} {
		conns, err := Build(context.Background(), points, BuildOptions{})
		require.NoError(t, err)
		assert.Empty(t, conns)
	}
}

func TestBuildResourceLimit(t *testing.T) {
	points := randomPoints(6, 1)

	_, err := Build(context.Background(), points, BuildOptions{MaxConnections: 14})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeResourceLimit))

	conns, err := Build(context.Background(), points, BuildOptions{MaxConnections: 15})
	require.NoError(t, err)
	assert.Len(t, conns, 15)

	conns, err = Build(context.Background(), points, BuildOptions{MaxConnections: -1})
	require.NoError(t, err)
	assert.Len(t, conns, 15)
}

func TestBuildCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Build(ctx, randomPoints(50, 3), BuildOptions{Workers: 2})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRowOffset(t *testing.T) {
	// n = 4: row 0 has 3 pairs, row 1 has 2, row 2 has 1.
	assert.Equal(t, 0, rowOffset(4, 0))
	assert.Equal(t, 3, rowOffset(4, 1))
	assert.Equal(t, 5, rowOffset(4, 2))
}

func TestConnectionLess(t *testing.T) {
	a := Connection{A: 0, B: 1, Distance: 1}
	b := Connection{A: 0, B: 2, Distance: 1}
	c := Connection{A: 0, B: 1, Distance: 2}
	assert.True(t, a.Less(b), "equal distance breaks on B")
	assert.True(t, b.Less(c), "distance dominates box order")
	assert.False(t, a.Less(a))
}

func TestConnectionString(t *testing.T) {
	assert.Equal(t, "3-9 (1.5)", Connection{A: 3, B: 9, Distance: 1.5}.String())
	assert.Equal(t, "0-1 (+Inf)", Connection{A: 0, B: 1, Distance: math.Inf(1)}.String())
}
