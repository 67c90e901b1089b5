package circuit

import (
	"github.com/matzehuels/circuitry/pkg/connection"
	"github.com/matzehuels/circuitry/pkg/errors"
)

const untouched = -1

// UnionFind tracks circuits as a disjoint-set forest with union by size and
// path halving. Each root carries the circuit id of its set.
//
// Read methods walk to the root without compressing, so a View never
// mutates the forest.
type UnionFind struct {
	parent   []int32 // untouched, or index of the parent box
	size     []int   // valid at roots only
	id       []ID    // valid at roots only
	next     ID
	touched  int
	circuits int
	largest  int
}

// NewUnionFind returns an empty tracker over n boxes.
func NewUnionFind(n int) *UnionFind {
	uf := &UnionFind{
		parent: make([]int32, n),
		size:   make([]int, n),
		id:     make([]ID, n),
	}
	for i := range uf.parent {
		uf.parent[i] = untouched
	}
	return uf
}

// find returns the root of x, halving the path on the way.
func (uf *UnionFind) find(x int32) int32 {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

func (uf *UnionFind) root(x int32) int32 {
	for uf.parent[x] != x {
		x = uf.parent[x]
	}
	return x
}

// Consume implements Tracker.
func (uf *UnionFind) Consume(c connection.Connection) Outcome {
	checkConnection(len(uf.parent), c)

	a, b := int32(c.A), int32(c.B)
	okA, okB := uf.parent[a] != untouched, uf.parent[b] != untouched

	switch {
	case !okA && !okB:
		uf.parent[a] = a
		uf.parent[b] = a
		uf.size[a] = 2
		uf.id[a] = uf.next
		uf.next++
		uf.touched += 2
		uf.circuits++
		uf.grew(2)
		return Created
	case okA && !okB:
		uf.attach(b, uf.find(a))
		return Joined
	case !okA && okB:
		uf.attach(a, uf.find(b))
		return Joined
	}

	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return Skipped
	}
	to, from := ra, rb
	if uf.size[rb] > uf.size[ra] {
		to, from = rb, ra
	}
	uf.parent[from] = to
	uf.size[to] += uf.size[from]
	uf.circuits--
	uf.grew(uf.size[to])
	return Merged
}

func (uf *UnionFind) attach(x, root int32) {
	uf.parent[x] = root
	uf.size[root]++
	uf.touched++
	uf.grew(uf.size[root])
}

func (uf *UnionFind) grew(size int) {
	if size > uf.largest {
		uf.largest = size
	}
}

// Points implements View.
func (uf *UnionFind) Points() int { return len(uf.parent) }

// Touched implements View.
func (uf *UnionFind) Touched() int { return uf.touched }

// Circuits implements View.
func (uf *UnionFind) Circuits() int { return uf.circuits }

// Allocated implements View.
func (uf *UnionFind) Allocated() int { return int(uf.next) }

// Largest implements View.
func (uf *UnionFind) Largest() int { return uf.largest }

// CircuitOf implements View.
func (uf *UnionFind) CircuitOf(b connection.Box) (ID, bool) {
	if int(b) >= len(uf.parent) || uf.parent[b] == untouched {
		return 0, false
	}
	return uf.id[uf.root(int32(b))], true
}

// Size implements View.
func (uf *UnionFind) Size(id ID) int {
	for x, p := range uf.parent {
		if p == int32(x) && uf.id[x] == id {
			return uf.size[x]
		}
	}
	return 0
}

// Sizes implements View.
func (uf *UnionFind) Sizes() []int {
	sizes := make([]int, 0, uf.circuits)
	for x, p := range uf.parent {
		if p == int32(x) {
			sizes = append(sizes, uf.size[x])
		}
	}
	return sortSizes(sizes)
}

// Groups implements View.
func (uf *UnionFind) Groups() [][]connection.Box {
	byRoot := make(map[int32][]connection.Box, uf.circuits)
	for x, p := range uf.parent {
		if p == untouched {
			continue
		}
		r := uf.root(int32(x))
		byRoot[r] = append(byRoot[r], connection.Box(x))
	}
	groups := make([][]connection.Box, 0, len(byRoot))
	for _, g := range byRoot {
		groups = append(groups, g)
	}
	return sortGroups(groups)
}

// Validate checks that root sizes match the number of boxes under each
// root and that the cached counters agree with the forest.
func (uf *UnionFind) Validate() error {
	counts := make(map[int32]int)
	touched := 0
	for x, p := range uf.parent {
		if p == untouched {
			continue
		}
		if p < 0 || int(p) >= len(uf.parent) || uf.parent[p] == untouched {
			return errors.New(errors.ErrCodeInternal, "box %d has invalid parent %d", x, p)
		}
		touched++
		counts[uf.root(int32(x))]++
	}
	if touched != uf.touched {
		return errors.New(errors.ErrCodeInternal, "touched counter %d, forest holds %d", uf.touched, touched)
	}
	if len(counts) != uf.circuits {
		return errors.New(errors.ErrCodeInternal, "circuit counter %d, forest holds %d roots", uf.circuits, len(counts))
	}
	ids := make(map[ID]bool, len(counts))
	for r, n := range counts {
		if uf.size[r] != n {
			return errors.New(errors.ErrCodeInternal, "root %d records size %d, holds %d boxes", r, uf.size[r], n)
		}
		if ids[uf.id[r]] {
			return errors.New(errors.ErrCodeInternal, "circuit id %d owned by two roots", uf.id[r])
		}
		if uf.id[r] >= uf.next {
			return errors.New(errors.ErrCodeInternal, "circuit %d was never allocated", uf.id[r])
		}
		ids[uf.id[r]] = true
	}
	return nil
}

var _ Tracker = (*UnionFind)(nil)
