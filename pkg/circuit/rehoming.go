package circuit

import (
	"fmt"

	"github.com/matzehuels/circuitry/pkg/connection"
	"github.com/matzehuels/circuitry/pkg/errors"
)

// Rehoming tracks circuits with explicit member lists. boxToCircuit is the
// single source of truth for ownership; members is a back-reference kept
// for iteration and sizing, and the two always agree.
type Rehoming struct {
	n            int
	boxToCircuit map[connection.Box]ID
	members      map[ID][]connection.Box
	next         ID
	largest      int
}

// NewRehoming returns an empty tracker over n boxes.
func NewRehoming(n int) *Rehoming {
	return &Rehoming{
		n:            n,
		boxToCircuit: make(map[connection.Box]ID),
		members:      make(map[ID][]connection.Box),
	}
}

// Consume implements Tracker.
func (r *Rehoming) Consume(c connection.Connection) Outcome {
	checkConnection(r.n, c)

	ca, okA := r.boxToCircuit[c.A]
	cb, okB := r.boxToCircuit[c.B]

	switch {
	case !okA && !okB:
		id := r.next
		r.next++
		r.boxToCircuit[c.A] = id
		r.boxToCircuit[c.B] = id
		r.members[id] = []connection.Box{c.A, c.B}
		r.grew(2)
		return Created
	case okA && !okB:
		r.join(c.B, ca)
		return Joined
	case !okA && okB:
		r.join(c.A, cb)
		return Joined
	case ca == cb:
		return Skipped
	default:
		r.merge(ca, cb)
		return Merged
	}
}

func (r *Rehoming) join(b connection.Box, id ID) {
	m := r.mustMembers(id)
	r.boxToCircuit[b] = id
	r.members[id] = append(m, b)
	r.grew(len(m) + 1)
}

// merge absorbs the smaller of a and b into the larger; a survives a tie.
func (r *Rehoming) merge(a, b ID) {
	to, from := a, b
	if len(r.mustMembers(b)) > len(r.mustMembers(a)) {
		to, from = b, a
	}
	moved := r.members[from]
	for _, box := range moved {
		r.boxToCircuit[box] = to
	}
	r.members[to] = append(r.members[to], moved...)
	delete(r.members, from)
	r.grew(len(r.members[to]))
}

func (r *Rehoming) mustMembers(id ID) []connection.Box {
	m, ok := r.members[id]
	if !ok {
		panic(fmt.Sprintf("circuit: touched box owned by circuit %d which has no members", id))
	}
	return m
}

func (r *Rehoming) grew(size int) {
	if size > r.largest {
		r.largest = size
	}
}

// Points implements View.
func (r *Rehoming) Points() int { return r.n }

// Touched implements View.
func (r *Rehoming) Touched() int { return len(r.boxToCircuit) }

// Circuits implements View.
func (r *Rehoming) Circuits() int { return len(r.members) }

// Allocated implements View.
func (r *Rehoming) Allocated() int { return int(r.next) }

// Largest implements View.
func (r *Rehoming) Largest() int { return r.largest }

// CircuitOf implements View.
func (r *Rehoming) CircuitOf(b connection.Box) (ID, bool) {
	id, ok := r.boxToCircuit[b]
	return id, ok
}

// Size implements View.
func (r *Rehoming) Size(id ID) int { return len(r.members[id]) }

// Sizes implements View.
func (r *Rehoming) Sizes() []int {
	sizes := make([]int, 0, len(r.members))
	for _, m := range r.members {
		sizes = append(sizes, len(m))
	}
	return sortSizes(sizes)
}

// Groups implements View.
func (r *Rehoming) Groups() [][]connection.Box {
	groups := make([][]connection.Box, 0, len(r.members))
	for _, m := range r.members {
		groups = append(groups, append([]connection.Box(nil), m...))
	}
	return sortGroups(groups)
}

// Validate checks that the member lists partition exactly the touched
// boxes and that every box's owner agrees between the two maps.
func (r *Rehoming) Validate() error {
	seen := make(map[connection.Box]ID, len(r.boxToCircuit))
	for id, m := range r.members {
		if id >= r.next {
			return errors.New(errors.ErrCodeInternal, "circuit %d was never allocated", id)
		}
		if len(m) == 0 {
			return errors.New(errors.ErrCodeInternal, "circuit %d is empty", id)
		}
		for _, b := range m {
			if prev, dup := seen[b]; dup {
				return errors.New(errors.ErrCodeInternal, "box %d listed in circuits %d and %d", b, prev, id)
			}
			seen[b] = id
			if owner, ok := r.boxToCircuit[b]; !ok || owner != id {
				return errors.New(errors.ErrCodeInternal, "box %d listed in circuit %d but owned by %d", b, id, owner)
			}
		}
	}
	if len(seen) != len(r.boxToCircuit) {
		return errors.New(errors.ErrCodeInternal, "%d touched boxes but %d listed as members", len(r.boxToCircuit), len(seen))
	}
	return nil
}

var _ Tracker = (*Rehoming)(nil)
