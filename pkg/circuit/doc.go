// Package circuit tracks how boxes join into circuits as connections are
// consumed in ascending distance order.
//
// A [Tracker] holds a partition of the boxes touched so far. Each call to
// Consume applies exactly one of four transitions:
//
//   - [Created]: neither endpoint was touched. A new circuit id is allocated
//     and both boxes join it.
//   - [Joined]: one endpoint was touched. The other box joins its circuit.
//   - [Skipped]: both endpoints already share a circuit. Nothing changes.
//   - [Merged]: the endpoints sit in different circuits. The smaller circuit
//     is absorbed into the larger one (on equal sizes the circuit of the A
//     endpoint survives) and the absorbed id disappears.
//
// Circuit ids are allocated monotonically from zero and never reused.
// Circuit sizes never shrink.
//
// # Strategies
//
// [Rehoming] keeps an explicit member list per circuit and rewrites the
// owner of every absorbed box on a merge. A merge therefore costs time
// proportional to the absorbed circuit's size; this is the reference
// behaviour and is fine for the dense inputs the pipeline accepts.
//
// [UnionFind] is a disjoint-set forest with union by size and path halving,
// giving amortised near-constant merges. It applies the same survivor rule,
// so for any connection sequence both strategies report the same outcomes,
// the same sizes and even the same circuit ids.
//
// # Ordering
//
// Consume must be called in queue order. Out-of-order calls are not
// detected and silently produce a different partition.
//
// # Invariants
//
// A box referenced by a connection must lie in [0, Points()). A touched box
// missing from its circuit's member list is a programming error; trackers
// panic on it rather than continue with a corrupt partition. Validate
// re-checks the whole partition and is meant for tests.
package circuit
