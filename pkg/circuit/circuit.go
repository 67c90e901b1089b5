package circuit

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/matzehuels/circuitry/pkg/connection"
	"github.com/matzehuels/circuitry/pkg/errors"
)

// ID identifies a circuit.
type ID uint32

// Outcome is the transition applied by one Consume call.
type Outcome uint8

const (
	Skipped Outcome = iota
	Created
	Joined
	Merged
)

var outcomeNames = [...]string{
	Skipped: "skipped",
	Created: "created",
	Joined:  "joined",
	Merged:  "merged",
}

// String returns the lowercase outcome name.
func (o Outcome) String() string {
	if int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return fmt.Sprintf("outcome(%d)", o)
}

// Linked reports whether the connection became part of the spanning forest.
func (o Outcome) Linked() bool { return o != Skipped }

// View is the read-only side of a Tracker.
type View interface {
	// Points returns the total number of boxes, N.
	Points() int

	// Touched returns how many boxes have been reached by a consumed connection.
	Touched() int

	// Circuits returns the number of non-empty circuits.
	Circuits() int

	// Allocated returns how many circuit ids have ever been handed out.
	Allocated() int

	// CircuitOf returns the circuit owning b; false if b is untouched.
	CircuitOf(b connection.Box) (ID, bool)

	// Size returns the member count of id, or 0 if id is not a live circuit.
	Size(id ID) int

	// Sizes returns the size of every live circuit, largest first.
	Sizes() []int

	// Largest returns the size of the largest circuit, 0 when none exist.
	Largest() int

	// Groups returns the members of every live circuit. Each group is sorted
	// and groups are ordered by their first member, so two trackers holding
	// the same partition return equal slices regardless of ids.
	Groups() [][]connection.Box
}

// Tracker maintains the partition of boxes into circuits.
type Tracker interface {
	View

	// Consume applies c to the partition and reports the transition.
	Consume(c connection.Connection) Outcome

	// Validate checks the partition's internal consistency.
	Validate() error
}

func checkConnection(n int, c connection.Connection) {
	if c.A == c.B {
		panic(fmt.Sprintf("circuit: connection %v links a box to itself", c))
	}
	if int(c.A) >= n || int(c.B) >= n {
		panic(fmt.Sprintf("circuit: connection %v outside [0,%d)", c, n))
	}
}

func sortGroups(groups [][]connection.Box) [][]connection.Box {
	for _, g := range groups {
		slices.Sort(g)
	}
	slices.SortFunc(groups, func(a, b []connection.Box) int {
		return cmp.Compare(a[0], b[0])
	})
	return groups
}

func sortSizes(sizes []int) []int {
	slices.SortFunc(sizes, func(a, b int) int { return cmp.Compare(b, a) })
	return sizes
}

// Strategy names accepted by New.
const (
	StrategyRehome    = "rehome"
	StrategyUnionFind = "unionfind"
)

// Strategies lists the accepted strategy names, default first.
var Strategies = []string{StrategyRehome, StrategyUnionFind}

// New returns an empty tracker over n boxes using the named strategy.
// An empty name selects StrategyRehome.
func New(strategy string, n int) (Tracker, error) {
	switch strategy {
	case "", StrategyRehome:
		return NewRehoming(n), nil
	case StrategyUnionFind:
		return NewUnionFind(n), nil
	default:
		return nil, errors.ValidateChoice(errors.ErrCodeInvalidConfig, "strategy", strategy, Strategies)
	}
}
