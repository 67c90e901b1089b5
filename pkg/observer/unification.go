package observer

import (
	"github.com/matzehuels/circuitry/pkg/circuit"
	"github.com/matzehuels/circuitry/pkg/connection"
)

// Unification records the first connection after which a single circuit
// holds every box. That connection is the longest edge of the minimum
// spanning tree.
type Unification struct {
	done bool
	step Step
}

// NewUnification returns a detector that has not fired.
func NewUnification() *Unification {
	return &Unification{}
}

// Observe implements Observer. It asks the run to stop the first time the
// largest circuit covers all boxes. With fewer than two boxes no connection
// exists and it never fires.
func (u *Unification) Observe(step Step, v circuit.View) bool {
	if u.done {
		return true
	}
	if v.Points() < 2 || v.Largest() != v.Points() {
		return false
	}
	u.done = true
	u.step = step
	return true
}

// Unified reports whether full unification was observed.
func (u *Unification) Unified() bool { return u.done }

// Connection returns the unifying connection.
func (u *Unification) Connection() (connection.Connection, bool) {
	return u.step.Connection, u.done
}

// Step returns the index of the unifying step, 0 if it never happened.
func (u *Unification) Step() int {
	if !u.done {
		return 0
	}
	return u.step.Index
}
