// Package observer provides the read-only hooks that watch a circuit
// tracker after every consumed connection.
//
// Two observers answer the questions of a run:
//
//   - [Checkpoint] snapshots the three largest circuits after exactly K
//     connections and keeps the product of their sizes.
//   - [Unification] detects the first connection after which one circuit
//     holds every box, and asks the run to stop there.
//
// Observers never mutate the tracker. They are invoked in registration
// order, so a run that registers the checkpoint first still takes its
// snapshot when the checkpoint coincides with the unifying connection.
package observer

import (
	"github.com/matzehuels/circuitry/pkg/circuit"
	"github.com/matzehuels/circuitry/pkg/connection"
)

// Step describes one consumed connection.
type Step struct {
	// Index counts consumed connections from 1, skipped ones included.
	Index      int
	Connection connection.Connection
	Outcome    circuit.Outcome
}

// Observer is called once after each Consume.
type Observer interface {
	// Observe inspects the tracker after step and reports whether the run
	// should stop.
	Observe(step Step, v circuit.View) (stop bool)
}

// Func adapts a function to the Observer interface.
type Func func(step Step, v circuit.View) bool

// Observe implements Observer.
func (f Func) Observe(step Step, v circuit.View) bool { return f(step, v) }

// Notify runs every observer for step and reports whether any asked to
// stop. All observers see the step even when an earlier one stops.
func Notify(observers []Observer, step Step, v circuit.View) bool {
	stop := false
	for _, o := range observers {
		if o.Observe(step, v) {
			stop = true
		}
	}
	return stop
}
