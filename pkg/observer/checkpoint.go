package observer

import "github.com/matzehuels/circuitry/pkg/circuit"

// TopN is the number of circuits the checkpoint multiplies.
const TopN = 3

// Checkpoint takes a single snapshot of the largest circuits when the
// K-th connection has been consumed. Later steps never refresh it.
type Checkpoint struct {
	k         int
	triggered bool
	sizes     [TopN]int
	circuits  int
}

// NewCheckpoint returns a checkpoint that fires at step k. A k of zero or
// less never fires.
func NewCheckpoint(k int) *Checkpoint {
	return &Checkpoint{k: k}
}

// Observe implements Observer. It never stops the run.
func (c *Checkpoint) Observe(step Step, v circuit.View) bool {
	if c.triggered || step.Index != c.k {
		return false
	}
	c.triggered = true
	c.circuits = v.Circuits()
	c.sizes = topSizes(v.Sizes())
	return false
}

// K returns the configured threshold.
func (c *Checkpoint) K() int { return c.k }

// Triggered reports whether the snapshot has been taken.
func (c *Checkpoint) Triggered() bool { return c.triggered }

// Sizes returns the snapshot's sizes, largest first. Slots without a
// circuit hold zero.
func (c *Checkpoint) Sizes() [TopN]int { return c.sizes }

// Circuits returns how many circuits existed at the snapshot.
func (c *Checkpoint) Circuits() int { return c.circuits }

// Product returns the product of the snapshot's sizes. It is zero when the
// checkpoint never fired or fewer than three circuits existed.
func (c *Checkpoint) Product() uint64 {
	p := uint64(1)
	for _, s := range c.sizes {
		p *= uint64(s)
	}
	return p
}

// topSizes keeps the first TopN entries of a descending size list.
func topSizes(sorted []int) [TopN]int {
	var top [TopN]int
	copy(top[:], sorted)
	return top
}
