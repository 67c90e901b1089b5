// Package pipeline runs the complete clustering pipeline for circuitry.
//
// This package implements the load → build → cluster pipeline that the CLI
// commands share. By centralizing this logic, every command reports the
// same numbers for the same input and options.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Parse the point set (see pkg/io)
//  2. Build: Compute every pairwise distance in parallel and heapify them
//  3. Cluster: Consume connections in ascending distance order, feeding a
//     circuit tracker and the checkpoint and unification observers
//
// The cluster stage is strictly sequential; each merge depends on all the
// merges before it. It checks the context once per consumed connection, so
// a cancelled context aborts a long run promptly.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	points, err := runner.Load(ctx, "input.txt")
//	if err != nil {
//	    return err
//	}
//	result, err := runner.Execute(ctx, points, pipeline.Options{Checkpoint: 1000})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.Checkpoint.Product)
//	x, err := result.UnifyingProduct()
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/circuitry/pkg/circuit"
	"github.com/matzehuels/circuitry/pkg/connection"
	"github.com/matzehuels/circuitry/pkg/errors"
	"github.com/matzehuels/circuitry/pkg/geom"
	pointio "github.com/matzehuels/circuitry/pkg/io"
	"github.com/matzehuels/circuitry/pkg/observer"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultCheckpoint is the number of connections after which the three
	// largest circuits are measured.
	DefaultCheckpoint = 1000

	// DefaultStrategy is the circuit tracking strategy.
	DefaultStrategy = circuit.StrategyRehome

	// DefaultMaxConnections bounds the distance list held in memory.
	DefaultMaxConnections = connection.DefaultMaxConnections
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a clustering run.
type Options struct {
	// Checkpoint is K, the connection count at which the top-three snapshot
	// is taken. Zero selects DefaultCheckpoint.
	Checkpoint int `json:"checkpoint,omitempty"`

	// Strategy selects the circuit tracker: "rehome" or "unionfind".
	Strategy string `json:"strategy,omitempty"`

	// Workers bounds distance-building goroutines. Zero uses GOMAXPROCS.
	Workers int `json:"workers,omitempty"`

	// MaxConnections is the largest distance list accepted. Zero selects
	// DefaultMaxConnections; negative disables the ceiling.
	MaxConnections int `json:"max_connections,omitempty"`

	// Trace records every consumed step in Result.Trace.
	Trace bool `json:"trace,omitempty"`

	// CheckInvariants validates the partition after every step and fails
	// the run with INTERNAL_ERROR on the first violation.
	CheckInvariants bool `json:"check_invariants,omitempty"`

	// Runtime options (not serialized)
	Logger    *log.Logger         `json:"-"`
	Observers []observer.Observer `json:"-"` // run after the built-in observers

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks option values and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := errors.ValidateNonNegative(errors.ErrCodeInvalidConfig, "checkpoint", o.Checkpoint); err != nil {
		return err
	}
	if err := errors.ValidateNonNegative(errors.ErrCodeInvalidConfig, "workers", o.Workers); err != nil {
		return err
	}
	o.SetDefaults()
	if err := errors.ValidateChoice(errors.ErrCodeInvalidConfig, "strategy", o.Strategy, circuit.Strategies); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetDefaults fills zero-valued fields with their defaults.
func (o *Options) SetDefaults() {
	if o.Checkpoint == 0 {
		o.Checkpoint = DefaultCheckpoint
	}
	if o.Strategy == "" {
		o.Strategy = DefaultStrategy
	}
	if o.MaxConnections == 0 {
		o.MaxConnections = DefaultMaxConnections
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

func (o *Options) buildOptions() connection.BuildOptions {
	return connection.BuildOptions{Workers: o.Workers, MaxConnections: o.MaxConnections}
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Points is the clustered point set.
	Points geom.PointSet

	// Checkpoint is the top-three snapshot.
	Checkpoint CheckpointReport

	// Unifying is the connection that first joined every box into one
	// circuit; nil when no unification happened.
	Unifying *connection.Connection

	// UnifyingStep is the 1-based index of Unifying, 0 when nil.
	UnifyingStep int

	// Forest holds every connection that changed the partition, in
	// consumption order. After unification it is a minimum spanning tree.
	Forest []pointio.ForestEdge

	// Trace holds every consumed step when Options.Trace is set.
	Trace []TraceStep

	// Final describes the partition when the run stopped.
	Final Snapshot

	// Stats contains timing and size information.
	Stats Stats
}

// CheckpointReport is the outcome of the checkpoint observer.
type CheckpointReport struct {
	K         int
	Triggered bool
	Sizes     [observer.TopN]int
	Circuits  int
	Product   uint64
}

// Snapshot summarises a partition.
type Snapshot struct {
	Circuits int
	Touched  int
	Largest  int
	Sizes    []int // largest first
}

// TraceStep is one consumed connection with the partition it left behind.
type TraceStep struct {
	observer.Step
	Circuits int
	Largest  int
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Points      int
	Connections int
	Consumed    int
	Merges      int
	Skips       int
	BuildTime   time.Duration
	ClusterTime time.Duration
}

// Unified reports whether a unifying connection was found.
func (r *Result) Unified() bool { return r.Unifying != nil }

// UnifyingProduct returns the product of the X coordinates of the two
// boxes of the unifying connection. It fails with ErrCodeNoUnification when
// the run never joined every box, which is always the case for fewer than
// two points.
func (r *Result) UnifyingProduct() (float64, error) {
	if r.Unifying == nil {
		return 0, errors.New(errors.ErrCodeNoUnification,
			"no unification possible: %d points, %d circuits left", len(r.Points), r.Final.Circuits)
	}
	return r.Points.At(int(r.Unifying.A)).X() * r.Points.At(int(r.Unifying.B)).X(), nil
}
