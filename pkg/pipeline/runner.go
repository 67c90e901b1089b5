package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/circuitry/pkg/circuit"
	"github.com/matzehuels/circuitry/pkg/connection"
	"github.com/matzehuels/circuitry/pkg/errors"
	"github.com/matzehuels/circuitry/pkg/geom"
	pointio "github.com/matzehuels/circuitry/pkg/io"
	"github.com/matzehuels/circuitry/pkg/observability"
	"github.com/matzehuels/circuitry/pkg/observer"
)

// Runner encapsulates pipeline execution.
//
// The Runner is stateless except for the logger - it doesn't store run
// results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Load reads the point set at source ("-" for stdin).
func (r *Runner) Load(ctx context.Context, source string) (geom.PointSet, error) {
	hooks := observability.Input()
	hooks.OnParseStart(ctx, source)
	start := time.Now()

	points, err := pointio.ImportPoints(source)
	hooks.OnParseComplete(ctx, source, len(points), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	r.Logger.Debug("loaded points", "source", source, "points", len(points), "duration", time.Since(start))
	return points, nil
}

// Execute runs the build and cluster stages over points.
func (r *Runner) Execute(ctx context.Context, points geom.PointSet, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	buildStart := time.Now()
	conns, err := r.Build(ctx, points, opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	buildTime := time.Since(buildStart)

	result, err := r.Cluster(ctx, points, conns, opts)
	if err != nil {
		return nil, fmt.Errorf("cluster: %w", err)
	}
	result.Stats.BuildTime = buildTime
	return result, nil
}

// Build computes every pairwise connection of points.
func (r *Runner) Build(ctx context.Context, points geom.PointSet, opts Options) ([]connection.Connection, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, len(points))
	start := time.Now()

	conns, err := connection.Build(ctx, points, opts.buildOptions())
	hooks.OnBuildComplete(ctx, len(conns), time.Since(start), err)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(errors.ErrCodeCanceled, err, "distance build aborted")
		}
		return nil, err
	}

	opts.Logger.Debug("computed distances",
		"points", len(points),
		"connections", len(conns),
		"duration", time.Since(start))
	return conns, nil
}

// Cluster consumes conns in ascending distance order until every box
// shares one circuit or the connections run out. It takes ownership of
// conns.
func (r *Runner) Cluster(ctx context.Context, points geom.PointSet, conns []connection.Connection, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	tracker, err := circuit.New(opts.Strategy, len(points))
	if err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnRunStart(ctx, opts.Strategy, len(conns))
	start := time.Now()

	result := &Result{Points: points}
	result.Stats.Points = len(points)
	result.Stats.Connections = len(conns)

	checkpoint := observer.NewCheckpoint(opts.Checkpoint)
	unification := observer.NewUnification()
	observers := append([]observer.Observer{checkpoint, unification}, opts.Observers...)

	queue := connection.NewQueue(conns)
	steps := 0
	for !queue.Empty() {
		if err := ctx.Err(); err != nil {
			err = errors.Wrap(errors.ErrCodeCanceled, err, "run aborted after %d connections", steps)
			hooks.OnRunComplete(ctx, steps, time.Since(start), err)
			return nil, err
		}

		c, _ := queue.PopMin()
		steps++
		step := observer.Step{Index: steps, Connection: c, Outcome: tracker.Consume(c)}
		r.record(result, step, tracker, opts)

		if opts.CheckInvariants {
			if err := tracker.Validate(); err != nil {
				err = errors.Wrap(errors.ErrCodeInternal, err, "partition broken at step %d (%v)", steps, c)
				hooks.OnRunComplete(ctx, steps, time.Since(start), err)
				return nil, err
			}
		}

		fired := checkpoint.Triggered()
		stop := observer.Notify(observers, step, tracker)
		if !fired && checkpoint.Triggered() {
			hooks.OnCheckpoint(ctx, checkpoint.K(), checkpoint.Product())
			opts.Logger.Debug("checkpoint reached", "k", checkpoint.K(), "sizes", checkpoint.Sizes(), "product", checkpoint.Product())
		}
		if stop {
			break
		}
	}

	result.Checkpoint = CheckpointReport{
		K:         checkpoint.K(),
		Triggered: checkpoint.Triggered(),
		Sizes:     checkpoint.Sizes(),
		Circuits:  checkpoint.Circuits(),
		Product:   checkpoint.Product(),
	}
	if c, ok := unification.Connection(); ok {
		result.Unifying = &c
		result.UnifyingStep = unification.Step()
		hooks.OnUnified(ctx, unification.Step(), c.Distance)
	}
	result.Final = Snapshot{
		Circuits: tracker.Circuits(),
		Touched:  tracker.Touched(),
		Largest:  tracker.Largest(),
		Sizes:    tracker.Sizes(),
	}
	result.Stats.Consumed = steps
	result.Stats.ClusterTime = time.Since(start)
	hooks.OnRunComplete(ctx, steps, result.Stats.ClusterTime, nil)

	opts.Logger.Debug("clustered points",
		"strategy", opts.Strategy,
		"consumed", steps,
		"merges", result.Stats.Merges,
		"unified", result.Unified(),
		"duration", result.Stats.ClusterTime)
	return result, nil
}

// record updates forest, trace and counters for one step.
func (r *Runner) record(result *Result, step observer.Step, v circuit.View, opts Options) {
	switch step.Outcome {
	case circuit.Skipped:
		result.Stats.Skips++
	case circuit.Merged:
		result.Stats.Merges++
	}
	if step.Outcome.Linked() {
		result.Forest = append(result.Forest, pointio.ForestEdge{Connection: step.Connection, Outcome: step.Outcome})
	}
	if opts.Trace {
		result.Trace = append(result.Trace, TraceStep{Step: step, Circuits: v.Circuits(), Largest: v.Largest()})
	}
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
