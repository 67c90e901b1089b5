// Package pkg provides the core libraries for circuitry.
//
// # Overview
//
// Circuitry connects junction boxes in 3D space in order of increasing
// distance, tracking which boxes share a circuit. Two questions are
// answered from one run: the product of the three largest circuit sizes
// after the first K connections, and the product of the X coordinates of
// the two boxes whose connection first joins every box into one circuit.
//
// # Architecture
//
// The data flow through circuitry:
//
//	coordinate lines
//	         ↓
//	    [io] package (parse points)
//	         ↓
//	    [connection] package (pairwise distances, min-heap)
//	         ↓
//	    [circuit] package (partition tracking)
//	         ↓
//	    [observer] package (checkpoint, unification)
//	         ↓
//	    report / forest / replay
//
// [pipeline] runs these stages behind one Runner.
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil)
//	points, _ := runner.Load(ctx, "examples/sample.txt")
//	result, _ := runner.Execute(ctx, points, pipeline.Options{Checkpoint: 10})
//	fmt.Println(result.Checkpoint.Product) // 40
//	x, _ := result.UnifyingProduct()
//	fmt.Println(x) // 25272
//
// # Main Packages
//
//   - [geom]: points and Euclidean distance
//   - [connection]: connection building and the distance queue
//   - [circuit]: rehoming and union-find trackers
//   - [observer]: checkpoint and unification observers
//   - [pipeline]: orchestration
//   - [io]: point parsing and forest JSON export
//   - [render/forest]: Graphviz rendering of the spanning forest
//   - [config]: TOML configuration
//   - [errors]: structured error codes
//   - [observability]: instrumentation hooks
package pkg
