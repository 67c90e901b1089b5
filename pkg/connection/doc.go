// Package connection builds the complete set of weighted point pairs and
// orders them for consumption.
//
// # Building
//
// [Build] enumerates every unordered pair (i, j), i < j, of a
// [geom.PointSet] and weighs it with [geom.Distance]. For N points this
// yields exactly N(N-1)/2 connections, so time and memory are both Θ(N²).
// That cost is a hard ceiling rather than a detail: [BuildOptions] carries a
// MaxConnections limit and Build refuses inputs above it with a
// RESOURCE_LIMIT error instead of allocating.
//
// Rows of the pair triangle are distributed across worker goroutines. Each
// row owns a fixed region of the output slice, so workers never share
// mutable state and the result is identical to a sequential build.
//
// # Ordering
//
// [Queue] is a binary min-heap keyed on distance. Equal distances are
// broken by box numbers, which makes every drain of the same input produce
// the same sequence:
//
//	q := connection.NewQueue(conns)
//	for !q.Empty() {
//	    c, _ := q.PopMin()
//	    // c.Distance is non-decreasing across iterations
//	}
package connection
