// Package forest renders the spanning forest of a clustering run as a
// Graphviz diagram.
//
// Every box becomes a node and every connection that changed the partition
// becomes an undirected edge, styled by its outcome. After unification the
// forest is a minimum spanning tree of the point set.
//
//	dot := forest.ToDOT(result.Points, result.Forest, forest.Options{Pinned: true})
//	svg, err := forest.RenderSVG(dot)
//
// With Pinned set, nodes are fixed at their projected X/Y coordinates and
// the neato engine is selected so the drawing keeps the input's geometry.
package forest
