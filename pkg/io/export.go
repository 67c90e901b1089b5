package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/circuitry/pkg/circuit"
	"github.com/matzehuels/circuitry/pkg/connection"
	"github.com/matzehuels/circuitry/pkg/geom"
)

// ForestEdge is a connection that linked two circuits, with the
// transition it caused.
type ForestEdge struct {
	connection.Connection
	Outcome circuit.Outcome
}

type forest struct {
	Points []geom.Point `json:"points"`
	Edges  []edge       `json:"edges"`
}

type edge struct {
	A        connection.Box `json:"a"`
	B        connection.Box `json:"b"`
	Distance float64        `json:"distance"`
	Outcome  string         `json:"outcome"`
}

// WriteForestJSON encodes points and forest edges as indented JSON.
func WriteForestJSON(points geom.PointSet, edges []ForestEdge, w io.Writer) error {
	out := forest{
		Points: points,
		Edges:  make([]edge, len(edges)),
	}
	if out.Points == nil {
		out.Points = []geom.Point{}
	}
	for i, e := range edges {
		out.Edges[i] = edge{A: e.A, B: e.B, Distance: e.Distance, Outcome: e.Outcome.String()}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportForestJSON writes the forest to a JSON file at path.
// This is a convenience wrapper around [WriteForestJSON] for file-based output.
func ExportForestJSON(points geom.PointSet, edges []ForestEdge, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteForestJSON(points, edges, f)
}
