package forest

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/circuitry/pkg/circuit"
	"github.com/matzehuels/circuitry/pkg/geom"
	pointio "github.com/matzehuels/circuitry/pkg/io"
)

// Options configures forest rendering.
type Options struct {
	// Pinned fixes every node at its X/Y coordinates.
	Pinned bool

	// Detailed adds coordinates to node labels and distances to edges.
	Detailed bool
}

// pinnedExtent is the width of the larger drawing axis in inches.
const pinnedExtent = 10.0

// ToDOT converts a forest to Graphviz DOT format.
func ToDOT(points geom.PointSet, edges []pointio.ForestEdge, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	if opts.Pinned {
		buf.WriteString("  layout=neato;\n")
	}
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=10, width=0.3, fixedsize=false];\n")
	buf.WriteString("  edge [color=\"#555555\"];\n")
	buf.WriteString("\n")

	project := projector(points)
	for i, p := range points {
		attrs := fmt.Sprintf("label=%q", fmtLabel(i, p, opts.Detailed))
		if opts.Pinned {
			x, y := project(p)
			attrs += fmt.Sprintf(", pos=\"%.3f,%.3f!\"", x, y)
		}
		fmt.Fprintf(&buf, "  %d [%s];\n", i, attrs)
	}

	buf.WriteString("\n")
	for _, e := range edges {
		attrs := outcomeAttrs(e.Outcome)
		if opts.Detailed {
			attrs += fmt.Sprintf(", label=%q", strconv.FormatFloat(e.Distance, 'g', 4, 64))
		}
		fmt.Fprintf(&buf, "  %d -- %d [%s];\n", e.A, e.B, attrs)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(i int, p geom.Point, detailed bool) string {
	if !detailed {
		return strconv.Itoa(i)
	}
	return fmt.Sprintf("%d\n%s", i, p)
}

func outcomeAttrs(o circuit.Outcome) string {
	switch o {
	case circuit.Merged:
		return "penwidth=2.5, color=\"#d75f5f\""
	case circuit.Joined:
		return "penwidth=1.5, color=\"#00af87\""
	default:
		return "penwidth=1"
	}
}

// projector maps X/Y into [0, pinnedExtent] inches preserving aspect ratio.
func projector(points geom.PointSet) func(geom.Point) (float64, float64) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X()), math.Max(maxX, p.X())
		minY, maxY = math.Min(minY, p.Y()), math.Max(maxY, p.Y())
	}
	span := math.Max(maxX-minX, maxY-minY)
	scale := 1.0
	if span > 0 {
		scale = pinnedExtent / span
	}
	return func(p geom.Point) (float64, float64) {
		return (p.X() - minX) * scale, (p.Y() - minY) * scale
	}
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-sized svg tag with one that
// scales to its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
