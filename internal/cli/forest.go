package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/circuitry/pkg/errors"
	pointio "github.com/matzehuels/circuitry/pkg/io"
	"github.com/matzehuels/circuitry/pkg/pipeline"
	"github.com/matzehuels/circuitry/pkg/render/forest"
)

// Forest export formats.
const (
	formatDOT  = "dot"
	formatSVG  = "svg"
	formatPNG  = "png"
	formatJSON = "json"
)

var forestFormats = []string{formatDOT, formatSVG, formatPNG, formatJSON}

// forestCommand creates the forest command that exports spanning forests.
func (c *CLI) forestCommand() *cobra.Command {
	var (
		flags    pipelineFlags
		format   string
		output   string
		pinned   bool
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "forest [file]",
		Short: "Export the spanning forest built by a run",
		Long: `Forest exports every connection that changed the circuit partition, up
to and including the unifying connection. When the boxes unify, the result
is a minimum spanning tree of the input.`,
		Example: `  circuitry forest -f svg -o forest.svg input.txt
  circuitry forest -f dot --pinned input.txt | neato -Tpng > forest.png
  circuitry forest -f json input.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateChoice(errors.ErrCodeInvalidFormat, "format", format, forestFormats); err != nil {
				return err
			}
			opts, err := flags.options(cmd)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			result, err := execute(ctx, inputSource(args), opts)
			if err != nil {
				return err
			}

			if format == formatJSON && !isStdout(output) {
				if err := pointio.ExportForestJSON(result.Points, result.Forest, output); err != nil {
					return err
				}
				printFile(cmd.ErrOrStderr(), output)
				return nil
			}

			spin := startSpinner(ctx, loggerFromContext(ctx), "Rendering forest...")
			data, err := exportForest(ctx, result, format, forest.Options{Pinned: pinned, Detailed: detailed})
			if err != nil {
				spin.StopWithError("Rendering failed")
				return err
			}
			spin.StopWithSuccess(fmt.Sprintf("Rendered %d connections as %s", len(result.Forest), format))
			return writeOutput(cmd, output, data)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", formatSVG, "output format: dot, svg, png or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&pinned, "pinned", false, "place boxes at their X/Y coordinates")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "label boxes with coordinates and edges with distances")
	return cmd
}

// exportForest encodes the forest of r in format.
func exportForest(ctx context.Context, r *pipeline.Result, format string, opts forest.Options) ([]byte, error) {
	if format == formatJSON {
		var buf bytes.Buffer
		if err := pointio.WriteForestJSON(r.Points, r.Forest, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	dot := forest.ToDOT(r.Points, r.Forest, opts)
	switch format {
	case formatSVG:
		return forest.RenderSVG(ctx, dot)
	case formatPNG:
		return forest.RenderPNG(ctx, dot)
	default:
		return []byte(dot), nil
	}
}

// writeOutput writes data to path, or to the command's stdout when path
// is empty or "-".
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if isStdout(path) {
		_, err := io.Copy(cmd.OutOrStdout(), bytes.NewReader(data))
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printFile(cmd.ErrOrStderr(), path)
	return nil
}

func isStdout(path string) bool {
	return path == "" || path == stdinSource
}
