package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/circuitry/pkg/pipeline"
)

const (
	checkpointLabel = "Product of sizes of the three largest circuits"
	unifyingLabel   = "Product of unifying boxes' X coordinates"
	noUnification   = "none (no unification possible)"
)

// runCommand creates the run command that prints both answers.
func (c *CLI) runCommand() *cobra.Command {
	var (
		flags   pipelineFlags
		summary bool
	)

	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Report the checkpoint product and the unifying connection",
		Long: `Run clusters the junction boxes in file (or standard input) and prints:

  - the product of the sizes of the three largest circuits after the first
    k connections, and
  - the product of the X coordinates of the two boxes whose connection
    first joins every box into a single circuit.`,
		Example: `  circuitry run input.txt
  circuitry run -k 10 --strategy unionfind < sample.txt
  circuitry run --summary input.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			result, err := execute(ctx, inputSource(args), opts)
			if err != nil {
				return err
			}

			if err := writeReport(cmd.OutOrStdout(), result); err != nil {
				return err
			}
			if !result.Unified() {
				_, uerr := result.UnifyingProduct()
				loggerFromContext(ctx).Warn("boxes never formed a single circuit", "reason", uerr)
			}
			if summary {
				printSummary(cmd.ErrOrStderr(), opts.Strategy, result)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&summary, "summary", false, "print run statistics and the largest circuits to stderr")
	return cmd
}

// writeReport writes the two result lines.
func writeReport(w io.Writer, r *pipeline.Result) error {
	if _, err := fmt.Fprintf(w, "%s: %d\n", checkpointLabel, r.Checkpoint.Product); err != nil {
		return err
	}

	x := noUnification
	if product, err := r.UnifyingProduct(); err == nil {
		x = strconv.FormatFloat(product, 'f', -1, 64)
	}
	_, err := fmt.Fprintf(w, "%s: %s\n", unifyingLabel, x)
	return err
}
