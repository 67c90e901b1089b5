package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/circuitry/pkg/buildinfo"
	"github.com/matzehuels/circuitry/pkg/config"
	"github.com/matzehuels/circuitry/pkg/errors"
	"github.com/matzehuels/circuitry/pkg/observability"
	"github.com/matzehuels/circuitry/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "circuitry"

	// stdinSource selects standard input as the point source.
	stdinSource = "-"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Circuitry clusters junction boxes into circuits by nearest connection",
		Long: `Circuitry reads 3D junction box coordinates, connects boxes in order of
increasing distance and reports the sizes of the largest circuits after a
fixed number of connections, together with the connection that finally
joins every box into a single circuit.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			observability.SetPipelineHooks(newLogHooks(c.Logger))
			observability.SetInputHooks(newLogHooks(c.Logger))
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.runCommand())
	root.AddCommand(c.forestCommand())
	root.AddCommand(c.replayCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Pipeline Flags
// =============================================================================

// pipelineFlags are the run options shared by every command that clusters.
type pipelineFlags struct {
	config         string
	checkpoint     int
	strategy       string
	workers        int
	maxConnections int
	check          bool
}

func (f *pipelineFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.config, "config", "", "config file (default $XDG_CONFIG_HOME/circuitry/config.toml)")
	fl.IntVarP(&f.checkpoint, "checkpoint", "k", pipeline.DefaultCheckpoint, "connections consumed before the top-three snapshot (must be >= 1)")
	fl.StringVar(&f.strategy, "strategy", pipeline.DefaultStrategy, "circuit tracker: rehome or unionfind")
	fl.IntVar(&f.workers, "workers", 0, "distance workers (0 = GOMAXPROCS)")
	fl.IntVar(&f.maxConnections, "max-connections", pipeline.DefaultMaxConnections, "largest connection list accepted (negative disables)")
	fl.BoolVar(&f.check, "check", false, "validate the partition after every connection")
}

// options merges the config file under explicitly given flags.
func (f *pipelineFlags) options(cmd *cobra.Command) (pipeline.Options, error) {
	opts := pipeline.Options{
		Checkpoint:      f.checkpoint,
		Strategy:        f.strategy,
		Workers:         f.workers,
		MaxConnections:  f.maxConnections,
		CheckInvariants: f.check,
	}

	if cmd.Flags().Changed("checkpoint") && f.checkpoint == 0 {
		return opts, errors.New(errors.ErrCodeInvalidConfig, "invalid checkpoint: 0 (must be >= 1)")
	}

	cfg, err := config.Load(f.config)
	if err != nil {
		return opts, err
	}
	cfg.Apply(&opts, cmd.Flags().Changed)

	// Validate a copy: defaults include a discard logger, and the runner
	// must still install its own.
	check := opts
	return opts, check.ValidateAndSetDefaults()
}

// =============================================================================
// Pipeline Execution
// =============================================================================

// execute loads source and runs the pipeline, showing a spinner on
// interactive terminals while distances are computed.
func execute(ctx context.Context, source string, opts pipeline.Options) (*pipeline.Result, error) {
	logger := loggerFromContext(ctx)
	runner := pipeline.NewRunner(logger)

	prog := newProgress(logger)
	points, err := runner.Load(ctx, source)
	if err != nil {
		return nil, err
	}

	spin := startSpinner(ctx, logger, "Computing distances...")
	buildStart := time.Now()
	conns, err := runner.Build(ctx, points, opts)
	spin.Stop()
	if err != nil {
		return nil, err
	}
	buildTime := time.Since(buildStart)

	spin = startSpinner(ctx, logger, "Clustering...")
	result, err := runner.Cluster(ctx, points, conns, opts)
	spin.Stop()
	if err != nil {
		return nil, err
	}
	result.Stats.BuildTime = buildTime

	prog.done(fmtStats(result))
	return result, nil
}

// inputSource returns the point source named by args.
func inputSource(args []string) string {
	if len(args) == 0 || args[0] == "" {
		return stdinSource
	}
	return args[0]
}

// startSpinner shows a spinner on stderr when it is a terminal and debug
// logging is off; otherwise the returned spinner is inert.
func startSpinner(ctx context.Context, logger *log.Logger, message string) *Spinner {
	if logger.GetLevel() <= log.DebugLevel || !isTerminal(os.Stderr) {
		return nil
	}
	s := newSpinnerWithContext(ctx, os.Stderr, message)
	s.Start()
	return s
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
