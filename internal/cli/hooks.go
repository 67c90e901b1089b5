package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/circuitry/pkg/observability"
)

// logHooks reports pipeline and input events at debug level.
type logHooks struct {
	logger *log.Logger
}

var (
	_ observability.PipelineHooks = logHooks{}
	_ observability.InputHooks    = logHooks{}
)

func newLogHooks(l *log.Logger) logHooks {
	return logHooks{logger: l.WithPrefix("hooks")}
}

func (h logHooks) OnParseStart(_ context.Context, source string) {
	h.logger.Debug("parse start", "source", source)
}

func (h logHooks) OnParseComplete(_ context.Context, source string, points int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("parse failed", "source", source, "err", err)
		return
	}
	h.logger.Debug("parse complete", "source", source, "points", points, "duration", d)
}

func (h logHooks) OnBuildStart(_ context.Context, points int) {
	h.logger.Debug("build start", "points", points)
}

func (h logHooks) OnBuildComplete(_ context.Context, connections int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("build failed", "err", err)
		return
	}
	h.logger.Debug("build complete", "connections", connections, "duration", d)
}

func (h logHooks) OnRunStart(_ context.Context, strategy string, connections int) {
	h.logger.Debug("run start", "strategy", strategy, "connections", connections)
}

func (h logHooks) OnCheckpoint(_ context.Context, k int, product uint64) {
	h.logger.Debug("checkpoint", "k", k, "product", product)
}

func (h logHooks) OnUnified(_ context.Context, step int, distance float64) {
	h.logger.Debug("unified", "step", step, "distance", distance)
}

func (h logHooks) OnRunComplete(_ context.Context, steps int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("run failed", "steps", steps, "err", err)
		return
	}
	h.logger.Debug("run complete", "steps", steps, "duration", d)
}
