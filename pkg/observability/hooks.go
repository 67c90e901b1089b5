// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about input parsing and clustering runs.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (logging, Prometheus, OpenTelemetry, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetInputHooks(&myInputHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnBuildStart(ctx, len(points))
//	// ... compute distances ...
//	observability.Pipeline().OnBuildComplete(ctx, len(conns), duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from a clustering run.
type PipelineHooks interface {
	// Distance build events
	OnBuildStart(ctx context.Context, points int)
	OnBuildComplete(ctx context.Context, connections int, duration time.Duration, err error)

	// Tracking events
	OnRunStart(ctx context.Context, strategy string, connections int)
	OnCheckpoint(ctx context.Context, k int, product uint64)
	OnUnified(ctx context.Context, step int, distance float64)
	OnRunComplete(ctx context.Context, steps int, duration time.Duration, err error)
}

// =============================================================================
// Input Hooks
// =============================================================================

// InputHooks receives events from point-set loading.
type InputHooks interface {
	// OnParseStart records the start of reading source.
	OnParseStart(ctx context.Context, source string)

	// OnParseComplete records the outcome of reading source.
	OnParseComplete(ctx context.Context, source string, points int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnBuildStart(context.Context, int)                           {}
func (NoopPipelineHooks) OnBuildComplete(context.Context, int, time.Duration, error) {}
func (NoopPipelineHooks) OnRunStart(context.Context, string, int)                    {}
func (NoopPipelineHooks) OnCheckpoint(context.Context, int, uint64)                  {}
func (NoopPipelineHooks) OnUnified(context.Context, int, float64)                    {}
func (NoopPipelineHooks) OnRunComplete(context.Context, int, time.Duration, error)   {}

// NoopInputHooks is a no-op implementation of InputHooks.
type NoopInputHooks struct{}

func (NoopInputHooks) OnParseStart(context.Context, string)                                {}
func (NoopInputHooks) OnParseComplete(context.Context, string, int, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	inputHooks    InputHooks    = NoopInputHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any run.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetInputHooks registers custom input hooks.
// This should be called once at application startup before any input is read.
func SetInputHooks(h InputHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		inputHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Input returns the registered input hooks.
func Input() InputHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return inputHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	inputHooks = NoopInputHooks{}
}
