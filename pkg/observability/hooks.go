// Package observability defines the events the pipeline emits while it
// normalizes, lays out and analyzes graphs.
//
// Hooks are plain interfaces with no-op defaults. They are handed to the
// pipeline Runner explicitly; there is no global registry:
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	runner.Hooks = observability.Hooks{
//	    Engine: observability.NewLogHooks(logger),
//	    Cache:  observability.NewLogHooks(logger),
//	}
//
// [LogHooks] writes every event as a debug line through charmbracelet/log,
// which is what the CLI installs under --verbose. Metrics backends can
// implement the same interfaces.
package observability

import (
	"context"
	"time"
)

// =============================================================================
// Engine Hooks
// =============================================================================

// EngineHooks receives events from the graph engine stages.
type EngineHooks interface {
	OnNormalizeStart(ctx context.Context, nodeCount, edgeCount int)
	OnNormalizeComplete(ctx context.Context, removedEdges int, duration time.Duration, err error)

	OnLayoutStart(ctx context.Context, nodeCount int)
	OnLayoutComplete(ctx context.Context, rankCount int, duration time.Duration, err error)

	OnAnalyzeStart(ctx context.Context, nodeCount int)
	OnAnalyzeComplete(ctx context.Context, reachable, orphaned int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache lookups made by the pipeline.
// keyType is the result kind: "normalize", "layout" or "analysis".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
	OnCacheError(ctx context.Context, keyType string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopEngineHooks is a no-op implementation of EngineHooks.
type NoopEngineHooks struct{}

func (NoopEngineHooks) OnNormalizeStart(context.Context, int, int)                        {}
func (NoopEngineHooks) OnNormalizeComplete(context.Context, int, time.Duration, error)    {}
func (NoopEngineHooks) OnLayoutStart(context.Context, int)                                {}
func (NoopEngineHooks) OnLayoutComplete(context.Context, int, time.Duration, error)       {}
func (NoopEngineHooks) OnAnalyzeStart(context.Context, int)                               {}
func (NoopEngineHooks) OnAnalyzeComplete(context.Context, int, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)          {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)         {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int)     {}
func (NoopCacheHooks) OnCacheError(context.Context, string, error) {}

// =============================================================================
// Bundle
// =============================================================================

// Hooks bundles the hook sets a Runner reports to. Nil members are treated
// as no-ops.
type Hooks struct {
	Engine EngineHooks
	Cache  CacheHooks
}

// EngineOrNoop returns h.Engine, or a no-op when it is nil.
func (h Hooks) EngineOrNoop() EngineHooks {
	if h.Engine == nil {
		return NoopEngineHooks{}
	}
	return h.Engine
}

// CacheOrNoop returns h.Cache, or a no-op when it is nil.
func (h Hooks) CacheOrNoop() CacheHooks {
	if h.Cache == nil {
		return NoopCacheHooks{}
	}
	return h.Cache
}
