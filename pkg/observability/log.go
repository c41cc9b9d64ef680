package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports every event as a debug line.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks creates hooks writing to logger, or to the default logger
// when logger is nil.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{Logger: logger.WithPrefix("hooks")}
}

func (h *LogHooks) OnNormalizeStart(_ context.Context, nodeCount, edgeCount int) {
	h.Logger.Debug("normalize started", "nodes", nodeCount, "edges", edgeCount)
}

func (h *LogHooks) OnNormalizeComplete(_ context.Context, removedEdges int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("normalize failed", "duration", d, "err", err)
		return
	}
	h.Logger.Debug("normalize finished", "removed_edges", removedEdges, "duration", d)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, nodeCount int) {
	h.Logger.Debug("layout started", "nodes", nodeCount)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, rankCount int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("layout failed", "duration", d, "err", err)
		return
	}
	h.Logger.Debug("layout finished", "ranks", rankCount, "duration", d)
}

func (h *LogHooks) OnAnalyzeStart(_ context.Context, nodeCount int) {
	h.Logger.Debug("analysis started", "nodes", nodeCount)
}

func (h *LogHooks) OnAnalyzeComplete(_ context.Context, reachable, orphaned int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("analysis failed", "duration", d, "err", err)
		return
	}
	h.Logger.Debug("analysis finished", "reachable", reachable, "orphaned", orphaned, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnCacheError(_ context.Context, keyType string, err error) {
	h.Logger.Warn("cache error", "type", keyType, "err", err)
}

var (
	_ EngineHooks = (*LogHooks)(nil)
	_ CacheHooks  = (*LogHooks)(nil)
)
