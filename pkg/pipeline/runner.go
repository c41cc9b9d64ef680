package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wfgraph/pkg/cache"
	"github.com/matzehuels/wfgraph/pkg/flow"
	"github.com/matzehuels/wfgraph/pkg/flow/analysis"
	"github.com/matzehuels/wfgraph/pkg/flow/layout"
	"github.com/matzehuels/wfgraph/pkg/flow/transform"
	"github.com/matzehuels/wfgraph/pkg/graphio"
	"github.com/matzehuels/wfgraph/pkg/observability"
	"github.com/matzehuels/wfgraph/pkg/render"
	"github.com/matzehuels/wfgraph/pkg/render/nodelink"
)

// Cache key types reported to [observability.CacheHooks].
const (
	keyTypeNormalize = "normalize"
	keyTypeLayout    = "layout"
	keyTypeAnalysis  = "analysis"
)

// Runner executes pipeline stages with caching.
//
// The Runner holds no per-run state. Multiple goroutines can use the same
// Runner with different graphs and options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	Hooks  observability.Hooks

	// TTL overrides the per-stage cache lifetimes when positive.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs validate → normalize → layout → analyze on g.
func (r *Runner) Execute(ctx context.Context, g flow.Graph, opts Options) (*Result, error) {
	logger := r.logger(opts)
	if err := flow.Validate(g.Nodes, g.Edges); err != nil {
		return nil, err
	}

	hash, err := GraphHash(g)
	if err != nil {
		return nil, err
	}
	result := &Result{GraphHash: hash}
	result.Stats.NodeCount = len(g.Nodes)
	result.Stats.EdgeCount = len(g.Edges)

	// Stage 1: Normalize
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	norm, hit, err := r.NormalizeWithCacheInfo(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	result.RemovedEdges = norm.RemovedEdges
	result.Stats.RemovedEdges = len(norm.RemovedEdges)
	result.Stats.NormalizeTime = time.Since(start)
	result.CacheInfo.NormalizeHit = hit

	logger.Info("normalized graph",
		"nodes", len(norm.Graph.Nodes),
		"edges", len(norm.Graph.Edges),
		"removed", len(norm.RemovedEdges),
		"duration", result.Stats.NormalizeTime)

	// Stage 2: Layout
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start = time.Now()
	l, hit, err := r.LayoutWithCacheInfo(ctx, norm.Graph, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	nodes, vp := layout.Apply(norm.Graph.Nodes, l)
	result.Graph = flow.Graph{Nodes: nodes, Edges: norm.Graph.Edges, Viewport: &vp}
	result.Layout = l
	result.Viewport = vp
	result.Stats.RankCount = len(l.Ranks)
	result.Stats.LayoutTime = time.Since(start)
	result.CacheInfo.LayoutHit = hit

	logger.Info("computed layout",
		"ranks", len(l.Ranks),
		"width", l.Width,
		"height", l.Height,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Analyze
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start = time.Now()
	report, hit, err := r.AnalyzeWithCacheInfo(ctx, norm.Graph, opts)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	result.Report = report
	result.Stats.Reachable = len(report.Reachable)
	result.Stats.Orphaned = len(report.Orphaned)
	result.Stats.AnalyzeTime = time.Since(start)
	result.CacheInfo.AnalysisHit = hit

	logger.Info("analyzed graph",
		"root", report.Root,
		"reachable", len(report.Reachable),
		"orphaned", len(report.Orphaned),
		"depth", report.MaxDepth,
		"duration", result.Stats.AnalyzeTime)

	return result, nil
}

// NormalizeWithCacheInfo normalizes g with caching and returns cache hit info.
func (r *Runner) NormalizeWithCacheInfo(ctx context.Context, g flow.Graph, opts Options) (transform.Result, bool, error) {
	hooks := r.Hooks.EngineOrNoop()
	hooks.OnNormalizeStart(ctx, len(g.Nodes), len(g.Edges))
	start := time.Now()

	hash, err := GraphHash(g)
	if err != nil {
		hooks.OnNormalizeComplete(ctx, 0, time.Since(start), err)
		return transform.Result{}, false, err
	}
	key := r.Keyer.NormalizeKey(hash, cache.NormalizeKeyOpts{SelectedNodeID: opts.SelectedNodeID})

	res, hit, err := cached(ctx, r, opts, keyTypeNormalize, key, cache.DefaultTTL, func() (normalized, error) {
		out := transform.Normalize(g, opts.edgeOptions())
		return normalized{Graph: out.Graph, RemovedEdges: out.RemovedEdges}, nil
	})
	hooks.OnNormalizeComplete(ctx, len(res.RemovedEdges), time.Since(start), err)
	if err != nil {
		return transform.Result{}, false, err
	}
	return transform.Result{Graph: res.Graph, RemovedEdges: res.RemovedEdges}, hit, nil
}

// Normalize is a convenience wrapper that calls NormalizeWithCacheInfo and discards the cache hit info.
func (r *Runner) Normalize(ctx context.Context, g flow.Graph, opts Options) (transform.Result, error) {
	res, _, err := r.NormalizeWithCacheInfo(ctx, g, opts)
	return res, err
}

// LayoutWithCacheInfo computes the layout of an already normalized graph
// with caching and returns cache hit info.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, g flow.Graph, opts Options) (*layout.Layout, bool, error) {
	hooks := r.Hooks.EngineOrNoop()
	hooks.OnLayoutStart(ctx, len(g.Nodes))
	start := time.Now()

	hash, err := GraphHash(g)
	if err != nil {
		hooks.OnLayoutComplete(ctx, 0, time.Since(start), err)
		return nil, false, err
	}
	key := r.Keyer.LayoutKey(hash, cache.LayoutKeyOpts{Version: layout.Version})

	l, hit, err := cached(ctx, r, opts, keyTypeLayout, key, cache.TTLLayout, func() (*layout.Layout, error) {
		return layout.Compute(g.Nodes, g.Edges), nil
	})
	if err != nil {
		hooks.OnLayoutComplete(ctx, 0, time.Since(start), err)
		return nil, false, err
	}
	if l == nil {
		l = &layout.Layout{}
	}
	if l.Nodes == nil {
		l.Nodes = map[string]layout.Placement{}
	}
	hooks.OnLayoutComplete(ctx, len(l.Ranks), time.Since(start), nil)
	return l, hit, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, g flow.Graph, opts Options) (*layout.Layout, error) {
	l, _, err := r.LayoutWithCacheInfo(ctx, g, opts)
	return l, err
}

// AnalyzeWithCacheInfo walks the tree of g with caching and returns cache
// hit info. The walk starts at opts.Root when set and at the entry node
// otherwise.
func (r *Runner) AnalyzeWithCacheInfo(ctx context.Context, g flow.Graph, opts Options) (analysis.Report, bool, error) {
	hooks := r.Hooks.EngineOrNoop()
	hooks.OnAnalyzeStart(ctx, len(g.Nodes))
	start := time.Now()

	hash, err := GraphHash(g)
	if err != nil {
		hooks.OnAnalyzeComplete(ctx, 0, 0, time.Since(start), err)
		return analysis.Report{}, false, err
	}
	key := r.Keyer.AnalysisKey(hash, cache.AnalysisKeyOpts{Root: opts.Root})

	report, hit, err := cached(ctx, r, opts, keyTypeAnalysis, key, cache.TTLAnalysis, func() (analysis.Report, error) {
		if opts.Root != "" {
			return analysis.AnalyzeFrom(g.Nodes, g.Edges, opts.Root), nil
		}
		return analysis.Analyze(g.Nodes, g.Edges), nil
	})
	hooks.OnAnalyzeComplete(ctx, len(report.Reachable), len(report.Orphaned), time.Since(start), err)
	if err != nil {
		return analysis.Report{}, false, err
	}
	return report, hit, nil
}

// Analyze is a convenience wrapper that calls AnalyzeWithCacheInfo and discards the cache hit info.
func (r *Runner) Analyze(ctx context.Context, g flow.Graph, opts Options) (analysis.Report, error) {
	report, _, err := r.AnalyzeWithCacheInfo(ctx, g, opts)
	return report, err
}

// Render draws an executed result in the given output format. Orphaned
// blocks are highlighted.
func (r *Runner) Render(ctx context.Context, res *Result, format string, detailed bool) ([]byte, error) {
	if err := render.ValidateFormat(format); err != nil {
		return nil, err
	}
	dot := nodelink.ToDOT(res.Graph, res.Layout, nodelink.Options{
		Detailed: detailed,
		Orphaned: res.Report.OrphanedIDs(),
	})
	return nodelink.Render(ctx, dot, format)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// GraphHash returns the content hash of g used in cache keys.
func GraphHash(g flow.Graph) (string, error) {
	data, err := graphio.Marshal(g)
	if err != nil {
		return "", fmt.Errorf("serialize graph for cache key: %w", err)
	}
	return cache.Hash(data), nil
}

// normalized is the cached form of a normalization result.
type normalized struct {
	Graph        flow.Graph  `json:"graph"`
	RemovedEdges []flow.Edge `json:"removed_edges"`
}

// cached returns the value stored under key, or computes and stores it.
// Cache failures are reported to the hooks and otherwise ignored: a broken
// cache slows a run down but never fails it.
func cached[T any](ctx context.Context, r *Runner, opts Options, keyType, key string, ttl time.Duration, compute func() (T, error)) (T, bool, error) {
	hooks := r.Hooks.CacheOrNoop()
	logger := r.logger(opts)
	if r.TTL > 0 {
		ttl = r.TTL
	}

	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		switch {
		case err != nil:
			hooks.OnCacheError(ctx, keyType, err)
		case hit:
			var v T
			if err := json.Unmarshal(data, &v); err == nil {
				hooks.OnCacheHit(ctx, keyType)
				return v, true, nil
			}
			// Undecodable entries are recomputed and overwritten.
			logger.Debug("discarding corrupt cache entry", "type", keyType)
			hooks.OnCacheMiss(ctx, keyType)
		default:
			hooks.OnCacheMiss(ctx, keyType)
		}
	}

	v, err := compute()
	if err != nil {
		var zero T
		return zero, false, err
	}

	data, err := json.Marshal(v)
	if err != nil {
		hooks.OnCacheError(ctx, keyType, err)
		return v, false, nil
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		hooks.OnCacheError(ctx, keyType, err)
		return v, false, nil
	}
	hooks.OnCacheSet(ctx, keyType, len(data))
	return v, false, nil
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
