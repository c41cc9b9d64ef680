// Package pipeline runs the wfgraph engine stages with caching.
//
// A run takes a raw editor snapshot through three stages:
//
//  1. Normalize: break cycles and fill edge and node defaults
//  2. Layout: compute the left-to-right layered arrangement and apply it
//  3. Analyze: walk the tree of blocks reachable from the entry node
//
// Each stage can be run on its own through a [Runner] or as a whole with
// [Runner.Execute]. Results are cached by the content hash of the graph they
// were computed from, so repeated runs over an unchanged file are free.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	defer runner.Close()
//
//	res, err := runner.Execute(ctx, g, pipeline.Options{})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Report.OrphanedIDs())
//
// Run individual stages:
//
//	norm, err := runner.Normalize(ctx, g, opts)
//	l, err := runner.Layout(ctx, norm.Graph, opts)
//	report, err := runner.Analyze(ctx, norm.Graph, opts)
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wfgraph/pkg/flow"
	"github.com/matzehuels/wfgraph/pkg/flow/analysis"
	"github.com/matzehuels/wfgraph/pkg/flow/layout"
	"github.com/matzehuels/wfgraph/pkg/flow/transform"
)

// Options configures a pipeline run.
type Options struct {
	// SelectedNodeID is the node selected on the canvas. Edges touching it
	// are flagged during normalization. Empty means the last node whose data
	// is marked selected.
	SelectedNodeID string `json:"selected_node_id,omitempty"`

	// Root overrides the entry node as the root of the tree walk.
	Root string `json:"root,omitempty"`

	// Refresh skips cache reads. Fresh results are still written back.
	Refresh bool `json:"refresh,omitempty"`

	// Logger overrides the runner's logger for this run.
	Logger *log.Logger `json:"-"`
}

func (o Options) edgeOptions() transform.EdgeOptions {
	return transform.EdgeOptions{SelectedNodeID: o.SelectedNodeID}
}

// Result contains the outputs of [Runner.Execute].
type Result struct {
	// Graph is the normalized graph with laid-out positions applied.
	Graph flow.Graph

	// RemovedEdges are the cycle edges dropped during normalization.
	RemovedEdges []flow.Edge

	// Layout is the computed arrangement.
	Layout *layout.Layout

	// Viewport is the canvas viewport after auto-arranging.
	Viewport flow.Viewport

	// Report is the tree analysis from the entry node.
	Report analysis.Report

	// GraphHash is the content hash of the input graph.
	GraphHash string

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount    int
	EdgeCount    int
	RemovedEdges int
	RankCount    int
	Reachable    int
	Orphaned     int

	NormalizeTime time.Duration
	LayoutTime    time.Duration
	AnalyzeTime   time.Duration
}

// CacheInfo tracks cache hits for each stage.
type CacheInfo struct {
	NormalizeHit bool
	LayoutHit    bool
	AnalysisHit  bool
}
