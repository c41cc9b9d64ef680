package flow

import (
	"slices"
	"strings"
)

// Canvas node categories. A node without a category is treated as
// [TypeCustom].
const (
	// TypeCustom is the standard workflow block.
	TypeCustom = "custom"
	// TypeNote is a decorative sticky note that never takes part in execution.
	TypeNote = "custom-note"
	// TypeIterationStart marks the first block inside an iteration container.
	TypeIterationStart = "custom-iteration-start"
)

// DefaultEdgeType is assigned to edges that do not name a renderer.
const DefaultEdgeType = "custom"

// Default handle identifiers. Every edge without an explicit handle uses these
// sentinels, so two edges leaving the same node without a handle share one id.
const (
	DefaultSourceHandle = "source"
	DefaultTargetHandle = "target"
)

// Handle sides used for generated nodes.
const (
	SideLeft  = "left"
	SideRight = "right"
)

// Metadata stores arbitrary key-value pairs the engine passes through without
// interpreting them: execution status, configuration payloads and other
// canvas state.
type Metadata map[string]any

// Clone returns a deep copy of m. Nested maps and slices are copied as well,
// so the result can be modified without touching m.
func (m Metadata) Clone() Metadata {
	if m == nil {
		return nil
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return map[string]any(Metadata(t).Clone())
	case Metadata:
		return t.Clone()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

// Position is a canvas coordinate of a node's top-left corner.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Viewport is the canvas pan offset and zoom factor.
type Viewport struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom float64 `json:"zoom"`
}

// NodeData is the metadata bag of a node.
//
// ConnectedSourceHandles and ConnectedTargetHandles are derived by the
// transform package and list the distinct handle ids used by edges leaving
// and entering the node. Keys prefixed with an underscore are transient and
// are stripped before a graph is persisted.
type NodeData struct {
	Type             BlockType `json:"type,omitempty"`
	Title            string    `json:"title,omitempty"`
	Selected         bool      `json:"selected,omitempty"`
	IsIterationStart bool      `json:"isIterationStart,omitempty"`
	IsInIteration    bool      `json:"isInIteration,omitempty"`

	ConnectedSourceHandles []string `json:"_connectedSourceHandleIds,omitempty"`
	ConnectedTargetHandles []string `json:"_connectedTargetHandleIds,omitempty"`

	// Extra holds every other key of the bag.
	Extra Metadata `json:"-"`
}

// Node is a block on the workflow canvas.
//
// Width and Height are zero when unknown; layout substitutes a default
// footprint without writing it back. A nil Position means the node has not
// been placed yet.
type Node struct {
	ID       string    `json:"id"`
	Type     string    `json:"type,omitempty"`
	ParentID string    `json:"parentId,omitempty"`
	Position *Position `json:"position,omitempty"`
	Width    float64   `json:"width,omitempty"`
	Height   float64   `json:"height,omitempty"`

	ZIndex         int    `json:"zIndex,omitempty"`
	SourcePosition string `json:"sourcePosition,omitempty"`
	TargetPosition string `json:"targetPosition,omitempty"`
	Draggable      *bool  `json:"draggable,omitempty"`
	Selectable     *bool  `json:"selectable,omitempty"`

	Data NodeData `json:"data"`

	// Extra holds top-level keys the engine does not model.
	Extra Metadata `json:"-"`
}

// Category returns the canvas category, defaulting to [TypeCustom].
func (n Node) Category() string {
	if n.Type == "" {
		return TypeCustom
	}
	return n.Type
}

// IsStandard reports whether n is a regular workflow block.
func (n Node) IsStandard() bool { return n.Category() == TypeCustom }

// IsNote reports whether n is a decorative note.
func (n Node) IsNote() bool { return n.Category() == TypeNote }

// IsIterationStart reports whether n starts the body of an iteration container.
func (n Node) IsIterationStart() bool {
	return n.Data.IsIterationStart || n.Category() == TypeIterationStart
}

// IsNested reports whether n lives inside a container.
func (n Node) IsNested() bool { return n.ParentID != "" }

// Kind resolves the node's block type.
func (n Node) Kind() Kind { return n.Data.Type.Kind() }

// Clone returns a deep copy of n.
func (n Node) Clone() Node {
	out := n
	if n.Position != nil {
		p := *n.Position
		out.Position = &p
	}
	if n.Draggable != nil {
		v := *n.Draggable
		out.Draggable = &v
	}
	if n.Selectable != nil {
		v := *n.Selectable
		out.Selectable = &v
	}
	out.Data.ConnectedSourceHandles = slices.Clone(n.Data.ConnectedSourceHandles)
	out.Data.ConnectedTargetHandles = slices.Clone(n.Data.ConnectedTargetHandles)
	out.Data.Extra = n.Data.Extra.Clone()
	out.Extra = n.Extra.Clone()
	return out
}

// EdgeData is the metadata bag of an edge.
//
// The source and target fields are display metadata copied from the endpoint
// nodes. LinkedNodeSelected is set when a selection is known and reports
// whether the edge touches the selected node.
type EdgeData struct {
	SourceType      BlockType `json:"sourceType,omitempty"`
	TargetType      BlockType `json:"targetType,omitempty"`
	SourceNodeTitle string    `json:"sourceNodeTitle,omitempty"`
	TargetNodeTitle string    `json:"targetNodeTitle,omitempty"`
	IsInIteration   bool      `json:"isInIteration,omitempty"`

	LinkedNodeSelected *bool `json:"_isLinkedNodeSelected,omitempty"`

	// Extra holds every other key of the bag.
	Extra Metadata `json:"-"`
}

// Edge is a directed connection from a source handle to a target handle.
// Empty handle ids mean the handle is absent.
type Edge struct {
	ID           string `json:"id"`
	Type         string `json:"type,omitempty"`
	Source       string `json:"source"`
	Target       string `json:"target"`
	SourceHandle string `json:"sourceHandle,omitempty"`
	TargetHandle string `json:"targetHandle,omitempty"`

	Data EdgeData `json:"data"`

	// Extra holds top-level keys the engine does not model.
	Extra Metadata `json:"-"`
}

// SourceHandleOrDefault returns the source handle, or [DefaultSourceHandle].
func (e Edge) SourceHandleOrDefault() string {
	if e.SourceHandle == "" {
		return DefaultSourceHandle
	}
	return e.SourceHandle
}

// TargetHandleOrDefault returns the target handle, or [DefaultTargetHandle].
func (e Edge) TargetHandleOrDefault() string {
	if e.TargetHandle == "" {
		return DefaultTargetHandle
	}
	return e.TargetHandle
}

// Pair returns the "source|target" key identifying the node pair of e.
// Parallel edges between the same nodes share a key.
func (e Edge) Pair() string { return e.Source + "|" + e.Target }

// IsSelfLoop reports whether e starts and ends at the same node.
func (e Edge) IsSelfLoop() bool { return e.Source == e.Target }

// Touches reports whether either endpoint of e is id.
func (e Edge) Touches(id string) bool { return e.Source == id || e.Target == id }

// Clone returns a deep copy of e.
func (e Edge) Clone() Edge {
	out := e
	if e.Data.LinkedNodeSelected != nil {
		v := *e.Data.LinkedNodeSelected
		out.Data.LinkedNodeSelected = &v
	}
	out.Data.Extra = e.Data.Extra.Clone()
	out.Extra = e.Extra.Clone()
	return out
}

// Graph is a snapshot of a workflow as exchanged with the canvas and stored in
// graph files.
type Graph struct {
	Nodes    []Node    `json:"nodes"`
	Edges    []Edge    `json:"edges"`
	Viewport *Viewport `json:"viewport,omitempty"`
}

// Clone returns a deep copy of g.
func (g Graph) Clone() Graph {
	out := Graph{
		Nodes: CloneNodes(g.Nodes),
		Edges: CloneEdges(g.Edges),
	}
	if g.Viewport != nil {
		v := *g.Viewport
		out.Viewport = &v
	}
	return out
}

// CloneNodes deep copies a node slice. A nil input yields nil.
func CloneNodes(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = n.Clone()
	}
	return out
}

// CloneEdges deep copies an edge slice. A nil input yields nil.
func CloneEdges(edges []Edge) []Edge {
	if edges == nil {
		return nil
	}
	out := make([]Edge, len(edges))
	for i, e := range edges {
		out[i] = e.Clone()
	}
	return out
}

// IsTransientKey reports whether a data key holds transient canvas state that
// must not be persisted.
func IsTransientKey(key string) bool { return strings.HasPrefix(key, "_") }

// BoolPtr returns a pointer to v.
func BoolPtr(v bool) *bool { return &v }
