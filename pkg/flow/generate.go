package flow

import (
	"time"

	"github.com/google/uuid"
)

// NodeVersion is stamped on generated nodes.
const NodeVersion = "1.0.0"

// DefaultZIndex is the stacking order of generated nodes.
const DefaultZIndex = 1

// NodeSpec describes a node to generate. Zero fields take defaults.
type NodeSpec struct {
	ID        string
	Type      string
	ParentID  string
	BlockType BlockType
	Title     string
	Position  *Position
	Width     float64
	Height    float64
	ZIndex    int
	Data      Metadata
}

type generateConfig struct {
	now   func() time.Time
	newID func() string
}

// GenerateOption configures [GenerateNode].
type GenerateOption func(*generateConfig)

// WithClock sets the clock used for the creation stamp.
func WithClock(now func() time.Time) GenerateOption {
	return func(c *generateConfig) { c.now = now }
}

// WithIDFunc sets the id generator used when the NodeSpec has no id.
func WithIDFunc(f func() string) GenerateOption {
	return func(c *generateConfig) { c.newID = f }
}

// NewNodeID returns a fresh node id.
func NewNodeID() string { return "node-" + uuid.NewString() }

// GenerateNode builds a node ready to be placed on the canvas. Missing fields
// take the canvas defaults: category [TypeCustom], z-index 1, target handle on
// the left, source handle on the right, draggable and selectable. The data
// bag is stamped with _createdAt (Unix milliseconds), _nodeVersion and
// _workflowSpecific.
func GenerateNode(spec NodeSpec, opts ...GenerateOption) Node {
	cfg := generateConfig{now: time.Now, newID: NewNodeID}
	for _, opt := range opts {
		opt(&cfg)
	}

	n := Node{
		ID:             spec.ID,
		Type:           spec.Type,
		ParentID:       spec.ParentID,
		Width:          spec.Width,
		Height:         spec.Height,
		ZIndex:         spec.ZIndex,
		TargetPosition: SideLeft,
		SourcePosition: SideRight,
		Draggable:      BoolPtr(true),
		Selectable:     BoolPtr(true),
		Data: NodeData{
			Type:  spec.BlockType,
			Title: spec.Title,
			Extra: spec.Data.Clone(),
		},
	}
	if n.ID == "" {
		n.ID = cfg.newID()
	}
	if n.Type == "" {
		n.Type = TypeCustom
	}
	if n.ZIndex == 0 {
		n.ZIndex = DefaultZIndex
	}
	if spec.Position != nil {
		p := *spec.Position
		n.Position = &p
	} else {
		n.Position = &Position{}
	}
	if n.Data.Extra == nil {
		n.Data.Extra = Metadata{}
	}
	n.Data.Extra["_createdAt"] = cfg.now().UnixMilli()
	n.Data.Extra["_nodeVersion"] = NodeVersion
	n.Data.Extra["_workflowSpecific"] = true
	return n
}
