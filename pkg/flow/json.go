package flow

import (
	"encoding/json"
	"fmt"
)

// Keys modelled by struct fields. Everything else in a JSON object is kept in
// the Extra map of the value being decoded.
var (
	nodeKeys     = []string{"id", "type", "parentId", "position", "width", "height", "zIndex", "sourcePosition", "targetPosition", "draggable", "selectable", "data"}
	nodeDataKeys = []string{"type", "title", "selected", "isIterationStart", "isInIteration", "_connectedSourceHandleIds", "_connectedTargetHandleIds"}
	edgeKeys     = []string{"id", "type", "source", "target", "sourceHandle", "targetHandle", "data"}
	edgeDataKeys = []string{"sourceType", "targetType", "sourceNodeTitle", "targetNodeTitle", "isInIteration", "_isLinkedNodeSelected"}
)

type (
	nodeAlias     Node
	nodeDataAlias NodeData
	edgeAlias     Edge
	edgeDataAlias EdgeData
)

// MarshalJSON writes the modelled fields merged with Extra.
func (n Node) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(nodeAlias(n), n.Extra)
}

// UnmarshalJSON reads the modelled fields and keeps unknown keys in Extra.
func (n *Node) UnmarshalJSON(data []byte) error {
	var a nodeAlias
	extra, err := unmarshalWithExtra(data, &a, nodeKeys)
	if err != nil {
		return fmt.Errorf("decode node: %w", err)
	}
	a.Extra = extra
	*n = Node(a)
	return nil
}

// MarshalJSON writes the modelled fields merged with Extra.
func (d NodeData) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(nodeDataAlias(d), d.Extra)
}

// UnmarshalJSON reads the modelled fields and keeps unknown keys in Extra.
func (d *NodeData) UnmarshalJSON(data []byte) error {
	var a nodeDataAlias
	extra, err := unmarshalWithExtra(data, &a, nodeDataKeys)
	if err != nil {
		return fmt.Errorf("decode node data: %w", err)
	}
	a.Extra = extra
	*d = NodeData(a)
	return nil
}

// MarshalJSON writes the modelled fields merged with Extra.
func (e Edge) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(edgeAlias(e), e.Extra)
}

// UnmarshalJSON reads the modelled fields and keeps unknown keys in Extra.
func (e *Edge) UnmarshalJSON(data []byte) error {
	var a edgeAlias
	extra, err := unmarshalWithExtra(data, &a, edgeKeys)
	if err != nil {
		return fmt.Errorf("decode edge: %w", err)
	}
	a.Extra = extra
	*e = Edge(a)
	return nil
}

// MarshalJSON writes the modelled fields merged with Extra.
func (d EdgeData) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(edgeDataAlias(d), d.Extra)
}

// UnmarshalJSON reads the modelled fields and keeps unknown keys in Extra.
func (d *EdgeData) UnmarshalJSON(data []byte) error {
	var a edgeDataAlias
	extra, err := unmarshalWithExtra(data, &a, edgeDataKeys)
	if err != nil {
		return fmt.Errorf("decode edge data: %w", err)
	}
	a.Extra = extra
	*d = EdgeData(a)
	return nil
}

// marshalWithExtra encodes v and adds the keys of extra that v does not
// already define. Output keys are sorted, which keeps encodings stable for
// hashing.
func marshalWithExtra(v any, extra Metadata) ([]byte, error) {
	known, err := json.Marshal(v)
	if err != nil || len(extra) == 0 {
		return known, err
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(known, &merged); err != nil {
		return nil, err
	}
	for k, val := range extra {
		if _, ok := merged[k]; ok {
			continue
		}
		raw, err := json.Marshal(val)
		if err != nil {
			return nil, fmt.Errorf("encode %q: %w", k, err)
		}
		merged[k] = raw
	}
	return json.Marshal(merged)
}

func unmarshalWithExtra(data []byte, v any, known []string) (Metadata, error) {
	if err := json.Unmarshal(data, v); err != nil {
		return nil, err
	}
	var all map[string]any
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	for _, k := range known {
		delete(all, k)
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all, nil
}
