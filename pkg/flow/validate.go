package flow

import (
	"github.com/matzehuels/wfgraph/pkg/errors"
)

// Validate checks the identity invariants of a snapshot: node ids and edge
// ids are valid and unique within their own collection. All violations are
// collected into an [errors.ValidationError]; the first one determines the
// error code seen by errors.Is.
//
// Edges referencing missing nodes are not an error.
func Validate(nodes []Node, edges []Edge) error {
	var v errors.ValidationError

	seen := make(map[string]struct{}, len(nodes))
	for i, n := range nodes {
		if err := errors.ValidateID("node", n.ID); err != nil {
			v.Add(errors.GetCode(err), "node %d: %s", i, errors.UserMessage(err))
			continue
		}
		if _, dup := seen[n.ID]; dup {
			v.Add(errors.ErrCodeDuplicateID, "duplicate node id %q", n.ID)
			continue
		}
		seen[n.ID] = struct{}{}
	}

	seen = make(map[string]struct{}, len(edges))
	for i, e := range edges {
		if err := errors.ValidateID("edge", e.ID); err != nil {
			v.Add(errors.GetCode(err), "edge %d: %s", i, errors.UserMessage(err))
			continue
		}
		if _, dup := seen[e.ID]; dup {
			v.Add(errors.ErrCodeDuplicateID, "duplicate edge id %q", e.ID)
			continue
		}
		seen[e.ID] = struct{}{}
	}

	return v.Err()
}
