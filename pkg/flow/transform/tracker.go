package transform

import (
	"slices"
	"time"

	"github.com/matzehuels/wfgraph/pkg/flow"
)

// ChangeType distinguishes connection events.
type ChangeType string

const (
	Connect    ChangeType = "connect"
	Disconnect ChangeType = "disconnect"
)

// ConnectionChange is one edge being added or removed on the canvas.
// A zero Timestamp is replaced by the tracker clock when applied.
type ConnectionChange struct {
	Type      ChangeType    `json:"type"`
	Edge      flow.Edge     `json:"edge"`
	Timestamp time.Time     `json:"timestamp"`
	Metadata  flow.Metadata `json:"metadata,omitempty"`
}

// ConnectionRecord tracks the handles in use on one node.
type ConnectionRecord struct {
	SourceHandles []string           `json:"_connectedSourceHandleIds"`
	TargetHandles []string           `json:"_connectedTargetHandleIds"`
	History       []ConnectionChange `json:"_connectionHistory,omitempty"`
	LastModified  time.Time          `json:"_lastModified"`
}

// ConnectionTracker applies connection changes to per-node handle records.
// It is a short-lived builder: create one per batch of changes, apply them,
// then read [ConnectionTracker.Records] or write the result back with
// [ConnectionTracker.ApplyTo].
//
// A ConnectionTracker is not safe for concurrent use.
type ConnectionTracker struct {
	ix           *flow.Index
	records      map[string]*ConnectionRecord
	now          func() time.Time
	historyLimit int
}

// TrackerOption configures a [ConnectionTracker].
type TrackerOption func(*ConnectionTracker)

// WithTrackerClock sets the clock used for timestamps.
func WithTrackerClock(now func() time.Time) TrackerOption {
	return func(t *ConnectionTracker) { t.now = now }
}

// WithHistoryLimit keeps at most n history entries per node, dropping the
// oldest. Zero or less keeps everything.
func WithHistoryLimit(n int) TrackerOption {
	return func(t *ConnectionTracker) { t.historyLimit = n }
}

// NewConnectionTracker returns a tracker over nodes. Records are created
// lazily from each node's current connected-handle sets.
func NewConnectionTracker(nodes []flow.Node, opts ...TrackerOption) *ConnectionTracker {
	t := &ConnectionTracker{
		ix:      flow.NewIndex(nodes, nil),
		records: make(map[string]*ConnectionRecord),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Apply processes changes in order. A connect adds the handle to the
// endpoint's set when missing; a disconnect removes it when present. Changes
// whose edge names neither endpoint are ignored, as are endpoints that do not
// exist. Both operations are idempotent.
func (t *ConnectionTracker) Apply(changes ...ConnectionChange) *ConnectionTracker {
	for _, c := range changes {
		if c.Edge.Source == "" && c.Edge.Target == "" {
			continue
		}
		if c.Timestamp.IsZero() {
			c.Timestamp = t.now()
		}
		if rec := t.record(c.Edge.Source); rec != nil {
			rec.SourceHandles = applyHandle(rec.SourceHandles, c.Edge.SourceHandleOrDefault(), c.Type)
			t.log(rec, c)
		}
		if rec := t.record(c.Edge.Target); rec != nil {
			rec.TargetHandles = applyHandle(rec.TargetHandles, c.Edge.TargetHandleOrDefault(), c.Type)
			t.log(rec, c)
		}
	}
	return t
}

// Records returns the records of every node touched so far, keyed by id.
func (t *ConnectionTracker) Records() map[string]*ConnectionRecord {
	return t.records
}

// Record returns the record of one node, if it was touched.
func (t *ConnectionTracker) Record(id string) (*ConnectionRecord, bool) {
	rec, ok := t.records[id]
	return rec, ok
}

// ApplyTo returns copies of nodes with the tracked handle sets written into
// their data. Nodes without a record are copied unchanged.
func (t *ConnectionTracker) ApplyTo(nodes []flow.Node) []flow.Node {
	out := flow.CloneNodes(nodes)
	for i := range out {
		rec, ok := t.records[out[i].ID]
		if !ok {
			continue
		}
		out[i].Data.ConnectedSourceHandles = slices.Clone(rec.SourceHandles)
		out[i].Data.ConnectedTargetHandles = slices.Clone(rec.TargetHandles)
	}
	return out
}

func (t *ConnectionTracker) record(id string) *ConnectionRecord {
	if id == "" {
		return nil
	}
	if rec, ok := t.records[id]; ok {
		return rec
	}
	n, ok := t.ix.Node(id)
	if !ok {
		return nil
	}
	rec := &ConnectionRecord{
		SourceHandles: slices.Clone(n.Data.ConnectedSourceHandles),
		TargetHandles: slices.Clone(n.Data.ConnectedTargetHandles),
		LastModified:  t.now(),
	}
	t.records[id] = rec
	return rec
}

func (t *ConnectionTracker) log(rec *ConnectionRecord, c ConnectionChange) {
	rec.LastModified = t.now()
	rec.History = append(rec.History, c)
	if t.historyLimit > 0 && len(rec.History) > t.historyLimit {
		rec.History = slices.Delete(rec.History, 0, len(rec.History)-t.historyLimit)
	}
}

func applyHandle(handles []string, h string, typ ChangeType) []string {
	switch typ {
	case Connect:
		if !slices.Contains(handles, h) {
			handles = append(handles, h)
		}
	case Disconnect:
		if i := slices.Index(handles, h); i >= 0 {
			handles = slices.Delete(handles, i, i+1)
		}
	}
	return handles
}

// ComputeConnectionMap applies changes to a fresh tracker over nodes and
// returns the resulting records.
func ComputeConnectionMap(changes []ConnectionChange, nodes []flow.Node, opts ...TrackerOption) map[string]*ConnectionRecord {
	return NewConnectionTracker(nodes, opts...).Apply(changes...).Records()
}
