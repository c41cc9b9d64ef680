package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Keyer builds cache keys for pipeline results.
type Keyer interface {
	// NormalizeKey keys a normalized graph.
	NormalizeKey(graphHash string, opts NormalizeKeyOpts) string

	// LayoutKey keys a computed layout.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string

	// AnalysisKey keys a tree analysis report.
	AnalysisKey(graphHash string, opts AnalysisKeyOpts) string
}

// NormalizeKeyOpts holds the inputs besides the graph that change a
// normalization result.
type NormalizeKeyOpts struct {
	SelectedNodeID string `json:"selected_node_id,omitempty"`
}

// LayoutKeyOpts holds the inputs besides the graph that change a layout.
type LayoutKeyOpts struct {
	// Version identifies the layout algorithm, so results from an older
	// binary are not reused.
	Version string `json:"version"`
}

// AnalysisKeyOpts holds the inputs besides the graph that change an
// analysis report.
type AnalysisKeyOpts struct {
	// Root is the explicit walk root, empty for the entry node.
	Root string `json:"root,omitempty"`
}

// DefaultKeyer produces "kind:sha256" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// NormalizeKey implements Keyer.
func (DefaultKeyer) NormalizeKey(graphHash string, opts NormalizeKeyOpts) string {
	return hashKey("normalize", graphHash, opts)
}

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// AnalysisKey implements Keyer.
func (DefaultKeyer) AnalysisKey(graphHash string, opts AnalysisKeyOpts) string {
	return hashKey("analysis", graphHash, opts)
}

// hashKey generates a key of the form prefix:sha256(parts...).
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}

// Hash returns the hex SHA-256 digest of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
