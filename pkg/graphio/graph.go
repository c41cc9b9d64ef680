package graphio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/wfgraph/pkg/errors"
	"github.com/matzehuels/wfgraph/pkg/flow"
)

// Format is a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	if err := errors.ValidateGraphFilename(path); err != nil {
		return "", err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return FormatJSON, nil
}

// =============================================================================
// Graph Serialization API
// =============================================================================

// Marshal encodes g as compact JSON. The output is stable for equal graphs
// and is used as cache key material.
func Marshal(g flow.Graph) ([]byte, error) {
	data, err := json.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return data, nil
}

// MarshalFormat encodes g as indented JSON or as YAML.
func MarshalFormat(g flow.Graph, f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, g, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a graph document and validates its ids.
func Unmarshal(data []byte, f Format) (flow.Graph, error) {
	if f == FormatYAML {
		js, err := yamlToJSON(data)
		if err != nil {
			return flow.Graph{}, err
		}
		data = js
	}
	var g flow.Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return flow.Graph{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode graph")
	}
	if err := flow.Validate(g.Nodes, g.Edges); err != nil {
		return flow.Graph{}, err
	}
	return g, nil
}

// Write encodes g to w.
func Write(w io.Writer, g flow.Graph, f Format) error {
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if f == FormatYAML {
		if data, err = jsonToYAML(data); err != nil {
			return err
		}
	} else {
		data = append(data, '\n')
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// Read decodes a graph document from r.
func Read(r io.Reader, f Format) (flow.Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return flow.Graph{}, fmt.Errorf("read: %w", err)
	}
	return Unmarshal(data, f)
}

// ReadFile reads a graph file, choosing the format from its extension.
func ReadFile(path string) (flow.Graph, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return flow.Graph{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return flow.Graph{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "graph file %s", path)
		}
		return flow.Graph{}, fmt.Errorf("read %s: %w", path, err)
	}
	g, err := Unmarshal(data, f)
	if err != nil {
		return flow.Graph{}, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// WriteFile writes g to path, choosing the format from its extension.
// The file is created with 0644 permissions.
func WriteFile(g flow.Graph, path string) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := MarshalFormat(g, f)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// =============================================================================
// Internal Implementation
// =============================================================================

func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml")
	}
	js, err := json.Marshal(normalizeYAML(doc))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "convert yaml")
	}
	return js, nil
}

// normalizeYAML turns the map[any]any values yaml produces for non-string
// keys into map[string]any so encoding/json accepts them.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = normalizeYAML(e)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[fmt.Sprint(k)] = normalizeYAML(e)
		}
		return out
	case []any:
		for i, e := range t {
			t[i] = normalizeYAML(e)
		}
		return t
	}
	return v
}

// jsonToYAML re-encodes JSON as block-style YAML, keeping key order. JSON is
// valid YAML, so it is parsed into a node tree and only the styles change.
func jsonToYAML(data []byte) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("convert to yaml: %w", err)
	}
	clearStyle(&doc)
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

func clearStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		clearStyle(c)
	}
}
