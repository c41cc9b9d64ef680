package graphio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/wfgraph/pkg/errors"
	"github.com/matzehuels/wfgraph/pkg/flow"
	"github.com/matzehuels/wfgraph/pkg/flow/layout"
)

// LayoutDocument is the on-disk form of a computed layout together with the
// viewport it was applied with.
type LayoutDocument struct {
	Layout   *layout.Layout `json:"layout"`
	Viewport flow.Viewport  `json:"viewport"`
}

// MarshalLayout serializes a layout document to pretty-printed JSON bytes.
func MarshalLayout(doc LayoutDocument) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode layout: %w", err)
	}
	return append(data, '\n'), nil
}

// UnmarshalLayout deserializes a layout document. A document without a
// layout section is rejected.
func UnmarshalLayout(data []byte) (LayoutDocument, error) {
	var doc LayoutDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return LayoutDocument{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode layout")
	}
	if doc.Layout == nil {
		return LayoutDocument{}, errors.New(errors.ErrCodeInvalidFormat, "layout document has no layout section")
	}
	if doc.Layout.Nodes == nil {
		doc.Layout.Nodes = map[string]layout.Placement{}
	}
	return doc, nil
}

// WriteLayout writes a layout document to w.
func WriteLayout(w io.Writer, doc LayoutDocument) error {
	data, err := MarshalLayout(doc)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// ReadLayout reads a layout document from r.
func ReadLayout(r io.Reader) (LayoutDocument, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return LayoutDocument{}, fmt.Errorf("read: %w", err)
	}
	return UnmarshalLayout(data)
}

// WriteLayoutFile writes a layout document to a JSON file.
func WriteLayoutFile(doc LayoutDocument, path string) error {
	data, err := MarshalLayout(doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadLayoutFile reads a layout document from a JSON file.
func ReadLayoutFile(path string) (LayoutDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LayoutDocument{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
