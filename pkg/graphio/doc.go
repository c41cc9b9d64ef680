// Package graphio reads and writes workflow graph documents and layouts.
//
// A graph document is the canvas snapshot:
//
//	{
//	  "nodes": [{"id": "start", "data": {"type": "Start"}}],
//	  "edges": [{"id": "e1", "source": "start", "target": "llm"}],
//	  "viewport": {"x": 0, "y": 0, "zoom": 0.7}
//	}
//
// The same document may be written as YAML. Keys the engine does not model
// survive a round trip in either format.
//
// # Formats
//
// The format follows the file extension:
//
//	graphio.ReadFile("flow.json")  // JSON
//	graphio.ReadFile("flow.yaml")  // YAML (.yaml or .yml)
//
// YAML documents are converted to JSON before decoding, so both formats go
// through the same field mapping in pkg/flow.
//
// # Hashing
//
// [Marshal] produces compact JSON with a stable key order. The pipeline
// hashes it to key cached layout and analysis results.
//
// # Validation
//
// Every read runs [flow.Validate] and fails on empty or duplicate ids.
package graphio
