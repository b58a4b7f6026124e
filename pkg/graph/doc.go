// Package graph provides the serialization format for computed family
// layouts.
//
// A [layout.Result] holds pointers into the caller's person graph and is
// not meant to leave the process. [FromResult] flattens it into a [Layout],
// which is what kinship writes to JSON files, returns from its HTTP API and
// keeps in caches and stores.
//
// # Core Types
//
//   - [Layout]: root, configuration, nodes, edges and the growth sequence
//   - [Node]: one placed person with its relationship to the root
//   - [Edge]: a parent, spouse or sibling link for drawing
//   - [Frame]: one step of the growth sequence
//
// # Usage
//
//	res, err := layout.Compute(people, "anna", layout.Options{})
//	if err != nil {
//		return err
//	}
//	l, err := graph.FromResult(res, language.English, true)
//	if err != nil {
//		return err
//	}
//	return graph.WriteLayoutFile(l, "anna.layout.json")
//
// [UnmarshalLayout] rejects documents without nodes or whose root has no
// node, with an INVALID_FORMAT error.
package graph
