// Package document provides a JSON document tree with insertion-ordered
// objects and deterministic encoding.
//
// The standard library decodes JSON objects into Go maps, which discard key
// order. Identity hashing needs both orderings: insertion order when field
// declaration order is tracked, sorted order when it is not. Value keeps
// object members in a slice so either encoding is available:
//
//	doc := document.Object().
//		Set("type", document.String("object")).
//		Set("required", document.Array(document.String("id")))
//
//	insertion := document.Marshal(doc, false) // keys in Set order
//	canonical := document.Marshal(doc, true)  // keys sorted at every level
//
// Parse and ParseYAML decode existing documents while preserving source key
// order; FromAny converts arbitrary JSON-serializable Go values.
package document
