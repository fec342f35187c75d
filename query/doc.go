// Package query parses and evaluates the recursive element query
// language against an element collection.
//
// A query specification is a map from field name to either a literal
// string or an object:
//
//	{"label": "text-btn"}
//	{"label": {"value": "btn", "contains": true}}
//	{"text": {"value": "update", "case_sensitive": false}}
//	{"label": "row", "child": {"label": "icon"}}
//
// The label and text fields match element attributes. The relation
// fields (child, parent, left, right, up, down) each hold a nested
// specification and are evaluated recursively.
//
// # Evaluation order
//
// Evaluation applies the base label/text filter first, then the
// relation steps in the fixed order child, parent, left, right, up,
// down. Each relation step replaces the working set with the related
// elements, so relations compose sequentially rather than as
// intersected constraints: {"parent": ..., "left": ...} resolves the
// parents first and then finds elements to the left of those parents.
// This ordering is part of the observable contract.
package query
