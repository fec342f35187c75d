// Package model provides the data types shared by every stage of the
// POM pipeline: rectangles in screen pixel coordinates, the predicates
// over them, and the element collection produced by a conversion pass.
//
// # Coordinates
//
// All geometry uses the image coordinate convention: the origin is the
// top-left corner of the frame and Y grows downward. A [Rect] is stored
// as its minimum and maximum corners, both inclusive.
//
// # Elements
//
// An [Element] is one detected (or OCR-synthesized) screen region. Each
// conversion pass produces a fresh [Elements] collection; nothing is
// shared or mutated across passes. Element identity is structural: two
// elements carrying the same data compare equal regardless of how they
// were produced, which is what the query engine's deduplication relies
// on.
//
// # Predicates
//
// [Rect.SharesSpace] treats a boundary touch as overlap, while
// [Rect.StrictlyContains] requires the inner box to clear the outer
// boundary on all four sides. The two are intentionally asymmetric.
// [Beside] implements the four directional relations used by spatial
// queries.
package model
