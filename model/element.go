package model

import (
	"encoding/json"
	"reflect"
	"strconv"
)

// LabelOCR is the label assigned to elements synthesized from OCR
// fragments that overlap no detector element.
const LabelOCR = "ocr_element"

// AttrText is the attribute key under which merged OCR text is stored.
const AttrText = "text"

// BoundingRect is the (x, y, width, height) form of an element's box,
// redundant with the corner coordinates but kept for consumers that
// expect this shape on the wire.
type BoundingRect struct {
	X, Y, Width, Height int
}

// Element is one rectangular screen region: a detector hit or a region
// synthesized from text recognition. Elements are immutable by
// convention once a conversion pass has produced them.
type Element struct {
	// ID is unique within one conversion pass. It is the element's
	// sequential index at creation time and is reassigned when an
	// element is appended after the merge pass; it is not stable
	// across passes.
	ID string

	// Label is the detector's class name, or LabelOCR for elements
	// synthesized purely from text recognition.
	Label string

	TopLeft      Point
	BottomRight  Point
	Center       Point
	BoundingRect BoundingRect

	// Confidence is the detector's score in [0,1]; fixed at 1.0 for
	// OCR-synthesized elements.
	Confidence float64

	// Attrs holds free-form attributes. The merge pass populates
	// AttrText; other keys are open to external collaborators.
	Attrs map[string]any
}

// NewElement creates an element covering rect. Corner order is
// normalized, the center and bounding rect are derived, and Attrs
// starts empty but non-nil.
func NewElement(id, label string, rect Rect, confidence float64) Element {
	return Element{
		ID:          id,
		Label:       label,
		TopLeft:     rect.TopLeft(),
		BottomRight: rect.BottomRight(),
		Center:      rect.Center(),
		BoundingRect: BoundingRect{
			X:      rect.XMin,
			Y:      rect.YMin,
			Width:  rect.Width(),
			Height: rect.Height(),
		},
		Confidence: confidence,
		Attrs:      map[string]any{},
	}
}

// Rect returns the element's box in corner form.
func (e Element) Rect() Rect {
	return Rect{
		XMin: e.TopLeft.X,
		YMin: e.TopLeft.Y,
		XMax: e.BottomRight.X,
		YMax: e.BottomRight.Y,
	}
}

// Text returns the merged OCR text and whether the attribute is set.
func (e Element) Text() (string, bool) {
	v, ok := e.Attrs[AttrText]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Equal reports structural equality: every field must match, with Attrs
// compared by content rather than reference. Deduplication keys on this,
// so two elements carrying identical data are the same element even
// when they were produced through different query branches.
func (e Element) Equal(other Element) bool {
	return e.ID == other.ID &&
		e.Label == other.Label &&
		e.TopLeft == other.TopLeft &&
		e.BottomRight == other.BottomRight &&
		e.Center == other.Center &&
		e.BoundingRect == other.BoundingRect &&
		e.Confidence == other.Confidence &&
		reflect.DeepEqual(e.Attrs, other.Attrs)
}

// elementJSON is the wire shape. Coordinate pairs serialize as arrays
// for compatibility with existing consumers.
type elementJSON struct {
	ID           string         `json:"id"`
	Label        string         `json:"label"`
	CoordsTL     [2]int         `json:"coords_tl"`
	CoordsBR     [2]int         `json:"coords_br"`
	Center       [2]int         `json:"center"`
	BoundingRect [4]int         `json:"bounding_rect"`
	Confidence   float64        `json:"confidence"`
	Attrs        map[string]any `json:"attrs"`
}

// MarshalJSON serializes the element in its wire shape.
func (e Element) MarshalJSON() ([]byte, error) {
	return json.Marshal(elementJSON{
		ID:       e.ID,
		Label:    e.Label,
		CoordsTL: [2]int{e.TopLeft.X, e.TopLeft.Y},
		CoordsBR: [2]int{e.BottomRight.X, e.BottomRight.Y},
		Center:   [2]int{e.Center.X, e.Center.Y},
		BoundingRect: [4]int{
			e.BoundingRect.X,
			e.BoundingRect.Y,
			e.BoundingRect.Width,
			e.BoundingRect.Height,
		},
		Confidence: e.Confidence,
		Attrs:      e.Attrs,
	})
}

// UnmarshalJSON parses the wire shape back into an Element.
func (e *Element) UnmarshalJSON(data []byte) error {
	var w elementJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	e.ID = w.ID
	e.Label = w.Label
	e.TopLeft = Point{X: w.CoordsTL[0], Y: w.CoordsTL[1]}
	e.BottomRight = Point{X: w.CoordsBR[0], Y: w.CoordsBR[1]}
	e.Center = Point{X: w.Center[0], Y: w.Center[1]}
	e.BoundingRect = BoundingRect{
		X:      w.BoundingRect[0],
		Y:      w.BoundingRect[1],
		Width:  w.BoundingRect[2],
		Height: w.BoundingRect[3],
	}
	e.Confidence = w.Confidence
	e.Attrs = w.Attrs
	if e.Attrs == nil {
		e.Attrs = map[string]any{}
	}
	return nil
}

// Elements is the ordered element collection for one conversion pass.
// Insertion order is semantically meaningful: iteration and query
// results always follow it.
type Elements []Element

// Append adds an element, assigning it the next sequential index as its
// ID. The merge pass uses this when materializing OCR elements after
// the detector elements.
func (els *Elements) Append(e Element) {
	e.ID = strconv.Itoa(len(*els))
	*els = append(*els, e)
}

// Dedup returns the subsequence of first occurrences, preserving the
// original order. Equality is structural (Element.Equal).
func (els Elements) Dedup() Elements {
	out := make(Elements, 0, len(els))
	for _, e := range els {
		seen := false
		for _, kept := range out {
			if e.Equal(kept) {
				seen = true
				break
			}
		}
		if !seen {
			out = append(out, e)
		}
	}
	return out
}

// Fragment is one piece of recognized text with its axis-aligned box,
// as produced by the OCR collaborator.
type Fragment struct {
	Rect Rect
	Text string
}
