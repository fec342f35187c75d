// Package screenpom converts detector and OCR output for one screen
// frame into a queryable page object model (POM).
//
// Basic usage:
//
//	pom := screenpom.Convert(detections)
//	buttons, err := pom.GetElements(map[string]any{"label": "text-btn"})
//
// With OCR text merged in:
//
//	pom := screenpom.ConvertWithOCR(detections, fragments)
//	matches, err := pom.GetElements(map[string]any{
//	    "text": map[string]any{"value": "update", "case_sensitive": false},
//	})
//
// A POM is an immutable snapshot of one conversion pass. Queries never
// mutate it, each evaluation is independent, and a new frame means a
// new POM.
package screenpom

import (
	"encoding/json"
	"image"

	"github.com/screenpom/screenpom/detect"
	"github.com/screenpom/screenpom/merge"
	"github.com/screenpom/screenpom/model"
	"github.com/screenpom/screenpom/query"
	"github.com/screenpom/screenpom/render"
)

// POM is the page object model for one converted frame: a flat,
// ordered collection of elements.
type POM struct {
	elements model.Elements
}

// Convert builds a POM from detector output alone. No text attributes
// are set; use ConvertWithOCR when queries will mention text.
func Convert(detections []detect.Detection) *POM {
	return &POM{elements: detect.Elements(detections)}
}

// ConvertWithOCR builds a POM from detector output and OCR fragments,
// running the merge pass. Every detector element receives a text
// attribute (possibly empty) and orphan fragments become ocr_element
// entries.
func ConvertWithOCR(detections []detect.Detection, fragments []model.Fragment) *POM {
	return &POM{elements: merge.Merge(detect.Elements(detections), fragments)}
}

// FromElements wraps an existing element collection. Useful for tests
// and for consumers that already carry a serialized POM.
func FromElements(elements model.Elements) *POM {
	return &POM{elements: elements}
}

// Elements returns the full element collection in conversion order.
func (p *POM) Elements() model.Elements {
	return p.elements
}

// GetElements returns the elements matching the query specification,
// in collection order. A nil specification returns the full collection
// unfiltered; an empty one matches every element after parsing.
func (p *POM) GetElements(spec map[string]any) (model.Elements, error) {
	if spec == nil {
		return p.elements, nil
	}
	q, err := query.Parse(spec)
	if err != nil {
		return nil, err
	}
	return query.Evaluate(q, p.elements)
}

// ToJSON serializes the element collection as a JSON array in the wire
// shape consumed by external collaborators.
func (p *POM) ToJSON() ([]byte, error) {
	return json.Marshal(p.elements)
}

// ToJSONIndent is ToJSON with indentation.
func (p *POM) ToJSONIndent(prefix, indent string) ([]byte, error) {
	return json.MarshalIndent(p.elements, prefix, indent)
}

// Annotate draws the element boxes and labels onto a copy of src.
func (p *POM) Annotate(src image.Image) *image.RGBA {
	return render.Annotate(src, p.elements)
}
