// Package merge reconciles detector output with OCR output into a
// single element collection.
//
// Every OCR fragment ends up represented exactly once: either folded
// into the text attribute of an overlapping detector element, or
// materialized as its own ocr_element appended after the detector
// elements. Detector order comes first, then fragment order for the
// synthesized elements.
package merge

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/screenpom/screenpom/model"
)

// Merge combines detector elements with OCR fragments.
//
// Each detector element receives a text attribute holding the
// space-joined texts of every fragment sharing space with it, in
// fragment order; the key is set even when no fragment overlaps, so
// its presence records that OCR ran. Fragments overlapping no detector
// element become new ocr_element entries with confidence 1.0, their
// IDs continuing the sequence.
//
// Fragment text is normalized to NFC before merging; OCR engines are
// not consistent about composed vs decomposed accents.
func Merge(detected model.Elements, fragments []model.Fragment) model.Elements {
	out := make(model.Elements, 0, len(detected)+len(fragments))

	for _, el := range detected {
		rect := el.Rect()
		var parts []string
		for _, frag := range fragments {
			if rect.SharesSpace(frag.Rect) {
				parts = append(parts, norm.NFC.String(frag.Text))
			}
		}
		el.Attrs = cloneAttrs(el.Attrs)
		el.Attrs[model.AttrText] = strings.Join(parts, " ")
		out = append(out, el)
	}

	for _, frag := range fragments {
		if overlapsAny(frag.Rect, detected) {
			continue
		}
		el := model.NewElement("", model.LabelOCR, frag.Rect, 1.0)
		el.Attrs[model.AttrText] = norm.NFC.String(frag.Text)
		out.Append(el)
	}

	return out
}

func overlapsAny(rect model.Rect, els model.Elements) bool {
	for _, el := range els {
		if el.Rect().SharesSpace(rect) {
			return true
		}
	}
	return false
}

func cloneAttrs(attrs map[string]any) map[string]any {
	out := make(map[string]any, len(attrs)+1)
	for k, v := range attrs {
		out[k] = v
	}
	return out
}
