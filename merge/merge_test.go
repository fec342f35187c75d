package merge

import (
	"testing"

	"github.com/screenpom/screenpom/model"
)

func detected(rects ...model.Rect) model.Elements {
	var els model.Elements
	for _, r := range rects {
		els.Append(model.NewElement("", "widget", r, 0.8))
	}
	return els
}

func TestMergeOverlappingFragment(t *testing.T) {
	els := detected(model.NewRect(0, 0, 10, 10))
	frags := []model.Fragment{{Rect: model.NewRect(0, 0, 5, 5), Text: "Hi"}}

	out := Merge(els, frags)

	if len(out) != 1 {
		t.Fatalf("got %d elements, want 1", len(out))
	}
	if text, _ := out[0].Text(); text != "Hi" {
		t.Errorf("text = %q, want \"Hi\"", text)
	}
}

func TestMergeConcatenatesInFragmentOrder(t *testing.T) {
	els := detected(model.NewRect(0, 0, 100, 20))
	frags := []model.Fragment{
		{Rect: model.NewRect(0, 0, 30, 20), Text: "Your"},
		{Rect: model.NewRect(35, 0, 60, 20), Text: "business"},
		{Rect: model.NewRect(65, 0, 100, 20), Text: "rocks"},
	}

	out := Merge(els, frags)

	if text, _ := out[0].Text(); text != "Your business rocks" {
		t.Errorf("text = %q, want \"Your business rocks\"", text)
	}
}

func TestMergeNonOverlappingFragmentBecomesElement(t *testing.T) {
	els := detected(model.NewRect(0, 0, 10, 10))
	frags := []model.Fragment{{Rect: model.NewRect(200, 200, 210, 210), Text: "Bye"}}

	out := Merge(els, frags)

	if len(out) != 2 {
		t.Fatalf("got %d elements, want 2", len(out))
	}
	synth := out[1]
	if synth.Label != model.LabelOCR {
		t.Errorf("label = %q, want %q", synth.Label, model.LabelOCR)
	}
	if synth.Confidence != 1.0 {
		t.Errorf("confidence = %v, want 1.0", synth.Confidence)
	}
	if text, _ := synth.Text(); text != "Bye" {
		t.Errorf("text = %q, want \"Bye\"", text)
	}
	if synth.ID != "1" {
		t.Errorf("id = %q, want \"1\" (sequence continues after detector elements)", synth.ID)
	}
	// The fragment did not fold into the detector element, whose text
	// stays empty but present.
	if text, ok := out[0].Text(); !ok || text != "" {
		t.Errorf("detector element text = (%q, %v), want (\"\", true)", text, ok)
	}
}

func TestMergeEveryFragmentRepresentedOnce(t *testing.T) {
	els := detected(model.NewRect(0, 0, 10, 10), model.NewRect(50, 50, 60, 60))
	frags := []model.Fragment{
		{Rect: model.NewRect(2, 2, 8, 8), Text: "inside"},
		{Rect: model.NewRect(100, 100, 110, 110), Text: "orphan-a"},
		{Rect: model.NewRect(55, 55, 58, 58), Text: "nested"},
		{Rect: model.NewRect(200, 0, 210, 10), Text: "orphan-b"},
	}

	out := Merge(els, frags)

	if len(out) != 4 {
		t.Fatalf("got %d elements, want 4", len(out))
	}
	if text, _ := out[0].Text(); text != "inside" {
		t.Errorf("element 0 text = %q", text)
	}
	if text, _ := out[1].Text(); text != "nested" {
		t.Errorf("element 1 text = %q", text)
	}
	// Orphans append in fragment order with sequential ids.
	if text, _ := out[2].Text(); text != "orphan-a" {
		t.Errorf("element 2 text = %q", text)
	}
	if text, _ := out[3].Text(); text != "orphan-b" {
		t.Errorf("element 3 text = %q", text)
	}
	if out[2].ID != "2" || out[3].ID != "3" {
		t.Errorf("orphan ids = %q, %q, want 2, 3", out[2].ID, out[3].ID)
	}
}

func TestMergeBoundaryTouchCountsAsOverlap(t *testing.T) {
	els := detected(model.NewRect(0, 0, 10, 10))
	frags := []model.Fragment{{Rect: model.NewRect(10, 10, 20, 20), Text: "edge"}}

	out := Merge(els, frags)

	if len(out) != 1 {
		t.Fatalf("got %d elements, want 1 (touch merges, no synthesis)", len(out))
	}
	if text, _ := out[0].Text(); text != "edge" {
		t.Errorf("text = %q, want \"edge\"", text)
	}
}

func TestMergeDoesNotMutateInput(t *testing.T) {
	els := detected(model.NewRect(0, 0, 10, 10))
	frags := []model.Fragment{{Rect: model.NewRect(0, 0, 5, 5), Text: "Hi"}}

	Merge(els, frags)

	if _, ok := els[0].Attrs[model.AttrText]; ok {
		t.Error("input element attrs were mutated")
	}
}

func TestMergeNormalizesToNFC(t *testing.T) {
	els := detected(model.NewRect(0, 0, 10, 10))
	// "é" as 'e' + combining acute accent.
	frags := []model.Fragment{{Rect: model.NewRect(0, 0, 5, 5), Text: "café"}}

	out := Merge(els, frags)

	if text, _ := out[0].Text(); text != "café" {
		t.Errorf("text = %q, want composed form", text)
	}
}
