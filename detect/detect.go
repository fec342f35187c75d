// Package detect defines the boundary to the external object detector
// and an HTTP adapter for remote inference services.
package detect

import (
	"context"

	"github.com/screenpom/screenpom/model"
)

// Detection is one labeled box reported by the detector for a frame.
type Detection struct {
	Label       string
	Confidence  float64
	TopLeft     model.Point
	BottomRight model.Point
}

// Detector produces labeled boxes for one image frame, in detection
// order.
type Detector interface {
	Detect(ctx context.Context, frame []byte) ([]Detection, error)
}

// Elements converts detections into an element collection, preserving
// detection order and assigning sequential IDs.
func Elements(detections []Detection) model.Elements {
	els := make(model.Elements, 0, len(detections))
	for _, d := range detections {
		rect := model.NewRect(d.TopLeft.X, d.TopLeft.Y, d.BottomRight.X, d.BottomRight.Y)
		els.Append(model.NewElement("", d.Label, rect, d.Confidence))
	}
	return els
}
