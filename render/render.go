// Package render draws annotated frames: the source image with each
// element's box and label painted on top. The output is a debugging
// aid and is never consumed by the query engine.
package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/screenpom/screenpom/model"
)

var (
	detectorColor = color.RGBA{R: 255, A: 255}
	ocrColor      = color.RGBA{G: 255, A: 255}
)

const borderThickness = 3

// Annotate copies src and draws each element's bounding box and label
// onto the copy. OCR-synthesized elements are drawn in green, detector
// elements in red.
func Annotate(src image.Image, elements model.Elements) *image.RGBA {
	bounds := src.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, src, bounds.Min, draw.Src)

	for _, el := range elements {
		c := detectorColor
		if el.Label == model.LabelOCR {
			c = ocrColor
		}
		drawBorder(out, el.Rect(), c)
		drawLabel(out, el.Label, el.TopLeft.X, el.TopLeft.Y-10, c)
	}
	return out
}

func drawBorder(img *image.RGBA, r model.Rect, c color.RGBA) {
	for t := 0; t < borderThickness; t++ {
		for x := r.XMin - t; x <= r.XMax+t; x++ {
			set(img, x, r.YMin-t, c)
			set(img, x, r.YMax+t, c)
		}
		for y := r.YMin - t; y <= r.YMax+t; y++ {
			set(img, r.XMin-t, y, c)
			set(img, r.XMax+t, y, c)
		}
	}
}

func set(img *image.RGBA, x, y int, c color.RGBA) {
	if (image.Point{X: x, Y: y}).In(img.Bounds()) {
		img.SetRGBA(x, y, c)
	}
}

func drawLabel(img *image.RGBA, label string, x, y int, c color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(label)
}
