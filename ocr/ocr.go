//go:build ocr

// Package ocr provides text recognition for screen frames, producing
// positioned text fragments for the merge pass.
//
// This package wraps the Tesseract OCR engine via gosseract. It
// requires Tesseract to be installed on the system and the "ocr" build
// tag to be set:
//
//	go build -tags ocr
//
// On macOS, install Tesseract via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/screenpom/screenpom/model"
)

// ErrOCRNotEnabled is defined in both build variants so callers can
// reference it unconditionally. It is never returned when OCR support
// is compiled in.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Client wraps Tesseract for text recognition.
type Client struct {
	client *gosseract.Client
}

// New creates a new OCR client. The client should be closed when no
// longer needed to release resources.
func New() (*Client, error) {
	return &Client{client: gosseract.NewClient()}, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// SetLanguage sets the language(s) for recognition. Multiple languages
// can be specified as a "+" separated string (e.g. "eng+fra"). Default
// is "eng".
func (c *Client) SetLanguage(lang string) error {
	return c.client.SetLanguage(lang)
}

// Fragments recognizes text in image data (PNG, TIFF, JPEG, etc.) and
// returns one fragment per recognized text line, in recognition order.
// Lines with no visible text are dropped.
func (c *Client) Fragments(image []byte) ([]model.Fragment, error) {
	if err := c.client.SetImageFromBytes(image); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := c.client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	fragments := make([]model.Fragment, 0, len(boxes))
	for _, box := range boxes {
		text := strings.TrimSpace(box.Word)
		if text == "" {
			continue
		}
		fragments = append(fragments, model.Fragment{
			Rect: model.NewRect(box.Box.Min.X, box.Box.Min.Y, box.Box.Max.X, box.Box.Max.Y),
			Text: text,
		})
	}
	return fragments, nil
}
