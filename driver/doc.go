// Package driver layers UI automation on top of the POM: it captures a
// frame through a [Backend], converts it, queries it, and drives
// pointer and keyboard input against the resulting element
// coordinates.
//
// A [Driver] re-captures and re-converts the screen on every lookup;
// nothing is cached between frames. OCR runs only when the query
// mentions text or targets ocr_element, since text recognition is the
// expensive step.
//
// [Handle] values are returned even when no element matched, so a
// handle can be used to wait for an element to appear:
//
//	h, err := d.Element(ctx, map[string]any{"text": "Continue"})
//	if err != nil {
//	    return err
//	}
//	if err := h.Click(ctx, driver.ClickOptions{}); err != nil {
//	    return err
//	}
//
// Click and the other actions wait for visibility first, bounded by
// the context deadline or the driver's configured timeout.
package driver
