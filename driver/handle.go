package driver

import (
	"context"
	"fmt"
	"time"

	"github.com/screenpom/screenpom/model"
)

// Handle wraps one element together with the query that found it, so
// actions can re-resolve the element against fresh frames.
type Handle struct {
	driver *Driver
	spec   map[string]any
	el     model.Element
	found  bool
}

// Element returns the resolved element. The zero element is returned
// until the handle has been resolved.
func (h *Handle) Element() model.Element {
	return h.el
}

// Found reports whether the handle currently holds a resolved element.
func (h *Handle) Found() bool {
	return h.found
}

// WaitVisible blocks until the element is present on screen, resolving
// the handle against the frame where it first appeared.
func (h *Handle) WaitVisible(ctx context.Context) error {
	if !h.found {
		els, err := h.driver.waitFor(ctx, h.spec, func(els model.Elements) bool {
			return len(els) > 0
		}, "element not visible")
		if err != nil {
			return err
		}
		h.el = els[0]
		h.found = true
	}

	h.driver.logf("action: wait_visible - element coords: %v - element label: %q - element attrs: %v",
		h.el.Center, h.el.Label, h.el.Attrs)
	return nil
}

// WaitNotVisible blocks until no element matches the handle's query.
func (h *Handle) WaitNotVisible(ctx context.Context) error {
	_, err := h.driver.waitFor(ctx, h.spec, func(els model.Elements) bool {
		return len(els) == 0
	}, "element still visible")
	if err != nil {
		return err
	}

	h.driver.logf("action: wait_not_visible - element label: %q", h.el.Label)
	return nil
}

// Click waits for the element and clicks it at its center plus the
// configured offset.
func (h *Handle) Click(ctx context.Context, opts ClickOptions) error {
	if err := h.WaitVisible(ctx); err != nil {
		return err
	}
	opts = opts.withDefaults()

	h.driver.logf("action: click - element coords: %v - element label: %q - element attrs: %v",
		h.el.Center, h.el.Label, h.el.Attrs)
	return h.driver.backend.Click(ctx, h.el.Center.X+opts.Offset.X, h.el.Center.Y+opts.Offset.Y, opts)
}

// SendKeys focuses the element with a click, then types the key
// sequence.
func (h *Handle) SendKeys(ctx context.Context, keys string) error {
	if err := h.Click(ctx, ClickOptions{}); err != nil {
		return err
	}

	h.driver.logf("action: send_keys - element coords: %v - element label: %q",
		h.el.Center, h.el.Label)
	return h.driver.backend.SendKeys(ctx, keys)
}

// Hover waits for the element and moves the pointer to its center plus
// offset.
func (h *Handle) Hover(ctx context.Context, offset model.Point) error {
	if err := h.WaitVisible(ctx); err != nil {
		return err
	}

	h.driver.logf("action: hover - element coords: %v - element label: %q",
		h.el.Center, h.el.Label)
	return h.driver.backend.Hover(ctx, h.el.Center.X+offset.X, h.el.Center.Y+offset.Y)
}

// SwipeBy swipes from the element's center by the given delta.
func (h *Handle) SwipeBy(ctx context.Context, delta model.Point) error {
	if err := h.WaitVisible(ctx); err != nil {
		return err
	}
	c := h.el.Center
	return h.driver.backend.Swipe(ctx, c.X, c.Y, c.X+delta.X, c.Y+delta.Y)
}

// SwipeTo swipes from this element's center to another element's
// center, waiting for both.
func (h *Handle) SwipeTo(ctx context.Context, target *Handle) error {
	if err := h.WaitVisible(ctx); err != nil {
		return err
	}
	if err := target.WaitVisible(ctx); err != nil {
		return err
	}
	from, to := h.el.Center, target.el.Center
	return h.driver.backend.Swipe(ctx, from.X, from.Y, to.X, to.Y)
}

// SwipeUntilVisible swipes in the given direction until the element
// appears, bounded by the driver's swipe limit, then resolves the
// handle.
func (h *Handle) SwipeUntilVisible(ctx context.Context, side model.Side) error {
	for i := 0; i < h.driver.opts.SwipeLimit; i++ {
		els, err := h.driver.lookup(ctx, h.spec)
		if err != nil {
			return err
		}
		if len(els) > 0 {
			break
		}
		if err := h.driver.backend.SwipeDirection(ctx, side); err != nil {
			return err
		}
	}
	return h.WaitVisible(ctx)
}

// DragDropTo waits for the element and drags it from its center to the
// given coordinates.
func (h *Handle) DragDropTo(ctx context.Context, end model.Point, duration time.Duration) error {
	if err := h.WaitVisible(ctx); err != nil {
		return err
	}
	c := h.el.Center

	h.driver.logf("action: drag_drop - start coords: %v - end coords: %v", c, end)
	return h.driver.backend.DragDrop(ctx, c.X, c.Y, end.X, end.Y, duration)
}

// DragDropBy drags the element from its center by the given delta.
func (h *Handle) DragDropBy(ctx context.Context, delta model.Point, duration time.Duration) error {
	if err := h.WaitVisible(ctx); err != nil {
		return err
	}
	c := h.el.Center
	end := model.Point{X: c.X + delta.X, Y: c.Y + delta.Y}
	return h.DragDropTo(ctx, end, duration)
}

// DragDropFrom waits for the element and drags from the given
// coordinates onto the element's center.
func (h *Handle) DragDropFrom(ctx context.Context, start model.Point, duration time.Duration) error {
	if err := h.WaitVisible(ctx); err != nil {
		return err
	}
	c := h.el.Center

	h.driver.logf("action: drag_drop - start coords: %v - end coords: %v", start, c)
	return h.driver.backend.DragDrop(ctx, start.X, start.Y, c.X, c.Y, duration)
}

// String describes the handle for logs and errors.
func (h *Handle) String() string {
	if !h.found {
		return fmt.Sprintf("element(%v, unresolved)", h.spec)
	}
	return fmt.Sprintf("element(%v, id=%s, center=%v)", h.spec, h.el.ID, h.el.Center)
}
