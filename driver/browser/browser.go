// Package browser implements a driver backend for web pages using
// Playwright. Coordinates reported by the POM map directly onto the
// page viewport, so detector output for a screenshot can drive the
// very page it was captured from.
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/screenpom/screenpom/driver"
	"github.com/screenpom/screenpom/model"
)

// Options configures the launched browser.
type Options struct {
	// Headless defaults to true.
	Headless *bool
	// ViewportWidth/ViewportHeight default to 1280x720.
	ViewportWidth  int
	ViewportHeight int
	// SwipeStep is the wheel delta for directional swipes. Defaults
	// to 400 pixels.
	SwipeStep int
}

// Backend drives a Chromium page through Playwright. It implements
// driver.Backend.
type Backend struct {
	pw        *playwright.Playwright
	browser   playwright.Browser
	page      playwright.Page
	swipeStep int
}

var _ driver.Backend = (*Backend)(nil)

// New launches a browser and opens a blank page.
func New(opts Options) (*Backend, error) {
	headless := true
	if opts.Headless != nil {
		headless = *opts.Headless
	}
	if opts.ViewportWidth == 0 {
		opts.ViewportWidth = 1280
	}
	if opts.ViewportHeight == 0 {
		opts.ViewportHeight = 720
	}
	if opts.SwipeStep == 0 {
		opts.SwipeStep = 400
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	page, err := b.NewPage(playwright.BrowserNewPageOptions{
		Viewport: &playwright.Size{
			Width:  opts.ViewportWidth,
			Height: opts.ViewportHeight,
		},
	})
	if err != nil {
		b.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	return &Backend{pw: pw, browser: b, page: page, swipeStep: opts.SwipeStep}, nil
}

// Goto navigates the page.
func (b *Backend) Goto(url string) error {
	if _, err := b.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
	}); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

// Close shuts down the page, browser, and Playwright runtime.
func (b *Backend) Close() error {
	if err := b.browser.Close(); err != nil {
		return err
	}
	return b.pw.Stop()
}

// Screenshot captures the current viewport as PNG bytes.
func (b *Backend) Screenshot(ctx context.Context) ([]byte, error) {
	return b.page.Screenshot(playwright.PageScreenshotOptions{
		Type: playwright.ScreenshotTypePng,
	})
}

// Click clicks at the given viewport coordinates.
func (b *Backend) Click(ctx context.Context, x, y int, opts driver.ClickOptions) error {
	return b.page.Mouse().Click(float64(x), float64(y), playwright.MouseClickOptions{
		Button:     mouseButton(opts.Button),
		ClickCount: playwright.Int(opts.Times),
		Delay:      playwright.Float(float64(opts.Interval.Milliseconds())),
	})
}

// SendKeys types the key sequence into the focused element.
func (b *Backend) SendKeys(ctx context.Context, keys string) error {
	return b.page.Keyboard().Type(keys)
}

// Swipe scrolls the page by the distance between the two points using
// the mouse wheel, which is the closest browser equivalent of a swipe.
func (b *Backend) Swipe(ctx context.Context, fromX, fromY, toX, toY int) error {
	if err := b.page.Mouse().Move(float64(fromX), float64(fromY)); err != nil {
		return err
	}
	return b.page.Mouse().Wheel(float64(fromX-toX), float64(fromY-toY))
}

// SwipeDirection scrolls one step in the given direction.
func (b *Backend) SwipeDirection(ctx context.Context, side model.Side) error {
	step := float64(b.swipeStep)
	switch side {
	case model.SideUp:
		return b.page.Mouse().Wheel(0, -step)
	case model.SideDown:
		return b.page.Mouse().Wheel(0, step)
	case model.SideLeft:
		return b.page.Mouse().Wheel(-step, 0)
	case model.SideRight:
		return b.page.Mouse().Wheel(step, 0)
	default:
		return fmt.Errorf("%w: %q", model.ErrInvalidSide, side)
	}
}

// Hover moves the pointer to the given coordinates.
func (b *Backend) Hover(ctx context.Context, x, y int) error {
	return b.page.Mouse().Move(float64(x), float64(y))
}

// DragDrop presses at the start point, moves to the end point in steps
// spread over the duration, and releases.
func (b *Backend) DragDrop(ctx context.Context, fromX, fromY, toX, toY int, duration time.Duration) error {
	mouse := b.page.Mouse()
	if err := mouse.Move(float64(fromX), float64(fromY)); err != nil {
		return err
	}
	if err := mouse.Down(); err != nil {
		return err
	}

	const steps = 10
	for i := 1; i <= steps; i++ {
		x := fromX + (toX-fromX)*i/steps
		y := fromY + (toY-fromY)*i/steps
		if err := mouse.Move(float64(x), float64(y)); err != nil {
			mouse.Up()
			return err
		}
		time.Sleep(duration / steps)
	}
	return mouse.Up()
}

func mouseButton(b driver.Button) *playwright.MouseButton {
	switch b {
	case driver.ButtonSecondary:
		return playwright.MouseButtonRight
	case driver.ButtonMiddle:
		return playwright.MouseButtonMiddle
	default:
		return playwright.MouseButtonLeft
	}
}
