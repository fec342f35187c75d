package driver

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/screenpom/screenpom"
	"github.com/screenpom/screenpom/detect"
	"github.com/screenpom/screenpom/model"
)

// Button identifies a pointer button.
type Button string

const (
	ButtonPrimary   Button = "primary"
	ButtonSecondary Button = "secondary"
	ButtonMiddle    Button = "middle"
)

// ClickOptions configures a click action. The zero value means a
// single primary-button click at the element center.
type ClickOptions struct {
	// Offset is added to the element's center coordinates.
	Offset model.Point
	// Button defaults to ButtonPrimary.
	Button Button
	// Times defaults to 1; 2 performs a double click on backends that
	// support it.
	Times int
	// Interval is the delay between repeated clicks.
	Interval time.Duration
}

func (o ClickOptions) withDefaults() ClickOptions {
	if o.Button == "" {
		o.Button = ButtonPrimary
	}
	if o.Times == 0 {
		o.Times = 1
	}
	return o
}

// Backend performs physical input against the target surface. All
// coordinates are frame pixels.
type Backend interface {
	Screenshot(ctx context.Context) ([]byte, error)
	Click(ctx context.Context, x, y int, opts ClickOptions) error
	SendKeys(ctx context.Context, keys string) error
	Swipe(ctx context.Context, fromX, fromY, toX, toY int) error
	SwipeDirection(ctx context.Context, side model.Side) error
	Hover(ctx context.Context, x, y int) error
	DragDrop(ctx context.Context, fromX, fromY, toX, toY int, duration time.Duration) error
}

// Reader recognizes text fragments in a frame; *ocr.Client satisfies
// it when built with the ocr tag.
type Reader interface {
	Fragments(image []byte) ([]model.Fragment, error)
}

// Options configures a Driver.
type Options struct {
	// OCR is consulted when a query mentions text. Nil disables text
	// recognition; text queries then match nothing.
	OCR Reader
	// Timeout bounds element waits when the context carries no
	// deadline. Defaults to 10s.
	Timeout time.Duration
	// PollInterval is the delay between retries while waiting.
	// Defaults to 250ms.
	PollInterval time.Duration
	// SwipeLimit caps the number of swipes in SwipeUntilVisible.
	// Defaults to 50.
	SwipeLimit int
	// Logger receives action logs. Defaults to log.Default().
	Logger *log.Logger
}

func (o Options) withDefaults() Options {
	if o.Timeout == 0 {
		o.Timeout = 10 * time.Second
	}
	if o.PollInterval == 0 {
		o.PollInterval = 250 * time.Millisecond
	}
	if o.SwipeLimit == 0 {
		o.SwipeLimit = 50
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	return o
}

// Driver finds elements on the live screen and drives input against
// them.
type Driver struct {
	backend  Backend
	detector detect.Detector
	opts     Options
}

// New creates a driver over the given backend and detector.
func New(backend Backend, detector detect.Detector, opts Options) *Driver {
	return &Driver{
		backend:  backend,
		detector: detector,
		opts:     opts.withDefaults(),
	}
}

// Page captures one frame and converts it in full, with OCR when a
// reader is configured.
func (d *Driver) Page(ctx context.Context) (*screenpom.POM, error) {
	return d.capture(ctx, d.opts.OCR != nil)
}

// Element finds a single element. The returned handle is usable even
// when nothing matched yet: actions on it wait for the element to
// appear.
func (d *Driver) Element(ctx context.Context, spec map[string]any) (*Handle, error) {
	els, err := d.lookup(ctx, spec)
	if err != nil {
		return nil, err
	}
	h := &Handle{driver: d, spec: spec}
	if len(els) > 0 {
		h.el = els[0]
		h.found = true
	}
	return h, nil
}

// Elements finds all matching elements on the current frame.
func (d *Driver) Elements(ctx context.Context, spec map[string]any) ([]*Handle, error) {
	els, err := d.lookup(ctx, spec)
	if err != nil {
		return nil, err
	}
	handles := make([]*Handle, len(els))
	for i, el := range els {
		handles[i] = &Handle{driver: d, spec: spec, el: el, found: true}
	}
	return handles, nil
}

func (d *Driver) lookup(ctx context.Context, spec map[string]any) (model.Elements, error) {
	pom, err := d.capture(ctx, needsOCR(spec))
	if err != nil {
		return nil, err
	}
	return pom.GetElements(spec)
}

func (d *Driver) capture(ctx context.Context, withOCR bool) (*screenpom.POM, error) {
	frame, err := d.backend.Screenshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("screenshot: %w", err)
	}
	detections, err := d.detector.Detect(ctx, frame)
	if err != nil {
		return nil, fmt.Errorf("detect: %w", err)
	}
	if !withOCR || d.opts.OCR == nil {
		return screenpom.Convert(detections), nil
	}
	fragments, err := d.opts.OCR.Fragments(frame)
	if err != nil {
		return nil, fmt.Errorf("ocr: %w", err)
	}
	return screenpom.ConvertWithOCR(detections, fragments), nil
}

// needsOCR reports whether evaluating the query requires text
// recognition: a text rule at any depth, or a label targeting
// ocr_element.
func needsOCR(spec map[string]any) bool {
	for key, raw := range spec {
		switch key {
		case "text":
			return true
		case "label":
			switch v := raw.(type) {
			case string:
				if v == model.LabelOCR {
					return true
				}
			case map[string]any:
				if s, ok := v["value"].(string); ok && s == model.LabelOCR {
					return true
				}
			}
		case "child", "parent", "left", "right", "up", "down":
			if nested, ok := raw.(map[string]any); ok && needsOCR(nested) {
				return true
			}
		}
	}
	return false
}

// waitFor polls the screen until cond accepts the lookup result. The
// context deadline bounds the wait; without one, the driver timeout
// applies.
func (d *Driver) waitFor(ctx context.Context, spec map[string]any, cond func(model.Elements) bool, what string) (model.Elements, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.opts.Timeout)
		defer cancel()
	}

	var lastErr error
	for {
		els, err := d.lookup(ctx, spec)
		if err != nil {
			lastErr = err
		} else if cond(els) {
			return els, nil
		}

		select {
		case <-ctx.Done():
			if lastErr != nil {
				return nil, fmt.Errorf("%s for query %v: %w (last error: %v)", what, spec, ctx.Err(), lastErr)
			}
			return nil, fmt.Errorf("%s for query %v: %w", what, spec, ctx.Err())
		case <-time.After(d.opts.PollInterval):
		}
	}
}

func (d *Driver) logf(format string, args ...any) {
	d.opts.Logger.Printf(format, args...)
}
