package driven

import (
	"context"
	"time"
)

// Renderer is a JavaScript-capable page renderer.
// It loads a URL, lets dynamic content populate and exposes the rendered
// document for inspection. One Renderer drives one browser session; callers
// must Close it on every exit path.
type Renderer interface {
	// Navigate loads the given URL.
	Navigate(ctx context.Context, url string) error

	// WaitPresent blocks until at least one element matching the CSS
	// selector is present, or the timeout elapses.
	WaitPresent(ctx context.Context, selector string, timeout time.Duration) error

	// Evaluate runs a JavaScript expression in the page, discarding its
	// result.
	Evaluate(ctx context.Context, script string) error

	// PageSource returns the current serialized document markup.
	PageSource(ctx context.Context) (string, error)

	// Elements returns handles for every element matching the selector.
	Elements(ctx context.Context, selector string) ([]Element, error)

	// Close releases the browser session.
	Close() error
}

// Element is a handle on one rendered DOM element.
type Element interface {
	// Text returns the visible text of the first descendant matching the
	// selector. An error means no such descendant rendered.
	Text(ctx context.Context, selector string) (string, error)

	// Attribute returns the named attribute value and whether it is set.
	Attribute(ctx context.Context, name string) (string, bool)
}

// RendererFactory creates renderer sessions.
type RendererFactory interface {
	// New starts a browser session. Headless controls whether the
	// browser renders without a window.
	New(ctx context.Context, headless bool) (Renderer, error)
}
