// Package chromedp implements the page renderer port on a headless
// Chrome session driven over the DevTools protocol.
package chromedp

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"

	"github.com/custodia-labs/gigsheet-cli/internal/core/ports/driven"
	"github.com/custodia-labs/gigsheet-cli/internal/logger"
)

var (
	_ driven.RendererFactory = (*Factory)(nil)
	_ driven.Renderer        = (*Renderer)(nil)
	_ driven.Element         = (*element)(nil)
)

// Factory creates Chrome-backed renderer sessions.
type Factory struct {
	log *logger.Log
}

// NewFactory returns a renderer factory.
func NewFactory(log *logger.Log) *Factory {
	return &Factory{log: log}
}

// New launches a Chrome session. Each session owns its own allocator so
// closing one renderer never tears down another.
func (f *Factory) New(ctx context.Context, headless bool) (driven.Renderer, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", headless),
		chromedp.WindowSize(1920, 1080),
		chromedp.NoSandbox,
		chromedp.DisableGPU,
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	// Start the browser eagerly so a missing Chrome binary surfaces here
	// instead of on the first navigation.
	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, fmt.Errorf("start browser: %w", err)
	}

	f.log.Debug("browser session started (headless=%t)", headless)
	return &Renderer{
		ctx:          browserCtx,
		cancelAlloc:  cancelAlloc,
		cancelWindow: cancelBrowser,
		runActions:   chromedp.Run,
		log:          f.log,
	}, nil
}

// Renderer drives one Chrome tab.
type Renderer struct {
	ctx          context.Context
	cancelAlloc  context.CancelFunc
	cancelWindow context.CancelFunc
	runActions   func(ctx context.Context, actions ...chromedp.Action) error
	log          *logger.Log
}

// Navigate loads the given URL in the tab.
func (r *Renderer) Navigate(ctx context.Context, url string) error {
	if err := r.run(ctx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

// WaitPresent blocks until the selector matches or the timeout elapses.
func (r *Renderer) WaitPresent(ctx context.Context, selector string, timeout time.Duration) error {
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := r.run(waitCtx, chromedp.WaitReady(selector, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("wait for %q: %w", selector, err)
	}
	return nil
}

// Evaluate runs a JavaScript expression, discarding its result.
func (r *Renderer) Evaluate(ctx context.Context, script string) error {
	if err := r.run(ctx, chromedp.Evaluate(script, nil)); err != nil {
		return fmt.Errorf("evaluate script: %w", err)
	}
	return nil
}

// PageSource returns the serialized document markup.
func (r *Renderer) PageSource(ctx context.Context) (string, error) {
	var html string
	if err := r.run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("read page source: %w", err)
	}
	return html, nil
}

// Elements returns handles for every element matching the selector.
func (r *Renderer) Elements(ctx context.Context, selector string) ([]driven.Element, error) {
	var nodes []*cdp.Node
	if err := r.run(ctx, chromedp.Nodes(selector, &nodes, chromedp.ByQueryAll)); err != nil {
		return nil, fmt.Errorf("query %q: %w", selector, err)
	}

	elements := make([]driven.Element, 0, len(nodes))
	for _, node := range nodes {
		elements = append(elements, &element{renderer: r, node: node})
	}
	return elements, nil
}

// Close tears down the tab and its allocator.
func (r *Renderer) Close() error {
	r.cancelWindow()
	r.cancelAlloc()
	r.log.Debug("browser session closed")
	return nil
}

// run executes actions on the tab while honoring the caller's context.
// The actions run on a context derived from the tab's, cancelled when run
// returns, so a timed-out action stops instead of holding the tab busy.
func (r *Renderer) run(ctx context.Context, actions ...chromedp.Action) error {
	callCtx, cancel := context.WithCancel(r.ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- r.runActions(callCtx, actions...)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// element wraps one DOM node handle.
type element struct {
	renderer *Renderer
	node     *cdp.Node
}

// Text returns the visible text of the first descendant matching the
// selector.
func (e *element) Text(ctx context.Context, selector string) (string, error) {
	var text string
	err := e.renderer.run(ctx,
		chromedp.Text(selector, &text, chromedp.ByQuery, chromedp.FromNode(e.node)))
	if err != nil {
		return "", fmt.Errorf("read text of %q: %w", selector, err)
	}
	return text, nil
}

// Attribute returns the named attribute and whether it is set.
func (e *element) Attribute(_ context.Context, name string) (string, bool) {
	value := e.node.AttributeValue(name)
	if value == "" {
		// AttributeValue cannot distinguish empty from absent; scan the
		// raw attribute list.
		for i := 0; i < len(e.node.Attributes)-1; i += 2 {
			if e.node.Attributes[i] == name {
				return e.node.Attributes[i+1], true
			}
		}
		return "", false
	}
	return value, true
}
