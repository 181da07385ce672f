package chromedp

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/gigsheet-cli/internal/logger"
)

func newTestRenderer(runActions func(context.Context, ...chromedp.Action) error) *Renderer {
	return &Renderer{
		ctx:          context.Background(),
		cancelAlloc:  func() {},
		cancelWindow: func() {},
		runActions:   runActions,
		log:          logger.New(io.Discard),
	}
}

func TestRenderer_Run_ReturnsActionResult(t *testing.T) {
	wantErr := errors.New("action failed")
	r := newTestRenderer(func(context.Context, ...chromedp.Action) error {
		return wantErr
	})

	err := r.run(context.Background())

	assert.ErrorIs(t, err, wantErr)
}

func TestRenderer_Run_CancelsActionWhenCallerGivesUp(t *testing.T) {
	actionStopped := make(chan struct{})
	r := newTestRenderer(func(ctx context.Context, _ ...chromedp.Action) error {
		<-ctx.Done()
		close(actionStopped)
		return ctx.Err()
	})

	callerCtx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.run(callerCtx)

	assert.ErrorIs(t, err, context.Canceled)
	select {
	case <-actionStopped:
	case <-time.After(time.Second):
		t.Fatal("action kept running after the caller gave up")
	}
}
