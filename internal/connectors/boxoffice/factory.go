package boxoffice

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/gigsheet-cli/internal/core/ports/driven"
	"github.com/custodia-labs/gigsheet-cli/internal/logger"
)

// Ensure SourceFactory implements the interface.
var _ driven.ListingSourceFactory = (*SourceFactory)(nil)

// SourceFactory creates one Extractor per pipeline run, each over its own
// renderer session.
type SourceFactory struct {
	renderers driven.RendererFactory
	sourceURL string
	timeout   time.Duration
	log       *logger.Log
}

// NewSourceFactory creates a factory for listing-page extractors.
func NewSourceFactory(renderers driven.RendererFactory, sourceURL string, timeout time.Duration, log *logger.Log) *SourceFactory {
	return &SourceFactory{
		renderers: renderers,
		sourceURL: sourceURL,
		timeout:   timeout,
		log:       log,
	}
}

// New starts a renderer session and wraps it in an Extractor. The caller
// owns the returned source and must Close it.
func (f *SourceFactory) New(ctx context.Context, headless bool) (driven.ListingSource, error) {
	renderer, err := f.renderers.New(ctx, headless)
	if err != nil {
		return nil, fmt.Errorf("start renderer: %w", err)
	}
	return NewExtractor(renderer, f.sourceURL, f.timeout, f.log), nil
}
