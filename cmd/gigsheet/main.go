package main

import (
	"context"
	"os"

	"github.com/custodia-labs/gigsheet-cli/internal/adapters/driven/cache/file"
	"github.com/custodia-labs/gigsheet-cli/internal/adapters/driven/config/env"
	rendereradapter "github.com/custodia-labs/gigsheet-cli/internal/adapters/driven/renderer/chromedp"
	"github.com/custodia-labs/gigsheet-cli/internal/adapters/driven/sheets"
	"github.com/custodia-labs/gigsheet-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/gigsheet-cli/internal/connectors/boxoffice"
	"github.com/custodia-labs/gigsheet-cli/internal/core/domain"
	"github.com/custodia-labs/gigsheet-cli/internal/core/ports/driven"
	"github.com/custodia-labs/gigsheet-cli/internal/core/ports/driving"
	"github.com/custodia-labs/gigsheet-cli/internal/core/services"
	"github.com/custodia-labs/gigsheet-cli/internal/logger"
)

func main() {
	cli.Wire(cli.Dependencies{
		LoadSettings:  env.LoadSettings,
		NewRunner:     newRunner,
		NewMaintainer: newMaintainer,
	})
	os.Exit(cli.Execute())
}

func newRunner(ctx context.Context, settings domain.Settings, log *logger.Log) (driving.ReportRunner, error) {
	cache, outcome, err := file.Open(settings.CacheFile)
	if err != nil {
		return nil, err
	}
	switch outcome {
	case driven.CacheFresh:
		log.Info("created a fresh event cache at %s", settings.CacheFile)
	case driven.CacheRecovered:
		log.Warn("event cache at %s was unreadable and has been reset", settings.CacheFile)
	default:
		log.Debug("loaded %d cached event(s) from %s", cache.Len(), settings.CacheFile)
	}

	sink, err := sheets.NewClient(ctx, settings.SpreadsheetID, settings.ServiceAccountFile, log)
	if err != nil {
		return nil, err
	}

	renderers := rendereradapter.NewFactory(log)
	sources := boxoffice.NewSourceFactory(renderers, settings.SourceURL, settings.RequestTimeout, log)
	venues := boxoffice.NewVenueFetcher(settings.RequestTimeout, log)

	return services.NewReportPipeline(settings, sources, venues, cache, sink, log), nil
}

func newMaintainer(ctx context.Context, settings domain.Settings, log *logger.Log) (driving.SheetMaintainer, error) {
	sink, err := sheets.NewClient(ctx, settings.SpreadsheetID, settings.ServiceAccountFile, log)
	if err != nil {
		return nil, err
	}
	return services.NewSheetNormalizer(sink, log), nil
}
