// Package cli provides the command-line interface. Commands delegate to
// the driving ports; adapters are constructed lazily through the wired
// factories so a command only pays for what it uses.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gigsheet-cli/internal/core/domain"
	"github.com/custodia-labs/gigsheet-cli/internal/core/ports/driving"
	"github.com/custodia-labs/gigsheet-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Dependencies wires the CLI to the rest of the application. Factories
// run only when a command needs them, so `gigsheet version` works
// without credentials.
type Dependencies struct {
	// LoadSettings resolves the runtime configuration.
	LoadSettings func() (domain.Settings, error)

	// NewRunner builds the report pipeline for one run.
	NewRunner func(ctx context.Context, settings domain.Settings, log *logger.Log) (driving.ReportRunner, error)

	// NewMaintainer builds the sheet maintenance service.
	NewMaintainer func(ctx context.Context, settings domain.Settings, log *logger.Log) (driving.SheetMaintainer, error)
}

var (
	deps   Dependencies
	appLog = logger.New(os.Stderr)

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "gigsheet",
	Short: "Collect weekly concert listings into a spreadsheet",
	Long: `gigsheet collects this week's concert listings from the source site,
filters out events it has already seen and appends the new ones to a
Google Sheets worksheet.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		appLog.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Wire installs the application dependencies. Must be called before
// Execute.
func Wire(d Dependencies) {
	deps = d
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		appLog.Error("%v", err)
		return 1
	}
	return 0
}
