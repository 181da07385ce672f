package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gigsheet-cli/internal/core/domain"
)

var (
	runStart      string
	runEnd        string
	runHeadless   bool
	runNoHeadless bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Collect listings and publish new events",
	Long: `Renders the listing page, extracts this week's concerts, filters out
events already published and appends the remainder to the sheet.
The window defaults to the current Monday-to-Sunday week.`,
	RunE: runReport,
}

func init() {
	runCmd.Flags().StringVar(&runStart, "start", "", "window start date (YYYY-MM-DD)")
	runCmd.Flags().StringVar(&runEnd, "end", "", "window end date (YYYY-MM-DD)")
	runCmd.Flags().BoolVar(&runHeadless, "headless", false, "force headless rendering")
	runCmd.Flags().BoolVar(&runNoHeadless, "no-headless", false, "force a visible browser window")
	runCmd.MarkFlagsMutuallyExclusive("headless", "no-headless")
	rootCmd.AddCommand(runCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	if deps.LoadSettings == nil || deps.NewRunner == nil {
		return errors.New("report service not configured")
	}

	settings, err := deps.LoadSettings()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	switch {
	case runHeadless:
		settings.Headless = true
	case runNoHeadless:
		settings.Headless = false
	}

	start, end, err := resolveWindow(runStart, runEnd, time.Now())
	if err != nil {
		return err
	}

	ctx := context.Background()
	runner, err := deps.NewRunner(ctx, settings, appLog)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}

	cmd.Printf("Collecting events for %s to %s...\n",
		start.Format(domain.DateLayout), end.Format(domain.DateLayout))

	result, err := runner.Run(ctx, start, end)
	if err != nil {
		return err
	}

	for _, rejected := range result.Invalid {
		appLog.Warn("dropped %q at %q: %s",
			rejected.Event.Event, rejected.Event.Venue, strings.Join(rejected.Errors, " "))
	}

	cmd.Printf("Fetched %d event(s); %d valid; %d new; %d inserted.\n",
		result.Fetched, result.Valid, result.New, result.Inserted)
	return nil
}

// resolveWindow turns the optional flag values into a concrete window.
// Both flags empty means the current week; a single flag pins that edge
// and leaves the other on its weekly default.
func resolveWindow(startFlag, endFlag string, now time.Time) (time.Time, time.Time, error) {
	start, end := domain.CurrentWeekRange(now)

	if startFlag != "" {
		parsed, err := time.Parse(domain.DateLayout, startFlag)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parse --start: %w", err)
		}
		start = parsed
	}
	if endFlag != "" {
		parsed, err := time.Parse(domain.DateLayout, endFlag)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parse --end: %w", err)
		}
		end = parsed
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("window end %s is before start %s",
			end.Format(domain.DateLayout), start.Format(domain.DateLayout))
	}
	return start, end, nil
}
