package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Re-sanitize rows already published to the sheet",
	Long: `Rewrites every data row on the destination worksheet in place:
unescapes HTML entities, trims whitespace and normalises the date
column to ISO form. Useful after hand edits or format drift.`,
	RunE: runNormalize,
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, _ []string) error {
	if deps.LoadSettings == nil || deps.NewMaintainer == nil {
		return errors.New("maintenance service not configured")
	}

	settings, err := deps.LoadSettings()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	ctx := context.Background()
	maintainer, err := deps.NewMaintainer(ctx, settings, appLog)
	if err != nil {
		return fmt.Errorf("build maintenance service: %w", err)
	}

	rewritten, err := maintainer.Normalize(ctx)
	if err != nil {
		return err
	}

	cmd.Printf("Normalized %d row(s).\n", rewritten)
	return nil
}
