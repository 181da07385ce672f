package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gigsheet-cli/internal/core/domain"
	"github.com/custodia-labs/gigsheet-cli/internal/core/ports/driving"
	"github.com/custodia-labs/gigsheet-cli/internal/logger"
)

type fakeRunner struct {
	result *domain.PipelineResult
	err    error

	start time.Time
	end   time.Time
	calls int
}

func (f *fakeRunner) Run(_ context.Context, start, end time.Time) (*domain.PipelineResult, error) {
	f.calls++
	f.start = start
	f.end = end
	return f.result, f.err
}

type fakeMaintainer struct {
	rewritten int
	err       error
	calls     int
}

func (f *fakeMaintainer) Normalize(context.Context) (int, error) {
	f.calls++
	return f.rewritten, f.err
}

func testSettings() (domain.Settings, error) {
	return domain.Settings{
		SpreadsheetID:      "sheet-123",
		ServiceAccountFile: "/tmp/creds.json",
		Headless:           true,
	}, nil
}

// wireTest installs fakes and restores the previous wiring and flag
// state when the test ends.
func wireTest(t *testing.T, runner driving.ReportRunner, maintainer driving.SheetMaintainer) {
	t.Helper()
	previous := deps
	deps = Dependencies{
		LoadSettings: testSettings,
		NewRunner: func(context.Context, domain.Settings, *logger.Log) (driving.ReportRunner, error) {
			return runner, nil
		},
		NewMaintainer: func(context.Context, domain.Settings, *logger.Log) (driving.SheetMaintainer, error) {
			return maintainer, nil
		},
	}
	t.Cleanup(func() {
		deps = previous
		runStart, runEnd = "", ""
		runHeadless, runNoHeadless = false, false
		rootCmd.SetArgs(nil)
	})
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRunCmd_PrintsSummary(t *testing.T) {
	runner := &fakeRunner{result: &domain.PipelineResult{Fetched: 12, Valid: 10, New: 3, Inserted: 3}}
	wireTest(t, runner, nil)

	out, err := execute(t, "run", "--start", "2024-04-29", "--end", "2024-05-05")

	require.NoError(t, err)
	assert.Equal(t, 1, runner.calls)
	assert.Contains(t, out, "Collecting events for 2024-04-29 to 2024-05-05")
	assert.Contains(t, out, "Fetched 12 event(s); 10 valid; 3 new; 3 inserted.")
}

func TestRunCmd_PassesWindowFlags(t *testing.T) {
	runner := &fakeRunner{result: &domain.PipelineResult{}}
	wireTest(t, runner, nil)

	_, err := execute(t, "run", "--start", "2024-04-29", "--end", "2024-05-05")

	require.NoError(t, err)
	assert.Equal(t, "2024-04-29", runner.start.Format(domain.DateLayout))
	assert.Equal(t, "2024-05-05", runner.end.Format(domain.DateLayout))
}

func TestRunCmd_DefaultsToCurrentWeek(t *testing.T) {
	runner := &fakeRunner{result: &domain.PipelineResult{}}
	wireTest(t, runner, nil)

	_, err := execute(t, "run")

	require.NoError(t, err)
	wantStart, wantEnd := domain.CurrentWeekRange(time.Now())
	assert.Equal(t, wantStart, runner.start)
	assert.Equal(t, wantEnd, runner.end)
}

func TestRunCmd_RejectsMalformedStart(t *testing.T) {
	runner := &fakeRunner{result: &domain.PipelineResult{}}
	wireTest(t, runner, nil)

	_, err := execute(t, "run", "--start", "29/04/2024")

	require.Error(t, err)
	assert.Equal(t, 0, runner.calls)
}

func TestRunCmd_PropagatesRunnerError(t *testing.T) {
	runner := &fakeRunner{err: errors.New("page load timed out")}
	wireTest(t, runner, nil)

	_, err := execute(t, "run")

	assert.ErrorContains(t, err, "page load timed out")
}

func TestRunCmd_NotConfigured(t *testing.T) {
	previous := deps
	deps = Dependencies{}
	t.Cleanup(func() {
		deps = previous
		rootCmd.SetArgs(nil)
	})

	_, err := execute(t, "run")

	assert.ErrorContains(t, err, "not configured")
}

func TestResolveWindow(t *testing.T) {
	// A Wednesday; the surrounding week runs Monday the 29th through
	// Sunday the 5th.
	now := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC)

	t.Run("defaults to surrounding week", func(t *testing.T) {
		start, end, err := resolveWindow("", "", now)

		require.NoError(t, err)
		assert.Equal(t, "2024-04-29", start.Format(domain.DateLayout))
		assert.Equal(t, "2024-05-05", end.Format(domain.DateLayout))
	})

	t.Run("single flag pins one edge", func(t *testing.T) {
		start, end, err := resolveWindow("2024-05-01", "", now)

		require.NoError(t, err)
		assert.Equal(t, "2024-05-01", start.Format(domain.DateLayout))
		assert.Equal(t, "2024-05-05", end.Format(domain.DateLayout))
	})

	t.Run("inverted window rejected", func(t *testing.T) {
		_, _, err := resolveWindow("2024-05-05", "2024-05-01", now)

		assert.ErrorContains(t, err, "before start")
	})
}
