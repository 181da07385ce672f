// Package env loads runtime settings from environment variables, with an
// optional dotenv file for local development.
package env

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/gigsheet-cli/internal/core/domain"
)

// Environment variable names recognised by the loader.
const (
	varEnvFile            = "ENV_FILE"
	varSourceURL          = "SOURCE_URL"
	varSpreadsheetID      = "SPREADSHEET_ID"
	varServiceAccountFile = "GOOGLE_SERVICE_ACCOUNT_FILE"
	varCacheFile          = "CACHE_FILE"
	varHeadless           = "HEADLESS"
	varRequestTimeout     = "REQUEST_TIMEOUT"
	varTargetVenues       = "TARGET_VENUES"
)

// LoadSettings resolves the runtime configuration. A dotenv file is read
// first when present (ENV_FILE, falling back to ./.env) but never
// overrides variables already set in the environment.
func LoadSettings() (domain.Settings, error) {
	loadDotenv()

	settings := domain.Settings{
		SourceURL:          stringOr(varSourceURL, domain.DefaultSourceURL),
		SpreadsheetID:      os.Getenv(varSpreadsheetID),
		ServiceAccountFile: os.Getenv(varServiceAccountFile),
		CacheFile:          stringOr(varCacheFile, domain.DefaultCacheFile),
		Headless:           boolOr(varHeadless, true),
		TargetVenues:       venuesOr(varTargetVenues, domain.DefaultTargetVenues),
	}

	timeout, err := durationOr(varRequestTimeout, domain.DefaultRequestTimeout)
	if err != nil {
		return domain.Settings{}, err
	}
	settings.RequestTimeout = timeout

	var missing []string
	if settings.SpreadsheetID == "" {
		missing = append(missing, varSpreadsheetID)
	}
	if settings.ServiceAccountFile == "" {
		missing = append(missing, varServiceAccountFile)
	}
	if len(missing) > 0 {
		return domain.Settings{}, fmt.Errorf("%w: %s", domain.ErrMissingConfig, strings.Join(missing, ", "))
	}

	return settings, nil
}

func loadDotenv() {
	path := os.Getenv(varEnvFile)
	if path == "" {
		path = ".env"
	}
	// A missing dotenv file is normal outside local development.
	if _, err := os.Stat(path); err != nil {
		return
	}
	_ = godotenv.Load(path)
}

func stringOr(name, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return fallback
}

func boolOr(name string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return fallback
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

func durationOr(name string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", name, err)
	}
	return d, nil
}

// venuesOr parses a comma-separated venue list. An unset variable yields
// the fallback; a set-but-empty variable disables the supplemental fetch.
func venuesOr(name string, fallback []string) []string {
	v, ok := os.LookupEnv(name)
	if !ok {
		return fallback
	}
	var venues []string
	for _, part := range strings.Split(v, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			venues = append(venues, trimmed)
		}
	}
	return venues
}
