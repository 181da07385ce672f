// Package sheets provides the Google Sheets implementation of the event
// sink. Published rows live on a fixed worksheet; the append path dedups
// against rows already present using the canonical record key.
package sheets

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	sheetsapi "google.golang.org/api/sheets/v4"
	"google.golang.org/api/option"

	"github.com/custodia-labs/gigsheet-cli/internal/core/domain"
	"github.com/custodia-labs/gigsheet-cli/internal/core/ports/driven"
	"github.com/custodia-labs/gigsheet-cli/internal/logger"
)

// MasterSheet is the worksheet all published rows live on. It must exist;
// the client never creates it.
const MasterSheet = "Master"

// Ensure Client implements the interface.
var _ driven.EventSink = (*Client)(nil)

// Client is a Google Sheets event sink authenticated via a service
// account.
type Client struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	log           *logger.Log
}

// NewClient authenticates with the service-account credentials file and
// verifies the destination worksheet exists.
func NewClient(ctx context.Context, spreadsheetID, credentialsFile string, log *logger.Log) (*Client, error) {
	raw, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read service account file: %w", err)
	}

	cfg, err := google.JWTConfigFromJSON(raw, sheetsapi.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse service account credentials: %w", err)
	}

	svc, err := sheetsapi.NewService(ctx, option.WithTokenSource(cfg.TokenSource(ctx)))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	c := &Client{svc: svc, spreadsheetID: spreadsheetID, log: log}
	if err := c.checkWorksheet(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// checkWorksheet confirms the Master worksheet exists. A missing worksheet
// is a configuration error the operator must fix by hand.
func (c *Client) checkWorksheet(ctx context.Context) error {
	spreadsheet, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("open spreadsheet: %w", err)
	}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == MasterSheet {
			return nil
		}
	}
	return fmt.Errorf("%w: create a worksheet named %q manually", domain.ErrWorksheetNotFound, MasterSheet)
}

// EnsureHeader makes the first row match domain.SheetHeader.
func (c *Client) EnsureHeader(ctx context.Context) error {
	resp, err := c.svc.Spreadsheets.Values.
		Get(c.spreadsheetID, MasterSheet+"!1:1").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read header row: %w", err)
	}

	var existing []string
	if len(resp.Values) > 0 {
		existing = toStringRow(resp.Values[0])
	}
	if headerMatches(existing) {
		return nil
	}

	vr := &sheetsapi.ValueRange{Values: [][]any{toAnyRow(domain.SheetHeader)}}
	_, err = c.svc.Spreadsheets.Values.
		Update(c.spreadsheetID, MasterSheet+"!A1", vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write header row: %w", err)
	}
	return nil
}

// FetchRows returns every row on the worksheet, header included.
func (c *Client) FetchRows(ctx context.Context) ([][]string, error) {
	resp, err := c.svc.Spreadsheets.Values.
		Get(c.spreadsheetID, MasterSheet).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		rows = append(rows, toStringRow(row))
	}
	return rows, nil
}

// OverwriteRows clears the worksheet and writes the given rows from A1.
func (c *Client) OverwriteRows(ctx context.Context, rows [][]string) error {
	_, err := c.svc.Spreadsheets.Values.
		Clear(c.spreadsheetID, MasterSheet, &sheetsapi.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear rows: %w", err)
	}

	if len(rows) == 0 {
		return c.EnsureHeader(ctx)
	}

	values := make([][]any, 0, len(rows))
	for _, row := range rows {
		values = append(values, toAnyRow(row))
	}
	_, err = c.svc.Spreadsheets.Values.
		Update(c.spreadsheetID, MasterSheet+"!A1", &sheetsapi.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	return c.EnsureHeader(ctx)
}

// UpsertEvents appends the rows whose canonical key is absent from the
// worksheet and returns how many were appended.
func (c *Client) UpsertEvents(ctx context.Context, events []domain.EventRecord) (int, error) {
	if err := c.EnsureHeader(ctx); err != nil {
		return 0, err
	}

	existing, err := c.FetchRows(ctx)
	if err != nil {
		return 0, err
	}

	rows := appendableRows(existing, events)
	if len(rows) == 0 {
		c.log.Info("no new events to append to the sheet")
		return 0, nil
	}

	values := make([][]any, 0, len(rows))
	for _, row := range rows {
		values = append(values, toAnyRow(row))
	}
	_, err = c.svc.Spreadsheets.Values.
		Append(c.spreadsheetID, MasterSheet+"!A1", &sheetsapi.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("append rows: %w", err)
	}

	c.log.Info("appended %d new row(s) to %s", len(rows), MasterSheet)
	return len(rows), nil
}

// appendableRows builds the rows to append: events whose canonical key is
// not represented by an existing data row. Existing rows are keyed the
// same way records are, so casing noise in the sheet cannot cause a
// duplicate append.
func appendableRows(existing [][]string, events []domain.EventRecord) [][]string {
	seen := make(map[string]struct{}, len(existing))
	for i, row := range existing {
		if i == 0 {
			continue // header
		}
		seen[rowKey(row)] = struct{}{}
	}

	var rows [][]string
	for _, event := range events {
		key := event.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		rows = append(rows, event.Row())
	}
	return rows
}

// rowKey folds a sheet row into the canonical record key shape. The date
// column is already an ISO string so no parse round-trip is needed.
func rowKey(row []string) string {
	padded := make([]string, len(domain.SheetHeader))
	copy(padded, row)
	return domain.RowKey(padded[0], padded[1], padded[2])
}

func headerMatches(row []string) bool {
	if len(row) < len(domain.SheetHeader) {
		return false
	}
	for i, want := range domain.SheetHeader {
		if row[i] != want {
			return false
		}
	}
	return true
}

func toStringRow(row []any) []string {
	out := make([]string, 0, len(row))
	for _, cell := range row {
		out = append(out, fmt.Sprint(cell))
	}
	return out
}

func toAnyRow(row []string) []any {
	out := make([]any, 0, len(row))
	for _, cell := range row {
		out = append(out, cell)
	}
	return out
}
