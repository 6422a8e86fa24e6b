package notify

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/cleanerboard/backend/internal/config"
)

// SheetsExporter replaces the contents of a spreadsheet tab with the
// current schedule rows.
type SheetsExporter struct {
	srv           *sheets.Service
	spreadsheetID string
	tabName       string
}

// NewSheetsExporter builds a Sheets client from the configured
// service-account credentials.
func NewSheetsExporter(ctx context.Context, cfg config.SheetsConfig) (*SheetsExporter, error) {
	srv, err := sheets.NewService(ctx,
		option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("creating sheets client: %w", err)
	}
	return &SheetsExporter{
		srv:           srv,
		spreadsheetID: cfg.SpreadsheetID,
		tabName:       cfg.TabName,
	}, nil
}

// Push clears the tab and writes the given rows starting at A1. The
// tab is created when missing.
func (e *SheetsExporter) Push(ctx context.Context, rows [][]string) error {
	if err := e.ensureTab(ctx); err != nil {
		return err
	}

	if _, err := e.srv.Spreadsheets.Values.
		Clear(e.spreadsheetID, e.tabName, &sheets.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return fmt.Errorf("clearing sheet tab: %w", err)
	}

	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		values[i] = cells
	}

	vr := &sheets.ValueRange{Values: values}
	if _, err := e.srv.Spreadsheets.Values.
		Update(e.spreadsheetID, e.tabName+"!A1", vr).
		ValueInputOption("RAW").
		Context(ctx).Do(); err != nil {
		return fmt.Errorf("updating sheet tab: %w", err)
	}

	return nil
}

// ensureTab creates the target tab when the spreadsheet lacks it.
func (e *SheetsExporter) ensureTab(ctx context.Context) error {
	ss, err := e.srv.Spreadsheets.Get(e.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("reading spreadsheet: %w", err)
	}

	for _, sh := range ss.Sheets {
		if sh.Properties != nil && sh.Properties.Title == e.tabName {
			return nil
		}
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: e.tabName},
			},
		}},
	}
	if _, err := e.srv.Spreadsheets.BatchUpdate(e.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("creating sheet tab %q: %w", e.tabName, err)
	}
	return nil
}
