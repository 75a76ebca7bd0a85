// Package sheets wraps the Google Sheets API for tabular publishing.
package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// Writer defines the interface for writing tabular data to a spreadsheet.
type Writer interface {
	EnsureTab(ctx context.Context, title string) error
	Overwrite(ctx context.Context, title string, values [][]interface{}) error
}

type client struct {
	srv           *sheetsapi.Service
	spreadsheetID string
}

// NewClient creates a Sheets writer authenticated with a service-account
// credentials file.
func NewClient(ctx context.Context, credentialsFile, spreadsheetID string) (Writer, error) {
	srv, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &client{srv: srv, spreadsheetID: spreadsheetID}, nil
}

// EnsureTab creates the named tab when it does not exist yet.
func (c *client) EnsureTab(ctx context.Context, title string) error {
	spreadsheet, err := c.srv.Spreadsheets.Get(c.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == title {
			return nil
		}
	}

	_, err = c.srv.Spreadsheets.BatchUpdate(c.spreadsheetID, &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{
			{AddSheet: &sheetsapi.AddSheetRequest{Properties: &sheetsapi.SheetProperties{Title: title}}},
		},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to add sheet tab %q: %w", title, err)
	}
	return nil
}

// Overwrite clears the tab and writes values starting at A1.
func (c *client) Overwrite(ctx context.Context, title string, values [][]interface{}) error {
	if _, err := c.srv.Spreadsheets.Values.Clear(c.spreadsheetID, title, &sheetsapi.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to clear sheet tab %q: %w", title, err)
	}

	_, err := c.srv.Spreadsheets.Values.Update(c.spreadsheetID, fmt.Sprintf("%s!A1", title), &sheetsapi.ValueRange{
		Values: values,
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to write sheet tab %q: %w", title, err)
	}
	return nil
}
