package sheets

import (
	"context"
	"fmt"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// client implements Service against the Google Sheets API
type client struct {
	api *sheets.Service
}

// New creates a Sheets service authenticated with the given service-account
// credential JSON. The credential is resolved once per process.
func New(ctx context.Context, credentialsJSON []byte) (Service, error) {
	if len(credentialsJSON) == 0 {
		return nil, goerr.New("service account credential is required")
	}

	api, err := sheets.NewService(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create sheets service")
	}

	return &client{api: api}, nil
}

// NewWithCredentialsFile creates a Sheets service from a credential file path
func NewWithCredentialsFile(ctx context.Context, path string) (Service, error) {
	if path == "" {
		return nil, goerr.New("service account credential path is required")
	}

	api, err := sheets.NewService(ctx,
		option.WithCredentialsFile(path),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create sheets service", goerr.V("path", path))
	}

	return &client{api: api}, nil
}

func (c *client) ListTabs(ctx context.Context, spreadsheetID string) ([]Tab, error) {
	resp, err := c.api.Spreadsheets.Get(spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get spreadsheet metadata",
			goerr.V("spreadsheetID", spreadsheetID))
	}

	tabs := make([]Tab, 0, len(resp.Sheets))
	for _, sheet := range resp.Sheets {
		if sheet.Properties == nil {
			continue
		}
		tabs = append(tabs, Tab{
			ID:    sheet.Properties.SheetId,
			Title: sheet.Properties.Title,
			Index: sheet.Properties.Index,
		})
	}
	sort.Slice(tabs, func(i, j int) bool { return tabs[i].Index < tabs[j].Index })

	return tabs, nil
}

func (c *client) GetValues(ctx context.Context, spreadsheetID, rangeA1 string) ([][]string, error) {
	resp, err := c.api.Spreadsheets.Values.Get(spreadsheetID, rangeA1).Context(ctx).Do()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get values",
			goerr.V("spreadsheetID", spreadsheetID), goerr.V("range", rangeA1))
	}

	values := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = fmt.Sprint(cell)
		}
		values[i] = cells
	}

	return values, nil
}

func (c *client) DeleteRows(ctx context.Context, spreadsheetID string, tabID int64, rows []int64) error {
	if len(rows) == 0 {
		return nil
	}

	// Highest index first: deleting a row shifts everything below it up, so
	// ascending order would invalidate the remaining indices.
	sorted := make([]int64, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] > sorted[j] })

	requests := make([]*sheets.Request, 0, len(sorted))
	for _, row := range sorted {
		requests = append(requests, &sheets.Request{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    tabID,
					Dimension:  "ROWS",
					StartIndex: row,
					EndIndex:   row + 1,
				},
			},
		})
	}

	_, err := c.api.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	if err != nil {
		return goerr.Wrap(err, "failed to delete rows",
			goerr.V("spreadsheetID", spreadsheetID),
			goerr.V("tabID", tabID),
			goerr.V("count", len(rows)))
	}

	return nil
}

func (c *client) AppendRows(ctx context.Context, spreadsheetID, rangeA1 string, rows [][]any) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	values := make([][]any, len(rows))
	copy(values, rows)

	resp, err := c.api.Spreadsheets.Values.Append(spreadsheetID, rangeA1, &sheets.ValueRange{
		Values: values,
	}).ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return 0, goerr.Wrap(err, "failed to append rows",
			goerr.V("spreadsheetID", spreadsheetID),
			goerr.V("range", rangeA1),
			goerr.V("count", len(rows)))
	}

	appended := len(rows)
	if resp.Updates != nil && resp.Updates.UpdatedRows > 0 {
		appended = int(resp.Updates.UpdatedRows)
	}
	return appended, nil
}
