package sheets

import "context"

// Tab describes one sheet (tab) of a spreadsheet
type Tab struct {
	ID    int64
	Title string
	Index int64
}

// Service wraps the remote spreadsheet API. All row indices are zero-based
// positions within a tab, including the header row.
type Service interface {
	// ListTabs returns the spreadsheet's tabs in positional order
	ListTabs(ctx context.Context, spreadsheetID string) ([]Tab, error)

	// GetValues reads a range in A1 notation and returns the cell values as
	// strings. Trailing empty cells may be omitted per row.
	GetValues(ctx context.Context, spreadsheetID, rangeA1 string) ([][]string, error)

	// DeleteRows removes the given rows from a tab in one batched request.
	// Indices are applied from the highest to the lowest so that earlier
	// deletions never shift the remaining targets.
	DeleteRows(ctx context.Context, spreadsheetID string, tabID int64, rows []int64) error

	// AppendRows appends rows after the last non-empty row of the range and
	// returns the number of rows written
	AppendRows(ctx context.Context, spreadsheetID, rangeA1 string, rows [][]any) (int, error)
}
