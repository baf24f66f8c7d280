package usecase

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/nxtprof/nxtprof/pkg/domain/model"
	"github.com/nxtprof/nxtprof/pkg/domain/types"
	"github.com/nxtprof/nxtprof/pkg/service/sheets"
	"github.com/nxtprof/nxtprof/pkg/utils/logging"
)

// SyncResult reports the outcome of one sync run
type SyncResult struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	RecordsSynced int    `json:"records_synced"`
}

// SyncAttendance replays a session date's finalized attendance into the
// shared spreadsheet. The run is idempotent: every existing row tagged with
// the date is deleted in one batched request, then the current records are
// appended. Running it twice leaves the sheet identical.
func (uc *UseCases) SyncAttendance(ctx context.Context, sessionType types.SessionType, date types.SessionDate) (*SyncResult, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if uc.sheetsService == nil || uc.attendanceSheetID == "" {
		return nil, goerr.Wrap(ErrSheetNotConfigured, "attendance spreadsheet is not configured")
	}
	if !sessionType.IsValid() {
		return nil, goerr.Wrap(ErrInvalidArgument, "invalid session type", goerr.V("type", string(sessionType)))
	}
	if !date.IsValid() {
		return nil, goerr.Wrap(ErrInvalidArgument, "invalid session date", goerr.V("date", string(date)))
	}

	records, err := uc.repo.Attendance().ListBySession(ctx, sessionType, date)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list attendance records",
			goerr.V("type", string(sessionType)), goerr.V("date", string(date)))
	}
	if len(records) == 0 {
		// Nothing finalized for this date. Success, not failure: the daily
		// sync fires on days without sessions too.
		return &SyncResult{
			Success: true,
			Message: fmt.Sprintf("no attendance records for %s on %s", sessionType, date),
		}, nil
	}

	tab, err := uc.attendanceTab(ctx, sessionType)
	if err != nil {
		return nil, err
	}

	if err := uc.deleteDateRows(ctx, tab, date); err != nil {
		return nil, err
	}

	rows := make([][]any, 0, len(records))
	for _, rec := range records {
		rows = append(rows, rec.SheetRow(sessionType, uc.loc))
	}

	appendRange := fmt.Sprintf("'%s'!A:H", tab.Title)
	if _, err := uc.sheetsService.AppendRows(ctx, uc.attendanceSheetID, appendRange, rows); err != nil {
		return nil, goerr.Wrap(err, "failed to append attendance rows",
			goerr.V("tab", tab.Title), goerr.V("count", len(rows)))
	}

	uc.archiveAttendance(ctx, sessionType, date, records)

	logging.From(ctx).Info("Attendance synced",
		"type", string(sessionType), "date", string(date), "records", len(records))

	return &SyncResult{
		Success:       true,
		Message:       fmt.Sprintf("synced %d records for %s on %s", len(records), sessionType, date),
		RecordsSynced: len(records),
	}, nil
}

// attendanceTab resolves the session type's tab by position. Tab 0 holds
// standups, tab 1 learning hours; the spreadsheet is human-maintained, so a
// sheet with fewer tabs than expected is refused rather than guessed at.
func (uc *UseCases) attendanceTab(ctx context.Context, sessionType types.SessionType) (*sheets.Tab, error) {
	tabs, err := uc.sheetsService.ListTabs(ctx, uc.attendanceSheetID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list spreadsheet tabs")
	}

	idx := sessionType.SheetTabIndex()
	if len(tabs) < 2 || idx >= len(tabs) {
		return nil, goerr.New("attendance spreadsheet must have a tab per session type",
			goerr.V("tabs", len(tabs)), goerr.V("wantIndex", idx))
	}
	if tabs[idx].Title == "" {
		return nil, goerr.New("attendance tab has no title",
			goerr.V("index", idx), goerr.V("tabID", tabs[idx].ID))
	}
	return &tabs[idx], nil
}

// deleteDateRows removes every row whose first column equals the date, in a
// single batched request. Row 0 is the header and never matches deletion.
func (uc *UseCases) deleteDateRows(ctx context.Context, tab *sheets.Tab, date types.SessionDate) error {
	colRange := fmt.Sprintf("'%s'!A:A", tab.Title)
	column, err := uc.sheetsService.GetValues(ctx, uc.attendanceSheetID, colRange)
	if err != nil {
		return goerr.Wrap(err, "failed to read date column", goerr.V("tab", tab.Title))
	}

	var stale []int64
	for i, row := range column {
		if i == 0 {
			continue
		}
		if len(row) > 0 && row[0] == date.String() {
			stale = append(stale, int64(i))
		}
	}
	if len(stale) == 0 {
		return nil
	}

	if err := uc.sheetsService.DeleteRows(ctx, uc.attendanceSheetID, tab.ID, stale); err != nil {
		return goerr.Wrap(err, "failed to delete stale rows",
			goerr.V("tab", tab.Title), goerr.V("count", len(stale)))
	}
	return nil
}

// archiveAttendance snapshots the synced records to Cloud Storage. Best
// effort: archive failure never fails the sync.
func (uc *UseCases) archiveAttendance(ctx context.Context, sessionType types.SessionType, date types.SessionDate, records []*model.AttendanceRecord) {
	if uc.archiveService == nil {
		return
	}
	if err := uc.archiveService.SaveAttendance(ctx, sessionType, date, records); err != nil {
		logging.From(ctx).Warn("Failed to archive attendance snapshot",
			"type", string(sessionType), "date", string(date), "error", err.Error())
	}
}
