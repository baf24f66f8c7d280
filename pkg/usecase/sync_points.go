package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/nxtprof/nxtprof/pkg/domain/model"
	"github.com/nxtprof/nxtprof/pkg/domain/types"
	"github.com/nxtprof/nxtprof/pkg/service/sheets"
	"github.com/nxtprof/nxtprof/pkg/utils/logging"
)

// SyncLearningPoints pushes a session's locked learning points into each
// author's subsheet of the learning-points spreadsheet. The merge is
// additive: rows already present (same date, task, and point type) are left
// untouched and never rewritten. The session's synced flag guarantees
// at-most-once: it is set only after every append succeeded, and a synced
// session short-circuits immediately.
func (uc *UseCases) SyncLearningPoints(ctx context.Context, date types.SessionDate) (*SyncResult, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if uc.sheetsService == nil || uc.learningPointsSheetID == "" {
		return nil, goerr.Wrap(ErrSheetNotConfigured, "learning points spreadsheet is not configured")
	}

	session, err := uc.repo.Session().Get(ctx, types.SessionTypeLearningHour, date)
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(ErrSessionNotFound, "no learning session for date",
				goerr.V("date", string(date)))
		}
		return nil, goerr.Wrap(err, "failed to get learning session")
	}
	if session.Status != types.SessionStatusEnded {
		return nil, goerr.Wrap(ErrSessionNotEnded, "learning points sync requires an ended session",
			goerr.V("date", string(date)), goerr.V("status", string(session.Status)))
	}
	if session.Synced {
		return &SyncResult{
			Success: true,
			Message: fmt.Sprintf("learning session %s already synced", date),
		}, nil
	}

	points, err := uc.repo.LearningPoint().ListLocked(ctx, date)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list locked learning points",
			goerr.V("date", string(date)))
	}

	appended, err := uc.appendPointsToSubsheets(ctx, points)
	if err != nil {
		// The synced flag stays false so the run can be retried; the additive
		// merge makes the retry safe even after a partial append.
		return nil, err
	}

	session.Synced = true
	session.SyncedAt = uc.now()
	if err := uc.repo.Session().Update(ctx, session); err != nil {
		return nil, goerr.Wrap(err, "failed to mark session synced", goerr.V("date", string(date)))
	}

	logging.From(ctx).Info("Learning points synced",
		"date", string(date), "points", len(points), "appended", appended)

	return &SyncResult{
		Success:       true,
		Message:       fmt.Sprintf("synced learning session %s", date),
		RecordsSynced: appended,
	}, nil
}

// appendPointsToSubsheets groups points by author and appends the ones not
// already present in each author's subsheet. Returns the number of rows
// actually appended.
func (uc *UseCases) appendPointsToSubsheets(ctx context.Context, points []*model.LearningPoint) (int, error) {
	if len(points) == 0 {
		return 0, nil
	}

	tabs, err := uc.sheetsService.ListTabs(ctx, uc.learningPointsSheetID)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to list learning points tabs")
	}
	tabByEmployee := make(map[string]sheets.Tab, len(tabs))
	for _, tab := range tabs {
		if employeeID, ok := parseSubsheetTitle(tab.Title); ok {
			tabByEmployee[employeeID] = tab
		}
	}

	byUser := make(map[string][]*model.LearningPoint)
	for _, point := range points {
		byUser[point.UserID] = append(byUser[point.UserID], point)
	}

	total := 0
	for userID, userPoints := range byUser {
		emp, err := uc.repo.Employee().Get(ctx, userID)
		if err != nil {
			if isNotFound(err) {
				logging.From(ctx).Warn("Learning points by unknown employee, skipping",
					"uid", userID, "points", len(userPoints))
				continue
			}
			return 0, goerr.Wrap(err, "failed to get employee", goerr.V("uid", userID))
		}

		tab, ok := tabByEmployee[emp.EmployeeID]
		if !ok {
			logging.From(ctx).Warn("No subsheet for employee, skipping",
				"employeeId", emp.EmployeeID, "points", len(userPoints))
			continue
		}

		n, err := uc.appendNewPoints(ctx, tab, userPoints)
		if err != nil {
			return 0, err
		}
		total += n
	}

	return total, nil
}

// appendNewPoints appends the points missing from one subsheet, deduplicating
// against existing rows and within the batch itself
func (uc *UseCases) appendNewPoints(ctx context.Context, tab sheets.Tab, points []*model.LearningPoint) (int, error) {
	grid, err := uc.sheetsService.GetValues(ctx, uc.learningPointsSheetID, fmt.Sprintf("'%s'!A:J", tab.Title))
	if err != nil {
		return 0, goerr.Wrap(err, "failed to read subsheet", goerr.V("tab", tab.Title))
	}

	seen := make(map[string]bool, len(grid))
	for i, row := range grid {
		if i == 0 || len(row) < 5 {
			continue
		}
		// Columns: date, task, framework category, subcategory, point type, ...
		seen[model.LearningPointDedupeKey(row[0], row[1], row[4])] = true
	}

	var rows [][]any
	for _, point := range points {
		key := point.DedupeKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		rows = append(rows, point.SheetRow())
	}
	if len(rows) == 0 {
		return 0, nil
	}

	appendRange := fmt.Sprintf("'%s'!A:J", tab.Title)
	if _, err := uc.sheetsService.AppendRows(ctx, uc.learningPointsSheetID, appendRange, rows); err != nil {
		return 0, goerr.Wrap(err, "failed to append learning point rows",
			goerr.V("tab", tab.Title), goerr.V("count", len(rows)))
	}
	return len(rows), nil
}

// parseSubsheetTitle extracts the employee id from a "Name | employeeId" tab
// title. Tabs not following the convention are ignored.
func parseSubsheetTitle(title string) (string, bool) {
	idx := strings.LastIndex(title, "|")
	if idx < 0 {
		return "", false
	}
	employeeID := strings.TrimSpace(title[idx+1:])
	if employeeID == "" {
		return "", false
	}
	return employeeID, true
}
