package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/nxtprof/nxtprof/pkg/domain/types"
	"github.com/nxtprof/nxtprof/pkg/service/sheets"
	"github.com/nxtprof/nxtprof/pkg/usecase"
)

const pointsSheetID = "points-sheet"

var pointsHeader = []string{
	"Date", "Task", "Framework Category", "Subcategory", "Point Type",
	"Recipient", "Situation", "Behavior", "Impact", "Action Item",
}

// newPointsFixture ends a learning session with points from two authors and
// returns usecases wired to a mock spreadsheet with per-employee subsheets
func newPointsFixture(t *testing.T) (*usecase.UseCases, *sheets.Mock) {
	t.Helper()

	mock := sheets.NewMock("Standups", "Learning Hours", "Asha Rao | E001", "Dev Mehta | E002")
	mock.SetRows("Asha Rao | E001", [][]string{pointsHeader})
	mock.SetRows("Dev Mehta | E002", [][]string{pointsHeader})

	uc, repo := newUseCases(t, usecase.WithSheets(mock, attendanceSheetID, pointsSheetID))
	seedEmployees(t, repo, testEmployees()...)

	ctx := adminCtx()
	scheduleAndActivate(t, uc, types.SessionTypeLearningHour, testDate)

	_, err := uc.CreateLearningPoint(userCtx("u1"), newTestPoint(testDate, "Batch row deletes"))
	gt.NoError(t, err).Required()
	_, err = uc.CreateLearningPoint(userCtx("u1"), newTestPoint(testDate, "Subsheet parsing"))
	gt.NoError(t, err).Required()
	_, err = uc.CreateLearningPoint(userCtx("u2"), newTestPoint(testDate, "Session locking"))
	gt.NoError(t, err).Required()

	gt.NoError(t, uc.EndSession(ctx, types.SessionTypeLearningHour, testDate)).Required()

	return uc, mock
}

func TestSyncLearningPoints(t *testing.T) {
	uc, mock := newPointsFixture(t)

	result, err := uc.SyncLearningPoints(adminCtx(), testDate)
	gt.NoError(t, err).Required()
	gt.B(t, result.Success).True()
	gt.V(t, result.RecordsSynced).Equal(3)

	gt.A(t, mock.Rows("Asha Rao | E001")).Length(3) // header + 2 points
	gt.A(t, mock.Rows("Dev Mehta | E002")).Length(2)

	rows := mock.Rows("Dev Mehta | E002")
	gt.V(t, rows[1][0]).Equal(testDate.String())
	gt.V(t, rows[1][1]).Equal("Session locking")
	gt.V(t, rows[1][4]).Equal("R1")
}

func TestSyncLearningPointsAtMostOnce(t *testing.T) {
	uc, mock := newPointsFixture(t)
	ctx := adminCtx()

	_, err := uc.SyncLearningPoints(ctx, testDate)
	gt.NoError(t, err).Required()

	// Second run short-circuits on the synced flag without touching the sheet
	result, err := uc.SyncLearningPoints(ctx, testDate)
	gt.NoError(t, err).Required()
	gt.B(t, result.Success).True()
	gt.V(t, result.RecordsSynced).Equal(0)

	gt.A(t, mock.Rows("Asha Rao | E001")).Length(3)
}

func TestSyncLearningPointsDedupe(t *testing.T) {
	uc, mock := newPointsFixture(t)

	// A row with the same (date, task, point type) already exists in the
	// subsheet; the sync must not duplicate it
	mock.SetRows("Asha Rao | E001", [][]string{
		pointsHeader,
		{testDate.String(), "Batch row deletes", "Engineering", "Code Quality", "R1", "", "", "", "", ""},
	})

	result, err := uc.SyncLearningPoints(adminCtx(), testDate)
	gt.NoError(t, err).Required()
	gt.V(t, result.RecordsSynced).Equal(2)
	gt.A(t, mock.Rows("Asha Rao | E001")).Length(3)
}

func TestSyncLearningPointsRequiresEndedSession(t *testing.T) {
	mock := sheets.NewMock("Asha Rao | E001")
	uc, repo := newUseCases(t, usecase.WithSheets(mock, attendanceSheetID, pointsSheetID))
	seedEmployees(t, repo, testEmployees()...)

	scheduleAndActivate(t, uc, types.SessionTypeLearningHour, testDate)

	_, err := uc.SyncLearningPoints(adminCtx(), testDate)
	gt.Error(t, err).Is(usecase.ErrSessionNotEnded)
}

func TestSyncLearningPointsZeroPointsStillMarksSynced(t *testing.T) {
	mock := sheets.NewMock("Asha Rao | E001")
	uc, repo := newUseCases(t, usecase.WithSheets(mock, attendanceSheetID, pointsSheetID))
	seedEmployees(t, repo, testEmployees()...)
	ctx := adminCtx()

	scheduleAndActivate(t, uc, types.SessionTypeLearningHour, testDate)
	gt.NoError(t, uc.EndSession(ctx, types.SessionTypeLearningHour, testDate)).Required()

	result, err := uc.SyncLearningPoints(ctx, testDate)
	gt.NoError(t, err).Required()
	gt.V(t, result.RecordsSynced).Equal(0)

	session, err := uc.GetSession(ctx, types.SessionTypeLearningHour, testDate)
	gt.NoError(t, err).Required()
	gt.B(t, session.Synced).True()
}

// failingSheets delegates to a mock but fails every append
type failingSheets struct {
	*sheets.Mock
}

func (f *failingSheets) AppendRows(ctx context.Context, spreadsheetID, rangeA1 string, rows [][]any) (int, error) {
	return 0, goerr.New("quota exceeded")
}

func TestSyncLearningPointsFailureLeavesUnsynced(t *testing.T) {
	mock := sheets.NewMock("Asha Rao | E001")
	mock.SetRows("Asha Rao | E001", [][]string{pointsHeader})

	uc, repo := newUseCases(t, usecase.WithSheets(&failingSheets{Mock: mock}, attendanceSheetID, pointsSheetID))
	seedEmployees(t, repo, testEmployees()...)
	ctx := adminCtx()

	scheduleAndActivate(t, uc, types.SessionTypeLearningHour, testDate)
	_, err := uc.CreateLearningPoint(userCtx("u1"), newTestPoint(testDate, "Retry semantics"))
	gt.NoError(t, err).Required()
	gt.NoError(t, uc.EndSession(ctx, types.SessionTypeLearningHour, testDate)).Required()

	_, err = uc.SyncLearningPoints(ctx, testDate)
	gt.Error(t, err)

	// The synced flag stays false so a later run can retry
	session, err := uc.GetSession(ctx, types.SessionTypeLearningHour, testDate)
	gt.NoError(t, err).Required()
	gt.B(t, session.Synced).False()
}
