package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/nxtprof/nxtprof/pkg/domain/model"
	"github.com/nxtprof/nxtprof/pkg/domain/types"
	"github.com/nxtprof/nxtprof/pkg/utils/logging"
)

// placeholderReason fills the reason column when an employee is marked
// Not Available without one.
const placeholderReason = "No reason provided"

// MarkAttendance records one employee's live status on the active session.
// Last write wins.
func (uc *UseCases) MarkAttendance(ctx context.Context, sessionType types.SessionType, date types.SessionDate, employeeUID string, status types.AttendanceStatus, reason string) error {
	if _, err := requireUser(ctx); err != nil {
		return err
	}
	if !status.IsValid() {
		return goerr.Wrap(ErrInvalidArgument, "invalid attendance status",
			goerr.V("status", string(status)))
	}
	if reason != "" && !status.RequiresReason() {
		return goerr.Wrap(ErrInvalidArgument, "reason is only accepted for Not Available",
			goerr.V("status", string(status)))
	}

	if _, err := uc.repo.Employee().Get(ctx, employeeUID); err != nil {
		if isNotFound(err) {
			return goerr.Wrap(ErrEmployeeNotFound, "unknown employee", goerr.V("uid", employeeUID))
		}
		return goerr.Wrap(err, "failed to get employee")
	}

	session, err := uc.repo.Session().Get(ctx, sessionType, date)
	if err != nil {
		if isNotFound(err) {
			return goerr.Wrap(ErrSessionNotFound, "no session for date",
				goerr.V("type", string(sessionType)), goerr.V("date", string(date)))
		}
		return goerr.Wrap(err, "failed to get session")
	}
	if session.Status != types.SessionStatusActive {
		return goerr.Wrap(ErrSessionNotActive, "attendance can only be marked on an active session",
			goerr.V("status", string(session.Status)))
	}

	if err := uc.repo.Session().SetTempAttendance(ctx, sessionType, date, employeeUID, status, reason); err != nil {
		return goerr.Wrap(err, "failed to mark attendance",
			goerr.V("uid", employeeUID), goerr.V("date", string(date)))
	}

	return nil
}

// finalizeAttendance writes the finalized record for every active employee in
// one atomic batch. Employees never marked default to Missed; Not Available
// without a reason gets a placeholder so the spreadsheet column is never blank.
func (uc *UseCases) finalizeAttendance(ctx context.Context, sessionType types.SessionType, session *model.Session) error {
	employees, err := uc.repo.Employee().ListActive(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to list active employees")
	}

	markedAt := uc.now()
	records := make([]*model.AttendanceRecord, 0, len(employees))
	for _, emp := range employees {
		status := session.TempAttendance[emp.ID].Normalize()
		reason := session.AbsenceReasons[emp.ID]
		if status.RequiresReason() && reason == "" {
			reason = placeholderReason
		}
		if !status.RequiresReason() {
			reason = ""
		}
		records = append(records, model.NewAttendanceRecord(
			sessionType, session.Date, emp, status, reason, session.ScheduledTime, markedAt))
	}

	if err := uc.repo.Attendance().SaveAll(ctx, sessionType, records); err != nil {
		return goerr.Wrap(err, "failed to save attendance batch",
			goerr.V("type", string(sessionType)),
			goerr.V("date", string(session.Date)),
			goerr.V("count", len(records)))
	}

	logging.From(ctx).Info("Attendance finalized",
		"type", string(sessionType), "date", string(session.Date), "count", len(records))
	return nil
}

// FinalizeSessionAttendance writes the current live statuses as finalized
// records without ending the session. Useful for a mid-session snapshot; the
// deterministic record ids make the later end-of-session batch an upsert.
func (uc *UseCases) FinalizeSessionAttendance(ctx context.Context, sessionType types.SessionType, date types.SessionDate) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}

	session, err := uc.repo.Session().Get(ctx, sessionType, date)
	if err != nil {
		if isNotFound(err) {
			return goerr.Wrap(ErrSessionNotFound, "no session for date",
				goerr.V("type", string(sessionType)), goerr.V("date", string(date)))
		}
		return goerr.Wrap(err, "failed to get session")
	}
	if session.Status != types.SessionStatusActive {
		return goerr.Wrap(ErrSessionNotActive, "finalize requires an active session",
			goerr.V("status", string(session.Status)))
	}

	return uc.finalizeAttendance(ctx, sessionType, session)
}

// ListAttendance returns the finalized records for a session date
func (uc *UseCases) ListAttendance(ctx context.Context, sessionType types.SessionType, date types.SessionDate) ([]*model.AttendanceRecord, error) {
	if _, err := requireUser(ctx); err != nil {
		return nil, err
	}

	records, err := uc.repo.Attendance().ListBySession(ctx, sessionType, date)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list attendance",
			goerr.V("type", string(sessionType)), goerr.V("date", string(date)))
	}
	return records, nil
}
