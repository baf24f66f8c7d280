package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/nxtprof/nxtprof/pkg/domain/model"
	"github.com/nxtprof/nxtprof/pkg/domain/types"
)

// CreateLearningPoint logs a new point against an open learning session.
// The point belongs to the caller; points cannot be logged once the session
// has ended.
func (uc *UseCases) CreateLearningPoint(ctx context.Context, point *model.LearningPoint) (*model.LearningPoint, error) {
	token, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if point.TaskName == "" || point.FrameworkCategory == "" || point.PointType == "" {
		return nil, goerr.Wrap(ErrInvalidArgument, "task name, framework category and point type are required")
	}
	if !point.Date.IsValid() {
		return nil, goerr.Wrap(ErrInvalidArgument, "invalid session date", goerr.V("date", string(point.Date)))
	}

	session, err := uc.repo.Session().Get(ctx, types.SessionTypeLearningHour, point.Date)
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(ErrSessionNotFound, "no learning session for date",
				goerr.V("date", string(point.Date)))
		}
		return nil, goerr.Wrap(err, "failed to get learning session")
	}
	if session.Status == types.SessionStatusEnded {
		return nil, goerr.Wrap(ErrSessionEnded, "points cannot be logged after the session ends",
			goerr.V("date", string(point.Date)))
	}

	point.UserID = token.Sub
	point.SessionID = point.Date.String()
	point.CreatedAt = uc.now()
	point.Editable = true

	created, err := uc.repo.LearningPoint().Create(ctx, point)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create learning point")
	}
	return created, nil
}

// UpdateLearningPoint edits an existing point. Only the author (or an
// administrator) may edit, and only while the point is still editable.
func (uc *UseCases) UpdateLearningPoint(ctx context.Context, point *model.LearningPoint) error {
	token, err := requireUser(ctx)
	if err != nil {
		return err
	}

	existing, err := uc.repo.LearningPoint().Get(ctx, point.ID)
	if err != nil {
		if isNotFound(err) {
			return goerr.Wrap(ErrLearningPointNotFound, "no such learning point",
				goerr.V("id", point.ID))
		}
		return goerr.Wrap(err, "failed to get learning point")
	}
	if existing.UserID != token.Sub && !token.Admin {
		return goerr.Wrap(ErrPermissionDenied, "only the author may edit a learning point",
			goerr.V("id", point.ID))
	}
	if !existing.Editable {
		return goerr.Wrap(ErrPointLocked, "the owning session has ended", goerr.V("id", point.ID))
	}

	// Ownership, session binding, and lock state never change on edit
	point.UserID = existing.UserID
	point.SessionID = existing.SessionID
	point.Date = existing.Date
	point.CreatedAt = existing.CreatedAt
	point.Editable = existing.Editable

	if err := uc.repo.LearningPoint().Update(ctx, point); err != nil {
		return goerr.Wrap(err, "failed to update learning point", goerr.V("id", point.ID))
	}
	return nil
}

// GetLearningPoint retrieves one point by id
func (uc *UseCases) GetLearningPoint(ctx context.Context, id string) (*model.LearningPoint, error) {
	if _, err := requireUser(ctx); err != nil {
		return nil, err
	}

	point, err := uc.repo.LearningPoint().Get(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(ErrLearningPointNotFound, "no such learning point", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get learning point")
	}
	return point, nil
}

// ListLearningPoints returns all points logged for a session date
func (uc *UseCases) ListLearningPoints(ctx context.Context, date types.SessionDate) ([]*model.LearningPoint, error) {
	if _, err := requireUser(ctx); err != nil {
		return nil, err
	}

	points, err := uc.repo.LearningPoint().ListBySession(ctx, date)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list learning points", goerr.V("date", string(date)))
	}
	return points, nil
}

// ListUserLearningPoints returns a user's points across sessions, newest
// first. An empty userID means the caller's own points.
func (uc *UseCases) ListUserLearningPoints(ctx context.Context, userID string) ([]*model.LearningPoint, error) {
	token, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if userID == "" {
		userID = token.Sub
	}

	points, err := uc.repo.LearningPoint().ListByUser(ctx, userID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list learning points", goerr.V("user", userID))
	}
	return points, nil
}
