package interfaces

import (
	"context"

	"github.com/nxtprof/nxtprof/pkg/domain/model"
	"github.com/nxtprof/nxtprof/pkg/domain/types"
)

// LearningPointRepository provides access to learning points
type LearningPointRepository interface {
	// Create stores a new point and returns it with its generated id
	Create(ctx context.Context, point *model.LearningPoint) (*model.LearningPoint, error)

	// Get retrieves a single point by id
	Get(ctx context.Context, id string) (*model.LearningPoint, error)

	// Update replaces an existing point document
	Update(ctx context.Context, point *model.LearningPoint) error

	// ListBySession returns all points logged for a session
	ListBySession(ctx context.Context, sessionID types.SessionDate) ([]*model.LearningPoint, error)

	// ListByUser returns all points authored by a user, newest first
	ListByUser(ctx context.Context, userID string) ([]*model.LearningPoint, error)

	// ListLocked returns the locked (editable=false) points for a session
	ListLocked(ctx context.Context, sessionID types.SessionDate) ([]*model.LearningPoint, error)

	// LockBySession flips editable=false on every point of the session in
	// one batch and returns the number of points locked
	LockBySession(ctx context.Context, sessionID types.SessionDate) (int, error)
}
