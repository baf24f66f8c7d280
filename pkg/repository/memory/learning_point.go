package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/nxtprof/nxtprof/pkg/domain/model"
	"github.com/nxtprof/nxtprof/pkg/domain/types"
)

type learningPointRepository struct {
	mu     sync.RWMutex
	points map[string]*model.LearningPoint
}

func newLearningPointRepository() *learningPointRepository {
	return &learningPointRepository{
		points: make(map[string]*model.LearningPoint),
	}
}

func copyLearningPoint(p *model.LearningPoint) *model.LearningPoint {
	copied := *p
	return &copied
}

func (r *learningPointRepository) Create(ctx context.Context, point *model.LearningPoint) (*model.LearningPoint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyLearningPoint(point)
	created.ID = uuid.NewString()
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	r.points[created.ID] = created
	return copyLearningPoint(created), nil
}

func (r *learningPointRepository) Get(ctx context.Context, id string) (*model.LearningPoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, exists := r.points[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "learning point not found", goerr.V("id", id))
	}
	return copyLearningPoint(p), nil
}

func (r *learningPointRepository) Update(ctx context.Context, point *model.LearningPoint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.points[point.ID]; !exists {
		return goerr.Wrap(ErrNotFound, "learning point not found", goerr.V("id", point.ID))
	}

	r.points[point.ID] = copyLearningPoint(point)
	return nil
}

func (r *learningPointRepository) ListBySession(ctx context.Context, sessionID types.SessionDate) ([]*model.LearningPoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var points []*model.LearningPoint
	for _, p := range r.points {
		if p.SessionID == sessionID.String() {
			points = append(points, copyLearningPoint(p))
		}
	}
	sortLearningPoints(points)
	return points, nil
}

func (r *learningPointRepository) ListByUser(ctx context.Context, userID string) ([]*model.LearningPoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var points []*model.LearningPoint
	for _, p := range r.points {
		if p.UserID == userID {
			points = append(points, copyLearningPoint(p))
		}
	}
	// newest first, unlike the session listing
	sort.Slice(points, func(i, j int) bool {
		if points[i].CreatedAt.Equal(points[j].CreatedAt) {
			return points[i].ID < points[j].ID
		}
		return points[i].CreatedAt.After(points[j].CreatedAt)
	})
	return points, nil
}

func (r *learningPointRepository) ListLocked(ctx context.Context, sessionID types.SessionDate) ([]*model.LearningPoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var points []*model.LearningPoint
	for _, p := range r.points {
		if p.SessionID == sessionID.String() && !p.Editable {
			points = append(points, copyLearningPoint(p))
		}
	}
	sortLearningPoints(points)
	return points, nil
}

func (r *learningPointRepository) LockBySession(ctx context.Context, sessionID types.SessionDate) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	locked := 0
	for _, p := range r.points {
		if p.SessionID == sessionID.String() && p.Editable {
			p.Editable = false
			locked++
		}
	}
	return locked, nil
}

func sortLearningPoints(points []*model.LearningPoint) {
	sort.Slice(points, func(i, j int) bool {
		if points[i].CreatedAt.Equal(points[j].CreatedAt) {
			return points[i].ID < points[j].ID
		}
		return points[i].CreatedAt.Before(points[j].CreatedAt)
	})
}
