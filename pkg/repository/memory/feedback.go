package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nxtprof/nxtprof/pkg/domain/model"
)

type feedbackRepository struct {
	mu       sync.RWMutex
	feedback map[string]*model.PeerFeedback
}

func newFeedbackRepository() *feedbackRepository {
	return &feedbackRepository{
		feedback: make(map[string]*model.PeerFeedback),
	}
}

func copyFeedback(fb *model.PeerFeedback) *model.PeerFeedback {
	copied := *fb
	if fb.Summary != nil {
		summary := *fb.Summary
		copied.Summary = &summary
	}
	return &copied
}

func (r *feedbackRepository) Create(ctx context.Context, fb *model.PeerFeedback) (*model.PeerFeedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyFeedback(fb)
	created.ID = uuid.NewString()
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	r.feedback[created.ID] = created
	return copyFeedback(created), nil
}

func (r *feedbackRepository) ListByRecipient(ctx context.Context, recipientUID string) ([]*model.PeerFeedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []*model.PeerFeedback
	for _, fb := range r.feedback {
		if fb.RecipientUID == recipientUID {
			items = append(items, copyFeedback(fb))
		}
	}
	sortFeedback(items)
	return items, nil
}

func (r *feedbackRepository) ListByGiver(ctx context.Context, giverUID string) ([]*model.PeerFeedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []*model.PeerFeedback
	for _, fb := range r.feedback {
		if fb.GiverUID == giverUID {
			items = append(items, copyFeedback(fb))
		}
	}
	sortFeedback(items)
	return items, nil
}

// sortFeedback orders newest first, matching the Firestore backend
func sortFeedback(items []*model.PeerFeedback) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}
