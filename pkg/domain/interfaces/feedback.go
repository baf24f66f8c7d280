package interfaces

import (
	"context"

	"github.com/nxtprof/nxtprof/pkg/domain/model"
)

// FeedbackRepository provides access to peer feedback documents
type FeedbackRepository interface {
	// Create stores a new feedback document and returns it with its id
	Create(ctx context.Context, fb *model.PeerFeedback) (*model.PeerFeedback, error)

	// ListByRecipient returns feedback received by an employee
	ListByRecipient(ctx context.Context, recipientUID string) ([]*model.PeerFeedback, error)

	// ListByGiver returns feedback given by an employee
	ListByGiver(ctx context.Context, giverUID string) ([]*model.PeerFeedback, error)
}
