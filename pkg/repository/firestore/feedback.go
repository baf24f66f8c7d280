package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/nxtprof/nxtprof/pkg/domain/model"
	"google.golang.org/api/iterator"
)

type feedbackRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newFeedbackRepository(client *firestore.Client) *feedbackRepository {
	return &feedbackRepository{client: client}
}

func (r *feedbackRepository) collection() string {
	return prefixed(r.collectionPrefix, "givenPeerFeedback")
}

func (r *feedbackRepository) Create(ctx context.Context, fb *model.PeerFeedback) (*model.PeerFeedback, error) {
	created := *fb
	created.ID = uuid.NewString()

	if _, err := r.client.Collection(r.collection()).Doc(created.ID).Set(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create feedback",
			goerr.V("giver", fb.GiverUID), goerr.V("recipient", fb.RecipientUID))
	}

	return &created, nil
}

func (r *feedbackRepository) ListByRecipient(ctx context.Context, recipientUID string) ([]*model.PeerFeedback, error) {
	iter := r.client.Collection(r.collection()).
		Where("recipientUid", "==", recipientUID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	return r.list(iter)
}

func (r *feedbackRepository) ListByGiver(ctx context.Context, giverUID string) ([]*model.PeerFeedback, error) {
	iter := r.client.Collection(r.collection()).
		Where("giverUid", "==", giverUID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	return r.list(iter)
}

func (r *feedbackRepository) list(iter *firestore.DocumentIterator) ([]*model.PeerFeedback, error) {
	defer iter.Stop()

	var items []*model.PeerFeedback
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate feedback")
		}

		var fb model.PeerFeedback
		if err := docSnap.DataTo(&fb); err != nil {
			return nil, goerr.Wrap(err, "failed to decode feedback", goerr.V("doc_id", docSnap.Ref.ID))
		}
		fb.ID = docSnap.Ref.ID

		items = append(items, &fb)
	}

	return items, nil
}
