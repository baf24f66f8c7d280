package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/nxtprof/nxtprof/pkg/domain/model"
	"github.com/nxtprof/nxtprof/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type learningPointRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newLearningPointRepository(client *firestore.Client) *learningPointRepository {
	return &learningPointRepository{client: client}
}

func (r *learningPointRepository) collection() string {
	return prefixed(r.collectionPrefix, "learning_points")
}

func (r *learningPointRepository) Create(ctx context.Context, point *model.LearningPoint) (*model.LearningPoint, error) {
	created := *point
	created.ID = uuid.NewString()

	if _, err := r.client.Collection(r.collection()).Doc(created.ID).Set(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create learning point",
			goerr.V("session", point.SessionID), goerr.V("user", point.UserID))
	}

	return &created, nil
}

func (r *learningPointRepository) Get(ctx context.Context, id string) (*model.LearningPoint, error) {
	docSnap, err := r.client.Collection(r.collection()).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "learning point not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get learning point", goerr.V("id", id))
	}

	var point model.LearningPoint
	if err := docSnap.DataTo(&point); err != nil {
		return nil, goerr.Wrap(err, "failed to decode learning point", goerr.V("id", id))
	}
	point.ID = docSnap.Ref.ID

	return &point, nil
}

func (r *learningPointRepository) Update(ctx context.Context, point *model.LearningPoint) error {
	docRef := r.client.Collection(r.collection()).Doc(point.ID)

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "learning point not found", goerr.V("id", point.ID))
		}
		return goerr.Wrap(err, "failed to check learning point existence", goerr.V("id", point.ID))
	}

	if _, err := docRef.Set(ctx, point); err != nil {
		return goerr.Wrap(err, "failed to update learning point", goerr.V("id", point.ID))
	}
	return nil
}

func (r *learningPointRepository) ListBySession(ctx context.Context, sessionID types.SessionDate) ([]*model.LearningPoint, error) {
	iter := r.client.Collection(r.collection()).
		Where("sessionId", "==", sessionID.String()).
		Documents(ctx)
	return r.list(iter, sessionID)
}

func (r *learningPointRepository) ListByUser(ctx context.Context, userID string) ([]*model.LearningPoint, error) {
	iter := r.client.Collection(r.collection()).
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var points []*model.LearningPoint
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate learning points", goerr.V("user", userID))
		}

		var point model.LearningPoint
		if err := docSnap.DataTo(&point); err != nil {
			return nil, goerr.Wrap(err, "failed to decode learning point", goerr.V("doc_id", docSnap.Ref.ID))
		}
		point.ID = docSnap.Ref.ID

		points = append(points, &point)
	}

	return points, nil
}

func (r *learningPointRepository) ListLocked(ctx context.Context, sessionID types.SessionDate) ([]*model.LearningPoint, error) {
	iter := r.client.Collection(r.collection()).
		Where("sessionId", "==", sessionID.String()).
		Where("editable", "==", false).
		Documents(ctx)
	return r.list(iter, sessionID)
}

func (r *learningPointRepository) list(iter *firestore.DocumentIterator, sessionID types.SessionDate) ([]*model.LearningPoint, error) {
	defer iter.Stop()

	var points []*model.LearningPoint
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate learning points", goerr.V("session", sessionID))
		}

		var point model.LearningPoint
		if err := docSnap.DataTo(&point); err != nil {
			return nil, goerr.Wrap(err, "failed to decode learning point", goerr.V("doc_id", docSnap.Ref.ID))
		}
		point.ID = docSnap.Ref.ID

		points = append(points, &point)
	}

	return points, nil
}

// LockBySession flips editable=false on every open point of the session in a
// single transaction, pairing with the session's ended transition so points
// become immutable at the same moment the session closes.
func (r *learningPointRepository) LockBySession(ctx context.Context, sessionID types.SessionDate) (int, error) {
	locked := 0
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		locked = 0
		query := r.client.Collection(r.collection()).
			Where("sessionId", "==", sessionID.String()).
			Where("editable", "==", true)

		iter := tx.Documents(query)
		defer iter.Stop()

		var refs []*firestore.DocumentRef
		for {
			docSnap, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				return goerr.Wrap(err, "failed to iterate open learning points",
					goerr.V("session", sessionID))
			}
			refs = append(refs, docSnap.Ref)
		}

		for _, ref := range refs {
			if err := tx.Update(ref, []firestore.Update{
				{Path: "editable", Value: false},
			}); err != nil {
				return goerr.Wrap(err, "failed to lock learning point", goerr.V("id", ref.ID))
			}
			locked++
		}
		return nil
	})
	if err != nil {
		return 0, goerr.Wrap(err, "failed to lock learning points", goerr.V("session", sessionID))
	}

	return locked, nil
}
