package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/nxtprof/nxtprof/pkg/domain/model"
	"github.com/nxtprof/nxtprof/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type sessionRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newSessionRepository(client *firestore.Client) *sessionRepository {
	return &sessionRepository{client: client}
}

func (r *sessionRepository) collection(sessionType types.SessionType) string {
	return prefixed(r.collectionPrefix, sessionType.SessionCollection())
}

func (r *sessionRepository) Create(ctx context.Context, session *model.Session) error {
	docRef := r.client.Collection(r.collection(session.Type)).Doc(session.Date.String())

	if _, err := docRef.Create(ctx, session); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return goerr.Wrap(ErrAlreadyExists, "session already exists",
				goerr.V("type", session.Type), goerr.V("date", session.Date))
		}
		return goerr.Wrap(err, "failed to create session",
			goerr.V("type", session.Type), goerr.V("date", session.Date))
	}
	return nil
}

func (r *sessionRepository) Get(ctx context.Context, sessionType types.SessionType, date types.SessionDate) (*model.Session, error) {
	docSnap, err := r.client.Collection(r.collection(sessionType)).Doc(date.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "session not found",
				goerr.V("type", sessionType), goerr.V("date", date))
		}
		return nil, goerr.Wrap(err, "failed to get session",
			goerr.V("type", sessionType), goerr.V("date", date))
	}

	return r.decode(docSnap, sessionType)
}

func (r *sessionRepository) Update(ctx context.Context, session *model.Session) error {
	docRef := r.client.Collection(r.collection(session.Type)).Doc(session.Date.String())

	// Check existence so a vanished document surfaces as NotFound rather
	// than being silently recreated.
	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "session not found",
				goerr.V("type", session.Type), goerr.V("date", session.Date))
		}
		return goerr.Wrap(err, "failed to check session existence",
			goerr.V("type", session.Type), goerr.V("date", session.Date))
	}

	if _, err := docRef.Set(ctx, session); err != nil {
		return goerr.Wrap(err, "failed to update session",
			goerr.V("type", session.Type), goerr.V("date", session.Date))
	}
	return nil
}

func (r *sessionRepository) SetTempAttendance(ctx context.Context, sessionType types.SessionType, date types.SessionDate, employeeUID string, attendanceStatus types.AttendanceStatus, reason string) error {
	docRef := r.client.Collection(r.collection(sessionType)).Doc(date.String())

	updates := []firestore.Update{
		{FieldPath: firestore.FieldPath{"tempAttendance", employeeUID}, Value: attendanceStatus.String()},
	}
	if reason != "" {
		updates = append(updates, firestore.Update{
			FieldPath: firestore.FieldPath{"absenceReasons", employeeUID}, Value: reason,
		})
	}

	if _, err := docRef.Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "session not found",
				goerr.V("type", sessionType), goerr.V("date", date))
		}
		return goerr.Wrap(err, "failed to update temp attendance",
			goerr.V("type", sessionType), goerr.V("date", date), goerr.V("employee", employeeUID))
	}
	return nil
}

func (r *sessionRepository) ListUnsynced(ctx context.Context, sessionType types.SessionType) ([]*model.Session, error) {
	iter := r.client.Collection(r.collection(sessionType)).
		Where("status", "==", types.SessionStatusEnded.String()).
		Where("synced", "==", false).
		Documents(ctx)
	defer iter.Stop()

	var sessions []*model.Session
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate sessions", goerr.V("type", sessionType))
		}

		session, err := r.decode(docSnap, sessionType)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	return sessions, nil
}

func (r *sessionRepository) decode(docSnap *firestore.DocumentSnapshot, sessionType types.SessionType) (*model.Session, error) {
	var session model.Session
	if err := docSnap.DataTo(&session); err != nil {
		return nil, goerr.Wrap(err, "failed to decode session", goerr.V("doc_id", docSnap.Ref.ID))
	}
	session.Date = types.SessionDate(docSnap.Ref.ID)
	session.Type = sessionType
	return &session, nil
}
