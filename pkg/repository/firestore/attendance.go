package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/nxtprof/nxtprof/pkg/domain/model"
	"github.com/nxtprof/nxtprof/pkg/domain/types"
	"google.golang.org/api/iterator"
)

type attendanceRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newAttendanceRepository(client *firestore.Client) *attendanceRepository {
	return &attendanceRepository{client: client}
}

func (r *attendanceRepository) collection(sessionType types.SessionType) string {
	return prefixed(r.collectionPrefix, sessionType.AttendanceCollection())
}

// SaveAll upserts all records inside one transaction so that finalization is
// all-or-nothing. Record ids are deterministic, so a re-run overwrites the
// prior records instead of appending.
func (r *attendanceRepository) SaveAll(ctx context.Context, sessionType types.SessionType, records []*model.AttendanceRecord) error {
	if len(records) == 0 {
		return nil
	}

	coll := r.client.Collection(r.collection(sessionType))

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		for _, rec := range records {
			if rec.ID == "" {
				return goerr.New("attendance record id is required",
					goerr.V("employee", rec.EmployeeUID))
			}
			if err := tx.Set(coll.Doc(rec.ID), rec); err != nil {
				return goerr.Wrap(err, "failed to set attendance record", goerr.V("id", rec.ID))
			}
		}
		return nil
	})
	if err != nil {
		return goerr.Wrap(err, "failed to save attendance records",
			goerr.V("type", sessionType), goerr.V("count", len(records)))
	}
	return nil
}

func (r *attendanceRepository) ListBySession(ctx context.Context, sessionType types.SessionType, date types.SessionDate) ([]*model.AttendanceRecord, error) {
	iter := r.client.Collection(r.collection(sessionType)).
		Where(sessionType.AttendanceKeyField(), "==", date.String()).
		Documents(ctx)
	defer iter.Stop()

	var records []*model.AttendanceRecord
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate attendance records",
				goerr.V("type", sessionType), goerr.V("date", date))
		}

		var rec model.AttendanceRecord
		if err := docSnap.DataTo(&rec); err != nil {
			return nil, goerr.Wrap(err, "failed to decode attendance record",
				goerr.V("doc_id", docSnap.Ref.ID))
		}
		rec.ID = docSnap.Ref.ID

		records = append(records, &rec)
	}

	return records, nil
}
