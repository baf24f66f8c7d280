package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/nxtprof/nxtprof/pkg/domain/interfaces"
)

type Firestore struct {
	client        *firestore.Client
	employee      *employeeRepository
	session       *sessionRepository
	attendance    *attendanceRepository
	learningPoint *learningPointRepository
	feedback      *feedbackRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.employee.collectionPrefix = prefix
		f.session.collectionPrefix = prefix
		f.attendance.collectionPrefix = prefix
		f.learningPoint.collectionPrefix = prefix
		f.feedback.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID), goerr.V("databaseID", databaseID))
	}

	f := &Firestore{
		client:        client,
		employee:      newEmployeeRepository(client),
		session:       newSessionRepository(client),
		attendance:    newAttendanceRepository(client),
		learningPoint: newLearningPointRepository(client),
		feedback:      newFeedbackRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Employee() interfaces.EmployeeRepository {
	return f.employee
}

func (f *Firestore) Session() interfaces.SessionRepository {
	return f.session
}

func (f *Firestore) Attendance() interfaces.AttendanceRepository {
	return f.attendance
}

func (f *Firestore) LearningPoint() interfaces.LearningPointRepository {
	return f.learningPoint
}

func (f *Firestore) Feedback() interfaces.FeedbackRepository {
	return f.feedback
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

func prefixed(prefix, name string) string {
	if prefix != "" {
		return prefix + "_" + name
	}
	return name
}
