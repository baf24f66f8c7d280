package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/nxtprof/nxtprof/pkg/domain/model"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type employeeRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newEmployeeRepository(client *firestore.Client) *employeeRepository {
	return &employeeRepository{client: client}
}

func (r *employeeRepository) collection() string {
	return prefixed(r.collectionPrefix, "employees")
}

func (r *employeeRepository) Get(ctx context.Context, uid string) (*model.Employee, error) {
	docSnap, err := r.client.Collection(r.collection()).Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "employee not found", goerr.V("uid", uid))
		}
		return nil, goerr.Wrap(err, "failed to get employee", goerr.V("uid", uid))
	}

	var emp model.Employee
	if err := docSnap.DataTo(&emp); err != nil {
		return nil, goerr.Wrap(err, "failed to decode employee", goerr.V("uid", uid))
	}
	emp.ID = docSnap.Ref.ID

	return &emp, nil
}

func (r *employeeRepository) List(ctx context.Context) ([]*model.Employee, error) {
	return r.list(ctx, r.client.Collection(r.collection()).Documents(ctx))
}

func (r *employeeRepository) ListActive(ctx context.Context) ([]*model.Employee, error) {
	iter := r.client.Collection(r.collection()).Where("archived", "==", false).Documents(ctx)
	return r.list(ctx, iter)
}

func (r *employeeRepository) list(ctx context.Context, iter *firestore.DocumentIterator) ([]*model.Employee, error) {
	defer iter.Stop()

	var employees []*model.Employee
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate employees")
		}

		var emp model.Employee
		if err := docSnap.DataTo(&emp); err != nil {
			return nil, goerr.Wrap(err, "failed to decode employee", goerr.V("doc_id", docSnap.Ref.ID))
		}
		emp.ID = docSnap.Ref.ID

		employees = append(employees, &emp)
	}

	return employees, nil
}

func (r *employeeRepository) Save(ctx context.Context, emp *model.Employee) error {
	if emp.ID == "" {
		return goerr.New("employee id is required")
	}

	if _, err := r.client.Collection(r.collection()).Doc(emp.ID).Set(ctx, emp); err != nil {
		return goerr.Wrap(err, "failed to save employee", goerr.V("uid", emp.ID))
	}
	return nil
}

func (r *employeeRepository) SetArchived(ctx context.Context, uid string, archived bool) error {
	_, err := r.client.Collection(r.collection()).Doc(uid).Update(ctx, []firestore.Update{
		{Path: "archived", Value: archived},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "employee not found", goerr.V("uid", uid))
		}
		return goerr.Wrap(err, "failed to update employee", goerr.V("uid", uid))
	}
	return nil
}
