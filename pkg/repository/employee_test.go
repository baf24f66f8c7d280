package repository_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/nxtprof/nxtprof/pkg/domain/interfaces"
	"github.com/nxtprof/nxtprof/pkg/domain/model"
)

func runEmployeeRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Save and Get round-trips an employee", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		emp := &model.Employee{
			ID:         "uid-1",
			Name:       "Asha Rao",
			Email:      "asha@example.com",
			EmployeeID: "NW123",
		}
		gt.NoError(t, repo.Employee().Save(ctx, emp)).Required()

		got, err := repo.Employee().Get(ctx, "uid-1")
		gt.NoError(t, err).Required()
		gt.Value(t, got.Name).Equal("Asha Rao")
		gt.Value(t, got.EmployeeID).Equal("NW123")
		gt.Bool(t, got.Archived).False()
	})

	t.Run("Save without id fails", func(t *testing.T) {
		repo := newRepo(t)
		err := repo.Employee().Save(context.Background(), &model.Employee{Name: "nobody"})
		gt.Value(t, err).NotNil()
	})

	t.Run("ListActive excludes archived employees", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		gt.NoError(t, repo.Employee().Save(ctx, &model.Employee{ID: "u1", Name: "A", EmployeeID: "E1"})).Required()
		gt.NoError(t, repo.Employee().Save(ctx, &model.Employee{ID: "u2", Name: "B", EmployeeID: "E2", Archived: true})).Required()
		gt.NoError(t, repo.Employee().Save(ctx, &model.Employee{ID: "u3", Name: "C", EmployeeID: "E3"})).Required()

		active, err := repo.Employee().ListActive(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, active).Length(2)
		for _, emp := range active {
			gt.Bool(t, emp.Archived).False()
		}

		all, err := repo.Employee().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, all).Length(3)
	})

	t.Run("SetArchived toggles the flag", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		gt.NoError(t, repo.Employee().Save(ctx, &model.Employee{ID: "u1", Name: "A", EmployeeID: "E1"})).Required()
		gt.NoError(t, repo.Employee().SetArchived(ctx, "u1", true)).Required()

		got, err := repo.Employee().Get(ctx, "u1")
		gt.NoError(t, err).Required()
		gt.Bool(t, got.Archived).True()

		gt.NoError(t, repo.Employee().SetArchived(ctx, "u1", false)).Required()
		got, err = repo.Employee().Get(ctx, "u1")
		gt.NoError(t, err).Required()
		gt.Bool(t, got.Archived).False()
	})

	t.Run("SetArchived fails for unknown employee", func(t *testing.T) {
		repo := newRepo(t)
		err := repo.Employee().SetArchived(context.Background(), "no-such-uid", true)
		gt.Value(t, err).NotNil()
	})
}

func TestEmployeeRepository_Memory(t *testing.T) {
	runEmployeeRepositoryTest(t, newMemoryRepo)
}

func TestEmployeeRepository_Firestore(t *testing.T) {
	runEmployeeRepositoryTest(t, newFirestoreRepo)
}
