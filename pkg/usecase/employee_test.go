package usecase_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/nxtprof/nxtprof/pkg/domain/model"
	"github.com/nxtprof/nxtprof/pkg/usecase"
)

func TestSaveAndGetEmployee(t *testing.T) {
	uc, _ := newUseCases(t)
	ctx := adminCtx()

	emp := &model.Employee{ID: "u9", Name: "Rafi Khan", Email: "rafi@example.com", EmployeeID: "E009"}
	gt.NoError(t, uc.SaveEmployee(ctx, emp)).Required()

	got, err := uc.GetEmployee(userCtx("u1"), "u9")
	gt.NoError(t, err).Required()
	gt.V(t, got.Name).Equal("Rafi Khan")
	gt.V(t, got.EmployeeID).Equal("E009")

	t.Run("rejects incomplete employee", func(t *testing.T) {
		err := uc.SaveEmployee(ctx, &model.Employee{ID: "u10", Name: "No ExtID"})
		gt.Error(t, err).Is(usecase.ErrInvalidArgument)
	})

	t.Run("requires admin", func(t *testing.T) {
		err := uc.SaveEmployee(userCtx("u1"), emp)
		gt.Error(t, err).Is(usecase.ErrPermissionDenied)
	})
}

func TestArchiveEmployee(t *testing.T) {
	uc, repo := newUseCases(t)
	seedEmployees(t, repo, testEmployees()...)
	ctx := adminCtx()

	gt.NoError(t, uc.SetEmployeeArchived(ctx, "u3", true)).Required()

	active, err := uc.ListEmployees(userCtx("u1"), false)
	gt.NoError(t, err).Required()
	gt.A(t, active).Length(2)

	t.Run("archived listing is admin-only", func(t *testing.T) {
		all, err := uc.ListEmployees(ctx, true)
		gt.NoError(t, err).Required()
		gt.A(t, all).Length(3)

		_, err = uc.ListEmployees(userCtx("u1"), true)
		gt.Error(t, err).Is(usecase.ErrPermissionDenied)
	})

	t.Run("unarchive restores the member", func(t *testing.T) {
		gt.NoError(t, uc.SetEmployeeArchived(ctx, "u3", false)).Required()
		active, err := uc.ListEmployees(userCtx("u1"), false)
		gt.NoError(t, err).Required()
		gt.A(t, active).Length(3)
	})

	t.Run("unknown employee", func(t *testing.T) {
		err := uc.SetEmployeeArchived(ctx, "ghost", true)
		gt.Error(t, err).Is(usecase.ErrEmployeeNotFound)
	})
}
