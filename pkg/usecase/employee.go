package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/nxtprof/nxtprof/pkg/domain/model"
)

// ListEmployees returns the roster. Only administrators see archived members.
func (uc *UseCases) ListEmployees(ctx context.Context, includeArchived bool) ([]*model.Employee, error) {
	token, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	if includeArchived {
		if !token.Admin {
			return nil, goerr.Wrap(ErrPermissionDenied, "archived employees are admin-only")
		}
		employees, err := uc.repo.Employee().List(ctx)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list employees")
		}
		return employees, nil
	}

	employees, err := uc.repo.Employee().ListActive(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list active employees")
	}
	return employees, nil
}

// GetEmployee retrieves one roster member by UID
func (uc *UseCases) GetEmployee(ctx context.Context, uid string) (*model.Employee, error) {
	if _, err := requireUser(ctx); err != nil {
		return nil, err
	}

	emp, err := uc.repo.Employee().Get(ctx, uid)
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(ErrEmployeeNotFound, "unknown employee", goerr.V("uid", uid))
		}
		return nil, goerr.Wrap(err, "failed to get employee")
	}
	return emp, nil
}

// SaveEmployee creates or updates a roster member
func (uc *UseCases) SaveEmployee(ctx context.Context, emp *model.Employee) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	if emp.ID == "" || strings.TrimSpace(emp.Name) == "" {
		return goerr.Wrap(ErrInvalidArgument, "employee uid and name are required")
	}
	if emp.EmployeeID == "" {
		return goerr.Wrap(ErrInvalidArgument, "employee id is required",
			goerr.V("uid", emp.ID))
	}

	if err := uc.repo.Employee().Save(ctx, emp); err != nil {
		return goerr.Wrap(err, "failed to save employee", goerr.V("uid", emp.ID))
	}
	return nil
}

// SetEmployeeArchived toggles the soft-delete flag. Archived employees stop
// appearing in attendance seeding but their history stays intact.
func (uc *UseCases) SetEmployeeArchived(ctx context.Context, uid string, archived bool) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}

	if err := uc.repo.Employee().SetArchived(ctx, uid, archived); err != nil {
		if isNotFound(err) {
			return goerr.Wrap(ErrEmployeeNotFound, "unknown employee", goerr.V("uid", uid))
		}
		return goerr.Wrap(err, "failed to set archived flag", goerr.V("uid", uid))
	}
	return nil
}
