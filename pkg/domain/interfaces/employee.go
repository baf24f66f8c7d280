package interfaces

import (
	"context"

	"github.com/nxtprof/nxtprof/pkg/domain/model"
)

// EmployeeRepository provides access to the employee roster
type EmployeeRepository interface {
	// Get retrieves a single employee by UID
	Get(ctx context.Context, uid string) (*model.Employee, error)

	// List retrieves all employees, including archived ones
	List(ctx context.Context) ([]*model.Employee, error)

	// ListActive retrieves all non-archived employees
	ListActive(ctx context.Context) ([]*model.Employee, error)

	// Save creates or replaces an employee document
	Save(ctx context.Context, emp *model.Employee) error

	// SetArchived toggles the soft-delete flag
	SetArchived(ctx context.Context, uid string, archived bool) error
}
