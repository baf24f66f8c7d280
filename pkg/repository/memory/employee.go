package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/nxtprof/nxtprof/pkg/domain/model"
)

type employeeRepository struct {
	mu        sync.RWMutex
	employees map[string]*model.Employee
}

func newEmployeeRepository() *employeeRepository {
	return &employeeRepository{
		employees: make(map[string]*model.Employee),
	}
}

func copyEmployee(e *model.Employee) *model.Employee {
	copied := *e
	return &copied
}

func (r *employeeRepository) Get(ctx context.Context, uid string) (*model.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	emp, exists := r.employees[uid]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "employee not found", goerr.V("uid", uid))
	}
	return copyEmployee(emp), nil
}

func (r *employeeRepository) List(ctx context.Context) ([]*model.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	employees := make([]*model.Employee, 0, len(r.employees))
	for _, emp := range r.employees {
		employees = append(employees, copyEmployee(emp))
	}
	sort.Slice(employees, func(i, j int) bool { return employees[i].ID < employees[j].ID })
	return employees, nil
}

func (r *employeeRepository) ListActive(ctx context.Context) ([]*model.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var employees []*model.Employee
	for _, emp := range r.employees {
		if !emp.Archived {
			employees = append(employees, copyEmployee(emp))
		}
	}
	sort.Slice(employees, func(i, j int) bool { return employees[i].ID < employees[j].ID })
	return employees, nil
}

func (r *employeeRepository) Save(ctx context.Context, emp *model.Employee) error {
	if emp.ID == "" {
		return goerr.New("employee id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.employees[emp.ID] = copyEmployee(emp)
	return nil
}

func (r *employeeRepository) SetArchived(ctx context.Context, uid string, archived bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	emp, exists := r.employees[uid]
	if !exists {
		return goerr.Wrap(ErrNotFound, "employee not found", goerr.V("uid", uid))
	}
	emp.Archived = archived
	return nil
}
