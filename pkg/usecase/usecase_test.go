package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/nxtprof/nxtprof/pkg/domain/model"
	"github.com/nxtprof/nxtprof/pkg/domain/model/auth"
	"github.com/nxtprof/nxtprof/pkg/domain/types"
	"github.com/nxtprof/nxtprof/pkg/repository/memory"
	"github.com/nxtprof/nxtprof/pkg/usecase"
)

func adminCtx() context.Context {
	return auth.ContextWithToken(context.Background(), &auth.Token{
		Sub:   "admin-uid",
		Email: "admin@example.com",
		Name:  "Admin",
		Admin: true,
	})
}

func userCtx(uid string) context.Context {
	return auth.ContextWithToken(context.Background(), &auth.Token{
		Sub:   uid,
		Email: uid + "@example.com",
		Name:  "User " + uid,
	})
}

var fixedNow = time.Date(2025, 4, 7, 9, 30, 0, 0, time.UTC)

func seedEmployees(t *testing.T, repo *memory.Memory, employees ...*model.Employee) {
	t.Helper()
	for _, emp := range employees {
		gt.NoError(t, repo.Employee().Save(context.Background(), emp)).Required()
	}
}

func testEmployees() []*model.Employee {
	return []*model.Employee{
		{ID: "u1", Name: "Asha Rao", Email: "asha@example.com", EmployeeID: "E001"},
		{ID: "u2", Name: "Dev Mehta", Email: "dev@example.com", EmployeeID: "E002"},
		{ID: "u3", Name: "Kiran Shah", Email: "kiran@example.com", EmployeeID: "E003"},
	}
}

// newUseCases builds a UseCases over a fresh in-memory repository with a
// fixed clock
func newUseCases(t *testing.T, opts ...usecase.Option) (*usecase.UseCases, *memory.Memory) {
	t.Helper()
	repo := memory.New()
	opts = append([]usecase.Option{usecase.WithClock(func() time.Time { return fixedNow })}, opts...)
	return usecase.New(repo, opts...), repo
}

func newTestPoint(date types.SessionDate, task string) *model.LearningPoint {
	return &model.LearningPoint{
		TaskName:          task,
		FrameworkCategory: "Engineering",
		Subcategory:       "Code Quality",
		PointType:         "R1",
		Situation:         "While reviewing the sync engine",
		Behavior:          "Split the batch into one request",
		Impact:            "Fewer quota errors",
		Date:              date,
	}
}

// scheduleAndActivate walks a session to the active state
func scheduleAndActivate(t *testing.T, uc *usecase.UseCases, sessionType types.SessionType, date types.SessionDate) {
	t.Helper()
	ctx := adminCtx()
	gt.NoError(t, uc.ScheduleSession(ctx, sessionType, date, fixedNow)).Required()
	gt.NoError(t, uc.ActivateSession(ctx, sessionType, date)).Required()
}
