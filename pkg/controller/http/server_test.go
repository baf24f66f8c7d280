package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	controller "github.com/nxtprof/nxtprof/pkg/controller/http"
	"github.com/nxtprof/nxtprof/pkg/domain/model"
	"github.com/nxtprof/nxtprof/pkg/domain/model/auth"
	"github.com/nxtprof/nxtprof/pkg/domain/types"
	"github.com/nxtprof/nxtprof/pkg/repository/memory"
	"github.com/nxtprof/nxtprof/pkg/service/sheets"
	"github.com/nxtprof/nxtprof/pkg/usecase"
)

// staticVerifier resolves fixed bearer tokens
type staticVerifier map[string]*auth.Token

func (v staticVerifier) Verify(_ context.Context, raw string) (*auth.Token, error) {
	token, ok := v[raw]
	if !ok {
		return nil, goerr.New("unknown token")
	}
	return token, nil
}

var fixedNow = time.Date(2025, 4, 7, 9, 30, 0, 0, time.UTC)

const testDate = "2025-04-07"

func newTestServer(t *testing.T) (*controller.Server, *usecase.UseCases, *sheets.Mock) {
	t.Helper()

	repo := memory.New()
	for _, emp := range []*model.Employee{
		{ID: "u1", Name: "Asha Rao", Email: "asha@example.com", EmployeeID: "E001"},
		{ID: "u2", Name: "Dev Mehta", Email: "dev@example.com", EmployeeID: "E002"},
	} {
		gt.NoError(t, repo.Employee().Save(context.Background(), emp)).Required()
	}

	mock := sheets.NewMock("Standups", "Learning Hours", "Asha Rao | E001", "Dev Mehta | E002")
	uc := usecase.New(repo,
		usecase.WithClock(func() time.Time { return fixedNow }),
		usecase.WithSheets(mock, "attendance-sheet", "points-sheet"),
	)

	verifier := staticVerifier{
		"admin-token": {Sub: "admin-uid", Name: "Admin", Admin: true},
		"user-token":  {Sub: "u1", Name: "Asha Rao"},
	}
	return controller.New(uc, controller.WithVerifier(verifier)), uc, mock
}

func doRequest(t *testing.T, srv *controller.Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		gt.NoError(t, json.NewEncoder(&buf).Encode(body)).Required()
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func adminSessionCtx() context.Context {
	return auth.ContextWithToken(context.Background(), &auth.Token{Sub: "admin-uid", Admin: true})
}

// endStandup walks today's standup to the ended state via the usecase layer
func endStandup(t *testing.T, uc *usecase.UseCases) {
	t.Helper()
	ctx := adminSessionCtx()
	gt.NoError(t, uc.ScheduleSession(ctx, types.SessionTypeStandup, testDate, fixedNow)).Required()
	gt.NoError(t, uc.ActivateSession(ctx, types.SessionTypeStandup, testDate)).Required()
	gt.NoError(t, uc.EndSession(ctx, types.SessionTypeStandup, testDate)).Required()
}

func TestHealth(t *testing.T) {
	srv, _, _ := newTestServer(t)
	rec := doRequest(t, srv, http.MethodGet, "/health", "", nil)
	gt.V(t, rec.Code).Equal(http.StatusOK)
}

func TestAuthRequired(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/employees", "", nil)
	gt.V(t, rec.Code).Equal(http.StatusUnauthorized)

	rec = doRequest(t, srv, http.MethodGet, "/api/employees", "bogus", nil)
	gt.V(t, rec.Code).Equal(http.StatusUnauthorized)
}

func TestAdminGating(t *testing.T) {
	srv, uc, _ := newTestServer(t)
	endStandup(t, uc)

	body := map[string]string{"session_type": "standups", "date": testDate}

	rec := doRequest(t, srv, http.MethodPost, "/api/sync/attendance", "user-token", body)
	gt.V(t, rec.Code).Equal(http.StatusForbidden)

	rec = doRequest(t, srv, http.MethodPost, "/api/sync/attendance", "admin-token", body)
	gt.V(t, rec.Code).Equal(http.StatusOK)

	var result usecase.SyncResult
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result)).Required()
	gt.B(t, result.Success).True()
	gt.V(t, result.RecordsSynced).Equal(2)
}

func TestSessionEndpoints(t *testing.T) {
	srv, uc, _ := newTestServer(t)
	ctx := adminSessionCtx()
	gt.NoError(t, uc.ScheduleSession(ctx, types.SessionTypeStandup, testDate, fixedNow)).Required()
	gt.NoError(t, uc.ActivateSession(ctx, types.SessionTypeStandup, testDate)).Required()

	t.Run("mark attendance", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodPost, "/api/sessions/standups/"+testDate+"/attendance", "user-token",
			map[string]string{"employee_id": "u1", "status": "Present"})
		gt.V(t, rec.Code).Equal(http.StatusOK)
	})

	t.Run("invalid status is 400", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodPost, "/api/sessions/standups/"+testDate+"/attendance", "user-token",
			map[string]string{"employee_id": "u1", "status": "Sleeping"})
		gt.V(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("get session", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodGet, "/api/sessions/standups/"+testDate, "user-token", nil)
		gt.V(t, rec.Code).Equal(http.StatusOK)

		var body map[string]any
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body)).Required()
		gt.V(t, body["status"]).Equal("active")
	})

	t.Run("bad session type is 400", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodGet, "/api/sessions/retro/"+testDate, "user-token", nil)
		gt.V(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("missing session is 404", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodGet, "/api/sessions/standups/2025-04-01", "user-token", nil)
		gt.V(t, rec.Code).Equal(http.StatusNotFound)
	})

	t.Run("end session", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodPost, "/api/sessions/standups/"+testDate+"/end", "admin-token", nil)
		gt.V(t, rec.Code).Equal(http.StatusOK)

		rec = doRequest(t, srv, http.MethodGet, "/api/sessions/standups/"+testDate+"/attendance", "user-token", nil)
		gt.V(t, rec.Code).Equal(http.StatusOK)
	})

	t.Run("finalize after end is 412", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodPost, "/api/sessions/standups/"+testDate+"/finalize", "admin-token", nil)
		gt.V(t, rec.Code).Equal(http.StatusPreconditionFailed)
	})
}

func TestLearningPointEndpoints(t *testing.T) {
	srv, uc, _ := newTestServer(t)
	ctx := adminSessionCtx()
	gt.NoError(t, uc.ScheduleSession(ctx, types.SessionTypeLearningHour, testDate, fixedNow)).Required()
	gt.NoError(t, uc.ActivateSession(ctx, types.SessionTypeLearningHour, testDate)).Required()

	point := map[string]string{
		"session_id":         testDate,
		"task_name":          "Tab title parsing",
		"framework_category": "Engineering",
		"point_type":         "R1",
	}

	rec := doRequest(t, srv, http.MethodPost, "/api/learning-points", "user-token", point)
	gt.V(t, rec.Code).Equal(http.StatusCreated)

	var created model.LearningPoint
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created)).Required()
	gt.V(t, created.UserID).Equal("u1")

	t.Run("list by session", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodGet, "/api/learning-points?session_id="+testDate, "user-token", nil)
		gt.V(t, rec.Code).Equal(http.StatusOK)
	})

	t.Run("update", func(t *testing.T) {
		point["task_name"] = "Tab title parsing, revised"
		rec := doRequest(t, srv, http.MethodPut, "/api/learning-points/"+created.ID, "user-token", point)
		gt.V(t, rec.Code).Equal(http.StatusOK)
	})

	t.Run("locked point is 412", func(t *testing.T) {
		gt.NoError(t, uc.EndSession(ctx, types.SessionTypeLearningHour, testDate)).Required()
		rec := doRequest(t, srv, http.MethodPut, "/api/learning-points/"+created.ID, "user-token", point)
		gt.V(t, rec.Code).Equal(http.StatusPreconditionFailed)
	})
}

func TestFeedbackEndpoints(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/feedback", "user-token",
		map[string]string{"recipient_uid": "u2", "message": "Great review comments"})
	gt.V(t, rec.Code).Equal(http.StatusCreated)

	t.Run("self feedback is 400", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodPost, "/api/feedback", "user-token",
			map[string]string{"recipient_uid": "u1", "message": "I rock"})
		gt.V(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("given listing", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodGet, "/api/feedback?direction=given", "user-token", nil)
		gt.V(t, rec.Code).Equal(http.StatusOK)

		var body struct {
			Feedback []*model.PeerFeedback `json:"feedback"`
		}
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body)).Required()
		gt.A(t, body.Feedback).Length(1)
	})
}

func TestEmployeeEndpoints(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/employees", "admin-token",
		map[string]string{"uid": "u9", "name": "Rafi Khan", "email": "rafi@example.com", "employee_id": "E009"})
	gt.V(t, rec.Code).Equal(http.StatusOK)

	t.Run("non-admin save is 403", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodPost, "/api/employees", "user-token",
			map[string]string{"uid": "u10", "name": "X", "employee_id": "E010"})
		gt.V(t, rec.Code).Equal(http.StatusForbidden)
	})

	t.Run("archive and list", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodPost, "/api/employees/u9/archive", "admin-token", nil)
		gt.V(t, rec.Code).Equal(http.StatusOK)

		rec = doRequest(t, srv, http.MethodGet, "/api/employees", "user-token", nil)
		gt.V(t, rec.Code).Equal(http.StatusOK)

		var body struct {
			Employees []*model.Employee `json:"employees"`
		}
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body)).Required()
		gt.A(t, body.Employees).Length(2)
	})
}

func TestSyncTodayEndpoint(t *testing.T) {
	srv, uc, mock := newTestServer(t)
	endStandup(t, uc)

	rec := doRequest(t, srv, http.MethodPost, "/api/sync/today", "admin-token", nil)
	gt.V(t, rec.Code).Equal(http.StatusOK)

	var result usecase.TodaySyncResult
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result)).Required()
	gt.V(t, result.Standups.RecordsSynced).Equal(2)
	gt.A(t, mock.Rows("Standups")).Length(2)
}
