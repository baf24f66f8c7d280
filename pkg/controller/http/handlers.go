package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/nxtprof/nxtprof/pkg/domain/model"
	"github.com/nxtprof/nxtprof/pkg/domain/types"
	"github.com/nxtprof/nxtprof/pkg/usecase"
	"github.com/nxtprof/nxtprof/pkg/utils/errutil"
)

// statusOf maps use case errors to HTTP status codes
func statusOf(err error) int {
	switch {
	case errors.Is(err, usecase.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, usecase.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, usecase.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrSessionNotFound),
		errors.Is(err, usecase.ErrEmployeeNotFound),
		errors.Is(err, usecase.ErrLearningPointNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrSessionExists):
		return http.StatusConflict
	case errors.Is(err, usecase.ErrSessionNotActive),
		errors.Is(err, usecase.ErrSessionNotEnded),
		errors.Is(err, usecase.ErrSessionEnded),
		errors.Is(err, usecase.ErrPointLocked):
		return http.StatusPreconditionFailed
	default:
		return http.StatusInternalServerError
	}
}

func handleError(w http.ResponseWriter, r *http.Request, err error) {
	errutil.HandleHTTP(r.Context(), w, err, statusOf(err))
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data) //nolint:errcheck // header already committed
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return goerr.Wrap(usecase.ErrInvalidArgument, "invalid request body")
	}
	return nil
}

// sessionParams extracts and validates the {type}/{date} path segments
func sessionParams(r *http.Request) (types.SessionType, types.SessionDate, error) {
	sessionType, err := types.ParseSessionType(chi.URLParam(r, "type"))
	if err != nil {
		return "", "", goerr.Wrap(usecase.ErrInvalidArgument, err.Error())
	}
	date, err := types.ParseSessionDate(chi.URLParam(r, "date"))
	if err != nil {
		return "", "", goerr.Wrap(usecase.ErrInvalidArgument, err.Error())
	}
	return sessionType, date, nil
}

// --- sync ---

type syncAttendanceRequest struct {
	SessionType string `json:"session_type"`
	Date        string `json:"date"`
}

func (req *syncAttendanceRequest) Validate() error {
	if _, err := types.ParseSessionType(req.SessionType); err != nil {
		return goerr.Wrap(usecase.ErrInvalidArgument, err.Error())
	}
	if _, err := types.ParseSessionDate(req.Date); err != nil {
		return goerr.Wrap(usecase.ErrInvalidArgument, err.Error())
	}
	return nil
}

func (s *Server) syncAttendanceHandler(w http.ResponseWriter, r *http.Request) {
	var req syncAttendanceRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.uc.SyncAttendance(r.Context(), types.SessionType(req.SessionType), types.SessionDate(req.Date))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, result)
}

type syncLearningPointsRequest struct {
	SessionID string `json:"session_id"`
}

func (req *syncLearningPointsRequest) Validate() error {
	if _, err := types.ParseSessionDate(req.SessionID); err != nil {
		return goerr.Wrap(usecase.ErrInvalidArgument, err.Error())
	}
	return nil
}

func (s *Server) syncLearningPointsHandler(w http.ResponseWriter, r *http.Request) {
	var req syncLearningPointsRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.uc.SyncLearningPoints(r.Context(), types.SessionDate(req.SessionID))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, result)
}

func (s *Server) syncTodayHandler(w http.ResponseWriter, r *http.Request) {
	result, err := s.uc.SyncToday(r.Context(), s.uc.Today())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, result)
}

// --- sessions ---

func (s *Server) getSessionHandler(w http.ResponseWriter, r *http.Request) {
	sessionType, date, err := sessionParams(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	session, err := s.uc.GetSession(r.Context(), sessionType, date)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, sessionResponse(session))
}

func (s *Server) endSessionHandler(w http.ResponseWriter, r *http.Request) {
	sessionType, date, err := sessionParams(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.uc.EndSession(r.Context(), sessionType, date); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) finalizeSessionHandler(w http.ResponseWriter, r *http.Request) {
	sessionType, date, err := sessionParams(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.uc.FinalizeSessionAttendance(r.Context(), sessionType, date); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]bool{"success": true})
}

type markAttendanceRequest struct {
	EmployeeID string `json:"employee_id"`
	Status     string `json:"status"`
	Reason     string `json:"reason,omitempty"`
}

func (req *markAttendanceRequest) Validate() error {
	if req.EmployeeID == "" {
		return goerr.Wrap(usecase.ErrInvalidArgument, "employee_id is required")
	}
	if _, err := types.ParseAttendanceStatus(req.Status); err != nil {
		return goerr.Wrap(usecase.ErrInvalidArgument, err.Error())
	}
	return nil
}

func (s *Server) markAttendanceHandler(w http.ResponseWriter, r *http.Request) {
	sessionType, date, err := sessionParams(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req markAttendanceRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		handleError(w, r, err)
		return
	}

	err = s.uc.MarkAttendance(r.Context(), sessionType, date, req.EmployeeID,
		types.AttendanceStatus(req.Status), req.Reason)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) listAttendanceHandler(w http.ResponseWriter, r *http.Request) {
	sessionType, date, err := sessionParams(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	records, err := s.uc.ListAttendance(r.Context(), sessionType, date)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"records": records})
}

// sessionResponse shapes the session document for JSON
func sessionResponse(session *model.Session) map[string]any {
	return map[string]any{
		"date":            session.Date.String(),
		"type":            session.Type.String(),
		"status":          session.Status.String(),
		"scheduled_time":  session.ScheduledTime,
		"started_at":      session.StartedAt,
		"ended_at":        session.EndedAt,
		"temp_attendance": session.TempAttendance,
		"absence_reasons": session.AbsenceReasons,
		"synced":          session.Synced,
	}
}

// --- learning points ---

type learningPointRequest struct {
	SessionID         string `json:"session_id"`
	TaskName          string `json:"task_name"`
	FrameworkCategory string `json:"framework_category"`
	Subcategory       string `json:"subcategory"`
	PointType         string `json:"point_type"`
	Recipient         string `json:"recipient,omitempty"`
	Situation         string `json:"situation,omitempty"`
	Behavior          string `json:"behavior,omitempty"`
	Impact            string `json:"impact,omitempty"`
	ActionItem        string `json:"action_item,omitempty"`
}

func (req *learningPointRequest) Validate() error {
	if _, err := types.ParseSessionDate(req.SessionID); err != nil {
		return goerr.Wrap(usecase.ErrInvalidArgument, err.Error())
	}
	if req.TaskName == "" || req.FrameworkCategory == "" || req.PointType == "" {
		return goerr.Wrap(usecase.ErrInvalidArgument, "task_name, framework_category and point_type are required")
	}
	return nil
}

func (req *learningPointRequest) model() *model.LearningPoint {
	return &model.LearningPoint{
		TaskName:          req.TaskName,
		FrameworkCategory: req.FrameworkCategory,
		Subcategory:       req.Subcategory,
		PointType:         req.PointType,
		Recipient:         req.Recipient,
		Situation:         req.Situation,
		Behavior:          req.Behavior,
		Impact:            req.Impact,
		ActionItem:        req.ActionItem,
		Date:              types.SessionDate(req.SessionID),
	}
}

func (s *Server) createLearningPointHandler(w http.ResponseWriter, r *http.Request) {
	var req learningPointRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		handleError(w, r, err)
		return
	}

	created, err := s.uc.CreateLearningPoint(r.Context(), req.model())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, created)
}

func (s *Server) listLearningPointsHandler(w http.ResponseWriter, r *http.Request) {
	if userID := r.URL.Query().Get("user_id"); userID != "" || r.URL.Query().Get("session_id") == "" {
		points, err := s.uc.ListUserLearningPoints(r.Context(), userID)
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusOK, map[string]any{"points": points})
		return
	}

	date, err := types.ParseSessionDate(r.URL.Query().Get("session_id"))
	if err != nil {
		handleError(w, r, goerr.Wrap(usecase.ErrInvalidArgument, err.Error()))
		return
	}

	points, err := s.uc.ListLearningPoints(r.Context(), date)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"points": points})
}

func (s *Server) updateLearningPointHandler(w http.ResponseWriter, r *http.Request) {
	var req learningPointRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		handleError(w, r, err)
		return
	}

	point := req.model()
	point.ID = chi.URLParam(r, "id")
	if err := s.uc.UpdateLearningPoint(r.Context(), point); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]bool{"success": true})
}

// --- feedback ---

type feedbackRequest struct {
	RecipientUID string `json:"recipient_uid"`
	Message      string `json:"message"`
}

func (req *feedbackRequest) Validate() error {
	if req.RecipientUID == "" {
		return goerr.Wrap(usecase.ErrInvalidArgument, "recipient_uid is required")
	}
	if req.Message == "" {
		return goerr.Wrap(usecase.ErrInvalidArgument, "message is required")
	}
	return nil
}

func (s *Server) giveFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		handleError(w, r, err)
		return
	}

	created, err := s.uc.GiveFeedback(r.Context(), req.RecipientUID, req.Message)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, created)
}

func (s *Server) listFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	var (
		items []*model.PeerFeedback
		err   error
	)
	if r.URL.Query().Get("direction") == "given" {
		items, err = s.uc.ListGivenFeedback(r.Context())
	} else {
		items, err = s.uc.ListReceivedFeedback(r.Context())
	}
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"feedback": items})
}

type summarizeRequest struct {
	Message string `json:"message"`
}

func (s *Server) summarizeFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	var req summarizeRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	summary, err := s.uc.SummarizeFeedback(r.Context(), req.Message)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, summary)
}

// --- employees ---

type employeeRequest struct {
	UID        string `json:"uid"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	EmployeeID string `json:"employee_id"`
}

func (req *employeeRequest) Validate() error {
	if req.UID == "" || req.Name == "" || req.EmployeeID == "" {
		return goerr.Wrap(usecase.ErrInvalidArgument, "uid, name and employee_id are required")
	}
	return nil
}

func (s *Server) listEmployeesHandler(w http.ResponseWriter, r *http.Request) {
	includeArchived := r.URL.Query().Get("include_archived") == "true"

	employees, err := s.uc.ListEmployees(r.Context(), includeArchived)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"employees": employees})
}

func (s *Server) saveEmployeeHandler(w http.ResponseWriter, r *http.Request) {
	var req employeeRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		handleError(w, r, err)
		return
	}

	emp := &model.Employee{
		ID:         req.UID,
		Name:       req.Name,
		Email:      req.Email,
		EmployeeID: req.EmployeeID,
	}
	if err := s.uc.SaveEmployee(r.Context(), emp); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]bool{"success": true})
}

type archiveRequest struct {
	Archived bool `json:"archived"`
}

func (s *Server) archiveEmployeeHandler(w http.ResponseWriter, r *http.Request) {
	req := archiveRequest{Archived: true}
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			handleError(w, r, err)
			return
		}
	}

	if err := s.uc.SetEmployeeArchived(r.Context(), chi.URLParam(r, "id"), req.Archived); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]bool{"success": true})
}
