package leaverequest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/MunaSchool/HR-Management-System-sub005/internal/leaverequest"
	requesterrors "github.com/MunaSchool/HR-Management-System-sub005/internal/leaverequest/errors"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeRequestService struct {
	submitFn             func(ctx context.Context, employeeID string, req leaverequest.SubmitLeaveRequest) (leaverequest.LeaveRequestResponse, error)
	getByIDFn            func(ctx context.Context, actorID, id string) (leaverequest.LeaveRequestResponse, error)
	getAllByEmployeeFn   func(ctx context.Context, employeeID string) ([]leaverequest.LeaveRequestResponse, error)
	pendingForApproverFn func(ctx context.Context, approverID string) ([]leaverequest.LeaveRequestResponse, error)
	decideFn             func(ctx context.Context, actorID, id, decision, reason string) (leaverequest.LeaveRequestResponse, error)
	cancelFn             func(ctx context.Context, actorID, id string) (leaverequest.LeaveRequestResponse, error)
	escalationHistoryFn  func(ctx context.Context, actorID, id string) ([]leaverequest.EscalationEventResponse, error)
}

func (f *fakeRequestService) Submit(ctx context.Context, employeeID string, req leaverequest.SubmitLeaveRequest) (leaverequest.LeaveRequestResponse, error) {
	return f.submitFn(ctx, employeeID, req)
}

func (f *fakeRequestService) GetByID(ctx context.Context, actorID, id string) (leaverequest.LeaveRequestResponse, error) {
	return f.getByIDFn(ctx, actorID, id)
}

func (f *fakeRequestService) GetAllByEmployee(ctx context.Context, employeeID string) ([]leaverequest.LeaveRequestResponse, error) {
	return f.getAllByEmployeeFn(ctx, employeeID)
}

func (f *fakeRequestService) PendingForApprover(ctx context.Context, approverID string) ([]leaverequest.LeaveRequestResponse, error) {
	return f.pendingForApproverFn(ctx, approverID)
}

func (f *fakeRequestService) Decide(ctx context.Context, actorID, id, decision, reason string) (leaverequest.LeaveRequestResponse, error) {
	return f.decideFn(ctx, actorID, id, decision, reason)
}

func (f *fakeRequestService) Cancel(ctx context.Context, actorID, id string) (leaverequest.LeaveRequestResponse, error) {
	return f.cancelFn(ctx, actorID, id)
}

func (f *fakeRequestService) Escalate(ctx context.Context, id string, now time.Time) (bool, error) {
	return false, nil
}

func (f *fakeRequestService) EscalateOverdue(ctx context.Context, now time.Time) (int, error) {
	return 0, nil
}

func (f *fakeRequestService) EscalationHistory(ctx context.Context, actorID, id string) ([]leaverequest.EscalationEventResponse, error) {
	return f.escalationHistoryFn(ctx, actorID, id)
}

func TestRequestHandler_Submit(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		employeeID := uuid.New().String()

		svc := &fakeRequestService{
			submitFn: func(ctx context.Context, eid string, req leaverequest.SubmitLeaveRequest) (leaverequest.LeaveRequestResponse, error) {
				assert.Equal(t, employeeID, eid)
				assert.Equal(t, "ANNUAL", req.LeaveTypeID)
				return leaverequest.LeaveRequestResponse{
					ID:          uuid.New().String(),
					EmployeeID:  eid,
					LeaveTypeID: req.LeaveTypeID,
					StartDate:   req.StartDate,
					EndDate:     req.EndDate,
					Days:        5,
					Status:      leaverequest.StatusPending,
				}, nil
			},
		}

		h := leaverequest.NewHandler(svc, nil)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"leave_type_id":"ANNUAL","start_date":"2026-03-02","end_date":"2026-03-06","justification":"family visit"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("employee_id_validated", employeeID)

		h.Submit(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got leaverequest.LeaveRequestResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, employeeID, got.EmployeeID)
		assert.Equal(t, leaverequest.StatusPending, got.Status)
		assert.Equal(t, 5, got.Days)
	})

	t.Run("negative unknown leave type fails binding", func(t *testing.T) {
		h := leaverequest.NewHandler(&fakeRequestService{}, nil)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"leave_type_id":"SABBATICAL","start_date":"2026-03-02","end_date":"2026-03-06"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Submit(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.NotNil(t, env.Error)
	})

	t.Run("negative insufficient balance maps to conflict", func(t *testing.T) {
		svc := &fakeRequestService{
			submitFn: func(ctx context.Context, eid string, req leaverequest.SubmitLeaveRequest) (leaverequest.LeaveRequestResponse, error) {
				return leaverequest.LeaveRequestResponse{}, requesterrors.ErrOverlappingRequest
			},
		}
		h := leaverequest.NewHandler(svc, nil)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"leave_type_id":"ANNUAL","start_date":"2026-03-02","end_date":"2026-03-06"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("employee_id_validated", uuid.New().String())

		h.Submit(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "CONFLICT", env.Error.Code)
	})
}

func TestRequestHandler_Approve(t *testing.T) {
	t.Run("negative stale approver maps to forbidden", func(t *testing.T) {
		svc := &fakeRequestService{
			decideFn: func(ctx context.Context, actorID, id, decision, reason string) (leaverequest.LeaveRequestResponse, error) {
				assert.Equal(t, leaverequest.DecisionApprove, decision)
				return leaverequest.LeaveRequestResponse{}, requesterrors.ErrNotAuthorized
			},
		}
		h := leaverequest.NewHandler(svc, nil)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/leave-requests/x/approve", nil)
		c.Set("employee_id_validated", uuid.New().String())
		c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}

		h.Approve(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "FORBIDDEN", env.Error.Code)
	})

	t.Run("negative already decided maps to invalid state", func(t *testing.T) {
		svc := &fakeRequestService{
			decideFn: func(ctx context.Context, actorID, id, decision, reason string) (leaverequest.LeaveRequestResponse, error) {
				return leaverequest.LeaveRequestResponse{}, requesterrors.ErrAlreadyDecided
			},
		}
		h := leaverequest.NewHandler(svc, nil)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/leave-requests/x/approve", nil)
		c.Set("employee_id_validated", uuid.New().String())
		c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}

		h.Approve(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "INVALID_STATE", env.Error.Code)
	})
}

func TestRequestHandler_Reject(t *testing.T) {
	t.Run("negative missing reason fails binding", func(t *testing.T) {
		h := leaverequest.NewHandler(&fakeRequestService{}, nil)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/leave-requests/x/reject", strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("employee_id_validated", uuid.New().String())
		c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}

		h.Reject(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
	})
}
