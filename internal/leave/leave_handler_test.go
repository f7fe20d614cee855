package leave_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-attendance/internal/leave"
	leaveerrors "go-attendance/internal/leave/errors"
	leavemock "go-attendance/internal/leave/mock"
	"go-attendance/internal/middleware"
	"go-attendance/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func newHandlerTest(t *testing.T) (*leavemock.MockService, *leave.Handler) {
	ctrl := gomock.NewController(t)
	svc := leavemock.NewMockService(ctrl)
	return svc, leave.NewHandler(svc, zap.NewNop())
}

func newTestContext(method, target, body string, u *user.User) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	if u != nil {
		c.Set(middleware.ContextUser, u)
		c.Set(middleware.ContextEmployeeID, u.EmployeeID)
	}
	return c, w
}

func TestLeaveHandler_Apply(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc, h := newHandlerTest(t)
		u := testEmployee()

		svc.EXPECT().Apply(gomock.Any(), u, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *user.User, req leave.ApplyLeaveRequest) (leave.ApplyResponse, error) {
				assert.Equal(t, leave.TypeWFH, req.LeaveType)
				assert.Equal(t, "2024-03-01", req.StartDate)
				return leave.ApplyResponse{
					Message: "Leave applied successfully",
					Leave:   leave.LeaveResponse{DaysCount: 2, Status: leave.StatusPending},
				}, nil
			})

		body := `{"leave_type":"wfh","start_date":"2024-03-01","end_date":"2024-03-02","reason":"plumber visit"}`
		c, w := newTestContext(http.MethodPost, "/api/leaves/apply", body, u)
		h.Apply(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"days_count":2`)
	})

	t.Run("unknown leave type", func(t *testing.T) {
		_, h := newHandlerTest(t)

		body := `{"leave_type":"sabbatical","start_date":"2024-03-01","end_date":"2024-03-02","reason":"x"}`
		c, w := newTestContext(http.MethodPost, "/api/leaves/apply", body, testEmployee())
		h.Apply(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid range", func(t *testing.T) {
		svc, h := newHandlerTest(t)

		svc.EXPECT().Apply(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(leave.ApplyResponse{}, leaveerrors.ErrInvalidDateRange)

		body := `{"leave_type":"sick","start_date":"2024-03-03","end_date":"2024-03-01","reason":"x"}`
		c, w := newTestContext(http.MethodPost, "/api/leaves/apply", body, testEmployee())
		h.Apply(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid date range")
	})
}

func TestLeaveHandler_MyLeaves(t *testing.T) {
	svc, h := newHandlerTest(t)

	svc.EXPECT().ListMine(gomock.Any(), "EMP001").
		Return(leave.ListResponse{Leaves: []leave.LeaveResponse{{ID: "a"}, {ID: "b"}}}, nil)

	c, w := newTestContext(http.MethodGet, "/api/leaves/my-leaves", "", testEmployee())
	h.MyLeaves(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"leaves"`)
	assert.NotContains(t, w.Body.String(), `"meta"`)
}

func TestLeaveHandler_All(t *testing.T) {
	t.Run("status filter", func(t *testing.T) {
		svc, h := newHandlerTest(t)

		svc.EXPECT().ListAll(gomock.Any(), "pending").Return(leave.ListResponse{Leaves: []leave.LeaveResponse{}}, nil)

		c, w := newTestContext(http.MethodGet, "/api/leaves/all?status=pending", "", testHR())
		h.All(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown status filter", func(t *testing.T) {
		svc, h := newHandlerTest(t)

		svc.EXPECT().ListAll(gomock.Any(), "archived").Return(leave.ListResponse{}, leaveerrors.ErrInvalidStatus)

		c, w := newTestContext(http.MethodGet, "/api/leaves/all?status=archived", "", testHR())
		h.All(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLeaveHandler_UpdateStatus(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc, h := newHandlerTest(t)
		hr := testHR()

		svc.EXPECT().Decide(gomock.Any(), hr, "L1", "approved").
			Return(leave.MessageResponse{Message: "Leave approved successfully"}, nil)

		c, w := newTestContext(http.MethodPut, "/api/leaves/L1/status?status=approved", "", hr)
		c.Params = gin.Params{{Key: "id", Value: "L1"}}
		h.UpdateStatus(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Leave approved successfully")
	})

	t.Run("invalid status", func(t *testing.T) {
		svc, h := newHandlerTest(t)

		svc.EXPECT().Decide(gomock.Any(), gomock.Any(), "L1", "cancelled").
			Return(leave.MessageResponse{}, leaveerrors.ErrInvalidStatus)

		c, w := newTestContext(http.MethodPut, "/api/leaves/L1/status?status=cancelled", "", testHR())
		c.Params = gin.Params{{Key: "id", Value: "L1"}}
		h.UpdateStatus(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid status")
	})

	t.Run("missing status", func(t *testing.T) {
		_, h := newHandlerTest(t)

		c, w := newTestContext(http.MethodPut, "/api/leaves/L1/status", "", testHR())
		c.Params = gin.Params{{Key: "id", Value: "L1"}}
		h.UpdateStatus(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
