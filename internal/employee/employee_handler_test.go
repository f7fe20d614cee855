package employee_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-attendance/internal/employee"
	employeeerrors "go-attendance/internal/employee/errors"
	"go-attendance/internal/middleware"
	"go-attendance/internal/user"
	usererrors "go-attendance/internal/user/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeEmployeeService struct {
	createFn      func(ctx context.Context, req employee.CreateEmployeeRequest) (user.Profile, error)
	getAllFn      func(ctx context.Context, domain string) ([]user.Profile, error)
	getOptionsFn  func(ctx context.Context) ([]employee.EmployeeOption, error)
	getByIDFn     func(ctx context.Context, requester *user.User, employeeID string) (user.Profile, error)
	updateFn      func(ctx context.Context, employeeID string, req employee.UpdateEmployeeRequest) error
	deactivateFn  func(ctx context.Context, employeeID string) error
	domainsResult []string
}

func (f *fakeEmployeeService) Create(ctx context.Context, req employee.CreateEmployeeRequest) (user.Profile, error) {
	return f.createFn(ctx, req)
}

func (f *fakeEmployeeService) GetAll(ctx context.Context, domain string) ([]user.Profile, error) {
	return f.getAllFn(ctx, domain)
}

func (f *fakeEmployeeService) GetOptions(ctx context.Context) ([]employee.EmployeeOption, error) {
	return f.getOptionsFn(ctx)
}

func (f *fakeEmployeeService) GetByEmployeeID(ctx context.Context, requester *user.User, employeeID string) (user.Profile, error) {
	return f.getByIDFn(ctx, requester, employeeID)
}

func (f *fakeEmployeeService) Update(ctx context.Context, employeeID string, req employee.UpdateEmployeeRequest) error {
	return f.updateFn(ctx, employeeID, req)
}

func (f *fakeEmployeeService) Deactivate(ctx context.Context, employeeID string) error {
	return f.deactivateFn(ctx, employeeID)
}

func (f *fakeEmployeeService) Domains() []string {
	return f.domainsResult
}

func newTestContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func TestEmployeeHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeEmployeeService{
			createFn: func(_ context.Context, req employee.CreateEmployeeRequest) (user.Profile, error) {
				assert.Equal(t, "SAP", req.Domain)
				return user.Profile{EmployeeID: "EMP-000001", FullName: req.FullName, Email: req.Email}, nil
			},
		}
		h := employee.NewHandler(svc, zap.NewNop())

		body := `{"full_name":"John Doe","email":"john@priacc.com","password":"Temp@123","domain":"SAP"}`
		c, w := newTestContext(http.MethodPost, "/api/employees", body)

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "EMP-000001")
		assert.NotContains(t, w.Body.String(), "Temp@123")
	})

	t.Run("validation error", func(t *testing.T) {
		h := employee.NewHandler(&fakeEmployeeService{}, zap.NewNop())
		c, w := newTestContext(http.MethodPost, "/api/employees", `{"email":"not-an-email"}`)

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid role", func(t *testing.T) {
		h := employee.NewHandler(&fakeEmployeeService{}, zap.NewNop())
		body := `{"full_name":"x","email":"x@priacc.com","password":"Temp@123","role":"root"}`
		c, w := newTestContext(http.MethodPost, "/api/employees", body)

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("conflict", func(t *testing.T) {
		svc := &fakeEmployeeService{
			createFn: func(context.Context, employee.CreateEmployeeRequest) (user.Profile, error) {
				return user.Profile{}, usererrors.ErrUserAlreadyExists
			},
		}
		h := employee.NewHandler(svc, zap.NewNop())
		body := `{"full_name":"x","email":"x@priacc.com","password":"Temp@123"}`
		c, w := newTestContext(http.MethodPost, "/api/employees", body)

		h.Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "Email or Employee ID already exists")
	})
}

func TestEmployeeHandler_GetAll(t *testing.T) {
	svc := &fakeEmployeeService{
		getAllFn: func(_ context.Context, domain string) ([]user.Profile, error) {
			assert.Equal(t, "Java", domain)
			return []user.Profile{{EmployeeID: "EMP001"}, {EmployeeID: "EMP002"}, {EmployeeID: "EMP003"}}, nil
		},
	}
	h := employee.NewHandler(svc, zap.NewNop())

	t.Run("full list without page", func(t *testing.T) {
		c, w := newTestContext(http.MethodGet, "/api/employees?domain=Java", "")
		h.GetAll(c)

		var res map[string]any
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Len(t, res["data"], 3)
		assert.NotContains(t, res, "meta")
	})

	t.Run("paginated", func(t *testing.T) {
		c, w := newTestContext(http.MethodGet, "/api/employees?domain=Java&page=2&page_size=2", "")
		h.GetAll(c)

		var res map[string]any
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Len(t, res["data"], 1)
		assert.Equal(t, float64(3), res["meta"].(map[string]any)["total"])
	})
}

func TestEmployeeHandler_GetByEmployeeID(t *testing.T) {
	svc := &fakeEmployeeService{
		getByIDFn: func(_ context.Context, requester *user.User, employeeID string) (user.Profile, error) {
			if requester.EmployeeID != employeeID {
				return user.Profile{}, employeeerrors.ErrNotAuthorized
			}
			return user.Profile{EmployeeID: employeeID}, nil
		},
	}
	h := employee.NewHandler(svc, zap.NewNop())

	t.Run("unauthenticated", func(t *testing.T) {
		c, w := newTestContext(http.MethodGet, "/api/employees/EMP001", "")
		c.Params = gin.Params{{Key: "employee_id", Value: "EMP001"}}

		h.GetByEmployeeID(c)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("other employee is forbidden", func(t *testing.T) {
		c, w := newTestContext(http.MethodGet, "/api/employees/EMP002", "")
		c.Params = gin.Params{{Key: "employee_id", Value: "EMP002"}}
		c.Set(middleware.ContextUser, &user.User{EmployeeID: "EMP001", Role: user.RoleEmployee})

		h.GetByEmployeeID(c)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("self", func(t *testing.T) {
		c, w := newTestContext(http.MethodGet, "/api/employees/EMP001", "")
		c.Params = gin.Params{{Key: "employee_id", Value: "EMP001"}}
		c.Set(middleware.ContextUser, &user.User{EmployeeID: "EMP001", Role: user.RoleEmployee})

		h.GetByEmployeeID(c)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestEmployeeHandler_UpdateAndDelete(t *testing.T) {
	svc := &fakeEmployeeService{
		updateFn: func(_ context.Context, employeeID string, req employee.UpdateEmployeeRequest) error {
			if req.FullName == nil {
				return usererrors.ErrNoDataToUpdate
			}
			return nil
		},
		deactivateFn: func(_ context.Context, employeeID string) error {
			if employeeID == "EMP404" {
				return usererrors.ErrUserNotFound
			}
			return nil
		},
	}
	h := employee.NewHandler(svc, zap.NewNop())

	t.Run("update with empty body", func(t *testing.T) {
		c, w := newTestContext(http.MethodPut, "/api/employees/EMP001", `{}`)
		c.Params = gin.Params{{Key: "employee_id", Value: "EMP001"}}

		h.Update(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "No data to update")
	})

	t.Run("update success", func(t *testing.T) {
		c, w := newTestContext(http.MethodPut, "/api/employees/EMP001", `{"full_name":"New Name"}`)
		c.Params = gin.Params{{Key: "employee_id", Value: "EMP001"}}

		h.Update(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Employee updated successfully")
	})

	t.Run("delete unknown", func(t *testing.T) {
		c, w := newTestContext(http.MethodDelete, "/api/employees/EMP404", "")
		c.Params = gin.Params{{Key: "employee_id", Value: "EMP404"}}

		h.Delete(c)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("delete deactivates", func(t *testing.T) {
		c, w := newTestContext(http.MethodDelete, "/api/employees/EMP001", "")
		c.Params = gin.Params{{Key: "employee_id", Value: "EMP001"}}

		h.Delete(c)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Employee deactivated successfully")
	})
}

func TestEmployeeHandler_Domains(t *testing.T) {
	h := employee.NewHandler(&fakeEmployeeService{domainsResult: []string{"SAP", "Java"}}, zap.NewNop())
	c, w := newTestContext(http.MethodGet, "/api/domains", "")

	h.Domains(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"data":{"domains":["SAP","Java"]}}`, w.Body.String())
}
