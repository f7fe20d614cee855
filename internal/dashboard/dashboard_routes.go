package dashboard

import (
	"go-attendance/internal/middleware"
	"go-attendance/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authenticator middleware.Authenticator, rbacService middleware.RBACService) {
	auth := middleware.AuthMiddleware(authenticator)

	r.GET("/dashboard/stats",
		auth,
		middleware.RBACAuthorize(rbacService, rbac.ResourceDashboard, rbac.ActionRead),
		handler.Stats,
	)
	r.GET("/hr/attendance/employee-status",
		auth,
		middleware.RBACAuthorize(rbacService, rbac.ResourceHRAttendance, rbac.ActionRead),
		handler.EmployeeStatus,
	)
}
