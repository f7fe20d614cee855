package attendance

import (
	"go-attendance/internal/middleware"
	"go-attendance/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	authenticator middleware.Authenticator,
	rbacService middleware.RBACService,
	rdb *redis.Client,
) {
	attendance := r.Group("/attendance", middleware.AuthMiddleware(authenticator))
	{
		attendance.POST("/check-in",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionCreate),
			middleware.Idempotency(rdb),
			handler.CheckIn,
		)
		attendance.POST("/check-out",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionCreate),
			middleware.Idempotency(rdb),
			handler.CheckOut,
		)
		attendance.GET("/my-history",
			middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionRead),
			handler.MyHistory,
		)
		attendance.GET("/today",
			middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionRead),
			handler.Today,
		)
		attendance.GET("/reports",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourceAttendanceReport, rbac.ActionRead),
			handler.Reports,
		)
	}

	hr := r.Group("/hr/attendance", middleware.AuthMiddleware(authenticator))
	{
		hr.POST("/mark",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceHRAttendance, rbac.ActionCreate),
			handler.Mark,
		)
	}
}
