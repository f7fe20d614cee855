package leave

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
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware(authenticator))
	{
		leaves.POST("/apply",
			middleware.RBACAuthorize(rbacService, rbac.ResourceLeaves, rbac.ActionCreate),
			middleware.Idempotency(rdb),
			handler.Apply,
		)
		leaves.GET("/my-leaves", middleware.RBACAuthorize(rbacService, rbac.ResourceLeaves, rbac.ActionRead), handler.MyLeaves)
		leaves.GET("/all", middleware.RBACAuthorize(rbacService, rbac.ResourceLeaveApprovals, rbac.ActionRead), handler.All)
		leaves.PUT("/:id/status", middleware.RBACAuthorize(rbacService, rbac.ResourceLeaveApprovals, rbac.ActionUpdate), handler.UpdateStatus)
	}
}
