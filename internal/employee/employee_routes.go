package employee

import (
	"go-attendance/internal/middleware"
	"go-attendance/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	authenticator middleware.Authenticator,
	rbacService middleware.RBACService,
) {
	authed := r.Group("", middleware.AuthMiddleware(authenticator))

	authed.GET("/domains",
		middleware.RBACAuthorize(rbacService, rbac.ResourceDomains, rbac.ActionRead),
		handler.Domains,
	)

	employees := authed.Group("/employees")
	{
		employees.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceEmployees, rbac.ActionRead),
			handler.GetAll,
		)

		employees.GET("/options",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(rbacService, rbac.ResourceEmployees, rbac.ActionRead),
			handler.GetOptions,
		)

		// self-or-HR is decided by the service
		employees.GET("/:employee_id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceProfile, rbac.ActionRead),
			handler.GetByEmployeeID,
		)

		employees.POST("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourceEmployees, rbac.ActionCreate),
			handler.Create,
		)

		employees.PUT("/:employee_id",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourceEmployees, rbac.ActionUpdate),
			handler.Update,
		)

		employees.DELETE("/:employee_id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceEmployees, rbac.ActionDelete),
			handler.Delete,
		)
	}
}
