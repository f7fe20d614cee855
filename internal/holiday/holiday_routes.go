package holiday

import (
	"go-attendance/internal/middleware"
	"go-attendance/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authenticator middleware.Authenticator, rbacService middleware.RBACService) {
	holidays := r.Group("/holidays")
	holidays.Use(middleware.AuthMiddleware(authenticator))
	{
		holidays.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceHolidays, rbac.ActionRead), handler.List)
		holidays.POST("", middleware.RBACAuthorize(rbacService, rbac.ResourceHolidays, rbac.ActionCreate), handler.Create)
		holidays.DELETE("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceHolidays, rbac.ActionDelete), handler.Delete)
	}
}
