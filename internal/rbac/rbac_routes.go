package rbac

import (
	"go-attendance/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authenticator middleware.Authenticator) {
	r.GET("/rbac/permissions", middleware.AuthMiddleware(authenticator), handler.MyPermissions)
}
