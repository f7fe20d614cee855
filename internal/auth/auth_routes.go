package auth

import (
	"go-attendance/internal/middleware"
	"go-attendance/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authenticator middleware.Authenticator, rbacService middleware.RBACService) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimitByIP(0.2, 5), handler.Login)
		auth.POST("/logout", handler.Logout)
		auth.POST("/forgot-password", middleware.RateLimitByIP(0.05, 3), handler.ForgotPassword)
		auth.POST("/reset-password", middleware.RateLimitByIP(0.1, 5), handler.ResetPassword)

		protected := auth.Group("", middleware.AuthMiddleware(authenticator))
		protected.GET("/me", middleware.RBACAuthorize(rbacService, rbac.ResourceProfile, rbac.ActionRead), handler.Me)
		protected.POST("/change-password",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourceProfile, rbac.ActionUpdate),
			handler.ChangePassword,
		)
	}
}
