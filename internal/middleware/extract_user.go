package middleware

import (
	"go-attendance/internal/user"

	"github.com/gin-gonic/gin"
)

const (
	ContextUser       = "current_user"
	ContextEmployeeID = "employee_id"
	ContextRole       = "role"
)

// CurrentUser returns the user stored by AuthMiddleware.
func CurrentUser(c *gin.Context) (*user.User, bool) {
	v, exists := c.Get(ContextUser)
	if !exists {
		return nil, false
	}
	u, ok := v.(*user.User)
	return u, ok && u != nil
}
