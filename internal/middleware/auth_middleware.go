package middleware

import (
	"context"
	"net/http"
	"strings"

	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/contextutil"
	"go-attendance/internal/shared/response"
	"go-attendance/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Authenticator resolves a bearer token to the active user it was issued for.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*user.User, error)
}

var errTokenNotFound = apperror.New(apperror.CodeUnauthorized, "Not authenticated", http.StatusUnauthorized)

func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			abortWithError(c, errTokenNotFound)
			return
		}

		u, err := auth.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Set(ContextUser, u)
		c.Set(ContextEmployeeID, u.EmployeeID)
		c.Set(ContextRole, u.Role)

		ctx := contextutil.WithUserID(c.Request.Context(), u.EmployeeID)
		reqLogger := contextutil.GetLogger(ctx, zap.L()).With(zap.String("employee_id", u.EmployeeID))
		ctx = contextutil.WithLogger(ctx, reqLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func abortWithError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
	c.Abort()
}
