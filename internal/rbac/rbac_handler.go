package rbac

import (
	"net/http"

	"go-attendance/internal/middleware"
	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// MyPermissions lets the frontend hide actions the caller cannot perform.
func (h *Handler) MyPermissions(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		appErr := apperror.ErrUnauthorized
		response.Error(c, appErr.HTTPStatus, appErr.Code, appErr.Message, nil)
		return
	}

	perms, err := h.service.Permissions(u.Role)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"role": u.Role, "permissions": perms}, nil)
}
