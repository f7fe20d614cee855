package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-attendance/internal/config"
	"go-attendance/internal/user"
	usermock "go-attendance/internal/user/mock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/health", healthHandler("Priacc Attendance Portal"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy","service":"Priacc Attendance Portal"}`, w.Body.String())
}

func TestSeedAdmin(t *testing.T) {
	ctx := context.Background()
	seed := config.SeedConfig{
		AdminEmail:      "Admin@Priacc.com",
		AdminPassword:   "Admin@123",
		AdminEmployeeID: "HR001",
		AdminName:       "HR Admin",
	}

	t.Run("creates admin on empty store", func(t *testing.T) {
		repo := usermock.NewMockRepository(gomock.NewController(t))
		repo.EXPECT().FindByEmail(ctx, seed.AdminEmail).Return(nil, gorm.ErrRecordNotFound)
		repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u *user.User) error {
			assert.Equal(t, "admin@priacc.com", u.Email)
			assert.Equal(t, user.RoleHRAdmin, u.Role)
			assert.True(t, u.IsActive)
			assert.True(t, user.CheckPassword(u.Password, "Admin@123"))
			return nil
		})

		assert.NoError(t, seedAdmin(ctx, repo, seed, zap.NewNop()))
	})

	t.Run("existing admin untouched", func(t *testing.T) {
		repo := usermock.NewMockRepository(gomock.NewController(t))
		repo.EXPECT().FindByEmail(ctx, seed.AdminEmail).Return(&user.User{EmployeeID: "HR001"}, nil)

		assert.NoError(t, seedAdmin(ctx, repo, seed, zap.NewNop()))
	})

	t.Run("lookup error", func(t *testing.T) {
		repo := usermock.NewMockRepository(gomock.NewController(t))
		dbErr := errors.New("db down")
		repo.EXPECT().FindByEmail(ctx, seed.AdminEmail).Return(nil, dbErr)

		assert.ErrorIs(t, seedAdmin(ctx, repo, seed, zap.NewNop()), dbErr)
	})

	t.Run("disabled without credentials", func(t *testing.T) {
		repo := usermock.NewMockRepository(gomock.NewController(t))

		assert.NoError(t, seedAdmin(ctx, repo, config.SeedConfig{}, zap.NewNop()))
	})
}
