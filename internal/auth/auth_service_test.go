package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-attendance/internal/auth"
	autherrors "go-attendance/internal/auth/errors"
	authmock "go-attendance/internal/auth/mock"
	"go-attendance/internal/notification"
	notificationmock "go-attendance/internal/notification/mock"
	"go-attendance/internal/user"
	usererrors "go-attendance/internal/user/errors"
	usermock "go-attendance/internal/user/mock"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type deps struct {
	users      *usermock.MockRepository
	challenges *authmock.MockChallengeStore
	notifier   *notificationmock.MockGateway
	tokens     *auth.TokenManager
}

func setup(t *testing.T, opts auth.Options) (deps, auth.Service) {
	ctrl := gomock.NewController(t)
	d := deps{
		users:      usermock.NewMockRepository(ctrl),
		challenges: authmock.NewMockChallengeStore(ctrl),
		notifier:   notificationmock.NewMockGateway(ctrl),
		tokens:     auth.NewTokenManager("test-secret", time.Hour),
	}
	svc := auth.NewService(d.users, d.tokens, d.challenges, d.notifier, opts, zap.NewNop())
	return d, svc
}

func activeUser(t *testing.T, password string) *user.User {
	hash, err := user.HashPassword(password)
	assert.NoError(t, err)
	return &user.User{
		EmployeeID: "EMP001",
		Email:      "john@priacc.com",
		FullName:   "John Doe",
		Role:       user.RoleEmployee,
		Password:   hash,
		IsActive:   true,
	}
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success by employee id", func(t *testing.T) {
		d, svc := setup(t, auth.Options{})
		d.users.EXPECT().FindByLogin(gomock.Any(), "EMP001").Return(activeUser(t, "Secret@1"), nil)

		resp, err := svc.Login(ctx, "EMP001", "Secret@1")

		assert.NoError(t, err)
		assert.Equal(t, "bearer", resp.TokenType)
		assert.Equal(t, "EMP001", resp.User.EmployeeID)

		email, err := d.tokens.Parse(resp.AccessToken)
		assert.NoError(t, err)
		assert.Equal(t, "john@priacc.com", email)
	})

	t.Run("unknown user", func(t *testing.T) {
		d, svc := setup(t, auth.Options{})
		d.users.EXPECT().FindByLogin(gomock.Any(), "ghost").Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Login(ctx, "ghost", "x")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		d, svc := setup(t, auth.Options{})
		d.users.EXPECT().FindByLogin(gomock.Any(), gomock.Any()).Return(activeUser(t, "Secret@1"), nil)

		_, err := svc.Login(ctx, "john@priacc.com", "nope")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("inactive account", func(t *testing.T) {
		d, svc := setup(t, auth.Options{})
		u := activeUser(t, "Secret@1")
		u.IsActive = false
		d.users.EXPECT().FindByLogin(gomock.Any(), gomock.Any()).Return(u, nil)

		_, err := svc.Login(ctx, "john@priacc.com", "Secret@1")
		assert.ErrorIs(t, err, usererrors.ErrUserInactive)
	})
}

func TestService_Authenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid token", func(t *testing.T) {
		d, svc := setup(t, auth.Options{})
		token, _, _ := d.tokens.Issue("john@priacc.com")
		d.users.EXPECT().FindByEmail(gomock.Any(), "john@priacc.com").Return(activeUser(t, "x"), nil)

		u, err := svc.Authenticate(ctx, token)
		assert.NoError(t, err)
		assert.Equal(t, "EMP001", u.EmployeeID)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, svc := setup(t, auth.Options{})
		_, err := svc.Authenticate(ctx, "not-a-jwt")
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})

	t.Run("subject no longer exists", func(t *testing.T) {
		d, svc := setup(t, auth.Options{})
		token, _, _ := d.tokens.Issue("gone@priacc.com")
		d.users.EXPECT().FindByEmail(gomock.Any(), "gone@priacc.com").Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Authenticate(ctx, token)
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})

	t.Run("deactivated after issue", func(t *testing.T) {
		d, svc := setup(t, auth.Options{})
		token, _, _ := d.tokens.Issue("john@priacc.com")
		u := activeUser(t, "x")
		u.IsActive = false
		d.users.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(u, nil)

		_, err := svc.Authenticate(ctx, token)
		assert.ErrorIs(t, err, usererrors.ErrUserInactive)
	})
}

func TestService_ChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		d, svc := setup(t, auth.Options{})
		d.users.EXPECT().FindByEmail(gomock.Any(), "john@priacc.com").Return(activeUser(t, "Old@123"), nil)
		d.users.EXPECT().
			UpdatePassword(gomock.Any(), "john@priacc.com", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, hash string) error {
				assert.True(t, user.CheckPassword(hash, "New@123"))
				return nil
			})

		assert.NoError(t, svc.ChangePassword(ctx, "john@priacc.com", "Old@123", "New@123"))
	})

	t.Run("wrong current password", func(t *testing.T) {
		d, svc := setup(t, auth.Options{})
		d.users.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(activeUser(t, "Old@123"), nil)

		err := svc.ChangePassword(ctx, "john@priacc.com", "bad", "New@123")
		assert.ErrorIs(t, err, autherrors.ErrWrongPassword)
	})
}

func TestService_ForgotPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown email creates nothing and sends nothing", func(t *testing.T) {
		d, svc := setup(t, auth.Options{ExposeOTP: true})
		d.users.EXPECT().FindByEmail(gomock.Any(), "ghost@priacc.com").Return(nil, gorm.ErrRecordNotFound)

		resp, err := svc.ForgotPassword(ctx, "ghost@priacc.com")

		assert.NoError(t, err)
		assert.Equal(t, "If email exists, OTP has been sent", resp.Message)
		assert.Empty(t, resp.OTP)
	})

	t.Run("known email replaces challenge and mails code", func(t *testing.T) {
		d, svc := setup(t, auth.Options{ExposeOTP: true})
		d.users.EXPECT().FindByEmail(gomock.Any(), "john@priacc.com").Return(activeUser(t, "x"), nil)

		var stored auth.PasswordResetChallenge
		d.challenges.EXPECT().
			Replace(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, c auth.PasswordResetChallenge) error {
				stored = c
				return nil
			})
		d.notifier.EXPECT().
			SendPasswordReset(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, m notification.PasswordResetMail) bool {
				assert.Equal(t, stored.Code, m.Code)
				return false
			})

		resp, err := svc.ForgotPassword(ctx, "john@priacc.com")

		assert.NoError(t, err)
		assert.Len(t, stored.Code, 6)
		assert.Equal(t, stored.Code, resp.OTP)
		assert.Equal(t, auth.ChallengeValidity, stored.ExpiresAt.Sub(stored.CreatedAt))
	})

	t.Run("otp hidden outside development", func(t *testing.T) {
		d, svc := setup(t, auth.Options{ExposeOTP: false})
		d.users.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(activeUser(t, "x"), nil)
		d.challenges.EXPECT().Replace(gomock.Any(), gomock.Any()).Return(nil)
		d.notifier.EXPECT().SendPasswordReset(gomock.Any(), gomock.Any()).Return(true)

		resp, err := svc.ForgotPassword(ctx, "john@priacc.com")
		assert.NoError(t, err)
		assert.Empty(t, resp.OTP)
	})
}

func TestService_ResetPassword(t *testing.T) {
	ctx := context.Background()
	req := auth.ResetPasswordRequest{Email: "john@priacc.com", OTP: "123456", NewPassword: "New@123"}

	t.Run("success consumes the challenge", func(t *testing.T) {
		d, svc := setup(t, auth.Options{})
		d.challenges.EXPECT().Find(gomock.Any(), "john@priacc.com").Return(&auth.PasswordResetChallenge{
			Email: "john@priacc.com", Code: "123456", ExpiresAt: time.Now().Add(5 * time.Minute),
		}, nil)
		d.users.EXPECT().UpdatePassword(gomock.Any(), "john@priacc.com", gomock.Any()).Return(nil)
		d.challenges.EXPECT().Delete(gomock.Any(), "john@priacc.com").Return(nil)

		assert.NoError(t, svc.ResetPassword(ctx, req))
	})

	t.Run("no challenge", func(t *testing.T) {
		d, svc := setup(t, auth.Options{})
		d.challenges.EXPECT().Find(gomock.Any(), gomock.Any()).Return(nil, nil)

		assert.ErrorIs(t, svc.ResetPassword(ctx, req), autherrors.ErrInvalidOTP)
	})

	t.Run("wrong code", func(t *testing.T) {
		d, svc := setup(t, auth.Options{})
		d.challenges.EXPECT().Find(gomock.Any(), gomock.Any()).Return(&auth.PasswordResetChallenge{
			Code: "654321", ExpiresAt: time.Now().Add(time.Minute),
		}, nil)

		assert.ErrorIs(t, svc.ResetPassword(ctx, req), autherrors.ErrInvalidOTP)
	})

	t.Run("expired code is deleted", func(t *testing.T) {
		d, svc := setup(t, auth.Options{})
		d.challenges.EXPECT().Find(gomock.Any(), gomock.Any()).Return(&auth.PasswordResetChallenge{
			Code: "123456", ExpiresAt: time.Now().Add(-time.Minute),
		}, nil)
		d.challenges.EXPECT().Delete(gomock.Any(), "john@priacc.com").Return(nil)

		assert.ErrorIs(t, svc.ResetPassword(ctx, req), autherrors.ErrOTPExpired)
	})

	t.Run("store failure", func(t *testing.T) {
		d, svc := setup(t, auth.Options{})
		d.challenges.EXPECT().Find(gomock.Any(), gomock.Any()).Return(nil, errors.New("redis down"))

		assert.Error(t, svc.ResetPassword(ctx, req))
	})
}
