package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	autherrors "go-attendance/internal/auth/errors"
	"go-attendance/internal/notification"
	"go-attendance/internal/shared/contextutil"
	"go-attendance/internal/user"
	usererrors "go-attendance/internal/user/errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const forgotPasswordMessage = "If email exists, OTP has been sent"

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, username, password string) (LoginResponse, error)
	Authenticate(ctx context.Context, token string) (*user.User, error)
	ChangePassword(ctx context.Context, email, currentPassword, newPassword string) error
	ForgotPassword(ctx context.Context, email string) (ForgotPasswordResponse, error)
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
}

type Options struct {
	// ExposeOTP echoes the reset code in the API response (development only).
	ExposeOTP bool
}

type service struct {
	users      user.Repository
	tokens     *TokenManager
	challenges ChallengeStore
	notifier   notification.Gateway
	opts       Options
	now        func() time.Time
	logger     *zap.Logger
}

func NewService(
	users user.Repository,
	tokens *TokenManager,
	challenges ChallengeStore,
	notifier notification.Gateway,
	opts Options,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		users:      users,
		tokens:     tokens,
		challenges: challenges,
		notifier:   notifier,
		opts:       opts,
		now:        time.Now,
		logger:     l,
	}
}

func (s *service) Login(ctx context.Context, username, password string) (LoginResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	u, err := s.users.FindByLogin(ctx, username)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error("login lookup failed", zap.Error(err))
			return LoginResponse{}, err
		}
		log.Info("login unknown user", zap.String("username", username))
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	if !user.CheckPassword(u.Password, password) {
		log.Info("login wrong password", zap.String("employee_id", u.EmployeeID))
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	if !u.IsActive {
		log.Warn("login inactive account", zap.String("employee_id", u.EmployeeID))
		return LoginResponse{}, usererrors.ErrUserInactive
	}

	token, expiresAt, err := s.tokens.Issue(u.Email)
	if err != nil {
		log.Error("issue token failed", zap.Error(err))
		return LoginResponse{}, autherrors.ErrTokenGenerationFailed
	}

	log.Info("login success", zap.String("employee_id", u.EmployeeID), zap.String("role", u.Role))

	return LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt.UTC().Format(time.RFC3339),
		User:        user.ToProfile(*u),
	}, nil
}

// Authenticate runs on every protected request: the token must verify and its
// subject must still resolve to an active user.
func (s *service) Authenticate(ctx context.Context, token string) (*user.User, error) {
	email, err := s.tokens.Parse(token)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Debug("token rejected", zap.Error(err))
		return nil, autherrors.ErrInvalidToken
	}

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, autherrors.ErrInvalidToken
		}
		return nil, err
	}

	if !u.IsActive {
		return nil, usererrors.ErrUserInactive
	}
	return u, nil
}

func (s *service) ChangePassword(ctx context.Context, email, currentPassword, newPassword string) error {
	log := contextutil.GetLogger(ctx, s.logger)

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return user.MapRepositoryError(err)
	}

	if !user.CheckPassword(u.Password, currentPassword) {
		return autherrors.ErrWrongPassword
	}

	hashed, err := user.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePassword(ctx, u.Email, hashed); err != nil {
		log.Error("change password persist failed", zap.Error(err))
		return err
	}

	log.Info("password changed", zap.String("employee_id", u.EmployeeID))
	return nil
}

// ForgotPassword never reveals whether the email is registered.
func (s *service) ForgotPassword(ctx context.Context, email string) (ForgotPasswordResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	generic := ForgotPasswordResponse{Message: forgotPasswordMessage}

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Info("forgot password for unknown email")
			return generic, nil
		}
		return ForgotPasswordResponse{}, err
	}

	code, err := generateOTP()
	if err != nil {
		return ForgotPasswordResponse{}, err
	}

	now := s.now()
	challenge := PasswordResetChallenge{
		Email:     u.Email,
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(ChallengeValidity),
	}
	if err := s.challenges.Replace(ctx, challenge); err != nil {
		log.Error("store reset challenge failed", zap.Error(err))
		return ForgotPasswordResponse{}, err
	}

	s.notifier.SendPasswordReset(ctx, notification.PasswordResetMail{
		To:           u.Email,
		Code:         code,
		ValidMinutes: int(ChallengeValidity / time.Minute),
	})

	if s.opts.ExposeOTP {
		generic.OTP = code
	}
	return generic, nil
}

func (s *service) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	log := contextutil.GetLogger(ctx, s.logger)
	email := user.NormalizeEmail(req.Email)

	challenge, err := s.challenges.Find(ctx, email)
	if err != nil {
		return err
	}
	if challenge == nil || challenge.Code != req.OTP {
		log.Info("reset password invalid otp")
		return autherrors.ErrInvalidOTP
	}

	if challenge.Expired(s.now()) {
		if err := s.challenges.Delete(ctx, email); err != nil {
			log.Warn("delete expired challenge failed", zap.Error(err))
		}
		return autherrors.ErrOTPExpired
	}

	hashed, err := user.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, email, hashed); err != nil {
		log.Error("reset password persist failed", zap.Error(err))
		return err
	}

	if err := s.challenges.Delete(ctx, email); err != nil {
		log.Warn("delete used challenge failed", zap.Error(err))
	}

	log.Info("password reset")
	return nil
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
