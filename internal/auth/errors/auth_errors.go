package autherrors

import (
	"net/http"

	"go-attendance/internal/shared/apperror"
)

var (
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"Incorrect email/employee ID or password",
		http.StatusUnauthorized,
	)

	ErrInvalidToken = apperror.New(
		apperror.CodeUnauthorized,
		"Could not validate credentials",
		http.StatusUnauthorized,
	)

	ErrTokenGenerationFailed = apperror.New(
		apperror.CodeInternalError,
		"Failed to issue access token",
		http.StatusInternalServerError,
	)

	ErrWrongPassword = apperror.New(
		apperror.CodeInvalidInput,
		"Current password is incorrect",
		http.StatusBadRequest,
	)

	ErrInvalidOTP = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid OTP",
		http.StatusBadRequest,
	)

	ErrOTPExpired = apperror.New(
		apperror.CodeInvalidInput,
		"OTP expired",
		http.StatusBadRequest,
	)
)
