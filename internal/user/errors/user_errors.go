package usererrors

import (
	"net/http"

	"go-attendance/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)

	ErrUserAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Email or Employee ID already exists",
		http.StatusConflict,
	)

	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"Role must be employee or hr_admin",
		http.StatusBadRequest,
	)

	ErrInvalidDomain = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown domain",
		http.StatusBadRequest,
	)

	ErrNoDataToUpdate = apperror.New(
		apperror.CodeInvalidInput,
		"No data to update",
		http.StatusBadRequest,
	)

	ErrUserInactive = apperror.New(
		apperror.CodeForbidden,
		"Account is inactive",
		http.StatusForbidden,
	)
)
