package user

import (
	"errors"
	"strings"

	usererrors "go-attendance/internal/user/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var uniqueConstraints = []string{"uq_users_email", "uq_users_employee_id"}

// MapRepositoryError translates storage failures into user-facing errors.
func MapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usererrors.ErrUserNotFound
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return usererrors.ErrUserAlreadyExists
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return usererrors.ErrUserAlreadyExists
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") {
		for _, c := range uniqueConstraints {
			if strings.Contains(errMsg, c) {
				return usererrors.ErrUserAlreadyExists
			}
		}
	}

	return err
}
