package app

import (
	"context"
	"errors"

	"go-attendance/internal/config"
	"go-attendance/internal/user"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// seedAdmin creates the default HR admin on an empty install. An existing
// account with the same email is left untouched.
func seedAdmin(ctx context.Context, repo user.Repository, cfg config.SeedConfig, logger *zap.Logger) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	_, err := repo.FindByEmail(ctx, cfg.AdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := user.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	admin := &user.User{
		EmployeeID: cfg.AdminEmployeeID,
		Email:      user.NormalizeEmail(cfg.AdminEmail),
		FullName:   cfg.AdminName,
		Role:       user.RoleHRAdmin,
		Domain:     "HR",
		Password:   hash,
		IsActive:   true,
	}
	if err := repo.Create(ctx, admin); err != nil {
		return err
	}

	logger.Info("default hr admin created",
		zap.String("email", admin.Email),
		zap.String("employee_id", admin.EmployeeID),
	)
	return nil
}
