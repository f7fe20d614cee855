package user

import (
	"context"
	"database/sql"
	"strings"

	"go-attendance/internal/shared/dbtx"
	"go-attendance/internal/shared/scope"

	"gorm.io/gorm"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, u *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByEmployeeID(ctx context.Context, employeeID string) (*User, error)
	FindByLogin(ctx context.Context, username string) (*User, error)
	FindAll(ctx context.Context, domain string) ([]User, error)
	FindActiveEmployees(ctx context.Context) ([]User, error)
	FindEmployeeIDsByDomain(ctx context.Context, domain string) ([]string, error)
	Update(ctx context.Context, employeeID string, fields map[string]any) (bool, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) error
	CountActiveEmployees(ctx context.Context) (int64, error)
	CountActiveByDomain(ctx context.Context, domains []string) (map[string]int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return dbtx.Bind(r.db, r.tx).WithContext(ctx)
}

func (r *repository) Create(ctx context.Context, u *User) error {
	return r.conn(ctx).Create(u).Error
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.conn(ctx).First(&u, "email = ?", NormalizeEmail(email)).Error
	return &u, err
}

func (r *repository) FindByEmployeeID(ctx context.Context, employeeID string) (*User, error) {
	var u User
	err := r.conn(ctx).First(&u, "employee_id = ?", employeeID).Error
	return &u, err
}

// FindByLogin accepts either an email address or an employee_id.
func (r *repository) FindByLogin(ctx context.Context, username string) (*User, error) {
	var u User
	err := r.conn(ctx).
		Where("email = ? OR employee_id = ?", NormalizeEmail(username), strings.TrimSpace(username)).
		First(&u).Error
	return &u, err
}

func (r *repository) FindAll(ctx context.Context, domain string) ([]User, error) {
	var users []User
	err := r.conn(ctx).
		Scopes(scope.Domain(domain)).
		Order("employee_id ASC").
		Find(&users).Error
	return users, err
}

func (r *repository) FindActiveEmployees(ctx context.Context) ([]User, error) {
	var users []User
	err := r.conn(ctx).
		Scopes(scope.Active()).
		Where("role = ?", RoleEmployee).
		Order("full_name ASC").
		Find(&users).Error
	return users, err
}

func (r *repository) FindEmployeeIDsByDomain(ctx context.Context, domain string) ([]string, error) {
	var ids []string
	err := r.conn(ctx).
		Model(&User{}).
		Where("domain = ?", domain).
		Pluck("employee_id", &ids).Error
	return ids, err
}

// Update applies a partial column map and reports whether the employee exists.
func (r *repository) Update(ctx context.Context, employeeID string, fields map[string]any) (bool, error) {
	res := r.conn(ctx).
		Model(&User{}).
		Where("employee_id = ?", employeeID).
		Updates(fields)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	return r.conn(ctx).
		Model(&User{}).
		Where("email = ?", NormalizeEmail(email)).
		Update("password", passwordHash).Error
}

func (r *repository) CountActiveEmployees(ctx context.Context) (int64, error) {
	var n int64
	err := r.conn(ctx).
		Model(&User{}).
		Scopes(scope.Active()).
		Where("role = ?", RoleEmployee).
		Count(&n).Error
	return n, err
}

type domainCount struct {
	Domain string
	Total  int64
}

// CountActiveByDomain counts active users of any role. Every requested domain
// is present in the result, zero when nobody belongs to it.
func (r *repository) CountActiveByDomain(ctx context.Context, domains []string) (map[string]int64, error) {
	out := make(map[string]int64, len(domains))
	for _, d := range domains {
		out[d] = 0
	}
	if len(domains) == 0 {
		return out, nil
	}

	var rows []domainCount
	err := r.conn(ctx).
		Model(&User{}).
		Select("domain, COUNT(*) AS total").
		Scopes(scope.Active()).
		Where("domain IN ?", domains).
		Group("domain").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		out[row.Domain] = row.Total
	}
	return out, nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
