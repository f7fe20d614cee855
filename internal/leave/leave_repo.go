package leave

import (
	"context"
	"database/sql"
	"time"

	"go-attendance/internal/shared/dbtx"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	FindByID(ctx context.Context, id uuid.UUID) (*Leave, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]Leave, error)
	FindAll(ctx context.Context, status string) ([]Leave, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status, decidedBy string, at time.Time) (bool, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
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

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.conn(ctx).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Leave, error) {
	var l Leave
	err := r.conn(ctx).First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]Leave, error) {
	var leaves []Leave
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Order("applied_on DESC").
		Find(&leaves).Error
	return leaves, err
}

// FindAll returns every request, newest first. An empty status is no filter.
func (r *repository) FindAll(ctx context.Context, status string) ([]Leave, error) {
	var leaves []Leave
	q := r.conn(ctx)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("applied_on DESC").Find(&leaves).Error
	return leaves, err
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status, decidedBy string, at time.Time) (bool, error) {
	res := r.conn(ctx).
		Model(&Leave{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"decided_by": decidedBy,
			"decided_at": at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := r.conn(ctx).
		Model(&Leave{}).
		Where("status = ?", status).
		Count(&n).Error
	return n, err
}
