package holiday

import (
	"context"
	"database/sql"
	"time"

	"go-attendance/internal/shared/dbtx"
	"go-attendance/internal/shared/scope"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=holiday_repo.go -destination=mock/holiday_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, h *Holiday) error
	FindAll(ctx context.Context, year int) ([]Holiday, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Holiday, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
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

func (r *repository) Create(ctx context.Context, h *Holiday) error {
	return r.conn(ctx).Create(h).Error
}

// FindAll lists holidays by date ascending; year 0 means every year.
func (r *repository) FindAll(ctx context.Context, year int) ([]Holiday, error) {
	holidays := []Holiday{}
	q := r.conn(ctx)
	if year > 0 {
		from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
		q = q.Scopes(scope.DateRange("date", &from, &to))
	}
	err := q.Order("date ASC").Find(&holidays).Error
	return holidays, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Holiday, error) {
	var h Holiday
	err := r.conn(ctx).First(&h, "id = ?", id).Error
	return &h, err
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.conn(ctx).Delete(&Holiday{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
