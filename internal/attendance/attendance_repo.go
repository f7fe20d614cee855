package attendance

import (
	"context"
	"database/sql"
	"time"

	"go-attendance/internal/shared/dbtx"
	"go-attendance/internal/shared/scope"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReportFilter selects records in an inclusive date range. When
// RestrictEmployees is set only EmployeeIDs are returned, so an empty list
// yields no rows.
type ReportFilter struct {
	From              time.Time
	To                time.Time
	EmployeeIDs       []string
	RestrictEmployees bool
}

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	FindByEmployeeAndDate(ctx context.Context, employeeID string, day time.Time) (*Attendance, error)
	CompleteCheckOut(ctx context.Context, id uuid.UUID, at time.Time, photoURL string, totalHours float64) (bool, error)
	FindByEmployee(ctx context.Context, employeeID string, from, to *time.Time) ([]Attendance, error)
	FindReport(ctx context.Context, filter ReportFilter) ([]Attendance, error)
	FindByDate(ctx context.Context, day time.Time) ([]Attendance, error)
	CountByDate(ctx context.Context, day time.Time) (int64, error)
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

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.conn(ctx).Create(a).Error
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID string, day time.Time) (*Attendance, error) {
	var a Attendance
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Where("attendance_date = ?", day.Format(time.DateOnly)).
		First(&a).Error
	return &a, err
}

// CompleteCheckOut sets the check-out columns only while they are still
// empty. It reports false when another request got there first.
func (r *repository) CompleteCheckOut(ctx context.Context, id uuid.UUID, at time.Time, photoURL string, totalHours float64) (bool, error) {
	res := r.conn(ctx).
		Model(&Attendance{}).
		Where("id = ? AND check_out_time IS NULL", id).
		Updates(map[string]any{
			"check_out_time":      at,
			"check_out_photo_url": photoURL,
			"total_hours":         totalHours,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string, from, to *time.Time) ([]Attendance, error) {
	var rows []Attendance
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Scopes(scope.DateRange("attendance_date", from, to)).
		Order("attendance_date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindReport(ctx context.Context, filter ReportFilter) ([]Attendance, error) {
	rows := []Attendance{}
	if filter.RestrictEmployees && len(filter.EmployeeIDs) == 0 {
		return rows, nil
	}

	q := r.conn(ctx).Scopes(scope.DateRange("attendance_date", &filter.From, &filter.To))
	if filter.RestrictEmployees {
		q = q.Where("employee_id IN ?", filter.EmployeeIDs)
	}
	err := q.Order("attendance_date DESC, check_in_time DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindByDate(ctx context.Context, day time.Time) ([]Attendance, error) {
	var rows []Attendance
	err := r.conn(ctx).
		Where("attendance_date = ?", day.Format(time.DateOnly)).
		Find(&rows).Error
	return rows, err
}

func (r *repository) CountByDate(ctx context.Context, day time.Time) (int64, error) {
	var n int64
	err := r.conn(ctx).
		Model(&Attendance{}).
		Where("attendance_date = ?", day.Format(time.DateOnly)).
		Count(&n).Error
	return n, err
}
