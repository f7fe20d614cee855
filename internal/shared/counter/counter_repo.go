package counter

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

const TypeEmployee = "employee"

//go:generate mockgen -destination=mock/counter_repo_mock.go -package=mock . Repository
type Repository interface {
	GetNextValue(ctx context.Context, counterType string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	var nextValue int64

	// atomic upsert so concurrent creates never hand out the same number
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO id_counters (counter_type, last_value, updated_at)
		VALUES (?, 1, now())
		ON CONFLICT (counter_type) DO UPDATE
		SET last_value = id_counters.last_value + 1, updated_at = now()
		RETURNING last_value
	`, counterType).Scan(&nextValue).Error

	if err != nil {
		return 0, err
	}

	return nextValue, nil
}

// FormatEmployeeID renders the generated sequence as EMP-000042.
func FormatEmployeeID(n int64) string {
	return fmt.Sprintf("EMP-%06d", n)
}
