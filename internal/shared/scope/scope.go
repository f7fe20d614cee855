package scope

import (
	"time"

	"gorm.io/gorm"
)

// Active keeps only rows that have not been soft-deleted through is_active.
func Active() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("is_active = ?", true)
	}
}

// Domain filters users by business domain; an empty domain is a no-op.
func Domain(domain string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if domain == "" {
			return db
		}
		return db.Where("domain = ?", domain)
	}
}

// DateRange applies inclusive bounds on a DATE column. Nil bounds are open.
func DateRange(column string, from, to *time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if from != nil {
			db = db.Where(column+" >= ?", from.Format(time.DateOnly))
		}
		if to != nil {
			db = db.Where(column+" <= ?", to.Format(time.DateOnly))
		}
		return db
	}
}
