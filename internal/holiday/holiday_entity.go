package holiday

import (
	"time"

	"github.com/google/uuid"
)

type Holiday struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(150);not null"`
	Date        time.Time `gorm:"type:date;not null;index:idx_holidays_date"`
	Description *string   `gorm:"type:text"`
	CreatedAt   time.Time
}

func (Holiday) TableName() string {
	return "holidays"
}
