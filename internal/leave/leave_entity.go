package leave

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

const (
	TypeSick      = "sick"
	TypeCasual    = "casual"
	TypeEarned    = "earned"
	TypeWFH       = "wfh"
	TypeMaternity = "maternity"
	TypePaternity = "paternity"
	TypeEmergency = "emergency"
)

// Leave is an inclusive date range. DaysCount is fixed when the request is
// applied; EmployeeName is copied from the user at that moment.
type Leave struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID   string    `gorm:"type:varchar(50);not null;index:idx_leaves_employee"`
	EmployeeName string    `gorm:"type:varchar(255);not null"`

	LeaveType string    `gorm:"type:varchar(20);not null"`
	StartDate time.Time `gorm:"type:date;not null"`
	EndDate   time.Time `gorm:"type:date;not null"`
	DaysCount int       `gorm:"type:int;not null"`
	Reason    string    `gorm:"type:text;not null"`

	Status    string     `gorm:"type:varchar(20);not null;default:'pending';index:idx_leaves_status"`
	AppliedOn time.Time  `gorm:"not null;index:idx_leaves_applied_on"`
	DecidedBy *string    `gorm:"type:varchar(50)"`
	DecidedAt *time.Time `gorm:"type:timestamptz"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Leave) TableName() string {
	return "leaves"
}

// Decided reports whether the request already reached a terminal status.
func (l Leave) Decided() bool {
	return l.Status == StatusApproved || l.Status == StatusRejected
}

func IsDecision(status string) bool {
	return status == StatusApproved || status == StatusRejected
}

func IsStatus(status string) bool {
	return status == StatusPending || IsDecision(status)
}
