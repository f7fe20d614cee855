package attendance

import (
	"time"

	"github.com/google/uuid"
)

// PhotoHRMarked replaces both photo references when HR records attendance on
// an employee's behalf.
const PhotoHRMarked = "hr_marked"

// Attendance is one employee's record for one calendar day. The check-out
// columns are written together by a single conditional UPDATE.
type Attendance struct {
	ID               uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID       string     `gorm:"column:employee_id;type:varchar(50);not null;uniqueIndex:uq_attendance_employee_date,priority:1"`
	EmployeeName     string     `gorm:"column:employee_name;type:varchar(255);not null"`
	AttendanceDate   time.Time  `gorm:"column:attendance_date;type:date;not null;uniqueIndex:uq_attendance_employee_date,priority:2;index"`
	CheckInTime      time.Time  `gorm:"column:check_in_time;type:timestamptz;not null"`
	CheckOutTime     *time.Time `gorm:"column:check_out_time;type:timestamptz"`
	CheckInPhotoURL  string     `gorm:"column:check_in_photo_url;type:text;not null"`
	CheckOutPhotoURL *string    `gorm:"column:check_out_photo_url;type:text"`
	TotalHours       *float64   `gorm:"column:total_hours;type:numeric(6,2)"`
	CreatedAt        time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Attendance) TableName() string {
	return "attendances"
}

func (a Attendance) CheckedOut() bool {
	return a.CheckOutTime != nil
}
