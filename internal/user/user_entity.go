package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleEmployee = "employee"
	RoleHRAdmin  = "hr_admin"
)

// User is both the login identity and the employee profile.
type User struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID     string    `gorm:"column:employee_id;type:varchar(50);not null;uniqueIndex:uq_users_employee_id"`
	Email          string    `gorm:"column:email;type:varchar(255);not null;uniqueIndex:uq_users_email"`
	FullName       string    `gorm:"column:full_name;type:varchar(255);not null"`
	Role           string    `gorm:"column:role;type:varchar(20);not null;default:employee;index"`
	Domain         string    `gorm:"column:domain;type:varchar(100);index"`
	DateOfBirth    *string   `gorm:"column:date_of_birth;type:varchar(10)"`
	JoiningDate    *string   `gorm:"column:joining_date;type:varchar(10)"`
	Address        *string   `gorm:"column:address;type:text"`
	HierarchyLevel *string   `gorm:"column:hierarchy_level;type:varchar(100)"`
	Manager        *string   `gorm:"column:manager;type:varchar(255)"`
	Password       string    `gorm:"column:password;type:text;not null"`
	IsActive       bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

func (u User) IsHRAdmin() bool {
	return u.Role == RoleHRAdmin
}

func ValidRole(role string) bool {
	return role == RoleEmployee || role == RoleHRAdmin
}
