package employee

import "go-attendance/internal/user"

type CreateEmployeeRequest struct {
	EmployeeID     string  `json:"employee_id" binding:"omitempty,max=50"`
	Email          string  `json:"email" binding:"required,email"`
	FullName       string  `json:"full_name" binding:"required"`
	Password       string  `json:"password" binding:"required,min=6"`
	Role           string  `json:"role" binding:"omitempty,oneof=employee hr_admin"`
	Domain         string  `json:"domain"`
	DateOfBirth    *string `json:"date_of_birth"`
	JoiningDate    *string `json:"joining_date"`
	Address        *string `json:"address"`
	HierarchyLevel *string `json:"hierarchy_level"`
	Manager        *string `json:"manager"`
}

// UpdateEmployeeRequest is a partial update: nil fields are left untouched.
type UpdateEmployeeRequest struct {
	FullName       *string `json:"full_name"`
	Domain         *string `json:"domain"`
	DateOfBirth    *string `json:"date_of_birth"`
	Address        *string `json:"address"`
	HierarchyLevel *string `json:"hierarchy_level"`
	Manager        *string `json:"manager"`
}

func (r UpdateEmployeeRequest) fields() map[string]any {
	out := map[string]any{}
	set := func(column string, v *string) {
		if v != nil {
			out[column] = *v
		}
	}
	set("full_name", r.FullName)
	set("domain", r.Domain)
	set("date_of_birth", r.DateOfBirth)
	set("address", r.Address)
	set("hierarchy_level", r.HierarchyLevel)
	set("manager", r.Manager)
	return out
}

// EmployeeOption is the slim row used by the HR mark-attendance picker.
type EmployeeOption struct {
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	Domain     string `json:"domain"`
}

type DomainsResponse struct {
	Domains []string `json:"domains"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func toOptions(users []user.User) []EmployeeOption {
	res := make([]EmployeeOption, len(users))
	for i, u := range users {
		res[i] = EmployeeOption{EmployeeID: u.EmployeeID, FullName: u.FullName, Domain: u.Domain}
	}
	return res
}
