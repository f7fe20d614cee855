package user

import "time"

// Profile is the public view of a user; the password hash never leaves the package.
type Profile struct {
	ID             string    `json:"id"`
	EmployeeID     string    `json:"employee_id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	Role           string    `json:"role"`
	Domain         string    `json:"domain"`
	DateOfBirth    *string   `json:"date_of_birth"`
	JoiningDate    *string   `json:"joining_date"`
	Address        *string   `json:"address"`
	HierarchyLevel *string   `json:"hierarchy_level"`
	Manager        *string   `json:"manager"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

func ToProfile(u User) Profile {
	return Profile{
		ID:             u.ID.String(),
		EmployeeID:     u.EmployeeID,
		Email:          u.Email,
		FullName:       u.FullName,
		Role:           u.Role,
		Domain:         u.Domain,
		DateOfBirth:    u.DateOfBirth,
		JoiningDate:    u.JoiningDate,
		Address:        u.Address,
		HierarchyLevel: u.HierarchyLevel,
		Manager:        u.Manager,
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt,
	}
}

func ToProfiles(users []User) []Profile {
	out := make([]Profile, len(users))
	for i, u := range users {
		out[i] = ToProfile(u)
	}
	return out
}
