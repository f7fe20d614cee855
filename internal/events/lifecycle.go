package events

import "time"

const (
	EmployeeLifecycleTopic   = "hr.employee.lifecycle.v1"
	AttendanceLifecycleTopic = "hr.attendance.lifecycle.v1"
	LeaveLifecycleTopic      = "hr.leave.lifecycle.v1"
)

const (
	EmployeeCreated      = "employee_created"
	EmployeeDeactivated  = "employee_deactivated"
	AttendanceCheckedIn  = "attendance_checked_in"
	AttendanceCheckedOut = "attendance_checked_out"
	LeaveApplied         = "leave_applied"
	LeaveDecided         = "leave_decided"
)

// Topics lists every topic the audit consumer subscribes to.
func Topics() []string {
	return []string{EmployeeLifecycleTopic, AttendanceLifecycleTopic, LeaveLifecycleTopic}
}

type EmployeeEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	EmployeeID string    `json:"employee_id"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Domain     string    `json:"domain"`
	OccurredAt time.Time `json:"occurred_at"`
}

type AttendanceEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	EmployeeID string    `json:"employee_id"`
	Date       string    `json:"date"`
	MarkedBy   string    `json:"marked_by,omitempty"`
	TotalHours *float64  `json:"total_hours,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type LeaveEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	LeaveID    string    `json:"leave_id"`
	EmployeeID string    `json:"employee_id"`
	LeaveType  string    `json:"leave_type"`
	Status     string    `json:"status"`
	DaysCount  int       `json:"days_count"`
	DecidedBy  string    `json:"decided_by,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Envelope holds the fields every lifecycle event shares.
type Envelope struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	EmployeeID string    `json:"employee_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
