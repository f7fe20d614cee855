package leave

import (
	"time"

	"go-attendance/internal/shared/dateutil"
)

type ApplyLeaveRequest struct {
	LeaveType string `json:"leave_type" binding:"required,oneof=sick casual earned wfh maternity paternity emergency"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
}

type ListQuery struct {
	Status string `form:"status"`
}

type DecideQuery struct {
	Status string `form:"status" binding:"required"`
}

type LeaveResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	LeaveType    string  `json:"leave_type"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Reason       string  `json:"reason"`
	Status       string  `json:"status"`
	AppliedOn    string  `json:"applied_on"`
	DaysCount    int     `json:"days_count"`
	DecidedBy    *string `json:"decided_by,omitempty"`
	DecidedAt    *string `json:"decided_at,omitempty"`
}

type ApplyResponse struct {
	Message string        `json:"message"`
	Leave   LeaveResponse `json:"leave"`
}

type ListResponse struct {
	Leaves []LeaveResponse `json:"leaves"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:           l.ID.String(),
		EmployeeID:   l.EmployeeID,
		EmployeeName: l.EmployeeName,
		LeaveType:    l.LeaveType,
		StartDate:    dateutil.Format(l.StartDate),
		EndDate:      dateutil.Format(l.EndDate),
		Reason:       l.Reason,
		Status:       l.Status,
		AppliedOn:    l.AppliedOn.Format(time.RFC3339),
		DaysCount:    l.DaysCount,
		DecidedBy:    l.DecidedBy,
	}
	if l.DecidedAt != nil {
		at := l.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &at
	}
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	res := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		res[i] = mapToResponse(l)
	}
	return res
}
