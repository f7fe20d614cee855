package attendance

import (
	"time"

	"go-attendance/internal/shared/dateutil"
)

const (
	ActionCheckIn  = "check_in"
	ActionCheckOut = "check_out"

	StatusCheckedIn    = "checked_in"
	StatusNotCheckedIn = "not_checked_in"
)

type PhotoRequest struct {
	PhotoBase64 string `json:"photo_base64" binding:"required"`
}

type MarkRequest struct {
	EmployeeID string `form:"employee_id" json:"employee_id" binding:"required"`
	Action     string `form:"action" json:"action" binding:"required"`
}

type HistoryQuery struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

type ReportQuery struct {
	StartDate  string `form:"start_date" binding:"required"`
	EndDate    string `form:"end_date" binding:"required"`
	Domain     string `form:"domain"`
	EmployeeID string `form:"employee_id"`
}

type AttendanceResponse struct {
	ID               string   `json:"id"`
	EmployeeID       string   `json:"employee_id"`
	EmployeeName     string   `json:"employee_name"`
	Date             string   `json:"date"`
	CheckInTime      string   `json:"check_in_time"`
	CheckOutTime     *string  `json:"check_out_time"`
	CheckInPhotoURL  string   `json:"check_in_photo_url"`
	CheckOutPhotoURL *string  `json:"check_out_photo_url"`
	TotalHours       *float64 `json:"total_hours"`
}

type CheckInResponse struct {
	Message    string             `json:"message"`
	Attendance AttendanceResponse `json:"attendance"`
}

type CheckOutResponse struct {
	Message    string             `json:"message"`
	TotalHours float64            `json:"total_hours"`
	Attendance AttendanceResponse `json:"attendance"`
}

type MarkResponse struct {
	Message    string             `json:"message"`
	TotalHours *float64           `json:"total_hours,omitempty"`
	Attendance AttendanceResponse `json:"attendance"`
}

type HistoryResponse struct {
	Attendance []AttendanceResponse `json:"attendance"`
}

type TodayResponse struct {
	Status     string              `json:"status"`
	Attendance *AttendanceResponse `json:"attendance"`
}

type ReportResponse struct {
	Attendance []AttendanceResponse `json:"attendance"`
	Count      int                  `json:"count"`
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:               a.ID.String(),
		EmployeeID:       a.EmployeeID,
		EmployeeName:     a.EmployeeName,
		Date:             dateutil.Format(a.AttendanceDate),
		CheckInTime:      a.CheckInTime.Format(time.RFC3339),
		CheckInPhotoURL:  a.CheckInPhotoURL,
		CheckOutPhotoURL: a.CheckOutPhotoURL,
		TotalHours:       a.TotalHours,
	}
	if a.CheckOutTime != nil {
		out := a.CheckOutTime.Format(time.RFC3339)
		resp.CheckOutTime = &out
	}
	return resp
}

func mapToListResponse(rows []Attendance) []AttendanceResponse {
	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res
}
