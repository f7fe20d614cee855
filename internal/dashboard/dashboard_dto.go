package dashboard

type StatsResponse struct {
	TotalEmployees int64            `json:"total_employees"`
	PresentToday   int64            `json:"present_today"`
	AbsentToday    int64            `json:"absent_today"`
	PendingLeaves  int64            `json:"pending_leaves"`
	DomainCounts   map[string]int64 `json:"domain_counts"`
}

type EmployeeStatus struct {
	EmployeeID   string   `json:"employee_id"`
	EmployeeName string   `json:"employee_name"`
	Domain       string   `json:"domain"`
	IsPresent    bool     `json:"is_present"`
	CheckInTime  *string  `json:"check_in_time"`
	CheckOutTime *string  `json:"check_out_time"`
	TotalHours   *float64 `json:"total_hours"`
}

type EmployeeStatusResponse struct {
	Date      string           `json:"date"`
	Employees []EmployeeStatus `json:"employees"`
}
