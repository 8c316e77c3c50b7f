package calendar

// TeamAbsence is one team member's approved leave span as seen from a
// manager's calendar.
type TeamAbsence struct {
	EmployeeID  string `json:"employee_id"`
	LeaveTypeID string `json:"leave_type_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Days        int    `json:"days"`
}

// CalendarDay groups the absences covering a single calendar date.
type CalendarDay struct {
	Date     string        `json:"date"`
	OnLeave  []TeamAbsence `json:"on_leave"`
	Absences int           `json:"absences"`
}

type CalendarResponse struct {
	Month string        `json:"month"`
	Days  []CalendarDay `json:"days"`
}
