package balance

type BalanceResponse struct {
	EmployeeID  string `json:"employee_id"`
	LeaveTypeID string `json:"leave_type_id"`
	Year        int    `json:"year"`
	Entitlement int    `json:"entitlement"`
	Taken       int    `json:"taken"`
	Pending     int    `json:"pending"`
	Remaining   int    `json:"remaining"`
}

func mapToResponse(b LeaveBalance) BalanceResponse {
	return BalanceResponse{
		EmployeeID:  b.EmployeeID.String(),
		LeaveTypeID: b.LeaveTypeID,
		Year:        b.Year,
		Entitlement: b.Entitlement,
		Taken:       b.Taken,
		Pending:     b.Pending,
		Remaining:   b.Remaining(),
	}
}

func mapToListResponse(balances []LeaveBalance) []BalanceResponse {
	resp := make([]BalanceResponse, len(balances))
	for i, b := range balances {
		resp[i] = mapToResponse(b)
	}
	return resp
}
