package leaverequest

import "time"

type SubmitLeaveRequest struct {
	LeaveTypeID   string `json:"leave_type_id" binding:"required,oneof=ANNUAL SICK UNPAID"`
	StartDate     string `json:"start_date" binding:"required"`
	EndDate       string `json:"end_date" binding:"required"`
	Justification string `json:"justification"`
}

type RejectLeaveRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type LeaveRequestResponse struct {
	ID                 string  `json:"id"`
	EmployeeID         string  `json:"employee_id"`
	LeaveTypeID        string  `json:"leave_type_id"`
	StartDate          string  `json:"start_date"`
	EndDate            string  `json:"end_date"`
	Days               int     `json:"days"`
	Justification      string  `json:"justification"`
	Status             string  `json:"status"`
	CurrentApproverID  string  `json:"current_approver_id"`
	IsEscalated        bool    `json:"is_escalated"`
	EscalationDeadline string  `json:"escalation_deadline"`
	DecidedBy          *string `json:"decided_by,omitempty"`
	DecidedAt          *string `json:"decided_at,omitempty"`
	CreatedAt          string  `json:"created_at"`
}

type EscalationEventResponse struct {
	ID             string `json:"id"`
	RequestID      string `json:"request_id"`
	FromApproverID string `json:"from_approver_id"`
	ToApproverID   string `json:"to_approver_id"`
	Reason         string `json:"reason"`
	OccurredAt     string `json:"occurred_at"`
}

func mapToResponse(r LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:                 r.ID.String(),
		EmployeeID:         r.EmployeeID.String(),
		LeaveTypeID:        r.LeaveTypeID,
		StartDate:          r.StartDate.Format("2006-01-02"),
		EndDate:            r.EndDate.Format("2006-01-02"),
		Days:               r.Days,
		Justification:      r.Justification,
		Status:             r.Status,
		CurrentApproverID:  r.CurrentApproverID.String(),
		IsEscalated:        r.IsEscalated,
		EscalationDeadline: r.EscalationDeadline.UTC().Format(time.RFC3339),
		CreatedAt:          r.CreatedAt.UTC().Format(time.RFC3339),
	}
	if r.DecidedBy != nil {
		v := r.DecidedBy.String()
		resp.DecidedBy = &v
	}
	if r.DecidedAt != nil {
		v := r.DecidedAt.UTC().Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	return resp
}

func mapToListResponse(requests []LeaveRequest) []LeaveRequestResponse {
	resp := make([]LeaveRequestResponse, len(requests))
	for i, r := range requests {
		resp[i] = mapToResponse(r)
	}
	return resp
}

func mapToEventResponse(events []EscalationEvent) []EscalationEventResponse {
	resp := make([]EscalationEventResponse, len(events))
	for i, e := range events {
		resp[i] = EscalationEventResponse{
			ID:             e.ID.String(),
			RequestID:      e.RequestID.String(),
			FromApproverID: e.FromApproverID.String(),
			ToApproverID:   e.ToApproverID.String(),
			Reason:         e.Reason,
			OccurredAt:     e.OccurredAt.UTC().Format(time.RFC3339),
		}
	}
	return resp
}
