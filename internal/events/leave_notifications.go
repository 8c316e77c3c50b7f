package events

import "time"

const LeaveNotificationTopic = "hr.leave.notification.v1"

const (
	NotifyApprovalRequested = "leave.approval_requested"
	NotifyRequestApproved   = "leave.request_approved"
	NotifyRequestRejected   = "leave.request_rejected"
	NotifyRequestEscalated  = "leave.request_escalated"
)

// LeaveNotificationEvent is the payload delivered to the platform's
// notification channel. Delivery is fire-and-forget from the approval
// core's point of view.
type LeaveNotificationEvent struct {
	EventType    string    `json:"event_type"`
	RecipientID  string    `json:"recipient_id"`
	RequestID    string    `json:"request_id"`
	EmployeeID   string    `json:"employee_id"`
	LeaveTypeID  string    `json:"leave_type_id"`
	Message      string    `json:"message"`
	OccurredAt   time.Time `json:"occurred_at"`
}
