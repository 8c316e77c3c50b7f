package leaverequest

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCancelled = "CANCELLED"
)

const (
	DecisionApprove = "APPROVE"
	DecisionReject  = "REJECT"
)

// LeaveRequest is the state machine's aggregate. PENDING is the only
// non-terminal status; escalation is a flag on PENDING rather than a
// status of its own, since an escalated request is still awaiting a
// decision, just from someone else.
//
// Terminal requests are never deleted; they are the audit trail the
// balance history and the team calendar are built from.
type LeaveRequest struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_employee_dates"`
	LeaveTypeID string    `gorm:"type:varchar(30);not null"`

	StartDate     time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	EndDate       time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	Days          int       `gorm:"type:int;not null"`
	Justification string    `gorm:"type:text"`

	Status             string     `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_leave_requests_status_deadline"`
	CurrentApproverID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	IsEscalated        bool       `gorm:"not null;default:false"`
	EscalationDeadline time.Time  `gorm:"not null;index:idx_leave_requests_status_deadline"`
	DecidedBy          *uuid.UUID `gorm:"type:uuid"`
	DecidedAt          *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

const EscalationReasonDeadline = "DEADLINE_EXCEEDED"

// EscalationEvent is one append-only audit row per escalation hop.
type EscalationEvent struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequestID      uuid.UUID `gorm:"type:uuid;not null;index"`
	FromApproverID uuid.UUID `gorm:"type:uuid;not null"`
	ToApproverID   uuid.UUID `gorm:"type:uuid;not null"`
	Reason         string    `gorm:"type:varchar(40);not null"`
	OccurredAt     time.Time `gorm:"not null"`
}
