package balance

import (
	"time"

	"github.com/google/uuid"
)

// LeaveBalance is one ledger row per (employee, leave type, year).
// The conservation invariant is remaining = entitlement - taken - pending,
// with remaining derived rather than stored so the row can never drift.
type LeaveBalance struct {
	EmployeeID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	LeaveTypeID string    `gorm:"type:varchar(30);primaryKey"`
	Year        int       `gorm:"primaryKey"`

	Entitlement int `gorm:"type:int;not null"`
	Taken       int `gorm:"type:int;not null;default:0"`
	Pending     int `gorm:"type:int;not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (b LeaveBalance) Remaining() int {
	return b.Entitlement - b.Taken - b.Pending
}

const (
	ReservationReserved  = "RESERVED"
	ReservationCommitted = "COMMITTED"
	ReservationReleased  = "RELEASED"
)

// Reservation is the hold a pending request places on a ledger row.
// Its id is the leave request id, which is what makes commit and
// release idempotent: settling is a guarded status flip keyed on it.
type Reservation struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;index"`
	LeaveTypeID string    `gorm:"type:varchar(30);not null"`
	Year        int       `gorm:"not null"`
	Days        int       `gorm:"type:int;not null"`
	Status      string    `gorm:"type:varchar(20);not null;default:'RESERVED'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
