package delegation

import (
	"time"

	"github.com/google/uuid"
)

// Delegation hands a manager's approval authority to a stand-in for a
// date range. At most one delegation per manager may be active at any
// instant.
type Delegation struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ManagerID  uuid.UUID `gorm:"type:uuid;not null;index:idx_delegations_manager_range"`
	DelegateID uuid.UUID `gorm:"type:uuid;not null"`
	ActiveFrom time.Time `gorm:"type:date;not null;index:idx_delegations_manager_range"`
	ActiveTo   time.Time `gorm:"type:date;not null;index:idx_delegations_manager_range"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
