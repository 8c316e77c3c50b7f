package app

import (
	"gorm.io/gorm"

	"github.com/MunaSchool/HR-Management-System-sub005/internal/balance"
	"github.com/MunaSchool/HR-Management-System-sub005/internal/delegation"
	"github.com/MunaSchool/HR-Management-System-sub005/internal/directory"
	"github.com/MunaSchool/HR-Management-System-sub005/internal/leaverequest"
)

const notificationOutboxDDL = `
CREATE TABLE IF NOT EXISTS notification_outbox (
	id UUID PRIMARY KEY,
	request_id UUID NOT NULL,
	recipient_id UUID NOT NULL,
	event_type VARCHAR(60) NOT NULL,
	topic VARCHAR(120) NOT NULL,
	payload JSONB NOT NULL,
	status VARCHAR(20) NOT NULL DEFAULT 'pending',
	retry_count INT NOT NULL DEFAULT 0,
	error_message VARCHAR(500),
	next_retry_at TIMESTAMPTZ,
	processed_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

func migrate(gormDB *gorm.DB) error {
	if err := gormDB.AutoMigrate(
		&directory.Employee{},
		&delegation.Delegation{},
		&balance.LeaveBalance{},
		&balance.Reservation{},
		&leaverequest.LeaveRequest{},
		&leaverequest.EscalationEvent{},
	); err != nil {
		return err
	}
	// The outbox is written with raw SQL only, so its schema is kept
	// as explicit DDL instead of a gorm model.
	return gormDB.Exec(notificationOutboxDDL).Error
}
