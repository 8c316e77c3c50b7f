package notification

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/MunaSchool/HR-Management-System-sub005/internal/events"
	"github.com/MunaSchool/HR-Management-System-sub005/internal/messaging/kafka"
	"github.com/MunaSchool/HR-Management-System-sub005/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notification is a single fire-and-forget message to an employee.
type Notification struct {
	RecipientID string
	EventType   string
	RequestID   string
	EmployeeID  string
	LeaveTypeID string
	Message     string
}

// Notifier is the approval core's view of the platform notification
// channel. Implementations must never let a delivery problem fail the
// state transition that triggered it.
type Notifier interface {
	WithTx(tx *sql.Tx) Notifier
	Notify(ctx context.Context, n Notification)
}

// OutboxNotifier stages notifications in the transactional outbox; a
// separate worker publishes them to Kafka.
type OutboxNotifier struct {
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewOutboxNotifier(outbox kafka.OutboxRepository, logger ...*zap.Logger) *OutboxNotifier {
	l := zap.L().Named("notification.outbox")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.outbox")
	}
	return &OutboxNotifier{outbox: outbox, logger: l}
}

func (n *OutboxNotifier) WithTx(tx *sql.Tx) Notifier {
	return &OutboxNotifier{outbox: n.outbox.WithTx(tx), logger: n.logger}
}

func (n *OutboxNotifier) Notify(ctx context.Context, msg Notification) {
	payload, err := json.Marshal(events.LeaveNotificationEvent{
		EventType:   msg.EventType,
		RecipientID: msg.RecipientID,
		RequestID:   msg.RequestID,
		EmployeeID:  msg.EmployeeID,
		LeaveTypeID: msg.LeaveTypeID,
		Message:     msg.Message,
		OccurredAt:  time.Now().UTC(),
	})
	if err != nil {
		n.logger.Error("marshal notification failed", zap.Error(err))
		return
	}

	event := kafka.OutboxEvent{
		ID:          uuid.New().String(),
		RequestID:   msg.RequestID,
		RecipientID: msg.RecipientID,
		EventType:   msg.EventType,
		Topic:       events.LeaveNotificationTopic,
		Payload:     payload,
		Status:      kafka.OutboxStatusPending,
	}

	if err := n.outbox.Create(ctx, event); err != nil {
		// Losing a notification is acceptable, failing the caller's
		// transition is not.
		n.logger.Error("stage notification failed",
			zap.String("event_type", msg.EventType),
			zap.String("recipient_id", msg.RecipientID),
			zap.String("trace_request_id", contextutil.GetRequestID(ctx)),
			zap.Error(err),
		)
	}
}

// NoopNotifier discards notifications, used in tests.
type NoopNotifier struct{}

func (NoopNotifier) WithTx(tx *sql.Tx) Notifier           { return NoopNotifier{} }
func (NoopNotifier) Notify(context.Context, Notification) {}
