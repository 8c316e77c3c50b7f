package leaverequest

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leaverequest_repo.go -destination=mock/leaverequest_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, r *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	FindPendingByApprover(ctx context.Context, approverID string) ([]LeaveRequest, error)
	FindOverdue(ctx context.Context, now time.Time, limit int) ([]LeaveRequest, error)
	HasOverlapping(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error)
	Finalize(ctx context.Context, id, status string, decidedBy *string, escalated bool, at time.Time) (int64, error)
	CancelPending(ctx context.Context, id string, at time.Time) (int64, error)
	MarkEscalated(ctx context.Context, id, approverID string, newDeadline, at time.Time) (int64, error)
	CreateEscalationEvent(ctx context.Context, e *EscalationEvent) error
	FindEscalationEvents(ctx context.Context, requestID string) ([]EscalationEvent, error)
}

type repository struct {
	gorm *gorm.DB
	db   *sql.DB
	tx   *sql.Tx
}

func NewRepository(gormDB *gorm.DB, db *sql.DB) Repository {
	return &repository{gorm: gormDB, db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{gorm: r.gorm, db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, req *LeaveRequest) error {
	query := `
INSERT INTO leave_requests (
	id, employee_id, leave_type_id, start_date, end_date, days, justification,
	status, current_approver_id, is_escalated, escalation_deadline, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
`
	_, err := r.execer().ExecContext(ctx, query,
		req.ID, req.EmployeeID, req.LeaveTypeID, req.StartDate, req.EndDate,
		req.Days, req.Justification, req.Status, req.CurrentApproverID,
		req.IsEscalated, req.EscalationDeadline,
	)
	return err
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var req LeaveRequest
	err := r.gorm.WithContext(ctx).First(&req, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.gorm.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("start_date DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindPendingByApprover(ctx context.Context, approverID string) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.gorm.WithContext(ctx).
		Where("current_approver_id = ?", approverID).
		Where("status = ?", StatusPending).
		Order("escalation_deadline ASC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindOverdue(ctx context.Context, now time.Time, limit int) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.gorm.WithContext(ctx).
		Where("status = ?", StatusPending).
		Where("escalation_deadline <= ?", now).
		Order("escalation_deadline ASC").
		Limit(limit).
		Find(&requests).Error
	return requests, err
}

// HasOverlapping checks the employee's own PENDING and APPROVED
// requests for an inclusive date intersection.
func (r *repository) HasOverlapping(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error) {
	var count int64
	err := r.gorm.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("employee_id = ?", employeeID).
		Where("status IN ?", []string{StatusPending, StatusApproved}).
		Where("NOT (end_date < ? OR start_date > ?)", startDate, endDate).
		Count(&count).Error
	return count > 0, err
}

// Finalize moves a PENDING request into a terminal status in one
// guarded statement. The is_escalated predicate pins the authority
// snapshot the caller resolved the approver from: a request escalated
// away between the caller's read and this update matches nothing even
// though it is still PENDING. Zero affected rows therefore means
// either a lost decision race or a reroute; the caller re-reads the
// row to tell the two apart.
func (r *repository) Finalize(ctx context.Context, id, status string, decidedBy *string, escalated bool, at time.Time) (int64, error) {
	query := `
UPDATE leave_requests
SET status = $2, decided_by = $3, decided_at = $4, updated_at = NOW()
WHERE id = $1 AND status = $5 AND is_escalated = $6
`
	res, err := r.execer().ExecContext(ctx, query, id, status, decidedBy, at, StatusPending, escalated)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// CancelPending flips a PENDING request to CANCELLED. Escalation does
// not revoke the employee's right to withdraw their own request, so
// unlike Finalize the guard checks status only.
func (r *repository) CancelPending(ctx context.Context, id string, at time.Time) (int64, error) {
	query := `
UPDATE leave_requests
SET status = $2, decided_at = $3, updated_at = NOW()
WHERE id = $1 AND status = $4
`
	res, err := r.execer().ExecContext(ctx, query, id, StatusCancelled, at, StatusPending)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// MarkEscalated reroutes an overdue PENDING request. The deadline guard
// makes the operation idempotent under at-least-once scheduling: a
// second tick for the same overdue state finds the deadline already
// advanced and matches nothing.
func (r *repository) MarkEscalated(ctx context.Context, id, approverID string, newDeadline, at time.Time) (int64, error) {
	query := `
UPDATE leave_requests
SET is_escalated = TRUE, current_approver_id = $2, escalation_deadline = $3, updated_at = NOW()
WHERE id = $1 AND status = $4 AND escalation_deadline <= $5
`
	res, err := r.execer().ExecContext(ctx, query, id, approverID, newDeadline, StatusPending, at)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *repository) CreateEscalationEvent(ctx context.Context, e *EscalationEvent) error {
	query := `
INSERT INTO escalation_events (id, request_id, from_approver_id, to_approver_id, reason, occurred_at)
VALUES ($1, $2, $3, $4, $5, $6)
`
	_, err := r.execer().ExecContext(ctx, query,
		e.ID, e.RequestID, e.FromApproverID, e.ToApproverID, e.Reason, e.OccurredAt,
	)
	return err
}

func (r *repository) FindEscalationEvents(ctx context.Context, requestID string) ([]EscalationEvent, error) {
	var events []EscalationEvent
	err := r.gorm.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("occurred_at ASC").
		Find(&events).Error
	return events, err
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}
