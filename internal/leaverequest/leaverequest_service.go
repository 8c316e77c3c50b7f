package leaverequest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MunaSchool/HR-Management-System-sub005/internal/approval"
	"github.com/MunaSchool/HR-Management-System-sub005/internal/balance"
	"github.com/MunaSchool/HR-Management-System-sub005/internal/events"
	requesterrors "github.com/MunaSchool/HR-Management-System-sub005/internal/leaverequest/errors"
	"github.com/MunaSchool/HR-Management-System-sub005/internal/notification"
	"github.com/MunaSchool/HR-Management-System-sub005/internal/policy"
)

const overdueBatchSize = 100

//go:generate mockgen -source=leaverequest_service.go -destination=mock/leaverequest_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, employeeID string, req SubmitLeaveRequest) (LeaveRequestResponse, error)
	GetByID(ctx context.Context, actorID, id string) (LeaveRequestResponse, error)
	GetAllByEmployee(ctx context.Context, employeeID string) ([]LeaveRequestResponse, error)
	PendingForApprover(ctx context.Context, approverID string) ([]LeaveRequestResponse, error)
	Decide(ctx context.Context, actorID, id, decision, reason string) (LeaveRequestResponse, error)
	Cancel(ctx context.Context, actorID, id string) (LeaveRequestResponse, error)
	Escalate(ctx context.Context, id string, now time.Time) (bool, error)
	EscalateOverdue(ctx context.Context, now time.Time) (int, error)
	EscalationHistory(ctx context.Context, actorID, id string) ([]EscalationEventResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	balances balance.Repository
	router   *approval.Router
	notifier notification.Notifier
	policy   policy.Config
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	balances balance.Repository,
	router *approval.Router,
	notifier notification.Notifier,
	cfg policy.Config,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leaverequest.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leaverequest.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		balances: balances,
		router:   router,
		notifier: notifier,
		policy:   cfg,
		logger:   l,
	}
}

// Submit validates the request, reserves the balance and creates the
// PENDING request in one transaction. The reservation carries the
// request's own id, so every later settle call can find its hold
// without a join.
func (s *service) Submit(ctx context.Context, employeeID string, req SubmitLeaveRequest) (LeaveRequestResponse, error) {
	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return LeaveRequestResponse{}, requesterrors.ErrInvalidEmployeeID
	}

	pol, ok := s.policy.ForType(req.LeaveTypeID)
	if !ok {
		return LeaveRequestResponse{}, requesterrors.ErrUnknownLeaveType
	}

	startDate, endDate, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	days := policy.RequestedDays(startDate, endDate, pol.DayCount)
	if days == 0 {
		return LeaveRequestResponse{}, requesterrors.ErrEmptyRange
	}

	overlapping, err := s.repo.HasOverlapping(ctx, employeeID, startDate, endDate)
	if err != nil {
		return LeaveRequestResponse{}, fmt.Errorf("checking overlapping requests: %w", err)
	}
	if overlapping {
		return LeaveRequestResponse{}, requesterrors.ErrOverlappingRequest
	}

	now := time.Now().UTC()
	approverID, err := s.router.ResolveApprover(ctx, employeeID, false, now)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	appID, err := uuid.Parse(approverID)
	if err != nil {
		return LeaveRequestResponse{}, fmt.Errorf("resolved approver %q is not a valid id: %w", approverID, err)
	}

	request := &LeaveRequest{
		ID:                 uuid.New(),
		EmployeeID:         empID,
		LeaveTypeID:        req.LeaveTypeID,
		StartDate:          startDate,
		EndDate:            endDate,
		Days:               days,
		Justification:      req.Justification,
		Status:             StatusPending,
		CurrentApproverID:  appID,
		IsEscalated:        false,
		EscalationDeadline: now.Add(s.policy.SLA),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveRequestResponse{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	year := policy.YearOf(startDate)
	txBalances := s.balances.WithTx(tx)
	if err := txBalances.EnsureBalance(ctx, employeeID, req.LeaveTypeID, year, pol.EntitlementDays); err != nil {
		return LeaveRequestResponse{}, fmt.Errorf("ensuring balance row: %w", err)
	}
	if err := txBalances.Reserve(ctx, &balance.Reservation{
		ID:          request.ID,
		EmployeeID:  empID,
		LeaveTypeID: req.LeaveTypeID,
		Year:        year,
		Days:        days,
		Status:      balance.ReservationReserved,
	}); err != nil {
		return LeaveRequestResponse{}, err
	}

	if err := s.repo.WithTx(tx).Create(ctx, request); err != nil {
		return LeaveRequestResponse{}, fmt.Errorf("creating leave request: %w", err)
	}

	s.notifier.WithTx(tx).Notify(ctx, notification.Notification{
		RecipientID: approverID,
		EventType:   events.NotifyApprovalRequested,
		RequestID:   request.ID.String(),
		EmployeeID:  employeeID,
		LeaveTypeID: req.LeaveTypeID,
		Message:     fmt.Sprintf("%s leave request for %d day(s) awaits your decision", s.policy.TypeName(req.LeaveTypeID), days),
	})

	if err := tx.Commit(); err != nil {
		return LeaveRequestResponse{}, fmt.Errorf("committing submission: %w", err)
	}

	s.logger.Info("leave request submitted",
		zap.String("request_id", request.ID.String()),
		zap.String("employee_id", employeeID),
		zap.String("leave_type", req.LeaveTypeID),
		zap.Int("days", days),
		zap.String("approver_id", approverID),
	)

	request.CreatedAt = now
	return mapToResponse(*request), nil
}

func (s *service) GetByID(ctx context.Context, actorID, id string) (LeaveRequestResponse, error) {
	request, err := s.findRequest(ctx, id)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if actorID != request.EmployeeID.String() && actorID != request.CurrentApproverID.String() {
		return LeaveRequestResponse{}, requesterrors.ErrNotAuthorized
	}
	return mapToResponse(*request), nil
}

func (s *service) GetAllByEmployee(ctx context.Context, employeeID string) ([]LeaveRequestResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, requesterrors.ErrInvalidEmployeeID
	}
	requests, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("listing leave requests: %w", err)
	}
	return mapToListResponse(requests), nil
}

func (s *service) PendingForApprover(ctx context.Context, approverID string) ([]LeaveRequestResponse, error) {
	if _, err := uuid.Parse(approverID); err != nil {
		return nil, requesterrors.ErrInvalidActorID
	}
	requests, err := s.repo.FindPendingByApprover(ctx, approverID)
	if err != nil {
		return nil, fmt.Errorf("listing pending approvals: %w", err)
	}
	return mapToListResponse(requests), nil
}

// Decide applies an APPROVE or REJECT decision. Authority is recomputed
// at decision time, never read from the stored approver snapshot: if
// the request was escalated away from the actor between their page load
// and their click, they get ErrNotAuthorized, not a silent success.
//
// The status flip itself is a guarded single-statement update pinned
// to the escalation snapshot the authority check ran against. Losing
// the race to another decider (or to a concurrent cancel) surfaces as
// ErrAlreadyDecided; an escalation committed between the read and the
// update surfaces as ErrNotAuthorized.
func (s *service) Decide(ctx context.Context, actorID, id, decision, reason string) (LeaveRequestResponse, error) {
	if _, err := uuid.Parse(actorID); err != nil {
		return LeaveRequestResponse{}, requesterrors.ErrInvalidActorID
	}
	var target string
	switch decision {
	case DecisionApprove:
		target = StatusApproved
	case DecisionReject:
		target = StatusRejected
	default:
		return LeaveRequestResponse{}, requesterrors.ErrInvalidDecision
	}

	request, err := s.findRequest(ctx, id)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if request.Status != StatusPending {
		return LeaveRequestResponse{}, requesterrors.ErrAlreadyDecided
	}

	now := time.Now().UTC()
	approverID, err := s.router.ResolveApprover(ctx, request.EmployeeID.String(), request.IsEscalated, now)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if actorID != approverID {
		return LeaveRequestResponse{}, requesterrors.ErrNotAuthorized
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveRequestResponse{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	affected, err := s.repo.WithTx(tx).Finalize(ctx, id, target, &actorID, request.IsEscalated, now)
	if err != nil {
		return LeaveRequestResponse{}, fmt.Errorf("finalizing request: %w", err)
	}
	if affected == 0 {
		return LeaveRequestResponse{}, s.classifyLostDecision(ctx, id)
	}

	txBalances := s.balances.WithTx(tx)
	if target == StatusApproved {
		_, err = txBalances.CommitReservation(ctx, id)
	} else {
		_, err = txBalances.ReleaseReservation(ctx, id)
	}
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	eventType := events.NotifyRequestApproved
	message := fmt.Sprintf("your %s leave request was approved", s.policy.TypeName(request.LeaveTypeID))
	if target == StatusRejected {
		eventType = events.NotifyRequestRejected
		message = fmt.Sprintf("your %s leave request was rejected: %s", s.policy.TypeName(request.LeaveTypeID), reason)
	}
	s.notifier.WithTx(tx).Notify(ctx, notification.Notification{
		RecipientID: request.EmployeeID.String(),
		EventType:   eventType,
		RequestID:   id,
		EmployeeID:  request.EmployeeID.String(),
		LeaveTypeID: request.LeaveTypeID,
		Message:     message,
	})

	if err := tx.Commit(); err != nil {
		return LeaveRequestResponse{}, fmt.Errorf("committing decision: %w", err)
	}

	s.logger.Info("leave request decided",
		zap.String("request_id", id),
		zap.String("decided_by", actorID),
		zap.String("status", target),
	)

	actor := uuid.MustParse(actorID)
	request.Status = target
	request.DecidedBy = &actor
	request.DecidedAt = &now
	return mapToResponse(*request), nil
}

// Cancel withdraws the owner's own PENDING request and releases its
// hold. Decided requests stay decided; cancellation after approval is a
// separate HR workflow this service does not model.
func (s *service) Cancel(ctx context.Context, actorID, id string) (LeaveRequestResponse, error) {
	if _, err := uuid.Parse(actorID); err != nil {
		return LeaveRequestResponse{}, requesterrors.ErrInvalidActorID
	}

	request, err := s.findRequest(ctx, id)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if actorID != request.EmployeeID.String() {
		return LeaveRequestResponse{}, requesterrors.ErrNotOwner
	}
	if request.Status != StatusPending {
		return LeaveRequestResponse{}, requesterrors.ErrAlreadyDecided
	}

	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveRequestResponse{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	affected, err := s.repo.WithTx(tx).CancelPending(ctx, id, now)
	if err != nil {
		return LeaveRequestResponse{}, fmt.Errorf("cancelling request: %w", err)
	}
	if affected == 0 {
		return LeaveRequestResponse{}, requesterrors.ErrAlreadyDecided
	}

	if _, err := s.balances.WithTx(tx).ReleaseReservation(ctx, id); err != nil {
		return LeaveRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return LeaveRequestResponse{}, fmt.Errorf("committing cancellation: %w", err)
	}

	s.logger.Info("leave request cancelled",
		zap.String("request_id", id),
		zap.String("employee_id", actorID),
	)

	request.Status = StatusCancelled
	request.DecidedAt = &now
	return mapToResponse(*request), nil
}

// Escalate reroutes a single overdue request to the skip-level manager.
// It reports whether this call performed the escalation; false is not
// an error, it just means the request was no longer overdue and
// PENDING, which is the normal outcome of a redelivered tick.
func (s *service) Escalate(ctx context.Context, id string, now time.Time) (bool, error) {
	request, err := s.findRequest(ctx, id)
	if err != nil {
		return false, err
	}
	if request.Status != StatusPending || request.EscalationDeadline.After(now) {
		return false, nil
	}

	newApproverID, err := s.router.ResolveApprover(ctx, request.EmployeeID.String(), true, now)
	if err != nil {
		return false, err
	}
	newApprover, err := uuid.Parse(newApproverID)
	if err != nil {
		return false, fmt.Errorf("resolved approver %q is not a valid id: %w", newApproverID, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	txRepo := s.repo.WithTx(tx)
	affected, err := txRepo.MarkEscalated(ctx, id, newApproverID, now.Add(s.policy.SLA), now)
	if err != nil {
		return false, fmt.Errorf("marking request escalated: %w", err)
	}
	if affected == 0 {
		// Decided or already escalated by a concurrent tick.
		return false, nil
	}

	if err := txRepo.CreateEscalationEvent(ctx, &EscalationEvent{
		ID:             uuid.New(),
		RequestID:      request.ID,
		FromApproverID: request.CurrentApproverID,
		ToApproverID:   newApprover,
		Reason:         EscalationReasonDeadline,
		OccurredAt:     now,
	}); err != nil {
		return false, fmt.Errorf("recording escalation event: %w", err)
	}

	s.notifier.WithTx(tx).Notify(ctx, notification.Notification{
		RecipientID: newApproverID,
		EventType:   events.NotifyRequestEscalated,
		RequestID:   id,
		EmployeeID:  request.EmployeeID.String(),
		LeaveTypeID: request.LeaveTypeID,
		Message:     fmt.Sprintf("an overdue %s leave request was escalated to you", s.policy.TypeName(request.LeaveTypeID)),
	})

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing escalation: %w", err)
	}

	s.logger.Info("leave request escalated",
		zap.String("request_id", id),
		zap.String("from_approver_id", request.CurrentApproverID.String()),
		zap.String("to_approver_id", newApproverID),
	)
	return true, nil
}

// EscalateOverdue sweeps every PENDING request whose deadline has
// passed. A failure on one request is logged and skipped so a single
// broken reporting chain cannot stall the rest of the batch.
func (s *service) EscalateOverdue(ctx context.Context, now time.Time) (int, error) {
	overdue, err := s.repo.FindOverdue(ctx, now, overdueBatchSize)
	if err != nil {
		return 0, fmt.Errorf("listing overdue requests: %w", err)
	}

	escalated := 0
	for _, request := range overdue {
		done, err := s.Escalate(ctx, request.ID.String(), now)
		if err != nil {
			s.logger.Error("escalation failed, skipping request",
				zap.String("request_id", request.ID.String()),
				zap.Error(err),
			)
			continue
		}
		if done {
			escalated++
		}
	}
	return escalated, nil
}

func (s *service) EscalationHistory(ctx context.Context, actorID, id string) ([]EscalationEventResponse, error) {
	request, err := s.findRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if actorID != request.EmployeeID.String() && actorID != request.CurrentApproverID.String() {
		return nil, requesterrors.ErrNotAuthorized
	}
	eventRows, err := s.repo.FindEscalationEvents(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listing escalation events: %w", err)
	}
	return mapToEventResponse(eventRows), nil
}

// classifyLostDecision tells apart the two ways a guarded decision
// update can match nothing: the request reached a terminal status
// first, or it was escalated away from the actor while still PENDING.
// The second case means the actor's authority snapshot went stale, so
// their decision is rejected the same way any other outsider's would
// be.
func (s *service) classifyLostDecision(ctx context.Context, id string) error {
	current, err := s.findRequest(ctx, id)
	if err == nil && current.Status == StatusPending {
		return requesterrors.ErrNotAuthorized
	}
	return requesterrors.ErrAlreadyDecided
}

func (s *service) findRequest(ctx context.Context, id string) (*LeaveRequest, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, requesterrors.ErrRequestNotFound
	}
	request, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, requesterrors.ErrRequestNotFound
		}
		return nil, fmt.Errorf("loading leave request: %w", err)
	}
	return request, nil
}

func parseRange(start, end string) (time.Time, time.Time, error) {
	startDate, err := time.Parse("2006-01-02", start)
	if err != nil {
		return time.Time{}, time.Time{}, requesterrors.ErrInvalidDateFormat
	}
	endDate, err := time.Parse("2006-01-02", end)
	if err != nil {
		return time.Time{}, time.Time{}, requesterrors.ErrInvalidDateFormat
	}
	if endDate.Before(startDate) {
		return time.Time{}, time.Time{}, requesterrors.ErrInvalidDateRange
	}
	return startDate, endDate, nil
}
