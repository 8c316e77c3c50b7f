package delegation

import (
	"context"
	"time"

	delegationerrors "github.com/MunaSchool/HR-Management-System-sub005/internal/delegation/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=delegation_service.go -destination=mock/delegation_service_mock.go -package=mock
type Service interface {
	SetDelegation(ctx context.Context, managerID string, req CreateDelegationRequest) (DelegationResponse, error)
	GetByManager(ctx context.Context, managerID string) ([]DelegationResponse, error)
	Remove(ctx context.Context, managerID, id string) error

	// ActiveDelegateOf returns the delegate holding the manager's
	// authority at the given instant, or "" when there is none. Pure
	// lookup, safe for unlimited concurrent reads.
	ActiveDelegateOf(ctx context.Context, managerID string, at time.Time) (string, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("delegation.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("delegation.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) SetDelegation(ctx context.Context, managerID string, req CreateDelegationRequest) (DelegationResponse, error) {
	s.logger.Debug("set delegation requested",
		zap.String("manager_id", managerID),
		zap.String("delegate_id", req.DelegateID),
	)

	managerUUID, err := uuid.Parse(managerID)
	if err != nil {
		return DelegationResponse{}, delegationerrors.ErrInvalidManagerID
	}
	delegateUUID, err := uuid.Parse(req.DelegateID)
	if err != nil {
		return DelegationResponse{}, delegationerrors.ErrInvalidDelegateID
	}
	if managerUUID == delegateUUID {
		return DelegationResponse{}, delegationerrors.ErrSelfDelegation
	}

	from, err := parseDate(req.ActiveFrom)
	if err != nil {
		return DelegationResponse{}, err
	}
	to, err := parseDate(req.ActiveTo)
	if err != nil {
		return DelegationResponse{}, err
	}
	if from.After(to) {
		return DelegationResponse{}, delegationerrors.ErrInvalidDateRange
	}

	overlap, err := s.repo.HasOverlapping(ctx, managerID, from, to)
	if err != nil {
		s.logger.Error("delegation overlap check failed", zap.Error(err))
		return DelegationResponse{}, err
	}
	if overlap {
		s.logger.Warn("delegation overlap detected",
			zap.String("manager_id", managerID),
			zap.String("active_from", req.ActiveFrom),
			zap.String("active_to", req.ActiveTo),
		)
		return DelegationResponse{}, delegationerrors.ErrOverlappingDelegation
	}

	d := &Delegation{
		ID:         uuid.New(),
		ManagerID:  managerUUID,
		DelegateID: delegateUUID,
		ActiveFrom: from,
		ActiveTo:   to,
	}

	if err := s.repo.Create(ctx, d); err != nil {
		s.logger.Error("create delegation persist failed", zap.Error(err))
		return DelegationResponse{}, err
	}

	s.logger.Info("delegation created",
		zap.String("delegation_id", d.ID.String()),
		zap.String("manager_id", managerID),
		zap.String("delegate_id", req.DelegateID),
	)
	return mapToResponse(*d), nil
}

func (s *service) GetByManager(ctx context.Context, managerID string) ([]DelegationResponse, error) {
	delegations, err := s.repo.FindByManager(ctx, managerID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(delegations), nil
}

func (s *service) Remove(ctx context.Context, managerID, id string) error {
	return s.repo.Delete(ctx, managerID, id)
}

func (s *service) ActiveDelegateOf(ctx context.Context, managerID string, at time.Time) (string, error) {
	// Delegations are day-granular: active_from and active_to are date
	// columns that compare at midnight. Truncating the wall-clock
	// instant keeps the window inclusive through the whole final day.
	at = at.UTC()
	day := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)
	d, err := s.repo.FindActive(ctx, managerID, day)
	if err != nil {
		return "", err
	}
	if d == nil {
		return "", nil
	}
	return d.DelegateID.String(), nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, delegationerrors.ErrInvalidDateFormat
	}
	return t, nil
}
