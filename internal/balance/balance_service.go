package balance

import (
	"context"
	"errors"
	"time"

	balanceerrors "github.com/MunaSchool/HR-Management-System-sub005/internal/balance/errors"
	"github.com/MunaSchool/HR-Management-System-sub005/internal/policy"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service exposes read access to the ledger. All mutation goes through
// the leave request state machine, which drives the repository's
// reserve/commit/release operations inside its own transactions.
//
//go:generate mockgen -source=balance_service.go -destination=mock/balance_service_mock.go -package=mock
type Service interface {
	GetMyBalances(ctx context.Context, employeeID string) ([]BalanceResponse, error)
	GetBalance(ctx context.Context, employeeID, leaveTypeID string, year int) (BalanceResponse, error)
}

type service struct {
	repo   Repository
	cfg    policy.Config
	logger *zap.Logger
}

func NewService(repo Repository, cfg policy.Config, logger ...*zap.Logger) Service {
	l := zap.L().Named("balance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.service")
	}
	return &service{repo: repo, cfg: cfg, logger: l}
}

func (s *service) GetMyBalances(ctx context.Context, employeeID string) ([]BalanceResponse, error) {
	year := time.Now().UTC().Year()
	balances, err := s.repo.FindBalancesByEmployee(ctx, employeeID, year)
	if err != nil {
		s.logger.Error("list balances failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return nil, err
	}
	return mapToListResponse(balances), nil
}

func (s *service) GetBalance(ctx context.Context, employeeID, leaveTypeID string, year int) (BalanceResponse, error) {
	if _, ok := s.cfg.ForType(leaveTypeID); !ok {
		return BalanceResponse{}, balanceerrors.ErrUnknownLeaveType
	}

	b, err := s.repo.GetBalance(ctx, employeeID, leaveTypeID, year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BalanceResponse{}, balanceerrors.ErrBalanceNotFound
		}
		return BalanceResponse{}, err
	}
	return mapToResponse(*b), nil
}
