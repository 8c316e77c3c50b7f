package balance

import (
	"context"
	"database/sql"
	"errors"

	balanceerrors "github.com/MunaSchool/HR-Management-System-sub005/internal/balance/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

//go:generate mockgen -source=balance_repo.go -destination=mock/balance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	EnsureBalance(ctx context.Context, employeeID, leaveTypeID string, year, entitlement int) error
	Reserve(ctx context.Context, r *Reservation) error
	CommitReservation(ctx context.Context, reservationID string) (*Reservation, error)
	ReleaseReservation(ctx context.Context, reservationID string) (*Reservation, error)
	GetBalance(ctx context.Context, employeeID, leaveTypeID string, year int) (*LeaveBalance, error)
	FindBalancesByEmployee(ctx context.Context, employeeID string, year int) ([]LeaveBalance, error)
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

func (r *repository) EnsureBalance(ctx context.Context, employeeID, leaveTypeID string, year, entitlement int) error {
	query := `
INSERT INTO leave_balances (employee_id, leave_type_id, year, entitlement, taken, pending, created_at, updated_at)
VALUES ($1, $2, $3, $4, 0, 0, NOW(), NOW())
ON CONFLICT (employee_id, leave_type_id, year) DO NOTHING
`
	_, err := r.execer().ExecContext(ctx, query, employeeID, leaveTypeID, year, entitlement)
	return err
}

// Reserve places the hold in one guarded statement. The balance check
// and the pending increment happen in the same UPDATE, so two
// concurrent reservations can never both observe sufficient remaining
// balance: the row lock serializes them and the loser matches zero rows.
func (r *repository) Reserve(ctx context.Context, resv *Reservation) error {
	exec := r.execer()

	query := `
UPDATE leave_balances
SET pending = pending + $4, updated_at = NOW()
WHERE employee_id = $1 AND leave_type_id = $2 AND year = $3
	AND entitlement - taken - pending >= $4
`
	res, err := exec.ExecContext(ctx, query, resv.EmployeeID, resv.LeaveTypeID, resv.Year, resv.Days)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return balanceerrors.ErrInsufficientBalance
	}

	insert := `
INSERT INTO reservations (id, employee_id, leave_type_id, year, days, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
`
	_, err = exec.ExecContext(ctx, insert,
		resv.ID, resv.EmployeeID, resv.LeaveTypeID, resv.Year, resv.Days, ReservationReserved,
	)
	if isUniqueViolation(err) {
		// A reservation with this request id already exists, so the
		// request itself is a duplicate submission.
		return balanceerrors.ErrReservationConflict
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *repository) CommitReservation(ctx context.Context, reservationID string) (*Reservation, error) {
	return r.settle(ctx, reservationID, ReservationCommitted)
}

func (r *repository) ReleaseReservation(ctx context.Context, reservationID string) (*Reservation, error) {
	return r.settle(ctx, reservationID, ReservationReleased)
}

// settle flips a RESERVED reservation to its terminal status and applies
// the paired balance movement. Re-settling to the same status affects
// zero rows and is a no-op, which is what makes commit and release safe
// to call from retry paths.
func (r *repository) settle(ctx context.Context, reservationID, target string) (*Reservation, error) {
	exec := r.execer()

	flip := `
UPDATE reservations
SET status = $2, updated_at = NOW()
WHERE id = $1 AND status = $3
RETURNING employee_id::text, leave_type_id, year, days
`
	var (
		employeeID  string
		leaveTypeID string
		year        int
		days        int
	)
	err := exec.QueryRowContext(ctx, flip, reservationID, target, ReservationReserved).
		Scan(&employeeID, &leaveTypeID, &year, &days)
	if errors.Is(err, sql.ErrNoRows) {
		return r.settledNoop(ctx, reservationID, target)
	}
	if err != nil {
		return nil, err
	}

	var apply string
	if target == ReservationCommitted {
		apply = `
UPDATE leave_balances
SET taken = taken + $4, pending = pending - $4, updated_at = NOW()
WHERE employee_id = $1 AND leave_type_id = $2 AND year = $3
`
	} else {
		apply = `
UPDATE leave_balances
SET pending = pending - $4, updated_at = NOW()
WHERE employee_id = $1 AND leave_type_id = $2 AND year = $3
`
	}
	if _, err := exec.ExecContext(ctx, apply, employeeID, leaveTypeID, year, days); err != nil {
		return nil, err
	}

	resv, err := r.findReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	return resv, nil
}

// settledNoop classifies a flip that matched no rows: already settled
// the same way is fine, settled the other way or missing is not.
func (r *repository) settledNoop(ctx context.Context, reservationID, target string) (*Reservation, error) {
	resv, err := r.findReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if resv.Status != target {
		return nil, balanceerrors.ErrReservationConflict
	}
	return resv, nil
}

func (r *repository) findReservation(ctx context.Context, reservationID string) (*Reservation, error) {
	query := `
SELECT id::text, employee_id::text, leave_type_id, year, days, status, created_at, updated_at
FROM reservations
WHERE id = $1
`
	var resv Reservation
	err := r.execer().QueryRowContext(ctx, query, reservationID).Scan(
		&resv.ID, &resv.EmployeeID, &resv.LeaveTypeID, &resv.Year,
		&resv.Days, &resv.Status, &resv.CreatedAt, &resv.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, balanceerrors.ErrReservationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &resv, nil
}

func (r *repository) GetBalance(ctx context.Context, employeeID, leaveTypeID string, year int) (*LeaveBalance, error) {
	var b LeaveBalance
	err := r.gorm.WithContext(ctx).
		Where("employee_id = ? AND leave_type_id = ? AND year = ?", employeeID, leaveTypeID, year).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) FindBalancesByEmployee(ctx context.Context, employeeID string, year int) ([]LeaveBalance, error) {
	var balances []LeaveBalance
	err := r.gorm.WithContext(ctx).
		Where("employee_id = ? AND year = ?", employeeID, year).
		Order("leave_type_id ASC").
		Find(&balances).Error
	return balances, err
}

type queryExecer interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

func (r *repository) execer() queryExecer {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}
