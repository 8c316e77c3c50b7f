package balanceerrors

import (
	"net/http"

	"github.com/MunaSchool/HR-Management-System-sub005/internal/shared/apperror"
)

var (
	ErrInsufficientBalance = apperror.New(
		apperror.CodeConflict,
		"insufficient leave balance for the requested period",
		http.StatusConflict,
	)
	ErrUnknownLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"unknown leave type",
		http.StatusBadRequest,
	)
	ErrBalanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave balance not found",
		http.StatusNotFound,
	)
	ErrReservationNotFound = apperror.New(
		apperror.CodeNotFound,
		"reservation not found",
		http.StatusNotFound,
	)
	ErrReservationConflict = apperror.New(
		apperror.CodeInvalidState,
		"reservation was already settled the other way",
		http.StatusConflict,
	)
)
