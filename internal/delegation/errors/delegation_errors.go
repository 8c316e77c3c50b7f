package delegationerrors

import (
	"net/http"

	"github.com/MunaSchool/HR-Management-System-sub005/internal/shared/apperror"
)

var (
	ErrInvalidManagerID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid manager id",
		http.StatusBadRequest,
	)
	ErrInvalidDelegateID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid delegate id",
		http.StatusBadRequest,
	)
	ErrSelfDelegation = apperror.New(
		apperror.CodeInvalidInput,
		"manager cannot delegate to themselves",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"active_from must be before or equal active_to",
		http.StatusBadRequest,
	)
	ErrOverlappingDelegation = apperror.New(
		apperror.CodeConflict,
		"an active delegation already covers part of this period",
		http.StatusConflict,
	)
	ErrDelegationNotFound = apperror.New(
		apperror.CodeNotFound,
		"delegation not found",
		http.StatusNotFound,
	)
)
