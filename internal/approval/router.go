package approval

import (
	"context"
	"net/http"
	"time"

	"github.com/MunaSchool/HR-Management-System-sub005/internal/delegation"
	"github.com/MunaSchool/HR-Management-System-sub005/internal/directory"
	"github.com/MunaSchool/HR-Management-System-sub005/internal/shared/apperror"
)

var ErrNoApprover = apperror.New(
	apperror.CodeInvalidState,
	"no approver could be resolved for this employee",
	http.StatusConflict,
)

// Router resolves who currently holds decision authority over a
// request. Authority is never stored as a snapshot; it is recomputed
// from the directory and the delegation table each time it matters, so
// a delegation or escalation that happens after a request was created
// is reflected on the very next routing call.
type Router struct {
	directory   directory.Directory
	delegations delegation.Service
}

func NewRouter(dir directory.Directory, delegations delegation.Service) *Router {
	return &Router{directory: dir, delegations: delegations}
}

// ResolveApprover returns the single employee authorized to decide a
// request for the given employee at the given instant.
//
// The resolution order is fixed:
//  1. the employee's direct manager,
//  2. the manager's active delegate, if any,
//  3. on escalation, the manager's own manager, bypassing any delegate
//     so an unresponsive delegate cannot stall the request a second
//     time.
//
// Given the same directory state, delegation state and timestamp the
// result is deterministic, which is what makes rerunning the
// escalation scheduler harmless.
func (r *Router) ResolveApprover(ctx context.Context, employeeID string, escalated bool, at time.Time) (string, error) {
	managerID, err := r.directory.ManagerOf(ctx, employeeID)
	if err != nil {
		return "", err
	}
	if managerID == "" {
		return "", ErrNoApprover
	}

	if escalated {
		skipLevel, err := r.directory.ManagerOf(ctx, managerID)
		if err != nil {
			return "", err
		}
		if skipLevel != "" {
			return skipLevel, nil
		}
		// Top of the chain: there is nobody above the manager, so
		// authority stays with them and only the deadline moves.
		return managerID, nil
	}

	delegateID, err := r.delegations.ActiveDelegateOf(ctx, managerID, at)
	if err != nil {
		return "", err
	}
	if delegateID != "" {
		return delegateID, nil
	}

	return managerID, nil
}
