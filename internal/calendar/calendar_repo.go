package calendar

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/MunaSchool/HR-Management-System-sub005/internal/leaverequest"
)

//go:generate mockgen -source=calendar_repo.go -destination=mock/calendar_repo_mock.go -package=mock
type Repository interface {
	FindApprovedInWindow(ctx context.Context, employeeIDs []string, from, to time.Time) ([]leaverequest.LeaveRequest, error)
}

type repository struct {
	gorm *gorm.DB
}

func NewRepository(gormDB *gorm.DB) Repository {
	return &repository{gorm: gormDB}
}

// FindApprovedInWindow returns the approved requests of the given
// employees whose date range intersects [from, to], both ends
// inclusive.
func (r *repository) FindApprovedInWindow(ctx context.Context, employeeIDs []string, from, to time.Time) ([]leaverequest.LeaveRequest, error) {
	if len(employeeIDs) == 0 {
		return nil, nil
	}
	var requests []leaverequest.LeaveRequest
	err := r.gorm.WithContext(ctx).
		Where("employee_id IN ?", employeeIDs).
		Where("status = ?", leaverequest.StatusApproved).
		Where("NOT (end_date < ? OR start_date > ?)", from, to).
		Order("start_date ASC").
		Find(&requests).Error
	return requests, err
}
