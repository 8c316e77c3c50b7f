package calendar

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/MunaSchool/HR-Management-System-sub005/internal/directory"
	"github.com/MunaSchool/HR-Management-System-sub005/internal/leaverequest"
	"github.com/MunaSchool/HR-Management-System-sub005/internal/shared/apperror"
)

var ErrInvalidMonth = apperror.New(
	apperror.CodeInvalidInput,
	"invalid month, expected YYYY-MM",
	http.StatusBadRequest,
)

//go:generate mockgen -source=calendar_service.go -destination=mock/calendar_service_mock.go -package=mock
type Service interface {
	OnLeaveToday(ctx context.Context, managerID string, today time.Time) ([]TeamAbsence, error)
	Calendar(ctx context.Context, managerID, month string) (CalendarResponse, error)
}

// service aggregates approved leave into a manager's team view. It
// only ever reads; nothing here can change a request or a balance.
type service struct {
	repo      Repository
	directory directory.Directory
	group     singleflight.Group
	logger    *zap.Logger
}

func NewService(repo Repository, dir directory.Directory, logger ...*zap.Logger) Service {
	l := zap.L().Named("calendar.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("calendar.service")
	}
	return &service{repo: repo, directory: dir, logger: l}
}

func (s *service) OnLeaveToday(ctx context.Context, managerID string, today time.Time) ([]TeamAbsence, error) {
	day := truncateToDay(today)
	absences, err := s.absencesInWindow(ctx, managerID, day, day)
	if err != nil {
		return nil, err
	}
	return absences, nil
}

// Calendar builds the per-day view of one month. Concurrent requests
// for the same manager and month share a single aggregation via
// singleflight; team calendars are a dashboard hot path and the
// underlying query fans out over every direct report.
func (s *service) Calendar(ctx context.Context, managerID, month string) (CalendarResponse, error) {
	first, err := time.Parse("2006-01", month)
	if err != nil {
		return CalendarResponse{}, ErrInvalidMonth
	}
	last := first.AddDate(0, 1, -1)

	key := managerID + ":" + month
	v, err, _ := s.group.Do(key, func() (any, error) {
		absences, err := s.absencesInWindow(ctx, managerID, first, last)
		if err != nil {
			return nil, err
		}
		return buildMonth(month, first, last, absences), nil
	})
	if err != nil {
		return CalendarResponse{}, err
	}
	return v.(CalendarResponse), nil
}

func (s *service) absencesInWindow(ctx context.Context, managerID string, from, to time.Time) ([]TeamAbsence, error) {
	reports, err := s.directory.ReportsOf(ctx, managerID)
	if err != nil {
		return nil, fmt.Errorf("listing direct reports: %w", err)
	}

	requests, err := s.repo.FindApprovedInWindow(ctx, reports, from, to)
	if err != nil {
		return nil, fmt.Errorf("loading approved leave: %w", err)
	}

	absences := make([]TeamAbsence, len(requests))
	for i, r := range requests {
		absences[i] = mapAbsence(r)
	}
	return absences, nil
}

func buildMonth(month string, first, last time.Time, absences []TeamAbsence) CalendarResponse {
	resp := CalendarResponse{Month: month}
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		date := day.Format("2006-01-02")
		entry := CalendarDay{Date: date, OnLeave: []TeamAbsence{}}
		for _, a := range absences {
			if a.StartDate <= date && date <= a.EndDate {
				entry.OnLeave = append(entry.OnLeave, a)
			}
		}
		entry.Absences = len(entry.OnLeave)
		resp.Days = append(resp.Days, entry)
	}
	return resp
}

func mapAbsence(r leaverequest.LeaveRequest) TeamAbsence {
	return TeamAbsence{
		EmployeeID:  r.EmployeeID.String(),
		LeaveTypeID: r.LeaveTypeID,
		StartDate:   r.StartDate.Format("2006-01-02"),
		EndDate:     r.EndDate.Format("2006-01-02"),
		Days:        r.Days,
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
