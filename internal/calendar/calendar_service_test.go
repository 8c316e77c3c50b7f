package calendar_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/MunaSchool/HR-Management-System-sub005/internal/calendar"
	"github.com/MunaSchool/HR-Management-System-sub005/internal/leaverequest"
)

type fakeCalendarRepository struct {
	findApprovedInWindowFn func(ctx context.Context, employeeIDs []string, from, to time.Time) ([]leaverequest.LeaveRequest, error)
}

func (f *fakeCalendarRepository) FindApprovedInWindow(ctx context.Context, employeeIDs []string, from, to time.Time) ([]leaverequest.LeaveRequest, error) {
	if f.findApprovedInWindowFn != nil {
		return f.findApprovedInWindowFn(ctx, employeeIDs, from, to)
	}
	return nil, nil
}

type fakeDirectory struct {
	reportsOfFn func(ctx context.Context, managerID string) ([]string, error)
}

func (f *fakeDirectory) ManagerOf(ctx context.Context, employeeID string) (string, error) {
	return "", nil
}

func (f *fakeDirectory) ReportsOf(ctx context.Context, managerID string) ([]string, error) {
	if f.reportsOfFn != nil {
		return f.reportsOfFn(ctx, managerID)
	}
	return nil, nil
}

func approvedSpan(employeeID uuid.UUID, start, end string) leaverequest.LeaveRequest {
	s, _ := time.Parse("2006-01-02", start)
	e, _ := time.Parse("2006-01-02", end)
	days := int(e.Sub(s).Hours()/24) + 1
	return leaverequest.LeaveRequest{
		ID:          uuid.New(),
		EmployeeID:  employeeID,
		LeaveTypeID: "ANNUAL",
		StartDate:   s,
		EndDate:     e,
		Days:        days,
		Status:      leaverequest.StatusApproved,
	}
}

func TestCalendarService_OnLeaveToday(t *testing.T) {
	ctx := context.Background()
	managerID := uuid.New().String()
	reportA := uuid.New()
	reportB := uuid.New()
	today := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

	t.Run("success only spans covering today are returned", func(t *testing.T) {
		dir := &fakeDirectory{
			reportsOfFn: func(ctx context.Context, mid string) ([]string, error) {
				assert.Equal(t, managerID, mid)
				return []string{reportA.String(), reportB.String()}, nil
			},
		}
		repo := &fakeCalendarRepository{
			findApprovedInWindowFn: func(ctx context.Context, ids []string, from, to time.Time) ([]leaverequest.LeaveRequest, error) {
				assert.Equal(t, []string{reportA.String(), reportB.String()}, ids)
				assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), from)
				assert.Equal(t, from, to)
				return []leaverequest.LeaveRequest{
					approvedSpan(reportA, "2026-03-09", "2026-03-11"),
				}, nil
			},
		}
		svc := calendar.NewService(repo, dir)

		absences, err := svc.OnLeaveToday(ctx, managerID, today)

		assert.NoError(t, err)
		assert.Len(t, absences, 1)
		assert.Equal(t, reportA.String(), absences[0].EmployeeID)
	})

	t.Run("success manager with no reports sees an empty list", func(t *testing.T) {
		svc := calendar.NewService(&fakeCalendarRepository{}, &fakeDirectory{})

		absences, err := svc.OnLeaveToday(ctx, managerID, today)

		assert.NoError(t, err)
		assert.Empty(t, absences)
	})
}

func TestCalendarService_Calendar(t *testing.T) {
	ctx := context.Background()
	managerID := uuid.New().String()
	report := uuid.New()

	t.Run("success builds one entry per day of the month", func(t *testing.T) {
		dir := &fakeDirectory{
			reportsOfFn: func(ctx context.Context, mid string) ([]string, error) {
				return []string{report.String()}, nil
			},
		}
		repo := &fakeCalendarRepository{
			findApprovedInWindowFn: func(ctx context.Context, ids []string, from, to time.Time) ([]leaverequest.LeaveRequest, error) {
				assert.Equal(t, "2026-03-01", from.Format("2006-01-02"))
				assert.Equal(t, "2026-03-31", to.Format("2006-01-02"))
				return []leaverequest.LeaveRequest{
					approvedSpan(report, "2026-03-30", "2026-04-02"),
				}, nil
			},
		}
		svc := calendar.NewService(repo, dir)

		resp, err := svc.Calendar(ctx, managerID, "2026-03")

		assert.NoError(t, err)
		assert.Equal(t, "2026-03", resp.Month)
		assert.Len(t, resp.Days, 31)
		assert.Empty(t, resp.Days[0].OnLeave)
		// The span crosses into April; only its March days show up.
		assert.Len(t, resp.Days[29].OnLeave, 1)
		assert.Len(t, resp.Days[30].OnLeave, 1)
		assert.Equal(t, 1, resp.Days[30].Absences)
	})

	t.Run("negative malformed month", func(t *testing.T) {
		svc := calendar.NewService(&fakeCalendarRepository{}, &fakeDirectory{})

		_, err := svc.Calendar(ctx, managerID, "March 2026")

		assert.ErrorIs(t, err, calendar.ErrInvalidMonth)
	})
}
