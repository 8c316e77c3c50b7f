package policy_test

import (
	"testing"
	"time"

	"github.com/MunaSchool/HR-Management-System-sub005/internal/policy"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRequestedDays(t *testing.T) {
	t.Run("calendar days are inclusive on both ends", func(t *testing.T) {
		got := policy.RequestedDays(date(2026, 3, 2), date(2026, 3, 6), policy.CalendarDays)
		assert.Equal(t, 5, got)
	})

	t.Run("single day counts as one", func(t *testing.T) {
		got := policy.RequestedDays(date(2026, 3, 2), date(2026, 3, 2), policy.CalendarDays)
		assert.Equal(t, 1, got)
	})

	t.Run("business days skip the weekend", func(t *testing.T) {
		// Mon 2026-03-02 through Sun 2026-03-08
		got := policy.RequestedDays(date(2026, 3, 2), date(2026, 3, 8), policy.BusinessDays)
		assert.Equal(t, 5, got)
	})

	t.Run("weekend only range has zero business days", func(t *testing.T) {
		got := policy.RequestedDays(date(2026, 3, 7), date(2026, 3, 8), policy.BusinessDays)
		assert.Equal(t, 0, got)
	})

	t.Run("negative reversed range", func(t *testing.T) {
		got := policy.RequestedDays(date(2026, 3, 6), date(2026, 3, 2), policy.CalendarDays)
		assert.Equal(t, 0, got)
	})
}

func TestConfigForType(t *testing.T) {
	cfg := policy.NewConfig(72 * time.Hour)

	t.Run("known type", func(t *testing.T) {
		p, ok := cfg.ForType(policy.LeaveTypeAnnual)
		assert.True(t, ok)
		assert.Equal(t, policy.BusinessDays, p.DayCount)
		assert.Equal(t, 20, p.EntitlementDays)
	})

	t.Run("negative unknown type", func(t *testing.T) {
		_, ok := cfg.ForType("SABBATICAL")
		assert.False(t, ok)
	})

	t.Run("override replaces default", func(t *testing.T) {
		custom := policy.NewConfig(time.Hour, policy.LeaveTypePolicy{
			ID:              policy.LeaveTypeSick,
			Name:            "Sick Leave",
			EntitlementDays: 15,
			DayCount:        policy.CalendarDays,
		})
		p, ok := custom.ForType(policy.LeaveTypeSick)
		assert.True(t, ok)
		assert.Equal(t, 15, p.EntitlementDays)
	})
}

func TestYearOf(t *testing.T) {
	assert.Equal(t, 2026, policy.YearOf(date(2026, 12, 31)))
}
