package attendance

import (
	"testing"
	"time"

	"github.com/shiftdesk/timeclock-backend-go/internal/pkg/timeutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04", value)
	require.NoError(t, err)
	return parsed
}

func tsPtr(t *testing.T, value string) *time.Time {
	t.Helper()
	parsed := ts(t, value)
	return &parsed
}

func TestSumBreakMinutes(t *testing.T) {
	breaks := []BreakInterval{
		{StartedAt: ts(t, "2025-03-10 12:00"), EndedAt: tsPtr(t, "2025-03-10 13:00")},
		{StartedAt: ts(t, "2025-03-10 15:00"), EndedAt: tsPtr(t, "2025-03-10 15:30")},
	}
	assert.Equal(t, 90, SumBreakMinutes(breaks))
}

func TestSumBreakMinutes_OpenBreakIgnored(t *testing.T) {
	breaks := []BreakInterval{
		{StartedAt: ts(t, "2025-03-10 12:00"), EndedAt: tsPtr(t, "2025-03-10 13:00")},
		{StartedAt: ts(t, "2025-03-10 16:00")}, // still open
	}
	assert.Equal(t, 60, SumBreakMinutes(breaks))
}

func TestSumBreakMinutes_Empty(t *testing.T) {
	assert.Equal(t, 0, SumBreakMinutes(nil))
}

func TestWorkMinutes(t *testing.T) {
	// Scenario: clock in 09:00, break 12:00-13:00, clock out 17:00.
	in := tsPtr(t, "2025-03-10 09:00")
	out := tsPtr(t, "2025-03-10 17:00")
	got := WorkMinutes(in, out, 60)
	assert.Equal(t, 420, got)

	formatted := timeutil.FormatMinutes(got)
	require.NotNil(t, formatted)
	assert.Equal(t, "7:00", *formatted)
}

func TestWorkMinutes_MissingPunch(t *testing.T) {
	in := tsPtr(t, "2025-03-10 09:00")
	assert.Equal(t, 0, WorkMinutes(in, nil, 0))
	assert.Equal(t, 0, WorkMinutes(nil, nil, 0))
}

func TestWorkMinutes_NeverNegative(t *testing.T) {
	in := tsPtr(t, "2025-03-10 09:00")
	out := tsPtr(t, "2025-03-10 10:00")
	// Break total exceeds the shift span.
	assert.Equal(t, 0, WorkMinutes(in, out, 120))
}

func TestRecordIsOvernight(t *testing.T) {
	// Overnight shift: clock in 23:00, clock out 02:00 next day.
	rec := Record{
		ClockIn:  tsPtr(t, "2025-03-10 23:00"),
		ClockOut: tsPtr(t, "2025-03-11 02:00"),
	}
	assert.True(t, rec.IsOvernight())
	assert.Equal(t, 180, timeutil.DurationMinutes(*rec.ClockIn, *rec.ClockOut))

	day := Record{
		ClockIn:  tsPtr(t, "2025-03-10 09:00"),
		ClockOut: tsPtr(t, "2025-03-10 17:00"),
	}
	assert.False(t, day.IsOvernight())

	open := Record{ClockIn: tsPtr(t, "2025-03-10 23:00")}
	assert.False(t, open.IsOvernight())
}

func TestStatusCanClockOut(t *testing.T) {
	assert.True(t, StatusWorking.CanClockOut())
	assert.True(t, StatusOnBreak.CanClockOut())
	assert.False(t, StatusOffDuty.CanClockOut())
	assert.False(t, StatusFinished.CanClockOut())
}
