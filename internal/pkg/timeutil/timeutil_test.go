package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04", value)
	require.NoError(t, err)
	return parsed
}

func TestDurationMinutes(t *testing.T) {
	cases := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{"regular shift", "2025-03-10 09:00", "2025-03-10 17:00", 480},
		{"overnight shift", "2025-03-10 23:00", "2025-03-11 02:00", 180},
		{"same instant", "2025-03-10 09:00", "2025-03-10 09:00", 0},
		{"negative clamps to zero", "2025-03-10 17:00", "2025-03-10 09:00", 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, DurationMinutes(mustTime(t, c.start), mustTime(t, c.end)))
		})
	}
}

func TestDurationMinutesTruncation(t *testing.T) {
	start := mustTime(t, "2025-03-10 09:00")

	assert.Equal(t, 0, DurationMinutes(start, start.Add(59*time.Second)))
	assert.Equal(t, 1, DurationMinutes(start, start.Add(90*time.Second)))
}

func TestFormatMinutes(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{420, "7:00"},
		{65, "1:05"},
		{59, "0:59"},
		{1500, "25:00"},
	}
	for _, c := range cases {
		got := FormatMinutes(c.minutes)
		require.NotNil(t, got)
		assert.Equal(t, c.want, *got)
	}

	assert.Nil(t, FormatMinutes(0))
	assert.Nil(t, FormatMinutes(-30))
}

func TestIsOvernight(t *testing.T) {
	cases := []struct {
		name string
		in   string
		out  string
		want bool
	}{
		{"day shift", "2025-03-10 09:00", "2025-03-10 17:00", false},
		{"wraps past midnight", "2025-03-10 23:00", "2025-03-11 02:00", true},
		{"equal times are 24h wraparound", "2025-03-10 23:00", "2025-03-11 23:00", true},
		{"one minute before wraps", "2025-03-10 23:00", "2025-03-11 22:59", true},
		{"one minute after does not", "2025-03-10 09:00", "2025-03-10 09:01", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, IsOvernight(mustTime(t, c.in), mustTime(t, c.out)))
		})
	}
}

func TestOnDate(t *testing.T) {
	date := mustTime(t, "2025-03-10 15:30")

	got := OnDate(date, 9*time.Hour+15*time.Minute)
	assert.True(t, got.Equal(mustTime(t, "2025-03-10 09:15")))
}

func TestDateOf(t *testing.T) {
	got := DateOf(mustTime(t, "2025-03-10 23:59"))
	assert.True(t, got.Equal(mustTime(t, "2025-03-10 00:00")))
}
