package validator

import (
	"testing"
	"time"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2025-03-10"); !ok {
		t.Error("IsValidDate(2025-03-10) = false, want true")
	}
	for _, bad := range []string{"2025-13-01", "10-03-2025", "2025-03-10T00:00:00Z", ""} {
		if _, ok := IsValidDate(bad); ok {
			t.Errorf("IsValidDate(%q) = true, want false", bad)
		}
	}
}

func TestIsValidMonth(t *testing.T) {
	if _, ok := IsValidMonth("2025-03"); !ok {
		t.Error("IsValidMonth(2025-03) = false, want true")
	}
	for _, bad := range []string{"2025-13", "2025-03-10", "03-2025", ""} {
		if _, ok := IsValidMonth(bad); ok {
			t.Errorf("IsValidMonth(%q) = true, want false", bad)
		}
	}
}

func TestIsValidClockTime(t *testing.T) {
	cases := []struct {
		input string
		want  time.Duration
	}{
		{"09:00", 9 * time.Hour},
		{"23:59", 23*time.Hour + 59*time.Minute},
		{"00:00", 0},
	}
	for _, c := range cases {
		got, ok := IsValidClockTime(c.input)
		if !ok || got != c.want {
			t.Errorf("IsValidClockTime(%q) = (%v, %v), want (%v, true)", c.input, got, ok, c.want)
		}
	}
	for _, bad := range []string{"24:00", "9:60", "nine", "09:00:00", ""} {
		if _, ok := IsValidClockTime(bad); ok {
			t.Errorf("IsValidClockTime(%q) = true, want false", bad)
		}
	}
}

func TestMaxLen(t *testing.T) {
	if !MaxLen("abc", 3) {
		t.Error("MaxLen(abc, 3) = false, want true")
	}
	if MaxLen("abcd", 3) {
		t.Error("MaxLen(abcd, 3) = true, want false")
	}
}
