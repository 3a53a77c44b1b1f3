package models

import (
	"testing"
	"time"
)

func TestSessionStatus(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		active bool
		start  time.Time
		end    time.Time
		want   string
	}{
		{"inactive flag wins", false, now.Add(-time.Hour), now.Add(time.Hour), SessionStatusInactive},
		{"before window", true, now.Add(time.Hour), now.Add(2 * time.Hour), SessionStatusUpcoming},
		{"after window", true, now.Add(-2 * time.Hour), now.Add(-time.Hour), SessionStatusClosed},
		{"inside window", true, now.Add(-time.Hour), now.Add(time.Hour), SessionStatusOpen},
		{"at start", true, now, now.Add(time.Hour), SessionStatusOpen},
		{"at end", true, now.Add(-time.Hour), now, SessionStatusOpen},
	}
	for _, c := range cases {
		s := SurveySession{IsActive: c.active, StartDate: c.start, EndDate: c.end}
		if got := s.Status(now); got != c.want {
			t.Fatalf("%s: Status()=%q, want %q", c.name, got, c.want)
		}
	}
}

func TestCompletedAttemptLimit(t *testing.T) {
	if got := CompletedAttemptLimit(MembershipSilver); got != 1 {
		t.Fatalf("silver limit = %d, want 1", got)
	}
	if got := CompletedAttemptLimit(MembershipGold); got != -1 {
		t.Fatalf("gold limit = %d, want unlimited", got)
	}
	if got := CompletedAttemptLimit(MembershipFree); got != -1 {
		t.Fatalf("free limit = %d, want unlimited", got)
	}
}

func TestFileSizeDisplay(t *testing.T) {
	cases := []struct {
		size int64
		want string
	}{
		{512, "512 B"},
		{2048, "2 KB"},
		{3 * 1024 * 1024, "3 MB"},
	}
	for _, c := range cases {
		d := UserDocument{FileSize: c.size}
		if got := d.FileSizeDisplay(); got != c.want {
			t.Fatalf("FileSizeDisplay(%d)=%q, want %q", c.size, got, c.want)
		}
	}
}
