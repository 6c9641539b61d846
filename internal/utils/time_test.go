package utils

import "testing"

func TestNormalizeJourneyDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2026-09-01", "2026-09-01"},
		{" 2026-09-01 ", "2026-09-01"},
		{"2026-09-01 00:00:00", "2026-09-01"},
		{"2026-09-01 23:59:59", "2026-09-01"},
		{"2026-09-01 12:30:00", "2026-09-01"},
	}
	for _, tc := range cases {
		got, err := NormalizeJourneyDate(tc.in)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("%q: expected %s, got %s", tc.in, tc.want, got)
		}
	}

	for _, bad := range []string{"", "  ", "01/09/2026", "2026-13-40", "besok"} {
		if _, err := NormalizeJourneyDate(bad); err == nil {
			t.Fatalf("%q: expected error, got nil", bad)
		}
	}
}

func TestNormalizeTimeStr(t *testing.T) {
	got, err := NormalizeTimeStr(" 07:30 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "07:30" {
		t.Fatalf("expected 07:30, got %q", got)
	}
	for _, bad := range []string{"", "7.30", "25:00", "pagi"} {
		if _, err := NormalizeTimeStr(bad); err == nil {
			t.Fatalf("%q: expected error, got nil", bad)
		}
	}
}
