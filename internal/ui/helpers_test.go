package ui

import (
	"testing"
	"time"
)

func TestFormatElapsed(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{0, "-"},
		{-time.Second, "-"},
		{512 * time.Millisecond, "512ms"},
		{1500 * time.Millisecond, "1.5s"},
		{90 * time.Second, "1m30s"},
	}
	for _, tc := range cases {
		if got := formatElapsed(tc.in); got != tc.want {
			t.Fatalf("formatElapsed(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("truncate short = %q", got)
	}
	if got := truncate("abcdefgh", 5); got != "abcd…" {
		t.Fatalf("truncate = %q, want abcd…", got)
	}
}

func TestTruncateMiddle(t *testing.T) {
	if got := truncateMiddle("  ", 10); got != "" {
		t.Fatalf("truncateMiddle blank = %q, want empty", got)
	}
	if got := truncateMiddle("abcd", 2); got != "ab" {
		t.Fatalf("truncateMiddle limit<=3 = %q, want ab", got)
	}
	got := truncateMiddle("http://printer.local:8080/api", 11)
	if got != "http:…0/api" {
		t.Fatalf("truncateMiddle = %q", got)
	}
	if len([]rune(got)) != 11 {
		t.Fatalf("got %q (%d runes), want 11", got, len([]rune(got)))
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("info", 5); got != "info " {
		t.Fatalf("padRight = %q", got)
	}
	if got := padRight("error", 3); got != "error" {
		t.Fatalf("padRight longer = %q", got)
	}
}
