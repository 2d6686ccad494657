package postgres

import (
	"testing"
	"time"

	"pet-record-guardian/internal/domain/datewindow"
)

func TestScanDate_MalformedBecomesZero(t *testing.T) {
	var s scanDate
	if err := s.Scan("not-a-date"); err != nil {
		t.Fatalf("scan must not fail: %v", err)
	}
	if !s.d.IsZero() || s.ptr() != nil {
		t.Fatalf("expected zero date for malformed input")
	}

	if err := s.Scan(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if p := s.ptr(); p == nil || p.String() != "2024-03-01" {
		t.Fatalf("unexpected scanned date %v", p)
	}
}

func TestDateArg(t *testing.T) {
	if dateArg(nil) != nil {
		t.Fatalf("expected NULL for nil date")
	}
	d := datewindow.NewDate(2024, 1, 2)
	if got, ok := dateArg(&d).(datewindow.Date); !ok || !got.Equal(d) {
		t.Fatalf("expected date value, got %v", dateArg(&d))
	}
}

func TestInPlaceholders_ContinuesNumbering(t *testing.T) {
	ph, args := inPlaceholders([]string{"a", "b"}, []any{"x"})
	if ph != "$2,$3" {
		t.Fatalf("unexpected placeholders %q", ph)
	}
	if len(args) != 3 || args[2] != "b" {
		t.Fatalf("unexpected args %v", args)
	}
}
