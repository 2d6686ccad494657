package medications

import (
	"testing"

	"pet-record-guardian/internal/domain/datewindow"
)

var testToday = datewindow.NewDate(2024, 3, 10)

func ptr(d datewindow.Date) *datewindow.Date { return &d }

func TestNeedsRefill_WithinThreshold(t *testing.T) {
	m := Medication{
		Active:     true,
		StartDate:  testToday.AddDays(-10),
		RefillDate: ptr(testToday.AddDays(3)),
	}
	if !NeedsRefill(m, testToday, 7) {
		t.Fatalf("expected needs refill")
	}
	if got := Label(m, testToday, 7); got != LabelRefillSoon {
		t.Fatalf("expected %q, got %q", LabelRefillSoon, got)
	}
}

func TestNeedsRefill_InclusiveBounds(t *testing.T) {
	cases := []struct {
		name   string
		refill datewindow.Date
		want   bool
	}{
		{"today", testToday, true},
		{"edge", testToday.AddDays(7), true},
		{"one past edge", testToday.AddDays(8), false},
		{"yesterday", testToday.AddDays(-1), false},
	}
	for _, c := range cases {
		m := Medication{Active: true, StartDate: testToday, RefillDate: ptr(c.refill)}
		if got := NeedsRefill(m, testToday, 7); got != c.want {
			t.Fatalf("%s: expected %v, got %v", c.name, c.want, got)
		}
	}
}

func TestNeedsRefill_InactiveOrMissing(t *testing.T) {
	inactive := Medication{Active: false, StartDate: testToday, RefillDate: ptr(testToday.AddDays(1))}
	if NeedsRefill(inactive, testToday, 7) {
		t.Fatalf("inactive medication should never need refill")
	}
	noRefill := Medication{Active: true, StartDate: testToday}
	if NeedsRefill(noRefill, testToday, 7) {
		t.Fatalf("medication without refill date should not need refill")
	}
}

func TestNeedsRefill_NegativeThresholdActsAsZero(t *testing.T) {
	m := Medication{Active: true, StartDate: testToday, RefillDate: ptr(testToday)}
	if !NeedsRefill(m, testToday, -3) {
		t.Fatalf("expected refill today to qualify with negative threshold")
	}
	m.RefillDate = ptr(testToday.AddDays(1))
	if NeedsRefill(m, testToday, -3) {
		t.Fatalf("expected refill tomorrow to be excluded with negative threshold")
	}
}

func TestLabel_RefillTakesPrecedenceOverCompleted(t *testing.T) {
	m := Medication{
		Active:     true,
		StartDate:  testToday.AddDays(-30),
		EndDate:    ptr(testToday.AddDays(-1)),
		RefillDate: ptr(testToday.AddDays(2)),
	}
	if got := Label(m, testToday, 7); got != LabelRefillSoon {
		t.Fatalf("expected %q, got %q", LabelRefillSoon, got)
	}

	m.RefillDate = nil
	if got := Label(m, testToday, 7); got != LabelCompleted {
		t.Fatalf("expected %q, got %q", LabelCompleted, got)
	}
}

func TestLabel_DefaultsToActive(t *testing.T) {
	m := Medication{Active: true, StartDate: testToday, EndDate: ptr(testToday)}
	if got := LabelOf(m, testToday); got != LabelActive {
		t.Fatalf("end date today is still active, got %q", got)
	}
}

func TestIsDue(t *testing.T) {
	cases := []struct {
		name string
		m    Medication
		want bool
	}{
		{"started today", Medication{Active: true, StartDate: testToday}, true},
		{"starts tomorrow", Medication{Active: true, StartDate: testToday.AddDays(1)}, false},
		{"ends today", Medication{Active: true, StartDate: testToday.AddDays(-5), EndDate: ptr(testToday)}, true},
		{"ended yesterday", Medication{Active: true, StartDate: testToday.AddDays(-5), EndDate: ptr(testToday.AddDays(-1))}, false},
		{"inactive", Medication{Active: false, StartDate: testToday.AddDays(-5)}, false},
	}
	for _, c := range cases {
		if got := IsDue(c.m, testToday); got != c.want {
			t.Fatalf("%s: expected %v, got %v", c.name, c.want, got)
		}
	}
}
