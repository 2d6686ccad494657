package calendar

import (
	"testing"

	"pet-record-guardian/internal/domain/appointments"
	"pet-record-guardian/internal/domain/datewindow"
	"pet-record-guardian/internal/domain/medicalrecords"
)

func TestBucketByDay_SameDayKeepsInputOrder(t *testing.T) {
	d := datewindow.NewDate(2024, 3, 15)
	appts := []appointments.Appointment{
		{ID: "a1", Date: d, Time: "16:00"},
		{ID: "a2", Date: d, Time: "09:00"},
	}

	buckets := BucketByDay(appts, nil)
	if len(buckets) != 1 {
		t.Fatalf("expected 1 bucket, got %d", len(buckets))
	}
	b, ok := Lookup(buckets, d)
	if !ok {
		t.Fatalf("expected bucket for %s", d)
	}
	if len(b.Appointments) != 2 || b.Appointments[0].ID != "a1" || b.Appointments[1].ID != "a2" {
		t.Fatalf("expected input order preserved, got %+v", b.Appointments)
	}
	if len(b.MedicalRecords) != 0 {
		t.Fatalf("expected no records")
	}
}

func TestBucketByDay_PartitionCountAndSkips(t *testing.T) {
	appts := []appointments.Appointment{
		{ID: "a1", Date: datewindow.NewDate(2024, 3, 1)},
		{ID: "a2", Date: datewindow.NewDate(2024, 3, 2)},
		{ID: "broken"},
		{ID: "a3", Date: datewindow.NewDate(2024, 3, 2)},
	}
	records := []medicalrecords.MedicalRecord{
		{ID: "r1", VisitDate: datewindow.NewDate(2024, 3, 2)},
		{ID: "r2", VisitDate: datewindow.NewDate(2024, 3, 9)},
		{ID: "broken"},
	}

	buckets := BucketByDay(appts, records)

	total := 0
	for key, b := range buckets {
		n := len(b.Appointments) + len(b.MedicalRecords)
		if n == 0 {
			t.Fatalf("bucket %s is empty", key)
		}
		if b.Date.String() != key {
			t.Fatalf("bucket key %s does not match date %s", key, b.Date)
		}
		total += n
	}
	if total != 5 {
		t.Fatalf("expected 5 bucketed items (valid dates only), got %d", total)
	}

	if got := Days(buckets); len(got) != 3 || got[0] != "2024-03-01" || got[2] != "2024-03-09" {
		t.Fatalf("unexpected days %v", got)
	}

	if _, ok := Lookup(buckets, datewindow.NewDate(2024, 3, 3)); ok {
		t.Fatalf("expected absence for a day without events")
	}
}

func TestBucketByDay_Empty(t *testing.T) {
	if got := BucketByDay(nil, nil); len(got) != 0 {
		t.Fatalf("expected no buckets, got %d", len(got))
	}
}
