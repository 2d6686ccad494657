package calendar

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-record-guardian/internal/domain/appointments"
	"pet-record-guardian/internal/domain/datewindow"
	"pet-record-guardian/internal/domain/medicalrecords"
	"pet-record-guardian/internal/platform/logger"
)

type fakeAppointments struct {
	items []appointments.Appointment
	err   error
	got   appointments.ListFilter
}

func (f *fakeAppointments) List(ctx context.Context, filter appointments.ListFilter) ([]appointments.Appointment, error) {
	f.got = filter
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

type fakeRecords struct {
	items []medicalrecords.MedicalRecord
	err   error
}

func (f *fakeRecords) List(ctx context.Context, filter medicalrecords.ListFilter) ([]medicalrecords.MedicalRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

var testNow = time.Date(2024, 2, 10, 10, 0, 0, 0, time.UTC)

func TestService_Month_DefaultsToCurrentMonth(t *testing.T) {
	appts := &fakeAppointments{items: []appointments.Appointment{{ID: "a1", Date: datewindow.NewDate(2024, 2, 29)}}}
	records := &fakeRecords{items: []medicalrecords.MedicalRecord{{ID: "r1", VisitDate: datewindow.NewDate(2024, 2, 1)}}}
	svc := NewService(appts, records, datewindow.FixedClock(testNow), logger.Nop())

	view, err := svc.Month(context.Background(), []string{"pet-1"}, 0, 0)
	if err != nil {
		t.Fatalf("Month returned error: %v", err)
	}
	if view.From.String() != "2024-02-01" || view.To.String() != "2024-02-29" {
		t.Fatalf("unexpected range %s..%s", view.From, view.To)
	}
	if appts.got.From == nil || appts.got.To == nil || appts.got.To.String() != "2024-02-29" {
		t.Fatalf("expected month range passed to repo, got %+v", appts.got)
	}
	if len(view.Days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(view.Days))
	}
}

func TestService_Month_FetchFailurePropagates(t *testing.T) {
	appts := &fakeAppointments{}
	records := &fakeRecords{err: errors.New("db down")}
	svc := NewService(appts, records, datewindow.FixedClock(testNow), logger.Nop())

	if _, err := svc.Month(context.Background(), []string{"pet-1"}, 2024, time.March); err == nil {
		t.Fatalf("expected fetch error")
	}
}

func TestService_Day_ReportsAbsence(t *testing.T) {
	appts := &fakeAppointments{}
	records := &fakeRecords{}
	svc := NewService(appts, records, datewindow.FixedClock(testNow), logger.Nop())

	_, ok, err := svc.Day(context.Background(), []string{"pet-1"}, datewindow.NewDate(2024, 2, 12))
	if err != nil {
		t.Fatalf("Day returned error: %v", err)
	}
	if ok {
		t.Fatalf("expected no bucket for empty day")
	}
}
