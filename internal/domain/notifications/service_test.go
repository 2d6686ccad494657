package notifications

import (
	"context"
	"errors"
	"testing"

	"pet-record-guardian/internal/domain/appointments"
	"pet-record-guardian/internal/domain/datewindow"
	"pet-record-guardian/internal/platform/logger"
)

type fakeLister struct {
	items []appointments.Appointment
	err   error
	got   appointments.ListFilter
}

func (f *fakeLister) List(ctx context.Context, filter appointments.ListFilter) ([]appointments.Appointment, error) {
	f.got = filter
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

func TestService_Feed_UsesConfiguredLookahead(t *testing.T) {
	lister := &fakeLister{items: []appointments.Appointment{
		scheduled("in3", day(3)),
		scheduled("in5", day(5)),
	}}
	svc := NewService(lister, datewindow.FixedClock(testNow), logger.Nop(), 3)

	got, err := svc.Feed(context.Background(), []string{"pet-1"}, -1)
	if err != nil {
		t.Fatalf("Feed returned error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "upcoming-in3" {
		t.Fatalf("unexpected feed %+v", got)
	}
	if lister.got.To == nil || lister.got.To.String() != day(3).String() {
		t.Fatalf("expected fetch bounded by lookahead, got %+v", lister.got.To)
	}

	got, _ = svc.Feed(context.Background(), []string{"pet-1"}, 10)
	if len(got) != 2 {
		t.Fatalf("expected explicit lookahead to widen the window, got %d", len(got))
	}
}

func TestService_Feed_PropagatesFetchFailure(t *testing.T) {
	svc := NewService(&fakeLister{err: errors.New("db down")}, datewindow.FixedClock(testNow), logger.Nop(), 7)
	if _, err := svc.Feed(context.Background(), []string{"pet-1"}, -1); err == nil {
		t.Fatalf("expected fetch error")
	}
}

func TestService_Feed_ZeroLookaheadStillFetchesTomorrow(t *testing.T) {
	lister := &fakeLister{items: []appointments.Appointment{
		scheduled("today", day(0)),
		scheduled("tomorrow", day(1)),
	}}
	svc := NewService(lister, datewindow.FixedClock(testNow), logger.Nop(), 7)

	got, err := svc.Feed(context.Background(), []string{"pet-1"}, 0)
	if err != nil {
		t.Fatalf("Feed returned error: %v", err)
	}
	if lister.got.To == nil || lister.got.To.String() != day(1).String() {
		t.Fatalf("expected fetch through tomorrow, got %+v", lister.got.To)
	}
	if len(got) != 2 || got[0].ID != "upcoming-today" || got[1].ID != "upcoming-tomorrow" {
		t.Fatalf("unexpected feed %+v", got)
	}
}
