package appointments

import (
	"context"
	"errors"
	"testing"

	"pet-record-guardian/internal/domain/datewindow"
	"pet-record-guardian/internal/platform/logger"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID    map[string]Appointment
	listErr error
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Appointment{}}
}

func (r *testRepo) Create(ctx context.Context, a Appointment) error {
	if _, ok := r.byID[a.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) Update(ctx context.Context, a Appointment) error {
	if _, ok := r.byID[a.ID]; !ok {
		return ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Appointment, error) {
	a, ok := r.byID[id]
	if !ok {
		return Appointment{}, ErrNotFound
	}
	return a, nil
}

func (r *testRepo) List(ctx context.Context, filter ListFilter) ([]Appointment, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]Appointment, 0)
	for _, a := range r.byID {
		if filter.Matches(a) {
			out = append(out, a)
		}
	}
	return out, nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, datewindow.FixedClock(testNow), logger.Nop())
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_DefaultsToScheduled(t *testing.T) {
	svc := newTestService(newTestRepo())

	a, err := svc.Create(context.Background(), "pet-1", CreateInput{Date: day(3), Time: " 10:00 ", Reason: " vaccine "})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if a.Status != StatusScheduled {
		t.Fatalf("expected scheduled, got %s", a.Status)
	}
	if a.Time != "10:00" || a.Reason != "vaccine" {
		t.Fatalf("expected trimmed fields, got %+v", a)
	}
	if a.CreatedAt != testNow {
		t.Fatalf("expected CreatedAt from clock")
	}
	if svc.DisplayStatus(a) != DisplayUpcoming {
		t.Fatalf("expected upcoming, got %s", svc.DisplayStatus(a))
	}
}

func TestService_Create_RecurrenceValidation(t *testing.T) {
	svc := newTestService(newTestRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, "pet-1", CreateInput{Date: day(1), IsRecurring: true})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing pattern, got %v", err)
	}

	before := day(0)
	_, err = svc.Create(ctx, "pet-1", CreateInput{
		Date:              day(1),
		IsRecurring:       true,
		RecurrencePattern: RecurrenceWeekly,
		RecurrenceEndDate: &before,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for end before date, got %v", err)
	}

	_, err = svc.Create(ctx, "pet-1", CreateInput{})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing date, got %v", err)
	}

	_, err = svc.Create(ctx, "pet-1", CreateInput{Date: day(1), Status: "pending"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown status, got %v", err)
	}
}

func TestService_Create_NonRecurringDropsRecurrenceFields(t *testing.T) {
	svc := newTestService(newTestRepo())
	end := day(30)

	a, err := svc.Create(context.Background(), "pet-1", CreateInput{
		Date:              day(1),
		RecurrencePattern: RecurrenceDaily,
		RecurrenceEndDate: &end,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if a.RecurrencePattern != "" || a.RecurrenceEndDate != nil {
		t.Fatalf("expected recurrence metadata cleared, got %+v", a)
	}
}

func TestService_Update_PatchAndClearEndDate(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	end := day(20)
	a, err := svc.Create(ctx, "pet-1", CreateInput{
		Date:              day(1),
		IsRecurring:       true,
		RecurrencePattern: RecurrenceWeekly,
		RecurrenceEndDate: &end,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	completed := StatusCompleted
	updated, err := svc.Update(ctx, a.ID, UpdateInput{
		Status:            &completed,
		RecurrenceEndDate: OptionalDate{Present: true, Value: nil},
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Status != StatusCompleted || updated.RecurrenceEndDate != nil {
		t.Fatalf("unexpected update result %+v", updated)
	}
	if updated.RecurrencePattern != RecurrenceWeekly {
		t.Fatalf("pattern must be untouched, got %s", updated.RecurrencePattern)
	}
	if repo.byID[a.ID].Status != StatusCompleted {
		t.Fatalf("expected repo to persist the update")
	}

	if _, err := svc.Update(ctx, "missing", UpdateInput{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_List_SkipsRowsWithoutDate(t *testing.T) {
	repo := newTestRepo()
	repo.byID["ok"] = Appointment{ID: "ok", PetID: "pet-1", Date: day(1), Status: StatusScheduled}
	repo.byID["broken"] = Appointment{ID: "broken", PetID: "pet-1", Status: StatusScheduled}
	svc := newTestService(repo)

	items, err := svc.List(context.Background(), ListFilter{PetIDs: []string{"pet-1"}})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(items) != 1 || items[0].ID != "ok" {
		t.Fatalf("expected only the valid appointment, got %+v", items)
	}

	none, err := svc.List(context.Background(), ListFilter{})
	if err != nil || len(none) != 0 {
		t.Fatalf("expected empty list without pet ids, got %v %v", none, err)
	}
}

func TestService_List_PropagatesFetchFailure(t *testing.T) {
	repo := newTestRepo()
	repo.listErr = errors.New("store unavailable")
	svc := newTestService(repo)

	if _, err := svc.List(context.Background(), ListFilter{PetIDs: []string{"pet-1"}}); err == nil {
		t.Fatalf("expected fetch error to propagate")
	}
}
