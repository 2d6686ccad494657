package medications

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-record-guardian/internal/domain/datewindow"
	"pet-record-guardian/internal/platform/logger"
)

// -------------------------
// Test repos (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Medication
}

func newTestRepo() *testRepo { return &testRepo{byID: map[string]Medication{}} }

func (r *testRepo) Create(ctx context.Context, m Medication) error {
	r.byID[m.ID] = m
	return nil
}

func (r *testRepo) Update(ctx context.Context, m Medication) error {
	if _, ok := r.byID[m.ID]; !ok {
		return ErrNotFound
	}
	r.byID[m.ID] = m
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Medication, error) {
	m, ok := r.byID[id]
	if !ok {
		return Medication{}, ErrNotFound
	}
	return m, nil
}

func (r *testRepo) ListByPet(ctx context.Context, petID string) ([]Medication, error) {
	out := make([]Medication, 0)
	for _, m := range r.byID {
		if m.PetID == petID {
			out = append(out, m)
		}
	}
	return out, nil
}

type testLogRepo struct {
	byID map[string]Log
}

func newTestLogRepo() *testLogRepo { return &testLogRepo{byID: map[string]Log{}} }

func (r *testLogRepo) Create(ctx context.Context, l Log) error {
	r.byID[l.ID] = l
	return nil
}

func (r *testLogRepo) Update(ctx context.Context, l Log) error {
	if _, ok := r.byID[l.ID]; !ok {
		return ErrLogNotFound
	}
	r.byID[l.ID] = l
	return nil
}

func (r *testLogRepo) GetByID(ctx context.Context, id string) (Log, error) {
	l, ok := r.byID[id]
	if !ok {
		return Log{}, ErrLogNotFound
	}
	return l, nil
}

func (r *testLogRepo) ListByMedication(ctx context.Context, medicationID string) ([]Log, error) {
	out := make([]Log, 0)
	for _, l := range r.byID {
		if l.MedicationID == medicationID {
			out = append(out, l)
		}
	}
	return out, nil
}

var testNow = time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)

func newTestService() (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo, newTestLogRepo(), datewindow.FixedClock(testNow), logger.Nop(), 7)
	return svc, repo
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_DefaultsActive(t *testing.T) {
	svc, _ := newTestService()

	m, err := svc.Create(context.Background(), "pet-1", CreateInput{
		Name:      "  Amoxicilina ",
		StartDate: datewindow.NewDate(2024, 3, 1),
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if !m.Active {
		t.Fatalf("expected active by default")
	}
	if m.Name != "Amoxicilina" {
		t.Fatalf("expected trimmed name, got %q", m.Name)
	}
}

func TestService_Create_Validation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, "pet-1", CreateInput{StartDate: testToday}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing name, got %v", err)
	}
	if _, err := svc.Create(ctx, "pet-1", CreateInput{Name: "x"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing start date, got %v", err)
	}
	_, err := svc.Create(ctx, "pet-1", CreateInput{Name: "x", StartDate: testToday, EndDate: ptr(testToday.AddDays(-1))})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for end before start, got %v", err)
	}
}

func TestService_Update_ClearsRefillDate(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	m, err := svc.Create(ctx, "pet-1", CreateInput{Name: "x", StartDate: testToday, RefillDate: ptr(testToday.AddDays(2))})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if !svc.View(m).NeedsRefill {
		t.Fatalf("expected needs refill before update")
	}

	updated, err := svc.Update(ctx, m.ID, UpdateInput{RefillDate: OptionalDate{Present: true}})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.RefillDate != nil {
		t.Fatalf("expected refill date cleared")
	}
	if svc.View(updated).NeedsRefill {
		t.Fatalf("expected no refill after clearing date")
	}
}

func TestService_Refills_SortedAcrossPets(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	mustCreate := func(petID, name string, refill *datewindow.Date) {
		t.Helper()
		if _, err := svc.Create(ctx, petID, CreateInput{Name: name, StartDate: testToday.AddDays(-10), RefillDate: refill}); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
	}
	mustCreate("pet-1", "late", ptr(testToday.AddDays(6)))
	mustCreate("pet-2", "early", ptr(testToday.AddDays(1)))
	mustCreate("pet-2", "far", ptr(testToday.AddDays(30)))
	mustCreate("pet-3", "other owner", ptr(testToday))

	got, err := svc.Refills(ctx, []string{"pet-1", "pet-2"})
	if err != nil {
		t.Fatalf("Refills returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 refills, got %d", len(got))
	}
	if got[0].Medication.Name != "early" || got[1].Medication.Name != "late" {
		t.Fatalf("unexpected order: %s, %s", got[0].Medication.Name, got[1].Medication.Name)
	}
}

func TestService_Logs_RecordAndCorrect(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	m, err := svc.Create(ctx, "pet-1", CreateInput{Name: "x", StartDate: testToday})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	first, err := svc.RecordLog(ctx, m.ID, LogInput{GivenBy: "ana"})
	if err != nil {
		t.Fatalf("RecordLog returned error: %v", err)
	}
	if !first.GivenAt.Equal(testNow) {
		t.Fatalf("expected given_at to default to now, got %s", first.GivenAt)
	}

	skipped, err := svc.RecordLog(ctx, m.ID, LogInput{GivenAt: testNow.Add(time.Hour), Skipped: true, SkipReason: "vomitó"})
	if err != nil {
		t.Fatalf("RecordLog returned error: %v", err)
	}

	if _, err := svc.RecordLog(ctx, m.ID, LogInput{SkipReason: "sin skipped"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for skip reason without skip, got %v", err)
	}

	notSkipped := false
	corrected, err := svc.CorrectLog(ctx, m.ID, skipped.ID, LogCorrection{Skipped: &notSkipped})
	if err != nil {
		t.Fatalf("CorrectLog returned error: %v", err)
	}
	if corrected.Skipped || corrected.SkipReason != "" {
		t.Fatalf("expected skip cleared, got %+v", corrected)
	}

	if _, err := svc.CorrectLog(ctx, "other-med", first.ID, LogCorrection{}); !errors.Is(err, ErrLogNotFound) {
		t.Fatalf("expected ErrLogNotFound for foreign medication, got %v", err)
	}

	logs, err := svc.ListLogs(ctx, m.ID)
	if err != nil {
		t.Fatalf("ListLogs returned error: %v", err)
	}
	if len(logs) != 2 || logs[0].ID != skipped.ID {
		t.Fatalf("expected newest first, got %+v", logs)
	}
}
