package medicalrecords

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-record-guardian/internal/domain/datewindow"
	"pet-record-guardian/internal/platform/logger"
)

type testRepo struct {
	byID    map[string]MedicalRecord
	listErr error
}

func newTestRepo() *testRepo { return &testRepo{byID: map[string]MedicalRecord{}} }

func (r *testRepo) Create(ctx context.Context, rec MedicalRecord) error {
	r.byID[rec.ID] = rec
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (MedicalRecord, error) {
	rec, ok := r.byID[id]
	if !ok {
		return MedicalRecord{}, ErrNotFound
	}
	return rec, nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) List(ctx context.Context, filter ListFilter) ([]MedicalRecord, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]MedicalRecord, 0)
	for _, rec := range r.byID {
		if filter.Matches(rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}

var testNow = time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)

func newTestService(repo Repository) *Service {
	return NewService(repo, datewindow.FixedClock(testNow), logger.Nop())
}

func TestService_Create_DefaultsAndValidation(t *testing.T) {
	svc := newTestService(newTestRepo())
	ctx := context.Background()

	rec, err := svc.Create(ctx, "pet-1", CreateInput{VisitDate: datewindow.NewDate(2024, 3, 1), Diagnosis: " otitis "})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.RecordType != RecordTypeCheckup || rec.Diagnosis != "otitis" {
		t.Fatalf("unexpected record %+v", rec)
	}

	if _, err := svc.Create(ctx, "pet-1", CreateInput{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing visit date, got %v", err)
	}
	if _, err := svc.Create(ctx, "pet-1", CreateInput{VisitDate: datewindow.NewDate(2024, 3, 1), RecordType: "spa"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown type, got %v", err)
	}
	next := datewindow.NewDate(2024, 2, 1)
	if _, err := svc.Create(ctx, "pet-1", CreateInput{VisitDate: datewindow.NewDate(2024, 3, 1), NextAppointment: &next}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for next appointment before visit, got %v", err)
	}
}

func TestService_List_SortsSkipsAndFilters(t *testing.T) {
	repo := newTestRepo()
	repo.byID["old"] = MedicalRecord{ID: "old", PetID: "pet-1", VisitDate: datewindow.NewDate(2023, 5, 1), RecordType: RecordTypeVaccination}
	repo.byID["new"] = MedicalRecord{ID: "new", PetID: "pet-1", VisitDate: datewindow.NewDate(2024, 2, 1), RecordType: RecordTypeCheckup, Diagnosis: "Otitis externa"}
	repo.byID["broken"] = MedicalRecord{ID: "broken", PetID: "pet-1"}
	repo.byID["other"] = MedicalRecord{ID: "other", PetID: "pet-2", VisitDate: datewindow.NewDate(2024, 1, 1)}
	svc := newTestService(repo)
	ctx := context.Background()

	got, err := svc.List(ctx, ListFilter{PetIDs: []string{"pet-1"}})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "new" || got[1].ID != "old" {
		t.Fatalf("unexpected list %+v", got)
	}

	got, _ = svc.List(ctx, ListFilter{PetIDs: []string{"pet-1"}, Types: []RecordType{RecordTypeVaccination}})
	if len(got) != 1 || got[0].ID != "old" {
		t.Fatalf("expected type filter to keep only vaccination, got %+v", got)
	}

	got, _ = svc.List(ctx, ListFilter{PetIDs: []string{"pet-1"}, Query: "otitis"})
	if len(got) != 1 || got[0].ID != "new" {
		t.Fatalf("expected text filter match, got %+v", got)
	}

	if got, _ := svc.List(ctx, ListFilter{}); len(got) != 0 {
		t.Fatalf("expected empty list without pet ids")
	}
}

func TestService_List_PropagatesFetchFailure(t *testing.T) {
	repo := newTestRepo()
	repo.listErr = errors.New("db down")
	svc := newTestService(repo)

	if _, err := svc.List(context.Background(), ListFilter{PetIDs: []string{"pet-1"}}); err == nil {
		t.Fatalf("expected fetch error")
	}
}
