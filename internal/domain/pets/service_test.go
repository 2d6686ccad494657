package pets

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-record-guardian/internal/domain/datewindow"
	"pet-record-guardian/internal/platform/logger"
)

type testRepo struct {
	byID map[string]Pet
}

func newTestRepo() *testRepo { return &testRepo{byID: map[string]Pet{}} }

func (r *testRepo) Create(ctx context.Context, p Pet) error {
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Update(ctx context.Context, p Pet) error {
	if _, ok := r.byID[p.ID]; !ok {
		return ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Pet, error) {
	p, ok := r.byID[id]
	if !ok {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	out := make([]Pet, 0)
	for _, p := range r.byID {
		if p.OwnerUserID == ownerUserID {
			out = append(out, p)
		}
	}
	return out, nil
}

var testNow = time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)

func newTestService() *Service {
	return NewService(newTestRepo(), datewindow.FixedClock(testNow), logger.Nop())
}

func TestService_Create_NormalizesAndValidates(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	p, err := svc.Create(ctx, "user-1", CreateInput{Name: " Luna ", Species: "Cat"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if p.Name != "Luna" || p.Species != SpeciesCat || p.Sex != SexUnknown {
		t.Fatalf("unexpected pet %+v", p)
	}

	if _, err := svc.Create(ctx, "user-1", CreateInput{Name: "x", Species: "dragon"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown species, got %v", err)
	}
	future := datewindow.NewDate(2030, 1, 1)
	if _, err := svc.Create(ctx, "user-1", CreateInput{Name: "x", Species: "dog", BirthDate: &future}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for future birth date, got %v", err)
	}
}

func TestService_UpdateProfile_OwnerOnlyAndClearBirthDate(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	bd := datewindow.NewDate(2020, 5, 1)
	p, err := svc.Create(ctx, "user-1", CreateInput{Name: "Rex", Species: "dog", BirthDate: &bd})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	name := "Rex II"
	if _, err := svc.UpdateProfile(ctx, p.ID, "user-2", UpdateProfileInput{Name: &name}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	updated, err := svc.UpdateProfile(ctx, p.ID, "user-1", UpdateProfileInput{Name: &name, BirthDate: PatchBirthDate{Present: true}})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if updated.Name != "Rex II" || updated.BirthDate != nil {
		t.Fatalf("unexpected update %+v", updated)
	}
}

func TestService_PetIDsByOwnerAndDelete(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	a, _ := svc.Create(ctx, "user-1", CreateInput{Name: "B", Species: "dog"})
	b, _ := svc.Create(ctx, "user-1", CreateInput{Name: "a", Species: "cat"})
	_, _ = svc.Create(ctx, "user-2", CreateInput{Name: "C", Species: "bird"})

	ids, err := svc.PetIDsByOwner(ctx, "user-1")
	if err != nil {
		t.Fatalf("PetIDsByOwner returned error: %v", err)
	}
	if len(ids) != 2 || ids[0] != b.ID || ids[1] != a.ID {
		t.Fatalf("expected ids sorted by name, got %v", ids)
	}

	if err := svc.Delete(ctx, a.ID, "user-2"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(ctx, a.ID, "user-1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := svc.OwnerOf(ctx, a.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
