package pets

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"pet-record-guardian/internal/domain/datewindow"
	"pet-record-guardian/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("pet not found")
	ErrForbidden    = errors.New("forbidden")
)

type Service struct {
	repo  Repository
	clock datewindow.Clock
	log   logger.Logger
}

func NewService(repo Repository, clock datewindow.Clock, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:  repo,
		clock: clock,
		log:   log.With(map[string]any{"module": "pets"}),
	}
}

type CreateInput struct {
	Name      string
	Species   string
	Breed     string
	Sex       string
	BirthDate *datewindow.Date
	Microchip string
	Notes     string
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Pet{}, fmt.Errorf("%w: owner required", ErrInvalidInput)
	}

	now := s.clock.Current()
	p := Pet{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Name:        strings.TrimSpace(in.Name),
		Species:     Species(strings.ToLower(strings.TrimSpace(in.Species))),
		Breed:       strings.TrimSpace(in.Breed),
		Sex:         Sex(strings.ToLower(strings.TrimSpace(in.Sex))),
		BirthDate:   in.BirthDate,
		Microchip:   strings.TrimSpace(in.Microchip),
		Notes:       strings.TrimSpace(in.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if p.Sex == "" {
		p.Sex = SexUnknown
	}
	if err := s.validate(p); err != nil {
		return Pet{}, err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

// ListByOwner ordena por nombre para una salida estable.
func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	items, err := s.repo.ListByOwner(ctx, ownerUserID)
	if err != nil {
		s.log.Error("list pets failed", map[string]any{"owner": ownerUserID, "err": err.Error()})
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})
	return items, nil
}

// PatchBirthDate distingue "no enviado" de "null" (limpiar).
type PatchBirthDate struct {
	Present bool
	Value   *datewindow.Date
}

type UpdateProfileInput struct {
	// nil = no tocar
	Name      *string
	Species   *string
	Breed     *string
	Sex       *string
	BirthDate PatchBirthDate
	Microchip *string
	Notes     *string
}

// UpdateProfile aplica un PATCH. Solo el dueño puede editar.
func (s *Service) UpdateProfile(ctx context.Context, petID, actorUserID string, in UpdateProfileInput) (Pet, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, err
	}
	if p.OwnerUserID != actorUserID {
		return Pet{}, ErrForbidden
	}

	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Species != nil {
		p.Species = Species(strings.ToLower(strings.TrimSpace(*in.Species)))
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Sex != nil {
		p.Sex = Sex(strings.ToLower(strings.TrimSpace(*in.Sex)))
	}
	if in.BirthDate.Present {
		p.BirthDate = in.BirthDate.Value
	}
	if in.Microchip != nil {
		p.Microchip = strings.TrimSpace(*in.Microchip)
	}
	if in.Notes != nil {
		p.Notes = strings.TrimSpace(*in.Notes)
	}

	if err := s.validate(p); err != nil {
		return Pet{}, err
	}
	p.UpdatedAt = s.clock.Current()

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, petID, actorUserID string) error {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return err
	}
	if p.OwnerUserID != actorUserID {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, p.ID)
}

func (s *Service) validate(p Pet) error {
	if p.Name == "" {
		return fmt.Errorf("%w: name required", ErrInvalidInput)
	}
	if !p.Species.Valid() {
		return fmt.Errorf("%w: unknown species %q", ErrInvalidInput, p.Species)
	}
	if !p.Sex.Valid() {
		return fmt.Errorf("%w: unknown sex %q", ErrInvalidInput, p.Sex)
	}
	if p.BirthDate != nil && p.BirthDate.After(s.clock.Today()) {
		return fmt.Errorf("%w: birth_date in the future", ErrInvalidInput)
	}
	return nil
}
