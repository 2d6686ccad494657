package medicalrecords

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
	ErrNotFound     = errors.New("medical record not found")
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
		log:   log.With(map[string]any{"module": "medicalrecords"}),
	}
}

type CreateInput struct {
	VisitDate       datewindow.Date
	NextAppointment *datewindow.Date
	RecordType      RecordType
	Diagnosis       string
	Treatment       string
	Veterinarian    string
	Notes           string
}

func (s *Service) Create(ctx context.Context, petID string, in CreateInput) (MedicalRecord, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return MedicalRecord{}, fmt.Errorf("%w: pet id required", ErrInvalidInput)
	}
	if in.VisitDate.IsZero() {
		return MedicalRecord{}, fmt.Errorf("%w: visit_date required", ErrInvalidInput)
	}

	t := normalizeType(in.RecordType)
	if t == "" {
		t = RecordTypeCheckup
	}
	if !t.Valid() {
		return MedicalRecord{}, fmt.Errorf("%w: unknown record_type %q", ErrInvalidInput, in.RecordType)
	}

	if in.NextAppointment != nil && in.NextAppointment.Before(in.VisitDate) {
		return MedicalRecord{}, fmt.Errorf("%w: next_appointment must not precede visit_date", ErrInvalidInput)
	}

	now := s.clock.Current()
	rec := MedicalRecord{
		ID:              uuid.NewString(),
		PetID:           petID,
		VisitDate:       in.VisitDate,
		NextAppointment: in.NextAppointment,
		RecordType:      t,
		Diagnosis:       strings.TrimSpace(in.Diagnosis),
		Treatment:       strings.TrimSpace(in.Treatment),
		Veterinarian:    strings.TrimSpace(in.Veterinarian),
		Notes:           strings.TrimSpace(in.Notes),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return MedicalRecord{}, err
	}
	return rec, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (MedicalRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return MedicalRecord{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

// List devuelve los registros ordenados por visit_date descendente.
// Los registros sin fecha válida se descartan (y se loguean).
func (s *Service) List(ctx context.Context, filter ListFilter) ([]MedicalRecord, error) {
	if len(filter.PetIDs) == 0 {
		return []MedicalRecord{}, nil
	}

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		s.log.Error("list medical records failed", map[string]any{"pets": len(filter.PetIDs), "err": err.Error()})
		return nil, err
	}

	out := make([]MedicalRecord, 0, len(items))
	for _, rec := range items {
		if rec.VisitDate.IsZero() {
			s.log.Warn("skipping medical record without valid visit date", map[string]any{"record_id": rec.ID, "pet_id": rec.PetID})
			continue
		}
		out = append(out, rec)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].VisitDate.After(out[j].VisitDate)
	})

	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}
