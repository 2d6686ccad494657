package medications

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"pet-record-guardian/internal/domain/datewindow"
	"pet-record-guardian/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("medication not found")
	ErrLogNotFound  = errors.New("medication log not found")
)

type Service struct {
	repo  Repository
	logs  LogRepository
	clock datewindow.Clock
	log   logger.Logger

	refillThresholdDays int
}

func NewService(repo Repository, logs LogRepository, clock datewindow.Clock, log logger.Logger, refillThresholdDays int) *Service {
	if log == nil {
		log = logger.Nop()
	}
	if refillThresholdDays < 0 {
		refillThresholdDays = DefaultRefillThresholdDays
	}
	return &Service{
		repo:                repo,
		logs:                logs,
		clock:               clock,
		log:                 log.With(map[string]any{"module": "medications"}),
		refillThresholdDays: refillThresholdDays,
	}
}

// View es una medicación con sus estados derivados al momento de la lectura.
type View struct {
	Medication  Medication
	IsDue       bool
	NeedsRefill bool
	Label       StatusLabel
}

type CreateInput struct {
	Name       string
	Dosage     string
	Frequency  string
	StartDate  datewindow.Date
	EndDate    *datewindow.Date
	RefillDate *datewindow.Date
	Active     *bool // nil => true
	Notes      string
}

type OptionalDate struct {
	Present bool
	Value   *datewindow.Date
}

type UpdateInput struct {
	Name       *string
	Dosage     *string
	Frequency  *string
	StartDate  *datewindow.Date
	EndDate    OptionalDate
	RefillDate OptionalDate
	Active     *bool
	Notes      *string
}

type LogInput struct {
	GivenAt    time.Time // cero => ahora
	GivenBy    string
	Skipped    bool
	SkipReason string
	Notes      string
}

type LogCorrection struct {
	GivenAt    *time.Time
	GivenBy    *string
	Skipped    *bool
	SkipReason *string
	Notes      *string
}

func (s *Service) Create(ctx context.Context, petID string, in CreateInput) (Medication, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return Medication{}, fmt.Errorf("%w: pet id required", ErrInvalidInput)
	}

	active := true
	if in.Active != nil {
		active = *in.Active
	}

	now := s.clock.Current()
	m := Medication{
		ID:         uuid.NewString(),
		PetID:      petID,
		Name:       strings.TrimSpace(in.Name),
		Dosage:     strings.TrimSpace(in.Dosage),
		Frequency:  strings.TrimSpace(in.Frequency),
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
		RefillDate: in.RefillDate,
		Active:     active,
		Notes:      strings.TrimSpace(in.Notes),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := validateMedication(m); err != nil {
		return Medication{}, err
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return Medication{}, err
	}
	return m, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Medication, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Medication{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Medication, error) {
	m, err := s.GetByID(ctx, id)
	if err != nil {
		return Medication{}, err
	}

	if in.Name != nil {
		m.Name = strings.TrimSpace(*in.Name)
	}
	if in.Dosage != nil {
		m.Dosage = strings.TrimSpace(*in.Dosage)
	}
	if in.Frequency != nil {
		m.Frequency = strings.TrimSpace(*in.Frequency)
	}
	if in.StartDate != nil {
		m.StartDate = *in.StartDate
	}
	if in.EndDate.Present {
		m.EndDate = in.EndDate.Value
	}
	if in.RefillDate.Present {
		m.RefillDate = in.RefillDate.Value
	}
	if in.Active != nil {
		m.Active = *in.Active
	}
	if in.Notes != nil {
		m.Notes = strings.TrimSpace(*in.Notes)
	}

	if err := validateMedication(m); err != nil {
		return Medication{}, err
	}
	m.UpdatedAt = s.clock.Current()

	if err := s.repo.Update(ctx, m); err != nil {
		return Medication{}, err
	}
	return m, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListByPet(ctx context.Context, petID string) ([]Medication, error) {
	items, err := s.repo.ListByPet(ctx, petID)
	if err != nil {
		s.log.Error("list medications failed", map[string]any{"pet_id": petID, "err": err.Error()})
		return nil, err
	}

	out := make([]Medication, 0, len(items))
	for _, m := range items {
		if m.StartDate.IsZero() {
			s.log.Warn("skipping medication without valid start date", map[string]any{"medication_id": m.ID, "pet_id": m.PetID})
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

// View deriva is_due / needs_refill / label con el reloj del service.
func (s *Service) View(m Medication) View {
	today := s.clock.Today()
	return View{
		Medication:  m,
		IsDue:       IsDue(m, today),
		NeedsRefill: NeedsRefill(m, today, s.refillThresholdDays),
		Label:       Label(m, today, s.refillThresholdDays),
	}
}

// Refills junta las medicaciones que necesitan reposición en varias mascotas,
// ordenadas por refill_date ascendente.
func (s *Service) Refills(ctx context.Context, petIDs []string) ([]View, error) {
	out := make([]View, 0)
	for _, petID := range petIDs {
		items, err := s.ListByPet(ctx, petID)
		if err != nil {
			return nil, err
		}
		for _, m := range items {
			v := s.View(m)
			if v.NeedsRefill {
				out = append(out, v)
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Medication.RefillDate.Before(*out[j].Medication.RefillDate)
	})
	return out, nil
}

func (s *Service) RecordLog(ctx context.Context, medicationID string, in LogInput) (Log, error) {
	m, err := s.GetByID(ctx, medicationID)
	if err != nil {
		return Log{}, err
	}

	now := s.clock.Current()
	givenAt := in.GivenAt
	if givenAt.IsZero() {
		givenAt = now
	}

	l := Log{
		ID:           uuid.NewString(),
		MedicationID: m.ID,
		GivenAt:      givenAt,
		GivenBy:      strings.TrimSpace(in.GivenBy),
		Skipped:      in.Skipped,
		SkipReason:   strings.TrimSpace(in.SkipReason),
		Notes:        strings.TrimSpace(in.Notes),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := validateLog(l); err != nil {
		return Log{}, err
	}

	if err := s.logs.Create(ctx, l); err != nil {
		return Log{}, err
	}
	return l, nil
}

// CorrectLog es la única edición permitida sobre el historial de tomas.
func (s *Service) CorrectLog(ctx context.Context, medicationID, logID string, in LogCorrection) (Log, error) {
	l, err := s.logs.GetByID(ctx, strings.TrimSpace(logID))
	if err != nil {
		return Log{}, err
	}
	if l.MedicationID != medicationID {
		return Log{}, ErrLogNotFound
	}

	if in.GivenAt != nil {
		l.GivenAt = *in.GivenAt
	}
	if in.GivenBy != nil {
		l.GivenBy = strings.TrimSpace(*in.GivenBy)
	}
	if in.Skipped != nil {
		l.Skipped = *in.Skipped
	}
	if in.SkipReason != nil {
		l.SkipReason = strings.TrimSpace(*in.SkipReason)
	}
	if in.Notes != nil {
		l.Notes = strings.TrimSpace(*in.Notes)
	}
	if !l.Skipped {
		l.SkipReason = ""
	}
	if err := validateLog(l); err != nil {
		return Log{}, err
	}
	l.UpdatedAt = s.clock.Current()

	if err := s.logs.Update(ctx, l); err != nil {
		return Log{}, err
	}
	return l, nil
}

// ListLogs devuelve el historial, más reciente primero.
func (s *Service) ListLogs(ctx context.Context, medicationID string) ([]Log, error) {
	items, err := s.logs.ListByMedication(ctx, medicationID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].GivenAt.After(items[j].GivenAt)
	})
	return items, nil
}

func validateMedication(m Medication) error {
	if m.Name == "" {
		return fmt.Errorf("%w: name required", ErrInvalidInput)
	}
	if m.StartDate.IsZero() {
		return fmt.Errorf("%w: start_date required", ErrInvalidInput)
	}
	if m.EndDate != nil && m.EndDate.Before(m.StartDate) {
		return fmt.Errorf("%w: end_date must not precede start_date", ErrInvalidInput)
	}
	return nil
}

func validateLog(l Log) error {
	if l.GivenAt.IsZero() {
		return fmt.Errorf("%w: given_at required", ErrInvalidInput)
	}
	if !l.Skipped && l.SkipReason != "" {
		return fmt.Errorf("%w: skip_reason only applies to skipped doses", ErrInvalidInput)
	}
	return nil
}
