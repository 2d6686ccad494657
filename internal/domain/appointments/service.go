package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pet-record-guardian/internal/domain/datewindow"
	"pet-record-guardian/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("appointment not found")
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
		log:   log.With(map[string]any{"module": "appointments"}),
	}
}

type CreateInput struct {
	Date              datewindow.Date
	Time              string
	Reason            string
	Notes             string
	Status            Status
	IsRecurring       bool
	RecurrencePattern RecurrencePattern
	RecurrenceEndDate *datewindow.Date
}

// OptionalDate distingue "no enviado" de "enviado como null" en un PATCH.
type OptionalDate struct {
	Present bool
	Value   *datewindow.Date
}

// UpdateInput: punteros nil = no tocar.
type UpdateInput struct {
	Date              *datewindow.Date
	Time              *string
	Reason            *string
	Notes             *string
	Status            *Status
	IsRecurring       *bool
	RecurrencePattern *RecurrencePattern
	RecurrenceEndDate OptionalDate
}

func (s *Service) Create(ctx context.Context, petID string, in CreateInput) (Appointment, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return Appointment{}, fmt.Errorf("%w: pet id required", ErrInvalidInput)
	}

	status := in.Status
	if status == "" {
		status = StatusScheduled
	}

	now := s.clock.Current()
	a := Appointment{
		ID:                uuid.NewString(),
		PetID:             petID,
		Date:              in.Date,
		Time:              strings.TrimSpace(in.Time),
		Reason:            strings.TrimSpace(in.Reason),
		Notes:             strings.TrimSpace(in.Notes),
		Status:            status,
		IsRecurring:       in.IsRecurring,
		RecurrencePattern: in.RecurrencePattern,
		RecurrenceEndDate: in.RecurrenceEndDate,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	a = normalize(a)
	if err := validateAppointment(a); err != nil {
		return Appointment{}, err
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Appointment{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

// Update aplica el patch completo y vuelve a validar. Last write wins.
// Nunca se llama automáticamente (p.ej. no marca "missed" por su cuenta).
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Appointment, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return Appointment{}, err
	}

	if in.Date != nil {
		a.Date = *in.Date
	}
	if in.Time != nil {
		a.Time = strings.TrimSpace(*in.Time)
	}
	if in.Reason != nil {
		a.Reason = strings.TrimSpace(*in.Reason)
	}
	if in.Notes != nil {
		a.Notes = strings.TrimSpace(*in.Notes)
	}
	if in.Status != nil {
		a.Status = *in.Status
	}
	if in.IsRecurring != nil {
		a.IsRecurring = *in.IsRecurring
	}
	if in.RecurrencePattern != nil {
		a.RecurrencePattern = *in.RecurrencePattern
	}
	if in.RecurrenceEndDate.Present {
		a.RecurrenceEndDate = in.RecurrenceEndDate.Value
	}

	a = normalize(a)
	if err := validateAppointment(a); err != nil {
		return Appointment{}, err
	}
	a.UpdatedAt = s.clock.Current()

	if err := s.repo.Update(ctx, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

// List devuelve las citas de las mascotas indicadas. Filas sin fecha válida
// se descartan con un warning: un registro roto no tumba toda la lista.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Appointment, error) {
	if len(filter.PetIDs) == 0 {
		return []Appointment{}, nil
	}

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		s.log.Error("list appointments failed", map[string]any{"err": err.Error()})
		return nil, err
	}

	out := make([]Appointment, 0, len(items))
	for _, a := range items {
		if a.Date.IsZero() {
			s.log.Warn("skipping appointment without valid date", map[string]any{"appointment_id": a.ID, "pet_id": a.PetID})
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

// DisplayStatus clasifica con el reloj del service.
func (s *Service) DisplayStatus(a Appointment) DisplayStatus {
	return Classify(a, s.clock.Current())
}

func (s *Service) Occurrences(ctx context.Context, id string, from, to datewindow.Date, limit int) (Appointment, []datewindow.Date, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return Appointment{}, nil, err
	}
	return a, Occurrences(a, from, to, limit), nil
}

func normalize(a Appointment) Appointment {
	a.RecurrencePattern = RecurrencePattern(strings.ToLower(strings.TrimSpace(string(a.RecurrencePattern))))
	a.Status = Status(strings.ToLower(strings.TrimSpace(string(a.Status))))
	if !a.IsRecurring {
		// una cita simple no arrastra metadata de recurrencia
		a.RecurrencePattern = ""
		a.RecurrenceEndDate = nil
	}
	if a.RecurrenceEndDate != nil && a.RecurrenceEndDate.IsZero() {
		a.RecurrenceEndDate = nil
	}
	return a
}

func validateAppointment(a Appointment) error {
	if a.Date.IsZero() {
		return fmt.Errorf("%w: date required", ErrInvalidInput)
	}
	if !a.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, a.Status)
	}
	if a.IsRecurring && !a.RecurrencePattern.Valid() {
		return fmt.Errorf("%w: recurrence_pattern required for recurring appointments", ErrInvalidInput)
	}
	if a.RecurrenceEndDate != nil && a.RecurrenceEndDate.Before(a.Date) {
		return fmt.Errorf("%w: recurrence_end_date must not precede date", ErrInvalidInput)
	}
	return nil
}
