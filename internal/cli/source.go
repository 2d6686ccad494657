package cli

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pet-record-guardian/internal/domain/appointments"
	"pet-record-guardian/internal/domain/datewindow"
	"pet-record-guardian/internal/domain/medicalrecords"
	"pet-record-guardian/internal/domain/medications"
	"pet-record-guardian/internal/platform/httpclient"
	"pet-record-guardian/internal/platform/logger"

	"golang.org/x/sync/errgroup"
)

// Fetcher es lo que los comandos necesitan leer del API.
type Fetcher interface {
	PetIDs(ctx context.Context) ([]string, error)
	Appointments(ctx context.Context, petIDs []string) ([]appointments.Appointment, error)
	Appointment(ctx context.Context, id string) (appointments.Appointment, error)
	Medications(ctx context.Context, petIDs []string) ([]medications.Medication, error)
	MedicalRecords(ctx context.Context, petIDs []string) ([]medicalrecords.MedicalRecord, error)
}

// fetchConcurrency limita las lecturas por mascota en paralelo.
const fetchConcurrency = 4

// Source lee filas crudas del API y las convierte a tipos de dominio.
// Las filas con fechas inválidas se descartan con un warn.
type Source struct {
	http *httpclient.Client
	log  logger.Logger
}

type SourceConfig struct {
	BaseURL string
	UserID  string // X-Debug-User-ID (modo dev)
	Token   string // Bearer
	Timeout time.Duration
	Log     logger.Logger

	Transport http.RoundTripper
}

func NewSource(cfg SourceConfig) (*Source, error) {
	log := cfg.Log
	if log == nil {
		log = logger.Nop()
	}

	opts := []httpclient.Option{
		httpclient.WithLogger(log),
		httpclient.WithTransport(cfg.Transport),
		httpclient.WithHeader("X-Debug-User-ID", strings.TrimSpace(cfg.UserID)),
	}
	if tok := strings.TrimSpace(cfg.Token); tok != "" {
		opts = append(opts, httpclient.WithHeader("Authorization", "Bearer "+tok))
	}

	hc, err := httpclient.New(cfg.BaseURL, cfg.Timeout, opts...)
	if err != nil {
		return nil, err
	}
	return &Source{http: hc, log: log.With(map[string]any{"component": "source"})}, nil
}

type rawPet struct {
	ID string `json:"id"`
}

type rawAppointment struct {
	ID                string `json:"id"`
	PetID             string `json:"pet_id"`
	Date              string `json:"date"`
	Time              string `json:"time"`
	Reason            string `json:"reason"`
	Notes             string `json:"notes"`
	Status            string `json:"status"`
	IsRecurring       bool   `json:"is_recurring"`
	RecurrencePattern string `json:"recurrence_pattern"`
	RecurrenceEndDate string `json:"recurrence_end_date"`
}

type rawMedication struct {
	ID         string `json:"id"`
	PetID      string `json:"pet_id"`
	Name       string `json:"name"`
	Dosage     string `json:"dosage"`
	Frequency  string `json:"frequency"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	RefillDate string `json:"refill_date"`
	Active     bool   `json:"active"`
	Notes      string `json:"notes"`
}

type rawRecord struct {
	ID              string `json:"id"`
	PetID           string `json:"pet_id"`
	VisitDate       string `json:"visit_date"`
	NextAppointment string `json:"next_appointment"`
	RecordType      string `json:"record_type"`
	Diagnosis       string `json:"diagnosis"`
	Treatment       string `json:"treatment"`
	Veterinarian    string `json:"veterinarian"`
	Notes           string `json:"notes"`
}

func (s *Source) PetIDs(ctx context.Context) ([]string, error) {
	var pets []rawPet
	if err := s.http.GetJSON(ctx, "/pets", nil, &pets); err != nil {
		return nil, fmt.Errorf("list pets: %w", err)
	}
	ids := make([]string, 0, len(pets))
	for _, p := range pets {
		ids = append(ids, p.ID)
	}
	return ids, nil
}

func (s *Source) Appointments(ctx context.Context, petIDs []string) ([]appointments.Appointment, error) {
	rows, err := fanOut(ctx, petIDs, func(ctx context.Context, petID string) ([]rawAppointment, error) {
		var out []rawAppointment
		err := s.http.GetJSON(ctx, "/pets/"+url.PathEscape(petID)+"/appointments", nil, &out)
		return out, err
	})
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	out := make([]appointments.Appointment, 0, len(rows))
	for _, raw := range rows {
		a, err := toAppointment(raw)
		if err != nil {
			s.log.Warn("skipping appointment", map[string]any{"appointment_id": raw.ID, "err": err.Error()})
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (s *Source) Appointment(ctx context.Context, id string) (appointments.Appointment, error) {
	var raw rawAppointment
	if err := s.http.GetJSON(ctx, "/appointments/"+url.PathEscape(id), nil, &raw); err != nil {
		return appointments.Appointment{}, fmt.Errorf("get appointment: %w", err)
	}
	return toAppointment(raw)
}

func (s *Source) Medications(ctx context.Context, petIDs []string) ([]medications.Medication, error) {
	rows, err := fanOut(ctx, petIDs, func(ctx context.Context, petID string) ([]rawMedication, error) {
		var out []rawMedication
		err := s.http.GetJSON(ctx, "/pets/"+url.PathEscape(petID)+"/medications", nil, &out)
		return out, err
	})
	if err != nil {
		return nil, fmt.Errorf("list medications: %w", err)
	}

	out := make([]medications.Medication, 0, len(rows))
	for _, raw := range rows {
		m, err := toMedication(raw)
		if err != nil {
			s.log.Warn("skipping medication", map[string]any{"medication_id": raw.ID, "err": err.Error()})
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (s *Source) MedicalRecords(ctx context.Context, petIDs []string) ([]medicalrecords.MedicalRecord, error) {
	rows, err := fanOut(ctx, petIDs, func(ctx context.Context, petID string) ([]rawRecord, error) {
		var out []rawRecord
		q := url.Values{"limit": []string{"200"}}
		err := s.http.GetJSON(ctx, "/pets/"+url.PathEscape(petID)+"/medical-records", q, &out)
		return out, err
	})
	if err != nil {
		return nil, fmt.Errorf("list medical records: %w", err)
	}

	out := make([]medicalrecords.MedicalRecord, 0, len(rows))
	for _, raw := range rows {
		r, err := toRecord(raw)
		if err != nil {
			s.log.Warn("skipping medical record", map[string]any{"record_id": raw.ID, "err": err.Error()})
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// fanOut llama fetch por mascota en paralelo y concatena respetando el orden de petIDs.
func fanOut[T any](ctx context.Context, petIDs []string, fetch func(context.Context, string) ([]T, error)) ([]T, error) {
	results := make([][]T, len(petIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for i, petID := range petIDs {
		g.Go(func() error {
			rows, err := fetch(gctx, petID)
			if err != nil {
				return fmt.Errorf("pet %s: %w", petID, err)
			}
			results[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]T, 0)
	for _, rows := range results {
		out = append(out, rows...)
	}
	return out, nil
}

func toAppointment(raw rawAppointment) (appointments.Appointment, error) {
	date, err := datewindow.ParseDate(raw.Date)
	if err != nil {
		return appointments.Appointment{}, fmt.Errorf("date: %w", err)
	}
	end, err := datewindow.ParseOptionalDate(raw.RecurrenceEndDate)
	if err != nil {
		return appointments.Appointment{}, fmt.Errorf("recurrence_end_date: %w", err)
	}
	status := appointments.Status(strings.ToLower(strings.TrimSpace(raw.Status)))
	if status == "" {
		status = appointments.StatusScheduled
	}
	return appointments.Appointment{
		ID:                raw.ID,
		PetID:             raw.PetID,
		Date:              date,
		Time:              raw.Time,
		Reason:            raw.Reason,
		Notes:             raw.Notes,
		Status:            status,
		IsRecurring:       raw.IsRecurring,
		RecurrencePattern: appointments.RecurrencePattern(raw.RecurrencePattern),
		RecurrenceEndDate: end,
	}, nil
}

func toMedication(raw rawMedication) (medications.Medication, error) {
	start, err := datewindow.ParseDate(raw.StartDate)
	if err != nil {
		return medications.Medication{}, fmt.Errorf("start_date: %w", err)
	}
	end, err := datewindow.ParseOptionalDate(raw.EndDate)
	if err != nil {
		return medications.Medication{}, fmt.Errorf("end_date: %w", err)
	}
	refill, err := datewindow.ParseOptionalDate(raw.RefillDate)
	if err != nil {
		return medications.Medication{}, fmt.Errorf("refill_date: %w", err)
	}
	return medications.Medication{
		ID:         raw.ID,
		PetID:      raw.PetID,
		Name:       raw.Name,
		Dosage:     raw.Dosage,
		Frequency:  raw.Frequency,
		StartDate:  start,
		EndDate:    end,
		RefillDate: refill,
		Active:     raw.Active,
		Notes:      raw.Notes,
	}, nil
}

func toRecord(raw rawRecord) (medicalrecords.MedicalRecord, error) {
	visit, err := datewindow.ParseDate(raw.VisitDate)
	if err != nil {
		return medicalrecords.MedicalRecord{}, fmt.Errorf("visit_date: %w", err)
	}
	next, err := datewindow.ParseOptionalDate(raw.NextAppointment)
	if err != nil {
		return medicalrecords.MedicalRecord{}, fmt.Errorf("next_appointment: %w", err)
	}
	return medicalrecords.MedicalRecord{
		ID:              raw.ID,
		PetID:           raw.PetID,
		VisitDate:       visit,
		NextAppointment: next,
		RecordType:      medicalrecords.RecordType(raw.RecordType),
		Diagnosis:       raw.Diagnosis,
		Treatment:       raw.Treatment,
		Veterinarian:    raw.Veterinarian,
		Notes:           raw.Notes,
	}, nil
}
