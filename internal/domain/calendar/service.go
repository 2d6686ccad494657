package calendar

import (
	"context"
	"fmt"
	"time"

	"pet-record-guardian/internal/domain/appointments"
	"pet-record-guardian/internal/domain/datewindow"
	"pet-record-guardian/internal/domain/medicalrecords"
	"pet-record-guardian/internal/platform/logger"

	"golang.org/x/sync/errgroup"
)

type AppointmentLister interface {
	List(ctx context.Context, filter appointments.ListFilter) ([]appointments.Appointment, error)
}

type RecordLister interface {
	List(ctx context.Context, filter medicalrecords.ListFilter) ([]medicalrecords.MedicalRecord, error)
}

type Service struct {
	appts   AppointmentLister
	records RecordLister
	clock   datewindow.Clock
	log     logger.Logger
}

func NewService(appts AppointmentLister, records RecordLister, clock datewindow.Clock, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		appts:   appts,
		records: records,
		clock:   clock,
		log:     log.With(map[string]any{"module": "calendar"}),
	}
}

type MonthView struct {
	From datewindow.Date
	To   datewindow.Date
	Days map[string]DayBucket
}

// Month arma la vista de un mes. year/month en cero => mes actual del reloj.
func (s *Service) Month(ctx context.Context, petIDs []string, year int, month time.Month) (MonthView, error) {
	if year == 0 || month == 0 {
		today := s.clock.Today()
		year, month = today.Year(), today.Month()
	}
	if month < time.January || month > time.December {
		return MonthView{}, fmt.Errorf("invalid month %d", month)
	}

	from := datewindow.NewDate(year, month, 1)
	to := from.AddMonths(1).AddDays(-1)

	buckets, err := s.fetch(ctx, petIDs, from, to)
	if err != nil {
		return MonthView{}, err
	}
	return MonthView{From: from, To: to, Days: buckets}, nil
}

// Day devuelve el bucket de un día; ok=false si no hay nada ese día.
func (s *Service) Day(ctx context.Context, petIDs []string, d datewindow.Date) (DayBucket, bool, error) {
	buckets, err := s.fetch(ctx, petIDs, d, d)
	if err != nil {
		return DayBucket{}, false, err
	}
	b, ok := Lookup(buckets, d)
	return b, ok, nil
}

// fetch trae citas e historias en paralelo y espera ambas. Si una falla,
// el error se propaga y no se arma ningún bucket.
func (s *Service) fetch(ctx context.Context, petIDs []string, from, to datewindow.Date) (map[string]DayBucket, error) {
	var (
		appts   []appointments.Appointment
		records []medicalrecords.MedicalRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := s.appts.List(gctx, appointments.ListFilter{PetIDs: petIDs, From: &from, To: &to})
		if err != nil {
			return fmt.Errorf("list appointments: %w", err)
		}
		appts = items
		return nil
	})
	g.Go(func() error {
		items, err := s.records.List(gctx, medicalrecords.ListFilter{PetIDs: petIDs, From: &from, To: &to})
		if err != nil {
			return fmt.Errorf("list medical records: %w", err)
		}
		records = items
		return nil
	})
	if err := g.Wait(); err != nil {
		s.log.Error("calendar fetch failed", map[string]any{"from": from.String(), "to": to.String(), "err": err.Error()})
		return nil, err
	}

	return BucketByDay(appts, records), nil
}

// Now expone el reloj para clasificar citas en la respuesta.
func (s *Service) Now() time.Time {
	return s.clock.Current()
}
