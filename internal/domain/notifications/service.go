package notifications

import (
	"context"

	"pet-record-guardian/internal/domain/appointments"
	"pet-record-guardian/internal/domain/datewindow"
	"pet-record-guardian/internal/platform/logger"
)

type AppointmentLister interface {
	List(ctx context.Context, filter appointments.ListFilter) ([]appointments.Appointment, error)
}

type Service struct {
	appts     AppointmentLister
	clock     datewindow.Clock
	log       logger.Logger
	lookahead int
}

func NewService(appts AppointmentLister, clock datewindow.Clock, log logger.Logger, lookaheadDays int) *Service {
	if log == nil {
		log = logger.Nop()
	}
	if lookaheadDays < 0 {
		lookaheadDays = appointments.DefaultLookaheadDays
	}
	return &Service{
		appts:     appts,
		clock:     clock,
		log:       log.With(map[string]any{"module": "notifications"}),
		lookahead: lookaheadDays,
	}
}

// DefaultLookahead es la ventana configurada para el feed.
func (s *Service) DefaultLookahead() int { return s.lookahead }

// Feed trae las citas hasta today+max(lookahead, 1) y arma las notificaciones.
// lookaheadDays < 0 usa la ventana configurada. Si la lectura falla no se arma nada.
func (s *Service) Feed(ctx context.Context, petIDs []string, lookaheadDays int) ([]Notification, error) {
	if lookaheadDays < 0 {
		lookaheadDays = s.lookahead
	}

	now := s.clock.Current()
	// tomorrow se emite siempre, aun con lookahead 0
	fetchDays := lookaheadDays
	if fetchDays < 1 {
		fetchDays = 1
	}
	to := datewindow.Today(now).AddDays(fetchDays)

	items, err := s.appts.List(ctx, appointments.ListFilter{PetIDs: petIDs, To: &to})
	if err != nil {
		s.log.Error("notifications fetch failed", map[string]any{"err": err.Error()})
		return nil, err
	}

	return Build(items, now, lookaheadDays), nil
}
