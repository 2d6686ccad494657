package appointments

import (
	"time"

	"pet-record-guardian/internal/domain/datewindow"
)

// DefaultLookaheadDays es la ventana de "upcoming" cuando el caller no define otra.
const DefaultLookaheadDays = 7

// Classify deriva el estado de presentación con la ventana por defecto.
func Classify(a Appointment, now time.Time) DisplayStatus {
	return ClassifyWithin(a, now, DefaultLookaheadDays)
}

// ClassifyWithin deriva el estado de presentación. Reglas:
//   - completed/canceled/missed persistidos se reflejan tal cual;
//   - scheduled con fecha (+hora si existe) estrictamente antes de now => overdue;
//   - si no: today / tomorrow / upcoming (dentro de lookaheadDays) / scheduled (más allá).
//
// Nunca modifica a.Status.
func ClassifyWithin(a Appointment, now time.Time, lookaheadDays int) DisplayStatus {
	switch a.Status {
	case StatusCompleted:
		return DisplayCompleted
	case StatusCanceled:
		return DisplayCanceled
	case StatusMissed:
		return DisplayMissed
	}

	if a.Date.IsZero() {
		return DisplayScheduled
	}

	if isOverdue(a, now) {
		return DisplayOverdue
	}

	switch datewindow.Classify(now, a.Date, lookaheadDays) {
	case datewindow.WindowToday:
		return DisplayToday
	case datewindow.WindowTomorrow:
		return DisplayTomorrow
	case datewindow.WindowWithinDays:
		return DisplayUpcoming
	default:
		return DisplayScheduled
	}
}

func isOverdue(a Appointment, now time.Time) bool {
	if hasClock(a) {
		return StartsAt(a, now.Location()).Before(now)
	}
	return a.Date.Before(datewindow.Today(now))
}
