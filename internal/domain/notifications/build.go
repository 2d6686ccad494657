package notifications

import (
	"sort"
	"strings"
	"time"

	"pet-record-guardian/internal/domain/appointments"
	"pet-record-guardian/internal/domain/datewindow"
)

type Kind string

const (
	KindOverdue  Kind = "overdue"
	KindUpcoming Kind = "upcoming"
)

// Notification es efímera: se recalcula en cada lectura y no se persiste.
type Notification struct {
	ID            string
	Kind          Kind
	Title         string
	Description   string
	Date          datewindow.Date
	Time          string
	PetID         string
	AppointmentID string
	DisplayStatus appointments.DisplayStatus

	startsAt time.Time
}

// Build arma el feed a partir de las citas y now:
//   - solo citas que clasifican como overdue/today/tomorrow/upcoming;
//   - primero todas las overdue, después el resto; dentro de cada grupo por fecha (y hora) ascendente;
//   - id "<kind>-<appointmentId>", sin duplicados (gana la primera).
func Build(appts []appointments.Appointment, now time.Time, lookaheadDays int) []Notification {
	seen := make(map[string]struct{}, len(appts))
	out := make([]Notification, 0)

	for _, a := range appts {
		if a.Date.IsZero() {
			continue
		}

		display := appointments.ClassifyWithin(a, now, lookaheadDays)
		var kind Kind
		switch display {
		case appointments.DisplayOverdue:
			kind = KindOverdue
		case appointments.DisplayToday, appointments.DisplayTomorrow, appointments.DisplayUpcoming:
			kind = KindUpcoming
		default:
			continue
		}

		id := string(kind) + "-" + a.ID
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		out = append(out, Notification{
			ID:            id,
			Kind:          kind,
			Title:         title(display),
			Description:   description(a),
			Date:          a.Date,
			Time:          strings.TrimSpace(a.Time),
			PetID:         a.PetID,
			AppointmentID: a.ID,
			DisplayStatus: display,
			startsAt:      appointments.StartsAt(a, now.Location()),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		oi, oj := out[i].Kind == KindOverdue, out[j].Kind == KindOverdue
		if oi != oj {
			return oi
		}
		return out[i].startsAt.Before(out[j].startsAt)
	})
	return out
}

func title(d appointments.DisplayStatus) string {
	switch d {
	case appointments.DisplayOverdue:
		return "Overdue appointment"
	case appointments.DisplayToday:
		return "Appointment today"
	case appointments.DisplayTomorrow:
		return "Appointment tomorrow"
	default:
		return "Upcoming appointment"
	}
}

func description(a appointments.Appointment) string {
	reason := strings.TrimSpace(a.Reason)
	if reason == "" {
		reason = "Vet appointment"
	}
	when := a.Date.String()
	if t := strings.TrimSpace(a.Time); t != "" {
		when += " " + t
	}
	return reason + " on " + when
}
