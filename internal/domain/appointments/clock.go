package appointments

import (
	"strings"
	"time"
)

var clockLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04 PM",
	"3:04PM",
	"3:04 pm",
	"3:04pm",
	"3 PM",
	"3PM",
	"3 pm",
	"3pm",
}

// ParseClock interpreta el campo libre Time. ok=false si no se reconoce
// (la cita se trata entonces como "solo fecha").
func ParseClock(s string) (hour, minute int, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, false
	}
	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.Hour(), t.Minute(), true
		}
	}
	return 0, 0, false
}

// StartsAt es el instante de la cita en loc: fecha + hora de reloj si se pudo
// parsear, si no, el inicio del día.
func StartsAt(a Appointment, loc *time.Location) time.Time {
	h, m, ok := ParseClock(a.Time)
	if !ok {
		return a.Date.In(loc)
	}
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(a.Date.Year(), a.Date.Month(), a.Date.Day(), h, m, 0, 0, loc)
}

func hasClock(a Appointment) bool {
	_, _, ok := ParseClock(a.Time)
	return ok
}
