package datewindow

import "time"

// Window es la clase de una fecha respecto a "hoy".
type Window string

const (
	WindowPast       Window = "past"
	WindowToday      Window = "today"
	WindowTomorrow   Window = "tomorrow"
	WindowWithinDays Window = "within_days"
	WindowFuture     Window = "future"
)

// Today es el día calendario de now en la location de now.
func Today(now time.Time) Date {
	return DateOf(now)
}

// Classify compara por día calendario (año/mes/día), nunca por deltas de milisegundos.
// withinDays cubre today+2..today+n; si n < 1 todo lo posterior a mañana es future.
// d no puede ser cero: el caller filtra antes.
func Classify(now time.Time, d Date, n int) Window {
	today := Today(now)

	switch {
	case d.Equal(today):
		return WindowToday
	case d.Before(today):
		return WindowPast
	case d.Equal(today.AddDays(1)):
		return WindowTomorrow
	case !d.After(today.AddDays(n)):
		return WindowWithinDays
	default:
		return WindowFuture
	}
}

// InRange: from <= d <= to, con extremos opcionales.
func InRange(d Date, from, to *Date) bool {
	if from != nil && d.Before(*from) {
		return false
	}
	if to != nil && d.After(*to) {
		return false
	}
	return true
}
