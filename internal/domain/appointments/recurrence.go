package appointments

import "pet-record-guardian/internal/domain/datewindow"

// DefaultOccurrenceLimit acota las expansiones sin límite explícito.
const DefaultOccurrenceLimit = 52

// SuggestRecurrenceEnd devuelve la fecha de fin sugerida para pre-cargar el formulario.
// Es solo una sugerencia: no persiste nada ni genera filas.
func SuggestRecurrenceEnd(start datewindow.Date, pattern RecurrencePattern) *datewindow.Date {
	if start.IsZero() {
		return nil
	}

	var end datewindow.Date
	switch pattern {
	case RecurrenceDaily:
		end = start.AddDays(14)
	case RecurrenceWeekly:
		end = start.AddDays(12 * 7)
	case RecurrenceMonthly:
		end = start.AddMonths(6)
	case RecurrenceYearly:
		end = start.AddYears(2)
	default:
		return nil
	}
	return &end
}

// ResolveRecurrenceEnd mantiene la fecha actual del formulario salvo que quede
// antes del inicio (o no exista); en ese caso recalcula la sugerencia.
func ResolveRecurrenceEnd(start datewindow.Date, pattern RecurrencePattern, current *datewindow.Date) *datewindow.Date {
	if current != nil && !current.IsZero() && !current.Before(start) {
		c := *current
		return &c
	}
	return SuggestRecurrenceEnd(start, pattern)
}

// Occurrences expande (solo para mostrar) las fechas de una cita recurrente
// dentro de [from, to]. to cero = sin tope, queda acotado por limit.
// Cada ocurrencia se calcula desde la fecha original (31-ene mensual => 29-feb, 31-mar...).
func Occurrences(a Appointment, from, to datewindow.Date, limit int) []datewindow.Date {
	if limit <= 0 {
		limit = DefaultOccurrenceLimit
	}
	if a.Date.IsZero() {
		return nil
	}

	upper := to
	if a.IsRecurring && a.RecurrenceEndDate != nil && !a.RecurrenceEndDate.IsZero() {
		if upper.IsZero() || a.RecurrenceEndDate.Before(upper) {
			upper = *a.RecurrenceEndDate
		}
	}

	within := func(d datewindow.Date) bool {
		if !from.IsZero() && d.Before(from) {
			return false
		}
		return upper.IsZero() || !d.After(upper)
	}

	if !a.IsRecurring || !a.RecurrencePattern.Valid() {
		if within(a.Date) {
			return []datewindow.Date{a.Date}
		}
		return nil
	}

	out := make([]datewindow.Date, 0)
	for k := firstStep(a, from); len(out) < limit; k++ {
		d := nthOccurrence(a.Date, a.RecurrencePattern, k)
		if !upper.IsZero() && d.After(upper) {
			break
		}
		if within(d) {
			out = append(out, d)
		}
	}
	return out
}

func nthOccurrence(start datewindow.Date, pattern RecurrencePattern, k int) datewindow.Date {
	switch pattern {
	case RecurrenceDaily:
		return start.AddDays(k)
	case RecurrenceWeekly:
		return start.AddDays(7 * k)
	case RecurrenceMonthly:
		return start.AddMonths(k)
	default:
		return start.AddYears(k)
	}
}

// firstStep salta directo cerca de from para patrones de paso fijo.
func firstStep(a Appointment, from datewindow.Date) int {
	if from.IsZero() || !a.Date.Before(from) {
		return 0
	}
	days := a.Date.DaysUntil(from)
	switch a.RecurrencePattern {
	case RecurrenceDaily:
		return days
	case RecurrenceWeekly:
		return days / 7
	default:
		return 0
	}
}
