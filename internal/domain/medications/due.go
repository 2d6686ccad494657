package medications

import "pet-record-guardian/internal/domain/datewindow"

// DefaultRefillThresholdDays: cuántos días antes de refill_date se avisa.
const DefaultRefillThresholdDays = 7

type StatusLabel string

const (
	LabelRefillSoon StatusLabel = "Refill Soon"
	LabelCompleted  StatusLabel = "Completed"
	LabelActive     StatusLabel = "Active"
)

// IsDue: activa, ya empezó y no terminó (end_date inclusive).
func IsDue(m Medication, today datewindow.Date) bool {
	if !m.Active || m.StartDate.IsZero() {
		return false
	}
	if m.StartDate.After(today) {
		return false
	}
	if m.EndDate != nil && !m.EndDate.IsZero() && m.EndDate.Before(today) {
		return false
	}
	return true
}

// NeedsRefill: activa y refill_date en [today, today+thresholdDays], ambos extremos inclusive.
// Un threshold negativo se trata como 0.
func NeedsRefill(m Medication, today datewindow.Date, thresholdDays int) bool {
	if !m.Active || m.RefillDate == nil || m.RefillDate.IsZero() {
		return false
	}
	if thresholdDays < 0 {
		thresholdDays = 0
	}
	refill := *m.RefillDate
	return !refill.Before(today) && !refill.After(today.AddDays(thresholdDays))
}

// Label: refill primero, después completed (end_date < today), si no active.
func Label(m Medication, today datewindow.Date, thresholdDays int) StatusLabel {
	if NeedsRefill(m, today, thresholdDays) {
		return LabelRefillSoon
	}
	if m.EndDate != nil && !m.EndDate.IsZero() && m.EndDate.Before(today) {
		return LabelCompleted
	}
	return LabelActive
}

// LabelOf usa el threshold por defecto.
func LabelOf(m Medication, today datewindow.Date) StatusLabel {
	return Label(m, today, DefaultRefillThresholdDays)
}
