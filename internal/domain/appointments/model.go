package appointments

import (
	"time"

	"pet-record-guardian/internal/domain/datewindow"
)

// Appointment es una cita persistida. Una cita recurrente sigue siendo UNA fila:
// el patrón y la fecha de fin son metadata, no se materializan ocurrencias.
type Appointment struct {
	ID    string
	PetID string

	Date datewindow.Date
	Time string // texto libre ("15:30", "3:30 PM"); opcional

	Reason string
	Notes  string

	Status Status

	IsRecurring       bool
	RecurrencePattern RecurrencePattern // "" si no es recurrente
	RecurrenceEndDate *datewindow.Date

	CreatedAt time.Time
	UpdatedAt time.Time
}
