package medications

import (
	"time"

	"pet-record-guardian/internal/domain/datewindow"
)

type Medication struct {
	ID    string
	PetID string

	Name      string
	Dosage    string // "2 ml"
	Frequency string // texto libre: "cada 12h"

	StartDate  datewindow.Date
	EndDate    *datewindow.Date
	RefillDate *datewindow.Date

	// Active lo define el usuario; no se deriva.
	Active bool

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Log registra una toma (o una toma salteada). Append-only salvo correcciones.
type Log struct {
	ID           string
	MedicationID string

	GivenAt time.Time
	GivenBy string

	Skipped    bool
	SkipReason string

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}
