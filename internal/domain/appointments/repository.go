package appointments

import (
	"context"

	"pet-record-guardian/internal/domain/datewindow"
)

type Repository interface {
	Create(ctx context.Context, a Appointment) error
	Update(ctx context.Context, a Appointment) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Appointment, error)
	List(ctx context.Context, filter ListFilter) ([]Appointment, error)
}

// ListFilter: PetIDs vacío => ninguna cita (no "todas").
// From/To filtran por Date, inclusivos.
type ListFilter struct {
	PetIDs []string
	From   *datewindow.Date
	To     *datewindow.Date
}

// Matches aplica el filtro en memoria (adapters in-memory y tests).
func (f ListFilter) Matches(a Appointment) bool {
	found := false
	for _, id := range f.PetIDs {
		if id == a.PetID {
			found = true
			break
		}
	}
	if !found {
		return false
	}
	return datewindow.InRange(a.Date, f.From, f.To)
}
