package medicalrecords

import (
	"context"
	"strings"

	"pet-record-guardian/internal/domain/datewindow"
)

type Repository interface {
	Create(ctx context.Context, rec MedicalRecord) error
	GetByID(ctx context.Context, id string) (MedicalRecord, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]MedicalRecord, error)
}

// ListFilter filtra por visit_date. PetIDs vacío no devuelve nada.
type ListFilter struct {
	PetIDs []string
	Types  []RecordType
	From   *datewindow.Date
	To     *datewindow.Date
	Query  string
	Limit  int
}

// Matches lo usan los repos en memoria; postgres arma el WHERE equivalente.
func (f ListFilter) Matches(rec MedicalRecord) bool {
	if !containsString(f.PetIDs, rec.PetID) {
		return false
	}
	if len(f.Types) > 0 {
		found := false
		for _, t := range f.Types {
			if t == rec.RecordType {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if (f.From != nil || f.To != nil) && !rec.VisitDate.IsZero() && !datewindow.InRange(rec.VisitDate, f.From, f.To) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		hay := strings.ToLower(rec.Diagnosis + " " + rec.Treatment + " " + rec.Veterinarian + " " + rec.Notes)
		if !strings.Contains(hay, q) {
			return false
		}
	}
	return true
}

func containsString(items []string, v string) bool {
	for _, it := range items {
		if it == v {
			return true
		}
	}
	return false
}
