package cli

import (
	"context"

	"pet-record-guardian/internal/domain/appointments"
	"pet-record-guardian/internal/domain/medicalrecords"
)

// appointmentLister adapta un Fetcher a los services de calendar y notifications,
// así petctl deriva los estados con el mismo motor que el API.
type appointmentLister struct{ src Fetcher }

func (l appointmentLister) List(ctx context.Context, filter appointments.ListFilter) ([]appointments.Appointment, error) {
	items, err := l.src.Appointments(ctx, filter.PetIDs)
	if err != nil {
		return nil, err
	}
	out := make([]appointments.Appointment, 0, len(items))
	for _, a := range items {
		if filter.Matches(a) {
			out = append(out, a)
		}
	}
	return out, nil
}

type recordLister struct{ src Fetcher }

func (l recordLister) List(ctx context.Context, filter medicalrecords.ListFilter) ([]medicalrecords.MedicalRecord, error) {
	items, err := l.src.MedicalRecords(ctx, filter.PetIDs)
	if err != nil {
		return nil, err
	}
	out := make([]medicalrecords.MedicalRecord, 0, len(items))
	for _, rec := range items {
		if filter.Matches(rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}
