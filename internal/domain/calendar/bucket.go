package calendar

import (
	"sort"

	"pet-record-guardian/internal/domain/appointments"
	"pet-record-guardian/internal/domain/datewindow"
	"pet-record-guardian/internal/domain/medicalrecords"
)

// DayBucket agrupa lo que cae en un día calendario. Se calcula en cada lectura.
type DayBucket struct {
	Date           datewindow.Date
	Appointments   []appointments.Appointment
	MedicalRecords []medicalrecords.MedicalRecord
}

// BucketByDay indexa por "yyyy-MM-dd". Cada registro cae en el día de su propia
// fecha (appointment.Date, record.VisitDate); los que no tienen fecha se omiten.
// Dentro de un bucket se respeta el orden de entrada y nunca hay buckets vacíos.
func BucketByDay(appts []appointments.Appointment, records []medicalrecords.MedicalRecord) map[string]DayBucket {
	out := make(map[string]DayBucket)

	for _, a := range appts {
		if a.Date.IsZero() {
			continue
		}
		key := a.Date.String()
		b := out[key]
		b.Date = a.Date
		b.Appointments = append(b.Appointments, a)
		out[key] = b
	}

	for _, rec := range records {
		if rec.VisitDate.IsZero() {
			continue
		}
		key := rec.VisitDate.String()
		b := out[key]
		b.Date = rec.VisitDate
		b.MedicalRecords = append(b.MedicalRecords, rec)
		out[key] = b
	}

	return out
}

// Lookup reporta ausencia (ok=false) para días sin eventos.
func Lookup(buckets map[string]DayBucket, d datewindow.Date) (DayBucket, bool) {
	b, ok := buckets[d.String()]
	return b, ok
}

// Days devuelve las keys ordenadas cronológicamente.
func Days(buckets map[string]DayBucket) []string {
	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
