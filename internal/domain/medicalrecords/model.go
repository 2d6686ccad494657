package medicalrecords

import (
	"time"

	"pet-record-guardian/internal/domain/datewindow"
)

type MedicalRecord struct {
	ID    string
	PetID string

	VisitDate       datewindow.Date
	NextAppointment *datewindow.Date

	RecordType   RecordType
	Diagnosis    string
	Treatment    string
	Veterinarian string
	Notes        string

	CreatedAt time.Time
	UpdatedAt time.Time
}
