package medicalrecords

import "strings"

type RecordType string

const (
	RecordTypeCheckup     RecordType = "checkup"
	RecordTypeVaccination RecordType = "vaccination"
	RecordTypeDeworming   RecordType = "deworming"
	RecordTypeSurgery     RecordType = "surgery"
	RecordTypeDental      RecordType = "dental"
	RecordTypeEmergency   RecordType = "emergency"
	RecordTypeLab         RecordType = "lab"
	RecordTypeOther       RecordType = "other"
)

func (t RecordType) Valid() bool {
	switch t {
	case RecordTypeCheckup, RecordTypeVaccination, RecordTypeDeworming, RecordTypeSurgery,
		RecordTypeDental, RecordTypeEmergency, RecordTypeLab, RecordTypeOther:
		return true
	default:
		return false
	}
}

func normalizeType(t RecordType) RecordType {
	return RecordType(strings.ToLower(strings.TrimSpace(string(t))))
}
