package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-record-guardian/internal/domain/medicalrecords"
)

type medicalRecordRepo struct {
	mu   sync.RWMutex
	byID map[string]medicalrecords.MedicalRecord
}

func NewMedicalRecordRepo() medicalrecords.Repository {
	return &medicalRecordRepo{
		byID: make(map[string]medicalrecords.MedicalRecord),
	}
}

func (r *medicalRecordRepo) Create(ctx context.Context, rec medicalrecords.MedicalRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(rec.ID) == "" {
		return errors.New("medical record id required")
	}
	if _, exists := r.byID[rec.ID]; exists {
		return errors.New("medical record already exists")
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *medicalRecordRepo) GetByID(ctx context.Context, id string) (medicalrecords.MedicalRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return medicalrecords.MedicalRecord{}, medicalrecords.ErrNotFound
	}
	return rec, nil
}

func (r *medicalRecordRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return medicalrecords.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *medicalRecordRepo) List(ctx context.Context, filter medicalrecords.ListFilter) ([]medicalrecords.MedicalRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]medicalrecords.MedicalRecord, 0)
	for _, rec := range r.byID {
		if filter.Matches(rec) {
			out = append(out, rec)
		}
	}

	// Orden por visit_date desc (más reciente primero)
	sort.Slice(out, func(i, j int) bool {
		return out[i].VisitDate.After(out[j].VisitDate)
	})
	return out, nil
}
