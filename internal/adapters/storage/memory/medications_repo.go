package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-record-guardian/internal/domain/medications"
)

type medicationRepo struct {
	mu   sync.RWMutex
	byID map[string]medications.Medication
}

func NewMedicationRepo() medications.Repository {
	return &medicationRepo{
		byID: make(map[string]medications.Medication),
	}
}

func (r *medicationRepo) Create(ctx context.Context, m medications.Medication) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(m.ID) == "" {
		return errors.New("medication id required")
	}
	if _, exists := r.byID[m.ID]; exists {
		return errors.New("medication already exists")
	}
	r.byID[m.ID] = m
	return nil
}

func (r *medicationRepo) Update(ctx context.Context, m medications.Medication) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[m.ID]; !exists {
		return medications.ErrNotFound
	}
	r.byID[m.ID] = m
	return nil
}

func (r *medicationRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return medications.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *medicationRepo) GetByID(ctx context.Context, id string) (medications.Medication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byID[id]
	if !ok {
		return medications.Medication{}, medications.ErrNotFound
	}
	return m, nil
}

func (r *medicationRepo) ListByPet(ctx context.Context, petID string) ([]medications.Medication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]medications.Medication, 0)
	for _, m := range r.byID {
		if m.PetID == petID {
			out = append(out, m)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

type medicationLogRepo struct {
	mu   sync.RWMutex
	byID map[string]medications.Log
}

func NewMedicationLogRepo() medications.LogRepository {
	return &medicationLogRepo{
		byID: make(map[string]medications.Log),
	}
}

func (r *medicationLogRepo) Create(ctx context.Context, l medications.Log) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(l.ID) == "" {
		return errors.New("medication log id required")
	}
	if _, exists := r.byID[l.ID]; exists {
		return errors.New("medication log already exists")
	}
	r.byID[l.ID] = l
	return nil
}

func (r *medicationLogRepo) Update(ctx context.Context, l medications.Log) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[l.ID]; !exists {
		return medications.ErrLogNotFound
	}
	r.byID[l.ID] = l
	return nil
}

func (r *medicationLogRepo) GetByID(ctx context.Context, id string) (medications.Log, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.byID[id]
	if !ok {
		return medications.Log{}, medications.ErrLogNotFound
	}
	return l, nil
}

func (r *medicationLogRepo) ListByMedication(ctx context.Context, medicationID string) ([]medications.Log, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]medications.Log, 0)
	for _, l := range r.byID {
		if l.MedicationID == medicationID {
			out = append(out, l)
		}
	}
	return out, nil
}
