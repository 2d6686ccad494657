package medications

import "context"

type Repository interface {
	Create(ctx context.Context, m Medication) error
	Update(ctx context.Context, m Medication) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Medication, error)
	ListByPet(ctx context.Context, petID string) ([]Medication, error)
}

type LogRepository interface {
	Create(ctx context.Context, l Log) error
	Update(ctx context.Context, l Log) error
	GetByID(ctx context.Context, id string) (Log, error)
	ListByMedication(ctx context.Context, medicationID string) ([]Log, error)
}
