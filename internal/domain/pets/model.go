package pets

import (
	"time"

	"pet-record-guardian/internal/domain/datewindow"
)

// Species define las especies soportadas.
// @Enum dog, cat, bird, rabbit, other
type Species string

const (
	SpeciesDog    Species = "dog"
	SpeciesCat    Species = "cat"
	SpeciesBird   Species = "bird"
	SpeciesRabbit Species = "rabbit"
	SpeciesOther  Species = "other"
)

func (s Species) Valid() bool {
	switch s {
	case SpeciesDog, SpeciesCat, SpeciesBird, SpeciesRabbit, SpeciesOther:
		return true
	}
	return false
}

// Sex define el sexo de la mascota.
// @Enum male, female, unknown
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

func (s Sex) Valid() bool {
	switch s {
	case SexMale, SexFemale, SexUnknown:
		return true
	}
	return false
}

// Pet es el perfil básico de una mascota. El dueño es el usuario autenticado que la creó.
type Pet struct {
	ID          string
	OwnerUserID string

	Name    string
	Species Species
	Breed   string // texto libre
	Sex     Sex

	BirthDate *datewindow.Date
	Microchip string

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}
