package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"pet-record-guardian/internal/domain/medicalrecords"
)

type MedicalRecordsRepo struct {
	db *sql.DB
}

func NewMedicalRecordsRepo(db *sql.DB) *MedicalRecordsRepo {
	return &MedicalRecordsRepo{db: db}
}

const medicalRecordColumns = `
	id, pet_id,
	visit_date, next_appointment,
	record_type, diagnosis, treatment, veterinarian, notes,
	created_at, updated_at`

func (r *MedicalRecordsRepo) Create(ctx context.Context, rec medicalrecords.MedicalRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO medical_records (`+medicalRecordColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		rec.ID,
		rec.PetID,
		rec.VisitDate,
		dateArg(rec.NextAppointment),
		string(rec.RecordType),
		rec.Diagnosis,
		rec.Treatment,
		rec.Veterinarian,
		rec.Notes,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	return err
}

func (r *MedicalRecordsRepo) GetByID(ctx context.Context, id string) (medicalrecords.MedicalRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+medicalRecordColumns+` FROM medical_records WHERE id = $1`, strings.TrimSpace(id))
	rec, err := scanMedicalRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return medicalrecords.MedicalRecord{}, medicalrecords.ErrNotFound
		}
		return medicalrecords.MedicalRecord{}, err
	}
	return rec, nil
}

func (r *MedicalRecordsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM medical_records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return medicalrecords.ErrNotFound
	}
	return nil
}

func (r *MedicalRecordsRepo) List(ctx context.Context, filter medicalrecords.ListFilter) ([]medicalrecords.MedicalRecord, error) {
	if len(filter.PetIDs) == 0 {
		return nil, nil
	}

	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + medicalRecordColumns + ` FROM medical_records WHERE pet_id IN (`)
	ph, args := inPlaceholders(filter.PetIDs, nil)
	sb.WriteString(ph + ")")

	// types filter
	if len(filter.Types) > 0 {
		types := make([]string, 0, len(filter.Types))
		for _, t := range filter.Types {
			types = append(types, string(t))
		}
		var tph string
		tph, args = inPlaceholders(types, args)
		sb.WriteString(" AND record_type IN (" + tph + ")")
	}

	// from/to sobre visit_date
	if filter.From != nil {
		args = append(args, *filter.From)
		sb.WriteString(fmt.Sprintf(" AND visit_date >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		sb.WriteString(fmt.Sprintf(" AND visit_date <= $%d", len(args)))
	}

	// q: búsqueda simple en campos de texto
	if q := strings.TrimSpace(filter.Query); q != "" {
		args = append(args, "%"+q+"%")
		n := len(args)
		sb.WriteString(fmt.Sprintf(" AND (diagnosis ILIKE $%d OR treatment ILIKE $%d OR veterinarian ILIKE $%d OR notes ILIKE $%d)", n, n, n, n))
	}

	sb.WriteString(" ORDER BY visit_date DESC")
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	}

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]medicalrecords.MedicalRecord, 0)
	for rows.Next() {
		rec, err := scanMedicalRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func scanMedicalRecord(row rowScanner) (medicalrecords.MedicalRecord, error) {
	var rec medicalrecords.MedicalRecord
	var typ string
	var visit, next scanDate
	if err := row.Scan(
		&rec.ID,
		&rec.PetID,
		&visit,
		&next,
		&typ,
		&rec.Diagnosis,
		&rec.Treatment,
		&rec.Veterinarian,
		&rec.Notes,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	); err != nil {
		return medicalrecords.MedicalRecord{}, err
	}
	rec.VisitDate = visit.d
	rec.NextAppointment = next.ptr()
	rec.RecordType = medicalrecords.RecordType(typ)
	return rec, nil
}
