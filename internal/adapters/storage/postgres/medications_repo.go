package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"pet-record-guardian/internal/domain/medications"
)

type MedicationsRepo struct {
	db *sql.DB
}

func NewMedicationsRepo(db *sql.DB) *MedicationsRepo {
	return &MedicationsRepo{db: db}
}

const medicationColumns = `
	id, pet_id,
	name, dosage, frequency,
	start_date, end_date, refill_date,
	active, notes,
	created_at, updated_at`

func (r *MedicationsRepo) Create(ctx context.Context, m medications.Medication) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO medications (`+medicationColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		m.ID,
		m.PetID,
		m.Name,
		m.Dosage,
		m.Frequency,
		m.StartDate,
		dateArg(m.EndDate),
		dateArg(m.RefillDate),
		m.Active,
		m.Notes,
		m.CreatedAt,
		m.UpdatedAt,
	)
	return err
}

func (r *MedicationsRepo) Update(ctx context.Context, m medications.Medication) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE medications
		SET
			name = $2,
			dosage = $3,
			frequency = $4,
			start_date = $5,
			end_date = $6,
			refill_date = $7,
			active = $8,
			notes = $9,
			updated_at = $10
		WHERE id = $1
	`,
		m.ID,
		m.Name,
		m.Dosage,
		m.Frequency,
		m.StartDate,
		dateArg(m.EndDate),
		dateArg(m.RefillDate),
		m.Active,
		m.Notes,
		m.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return medications.ErrNotFound
	}
	return nil
}

func (r *MedicationsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM medications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return medications.ErrNotFound
	}
	return nil
}

func (r *MedicationsRepo) GetByID(ctx context.Context, id string) (medications.Medication, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return medications.Medication{}, medications.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+medicationColumns+` FROM medications WHERE id = $1`, id)
	m, err := scanMedication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return medications.Medication{}, medications.ErrNotFound
		}
		return medications.Medication{}, err
	}
	return m, nil
}

func (r *MedicationsRepo) ListByPet(ctx context.Context, petID string) ([]medications.Medication, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+medicationColumns+`
		FROM medications
		WHERE pet_id = $1
		ORDER BY created_at ASC
	`, strings.TrimSpace(petID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]medications.Medication, 0)
	for rows.Next() {
		m, err := scanMedication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanMedication(row rowScanner) (medications.Medication, error) {
	var m medications.Medication
	var start, end, refill scanDate
	if err := row.Scan(
		&m.ID,
		&m.PetID,
		&m.Name,
		&m.Dosage,
		&m.Frequency,
		&start,
		&end,
		&refill,
		&m.Active,
		&m.Notes,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return medications.Medication{}, err
	}
	m.StartDate = start.d
	m.EndDate = end.ptr()
	m.RefillDate = refill.ptr()
	return m, nil
}

type MedicationLogsRepo struct {
	db *sql.DB
}

func NewMedicationLogsRepo(db *sql.DB) *MedicationLogsRepo {
	return &MedicationLogsRepo{db: db}
}

const medicationLogColumns = `
	id, medication_id,
	given_at, given_by,
	skipped, skip_reason, notes,
	created_at, updated_at`

func (r *MedicationLogsRepo) Create(ctx context.Context, l medications.Log) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO medication_logs (`+medicationLogColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		l.ID,
		l.MedicationID,
		l.GivenAt,
		l.GivenBy,
		l.Skipped,
		l.SkipReason,
		l.Notes,
		l.CreatedAt,
		l.UpdatedAt,
	)
	return err
}

func (r *MedicationLogsRepo) Update(ctx context.Context, l medications.Log) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE medication_logs
		SET
			given_at = $2,
			given_by = $3,
			skipped = $4,
			skip_reason = $5,
			notes = $6,
			updated_at = $7
		WHERE id = $1
	`,
		l.ID,
		l.GivenAt,
		l.GivenBy,
		l.Skipped,
		l.SkipReason,
		l.Notes,
		l.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return medications.ErrLogNotFound
	}
	return nil
}

func (r *MedicationLogsRepo) GetByID(ctx context.Context, id string) (medications.Log, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+medicationLogColumns+` FROM medication_logs WHERE id = $1`, strings.TrimSpace(id))
	l, err := scanMedicationLog(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return medications.Log{}, medications.ErrLogNotFound
		}
		return medications.Log{}, err
	}
	return l, nil
}

func (r *MedicationLogsRepo) ListByMedication(ctx context.Context, medicationID string) ([]medications.Log, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+medicationLogColumns+`
		FROM medication_logs
		WHERE medication_id = $1
		ORDER BY given_at DESC
	`, strings.TrimSpace(medicationID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]medications.Log, 0)
	for rows.Next() {
		l, err := scanMedicationLog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func scanMedicationLog(row rowScanner) (medications.Log, error) {
	var l medications.Log
	if err := row.Scan(
		&l.ID,
		&l.MedicationID,
		&l.GivenAt,
		&l.GivenBy,
		&l.Skipped,
		&l.SkipReason,
		&l.Notes,
		&l.CreatedAt,
		&l.UpdatedAt,
	); err != nil {
		return medications.Log{}, err
	}
	return l, nil
}
